package converter

import (
	"fmt"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
	"github.com/terrarium-earth/odysseus/snbt"
	"strings"
)

func convertObservationTask(base heracles.Element, t ftbquests.ObservationTask) (heracles.Task, error) {
	switch t.ObserveType {
	case ftbquests.ObserveBlock, ftbquests.ObserveBlockEntityType:
		return heracles.BlockInteractionTask{Element: base, Block: t.ToObserve}, nil
	case ftbquests.ObserveBlockTag:
		return heracles.BlockInteractionTask{Element: base, Block: asTag(t.ToObserve)}, nil
	case ftbquests.ObserveBlockState, ftbquests.ObserveBlockEntity:
		block, state, nbt, err := parseObserved(t.ToObserve)
		if err != nil {
			return nil, warn(err, "Could not read observed block of task %s: %v", t.ID, err)
		}
		return heracles.BlockInteractionTask{Element: base, Block: block, State: state, NBT: nbt}, nil
	case ftbquests.ObserveEntityType:
		return heracles.EntityInteractionTask{Element: base, Entity: t.ToObserve}, nil
	case ftbquests.ObserveEntityTypeTag:
		return heracles.EntityInteractionTask{Element: base, Entity: asTag(t.ToObserve)}, nil
	}
	return nil, warn(ErrUnsupportedType, "Don't know how to convert observation task %s with observe type %d.", t.ID, t.ObserveType)
}

func asTag(name string) string {
	if strings.HasPrefix(name, "#") {
		return name
	}
	return "#" + name
}

// parseObserved splits base[key=value,...]{nbt} into its parts. Only the
// top-level bracket and brace delimit sections.
func parseObserved(s string) (block string, state map[string]string, nbt *snbt.Compound, err error) {
	rest := strings.TrimSpace(s)
	i := strings.IndexAny(rest, "[{")
	if i < 0 {
		return rest, nil, nil, nil
	}
	block = strings.TrimSpace(rest[:i])
	rest = rest[i:]
	if block == "" {
		return "", nil, nil, fmt.Errorf("%w: missing block id in %q", ErrMalformedObserved, s)
	}

	if rest[0] == '[' {
		end := closingIndex(rest, '[', ']')
		if end < 0 {
			return "", nil, nil, fmt.Errorf("%w: unclosed state list in %q", ErrMalformedObserved, s)
		}
		state = parseState(rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest == "" {
		return block, state, nil, nil
	}
	if rest[0] != '{' {
		return "", nil, nil, fmt.Errorf("%w: unexpected %q after block state", ErrMalformedObserved, rest)
	}
	v, err := snbt.Parse(rest, "to_observe")
	if err != nil {
		return "", nil, nil, err
	}
	nbt, ok := v.(*snbt.Compound)
	if !ok {
		return "", nil, nil, fmt.Errorf("%w: block nbt is not a compound", ErrMalformedObserved)
	}
	if nbt.Len() == 0 {
		nbt = nil
	}
	return block, state, nbt, nil
}

// closingIndex finds the delimiter closing s[0], skipping nested pairs.
func closingIndex(s string, open, close byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseState(s string) map[string]string {
	state := make(map[string]string)
	for _, prop := range strings.Split(s, ",") {
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		k, v, _ := strings.Cut(prop, "=")
		state[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if len(state) == 0 {
		return nil
	}
	return state
}
