package heracles

import (
	"bytes"
	"encoding/json"
	"slices"
)

const (
	CirclesBackground = "heracles:textures/gui/quest_backgrounds/circles.png"
	QuestBookItem     = "heracles:quest_book"
)

const (
	HiddenCompleted  = "COMPLETED"
	HiddenInProgress = "IN_PROGRESS"
	HiddenLocked     = "LOCKED"
)

type Quest struct {
	Display      Display   `json:"display"`
	Settings     Settings  `json:"settings"`
	Dependencies []string  `json:"dependencies,omitempty"`
	Tasks        TaskMap   `json:"tasks"`
	Rewards      RewardMap `json:"rewards"`
}

type Display struct {
	Title          string                    `json:"title,omitempty"`
	Subtitle       *Text                     `json:"subtitle,omitempty"`
	Description    []string                  `json:"description,omitempty"`
	Icon           *Icon                     `json:"icon,omitempty"`
	IconBackground string                    `json:"icon_background,omitempty"`
	Groups         map[string]GroupPlacement `json:"groups,omitempty"`
}

type Text struct {
	Text string `json:"text"`
}

type GroupPlacement struct {
	Position [2]int `json:"position"`
}

type Settings struct {
	Hidden string `json:"hidden,omitempty"`
}

type Icon struct {
	Type string `json:"type"`
	Item string `json:"item"`
}

func ItemIcon(item string) *Icon {
	return &Icon{Type: "heracles:item", Item: item}
}

// Element holds the display fields shared by tasks and rewards.
type Element struct {
	Title string `json:"title,omitempty"`
	Icon  *Icon  `json:"icon,omitempty"`
}

func (e Element) Header() Element { return e }

// Encode writes the quest as indented JSON.
func (q Quest) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(q); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshal(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// tagged encodes v and inserts the type field in front of its other fields.
func tagged(kind string, v any) ([]byte, error) {
	body, err := marshal(v)
	if err != nil {
		return nil, err
	}
	name, err := marshal(kind)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	buf.WriteString(`{"type":`)
	buf.Write(name)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

func marshalMap[T interface{ Kind() string }](m map[string]T) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := tagged(m[k].Kind(), m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
