package ftb_quests

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"github.com/terrarium-earth/odysseus/snbt"
	"golang.org/x/sync/errgroup"
	"path"
	"slices"
)

const (
	QuestFileName     = "data.snbt"
	ChapterGroupsName = "chapter_groups.snbt"
	ChaptersDir       = "chapters"
	RewardTablesDir   = "reward_tables"
)

var ErrInvalidShape = errors.New("unexpected resource shape")

// File is one entry of a directory listing.
type File struct {
	Name string
	Data string
}

// InputFS is the read side of a quest pack. ReadDirectory returns an empty
// list, not an error, when the directory does not exist.
type InputFS interface {
	ReadFile(name string) (string, error)
	ReadDirectory(name string) ([]File, error)
}

// ReadError is a fatal failure to read or project a pack resource.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Read loads and projects every resource of a pack. Syntax errors are returned
// as *snbt.SyntaxError, everything else as *ReadError.
func Read(ctx context.Context, in InputFS) (*Pack, error) {
	pack := new(Pack)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFile(in, QuestFileName, &pack.QuestFile)
	})
	g.Go(func() error {
		var groups chapterGroupsFile
		if err := readFile(in, ChapterGroupsName, &groups); err != nil {
			return err
		}
		pack.Groups = groups.ChapterGroups
		return nil
	})
	g.Go(func() error {
		chapters, err := readDirectory[Chapter](ctx, in, ChaptersDir)
		if err != nil {
			return err
		}
		sortOrdered(chapters, func(c Chapter) int { return c.OrderIndex })
		pack.Chapters = chapters
		return nil
	})
	g.Go(func() error {
		tables, err := readDirectory[RewardTable](ctx, in, RewardTablesDir)
		if err != nil {
			return err
		}
		sortOrdered(tables, func(t RewardTable) int { return t.OrderIndex })
		pack.RewardTables = tables
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pack, nil
}

func readFile(in InputFS, name string, target any) error {
	text, err := in.ReadFile(name)
	if err != nil {
		return &ReadError{Name: name, Err: err}
	}
	return decode(name, text, target)
}

func readDirectory[T any](ctx context.Context, in InputFS, dir string) ([]T, error) {
	files, err := in.ReadDirectory(dir)
	if err != nil {
		return nil, &ReadError{Name: dir, Err: err}
	}
	out := make([]T, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := decode(path.Join(dir, f.Name), f.Data, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decode(name, text string, target any) error {
	v, err := snbt.Parse(text, name)
	if err != nil {
		return err
	}
	if _, ok := v.(*snbt.Compound); !ok {
		return &ReadError{Name: name, Err: fmt.Errorf("%w: root is %T, not a compound", ErrInvalidShape, v)}
	}
	if err := snbt.Unmarshal(v, target); err != nil {
		return &ReadError{Name: name, Err: fmt.Errorf("%w: %w", ErrInvalidShape, err)}
	}
	return nil
}

func sortOrdered[T any](entries []T, orderIndex func(T) int) {
	slices.SortStableFunc(entries, func(a, b T) int {
		return cmp.Compare(orderIndex(a), orderIndex(b))
	})
}
