package quest_fs

import (
	"archive/zip"
	"errors"
	"fmt"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

const snbtExt = ".snbt"

var ErrNoQuestFile = errors.New("no " + ftbquests.QuestFileName + " found")

// FSInput reads a quest pack rooted at the top of an fs.FS.
type FSInput struct {
	fsys fs.FS
}

var _ ftbquests.InputFS = &FSInput{}

func NewFSInput(fsys fs.FS) *FSInput {
	return &FSInput{fsys: fsys}
}

func NewDirInput(dir string) *FSInput {
	return NewFSInput(os.DirFS(dir))
}

// OpenZipInput opens an archive and roots the input at the shallowest
// directory holding data.snbt.
func OpenZipInput(r io.ReaderAt, size int64) (*FSInput, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	root := ""
	depth := -1
	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, "./")
		if path.Base(name) != ftbquests.QuestFileName || f.FileInfo().IsDir() {
			continue
		}
		d := strings.Count(name, "/")
		if depth < 0 || d < depth || d == depth && name < path.Join(root, ftbquests.QuestFileName) {
			root, depth = path.Dir(name), d
		}
	}
	if depth < 0 {
		return nil, ErrNoQuestFile
	}
	if root == "." {
		return NewFSInput(zr), nil
	}
	sub, err := fs.Sub(zr, root)
	if err != nil {
		return nil, err
	}
	return NewFSInput(sub), nil
}

func (f *FSInput) ReadFile(name string) (string, error) {
	b, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadDirectory returns the name-sorted .snbt files directly inside name.
func (f *FSInput) ReadDirectory(name string) ([]ftbquests.File, error) {
	entries, err := fs.ReadDir(f.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}
	files := make([]ftbquests.File, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || path.Ext(e.Name()) != snbtExt {
			continue
		}
		data, err := f.ReadFile(path.Join(name, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, ftbquests.File{Name: e.Name(), Data: data})
	}
	return files, nil
}
