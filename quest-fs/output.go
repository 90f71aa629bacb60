package quest_fs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

var ErrInvalidPath = errors.New("invalid output path")

func checkPath(name string) error {
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return nil
}

// DirOutput writes loose files below a directory.
type DirOutput struct {
	dir string
}

func NewDirOutput(dir string) *DirOutput {
	return &DirOutput{dir: dir}
}

func (d *DirOutput) WriteFile(name string, data []byte) error {
	if err := checkPath(name); err != nil {
		return err
	}
	p := filepath.Join(d.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0775); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0664)
}

// ZipOutput writes entries into a zip archive. Close must be called to
// finish the archive.
type ZipOutput struct {
	mu sync.Mutex
	zw *zip.Writer
}

func NewZipOutput(w io.Writer) *ZipOutput {
	return &ZipOutput{zw: zip.NewWriter(w)}
}

func (z *ZipOutput) WriteFile(name string, data []byte) error {
	if err := checkPath(name); err != nil {
		return err
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	w, err := z.zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (z *ZipOutput) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.zw.Close()
}

// MemoryOutput keeps written files in memory.
type MemoryOutput struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{files: make(map[string][]byte)}
}

func (m *MemoryOutput) WriteFile(name string, data []byte) error {
	if err := checkPath(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
	return nil
}

// Files returns a copy of everything written so far.
func (m *MemoryOutput) Files() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.files)
}
