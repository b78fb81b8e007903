package rundir

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Mem is an in-memory FS. Directories are flat; a file belongs to the
// directory given by filepath.Dir of its path.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMem returns an empty in-memory filesystem.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Dir returns a handle on the directory at path.
func (m *Mem) Dir(path string) Dir {
	return &memDir{fs: m, root: filepath.Clean(path)}
}

// Put stores a file, creating its directory.
func (m *Mem) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = append([]byte(nil), data...)
	m.dirs[filepath.Dir(path)] = true
}

// Get returns a file's contents.
func (m *Mem) Get(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

type memDir struct {
	fs   *Mem
	root string
}

func (d *memDir) Root() string { return d.root }

func (d *memDir) path(name string) string { return filepath.Join(d.root, name) }

func (d *memDir) List(pattern string) ([]string, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	var names []string
	for p := range d.fs.files {
		if filepath.Dir(p) != d.root {
			continue
		}
		base := filepath.Base(p)
		ok, err := doublestar.Match(pattern, base)
		if err != nil {
			return nil, fmt.Errorf("list %s in %s: %w", pattern, d.root, err)
		}
		if ok {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (d *memDir) Open(name string) (io.ReadCloser, error) {
	data, ok := d.fs.Get(d.path(name))
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: d.path(name), Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *memDir) Write(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	if !d.fs.dirs[d.root] {
		return &fs.PathError{Op: "write", Path: d.path(name), Err: fs.ErrNotExist}
	}
	d.fs.files[d.path(name)] = data
	return nil
}

func (d *memDir) Remove(name string) error {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	p := d.path(name)
	if _, ok := d.fs.files[p]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(d.fs.files, p)
	return nil
}

func (d *memDir) Exists(name string) bool {
	_, ok := d.fs.Get(d.path(name))
	return ok
}

func (d *memDir) Mkdir() error {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	if d.fs.dirs[d.root] {
		return fmt.Errorf("%s: %w", d.root, ErrExist)
	}
	for p := d.root; ; p = filepath.Dir(p) {
		d.fs.dirs[p] = true
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	return nil
}

func (d *memDir) IsDir() bool {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	return d.fs.dirs[d.root]
}
