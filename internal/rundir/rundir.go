// Package rundir provides access to DNS run directories: the flat folders
// holding state snapshots, the parameter file, job scripts and diagnostic logs.
package rundir

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrExist is returned by Mkdir when the directory is already present.
var ErrExist = errors.New("directory already exists")

// Dir is a handle on a single run directory. Names passed to its methods
// are base names relative to Root.
type Dir interface {
	// Root returns the directory path.
	Root() string

	// List returns the sorted base names of regular files matching pattern.
	List(pattern string) ([]string, error)

	// Open opens a file for reading.
	Open(name string) (io.ReadCloser, error)

	// Write replaces the named file with the contents of r. Readers observe
	// either the old or the new contents, never a partial write.
	Write(name string, r io.Reader) error

	// Remove deletes a file.
	Remove(name string) error

	// Exists reports whether a regular file with this name is present.
	Exists(name string) bool

	// Mkdir creates the directory itself, including missing parents.
	// It returns ErrExist if the directory is already present.
	Mkdir() error

	// IsDir reports whether the directory exists.
	IsDir() bool
}

// FS opens run directories by path.
type FS interface {
	Dir(path string) Dir
}

// ReadFile reads a whole file from d.
func ReadFile(d Dir, name string) ([]byte, error) {
	f, err := d.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile atomically replaces a file in d with data.
func WriteFile(d Dir, name string, data []byte) error {
	return d.Write(name, bytes.NewReader(data))
}

// CopyFile streams src/srcName into dst/dstName.
func CopyFile(src Dir, srcName string, dst Dir, dstName string) error {
	f, err := src.Open(srcName)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcName, err)
	}
	defer f.Close()

	if err := dst.Write(dstName, f); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Join(dst.Root(), dstName), err)
	}
	return nil
}

// --- OS implementation ---

// OS is the FS backed by the host filesystem.
type OS struct{}

// Dir returns a handle on the directory at path.
func (OS) Dir(path string) Dir {
	return &osDir{root: filepath.Clean(path)}
}

type osDir struct {
	root string
}

func (d *osDir) Root() string { return d.root }

func (d *osDir) path(name string) string { return filepath.Join(d.root, name) }

func (d *osDir) List(pattern string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(d.root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list %s in %s: %w", pattern, d.root, err)
	}
	sort.Strings(names)
	return names, nil
}

func (d *osDir) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}

func (d *osDir) Write(name string, r io.Reader) error {
	target := d.path(name)
	mode := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(d.root, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (d *osDir) Remove(name string) error {
	return os.Remove(d.path(name))
}

func (d *osDir) Exists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && info.Mode().IsRegular()
}

func (d *osDir) Mkdir() error {
	if err := os.MkdirAll(filepath.Dir(d.root), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", d.root, err)
	}
	if err := os.Mkdir(d.root, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", d.root, ErrExist)
		}
		return fmt.Errorf("create %s: %w", d.root, err)
	}
	return nil
}

func (d *osDir) IsDir() bool {
	info, err := os.Stat(d.root)
	return err == nil && info.IsDir()
}
