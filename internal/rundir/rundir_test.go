package rundir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSWriteReplacesAtomically(t *testing.T) {
	root := t.TempDir()
	d := OS{}.Dir(root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "stat.gp"), []byte("old\n"), 0o600))
	require.NoError(t, WriteFile(d, "stat.gp", []byte("new\n")))

	data, err := ReadFile(d, "stat.gp")
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := os.Stat(filepath.Join(root, "stat.gp"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "mode of replaced file is kept")

	leftovers, err := filepath.Glob(filepath.Join(root, ".stat.gp.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestOSMkdirFailsWhenPresent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "new", "run")
	d := OS{}.Dir(root)

	assert.False(t, d.IsDir())
	require.NoError(t, d.Mkdir())
	assert.True(t, d.IsDir())
	assert.ErrorIs(t, d.Mkdir(), ErrExist)
}

func TestOSListFilesOnly(t *testing.T) {
	root := t.TempDir()
	d := OS{}.Dir(root)
	require.NoError(t, WriteFile(d, "stat.gp", nil))
	require.NoError(t, WriteFile(d, "steps.gp", nil))
	require.NoError(t, WriteFile(d, "dns.slurm", nil))
	require.NoError(t, os.Mkdir(filepath.Join(root, "figures.gp"), 0o755))

	names, err := d.List("*.gp")
	require.NoError(t, err)
	assert.Equal(t, []string{"stat.gp", "steps.gp"}, names)
	assert.True(t, d.Exists("dns.slurm"))
	assert.False(t, d.Exists("figures.gp"))
}

func TestCopyFileBetweenDirs(t *testing.T) {
	fs := NewMem()
	fs.Put("/runs/a/state.000004", []byte("flow field"))
	dst := fs.Dir("/runs/b")
	require.NoError(t, dst.Mkdir())

	require.NoError(t, CopyFile(fs.Dir("/runs/a"), "state.000004", dst, "state.000000"))

	data, ok := fs.Get("/runs/b/state.000000")
	require.True(t, ok)
	assert.Equal(t, "flow field", string(data))
}

func TestMemWriteNeedsDirectory(t *testing.T) {
	fs := NewMem()
	err := WriteFile(fs.Dir("/missing"), "parameters.in", []byte("x"))
	assert.Error(t, err)
}

func TestMemRemove(t *testing.T) {
	fs := NewMem()
	fs.Put("/r/state.000001", nil)
	d := fs.Dir("/r")

	require.NoError(t, d.Remove("state.000001"))
	assert.False(t, d.Exists("state.000001"))
	assert.Error(t, d.Remove("state.000001"))
}
