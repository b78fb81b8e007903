package rundir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotName(t *testing.T) {
	assert.Equal(t, "state.000000", SnapshotName(0))
	assert.Equal(t, "state.000042", SnapshotName(42))
	assert.Equal(t, "state.123456", SnapshotName(123456))
}

func TestParseSnapshotName(t *testing.T) {
	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"state.000000", 0, true},
		{"state.000017", 17, true},
		{"state.00017", 0, false},
		{"state.0000017", 0, false},
		{"state.000017.tmp", 0, false},
		{"state.00001a", 0, false},
		{"stat.gp", 0, false},
		{"parameters.in", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := ParseSnapshotName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestScanOrdersByIndex(t *testing.T) {
	fs := NewMem()
	for _, name := range []string{"state.000010", "state.000002", "state.000005", "state.000007.tmp", "stat.gp"} {
		fs.Put(filepath.Join("/runs/a", name), []byte("x"))
	}

	snaps, err := Scan(fs.Dir("/runs/a"))
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, []int{2, 5, 10}, []int{snaps[0].Index, snaps[1].Index, snaps[2].Index})
	assert.Equal(t, "state.000010", snaps[2].Name)
}

func TestScanNoSnapshots(t *testing.T) {
	fs := NewMem()
	fs.Put("/runs/a/parameters.in", []byte(""))

	_, err := Scan(fs.Dir("/runs/a"))
	assert.True(t, errors.Is(err, ErrNoSnapshots))
}

func TestSelectResumption(t *testing.T) {
	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			snaps := make([]Snapshot, n)
			for i := range snaps {
				snaps[i] = Snapshot{Index: i, Name: SnapshotName(i)}
			}

			got, err := SelectResumption(snaps)
			require.NoError(t, err)

			want := n - 1
			if n >= 3 {
				want = n - 2
			}
			assert.Equal(t, want, got.Index)
		})
	}
}

func TestSelectResumptionEmpty(t *testing.T) {
	_, err := SelectResumption(nil)
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestScanOSDirectory(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 6; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, SnapshotName(i)), []byte("field"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "state.999999"), 0o755))

	snaps, err := Scan(OS{}.Dir(root))
	require.NoError(t, err)
	require.Len(t, snaps, 6)

	chosen, err := SelectResumption(snaps)
	require.NoError(t, err)
	assert.Equal(t, 4, chosen.Index)
}
