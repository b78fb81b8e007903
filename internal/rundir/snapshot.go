package rundir

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// SnapshotPrefix starts every state snapshot file name.
	SnapshotPrefix = "state."
	// SnapshotDigits is the width of the zero-padded index suffix.
	SnapshotDigits = 6
)

// ErrNoSnapshots is returned when a run directory holds no state snapshots.
var ErrNoSnapshots = errors.New("no state snapshots found")

// Snapshot is a saved flow field. Index counts saves, so the snapshot
// holds the field at step Index*i_save_fields.
type Snapshot struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// SnapshotName formats the file name for a snapshot index.
func SnapshotName(index int) string {
	return fmt.Sprintf("%s%0*d", SnapshotPrefix, SnapshotDigits, index)
}

// ParseSnapshotName extracts the index from a snapshot file name. Names
// that are not exactly the prefix followed by six digits are rejected.
func ParseSnapshotName(name string) (int, bool) {
	suffix, ok := strings.CutPrefix(name, SnapshotPrefix)
	if !ok || len(suffix) != SnapshotDigits {
		return 0, false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return index, true
}

// Scan lists the snapshots in d in ascending index order.
func Scan(d Dir) ([]Snapshot, error) {
	names, err := d.List(SnapshotPrefix + "*")
	if err != nil {
		return nil, err
	}

	var snaps []Snapshot
	for _, name := range names {
		index, ok := ParseSnapshotName(name)
		if !ok {
			continue
		}
		snaps = append(snaps, Snapshot{Index: index, Name: name})
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("%s: %w", d.Root(), ErrNoSnapshots)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Index < snaps[j].Index })
	return snaps, nil
}

// SelectResumption picks the snapshot to restart from. The newest snapshot
// may have been cut short by a killed job, so with three or more on disk the
// second newest is used; with fewer the newest is the best available.
func SelectResumption(snaps []Snapshot) (Snapshot, error) {
	switch n := len(snaps); {
	case n == 0:
		return Snapshot{}, ErrNoSnapshots
	case n >= 3:
		return snaps[n-2], nil
	default:
		return snaps[n-1], nil
	}
}
