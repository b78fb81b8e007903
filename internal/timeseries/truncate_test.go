package timeseries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateKeepsPrefix(t *testing.T) {
	in := "0 0.0 1.0\n100 1.0 1.1\n250 2.5 1.2\n"

	out, stats := Truncate([]byte(in), DefaultSchema, 100)

	assert.Equal(t, "0 0.0 1.0\n100 1.0 1.1\n", string(out))
	assert.Equal(t, Stats{Kept: 2, Dropped: 1}, stats)
}

func TestTruncateStopsAtFirstViolation(t *testing.T) {
	in := "10 0.1\n20 0.2\n500 5.0\n30 0.3\n"

	out, stats := Truncate([]byte(in), DefaultSchema, 100)

	assert.Equal(t, "10 0.1\n20 0.2\n", string(out), "row 30 follows the cut and must go")
	assert.Equal(t, 2, stats.Dropped)
}

func TestTruncateGolden(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("testdata", "stat.gp"))
	require.NoError(t, err)

	out, _ := Truncate(in, DefaultSchema, 100)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "truncate_stat", out)
}

func TestTruncateIsIdempotent(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("testdata", "stat.gp"))
	require.NoError(t, err)

	for _, cutoff := range []int64{-1, 0, 50, 100, 250, 1000} {
		once, _ := Truncate(in, DefaultSchema, cutoff)
		twice, stats := Truncate(once, DefaultSchema, cutoff)
		assert.Equal(t, once, twice, "cutoff %d", cutoff)
		assert.Zero(t, stats.Dropped, "cutoff %d", cutoff)
	}
}

func TestTruncatePreservesNonNumericRows(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("testdata", "stat.gp"))
	require.NoError(t, err)

	nonNumeric := func(data []byte) []string {
		var out []string
		for _, row := range ParseRows(data, DefaultSchema) {
			if row.Kind == RowNonNumeric {
				out = append(out, row.Text)
			}
		}
		return out
	}

	for _, cutoff := range []int64{-1, 0, 100, 300} {
		out, _ := Truncate(in, DefaultSchema, cutoff)
		assert.Equal(t, nonNumeric(in), nonNumeric(out), "cutoff %d", cutoff)
	}
}

func TestTruncateWithoutTrailingNewline(t *testing.T) {
	out, stats := Truncate([]byte("0 0.0\n5 0.5"), DefaultSchema, 10)
	assert.Equal(t, "0 0.0\n5 0.5", string(out))
	assert.Zero(t, stats.Dropped)
}

func TestTruncateUsesSchemaColumn(t *testing.T) {
	schema := Schema{StepColumn: 1, TimeColumn: 2}
	in := "a 0 0.0\nb 100 1.0\nc 200 2.0\n"

	out, _ := Truncate([]byte(in), schema, 100)
	assert.Equal(t, "a 0 0.0\nb 100 1.0\n", string(out))
}

func TestTruncateAll(t *testing.T) {
	fs := rundir.NewMem()
	fs.Put("/run/stat.gp", []byte("0 0.0\n100 1.0\n200 2.0\n"))
	fs.Put("/run/steps.gp", []byte("# header\n0 0.0 0.01\n50 0.5 0.01\n"))
	fs.Put("/run/stat_ray.gp", []byte("0 0.0\n300 3.0\n"))
	fs.Put("/run/parameters.in", []byte("&output i_save_fields = 100 /\n"))
	d := fs.Dir("/run")

	results, err := TruncateAll(d, "*.gp", DefaultSchemas(), 100)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byName := make(map[string]FileResult)
	for _, r := range results {
		byName[r.Name] = r
	}
	assert.True(t, byName["stat.gp"].Rewritten)
	assert.False(t, byName["steps.gp"].Rewritten)
	assert.Equal(t, 1, byName["stat_ray.gp"].Dropped)

	data, _ := fs.Get("/run/stat.gp")
	assert.Equal(t, "0 0.0\n100 1.0\n", string(data))
	data, _ = fs.Get("/run/parameters.in")
	assert.Equal(t, "&output i_save_fields = 100 /\n", string(data))
}

func TestPreviewDoesNotWrite(t *testing.T) {
	fs := rundir.NewMem()
	fs.Put("/run/stat.gp", []byte("0 0.0\n100 1.0\n200 2.0\n"))

	results, err := Preview(fs.Dir("/run"), "*.gp", DefaultSchemas(), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Dropped)

	data, _ := fs.Get("/run/stat.gp")
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}
