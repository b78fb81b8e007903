package namelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "parameters.in"))
	require.NoError(t, err)
	doc, err := Parse(data)
	require.NoError(t, err)
	return doc
}

func TestParseTypedValues(t *testing.T) {
	doc := loadFixture(t)

	nx, err := doc.Int("grid", "nx")
	require.NoError(t, err)
	assert.Equal(t, int64(64), nx)

	nz, err := doc.Int("GRID", "NZ")
	require.NoError(t, err)
	assert.Equal(t, int64(64), nz)

	dt, err := doc.Float("time_stepping", "dt")
	require.NoError(t, err)
	assert.Equal(t, 0.01, dt)

	re, err := doc.Float("physics", "re")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, re)

	label, err := doc.Text("output", "label")
	require.NoError(t, err)
	assert.Equal(t, "run, a", label)

	_, err = doc.Int("physics", "ha")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = doc.Int("time_stepping", "dt")
	assert.Error(t, err)
}

func TestFormatAfterMutationGolden(t *testing.T) {
	doc := loadFixture(t)

	doc.SetInt("initiation", "ic", 4)
	doc.SetInt("initiation", "i_start", 400)
	doc.SetFloat("initiation", "t_start", 3.97)
	doc.SetInt("termination", "i_finish", 15000)
	doc.SetBool("physics", "sigma_r", false)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "continued", Format(doc))
}

func TestRoundTripIsStable(t *testing.T) {
	doc := loadFixture(t)
	once := Format(doc)

	again, err := Parse(once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(Format(again)))
}

func TestSetAppendsMissingGroupAndKey(t *testing.T) {
	doc, err := Parse([]byte("&physics\n  re = 100.0\n/\n"))
	require.NoError(t, err)

	doc.SetBool("physics", "sigma_r", false)
	doc.SetInt("initiation", "ic", 0)

	assert.Equal(t, "&physics\n  re = 100.0\n  sigma_r = .false.\n/\n&initiation\n  ic = 0\n/\n", string(Format(doc)))
}

func TestParseInlineGroupsAndArrays(t *testing.T) {
	doc, err := Parse([]byte("&output i_save_fields = 50 /\n&grid\n  shape = 1, 2,\n    3\n/\n$termination i_finish = 7 $end\n"))
	require.NoError(t, err)
	require.Len(t, doc.Groups, 3)

	v, err := doc.Int("output", "i_save_fields")
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)

	shape, ok := doc.Lookup("grid", "shape")
	require.True(t, ok)
	assert.Equal(t, "1, 2, 3", shape)

	fin, err := doc.Int("termination", "i_finish")
	require.NoError(t, err)
	assert.Equal(t, int64(7), fin)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unterminated": "&grid\n  nx = 4\n",
		"orphan value": "&grid\n  4\n/\n",
		"no name":      "&\n/\n",
		"empty key":    "&grid\n  = 4\n/\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLogicalAndRealLiterals(t *testing.T) {
	for raw, want := range map[string]bool{".true.": true, "T": true, ".F.": false, "false": false} {
		got, ok := ParseLogical(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseLogical("0.01")
	assert.False(t, ok)

	assert.Equal(t, "4.0", FormatReal(4))
	assert.Equal(t, "0.5", FormatReal(0.5))
	assert.Equal(t, "1e-07", FormatReal(1e-7))

	v, ok := ParseReal("2.5D+01")
	assert.True(t, ok)
	assert.Equal(t, 25.0, v)
}

func TestCloneIsIndependent(t *testing.T) {
	doc := loadFixture(t)
	clone := doc.Clone()
	clone.SetInt("initiation", "ic", 9)

	ic, err := doc.Int("initiation", "ic")
	require.NoError(t, err)
	assert.Equal(t, int64(0), ic)
}

func TestFileStore(t *testing.T) {
	fs := rundir.NewMem()
	fs.Put("/run/parameters.in", []byte("&initiation\n  ic = 3\n/\n"))
	d := fs.Dir("/run")
	store := FileStore{}

	doc, err := store.Load(d)
	require.NoError(t, err)
	doc.SetInt("initiation", "ic", 0)
	require.NoError(t, store.Save(d, doc))

	data, _ := fs.Get("/run/parameters.in")
	assert.Equal(t, "&initiation\n  ic = 0\n/\n", string(data))

	_, err = FileStore{Name: "other.in"}.Load(d)
	assert.Error(t, err)
}
