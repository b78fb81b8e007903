package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTimeFromLog(t *testing.T) {
	log := []byte("# step time\n0 0.0\n400 3.95\n400 3.97\n500 4.9\n")

	got, source := ResolveTime(log, DefaultSchema, 400, 0.01)
	assert.Equal(t, 3.97, got, "last matching row wins")
	assert.Equal(t, TimeFromLog, source)
}

func TestResolveTimeFallback(t *testing.T) {
	tests := []struct {
		name string
		log  []byte
	}{
		{"absent", nil},
		{"empty", []byte{}},
		{"no match", []byte("0 0.0\n300 3.0\n500 5.0\n")},
		{"only comments", []byte("# nothing yet\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := ResolveTime(tt.log, DefaultSchema, 400, 0.01)
			assert.InDelta(t, 4.0, got, 1e-12)
			assert.Equal(t, TimeFromStep, source)
		})
	}
}

func TestLookupTimeFortranExponent(t *testing.T) {
	got, ok := LookupTime([]byte("200 2.5D+00 1.0\n"), DefaultSchema, 200)
	assert.True(t, ok)
	assert.Equal(t, 2.5, got)
}

func TestLookupTimeSkipsRowsWithoutTime(t *testing.T) {
	_, ok := LookupTime([]byte("200\n"), DefaultSchema, 200)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	log := []byte("# header\n0 0.0\n100 1.0\n50 0.5\n# note\n60 0.6\n40 0.4\n")

	got := Validate(log, DefaultSchema)
	assert.Equal(t, []Violation{
		{Line: 4, Step: 50, Previous: 100},
		{Line: 7, Step: 40, Previous: 60},
	}, got)
	assert.Equal(t, "line 4: step 50 after step 100", got[0].String())
}

func TestValidateOrderedLog(t *testing.T) {
	assert.Empty(t, Validate([]byte("0 0\n0 0\n10 1\n"), DefaultSchema))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]byte("# h\n10 0.1\n20 0.2\n15 0.15\n"), DefaultSchema)
	assert.Equal(t, Summary{
		Rows:       4,
		DataRows:   3,
		FirstStep:  10,
		LastStep:   15,
		LastTime:   0.15,
		HasTime:    true,
		OutOfOrder: 1,
	}, s)
}

func TestParseRowsClassification(t *testing.T) {
	rows := ParseRows([]byte("\n# c\n12 1.0\n1.5e2 2.0\nx\n"), DefaultSchema)
	kinds := make([]RowKind, len(rows))
	for i, r := range rows {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []RowKind{RowNonNumeric, RowNonNumeric, RowData, RowNonNumeric, RowNonNumeric}, kinds)
	assert.Equal(t, int64(12), rows[2].Step)
}
