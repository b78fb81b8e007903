package timeseries

import (
	"bytes"
	"strconv"
	"strings"
)

// RowKind classifies a log line.
type RowKind int

const (
	// RowNonNumeric is a line whose step column is absent or not an integer.
	RowNonNumeric RowKind = iota
	// RowData is a line with an integer step.
	RowData
)

// Row is one line of a log. Text keeps the line terminator so that
// concatenating every Text reproduces the file byte for byte.
type Row struct {
	Line int
	Text string
	Kind RowKind
	Step int64
}

// ParseRows splits data into classified rows.
func ParseRows(data []byte, schema Schema) []Row {
	var rows []Row
	for line := 1; len(data) > 0; line++ {
		end := bytes.IndexByte(data, '\n')
		if end < 0 {
			end = len(data)
		} else {
			end++
		}
		text := string(data[:end])
		data = data[end:]

		row := Row{Line: line, Text: text}
		if step, ok := parseStep(text, schema); ok {
			row.Kind = RowData
			row.Step = step
		}
		rows = append(rows, row)
	}
	return rows
}

func parseStep(text string, schema Schema) (int64, bool) {
	tok, ok := column(text, schema.StepColumn)
	if !ok {
		return 0, false
	}
	step, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return step, true
}

// Time returns the value of the time column of a data row.
func (r Row) Time(schema Schema) (float64, bool) {
	if r.Kind != RowData {
		return 0, false
	}
	tok, ok := column(r.Text, schema.TimeColumn)
	if !ok {
		return 0, false
	}
	return ParseReal(tok)
}

// ParseReal parses a Fortran-style real, accepting d/D exponents.
func ParseReal(tok string) (float64, bool) {
	tok = strings.NewReplacer("d", "e", "D", "e").Replace(tok)
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func column(text string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	fields := strings.Fields(text)
	if index >= len(fields) {
		return "", false
	}
	return fields[index], true
}
