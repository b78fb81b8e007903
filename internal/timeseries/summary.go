package timeseries

// Summary describes the extent of a log.
type Summary struct {
	Rows       int     `json:"rows"`
	DataRows   int     `json:"data_rows"`
	FirstStep  int64   `json:"first_step"`
	LastStep   int64   `json:"last_step"`
	LastTime   float64 `json:"last_time"`
	HasTime    bool    `json:"has_time"`
	OutOfOrder int     `json:"out_of_order"`
}

// Summarize scans a log once and reports its extent.
func Summarize(data []byte, schema Schema) Summary {
	var s Summary
	for _, row := range ParseRows(data, schema) {
		s.Rows++
		if row.Kind != RowData {
			continue
		}
		if s.DataRows == 0 {
			s.FirstStep = row.Step
		} else if row.Step < s.LastStep {
			s.OutOfOrder++
		}
		s.DataRows++
		s.LastStep = row.Step
		s.LastTime, s.HasTime = row.Time(schema)
	}
	return s
}
