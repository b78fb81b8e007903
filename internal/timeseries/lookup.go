package timeseries

// TimeSource records where a resumption time came from.
type TimeSource string

const (
	// TimeFromLog means the time was read from a row logged at the step.
	TimeFromLog TimeSource = "log"
	// TimeFromStep means no such row existed and the time is step*dt.
	TimeFromStep TimeSource = "fallback"
)

// LookupTime returns the time of the last data row logged at step.
func LookupTime(data []byte, schema Schema, step int64) (float64, bool) {
	var (
		t     float64
		found bool
	)
	for _, row := range ParseRows(data, schema) {
		if row.Kind != RowData || row.Step != step {
			continue
		}
		if v, ok := row.Time(schema); ok {
			t, found = v, true
		}
	}
	return t, found
}

// ResolveTime returns the simulation time at step. A nil log means the
// primary log is absent. When the log has no row for step, which happens
// when logging and saving cadences differ, the time is estimated as step*dt.
func ResolveTime(log []byte, schema Schema, step int64, dt float64) (float64, TimeSource) {
	if log != nil {
		if t, ok := LookupTime(log, schema, step); ok {
			return t, TimeFromLog
		}
	}
	return float64(step) * dt, TimeFromStep
}
