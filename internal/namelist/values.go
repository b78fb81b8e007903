package namelist

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int returns group.key as an integer.
func (d *Document) Int(group, key string) (int64, error) {
	raw, ok := d.Lookup(group, key)
	if !ok {
		return 0, notFound(group, key)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: not an integer: %q", group, key, raw)
	}
	return v, nil
}

// Float returns group.key as a real. Integers and d exponents are accepted.
func (d *Document) Float(group, key string) (float64, error) {
	raw, ok := d.Lookup(group, key)
	if !ok {
		return 0, notFound(group, key)
	}
	v, ok := ParseReal(raw)
	if !ok {
		return 0, fmt.Errorf("%s.%s: not a real: %q", group, key, raw)
	}
	return v, nil
}

// Bool returns group.key as a logical.
func (d *Document) Bool(group, key string) (bool, error) {
	raw, ok := d.Lookup(group, key)
	if !ok {
		return false, notFound(group, key)
	}
	v, ok := ParseLogical(raw)
	if !ok {
		return false, fmt.Errorf("%s.%s: not a logical: %q", group, key, raw)
	}
	return v, nil
}

// Text returns group.key with surrounding quotes removed.
func (d *Document) Text(group, key string) (string, error) {
	raw, ok := d.Lookup(group, key)
	if !ok {
		return "", notFound(group, key)
	}
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		q := string(raw[0])
		return strings.ReplaceAll(raw[1:len(raw)-1], q+q, q), nil
	}
	return raw, nil
}

// SetInt stores an integer.
func (d *Document) SetInt(group, key string, v int64) {
	d.Set(group, key, strconv.FormatInt(v, 10))
}

// SetFloat stores a real.
func (d *Document) SetFloat(group, key string, v float64) {
	d.Set(group, key, FormatReal(v))
}

// SetBool stores a logical.
func (d *Document) SetBool(group, key string, v bool) {
	d.Set(group, key, FormatLogical(v))
}

// ParseReal parses a Fortran real literal.
func ParseReal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("d", "e", "D", "e").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatReal renders v so that Fortran reads it as a real.
func FormatReal(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ParseLogical parses .true., .false., T, F and their variants.
func ParseLogical(raw string) (bool, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, ".")
	switch {
	case strings.HasPrefix(s, "t"):
		return true, true
	case strings.HasPrefix(s, "f"):
		return false, true
	}
	return false, false
}

// FormatLogical renders a Fortran logical.
func FormatLogical(v bool) string {
	if v {
		return ".true."
	}
	return ".false."
}
