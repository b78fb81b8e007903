package namelist

import (
	"fmt"
	"strings"

	"github.com/fentz26/dnsrun/internal/rundir"
)

// DefaultFile is the parameter file name the solver reads.
const DefaultFile = "parameters.in"

// Format renders a document. Every group is written as
//
//	&name
//	  key = value
//	/
//
// with leading and trailing free text kept verbatim.
func Format(d *Document) []byte {
	var b strings.Builder
	for _, g := range d.Groups {
		for _, line := range g.Leading {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "&%s\n", g.Name)
		for _, e := range g.Entries {
			switch {
			case e.Key == "":
				fmt.Fprintf(&b, "  %s\n", e.Comment)
			case e.Comment != "":
				fmt.Fprintf(&b, "  %s = %s %s\n", e.Key, e.Value, e.Comment)
			default:
				fmt.Fprintf(&b, "  %s = %s\n", e.Key, e.Value)
			}
		}
		b.WriteString("/\n")
	}
	for _, line := range d.Trailing {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// FileStore loads and saves a namelist file inside a run directory.
type FileStore struct {
	Name string
}

func (s FileStore) name() string {
	if s.Name == "" {
		return DefaultFile
	}
	return s.Name
}

// Load reads and parses the parameter file of d.
func (s FileStore) Load(d rundir.Dir) (*Document, error) {
	data, err := rundir.ReadFile(d, s.name())
	if err != nil {
		return nil, fmt.Errorf("read parameters: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.name(), err)
	}
	return doc, nil
}

// Save writes doc as the parameter file of d in one atomic replace.
func (s FileStore) Save(d rundir.Dir, doc *Document) error {
	if err := rundir.WriteFile(d, s.name(), Format(doc)); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}
	return nil
}
