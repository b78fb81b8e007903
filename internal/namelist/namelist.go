// Package namelist reads and writes Fortran namelist files such as the
// solver's parameters.in.
//
// A Document keeps groups, entries and comments in file order and stores
// values as their source text, so that entries which are not modified are
// written back exactly as they were read. Group and key names compare
// case-insensitively, as in Fortran.
package namelist

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a group or key is absent.
var ErrNotFound = errors.New("namelist entry not found")

// Document is a parsed namelist file.
type Document struct {
	Groups []*Group
	// Trailing holds lines after the last group.
	Trailing []string
}

// Group is a named namelist group (&name ... /).
type Group struct {
	Name    string
	Entries []*Entry
	// Leading holds lines between the previous group and this one.
	Leading []string
}

// Entry is one assignment, or a comment line when Key is empty.
type Entry struct {
	Key     string
	Value   string
	Comment string
}

// Group returns the named group.
func (d *Document) Group(name string) (*Group, bool) {
	for _, g := range d.Groups {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return nil, false
}

// Lookup returns the source text of group.key.
func (d *Document) Lookup(group, key string) (string, bool) {
	g, ok := d.Group(group)
	if !ok {
		return "", false
	}
	e, ok := g.entry(key)
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Has reports whether group.key is set.
func (d *Document) Has(group, key string) bool {
	_, ok := d.Lookup(group, key)
	return ok
}

// Set stores raw source text for group.key, appending the group or key
// when absent.
func (d *Document) Set(group, key, raw string) {
	g, ok := d.Group(group)
	if !ok {
		g = &Group{Name: group}
		d.Groups = append(d.Groups, g)
	}
	if e, ok := g.entry(key); ok {
		e.Value = raw
		return
	}
	g.Entries = append(g.Entries, &Entry{Key: key, Value: raw})
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{Trailing: append([]string(nil), d.Trailing...)}
	for _, g := range d.Groups {
		cg := &Group{Name: g.Name, Leading: append([]string(nil), g.Leading...)}
		for _, e := range g.Entries {
			ce := *e
			cg.Entries = append(cg.Entries, &ce)
		}
		out.Groups = append(out.Groups, cg)
	}
	return out
}

func (g *Group) entry(key string) (*Entry, bool) {
	for _, e := range g.Entries {
		if e.Key != "" && strings.EqualFold(e.Key, key) {
			return e, true
		}
	}
	return nil, false
}

func notFound(group, key string) error {
	return fmt.Errorf("%s.%s: %w", group, key, ErrNotFound)
}
