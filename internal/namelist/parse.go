package namelist

import (
	"fmt"
	"strings"
)

// Parse reads a namelist document.
func Parse(data []byte) (*Document, error) {
	p := &parser{doc: &Document{}}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		if err := p.line(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if p.group != nil {
		return nil, fmt.Errorf("group &%s is not terminated", p.group.Name)
	}
	p.doc.Trailing = p.pending
	return p.doc, nil
}

type parser struct {
	doc     *Document
	group   *Group
	last    *Entry
	pending []string
}

func (p *parser) line(line string) error {
	if p.group == nil {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "&") && !strings.HasPrefix(trimmed, "$") {
			p.pending = append(p.pending, line)
			return nil
		}
		name, rest := trimmed[1:], ""
		if i := strings.IndexAny(name, " \t/"); i >= 0 {
			name, rest = name[:i], name[i:]
		}
		if name == "" {
			return fmt.Errorf("group without a name")
		}
		if strings.EqualFold(name, "end") {
			return fmt.Errorf("&end outside a group")
		}
		p.group = &Group{Name: name, Leading: p.pending}
		p.pending = nil
		p.last = nil
		return p.body(rest)
	}
	return p.body(line)
}

// body consumes assignments until the end of line or the group terminator.
func (p *parser) body(text string) error {
	code, comment := splitComment(text)

	closed := false
	if i := indexUnquoted(code, '/'); i >= 0 {
		code, closed = code[:i], true
	} else if trimmed := strings.TrimSpace(code); hasEndMarker(trimmed) {
		code, closed = trimmed[:len(trimmed)-len("&end")], true
	}

	if strings.TrimSpace(code) == "" {
		if comment != "" {
			p.group.Entries = append(p.group.Entries, &Entry{Comment: comment})
		}
	} else {
		var lineEntry *Entry
		for _, piece := range splitUnquoted(code, ',') {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if eq := indexUnquoted(piece, '='); eq >= 0 {
				key := strings.TrimSpace(piece[:eq])
				if key == "" {
					return fmt.Errorf("assignment without a name")
				}
				p.last = &Entry{Key: key, Value: strings.TrimSpace(piece[eq+1:])}
				p.group.Entries = append(p.group.Entries, p.last)
				lineEntry = p.last
				continue
			}
			if p.last == nil {
				return fmt.Errorf("value %q without a name", piece)
			}
			p.last.Value += ", " + piece
			lineEntry = p.last
		}
		if comment != "" && lineEntry != nil {
			lineEntry.Comment = comment
		}
	}

	if closed {
		p.doc.Groups = append(p.doc.Groups, p.group)
		p.group = nil
		p.last = nil
	}
	return nil
}

func hasEndMarker(code string) bool {
	lower := strings.ToLower(code)
	return strings.HasSuffix(lower, "&end") || strings.HasSuffix(lower, "$end")
}

// splitComment separates code from a trailing ! comment.
func splitComment(text string) (string, string) {
	if i := indexUnquoted(text, '!'); i >= 0 {
		return text[:i], strings.TrimSpace(text[i:])
	}
	return text, ""
}

func indexUnquoted(s string, c byte) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch {
		case quote != 0:
			if s[i] == quote {
				quote = 0
			}
		case s[i] == '\'' || s[i] == '"':
			quote = s[i]
		case s[i] == c:
			return i
		}
	}
	return -1
}

// splitUnquoted splits on sep outside quotes and parentheses.
func splitUnquoted(s string, sep byte) []string {
	var (
		parts []string
		quote byte
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch {
		case quote != 0:
			if s[i] == quote {
				quote = 0
			}
		case s[i] == '\'' || s[i] == '"':
			quote = s[i]
		case s[i] == '(':
			depth++
		case s[i] == ')':
			if depth > 0 {
				depth--
			}
		case s[i] == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
