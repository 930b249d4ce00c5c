// Package descriptor parses ARX library descriptor files (.map) into
// ordered function records. Parsing is pure: no I/O, no state, and no
// pattern-matching dependency — a small hand-written line scanner keeps
// the grammar and its failure behavior auditable.
package descriptor

import "strings"

// Function is one exported function declared by a descriptor file.
type Function struct {
	Name       string
	ArgTypes   []string
	Alias      string
	ReturnType string
}

// marker opens the declarations section. Everything before it is free-form
// preamble and is ignored.
const marker = "[functions]"

// Parse extracts function records from raw descriptor text.
//
// The format is forgiving: a file without a [functions] marker contributes
// zero records, and lines inside the section that don't match the shape
//
//	name:type(,type)* = alias > returnType
//
// are silently skipped — comments, blank lines, and malformed entries are
// all treated the same way. Whitespace is tolerated around '=' and '>'.
// Record order equals the order of matching lines.
func Parse(text string) []Function {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return nil
	}
	section := text[idx+len(marker):]

	var funcs []Function
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if fn, ok := parseLine(line); ok {
			funcs = append(funcs, fn)
		}
	}
	return funcs
}

// parseLine matches a single declaration line. The first token before the
// colon is the function's own name; the colon introduces the argument type
// list, which may be empty (zero-argument function).
func parseLine(line string) (Function, bool) {
	s := &lineScanner{src: line}

	name := s.ident()
	if name == "" || !s.consume(':') {
		return Function{}, false
	}

	// ArgTypes is never nil: a zero-argument function carries the empty list.
	args := []string{}
	if t := s.ident(); t != "" {
		args = append(args, t)
		for s.consume(',') {
			t = s.ident()
			if t == "" {
				return Function{}, false
			}
			args = append(args, t)
		}
	}

	s.skipSpace()
	if !s.consume('=') {
		return Function{}, false
	}
	s.skipSpace()
	alias := s.ident()
	if alias == "" {
		return Function{}, false
	}
	s.skipSpace()
	if !s.consume('>') {
		return Function{}, false
	}
	s.skipSpace()
	ret := s.ident()
	if ret == "" {
		return Function{}, false
	}
	s.skipSpace()
	if !s.eof() {
		return Function{}, false
	}

	return Function{Name: name, ArgTypes: args, Alias: alias, ReturnType: ret}, true
}

// lineScanner is a minimal cursor over a single line.
type lineScanner struct {
	src string
	pos int
}

func (s *lineScanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *lineScanner) consume(c byte) bool {
	if s.eof() || s.src[s.pos] != c {
		return false
	}
	s.pos++
	return true
}

func (s *lineScanner) skipSpace() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// ident consumes an identifier ([A-Za-z_][A-Za-z0-9_]*) and returns it,
// or returns "" without advancing when the next character can't start one.
func (s *lineScanner) ident() string {
	if s.eof() || !isIdentStart(s.src[s.pos]) {
		return ""
	}
	start := s.pos
	for !s.eof() && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
