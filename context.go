package arxsense

// ContextKind classifies what the cursor position is asking about.
type ContextKind int

const (
	// ContextNone means no pattern matched; queries answer with nothing.
	ContextNone ContextKind = iota

	// ContextLibraryKeyword means the cursor sits just after the "using"
	// keyword: complete library names.
	ContextLibraryKeyword

	// ContextMemberPrefix means the line ends with "lib.prefix": complete
	// the library's function names.
	ContextMemberPrefix

	// ContextCallSite means the cursor is inside "lib.fn(...": show the
	// function's signature with the active parameter highlighted.
	ContextCallSite
)

// Context is the classified editing intent for one (line, cursor) pair.
// It is ephemeral: recomputed per query, never stored.
type Context struct {
	Kind     ContextKind
	Library  string
	Prefix   string // member prefix typed so far (may be empty)
	Function string // call-site function name
	Commas   int    // commas between the call's open paren and the cursor
}

// libraryKeyword introduces a library import in ARX source.
const libraryKeyword = "using"

// Analyze classifies the editing position from the current line text and a
// cursor offset into that line. The three patterns are mutually exclusive
// and tried in priority order; each is a small hand-written scan rather
// than a regular expression so the capture semantics stay auditable.
//
// Member completion is evaluated against the full line (it does not depend
// on cursor position); the keyword and call-site patterns only look at the
// text before the cursor.
func Analyze(line string, cursor int) Context {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}
	before := line[:cursor]

	if afterLibraryKeyword(before) {
		return Context{Kind: ContextLibraryKeyword}
	}
	if lib, prefix, ok := memberPrefix(line); ok {
		return Context{Kind: ContextMemberPrefix, Library: lib, Prefix: prefix}
	}
	if lib, fn, commas, ok := callSite(before); ok {
		return Context{Kind: ContextCallSite, Library: lib, Function: fn, Commas: commas}
	}
	return Context{Kind: ContextNone}
}

// afterLibraryKeyword reports whether text is exactly optional leading
// whitespace, the "using" keyword, and at least one trailing whitespace
// character — with nothing else before the cursor.
func afterLibraryKeyword(text string) bool {
	i := 0
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if len(text)-i <= len(libraryKeyword) || text[i:i+len(libraryKeyword)] != libraryKeyword {
		return false
	}
	rest := text[i+len(libraryKeyword):]
	for j := 0; j < len(rest); j++ {
		if !isSpace(rest[j]) {
			return false
		}
	}
	return true
}

// memberPrefix matches "identifier, dot, zero or more identifier
// characters" anchored at the end of the full line. Anything before the
// identifier is ignored.
func memberPrefix(line string) (lib, prefix string, ok bool) {
	i := len(line)
	for i > 0 && isIdentChar(line[i-1]) {
		i--
	}
	prefix = line[i:]
	if i == 0 || line[i-1] != '.' {
		return "", "", false
	}
	dot := i - 1

	j := dot
	for j > 0 && isIdentChar(line[j-1]) {
		j--
	}
	if j == dot || !isIdentStart(line[j]) {
		return "", "", false
	}
	return line[j:dot], prefix, true
}

// callSite scans the text before the cursor for the last occurrence of
// "identifier, dot, identifier, open paren" and counts the commas between
// that paren and the cursor. The comma count is raw: clamping against the
// matched function's arity happens at signature-help time, when the
// registry record is known.
func callSite(text string) (lib, fn string, commas int, ok bool) {
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] != '(' {
			continue
		}
		l, f, matched := dottedCallBefore(text, i)
		if !matched {
			continue
		}
		for k := i + 1; k < len(text); k++ {
			if text[k] == ',' {
				commas++
			}
		}
		return l, f, commas, true
	}
	return "", "", 0, false
}

// dottedCallBefore tries to read "lib.fn" ending immediately before the
// open paren at text[paren].
func dottedCallBefore(text string, paren int) (lib, fn string, ok bool) {
	j := paren
	for j > 0 && isIdentChar(text[j-1]) {
		j--
	}
	if j == paren || !isIdentStart(text[j]) {
		return "", "", false
	}
	fn = text[j:paren]

	if j == 0 || text[j-1] != '.' {
		return "", "", false
	}
	dot := j - 1

	k := dot
	for k > 0 && isIdentChar(text[k-1]) {
		k--
	}
	if k == dot || !isIdentStart(text[k]) {
		return "", "", false
	}
	return text[k:dot], fn, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
