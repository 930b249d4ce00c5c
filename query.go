package arxsense

import (
	"fmt"
	"strings"

	"github.com/arxlang/arxsense/internal/store"
)

// QueryBuilder provides the host-facing, read-only query API over the
// registry. Every operation answers "unknown" with an empty result and a
// nil error — queries never fail on missing data.
type QueryBuilder struct {
	store *store.Store
}

// CandidateKind tags a completion candidate so hosts can map it to their
// own completion-item kinds.
type CandidateKind string

const (
	KindKeyword  CandidateKind = "keyword"
	KindLibrary  CandidateKind = "library"
	KindFunction CandidateKind = "function"
)

// Candidate is one completion item. Function candidates carry a one-line
// signature in Detail for display.
type Candidate struct {
	Label  string
	Kind   CandidateKind
	Detail string
}

// SignatureInfo is the answer shape for signature help: a rendered
// signature, the parameter type list, and the index of the parameter to
// highlight. For a zero-argument function ActiveParam is 0 with an empty
// Params list — nothing to highlight.
type SignatureInfo struct {
	Label       string
	Params      []string
	ActiveParam int
}

// arxKeywords is the fixed reserved-word vocabulary of ARX. It is offered
// as a completion source unconditionally, independent of registry state.
var arxKeywords = []string{
	"using", "func", "return",
	"if", "else", "while", "for",
	"break", "continue",
	"true", "false", "null",
}

// Keywords returns the ARX reserved-word vocabulary. The result is a
// fresh copy; callers may reorder or filter it freely.
func Keywords() []string {
	out := make([]string, len(arxKeywords))
	copy(out, arxKeywords)
	return out
}

// LibraryNames returns every registered library name, sorted.
func (q *QueryBuilder) LibraryNames() ([]string, error) {
	return q.store.LibraryNames()
}

// CompleteMembers returns the functions of library whose names start with
// prefix (case-sensitive), in declaration order. An unknown library yields
// an empty result.
func (q *QueryBuilder) CompleteMembers(library, prefix string) ([]Candidate, error) {
	funcs, err := q.store.FunctionsByLibrary(library)
	if err != nil {
		return nil, fmt.Errorf("complete members: %w", err)
	}

	var cands []Candidate
	for _, fn := range funcs {
		if !strings.HasPrefix(fn.Name, prefix) {
			continue
		}
		cands = append(cands, Candidate{
			Label:  fn.Name,
			Kind:   KindFunction,
			Detail: Signature(fn),
		})
	}
	return cands, nil
}

// SignatureHelp returns the signature of the first function named
// function in library, with the active parameter derived from the comma
// count at the call site, clamped to the function's arity. Returns nil
// (no error) when the library or function is unknown.
func (q *QueryBuilder) SignatureHelp(library, function string, commas int) (*SignatureInfo, error) {
	fn, err := q.store.FunctionByName(library, function)
	if err != nil {
		return nil, fmt.Errorf("signature help: %w", err)
	}
	if fn == nil {
		return nil, nil
	}

	active := commas
	if active < 0 {
		active = 0
	}
	if last := len(fn.ArgTypes) - 1; active > last {
		// Zero-argument functions clamp to 0; the empty Params list tells
		// the host there is nothing to highlight.
		if last < 0 {
			active = 0
		} else {
			active = last
		}
	}

	return &SignatureInfo{
		Label:       Signature(fn),
		Params:      fn.ArgTypes,
		ActiveParam: active,
	}, nil
}

// CompletionsAt classifies the editing position and returns the matching
// completion candidates. The keyword vocabulary is always included; the
// registry-backed sources join in when the position calls for them.
func (q *QueryBuilder) CompletionsAt(line string, cursor int) ([]Candidate, error) {
	cands := make([]Candidate, 0, len(arxKeywords))
	for _, kw := range arxKeywords {
		cands = append(cands, Candidate{Label: kw, Kind: KindKeyword})
	}

	ctx := Analyze(line, cursor)
	switch ctx.Kind {
	case ContextLibraryKeyword:
		names, err := q.LibraryNames()
		if err != nil {
			return nil, fmt.Errorf("completions at: %w", err)
		}
		for _, name := range names {
			cands = append(cands, Candidate{Label: name, Kind: KindLibrary})
		}
	case ContextMemberPrefix:
		members, err := q.CompleteMembers(ctx.Library, ctx.Prefix)
		if err != nil {
			return nil, fmt.Errorf("completions at: %w", err)
		}
		cands = append(cands, members...)
	}
	return cands, nil
}

// SignatureHelpAt classifies the editing position and returns signature
// help when the cursor sits inside a call expression. Returns nil (no
// error) for any other position.
func (q *QueryBuilder) SignatureHelpAt(line string, cursor int) (*SignatureInfo, error) {
	ctx := Analyze(line, cursor)
	if ctx.Kind != ContextCallSite {
		return nil, nil
	}
	return q.SignatureHelp(ctx.Library, ctx.Function, ctx.Commas)
}

// Signature renders a function record as a one-line display signature:
// "name(arg, arg) -> ret".
func Signature(fn *store.Function) string {
	return fmt.Sprintf("%s(%s) -> %s",
		fn.Name, strings.Join(fn.ArgTypes, ", "), fn.ReturnType)
}
