package arxsense

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_LibraryKeyword(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   ContextKind
	}{
		{"keyword and space", "using ", 6, ContextLibraryKeyword},
		{"leading whitespace", "   using ", 9, ContextLibraryKeyword},
		{"tab after keyword", "using\t", 6, ContextLibraryKeyword},
		{"no trailing space", "using", 5, ContextNone},
		{"text after keyword", "using ma", 8, ContextNone},
		{"keyword as prefix of ident", "usingx ", 7, ContextNone},
		{"cursor before keyword end", "using ", 3, ContextNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Analyze(tt.line, tt.cursor)
			assert.Equal(t, tt.want, ctx.Kind)
		})
	}
}

func TestAnalyze_MemberPrefix(t *testing.T) {
	ctx := Analyze("mathlib.co", 10)
	assert.Equal(t, ContextMemberPrefix, ctx.Kind)
	assert.Equal(t, "mathlib", ctx.Library)
	assert.Equal(t, "co", ctx.Prefix)
}

func TestAnalyze_MemberPrefix_EmptyAfterDot(t *testing.T) {
	ctx := Analyze("mathlib.", 8)
	assert.Equal(t, ContextMemberPrefix, ctx.Kind)
	assert.Equal(t, "mathlib", ctx.Library)
	assert.Equal(t, "", ctx.Prefix)
}

func TestAnalyze_MemberPrefix_FullLineNotCursor(t *testing.T) {
	// Member completion is evaluated at end-of-line regardless of cursor.
	ctx := Analyze("x = mathlib.co", 3)
	assert.Equal(t, ContextMemberPrefix, ctx.Kind)
	assert.Equal(t, "mathlib", ctx.Library)
	assert.Equal(t, "co", ctx.Prefix)
}

func TestAnalyze_MemberPrefix_NumberLiteralRejected(t *testing.T) {
	// "3.14" must not read as library "3" member "14".
	ctx := Analyze("x = 3.14", 8)
	assert.Equal(t, ContextNone, ctx.Kind)
}

func TestAnalyze_CallSite(t *testing.T) {
	line := "mathlib.add(1,"
	ctx := Analyze(line, len(line))
	assert.Equal(t, ContextCallSite, ctx.Kind)
	assert.Equal(t, "mathlib", ctx.Library)
	assert.Equal(t, "add", ctx.Function)
	assert.Equal(t, 1, ctx.Commas)
}

func TestAnalyze_CallSite_NoCommaYet(t *testing.T) {
	line := "mathlib.add("
	ctx := Analyze(line, len(line))
	assert.Equal(t, ContextCallSite, ctx.Kind)
	assert.Equal(t, 0, ctx.Commas)
}

func TestAnalyze_CallSite_LastOccurrenceWins(t *testing.T) {
	line := "strlib.concat(mathlib.add(1,"
	ctx := Analyze(line, len(line))
	assert.Equal(t, ContextCallSite, ctx.Kind)
	assert.Equal(t, "mathlib", ctx.Library)
	assert.Equal(t, "add", ctx.Function)
	assert.Equal(t, 1, ctx.Commas)
}

func TestAnalyze_CallSite_PositionSensitive(t *testing.T) {
	// The cursor sits right after the open paren: the comma typed later on
	// the line does not count.
	line := "mathlib.add(1,2)"
	ctx := Analyze(line, len("mathlib.add("))
	assert.Equal(t, ContextCallSite, ctx.Kind)
	assert.Equal(t, 0, ctx.Commas)
}

func TestAnalyze_CallSite_BareCallRejected(t *testing.T) {
	line := "add(1,"
	ctx := Analyze(line, len(line))
	assert.Equal(t, ContextNone, ctx.Kind)
}

func TestAnalyze_NoMatch(t *testing.T) {
	for _, line := range []string{"", "x = 1 + 2", "return value", "   "} {
		ctx := Analyze(line, len(line))
		assert.Equal(t, ContextNone, ctx.Kind, "line %q", line)
	}
}

func TestAnalyze_CursorClamped(t *testing.T) {
	ctx := Analyze("using ", 100)
	assert.Equal(t, ContextLibraryKeyword, ctx.Kind)

	ctx = Analyze("mathlib.add(", -5)
	// Negative cursor clamps to 0; the member pattern still sees the full
	// line but the call-site pattern sees nothing.
	assert.NotEqual(t, ContextCallSite, ctx.Kind)
}
