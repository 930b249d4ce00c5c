package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleDeclaration(t *testing.T) {
	funcs := Parse("[functions]\nconcat:str,str = strconcat > str\n")
	require.Len(t, funcs, 1)

	fn := funcs[0]
	assert.Equal(t, "concat", fn.Name)
	assert.Equal(t, []string{"str", "str"}, fn.ArgTypes)
	assert.Equal(t, "strconcat", fn.Alias)
	assert.Equal(t, "str", fn.ReturnType)
}

func TestParse_NoMarker(t *testing.T) {
	funcs := Parse("concat:str,str = strconcat > str\n")
	assert.Empty(t, funcs)
}

func TestParse_PreambleIgnored(t *testing.T) {
	text := "ARX string library\nversion 3\n\n[functions]\nlen:str = strlen > int\n"
	funcs := Parse(text)
	require.Len(t, funcs, 1)
	assert.Equal(t, "len", funcs[0].Name)
}

func TestParse_NonMatchingLinesSkipped(t *testing.T) {
	text := "[functions]\n" +
		"not a valid line\n" +
		"\n" +
		"# comment-ish\n" +
		"add:int,int = iadd > int\n" +
		"trailing junk: here\n"
	funcs := Parse(text)
	require.Len(t, funcs, 1)
	assert.Equal(t, "add", funcs[0].Name)
}

func TestParse_ZeroArgumentFunction(t *testing.T) {
	funcs := Parse("[functions]\nnow: = clock_now > int\n")
	require.Len(t, funcs, 1)

	fn := funcs[0]
	assert.Equal(t, "now", fn.Name)
	require.NotNil(t, fn.ArgTypes)
	assert.Empty(t, fn.ArgTypes)
	assert.Equal(t, "clock_now", fn.Alias)
	assert.Equal(t, "int", fn.ReturnType)
}

func TestParse_WhitespaceAroundSeparators(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{"tight", "f:int=g>int", true},
		{"spaced", "f:int = g > int", true},
		{"tabs", "f:int\t=\tg\t>\tint", true},
		{"extra spaces", "f:int   =   g   >   int", true},
		{"missing alias", "f:int = > int", false},
		{"missing return", "f:int = g >", false},
		{"missing equals", "f:int g > int", false},
		{"trailing comma", "f:int, = g > int", false},
		{"garbage after return", "f:int = g > int !", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			funcs := Parse("[functions]\n" + tt.line + "\n")
			if tt.ok {
				assert.Len(t, funcs, 1)
			} else {
				assert.Empty(t, funcs)
			}
		})
	}
}

func TestParse_DeclarationOrderPreserved(t *testing.T) {
	text := "[functions]\n" +
		"ceil:float = fceil > int\n" +
		"abs:int = iabs > int\n" +
		"floor:float = ffloor > int\n"
	funcs := Parse(text)
	require.Len(t, funcs, 3)
	assert.Equal(t, "ceil", funcs[0].Name)
	assert.Equal(t, "abs", funcs[1].Name)
	assert.Equal(t, "floor", funcs[2].Name)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	funcs := Parse("[functions]\r\nadd:int,int = iadd > int\r\n")
	require.Len(t, funcs, 1)
	assert.Equal(t, "add", funcs[0].Name)
}
