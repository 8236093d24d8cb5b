package pysrc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `import os


def documented(x):
    """Already has a docstring."""
    return x


def add(x: int, y: int = 2) -> int:
    return x + y


@lru_cache
def decorated(arg):
    return arg * 2


class Greeter:
    def method(self):
        return "hi"


def outer():
    def inner():
        return 1
    return inner()
`

func TestParse_TopLevelFunctions(t *testing.T) {
	functions, err := Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)

	var names []string
	for _, fn := range functions {
		names = append(names, fn.Name)
	}
	// Methods and nested functions are out of scope; decorated top-level
	// functions are in.
	assert.Equal(t, []string{"documented", "add", "decorated", "outer"}, names)
}

func TestParse_DocstringDetection(t *testing.T) {
	functions, err := Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)

	byName := make(map[string]FunctionSignature)
	for _, fn := range functions {
		byName[fn.Name] = fn
	}

	assert.True(t, byName["documented"].HasDocstring)
	assert.False(t, byName["add"].HasDocstring)
	assert.False(t, byName["decorated"].HasDocstring)
	assert.False(t, byName["outer"].HasDocstring)
}

func TestParse_SignatureIsVerbatim(t *testing.T) {
	functions, err := Parse(context.Background(), []byte(sampleSource))
	require.NoError(t, err)

	byName := make(map[string]FunctionSignature)
	for _, fn := range functions {
		byName[fn.Name] = fn
	}

	add := byName["add"]
	assert.Equal(t, "(x: int, y: int = 2)", add.Parameters)
	assert.Equal(t, "int", add.ReturnAnnotation)
	// The header must reproduce defaults, annotations and the arrow exactly
	// as written, so it is a substring of the original text.
	assert.Equal(t, "def add(x: int, y: int = 2) -> int:", add.Header())
	assert.Contains(t, sampleSource, add.Header())
}

func TestParse_SpansSliceTheSource(t *testing.T) {
	src := []byte(sampleSource)
	functions, err := Parse(context.Background(), src)
	require.NoError(t, err)

	for _, fn := range functions {
		assert.Equal(t, fn.Source, string(src[fn.StartByte:fn.EndByte]), fn.Name)
		assert.True(t, strings.HasPrefix(fn.Source, "def "), fn.Name)
	}
}

func TestParse_InlineBody(t *testing.T) {
	src := "def add(x, y): return x+y\n"
	functions, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, functions, 1)

	fn := functions[0]
	assert.False(t, fn.HasDocstring)
	assert.Equal(t, 4, fn.BodyIndent)
	// HeaderEnd sits right after the colon.
	assert.Equal(t, "def add(x, y):", src[fn.StartByte:fn.HeaderEnd])
}

func TestParse_BodyIndentFollowsHeaderIndent(t *testing.T) {
	src := "def f():\n        return 1\n"
	functions, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Equal(t, 8, functions[0].BodyIndent)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("def broken(:\n    pass\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(context.Background(), []byte{0xff, 0xfe, 'd', 'e', 'f'})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestParse_EmptyFile(t *testing.T) {
	functions, err := Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, functions)
}
