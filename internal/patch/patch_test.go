package patch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstitch/internal/pysrc"
)

const twoFunctions = `def first(a, b):
    return a + b


def second(name: str = "world") -> str:
    return f"hello {name}"
`

func TestApply_InsertsAfterHeader(t *testing.T) {
	patched, err := Apply([]byte(twoFunctions), map[string]string{
		"first":  "Add two values.",
		"second": "Greet someone by name.",
	})
	require.NoError(t, err)

	want := `def first(a, b):
    """Add two values."""
    return a + b


def second(name: str = "world") -> str:
    """Greet someone by name."""
    return f"hello {name}"
`
	assert.Equal(t, want, string(patched))
}

func TestApply_ResultStillParsesAndIsDocumented(t *testing.T) {
	patched, err := Apply([]byte(twoFunctions), map[string]string{
		"first":  "Add two values.",
		"second": "Greet someone by name.",
	})
	require.NoError(t, err)

	functions, err := pysrc.Parse(context.Background(), patched)
	require.NoError(t, err)
	require.Len(t, functions, 2)
	for _, fn := range functions {
		assert.True(t, fn.HasDocstring, fn.Name)
	}
}

func TestApply_SplitsInlineBody(t *testing.T) {
	src := "def add(x, y): return x+y\n"
	patched, err := Apply([]byte(src), map[string]string{"add": "Add two numbers."})
	require.NoError(t, err)

	want := "def add(x, y):\n    \"\"\"Add two numbers.\"\"\"\n    return x+y\n"
	assert.Equal(t, want, string(patched))
}

func TestApply_MultilineDocstringFollowsBodyIndent(t *testing.T) {
	src := "def f():\n    return 1\n"
	patched, err := Apply([]byte(src), map[string]string{"f": "Summary line.\n\nMore detail."})
	require.NoError(t, err)

	want := "def f():\n    \"\"\"Summary line.\n    \n    More detail.\"\"\"\n    return 1\n"
	assert.Equal(t, want, string(patched))
}

func TestApply_PartialPatchSetLeavesOthersAlone(t *testing.T) {
	patched, err := Apply([]byte(twoFunctions), map[string]string{
		"second": "Greet someone by name.",
	})
	require.NoError(t, err)

	out := string(patched)
	assert.Contains(t, out, "def first(a, b):\n    return a + b")
	assert.Contains(t, out, `"""Greet someone by name."""`)
}

func TestApply_SecondApplicationIsNoOp(t *testing.T) {
	patches := map[string]string{
		"first":  "Add two values.",
		"second": "Greet someone by name.",
	}
	patched, err := Apply([]byte(twoFunctions), patches)
	require.NoError(t, err)

	again, err := Apply(patched, patches)
	assert.ErrorIs(t, err, ErrNoEffect)
	assert.Equal(t, patched, again)
}

func TestApply_DocumentedFunctionNeverMatches(t *testing.T) {
	src := "def f():\n    \"\"\"Original docstring.\"\"\"\n    return 1\n"
	out, err := Apply([]byte(src), map[string]string{"f": "Replacement."})
	assert.ErrorIs(t, err, ErrNoEffect)
	assert.Equal(t, src, string(out))
}

func TestApply_UnmatchedNameIsNoEffect(t *testing.T) {
	out, err := Apply([]byte(twoFunctions), map[string]string{"missing": "Doc."})
	assert.ErrorIs(t, err, ErrNoEffect)
	assert.Equal(t, twoFunctions, string(out))
}

func TestApply_EmptyPatchSet(t *testing.T) {
	out, err := Apply([]byte(twoFunctions), nil)
	require.NoError(t, err)
	assert.Equal(t, twoFunctions, string(out))
}

func TestApply_DuplicateNamePatchesFirstOccurrence(t *testing.T) {
	src := "def f():\n    return 1\n\n\ndef f():\n    return 2\n"
	patched, err := Apply([]byte(src), map[string]string{"f": "Doc."})
	require.NoError(t, err)

	want := "def f():\n    \"\"\"Doc.\"\"\"\n    return 1\n\n\ndef f():\n    return 2\n"
	assert.Equal(t, want, string(patched))
}

func TestApply_SyntaxErrorFailsTheFile(t *testing.T) {
	_, err := Apply([]byte("def broken(:\n    pass\n"), map[string]string{"broken": "Doc."})
	assert.ErrorIs(t, err, pysrc.ErrSyntax)
}
