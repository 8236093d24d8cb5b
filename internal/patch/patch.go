// Package patch inserts generated docstrings into a file snapshot. Matching
// is done against parse-tree spans taken from the snapshot itself, never by
// re-deriving headers from text, so earlier insertions cannot shift later
// match targets: everything is computed against the one base snapshot and
// applied in a single pass.
package patch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"docstitch/internal/pysrc"
)

// ErrNoEffect reports that a non-empty patch set changed nothing. That means
// every target was already documented or no target matched, either way not
// something to silently write back.
var ErrNoEffect = errors.New("patch set had no effect")

type insertion struct {
	start uint32 // replace original[start:end] with text
	end   uint32
	text  string
}

// Apply returns a new file text with each patch-set entry inserted as the
// first body statement of the matching function, indented one level past the
// header. Functions that already have a docstring never match, which is what
// makes a second application of the same patch set a no-op (reported as
// ErrNoEffect rather than double-inserting).
//
// When one name is defined more than once at the top level, only the first
// occurrence is patched.
func Apply(original []byte, patches map[string]string) ([]byte, error) {
	if len(patches) == 0 {
		return original, nil
	}

	functions, err := pysrc.Parse(context.Background(), original)
	if err != nil {
		return nil, fmt.Errorf("reparsing snapshot: %w", err)
	}

	seen := make(map[string]bool, len(patches))
	var inserts []insertion
	for i := range functions {
		fn := &functions[i]
		text, ok := patches[fn.Name]
		if !ok || fn.HasDocstring || seen[fn.Name] {
			continue
		}
		seen[fn.Name] = true
		inserts = append(inserts, buildInsertion(original, fn, text))
	}

	if len(inserts) == 0 {
		return original, ErrNoEffect
	}
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].start < inserts[j].start })

	var out bytes.Buffer
	out.Grow(len(original) + len(patches)*80)
	var cursor uint32
	for _, ins := range inserts {
		out.Write(original[cursor:ins.start])
		out.WriteString(ins.text)
		cursor = ins.end
	}
	out.Write(original[cursor:])

	result := out.Bytes()
	if bytes.Equal(result, original) {
		return original, ErrNoEffect
	}
	return result, nil
}

// buildInsertion computes the replacement for one function. For a body that
// starts on the line after the header, the docstring slots in directly after
// the colon. A one-line body (def f(): return x) is split so the docstring
// becomes the first statement and the original body moves to its own line.
func buildInsertion(original []byte, fn *pysrc.FunctionSignature, text string) insertion {
	indent := strings.Repeat(" ", fn.BodyIndent)
	doc := indent + `"""` + strings.ReplaceAll(text, "\n", "\n"+indent) + `"""`

	inline := !bytes.ContainsRune(original[fn.HeaderEnd:fn.BodyStart], '\n')
	if inline {
		return insertion{
			start: fn.HeaderEnd,
			end:   fn.BodyStart,
			text:  "\n" + doc + "\n" + indent,
		}
	}
	return insertion{
		start: fn.HeaderEnd,
		end:   fn.HeaderEnd,
		text:  "\n" + doc,
	}
}
