package lsp

import (
	"strings"
	"unicode"

	protocol "github.com/sourcegraph/go-lsp"

	"github.com/chriserin/gsteps/internal/parser"
)

// Complete returns the steps that fit the step line at pos. The category
// comes from the line's keyword, or from the lines above it for And and
// But. Only steps starting with the text typed after the keyword are
// offered, and each replaces that text.
func Complete(steps []parser.Step, lines []string, pos protocol.Position) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	if pos.Line < 0 || pos.Line >= len(lines) {
		return items
	}
	line := strings.TrimSuffix(lines[pos.Line], "\r")
	prefix := utf16Prefix(line, pos.Character)

	kw, _, ok := parser.SplitStep(prefix)
	if !ok {
		return items
	}
	indent := len(prefix) - len(strings.TrimLeftFunc(prefix, unicode.IsSpace))
	afterKeyword := prefix[indent+len(kw):]
	if afterKeyword == "" {
		return items
	}
	typed := strings.TrimLeftFunc(afterKeyword, unicode.IsSpace)
	start := len(prefix) - len(typed)

	var want parser.Category
	switch kw {
	case parser.KeywordAnd, parser.KeywordBut:
		want = parser.ContextAt(lines[:pos.Line])
	default:
		want, _ = kw.Category()
	}

	editRange := protocol.Range{
		Start: protocol.Position{Line: pos.Line, Character: utf16Len(prefix[:start])},
		End:   protocol.Position{Line: pos.Line, Character: utf16Len(prefix)},
	}
	lowerTyped := strings.ToLower(typed)
	for _, st := range steps {
		if !matchesCategory(st.Category, want) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(st.Text), lowerTyped) {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:  st.Text,
			Kind:   protocol.CIKText,
			Detail: string(st.Category),
			TextEdit: &protocol.TextEdit{
				Range:   editRange,
				NewText: st.Text,
			},
		})
	}
	return items
}

// matchesCategory reports whether a step of category have may be offered
// on a line of category want. Steps from "*" lines fit everywhere, and a
// "*" line or a line with no known category accepts every step.
func matchesCategory(have, want parser.Category) bool {
	if want == "" || want == parser.CategoryAll || have == parser.CategoryAll {
		return true
	}
	return have == want
}

// utf16Prefix returns the part of s before the given UTF-16 offset.
func utf16Prefix(s string, units int) string {
	n := 0
	for i, r := range s {
		if n >= units {
			return s[:i]
		}
		n += runeUnits(r)
	}
	return s
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
