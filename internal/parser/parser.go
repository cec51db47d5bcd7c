package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

var stepKeywords = []Keyword{
	KeywordGiven,
	KeywordWhen,
	KeywordThen,
	KeywordAnd,
	KeywordBut,
	KeywordStar,
}

var sectionHeaders = []string{
	"feature:",
	"rule:",
	"background:",
	"scenario outline:",
	"scenario template:",
	"scenario:",
	"examples:",
	"example:",
	"scenarios:",
}

// Extract reads every source to exhaustion, in order, and returns the
// steps found across all of them. Lines that are not steps, and step lines
// that cannot be attributed to a category, are skipped.
func Extract(sources ...io.Reader) StepSet {
	steps := StepSet{}
	for _, src := range sources {
		extractInto(steps, src)
	}
	return steps
}

// Skipped records a path ExtractFiles could not open.
type Skipped struct {
	Path string
	Err  error
}

// ExtractFiles opens each path in order and extracts from it. A path that
// cannot be opened is reported in skipped and the remaining paths are
// still read.
func ExtractFiles(paths []string) (steps StepSet, skipped []Skipped) {
	steps = StepSet{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		extractInto(steps, f)
		f.Close()
	}
	return steps, skipped
}

func extractInto(steps StepSet, src io.Reader) {
	// Category context never carries over from a previous source.
	var st scanState
	r := bufio.NewReader(src)
	first := true
	for {
		line, err := r.ReadString('\n')
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line != "" {
			var step Step
			var ok bool
			st, step, ok = st.next(line)
			if ok {
				steps.Add(step)
			}
		}
		if err != nil {
			return
		}
	}
}

// ContextAt returns the category that an And or But line would inherit
// after the given lines. It returns "" when no Given, When or Then is in
// effect.
func ContextAt(lines []string) Category {
	var st scanState
	for _, line := range lines {
		st, _, _ = st.next(line)
	}
	return st.current
}

// scanState is the category context threaded through the lines of one
// source.
type scanState struct {
	current Category
}

func (s scanState) next(line string) (scanState, Step, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "|") {
		return s, Step{}, false
	}
	if isSectionHeader(trimmed) {
		return scanState{}, Step{}, false
	}

	kw, body, ok := SplitStep(trimmed)
	if !ok || body == "" {
		return s, Step{}, false
	}

	switch kw {
	case KeywordAnd, KeywordBut:
		if s.current == "" {
			return s, Step{}, false
		}
		return s, Step{Category: s.current, Text: body}, true
	case KeywordStar:
		return s, Step{Category: CategoryAll, Text: body}, true
	}

	cat, _ := kw.Category()
	return scanState{current: cat}, Step{Category: cat, Text: body}, true
}

// SplitStep splits a line into its step keyword and trimmed body. The
// keyword is matched case-insensitively and must be followed by whitespace
// or the end of the line. The body may be empty.
func SplitStep(line string) (Keyword, string, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	for _, kw := range stepKeywords {
		n := len(kw)
		if len(trimmed) < n || !strings.EqualFold(trimmed[:n], string(kw)) {
			continue
		}
		rest := trimmed[n:]
		if rest != "" {
			r, _ := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				continue
			}
		}
		return kw, strings.TrimSpace(rest), true
	}
	return "", "", false
}

func isSectionHeader(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, h := range sectionHeaders {
		if strings.HasPrefix(lower, h) {
			return true
		}
	}
	return false
}
