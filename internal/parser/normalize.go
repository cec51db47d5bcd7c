package parser

import "regexp"

const (
	NumberPlaceholder = "[number]"
	InputPlaceholder  = "input"
)

var (
	numberPattern      = regexp.MustCompile(`\d+(?:\.\d+)?`)
	doubleQuotePattern = regexp.MustCompile(`"[^"]*"`)
	// A single quote directly after a letter, a digit or a number
	// placeholder is an apostrophe.
	singleQuotePattern = regexp.MustCompile(`(^|[^\p{L}\p{N}\]])'[^']*'`)
	anglePattern       = regexp.MustCompile(`<[^<>]*>`)
)

// Normalize rewrites the text of every step into a template and returns
// the resulting set. Steps that differ only in their literal values
// collapse into one entry.
func Normalize(steps StepSet) StepSet {
	out := make(StepSet, len(steps))
	for st := range steps {
		out.Add(Step{Category: st.Category, Text: NormalizeText(st.Text)})
	}
	return out
}

// NormalizeText replaces numbers, quoted strings and angle-bracket
// placeholders in text. Matches are leftmost and never nest.
func NormalizeText(text string) string {
	text = numberPattern.ReplaceAllLiteralString(text, NumberPlaceholder)
	text = doubleQuotePattern.ReplaceAllLiteralString(text, `"`+InputPlaceholder+`"`)
	text = singleQuotePattern.ReplaceAllString(text, `${1}'`+InputPlaceholder+`'`)
	text = anglePattern.ReplaceAllLiteralString(text, "<"+InputPlaceholder+">")
	return text
}
