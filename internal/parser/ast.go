package parser

import "sort"

// Category is the semantic role of a step.
type Category string

const (
	CategoryGiven Category = "given"
	CategoryWhen  Category = "when"
	CategoryThen  Category = "then"
	CategoryAll   Category = "all" // introduced by "*"
)

var categoryOrder = map[Category]int{
	CategoryGiven: 0,
	CategoryWhen:  1,
	CategoryThen:  2,
	CategoryAll:   3,
}

// Keyword is the leading token of a step line, lower-cased.
type Keyword string

const (
	KeywordGiven Keyword = "given"
	KeywordWhen  Keyword = "when"
	KeywordThen  Keyword = "then"
	KeywordAnd   Keyword = "and"
	KeywordBut   Keyword = "but"
	KeywordStar  Keyword = "*"
)

// Category returns the category a keyword establishes on its own. And and
// But return false since they depend on the preceding lines.
func (k Keyword) Category() (Category, bool) {
	switch k {
	case KeywordGiven:
		return CategoryGiven, true
	case KeywordWhen:
		return CategoryWhen, true
	case KeywordThen:
		return CategoryThen, true
	case KeywordStar:
		return CategoryAll, true
	}
	return "", false
}

type Step struct {
	Category Category
	Text     string
}

// StepSet is an unordered collection of unique steps.
type StepSet map[Step]struct{}

func NewStepSet(steps ...Step) StepSet {
	s := make(StepSet, len(steps))
	for _, st := range steps {
		s.Add(st)
	}
	return s
}

func (s StepSet) Add(step Step) {
	s[step] = struct{}{}
}

func (s StepSet) Has(step Step) bool {
	_, ok := s[step]
	return ok
}

func (s StepSet) Len() int {
	return len(s)
}

// Union adds every step of other to s.
func (s StepSet) Union(other StepSet) {
	for st := range other {
		s.Add(st)
	}
}

// Sorted returns the steps ordered by category (given, when, then, all)
// and then by text.
func (s StepSet) Sorted() []Step {
	out := make([]Step, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := categoryOrder[out[i].Category], categoryOrder[out[j].Category]
		if ci != cj {
			return ci < cj
		}
		return out[i].Text < out[j].Text
	})
	return out
}
