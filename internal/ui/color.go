package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/gsteps/internal/parser"
)

var (
	newStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle  = lipgloss.NewStyle().Faint(true)
	goneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	categoryStyles = map[parser.Category]lipgloss.Style{
		parser.CategoryGiven: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		parser.CategoryWhen:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		parser.CategoryThen:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		parser.CategoryAll:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
	countStyle = lipgloss.NewStyle().Faint(true)
)

// categoryWidth fits the longest category name.
const categoryWidth = 5

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func SkipLine(w io.Writer, path string) {
	fmt.Fprintln(w, goneStyle.Render("skp")+"  "+path)
}

func GoneLine(w io.Writer, count int) {
	fmt.Fprintln(w, goneStyle.Render("del")+fmt.Sprintf("  %d missing files", count))
}

func SummaryLine(w io.Writer, files, steps int) {
	fmt.Fprintf(w, "synced %d files, %d steps\n", files, steps)
}

// StepLine prints a step as "<category>  <text>", padding the category so
// texts line up.
func StepLine(w io.Writer, step parser.Step) {
	fmt.Fprintln(w, renderCategory(step.Category)+"  "+step.Text)
}

// CachedStepLine is StepLine with the number of files the step appears in.
func CachedStepLine(w io.Writer, step parser.Step, files int) {
	fmt.Fprintln(w, renderCategory(step.Category)+"  "+step.Text+"  "+countStyle.Render(fmt.Sprintf("(%d)", files)))
}

func renderCategory(c parser.Category) string {
	label := fmt.Sprintf("%-*s", categoryWidth, string(c))
	style, ok := categoryStyles[c]
	if !ok {
		return label
	}
	return style.Render(label)
}
