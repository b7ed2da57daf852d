package linear

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/ui/output"
	"go.trai.ch/donk/internal/ui/style"
)

const (
	// MaxNameWidth caps the width of the name column.
	MaxNameWidth = 20
	// ColumnGap separates the name column from the summary.
	ColumnGap = 2
	// MaxSummaryWidth is the display width budget for an undescribed
	// command's first line.
	MaxSummaryWidth = 60
	// Ellipsis marks a truncated first line.
	Ellipsis = "…"
)

// WriteList renders one row per command in config order.
func WriteList(w io.Writer, cmds *domain.Commands) error {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfile())
	nameStyle := renderer.NewStyle().Foreground(style.Iris).Bold(true)
	hintStyle := renderer.NewStyle().Foreground(style.Slate)

	width := 0
	for name := range cmds.All() {
		width = max(width, runewidth.StringWidth(name))
	}
	width = min(width, MaxNameWidth)

	var sb strings.Builder
	for name, spec := range cmds.All() {
		pad := max(width-runewidth.StringWidth(name), 0) + ColumnGap
		sb.WriteString(nameStyle.Render(name))
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(Summary(spec))
		sb.WriteString(" ")
		sb.WriteString(hintStyle.Render(Hint(spec)))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Summary is the description of spec, or its first script line truncated
// to MaxSummaryWidth display cells.
func Summary(spec *domain.CommandSpec) string {
	if spec.Description != "" {
		return spec.Description
	}
	if len(spec.Run) == 0 {
		return ""
	}
	first, _, _ := strings.Cut(spec.Run[0], "\n")
	return runewidth.Truncate(first, MaxSummaryWidth, Ellipsis)
}

// Hint describes the shape of spec, e.g. "(python3, 3 lines)".
func Hint(spec *domain.CommandSpec) string {
	lines := "1 line"
	if n := spec.LineCount(); n != 1 {
		lines = fmt.Sprintf("%d lines", n)
	}
	if !spec.Smart() {
		return fmt.Sprintf("(%s, %s)", spec.Executor, lines)
	}
	return "(" + lines + ")"
}

// WriteCompletion prints the command names separated by spaces.
func WriteCompletion(w io.Writer, cmds *domain.Commands) error {
	_, err := fmt.Fprintln(w, strings.Join(cmds.Names(), " "))
	return err
}
