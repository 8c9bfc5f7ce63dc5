package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search", []helpEntry{
		{"s, /", "Focus the search box"},
		{"type", "Rank examples by name, description, then source"},
		{"↑/↓, ctrl+p/n", "Move the highlight"},
		{"Enter", "Open the highlighted example (or the first one)"},
		{"Esc", "Close the search and clear it"},
		{"mouse", "Hover to highlight, click to open"},
	}},
	{"Example", []helpEntry{
		{"tab, shift+tab", "Cycle source / docs / demo"},
		{"↑/↓, j/k", "Scroll"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"R", "Jump to a random example"},
		{"x", "Run the example's demo"},
		{"v", "Open the current pane in a pager"},
	}},
	{"Other", []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContentPlain generates the full help text with colors, for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("Showcase Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// helpVisibleHeight is the popup body height for a screen of the given
// height, less the popup border and padding.
func helpVisibleHeight(height int) int {
	return max(height-4, 5)
}

// maxScroll is the largest useful scroll offset for a screen of the given height
func (r *HelpRenderer) maxScroll(height int) int {
	total := strings.Count(r.RenderHelpContentPlain(), "\n") + 1
	return max(total-helpVisibleHeight(height), 0)
}

// renderHelpContent renders the help popup body, scrolled to scrollOffset
func (r *HelpRenderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.RenderHelpContentPlain(), "\n")
	totalLines := len(lines)
	visibleHeight := helpVisibleHeight(height)

	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visibleLines := make([]string, endLine-scrollOffset)
	copy(visibleLines, lines[scrollOffset:endLine])

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visibleLines[0] = indicator.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visibleLines[len(visibleLines)-1] = indicator.Render("↓ (more below)")
	}

	return strings.Join(visibleLines, "\n")
}
