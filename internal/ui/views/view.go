package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rows taken by everything but the finder and the pane body: title, tabs,
// status and the help bar.
const ChromeHeight = 4

// FinderRow is the screen row of the finder's input line.
const FinderRow = 1

// StatusKind selects the status line color
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	ExampleName  string
	ExampleIndex int
	ExampleCount int

	Finder     string
	Tabs       []string
	ActiveTab  int
	Body       string
	ScrollInfo string

	StatusMessage string
	StatusKind    StatusKind
	HelpBar       string

	ShowHelp    bool
	HelpContent string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopup(state.HelpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.titleLine(state))
	content.WriteString("\n")

	content.WriteString(state.Finder)
	content.WriteString("\n")

	content.WriteString(r.tabsLine(state))
	content.WriteString("\n")

	if state.ExampleCount == 0 {
		content.WriteString(r.styles.Dim.Render("No examples found."))
	} else {
		content.WriteString(state.Body)
	}

	// Push the status and help to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	if pad := state.Height - currentLines - 2; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}

	content.WriteString("\n")
	content.WriteString(r.statusLine(state))
	content.WriteString("\n")
	content.WriteString(state.HelpBar)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	if state.Width > 0 {
		mainStyle = mainStyle.MaxWidth(state.Width)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) titleLine(state ViewState) string {
	logo := r.styles.Title.Render("showcase")
	if state.ExampleCount == 0 {
		return logo
	}

	right := fmt.Sprintf("%s %s",
		r.styles.Highlight.Render(state.ExampleName),
		r.styles.Dim.Render(fmt.Sprintf("%d/%d", state.ExampleIndex+1, state.ExampleCount)))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) tabsLine(state ViewState) string {
	tabs := make([]string, len(state.Tabs))
	for i, t := range state.Tabs {
		if i == state.ActiveTab {
			tabs[i] = r.styles.ActiveTab.Render(t)
		} else {
			tabs[i] = r.styles.Tab.Render(t)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if state.ScrollInfo != "" {
		line += "  " + r.styles.Scroll.Render(state.ScrollInfo)
	}
	return line
}

func (r *Renderer) statusLine(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	default:
		return r.styles.StatusInfo.Render(state.StatusMessage)
	}
}
