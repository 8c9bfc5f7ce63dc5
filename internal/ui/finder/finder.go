// Package finder is the Bubble Tea face of the fuzzy selector: a text input
// above a scrolling list of ranked candidates, with keyboard and mouse
// routing into the selector's transitions.
package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/fuzzy"
	"showcase/internal/selector"
)

// DefaultMaxRows is the list height when none is configured
const DefaultMaxRows = 8

// Styles for the finder
type Styles struct {
	Prompt      lipgloss.Style
	Name        lipgloss.Style
	Description lipgloss.Style
	Highlighted lipgloss.Style
	Empty       lipgloss.Style
	Scroll      lipgloss.Style
}

// DefaultStyles returns the finder's default look
func DefaultStyles() Styles {
	return Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Name:        lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Faint(true),
		Highlighted: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// Model is a mounted finder over a fixed pool
type Model[T fuzzy.Item] struct {
	sel    *selector.Selector[T]
	focus  *selector.Focus
	input  textinput.Model
	styles Styles

	width   int
	maxRows int
	offset  int // first list row drawn
	originY int // screen row of the input line
}

// New mounts a finder. choice receives the pool index of every confirmed
// candidate, synchronously inside Update.
func New[T fuzzy.Item](pool []T, choice func(index int), focus *selector.Focus, opts ...selector.Option) *Model[T] {
	if focus == nil {
		focus = selector.NewFocus(false)
	}
	sel := selector.New(pool, choice, focus, opts...)

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = sel.Placeholder()
	ti.CharLimit = 256

	m := &Model[T]{
		sel:     sel,
		focus:   focus,
		input:   ti,
		styles:  DefaultStyles(),
		maxRows: DefaultMaxRows,
	}
	m.input.PromptStyle = m.styles.Prompt
	m.Sync()
	return m
}

// Selector exposes the underlying state machine
func (m *Model[T]) Selector() *selector.Selector[T] { return m.sel }

// Close unmounts the finder from the shared focus flag
func (m *Model[T]) Close() { m.sel.Close() }

// SetStyles replaces the styles
func (m *Model[T]) SetStyles(s Styles) {
	m.styles = s
	m.input.PromptStyle = s.Prompt
}

// SetWidth limits rendered lines to w cells
func (m *Model[T]) SetWidth(w int) {
	m.width = w
	if w > 4 {
		m.input.Width = w - 4
	}
}

// SetMaxRows sets how many candidates are drawn at once
func (m *Model[T]) SetMaxRows(n int) {
	if n < 1 {
		n = 1
	}
	m.maxRows = n
	m.scroll()
}

// SetOrigin tells the finder on which screen row its input line is drawn,
// for mouse hit-testing.
func (m *Model[T]) SetOrigin(y int) { m.originY = y }

// Focus opens the finder, as a global shortcut would.
func (m *Model[T]) Focus() tea.Cmd {
	m.focus.Set(true)
	return m.Sync()
}

// Blur closes the finder and clears the query.
func (m *Model[T]) Blur() {
	m.sel.Blur()
	m.Sync()
}

// Focused reports whether the finder has focus
func (m *Model[T]) Focused() bool { return m.sel.Focused() }

// Sync brings the text input in line with the selector after the focus flag
// was written from outside.
func (m *Model[T]) Sync() tea.Cmd {
	var cmd tea.Cmd
	if m.sel.Focused() {
		if !m.input.Focused() {
			cmd = m.input.Focus()
		}
	} else if m.input.Focused() {
		m.input.Blur()
	}
	if m.input.Value() != m.sel.Query() {
		m.input.SetValue(m.sel.Query())
		m.input.CursorEnd()
	}
	m.scroll()
	return cmd
}

// Update routes input into the selector. Keys are ignored while blurred.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.sel.Focused() {
			return nil
		}
		switch msg.String() {
		case "esc":
			m.sel.Escape()
		case "enter":
			m.sel.Enter()
		case "up", "ctrl+p":
			m.sel.Up()
		case "down", "ctrl+n":
			m.sel.Down()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if v := m.input.Value(); v != m.sel.Query() {
				m.sel.SetQuery(v)
			}
			return tea.Batch(cmd, m.Sync())
		}
		return m.Sync()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	default:
		if m.sel.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row, onRow := m.rowAt(msg.Y)

	switch {
	case msg.Action == tea.MouseActionMotion:
		if onRow {
			m.sel.Hover(row)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch {
		case onRow:
			m.sel.Press(row)
		case msg.Y == m.originY:
			m.focus.Set(true)
		case m.sel.Focused():
			// click elsewhere takes focus away
			m.sel.Blur()
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		if m.sel.Visible() {
			m.sel.Down()
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		if m.sel.Visible() {
			m.sel.Up()
		}
	}
	return m.Sync()
}

// rowAt maps a screen row to a position in the ranked list.
func (m *Model[T]) rowAt(y int) (int, bool) {
	if !m.sel.Visible() {
		return 0, false
	}
	line := y - m.originY - 1
	if line < 0 || line >= m.drawnRows() {
		return 0, false
	}
	return m.offset + line, true
}

func (m *Model[T]) drawnRows() int {
	n := len(m.sel.Ranked()) - m.offset
	if n > m.maxRows {
		n = m.maxRows
	}
	if n < 0 {
		n = 0
	}
	return n
}

// scroll keeps the highlighted row inside the drawn window.
func (m *Model[T]) scroll() {
	if !m.sel.Visible() {
		m.offset = 0
		return
	}
	sel := m.sel.Selection()
	if sel < m.offset {
		m.offset = sel
	}
	if sel >= m.offset+m.maxRows {
		m.offset = sel - m.maxRows + 1
	}
	if last := len(m.sel.Ranked()) - m.maxRows; m.offset > last {
		m.offset = max(last, 0)
	}
}

// Height is the number of screen rows the finder currently occupies
func (m *Model[T]) Height() int {
	return strings.Count(m.View(), "\n") + 1
}

// View renders the input and, while visible, the candidate list
func (m *Model[T]) View() string {
	var b strings.Builder
	b.WriteString(m.fit(m.input.View()))

	rows := m.sel.Rows()
	if !m.sel.Visible() {
		return b.String()
	}
	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Empty.Render("  no matches"))
		return b.String()
	}

	end := min(m.offset+m.maxRows, len(rows))
	for _, r := range rows[m.offset:end] {
		b.WriteString("\n")
		b.WriteString(m.renderRow(r))
	}
	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(m.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(rows)-end)))
	}
	return b.String()
}

func (m *Model[T]) renderRow(r selector.Row[T]) string {
	name := r.Item.Name()
	desc := r.Item.Description()
	if r.Highlighted {
		line := "▸ " + name
		if desc != "" {
			line += "  " + desc
		}
		return m.styles.Highlighted.Render(m.fitPlain(line))
	}

	line := "  " + m.styles.Name.Render(name)
	if desc != "" {
		line += "  " + m.styles.Description.Render(desc)
	}
	return m.fit(line)
}

func (m *Model[T]) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(s)
}

// fitPlain cuts s to the finder width in terminal cells.
func (m *Model[T]) fitPlain(s string) string {
	if m.width < 2 || lipgloss.Width(s) <= m.width {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}
