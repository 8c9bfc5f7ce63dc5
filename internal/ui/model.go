// Package ui is the gallery screen: a fuzzy finder over the examples above
// a scrollable pane showing the current example's source, docs or demo.
package ui

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"showcase/internal/config"
	"showcase/internal/demo"
	"showcase/internal/domain"
	"showcase/internal/eventbus"
	"showcase/internal/logging"
	"showcase/internal/selector"
	"showcase/internal/ui/finder"
	"showcase/internal/ui/views"
)

// Pane is one of the views of the current example
type Pane int

const (
	PaneSource Pane = iota
	PaneDocs
	PaneDemo
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneSource:
		return "source"
	case PaneDocs:
		return "docs"
	case PaneDemo:
		return "demo"
	}
	return "unknown"
}

const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    *zerolog.Logger

	examples []domain.Example
	current  int

	focus  *selector.Focus
	finder *finder.Model[domain.Example]

	// UI-specific state
	width      int
	height     int
	pane       Pane
	viewport   viewport.Model
	keys       keyMap
	help       help.Model
	showHelp   bool
	helpScroll int

	status     string
	statusKind views.StatusKind
	statusID   int

	renderer     *views.Renderer
	helpRenderer *HelpRenderer

	// randIntN picks the random example; replaced in tests
	randIntN func(n int) int

	initCmd tea.Cmd
}

// NewModel creates the gallery over examples, opened on the example named
// initial, or the first one when there is no such example.
func NewModel(bus eventbus.EventBus, cfg *config.Config, examples []domain.Example, initial string) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		log:          logging.Logger("ui"),
		examples:     examples,
		focus:        selector.NewFocus(false),
		viewport:     viewport.New(0, 0),
		keys:         defaultKeyMap(),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		randIntN:     rand.IntN,
	}

	if i := domain.IndexOf(examples, initial); i >= 0 {
		m.current = i
	} else if initial != "" && len(examples) > 0 {
		m.log.Warn().Str("example", initial).Msg("unknown initial example, opening the first one")
		m.initCmd = m.setStatus(fmt.Sprintf("no example named %q", initial), views.StatusError)
	}

	m.mountFinder()
	m.refreshContent()
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if ex, ok := m.Current(); ok && m.bus != nil {
		m.bus.Publish(eventbus.ExampleChosenEvent{Index: m.current, Slug: ex.Slug, Via: "initial"})
	}
	return m.initCmd
}

// Current returns the example on screen
func (m *Model) Current() (domain.Example, bool) {
	if m.current < 0 || m.current >= len(m.examples) {
		return domain.Example{}, false
	}
	return m.examples[m.current], true
}

// Pane returns the active pane
func (m *Model) Pane() Pane { return m.pane }

// mountFinder builds a finder over the current pool. Any previous finder is
// detached from the focus flag first.
func (m *Model) mountFinder() {
	if m.finder != nil {
		m.finder.Close()
	}
	m.finder = finder.New(m.examples, func(i int) {
		m.choose(i, "search")
	}, m.focus, selector.WithPlaceholder(m.config.Placeholder))
	m.finder.SetWidth(m.width - 2)
}

// choose makes example i current and announces it
func (m *Model) choose(i int, via string) {
	if i < 0 || i >= len(m.examples) {
		return
	}
	m.current = i
	m.refreshContent()
	m.viewport.GotoTop()

	ex := m.examples[i]
	m.log.Info().Str("example", ex.Slug).Str("via", via).Msg("example chosen")
	if m.bus != nil {
		m.bus.Publish(eventbus.ExampleChosenEvent{Index: i, Slug: ex.Slug, Via: via})
	}
}

// random jumps to a random example other than the current one
func (m *Model) random() {
	n := len(m.examples)
	if n == 0 {
		return
	}
	i := m.randIntN(n)
	if n > 1 && i == m.current {
		i = (i + 1) % n
	}
	m.choose(i, "random")
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.finder.SetWidth(msg.Width - 2)
		m.refreshContent()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case demoFinishedMsg:
		if m.bus != nil {
			m.bus.Publish(eventbus.DemoFinishedEvent{Slug: msg.slug, Err: msg.err})
		}
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("example", msg.slug).Msg("demo failed")
			return m.setStatus(fmt.Sprintf("demo %s: %v", msg.slug, msg.err), views.StatusError)
		}
		return m.setStatus(fmt.Sprintf("demo %s finished", msg.slug), views.StatusSuccess)

	case pagerFinishedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("pager failed")
			return m.setStatus(fmt.Sprintf("pager: %v", msg.err), views.StatusError)
		}
		return nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return nil
	}

	// Cursor blink and the like
	return m.finder.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.finder.Focused() {
		return m.finder.Update(msg)
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
			m.helpScroll = 0
		case "up", "k":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		case "down", "j":
			m.helpScroll = min(m.helpScroll+1, m.helpRenderer.maxScroll(m.height))
		case "v":
			return showInPager(m.helpRenderer.RenderHelpContentPlain())
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.finder.Focus()
	case key.Matches(msg, m.keys.Random):
		m.random()
	case key.Matches(msg, m.keys.NextPane):
		m.setPane((m.pane + 1) % paneCount)
	case key.Matches(msg, m.keys.PrevPane):
		m.setPane((m.pane + paneCount - 1) % paneCount)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Demo):
		return m.runDemo()
	case key.Matches(msg, m.keys.Pager):
		if _, ok := m.Current(); ok {
			return showInPager(m.paneContent())
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.config.UI.Mouse || m.showHelp {
		return nil
	}

	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
	if wheel && !m.finder.Selector().Visible() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return m.finder.Update(msg)
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CatalogLoadedEvent:
		return m.replaceCatalog(e.Examples)

	case eventbus.ErrorEvent:
		text := e.Message
		if e.Err != nil {
			text = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return m.setStatus(text, views.StatusError)
	}
	return nil
}

// replaceCatalog swaps in a reloaded pool, keeping the current example by
// name when it still exists.
func (m *Model) replaceCatalog(examples []domain.Example) tea.Cmd {
	prev, hadCurrent := m.Current()

	m.examples = examples
	m.current = 0
	if hadCurrent {
		if i := domain.IndexOf(examples, prev.Slug); i >= 0 {
			m.current = i
		}
	}

	offset := m.viewport.YOffset
	m.mountFinder()
	m.refreshContent()
	if cur, ok := m.Current(); ok && hadCurrent && cur.Slug == prev.Slug {
		m.viewport.SetYOffset(offset)
	} else {
		m.viewport.GotoTop()
	}

	m.log.Info().Int("examples", len(examples)).Msg("catalog replaced")
	return tea.Batch(
		m.finder.Sync(),
		m.setStatus(fmt.Sprintf("reloaded %d examples", len(examples)), views.StatusSuccess),
	)
}

func (m *Model) setPane(p Pane) {
	m.pane = p
	m.refreshContent()
	m.viewport.GotoTop()
}

// runDemo hands the terminal to the current example's demo
func (m *Model) runDemo() tea.Cmd {
	ex, ok := m.Current()
	if !ok {
		return nil
	}

	cmd, err := demo.Command(m.config.Demo.Command, ex)
	if err != nil {
		return m.setStatus(err.Error(), views.StatusError)
	}

	m.log.Info().Str("example", ex.Slug).Strs("args", cmd.Args).Msg("running demo")
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("exit status %d", exitErr.ExitCode())
		}
		return demoFinishedMsg{slug: ex.Slug, err: err}
	})
}

// setStatus shows a message that clears itself after a while
func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusKind = kind
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// paneContent is the body of the active pane for the current example
func (m *Model) paneContent() string {
	ex, ok := m.Current()
	if !ok {
		return ""
	}

	switch m.pane {
	case PaneDocs:
		var b strings.Builder
		b.WriteString(m.renderer.Styles().Highlight.Render(ex.Slug))
		b.WriteString("\n")
		b.WriteString(m.renderer.Styles().Dim.Render(ex.Summary))
		b.WriteString("\n\n")
		b.WriteString(ex.Motivation)
		if ex.Related != "" {
			b.WriteString("\n\n")
			b.WriteString(m.renderer.Styles().Title.Render("Related"))
			b.WriteString("\n")
			b.WriteString(ex.Related)
		}
		return b.String()

	case PaneDemo:
		var b strings.Builder
		if args, err := demo.Args(m.config.Demo.Command, ex); err == nil {
			b.WriteString(m.renderer.Styles().Dim.Render("press x to run: " + strings.Join(args, " ")))
		}
		if ex.Output != "" {
			b.WriteString("\n\n")
			b.WriteString(ex.Output)
		}
		return b.String()

	default:
		if ex.Highlighted != "" {
			return ex.Highlighted
		}
		return ex.Source
	}
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.paneContent())
}

// layout sizes the pane to what the finder leaves free
func (m *Model) layout() {
	m.finder.SetOrigin(views.FinderRow)
	m.viewport.Width = max(m.width-2, 0)
	m.viewport.Height = max(m.height-views.ChromeHeight-m.finder.Height(), 1)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		ExampleCount:  len(m.examples),
		ExampleIndex:  m.current,
		Finder:        m.finder.View(),
		ActiveTab:     int(m.pane),
		Body:          m.viewport.View(),
		StatusMessage: m.status,
		StatusKind:    m.statusKind,
		HelpBar:       m.help.View(m.keys),
	}
	for p := Pane(0); p < paneCount; p++ {
		state.Tabs = append(state.Tabs, p.String())
	}
	if ex, ok := m.Current(); ok {
		state.ExampleName = ex.Slug
	}
	if m.viewport.TotalLineCount() > m.viewport.Height {
		state.ScrollInfo = fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	}
	if m.showHelp {
		state.ShowHelp = true
		state.HelpContent = m.helpRenderer.renderHelpContent(m.height, m.helpScroll)
	}

	return m.renderer.Render(state)
}
