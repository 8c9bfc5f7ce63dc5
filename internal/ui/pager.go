package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// ovPager shows content in the ov pager while the program has released
// the terminal.
type ovPager struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (p *ovPager) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Don't write the last screen back to our terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (p *ovPager) SetStdin(r io.Reader)  { p.stdin = r }
func (p *ovPager) SetStdout(w io.Writer) { p.stdout = w }
func (p *ovPager) SetStderr(w io.Writer) { p.stderr = w }

// showInPager suspends the program and pages content
func showInPager(content string) tea.Cmd {
	return tea.Exec(&ovPager{content: content}, func(err error) tea.Msg {
		return pagerFinishedMsg{err: err}
	})
}
