//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// outputLimit bounds the captured output; older bytes are dropped
const outputLimit = 1 << 20

var binPath = "showcase_e2e"

const (
	KeyEnter  = "\r"
	KeyEsc    = "\x1b"
	KeyCtrlC  = "\x03"
	KeyTab    = "\t"
	KeyDown   = "\x1b[B"
	KeyUp     = "\x1b[A"
	KeyQuit   = "q"
	KeySearch = "s"
	KeyRandom = "R"
	KeyPager  = "v"
	KeyHelp   = "?"
)

// enableAllMotion is what the program writes when it asks the terminal for
// every pointer movement, not only drags.
const enableAllMotion = "\x1b[?1003h"

var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?<]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func containsPlain(s, text string) bool {
	return strings.Contains(stripANSI(s), text)
}

// recorder keeps the tail of everything the program wrote to the terminal
type recorder struct {
	mu  sync.Mutex
	buf []byte
}

func (r *recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, p...)
	if over := len(r.buf) - outputLimit; over > 0 {
		r.buf = append(r.buf[:0], r.buf[over:]...)
	}
	return len(p), nil
}

func (r *recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.buf)
}

// TUITestFramework drives one showcase process in a pseudo terminal
type TUITestFramework struct {
	t         *testing.T
	cmd       *exec.Cmd
	pty       *os.File
	out       *recorder
	exited    chan struct{}
	exitErr   error
	workspace string
	home      string
}

// NewTUITest creates a driver; call CreateTestWorkspace or CreateGallery first
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, out: &recorder{}}
}

// env isolates the process from the user's home and config
func (tf *TUITestFramework) env() []string {
	return append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.home,
		"XDG_CONFIG_HOME="+tf.home,
	)
}

// StartApp launches the binary in a 120x40 pty
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = tf.env()
	tf.cmd.Dir = tf.workspace

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = f

	copied := make(chan struct{})
	go func() {
		defer close(copied)
		tf.out.copyFrom(f)
	}()

	tf.exited = make(chan struct{})
	go func() {
		err := tf.cmd.Wait()
		// let the reader drain what the process wrote last
		select {
		case <-copied:
		case <-time.After(200 * time.Millisecond):
		}
		tf.exitErr = err
		close(tf.exited)
	}()
	return nil
}

// copyFrom records src until it fails; a pty fails once the process is gone
func (r *recorder) copyFrom(src *os.File) {
	chunk := make([]byte, 8192)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			_, _ = r.Write(chunk[:n])
		}
		if err != nil {
			return
		}
	}
}

// Exited waits up to timeout for the process to end and returns its exit error
func (tf *TUITestFramework) Exited(timeout time.Duration) (bool, error) {
	select {
	case <-tf.exited:
		return true, tf.exitErr
	case <-time.After(timeout):
		return false, nil
	}
}

// SendKeys writes raw input to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Quit() error { return tf.SendKeys(KeyQuit) }
func (tf *TUITestFramework) Enter() error { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Escape() error { return tf.SendKeys(KeyEsc) }
func (tf *TUITestFramework) Down() error { return tf.SendKeys(KeyDown) }
func (tf *TUITestFramework) Up() error { return tf.SendKeys(KeyUp) }
func (tf *TUITestFramework) NextPane() error { return tf.SendKeys(KeyTab) }
func (tf *TUITestFramework) Random() error { return tf.SendKeys(KeyRandom) }
func (tf *TUITestFramework) OpenPager() error { return tf.SendKeys(KeyPager) }

// Search focuses the finder and types query
func (tf *TUITestFramework) Search(query string) error {
	tf.t.Helper()
	if err := tf.SendKeys(KeySearch); err != nil {
		return err
	}
	// the finder must own the keyboard before the query arrives
	time.Sleep(50 * time.Millisecond)
	return tf.SendKeys(query)
}

// MoveMouse reports a pointer movement with no button held to cell (col,
// row), both 0-based, in SGR encoding.
func (tf *TUITestFramework) MoveMouse(col, row int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<35;%d;%dM", col+1, row+1))
}

// Ready waits for the help bar, drawn once the catalog is on screen
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContainsPlain("? help", 10*time.Second)
}

// SeePlain waits up to three seconds for text in the ANSI-stripped output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContainsPlain waits for text in the ANSI-stripped output
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return containsPlain(s, text) }, timeout)
}

// Mark returns the current end of the output, for SeePlainSince
func (tf *TUITestFramework) Mark() int {
	return len(tf.Snapshot())
}

// SeePlainSince waits for text written after mark
func (tf *TUITestFramework) SeePlainSince(mark int, text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return len(s) > mark && containsPlain(s[mark:], text)
	}, 3*time.Second)
}

// WaitFor polls the raw output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitForE(pred, timeout, "") == nil
}

// WaitForE is WaitFor with the output tail in the error
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		s := tf.Snapshot()
		if pred(s) {
			return nil
		}
		if time.Now().After(deadline) {
			tail := stripANSI(s)
			if len(tail) > 4096 {
				tail = tail[len(tail)-4096:]
			}
			return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tail)
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns the raw captured output
func (tf *TUITestFramework) Snapshot() string {
	return tf.out.String()
}

// DumpTailOnFail saves the last n bytes of plain output for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := stripANSI(tf.Snapshot())
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0o644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the pty, which hangs up the process, and reaps it
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.Exited(2 * time.Second)
		tf.cmd = nil
	}
}
