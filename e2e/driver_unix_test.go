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
	"github.com/stretchr/testify/require"
)

const maxOutput = 1 << 20 // keep the last MiB of terminal output

var binPath = "framegrip_e2e"

// Keys sent to the canvas
const (
	KeyDelete  = "\x1b[3~"
	KeyQuit    = "q"
	KeyHelp    = "?"
	KeyInspect = "i"
	KeyUndo    = "u"
	KeyRedo    = "U"
)

// SGR mouse button codes
const (
	mousePress  = 0
	mouseDrag   = 32
	mouseMotion = 35
	mouseUp     = 3
)

var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI
		`(?:\x1b\][^\x07]*\x07)|` + // OSC
		`(?:\x1b[\(\)][A-Za-z])|` + // charset
		`(?:\x1b[=>])|` + // keypad mode
		`\r`,
)

// Session runs the framegrip binary on a pseudo terminal inside a scratch
// workspace
type Session struct {
	t   *testing.T
	dir string
	cmd *exec.Cmd
	pty *os.File

	mu   sync.Mutex
	out  []byte
	exit chan error
}

// NewSession creates a session with an empty workspace. The process, if
// started, is killed when the test ends.
func NewSession(t *testing.T) *Session {
	s := &Session{t: t, dir: t.TempDir(), exit: make(chan error, 1)}
	t.Cleanup(s.close)
	return s
}

// Path returns the absolute path of name inside the workspace
func (s *Session) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile writes content into the workspace and returns its path
func (s *Session) WriteFile(name, content string) string {
	s.t.Helper()
	path := s.Path(name)
	require.NoError(s.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Start launches framegrip with args on a 120x40 terminal
func (s *Session) Start(args ...string) {
	s.t.Helper()
	s.cmd = exec.Command(binPath, args...)
	s.cmd.Dir = s.dir
	s.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+s.dir,
		"XDG_CONFIG_HOME="+s.dir,
		"FRAMEGRIP_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(s.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	require.NoError(s.t, err, "failed to start framegrip")
	s.pty = f

	go s.read()
	go func() { s.exit <- s.cmd.Wait() }()
}

// Play writes page as page.html and opens it in the interactive canvas
func (s *Session) Play(page string) {
	s.t.Helper()
	s.Start("play", s.WriteFile("page.html", page))
	require.True(s.t, s.See("__READY__"), "no ready signal")
}

func (s *Session) read() {
	buf := make([]byte, 8192)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out = append(s.out, buf[:n]...)
			if over := len(s.out) - maxOutput; over > 0 {
				s.out = s.out[over:]
			}
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the terminal
func (s *Session) Send(keys string) {
	s.t.Helper()
	_, err := s.pty.Write([]byte(keys))
	require.NoError(s.t, err)
}

func (s *Session) mouse(button, x, y int, final byte) {
	s.t.Helper()
	s.Send(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x+1, y+1, final))
}

// Press presses the left button at a 0-based cell
func (s *Session) Press(x, y int) {
	s.t.Helper()
	s.mouse(mousePress, x, y, 'M')
}

// Release releases the button at a 0-based cell
func (s *Session) Release(x, y int) {
	s.t.Helper()
	s.mouse(mouseUp, x, y, 'm')
}

// MoveTo moves the pointer with no button held
func (s *Session) MoveTo(x, y int) {
	s.t.Helper()
	s.mouse(mouseMotion, x, y, 'M')
}

// DragTo moves the pointer with the left button held
func (s *Session) DragTo(x, y int) {
	s.t.Helper()
	s.mouse(mouseDrag, x, y, 'M')
}

// Click presses and releases at a 0-based cell
func (s *Session) Click(x, y int) {
	s.t.Helper()
	s.Press(x, y)
	s.Release(x, y)
}

// Screen returns everything printed so far with escape sequences removed
func (s *Session) Screen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ansiRe.ReplaceAllString(string(s.out), "")
}

// See waits up to three seconds for text to be printed
func (s *Session) See(text string) bool {
	s.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		if strings.Contains(s.Screen(), text) {
			return true
		}
		if time.Now().After(deadline) {
			s.dumpTail(text)
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Exited waits for the process to end and returns its exit error
func (s *Session) Exited(timeout time.Duration) (bool, error) {
	select {
	case err := <-s.exit:
		return true, err
	case <-time.After(timeout):
		return false, nil
	}
}

// Quit presses q
func (s *Session) Quit() {
	s.t.Helper()
	s.Send(KeyQuit)
}

func (s *Session) dumpTail(waitingFor string) {
	tail := s.Screen()
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	s.t.Logf("waiting for %q, output tail:\n%s", waitingFor, tail)
}

func (s *Session) close() {
	if s.pty != nil {
		_ = s.pty.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}
