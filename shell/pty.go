// Package shell runs the shell process behind a pane and keeps its PTY in
// step with the pane's screen.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"

	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// Output is a chunk read from a session's PTY
type Output struct {
	Pane ids.ID
	Data []byte
	// Err is set on the final chunk, io.EOF when the shell exited
	Err error
}

// Session manages a pseudo-terminal connection to a shell
type Session struct {
	pane ids.ID
	cmd  *exec.Cmd
	pty  *os.File
	log  *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Start launches shellPath (or the user's login shell when empty) on a new
// PTY of cols x rows and begins copying its output to out. The channel is
// never closed by the session; the last Output carries a non-nil Err.
func Start(pane ids.ID, shellPath string, cols, rows uint16, out chan<- Output, log *slog.Logger) (*Session, error) {
	shellPath = findShell(shellPath)
	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	cmd := exec.Command(shellPath)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Env = buildEnv(os.Environ(), shellPath, currentUser, cols, rows)
	cmd.Dir = currentUser.HomeDir

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", shellPath, err)
	}
	s := &Session{
		pane: pane,
		cmd:  cmd,
		pty:  ptmx,
		log:  log.With("pane", pane),
		done: make(chan struct{}),
	}
	go s.readLoop(out)
	go func() {
		_ = cmd.Wait()
		close(s.done)
	}()
	s.log.Debug("shell started", "shell", shellPath, "pid", cmd.Process.Pid)
	return s, nil
}

func (s *Session) readLoop(out chan<- Output) {
	buf := make([]byte, 32*1024)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			out <- Output{Pane: s.pane, Data: data}
		}
		if err != nil {
			// Linux reports EIO once the slave side is gone
			if errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
				err = io.EOF
			}
			out <- Output{Pane: s.pane, Err: err}
			return
		}
	}
}

// Bind ties the session to a screen: geometry changes resize the PTY and
// releasing the last reference closes the session.
func (s *Session) Bind(scr *screen.Screen) {
	scr.OnGeometryChange(func(cols, rows int) {
		if err := s.Resize(uint16(cols), uint16(rows)); err != nil {
			s.log.Warn("pty resize failed", "error", err)
		}
	})
	scr.OnFree(func() {
		if err := s.Close(); err != nil {
			s.log.Debug("pty close", "error", err)
		}
	})
}

// Pane returns the pane the session belongs to
func (s *Session) Pane() ids.ID {
	return s.pane
}

// Write writes to the PTY
func (s *Session) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.pty.Write(data)
}

// Resize resizes the PTY
func (s *Session) Resize(cols, rows uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return os.ErrClosed
	}
	return pty.Setsize(s.pty, &pty.Winsize{Cols: cols, Rows: rows})
}

// Exited reports whether the shell process has exited
func (s *Session) Exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Done is closed once the shell process has exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close kills the shell and closes the PTY. Calling it twice is harmless.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.pty.Close()
}

func buildEnv(base []string, shellPath string, u *user.User, cols, rows uint16) []string {
	env := base
	env = replaceEnv(env, "TERM", "xterm-256color")
	env = replaceEnv(env, "COLORTERM", "truecolor")
	env = replaceEnv(env, "TERM_PROGRAM", "ravenstate")
	env = replaceEnv(env, "HOME", u.HomeDir)
	env = replaceEnv(env, "USER", u.Username)
	env = replaceEnv(env, "SHELL", shellPath)
	env = replaceEnv(env, "COLUMNS", strconv.Itoa(int(cols)))
	env = replaceEnv(env, "LINES", strconv.Itoa(int(rows)))
	return env
}

func replaceEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := env[:0:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+value)
}

// findShell returns configured if it exists, else the user's shell from
// /etc/passwd, else the first common shell found
func findShell(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	if currentUser, err := user.Current(); err == nil {
		if sh := userShell(currentUser.Username); sh != "" {
			if _, err := os.Stat(sh); err == nil {
				return sh
			}
		}
	}
	for _, sh := range []string{"/bin/bash", "/usr/bin/bash", "/bin/zsh", "/usr/bin/zsh", "/bin/sh"} {
		if _, err := os.Stat(sh); err == nil {
			return sh
		}
	}
	return "/bin/sh"
}

// userShell reads the user's shell from /etc/passwd
func userShell(username string) string {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == username {
			return fields[6]
		}
	}
	return ""
}
