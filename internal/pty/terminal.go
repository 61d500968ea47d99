package pty

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/andyrewlee/conscroll/internal/logging"
)

// Terminal wraps a PTY with an associated command. Its output stream
// is what gets fed into a console surface.
type Terminal struct {
	mu      sync.Mutex
	ptyFile *os.File
	cmd     *exec.Cmd
	closed  bool
}

// New starts command under a new PTY. The command runs through the
// shell so config values like "bash -l" work unchanged.
func New(command string, dir string, env []string) (*Terminal, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}
	logging.Debug("started %q on pty", command)

	return &Terminal{
		ptyFile: ptmx,
		cmd:     cmd,
	}, nil
}

// SetSize propagates a surface resize to the PTY so the child process
// sees the same geometry as the scrollback buffer.
func (t *Terminal) SetSize(rows, cols uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.ptyFile == nil {
		return nil
	}

	return pty.Setsize(t.ptyFile, &pty.Winsize{
		Rows: rows,
		Cols: cols,
	})
}

// Write sends input to the child process.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	closed := t.closed
	ptyFile := t.ptyFile
	t.mu.Unlock()

	if closed || ptyFile == nil {
		return 0, io.ErrClosedPipe
	}

	return ptyFile.Write(p)
}

// Read reads output from the child process. The mutex is not held
// during the blocking read to avoid deadlocking Close.
func (t *Terminal) Read(p []byte) (int, error) {
	t.mu.Lock()
	closed := t.closed
	ptyFile := t.ptyFile
	t.mu.Unlock()

	if closed || ptyFile == nil {
		return 0, io.EOF
	}

	return ptyFile.Read(p)
}

// SendInterrupt sends Ctrl+C to the child process.
func (t *Terminal) SendInterrupt() error {
	_, err := t.Write([]byte{0x03})
	return err
}

// Close closes the PTY and reaps the child process.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true

	if t.ptyFile != nil {
		t.ptyFile.Close()
	}

	if t.cmd != nil && t.cmd.Process != nil {
		t.cmd.Process.Kill()
		t.cmd.Wait()
	}

	return nil
}

// Running returns whether the child process is still running.
func (t *Terminal) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.cmd == nil {
		return false
	}

	return t.cmd.ProcessState == nil
}
