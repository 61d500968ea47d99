package ui

import (
	"io"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/conscroll/internal/messages"
)

func testReaderConfig() ReaderConfig {
	return ReaderConfig{
		ReadBufferSize:  64,
		ReadQueueSize:   4,
		FrameInterval:   5 * time.Millisecond,
		MaxPendingBytes: 1024,
	}
}

func nextMsg(t *testing.T, msgCh <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-msgCh:
		return msg
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for reader message")
		return nil
	}
}

func TestRunReaderDeliversOutputThenStopped(t *testing.T) {
	r, w := io.Pipe()
	msgCh := make(chan tea.Msg, 16)
	cancel := make(chan struct{})
	defer close(cancel)

	go RunReader("surface-1", r, msgCh, cancel, testReaderConfig())

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("pipe write failed: %v", err)
	}

	out, ok := nextMsg(t, msgCh).(messages.SurfaceOutput)
	if !ok {
		t.Fatalf("expected SurfaceOutput first")
	}
	if out.SurfaceID != "surface-1" || string(out.Data) != "hello" {
		t.Errorf("output = %+v, want surface-1 %q", out, "hello")
	}

	w.Close()

	stopped, ok := nextMsg(t, msgCh).(messages.SurfaceStopped)
	if !ok {
		t.Fatalf("expected SurfaceStopped after pipe close")
	}
	if stopped.SurfaceID != "surface-1" || stopped.Err != io.EOF {
		t.Errorf("stopped = %+v, want surface-1 with EOF", stopped)
	}
}

// chunkThenErrReader returns its payload and the error from the same
// Read call, the way a PTY delivers a final burst as the child exits.
type chunkThenErrReader struct {
	payload []byte
	done    bool
}

func (r *chunkThenErrReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	return copy(p, r.payload), io.EOF
}

func TestRunReaderDoesNotDropChunksQueuedAtExit(t *testing.T) {
	msgCh := make(chan tea.Msg, 16)
	cancel := make(chan struct{})
	defer close(cancel)

	// A fast ticker so a premature stop would fire before the queued
	// chunk is drained.
	cfg := testReaderConfig()
	cfg.FrameInterval = time.Millisecond

	go RunReader("surface-1", &chunkThenErrReader{payload: []byte("exit burst")}, msgCh, cancel, cfg)

	out, ok := nextMsg(t, msgCh).(messages.SurfaceOutput)
	if !ok || string(out.Data) != "exit burst" {
		t.Fatalf("expected the final chunk before stop, got %#v", out)
	}
	stopped, ok := nextMsg(t, msgCh).(messages.SurfaceStopped)
	if !ok {
		t.Fatalf("expected SurfaceStopped after the final chunk")
	}
	if stopped.Err != io.EOF {
		t.Errorf("stopped err = %v, want EOF", stopped.Err)
	}
}

func TestRunReaderFlushesPendingBeforeStopped(t *testing.T) {
	r, w := io.Pipe()
	msgCh := make(chan tea.Msg, 16)
	cancel := make(chan struct{})
	defer close(cancel)

	// A long frame interval so the flush must come from the shutdown
	// path, not a ticker tick.
	cfg := testReaderConfig()
	cfg.FrameInterval = time.Minute

	go RunReader("surface-1", r, msgCh, cancel, cfg)

	if _, err := w.Write([]byte("tail")); err != nil {
		t.Fatalf("pipe write failed: %v", err)
	}
	w.Close()

	out, ok := nextMsg(t, msgCh).(messages.SurfaceOutput)
	if !ok || string(out.Data) != "tail" {
		t.Fatalf("expected pending output %q before stop, got %#v", "tail", out)
	}
	if _, ok := nextMsg(t, msgCh).(messages.SurfaceStopped); !ok {
		t.Fatalf("expected SurfaceStopped after flush")
	}
}
