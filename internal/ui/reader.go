package ui

import (
	"io"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/conscroll/internal/messages"
	"github.com/andyrewlee/conscroll/internal/safego"
)

// ReaderConfig configures the shared PTY read loop.
type ReaderConfig struct {
	ReadBufferSize  int
	ReadQueueSize   int
	FrameInterval   time.Duration
	MaxPendingBytes int
}

// DefaultReaderConfig returns the read loop settings used by the app.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		ReadBufferSize:  4096,
		ReadQueueSize:   64,
		FrameInterval:   16 * time.Millisecond,
		MaxPendingBytes: 64 * 1024,
	}
}

// RunReader reads from r, buffers bytes, and sends SurfaceOutput messages
// via msgCh on ticker ticks or when MaxPendingBytes is hit. Sends
// SurfaceStopped when the reader ends. Does not close msgCh; it is shared
// across surfaces.
func RunReader(surfaceID string, r io.Reader, msgCh chan<- tea.Msg, cancel <-chan struct{}, cfg ReaderConfig) {
	if r == nil {
		return
	}

	dataCh := make(chan []byte, cfg.ReadQueueSize)
	errCh := make(chan error, 1)

	safego.Go("pty-read-"+surfaceID, func() {
		buf := make([]byte, cfg.ReadBufferSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case dataCh <- chunk:
				case <-cancel:
					return
				}
			}
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				close(dataCh)
				return
			}
		}
	})

	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()

	send := func(msg tea.Msg) bool {
		select {
		case <-cancel:
			return false
		case msgCh <- msg:
			return true
		}
	}

	var pending []byte
	var stoppedErr error

	// Stopped is only ever sent after dataCh is drained and closed, so a
	// read error observed early can never race ahead of queued chunks.
	for {
		select {
		case <-cancel:
			return
		case err := <-errCh:
			stoppedErr = err
		case data, ok := <-dataCh:
			if !ok {
				if len(pending) > 0 {
					if !send(messages.SurfaceOutput{SurfaceID: surfaceID, Data: pending}) {
						return
					}
				}
				if stoppedErr == nil {
					select {
					case stoppedErr = <-errCh:
					default:
						stoppedErr = io.EOF
					}
				}
				send(messages.SurfaceStopped{SurfaceID: surfaceID, Err: stoppedErr})
				return
			}
			pending = append(pending, data...)
			if len(pending) >= cfg.MaxPendingBytes {
				if !send(messages.SurfaceOutput{SurfaceID: surfaceID, Data: pending}) {
					return
				}
				pending = nil
			}
		case <-ticker.C:
			if len(pending) > 0 {
				if !send(messages.SurfaceOutput{SurfaceID: surfaceID, Data: pending}) {
					return
				}
				pending = nil
			}
		}
	}
}
