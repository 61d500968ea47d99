package console

import (
	"sync"

	"github.com/andyrewlee/conscroll/internal/scrollback"
)

// Surface is one display surface: a scrollback buffer plus the
// serialization the buffer itself does not provide. All access to the
// underlying buffer goes through the surface mutex, so feeds, resizes
// and renders never observe a half-written row.
type Surface struct {
	ID    string
	Title string

	mu      sync.Mutex
	buf     *scrollback.Buffer
	filter  *Filter
	version uint64
}

// NewSurface creates a surface with an initialized buffer. A width or
// height of zero falls back to the 80x24 default.
func NewSurface(id, title string, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		width, height = scrollback.DefaultWidth, scrollback.DefaultHeight
	}
	buf := scrollback.New()
	if err := buf.Resize(width, height); err != nil {
		return nil, err
	}
	return &Surface{
		ID:     id,
		Title:  title,
		buf:    buf,
		filter: NewFilter(width),
	}, nil
}

// Feed filters a raw output chunk and appends the surviving bytes to
// the buffer.
func (s *Surface) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	plain := s.filter.Filter(p)
	if len(plain) == 0 {
		return
	}
	s.buf.Write(plain)
	s.version++
}

// Resize reshapes the buffer. On allocation failure the buffer keeps
// its previous shape and content and the error is returned.
func (s *Surface) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Resize(width, height); err != nil {
		return err
	}
	s.filter.SetWidth(s.buf.Width)
	s.version++
	return nil
}

// Size returns the buffer dimensions.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Width, s.buf.Height
}

// Cursor returns the buffer cursor position.
func (s *Surface) Cursor() (x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.CursorX, s.buf.CursorY
}

// Version returns a counter that increments whenever visible content
// may have changed. Renderers use it to skip redundant redraws.
func (s *Surface) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns a copy of the visible lines with the NUL filler
// rendered as spaces and trailing filler trimmed. Trailing spaces that
// were actually written stay put; only the unwritten NUL tail goes.
// The result aliases no buffer storage.
func (s *Surface) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.buf.Rows))
	for y, row := range s.buf.Rows {
		end := len(row)
		for end > 0 && row[end-1] == 0 {
			end--
		}
		line := make([]byte, end)
		for x := 0; x < end; x++ {
			if row[x] == 0 {
				line[x] = ' '
			} else {
				line[x] = row[x]
			}
		}
		lines[y] = string(line)
	}
	return lines
}

// Close releases the buffer storage. Further feeds are silently
// dropped, matching the zero-size buffer policy.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Deinit()
	s.version++
}
