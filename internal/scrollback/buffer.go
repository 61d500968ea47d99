package scrollback

import "errors"

// Default shape used by Init, matching a classic console surface.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ErrOutOfMemory is returned by Resize when row allocation fails.
// The buffer is left exactly as it was before the call.
var ErrOutOfMemory = errors.New("scrollback: out of memory")

// allocRowFn is a test hook for injecting allocation failures into Resize.
var allocRowFn func(width int) ([]byte, error)

// Buffer is a fixed-capacity scrollback text buffer with a write cursor.
// Rows[0] is the topmost (oldest) visible line, Rows[Height-1] the
// bottommost (newest) line. Storage is byte-oriented; byte 0 is the
// blank filler value.
//
// A Buffer performs no locking. A single logical writer must drive
// Write, Resize and Rotate; callers that share a buffer across
// goroutines serialize access themselves.
type Buffer struct {
	// Rows holds one fixed-length byte slice per visible line.
	Rows [][]byte

	// Cursor position (0-indexed). CursorX is a column, CursorY a row.
	CursorX, CursorY int

	// Dimensions
	Width, Height int
}

// New creates an empty buffer (zero size, no rows).
func New() *Buffer {
	return &Buffer{}
}

// Init resizes the buffer to the default 80x24 shape.
func (b *Buffer) Init() error {
	return b.Resize(DefaultWidth, DefaultHeight)
}

// Deinit releases all row storage, equivalent to Resize(0, 0).
func (b *Buffer) Deinit() {
	// Resize to the empty shape cannot fail; no allocation happens.
	_ = b.Resize(0, 0)
}

// allocRow allocates one zero-filled row.
func allocRow(width int) ([]byte, error) {
	if allocRowFn != nil {
		return allocRowFn(width)
	}
	return make([]byte, width), nil
}

// Resize reshapes the buffer to width x height, preserving the most
// recent content that fits. A zero in either dimension collapses the
// buffer to the empty 0x0 shape. Allocation is all-or-nothing: on
// failure the buffer is untouched and ErrOutOfMemory is returned.
// The cursor is left where it was; Write normalizes it on the next call.
func (b *Buffer) Resize(width, height int) error {
	if width == b.Width && height == b.Height {
		return nil
	}

	// A buffer cannot be wide but heightless or tall but widthless.
	if width <= 0 || height <= 0 {
		b.Rows = nil
		b.Width = 0
		b.Height = 0
		b.CursorX = 0
		b.CursorY = 0
		return nil
	}

	// Stage the new rows before touching the old ones, so a failed
	// allocation leaves the previous shape and content intact.
	rows := make([][]byte, height)
	for i := range rows {
		row, err := allocRow(width)
		if err != nil {
			return ErrOutOfMemory
		}
		rows[i] = row
	}

	// Keep the bottommost rows when shrinking: the oldest lines are
	// the ones that stop fitting.
	copyWidth := min(width, b.Width)
	copyHeight := min(height, b.Height)
	srcStart := 0
	if height < b.Height {
		srcStart = b.Height - height
	}
	for y := 0; y < copyHeight; y++ {
		copy(rows[y][:copyWidth], b.Rows[srcStart+y][:copyWidth])
	}

	b.Rows = rows
	b.Width = width
	b.Height = height
	return nil
}

// Rotate discards the oldest row, shifts the rest up one slot and
// reuses the evicted row's storage as the cleared bottom row. This is
// an O(height) reference shift plus an O(width) clear; no row content
// is copied.
func (b *Buffer) Rotate() {
	if b.Height == 0 {
		return
	}

	recycled := b.Rows[0]
	for i := range recycled {
		recycled[i] = 0
	}
	copy(b.Rows, b.Rows[1:])
	b.Rows[b.Height-1] = recycled
}

// Write appends a stream of bytes at the cursor, wrapping full lines
// and rotating when the cursor moves past the last row. Newlines reset
// the cursor to the start of the next line; NUL bytes are padding and
// are dropped without advancing the cursor. Writes to a zero-size
// buffer are silently discarded.
func (b *Buffer) Write(p []byte) {
	if b.Height == 0 {
		return
	}

	for _, c := range p {
		switch c {
		case '\n':
			b.CursorX = 0
			b.CursorY++
			if b.CursorY >= b.Height {
				b.CursorY = b.Height - 1
				b.Rotate()
			}
		case 0:
			// Embedded NULs are padding, not content.
		default:
			if b.CursorX >= b.Width {
				b.CursorX = 0
				b.CursorY++
			}
			if b.CursorY >= b.Height {
				b.CursorY = b.Height - 1
				b.Rotate()
			}
			b.Rows[b.CursorY][b.CursorX] = c
			b.CursorX++
		}
	}
}
