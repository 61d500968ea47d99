package console

import (
	"github.com/charmbracelet/x/ansi"
)

const tabStop = 8

// Filter reduces a raw terminal byte stream to the plain bytes a
// scrollback buffer stores: printable text and newlines survive,
// escape sequences and stray controls do not. It is stateful so that
// escape sequences split across chunks decode correctly, and it tracks
// the output column to expand tabs against the buffer width.
type Filter struct {
	state byte
	col   int
	width int
}

// NewFilter creates a filter for a buffer of the given width.
func NewFilter(width int) *Filter {
	return &Filter{width: width}
}

// SetWidth updates the wrap width used for tab expansion. Called when
// the owning surface is resized.
func (f *Filter) SetWidth(width int) {
	f.width = width
	if f.width > 0 && f.col > f.width {
		f.col = f.width
	}
}

// Filter consumes a raw chunk and returns the plain bytes to store.
func (f *Filter) Filter(p []byte) []byte {
	parser := ansi.GetParser()
	defer ansi.PutParser(parser)

	out := make([]byte, 0, len(p))
	for len(p) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(p, f.state, parser)
		if n == 0 {
			break
		}

		if width > 0 {
			// Printable grapheme; stored byte for byte.
			out = f.emit(out, seq)
		} else if len(seq) == 1 {
			switch seq[0] {
			case '\n':
				out = append(out, '\n')
				f.col = 0
			case '\t':
				out = f.emitTab(out)
			case 0:
				// NULs pass through; the buffer treats them as padding.
				out = append(out, 0)
			}
			// Other C0 controls (CR, BEL, BS, ...) are dropped.
		}
		// Multi-byte zero-width sequences are escape sequences; dropped.

		p = p[n:]
		f.state = newState
	}
	return out
}

// emit appends printable bytes, tracking the wrap column.
func (f *Filter) emit(out []byte, seq []byte) []byte {
	for _, c := range seq {
		if f.width > 0 && f.col >= f.width {
			f.col = 0
		}
		out = append(out, c)
		f.col++
	}
	return out
}

// emitTab pads with spaces to the next tab stop.
func (f *Filter) emitTab(out []byte) []byte {
	if f.width > 0 && f.col >= f.width {
		f.col = 0
	}
	pad := tabStop - f.col%tabStop
	if f.width > 0 && f.col+pad > f.width {
		pad = f.width - f.col
	}
	for i := 0; i < pad; i++ {
		out = append(out, ' ')
	}
	f.col += pad
	return out
}
