package scrollback

import (
	"bytes"
	"errors"
	"testing"
)

// checkShape verifies the row-count and row-length invariants.
func checkShape(t *testing.T, b *Buffer) {
	t.Helper()
	if len(b.Rows) != b.Height {
		t.Fatalf("expected %d rows, got %d", b.Height, len(b.Rows))
	}
	for i, row := range b.Rows {
		if len(row) != b.Width {
			t.Fatalf("row %d has length %d, want %d", i, len(row), b.Width)
		}
	}
}

// rowText returns a row's content with trailing NULs stripped.
func rowText(b *Buffer, y int) string {
	return string(bytes.TrimRight(b.Rows[y], "\x00"))
}

func TestNewIsEmpty(t *testing.T) {
	b := New()
	if b.Width != 0 || b.Height != 0 || len(b.Rows) != 0 {
		t.Fatalf("new buffer should be empty, got %dx%d with %d rows", b.Width, b.Height, len(b.Rows))
	}
	checkShape(t, b)
}

func TestInitDefaultShape(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if b.Width != DefaultWidth || b.Height != DefaultHeight {
		t.Fatalf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, b.Width, b.Height)
	}
	checkShape(t, b)
}

func TestResizeSameShapeIsNoop(t *testing.T) {
	b := New()
	if err := b.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("hi"))
	rows := b.Rows

	if err := b.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for i := range rows {
		if &rows[i][0] != &b.Rows[i][0] {
			t.Fatalf("row %d was reallocated by a same-shape resize", i)
		}
	}
}

func TestResizeZeroDimensionCollapses(t *testing.T) {
	for _, shape := range [][2]int{{0, 10}, {10, 0}, {0, 0}} {
		b := New()
		if err := b.Resize(5, 3); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		b.Write([]byte("abc"))
		if err := b.Resize(shape[0], shape[1]); err != nil {
			t.Fatalf("Resize(%d, %d) failed: %v", shape[0], shape[1], err)
		}
		if b.Width != 0 || b.Height != 0 || b.Rows != nil {
			t.Errorf("Resize(%d, %d) should empty the buffer, got %dx%d", shape[0], shape[1], b.Width, b.Height)
		}
		if b.CursorX != 0 || b.CursorY != 0 {
			t.Errorf("cursor should be pinned at origin on an empty buffer, got (%d, %d)", b.CursorX, b.CursorY)
		}
	}
}

func TestResizeGrowPreservesContent(t *testing.T) {
	b := New()
	if err := b.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("AAAAA\nBBB\nC"))

	if err := b.Resize(8, 5); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	checkShape(t, b)

	want := []string{"AAAAA", "BBB", "C", "", ""}
	for y, text := range want {
		if got := rowText(b, y); got != text {
			t.Errorf("row %d = %q, want %q", y, got, text)
		}
	}
	// Newly added cells stay zero-filled.
	for y := range b.Rows {
		for x := 5; x < b.Width; x++ {
			if b.Rows[y][x] != 0 {
				t.Fatalf("cell (%d, %d) should be zero after grow, got %d", y, x, b.Rows[y][x])
			}
		}
	}
}

func TestResizeShrinkKeepsBottomRows(t *testing.T) {
	b := New()
	if err := b.Resize(5, 4); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("one\ntwo\nthree\nfour"))

	if err := b.Resize(5, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	checkShape(t, b)

	if got := rowText(b, 0); got != "three" {
		t.Errorf("row 0 = %q, want %q", got, "three")
	}
	if got := rowText(b, 1); got != "four" {
		t.Errorf("row 1 = %q, want %q", got, "four")
	}
}

func TestResizeNarrowTruncatesColumns(t *testing.T) {
	b := New()
	if err := b.Resize(5, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("ABCDE\nFGHIJ"))

	if err := b.Resize(3, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	checkShape(t, b)

	if got := rowText(b, 0); got != "ABC" {
		t.Errorf("row 0 = %q, want %q", got, "ABC")
	}
	if got := rowText(b, 1); got != "FGH" {
		t.Errorf("row 1 = %q, want %q", got, "FGH")
	}
}

func TestResizeAllocationFailureIsAtomic(t *testing.T) {
	b := New()
	if err := b.Resize(4, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("abcd\nefgh"))

	before := make([][]byte, len(b.Rows))
	for i, row := range b.Rows {
		before[i] = append([]byte(nil), row...)
	}
	cursorX, cursorY := b.CursorX, b.CursorY

	// Fail on the third row of a growing resize.
	calls := 0
	allocRowFn = func(width int) ([]byte, error) {
		calls++
		if calls == 3 {
			return nil, errors.New("alloc failed")
		}
		return make([]byte, width), nil
	}
	defer func() { allocRowFn = nil }()

	if err := b.Resize(10, 8); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}

	if b.Width != 4 || b.Height != 2 {
		t.Fatalf("shape changed after failed resize: %dx%d", b.Width, b.Height)
	}
	checkShape(t, b)
	for i, row := range before {
		if !bytes.Equal(row, b.Rows[i]) {
			t.Errorf("row %d changed after failed resize: %q != %q", i, b.Rows[i], row)
		}
	}
	if b.CursorX != cursorX || b.CursorY != cursorY {
		t.Errorf("cursor moved after failed resize: (%d, %d)", b.CursorX, b.CursorY)
	}
}

func TestRotate(t *testing.T) {
	b := New()
	if err := b.Resize(3, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("aa\nbb\ncc"))

	b.Rotate()
	checkShape(t, b)

	if got := rowText(b, 0); got != "bb" {
		t.Errorf("row 0 = %q, want %q", got, "bb")
	}
	if got := rowText(b, 1); got != "cc" {
		t.Errorf("row 1 = %q, want %q", got, "cc")
	}
	for x, c := range b.Rows[2] {
		if c != 0 {
			t.Fatalf("bottom row cell %d should be zero after rotate, got %d", x, c)
		}
	}
}

func TestRotateReusesEvictedStorage(t *testing.T) {
	b := New()
	if err := b.Resize(3, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	evicted := &b.Rows[0][0]

	b.Rotate()
	if &b.Rows[1][0] != evicted {
		t.Errorf("rotate should reuse the evicted row's storage for the bottom row")
	}
}

func TestRotateEmptyBufferIsNoop(t *testing.T) {
	b := New()
	b.Rotate()
	checkShape(t, b)
}

func TestWriteFillsRowExactly(t *testing.T) {
	b := New()
	if err := b.Resize(5, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("ABCDE"))

	if got := rowText(b, 0); got != "ABCDE" {
		t.Errorf("row 0 = %q, want %q", got, "ABCDE")
	}
	// Cursor sits past the last column until the next byte forces a wrap.
	if b.CursorX != 5 || b.CursorY != 0 {
		t.Errorf("cursor = (%d, %d), want (5, 0)", b.CursorX, b.CursorY)
	}

	b.Write([]byte("F"))
	if got := rowText(b, 1); got != "F" {
		t.Errorf("row 1 = %q, want %q", got, "F")
	}
	if b.CursorX != 1 || b.CursorY != 1 {
		t.Errorf("cursor = (%d, %d), want (1, 1)", b.CursorX, b.CursorY)
	}
}

func TestWriteNewlineAfterFullRow(t *testing.T) {
	b := New()
	if err := b.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("ABCDE\nX"))

	if got := rowText(b, 0); got != "ABCDE" {
		t.Errorf("row 0 = %q, want %q", got, "ABCDE")
	}
	if got := rowText(b, 1); got != "X" {
		t.Errorf("row 1 = %q, want %q", got, "X")
	}
	if b.CursorX != 1 || b.CursorY != 1 {
		t.Errorf("cursor = (%d, %d), want (1, 1)", b.CursorX, b.CursorY)
	}
}

func TestWriteScrollsOldestLineOff(t *testing.T) {
	b := New()
	if err := b.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("AAAAA\nBBBBB\nCCCCC\nDDDDD"))
	checkShape(t, b)

	want := []string{"BBBBB", "CCCCC", "DDDDD"}
	for y, text := range want {
		if got := rowText(b, y); got != text {
			t.Errorf("row %d = %q, want %q", y, got, text)
		}
	}
	if b.CursorX != 5 || b.CursorY != 2 {
		t.Errorf("cursor = (%d, %d), want (5, 2)", b.CursorX, b.CursorY)
	}
}

func TestWriteWrapScrollsWithoutNewline(t *testing.T) {
	b := New()
	if err := b.Resize(3, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	// Nine content bytes fill three visual lines in a two-row buffer,
	// so the first wrapped line scrolls off.
	b.Write([]byte("abcdefghi"))

	if got := rowText(b, 0); got != "def" {
		t.Errorf("row 0 = %q, want %q", got, "def")
	}
	if got := rowText(b, 1); got != "ghi" {
		t.Errorf("row 1 = %q, want %q", got, "ghi")
	}
}

func TestWriteIgnoresNulBytes(t *testing.T) {
	b := New()
	if err := b.Resize(5, 1); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b.Write([]byte("AB\x00CD"))

	if got := rowText(b, 0); got != "ABCD" {
		t.Errorf("row 0 = %q, want %q", got, "ABCD")
	}
	if b.CursorX != 4 || b.CursorY != 0 {
		t.Errorf("cursor = (%d, %d), want (4, 0)", b.CursorX, b.CursorY)
	}
}

func TestWriteToEmptyBufferIsNoop(t *testing.T) {
	b := New()
	b.Write([]byte("dropped"))
	checkShape(t, b)

	b = New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	b.Deinit()
	b.Write([]byte("also dropped"))
	if len(b.Rows) != 0 {
		t.Fatalf("deinitialized buffer should hold no rows")
	}
}

func TestConsecutiveScrollEventsAreIndependent(t *testing.T) {
	b := New()
	if err := b.Resize(3, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	// Each newline past the bottom row triggers its own rotate.
	b.Write([]byte("aa\nbb\ncc\ndd"))

	if got := rowText(b, 0); got != "cc" {
		t.Errorf("row 0 = %q, want %q", got, "cc")
	}
	if got := rowText(b, 1); got != "dd" {
		t.Errorf("row 1 = %q, want %q", got, "dd")
	}
}

func TestShapeInvariantAcrossMixedOperations(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	steps := []func(){
		func() { b.Write([]byte("hello world\n")) },
		func() { _ = b.Resize(10, 5) },
		func() { b.Rotate() },
		func() { b.Write(bytes.Repeat([]byte("x"), 64)) },
		func() { _ = b.Resize(120, 40) },
		func() { b.Write([]byte("tail\n\n\n")) },
		func() { _ = b.Resize(2, 2) },
		func() { b.Write([]byte("zz")) },
	}
	for i, step := range steps {
		step()
		if len(b.Rows) != b.Height {
			t.Fatalf("step %d: expected %d rows, got %d", i, b.Height, len(b.Rows))
		}
		for y, row := range b.Rows {
			if len(row) != b.Width {
				t.Fatalf("step %d: row %d has length %d, want %d", i, y, len(row), b.Width)
			}
		}
	}
}
