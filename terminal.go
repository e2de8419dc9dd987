package termcore

import (
	"github.com/danielgatis/go-ansicode"
)

// Ensure Terminal implements ansicode.Handler.
var _ ansicode.Handler = (*Terminal)(nil)

const (
	// DefaultRows is the default number of terminal rows.
	DefaultRows = 24
	// DefaultCols is the default number of terminal columns.
	DefaultCols = 80
)

// Terminal is the VT-100 output parser's sink: it owns an OffscreenBuffer
// and a go-ansicode decoder, and implements ansicode.Handler by mutating the
// buffer exactly as a VT-100/xterm would mutate its display. Per the core's
// single-threaded, synchronous concurrency model, Terminal has no internal
// locking — the caller (an event loop reading from a child PTY) owns it
// exclusively for the duration of a Write call.
type Terminal struct {
	buf     *OffscreenBuffer
	decoder *ansicode.Decoder

	title      string
	titleStack []string

	keyboardModes   []ansicode.KeyboardMode
	modifyOtherKeys ansicode.ModifyOtherKeys

	colors map[int]Color

	promptMarks []PromptMark
}

// New creates a terminal with the given size. Values <= 0 are replaced with
// defaults (24x80).
func New(rows, cols int) *Terminal {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	t := &Terminal{
		buf:    NewEmpty(Size{RowHeight: RowHeight(rows), ColWidth: ColWidth(cols)}),
		colors: make(map[int]Color),
	}
	t.decoder = ansicode.NewDecoder(t)
	return t
}

// Buffer returns the offscreen buffer this terminal mutates.
func (t *Terminal) Buffer() *OffscreenBuffer { return t.buf }

// Write parses raw bytes, applying VT-100/ANSI escape sequences to the
// offscreen buffer. Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	return t.decoder.Write(data)
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the terminal dimensions, rebuilding the grid. Cells in the
// region the old and new sizes share are copied over; cells outside it are
// dropped, and new cells start as Spacer. The scroll region is reset to the
// full new height.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	size := Size{RowHeight: RowHeight(rows), ColWidth: ColWidth(cols)}
	newBuf := NewEmpty(size)
	oldBuf := t.buf
	for row := 0; row < rows && row < int(oldBuf.windowSize.RowHeight); row++ {
		for col := 0; col < cols && col < int(oldBuf.windowSize.ColWidth); col++ {
			newBuf.buffer[row][col] = oldBuf.buffer[row][col]
		}
	}
	newBuf.cursorPos = Pos{
		Row: t.buf.cursorPos.Row.ClampToCursor(RowHeight(rows)),
		Col: t.buf.cursorPos.Col.ClampToCursor(ColWidth(cols)),
	}
	newBuf.ansiState = t.buf.ansiState
	newBuf.ansiState.ScrollRegionBottom = RowIndex(rows)
	newBuf.recomputeMemoSize()
	t.buf = newBuf
}

// clampRow clamps a row to the grid's content bounds.
func (t *Terminal) clampRow(row RowIndex) RowIndex {
	return row.ClampToContent(t.buf.windowSize.RowHeight)
}

// clampCol clamps a column to the grid's content bounds.
func (t *Terminal) clampCol(col ColIndex) ColIndex {
	return col.ClampToContent(t.buf.windowSize.ColWidth)
}
