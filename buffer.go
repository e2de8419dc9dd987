package termcore

// OffscreenBuffer is the single source of truth for what a terminal should
// display: a rectangular grid of pixel chars, the cursor, and the VT-100
// parser state needed to interpret the next byte. Rendering is deliberately
// absent — an external painter turns Render/RenderDiff output into bytes on
// its own output device.
type OffscreenBuffer struct {
	buffer     PixelCharLines
	windowSize Size
	cursorPos  Pos

	defaultFg *Color
	defaultBg *Color

	ansiState AnsiState

	memoSizeCache int
}

// NewEmpty returns a buffer of the given size, every cell a Spacer, cursor
// at the origin, full default parser state, memo cache primed.
func NewEmpty(size Size) *OffscreenBuffer {
	b := &OffscreenBuffer{
		buffer:     NewPixelCharLines(size),
		windowSize: size,
		cursorPos:  Pos{},
		ansiState:  NewAnsiState(size.RowHeight),
	}
	b.recomputeMemoSize()
	return b
}

// WindowSize returns the buffer's dimensions.
func (b *OffscreenBuffer) WindowSize() Size { return b.windowSize }

// CursorPos returns the current cursor position.
func (b *OffscreenBuffer) CursorPos() Pos { return b.cursorPos }

// AnsiState returns a pointer to the parser-visible state, for the VT-100
// output parser and tests to inspect or mutate directly.
func (b *OffscreenBuffer) AnsiState() *AnsiState { return &b.ansiState }

// Line returns the row at the given index, or nil if out of range.
func (b *OffscreenBuffer) Line(row RowIndex) PixelCharLine {
	if row.OverflowsContent(b.windowSize.RowHeight) || row < 0 {
		return nil
	}
	return b.buffer[row]
}

// Clear resets every cell to Spacer, moves the cursor to the origin and
// recomputes the memo cache. ansi_state is untouched (a full VT reset is a
// separate, higher-level operation — see ESC c in the output parser).
func (b *OffscreenBuffer) Clear() {
	b.buffer = NewPixelCharLines(b.windowSize)
	b.cursorPos = Pos{}
	b.recomputeMemoSize()
}

// DiffEntry is one cell whose content differs between two buffers, as
// returned by Diff.
type DiffEntry struct {
	Pos  Pos
	Char PixelChar
}

// Diff returns the ordered (row-major) list of cells where other differs
// from b, or ok=false if the two buffers are differently sized. Equal
// buffers return a nil slice with ok=true; callers must accept either a nil
// or empty slice as "no differences".
func (b *OffscreenBuffer) Diff(other *OffscreenBuffer) (entries []DiffEntry, ok bool) {
	if b.windowSize != other.windowSize {
		return nil, false
	}
	for row := 0; row < int(b.windowSize.RowHeight); row++ {
		a := b.buffer[row]
		o := other.buffer[row]
		for col := 0; col < int(b.windowSize.ColWidth); col++ {
			if !a[col].Equal(o[col]) {
				entries = append(entries, DiffEntry{
					Pos:  Pos{Row: RowIndex(row), Col: ColIndex(col)},
					Char: o[col],
				})
			}
		}
	}
	return entries, true
}

// IsRowRangeValid reports whether r is a legal [start, end) row range for
// this buffer's height.
func (b *OffscreenBuffer) IsRowRangeValid(r Range) bool {
	return r.IsValidFor(int(b.windowSize.RowHeight))
}

// IsColRangeValid reports whether r is a legal [start, end) column range for
// the given row. A row out of bounds makes any range invalid.
func (b *OffscreenBuffer) IsColRangeValid(row RowIndex, r Range) bool {
	if row.OverflowsContent(b.windowSize.RowHeight) || row < 0 {
		return false
	}
	return r.IsValidFor(int(b.windowSize.ColWidth))
}

// ValidateRowRange returns the validated slice of lines for r, or ok=false
// if r is not a legal row range. Callers can operate on the returned slice
// without re-checking bounds.
func (b *OffscreenBuffer) ValidateRowRange(r Range) (lines PixelCharLines, ok bool) {
	if !b.IsRowRangeValid(r) {
		return nil, false
	}
	return b.buffer[r.Start:r.End], true
}

// ValidateColRange returns the validated slice of cells for row and r, or
// ok=false if either the row or the range is invalid.
func (b *OffscreenBuffer) ValidateColRange(row RowIndex, r Range) (cells PixelCharLine, ok bool) {
	if !b.IsColRangeValid(row, r) {
		return nil, false
	}
	return b.buffer[row][r.Start:r.End], true
}

// memoBytesPerCell is a conservative fixed estimate of one PixelChar's
// footprint (kind tag + rune + style), used only for the memo cache's
// capacity-planning purpose; it is not a precise unsafe.Sizeof measurement.
const memoBytesPerCell = 24

// recomputeMemoSize recomputes the memoized byte-size estimate. Called on
// every mutable access per spec; cheap relative to the mutation itself
// because it is a fixed multiply, not a rescan of the grid.
func (b *OffscreenBuffer) recomputeMemoSize() {
	b.memoSizeCache = int(b.windowSize.RowHeight) * int(b.windowSize.ColWidth) * memoBytesPerCell
}

// MemorySize returns the memoized total byte estimate for the grid. Fails
// safe (returns 0, never panics) if never computed — which cannot happen via
// NewEmpty, but guards a direct zero-value OffscreenBuffer{}.
func (b *OffscreenBuffer) MemorySize() int {
	return b.memoSizeCache
}

// setCell writes pc at (row, col), recomputing the memo cache. Internal
// helper shared by the VT-100 output parser's mutation methods.
func (b *OffscreenBuffer) setCell(row RowIndex, col ColIndex, pc PixelChar) {
	if row.OverflowsContent(b.windowSize.RowHeight) || row < 0 ||
		col.OverflowsContent(b.windowSize.ColWidth) || col < 0 {
		return
	}
	b.buffer[row][col] = pc
	b.recomputeMemoSize()
}

// clearRowRange resets cells [startCol, endCol) of row to Spacer.
func (b *OffscreenBuffer) clearRowRange(row RowIndex, startCol, endCol ColIndex) {
	if row.OverflowsContent(b.windowSize.RowHeight) || row < 0 {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol.OverflowsContent(b.windowSize.ColWidth) {
		endCol = ColIndex(b.windowSize.ColWidth)
	}
	for c := startCol; c < endCol; c++ {
		b.buffer[row][c] = Spacer()
	}
	b.recomputeMemoSize()
}

// clearRow resets an entire row to Spacer.
func (b *OffscreenBuffer) clearRow(row RowIndex) {
	b.clearRowRange(row, 0, ColIndex(b.windowSize.ColWidth))
}
