// Package caret implements grapheme-aware caret movement inside a
// scrollable viewport, as used by an editor component built on top of
// gapbuffer's line storage.
package caret

import "github.com/go-vt100/termcore/gapbuffer"

// Pos is a (row, col) pair, either viewport-relative or document-absolute
// depending on which Engine field it names.
type Pos struct {
	Row int
	Col int
}

// Direction names the direction of a row-stepping move.
type Direction int

const (
	Up Direction = iota
	Down
)

// Engine tracks a caret's viewport-relative position and the viewport's
// origin within the document. The document-absolute caret is always
// CaretRaw + ScrollOffset.
type Engine struct {
	CaretRaw     Pos
	ScrollOffset Pos
	VpWidth      int
	VpHeight     int
}

// New returns an engine for a viewport of the given size, caret at the
// document origin.
func New(vpWidth, vpHeight int) *Engine {
	return &Engine{VpWidth: vpWidth, VpHeight: vpHeight}
}

// ScrAdjCol returns the document-absolute caret column.
func (e *Engine) ScrAdjCol() int { return e.CaretRaw.Col + e.ScrollOffset.Col }

// ScrAdjRow returns the document-absolute caret row.
func (e *Engine) ScrAdjRow() int { return e.CaretRaw.Row + e.ScrollOffset.Row }

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// IncCaretColBy moves the caret right by w columns, clamped to the line's
// display width L, activating horizontal scroll if the clamped position
// would sit past the viewport's right edge.
func (e *Engine) IncCaretColBy(w, lineDisplayWidth, vpWidth int) {
	newCol := e.CaretRaw.Col + w
	if newCol > lineDisplayWidth {
		newCol = lineDisplayWidth
	}
	e.CaretRaw.Col = newCol
	if e.CaretRaw.Col > vpWidth {
		overflow := e.CaretRaw.Col - vpWidth
		e.ScrollOffset.Col += overflow
		e.CaretRaw.Col -= overflow
	}
}

// DecCaretColBy moves the caret left by w columns, pulling the horizontal
// scroll offset left once the caret reaches the viewport's left edge.
func (e *Engine) DecCaretColBy(w int) {
	switch {
	case e.ScrollOffset.Col == 0:
		e.CaretRaw.Col = clampNonNegative(e.CaretRaw.Col - w)
	case e.CaretRaw.Col == 0:
		e.ScrollOffset.Col = clampNonNegative(e.ScrollOffset.Col - w)
	case w > e.CaretRaw.Col:
		shortfall := w - e.CaretRaw.Col
		e.CaretRaw.Col = 0
		e.ScrollOffset.Col = clampNonNegative(e.ScrollOffset.Col - shortfall)
	default:
		e.CaretRaw.Col -= w
	}
}

// SetCaretColTo moves the caret to the document-absolute column
// desiredColScrAdj, dispatching to Inc/Dec according to the current
// position.
func (e *Engine) SetCaretColTo(desiredColScrAdj, lineDisplayWidth, vpWidth int) {
	current := e.ScrAdjCol()
	switch {
	case desiredColScrAdj > current:
		e.IncCaretColBy(desiredColScrAdj-current, lineDisplayWidth, vpWidth)
	case desiredColScrAdj < current:
		e.DecCaretColBy(current - desiredColScrAdj)
	}
}

// ClipCaretToContentWidth snaps the caret to end-of-line if the
// document-absolute column overflows the line's display width.
func (e *Engine) ClipCaretToContentWidth(lineDisplayWidth int) {
	if e.ScrAdjCol() > lineDisplayWidth {
		e.SetCaretColTo(lineDisplayWidth, lineDisplayWidth, e.VpWidth)
	}
}

// IncCaretRowBy moves the caret down by n rows, clamped to maxRowIndex (the
// document's last content row), activating vertical scroll if the clamped
// position would leave the viewport.
func (e *Engine) IncCaretRowBy(n, maxRowIndex, vpHeight int) {
	newRow := e.CaretRaw.Row + n
	if newRow > maxRowIndex {
		newRow = maxRowIndex
	}
	e.CaretRaw.Row = newRow
	if e.CaretRaw.Row > vpHeight {
		overflow := e.CaretRaw.Row - vpHeight
		e.ScrollOffset.Row += overflow
		e.CaretRaw.Row -= overflow
	}
}

// DecCaretRowBy moves the caret up by n rows, pulling the vertical scroll
// offset up once the caret reaches the viewport's top edge.
func (e *Engine) DecCaretRowBy(n int) {
	switch {
	case e.ScrollOffset.Row == 0:
		e.CaretRaw.Row = clampNonNegative(e.CaretRaw.Row - n)
	case e.CaretRaw.Row == 0:
		e.ScrollOffset.Row = clampNonNegative(e.ScrollOffset.Row - n)
	case n > e.CaretRaw.Row:
		shortfall := n - e.CaretRaw.Row
		e.CaretRaw.Row = 0
		e.ScrollOffset.Row = clampNonNegative(e.ScrollOffset.Row - shortfall)
	default:
		e.CaretRaw.Row -= n
	}
}

// IncCaretRow is the single-row convenience form of IncCaretRowBy.
func (e *Engine) IncCaretRow(maxRowIndex int) { e.IncCaretRowBy(1, maxRowIndex, e.VpHeight) }

// DecCaretRow is the single-row convenience form of DecCaretRowBy.
func (e *Engine) DecCaretRow() { e.DecCaretRowBy(1) }

// ChangeCaretRowBy steps the caret by up to n rows in direction, clipping to
// maxRowIndex going Down and to row 0 going Up.
func (e *Engine) ChangeCaretRowBy(n int, direction Direction, maxRowIndex int) {
	switch direction {
	case Down:
		e.IncCaretRowBy(n, maxRowIndex, e.VpHeight)
	case Up:
		e.DecCaretRowBy(n)
	}
}

// SnapToGraphemeBoundary returns col unchanged if it is a legal caret
// position in meta's line, or the start of the next segment if col would
// split a grapheme cluster.
func SnapToGraphemeBoundary(col int, meta *gapbuffer.LineMetadata) int {
	if seg, mid := meta.CheckIsInMiddleOfGrapheme(col); mid {
		return seg.StartDisplayColIndex + seg.DisplayWidth
	}
	return col
}

// ValidateAfterMutation ensures the caret does not sit in the middle of a
// grapheme cluster after a gap-buffer edit on the current line, snapping
// forward to the next segment boundary if it does. Called after every
// caret-affecting edit so arrow-key navigation and deletion never leave the
// caret inside a multi-byte cluster.
func (e *Engine) ValidateAfterMutation(meta *gapbuffer.LineMetadata) {
	current := e.ScrAdjCol()
	snapped := SnapToGraphemeBoundary(current, meta)
	if snapped != current {
		e.SetCaretColTo(snapped, meta.DisplayWidth, e.VpWidth)
	}
}
