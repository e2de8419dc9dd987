package termcore

import (
	"fmt"
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// decGraphicsTable maps the DEC Special Graphics character set's ASCII
// range onto the box-drawing glyphs xterm uses. Only the line-drawing
// subset spec.md names is covered; everything else passes through.
var decGraphicsTable = map[rune]rune{
	'j': '┘', 'k': '┐', 'l': '┌', 'm': '└', 'n': '┼',
	'q': '─', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│',
}

// Input writes one grapheme at the cursor, handling DEC graphics
// translation, wide glyphs, and auto-wrap/scroll.
func (t *Terminal) Input(r rune) {
	state := &t.buf.ansiState

	if state.CharacterSet == CharacterSetDecGraphics {
		if translated, ok := decGraphicsTable[r]; ok {
			r = translated
		}
	}

	width := runeWidth(r)
	if width == 0 {
		return
	}

	col := t.buf.cursorPos.Col
	row := t.buf.cursorPos.Row
	rightMargin := ColWidth(t.buf.windowSize.ColWidth)

	if int(col)+width > int(rightMargin) {
		if state.AutoWrap {
			t.lineFeed()
			col = 0
			row = t.buf.cursorPos.Row
		} else {
			col = ColIndex(int(rightMargin) - 1)
			if width == 2 {
				return
			}
		}
	}

	t.buf.setCell(row, col, PlainText(r, state.CurrentStyle))
	col = col.Add(1)
	if width == 2 && !col.OverflowsContent(t.buf.windowSize.ColWidth) {
		t.buf.setCell(row, col, Void())
		col = col.Add(1)
	}

	t.buf.cursorPos = Pos{Row: row, Col: col}
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	if t.buf.cursorPos.Col > 0 {
		t.buf.cursorPos.Col--
	}
}

// Bell is swallowed, surfacing as an opaque OSC-style event for a host
// that wants to react to it (e.g. flash the window).
func (t *Terminal) Bell() {
	t.buf.ansiState.PushOscEvent(-1, "bell")
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (t *Terminal) CarriageReturn() {
	t.buf.cursorPos.Col = 0
}

// ClearLine clears portions of the current line (right, left, or all).
func (t *Terminal) ClearLine(mode ansicode.LineClearMode) {
	row := t.buf.cursorPos.Row
	col := t.buf.cursorPos.Col
	switch mode {
	case ansicode.LineClearModeRight:
		t.buf.clearRowRange(row, col, ColIndex(t.buf.windowSize.ColWidth))
	case ansicode.LineClearModeLeft:
		t.buf.clearRowRange(row, 0, col+1)
	case ansicode.LineClearModeAll:
		t.buf.clearRow(row)
	}
}

// ClearScreen clears screen regions (below cursor, above cursor, all, or
// saved lines — treated as all, since the buffer carries no scrollback).
func (t *Terminal) ClearScreen(mode ansicode.ClearMode) {
	row := t.buf.cursorPos.Row
	col := t.buf.cursorPos.Col
	switch mode {
	case ansicode.ClearModeBelow:
		t.buf.clearRowRange(row, col, ColIndex(t.buf.windowSize.ColWidth))
		for r := row + 1; int(r) < int(t.buf.windowSize.RowHeight); r++ {
			t.buf.clearRow(r)
		}
	case ansicode.ClearModeAbove:
		for r := RowIndex(0); r < row; r++ {
			t.buf.clearRow(r)
		}
		t.buf.clearRowRange(row, 0, col+1)
	default: // ClearModeAll, ClearModeSaved
		pos := t.buf.cursorPos
		t.buf.Clear()
		t.buf.cursorPos = pos
	}
}

// ClearTabs is a no-op: the tab grid spec.md names is a fixed every-8-column
// stop (see MoveForwardTabs/Tab below), not a per-column settable table, so there is
// no tab-stop state to clear.
func (t *Terminal) ClearTabs(mode ansicode.TabulationClearMode) {}

// ClipboardLoad/ClipboardStore: OSC 52 clipboard access has no collaborator
// in this core (no ClipboardProvider — the host owns clipboard policy
// entirely outside the parser). Both surface as opaque OSC events so a host
// that wires a clipboard can still see the request.
func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {
	t.buf.ansiState.PushOscEvent(52, "load:"+string(clipboard))
}

func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {
	t.buf.ansiState.PushOscEvent(52, "store:"+string(clipboard)+":"+string(data))
}

// ConfigureCharset sets the active character set. The core tracks a single
// Ascii/DecGraphics toggle (per spec.md's ansi_state), not the four G0-G3
// slots xterm exposes, so only charset values recognizable as line-drawing
// flip it to DecGraphics; everything else resets to Ascii.
func (t *Terminal) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	if index != ansicode.CharsetIndexG0 {
		return
	}
	if isLineDrawingCharset(charset) {
		t.buf.ansiState.CharacterSet = CharacterSetDecGraphics
	} else {
		t.buf.ansiState.CharacterSet = CharacterSetAscii
	}
}

// SetActiveCharset is a no-op for the same reason ConfigureCharset only
// honors G0: there is one active character-set slot, not four.
func (t *Terminal) SetActiveCharset(n int) {}

// Decaln (DEC screen alignment test) is outside spec.md's CSI coverage;
// accepted and ignored rather than fabricating an 'E'-fill operation the
// spec never names.
func (t *Terminal) Decaln() {}

// DeleteChars removes n characters at the cursor, shifting remaining
// characters in the row left and filling the vacated tail with Spacer.
func (t *Terminal) DeleteChars(n int) {
	row := t.buf.cursorPos.Row
	col := int(t.buf.cursorPos.Col)
	width := int(t.buf.windowSize.ColWidth)
	if n <= 0 || row.OverflowsContent(t.buf.windowSize.RowHeight) {
		return
	}
	line := t.buf.buffer[row]
	if n > width-col {
		n = width - col
	}
	copy(line[col:], line[col+n:])
	for c := width - n; c < width; c++ {
		line[c] = Spacer()
	}
	t.buf.recomputeMemoSize()
}

// InsertBlank inserts n blank cells at the cursor, shifting existing
// characters in the row right and discarding overflow at the margin.
func (t *Terminal) InsertBlank(n int) {
	row := t.buf.cursorPos.Row
	col := int(t.buf.cursorPos.Col)
	width := int(t.buf.windowSize.ColWidth)
	if n <= 0 || row.OverflowsContent(t.buf.windowSize.RowHeight) {
		return
	}
	if n > width-col {
		n = width - col
	}
	line := t.buf.buffer[row]
	copy(line[col+n:], line[col:width-n])
	for c := col; c < col+n; c++ {
		line[c] = Spacer()
	}
	t.buf.recomputeMemoSize()
}

// scrollRegion returns the current DECSTBM bounds.
func (t *Terminal) scrollRegion() (top, bottom RowIndex) {
	return t.buf.ansiState.ScrollRegionTop, t.buf.ansiState.ScrollRegionBottom
}

// scrollUp shifts rows [top, bottom) up by n, discarding the top n rows and
// filling the bottom n rows with Spacer. Content outside the region is
// untouched.
func (t *Terminal) scrollUp(top, bottom RowIndex, n int) {
	if n <= 0 {
		return
	}
	regionLen := int(bottom - top)
	if n > regionLen {
		n = regionLen
	}
	for r := int(top); r < int(bottom)-n; r++ {
		t.buf.buffer[r] = t.buf.buffer[r+n]
	}
	for r := int(bottom) - n; r < int(bottom); r++ {
		t.buf.buffer[r] = NewPixelCharLine(t.buf.windowSize.ColWidth)
	}
	t.buf.recomputeMemoSize()
}

// scrollDown is scrollUp's mirror: rows shift down, the top n rows become
// Spacer, the bottom n rows are discarded.
func (t *Terminal) scrollDown(top, bottom RowIndex, n int) {
	if n <= 0 {
		return
	}
	regionLen := int(bottom - top)
	if n > regionLen {
		n = regionLen
	}
	for r := int(bottom) - 1; r >= int(top)+n; r-- {
		t.buf.buffer[r] = t.buf.buffer[r-n]
	}
	for r := int(top); r < int(top)+n; r++ {
		t.buf.buffer[r] = NewPixelCharLine(t.buf.windowSize.ColWidth)
	}
	t.buf.recomputeMemoSize()
}

// lineFeed is the C0 LF behavior shared by Input's auto-wrap path and the
// LineFeed handler method: move down one row, scrolling inside the region
// if already at its bottom.
func (t *Terminal) lineFeed() {
	top, bottom := t.scrollRegion()
	row := t.buf.cursorPos.Row
	if row+1 == bottom {
		t.scrollUp(top, bottom, 1)
	} else if !(row + 1).OverflowsContent(t.buf.windowSize.RowHeight) {
		row++
	}
	t.buf.cursorPos.Row = row
}

// LineFeed moves the cursor down one row, scrolling if at the scroll
// region's bottom.
func (t *Terminal) LineFeed() {
	t.lineFeed()
}

// DeleteLines removes n lines at the cursor within the scroll region,
// shifting remaining lines in the region up.
func (t *Terminal) DeleteLines(n int) {
	top, bottom := t.scrollRegion()
	row := t.buf.cursorPos.Row
	if row < top || row >= bottom {
		return
	}
	t.scrollUpFrom(row, bottom, n)
}

// InsertBlankLines inserts n blank lines at the cursor within the scroll
// region, shifting remaining lines in the region down.
func (t *Terminal) InsertBlankLines(n int) {
	top, bottom := t.scrollRegion()
	row := t.buf.cursorPos.Row
	if row < top || row >= bottom {
		return
	}
	_ = top
	t.scrollDown(row, bottom, n)
}

// scrollUpFrom scrolls [from, bottom) up by n, used by DeleteLines where the
// affected region starts at the cursor rather than the DECSTBM top.
func (t *Terminal) scrollUpFrom(from, bottom RowIndex, n int) {
	t.scrollUp(from, bottom, n)
}

// DeviceStatus replies to DSR requests by queuing the response bytes for
// the host to transmit; the parser never writes back to its own stream.
func (t *Terminal) DeviceStatus(n int) {
	switch n {
	case 5:
		t.buf.ansiState.PushDsrResponse([]byte("\x1b[0n"))
	case 6:
		row := int(t.buf.cursorPos.Row) + 1
		col := int(t.buf.cursorPos.Col) + 1
		t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// EraseChars resets n characters at the cursor to Spacer without shifting.
func (t *Terminal) EraseChars(n int) {
	row := t.buf.cursorPos.Row
	col := t.buf.cursorPos.Col
	for i := 0; i < n; i++ {
		c := col.Add(i)
		if c.OverflowsContent(t.buf.windowSize.ColWidth) {
			break
		}
		t.buf.setCell(row, c, Spacer())
	}
}

// Goto moves the cursor to an absolute (row, col), clamped to the grid.
func (t *Terminal) Goto(row, col int) {
	t.buf.cursorPos = Pos{
		Row: t.clampRow(RowIndex(row)),
		Col: t.clampCol(ColIndex(col)),
	}
}

// GotoCol moves the cursor to the given column, keeping the current row.
func (t *Terminal) GotoCol(col int) {
	t.buf.cursorPos.Col = t.clampCol(ColIndex(col))
}

// GotoLine moves the cursor to the given row, keeping the current column.
func (t *Terminal) GotoLine(row int) {
	t.buf.cursorPos.Row = t.clampRow(RowIndex(row))
}

// HorizontalTabSet is a no-op: see ClearTabs.
func (t *Terminal) HorizontalTabSet() {}

// IdentifyTerminal replies with a VT220 device-attributes response.
func (t *Terminal) IdentifyTerminal(b byte) {
	t.buf.ansiState.PushDsrResponse([]byte("\x1b[?62;c"))
}

// InsertBlankLines/DeleteLines above; MoveBackward/MoveForward/MoveUp/MoveDown below.

// MoveBackward moves the cursor left n columns, stopping at column 0.
func (t *Terminal) MoveBackward(n int) {
	t.buf.cursorPos.Col = t.clampCol(t.buf.cursorPos.Col.Add(-n))
}

// MoveBackwardTabs moves the cursor left to the previous n tab stops
// (fixed every-8-column stops).
func (t *Terminal) MoveBackwardTabs(n int) {
	for i := 0; i < n; i++ {
		col := int(t.buf.cursorPos.Col)
		prev := ((col - 1) / 8) * 8
		if col%8 == 0 {
			prev = col - 8
		}
		if prev < 0 {
			prev = 0
		}
		t.buf.cursorPos.Col = ColIndex(prev)
	}
}

// MoveDown moves the cursor down n rows, stopping at the last row.
func (t *Terminal) MoveDown(n int) {
	t.buf.cursorPos.Row = t.clampRow(t.buf.cursorPos.Row.Add(n))
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	t.MoveDown(n)
	t.buf.cursorPos.Col = 0
}

// MoveForward moves the cursor right n columns, stopping at the last column.
func (t *Terminal) MoveForward(n int) {
	t.buf.cursorPos.Col = t.clampCol(t.buf.cursorPos.Col.Add(n))
}

// MoveForwardTabs moves the cursor right to the next n tab stops (fixed
// every-8-column stops, per spec.md's HT rule).
func (t *Terminal) MoveForwardTabs(n int) {
	for i := 0; i < n; i++ {
		col := int(t.buf.cursorPos.Col)
		next := ((col / 8) + 1) * 8
		t.buf.cursorPos.Col = t.clampCol(ColIndex(next))
	}
}

// Tab advances the cursor to the next n tab stops. Alias of MoveForwardTabs,
// dispatched separately by go-ansicode for the bare HT byte.
func (t *Terminal) Tab(n int) {
	t.MoveForwardTabs(n)
}

// MoveUp moves the cursor up n rows, stopping at row 0.
func (t *Terminal) MoveUp(n int) {
	t.buf.cursorPos.Row = t.clampRow(t.buf.cursorPos.Row.Add(-n))
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	t.MoveUp(n)
	t.buf.cursorPos.Col = 0
}

// PopKeyboardMode/PushKeyboardMode/SetKeyboardMode/ReportKeyboardMode are
// the Kitty keyboard-protocol extension. Outside spec.md's coverage but
// required by the Handler interface; kept as a plain stack so a host
// talking to a Kitty-aware program doesn't see garbled state, without the
// core interpreting the modes itself.
func (t *Terminal) PopKeyboardMode(n int) {
	for i := 0; i < n && len(t.keyboardModes) > 0; i++ {
		t.keyboardModes = t.keyboardModes[:len(t.keyboardModes)-1]
	}
}

func (t *Terminal) PushKeyboardMode(mode ansicode.KeyboardMode) {
	t.keyboardModes = append(t.keyboardModes, mode)
}

func (t *Terminal) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
	current := ansicode.KeyboardModeNoMode
	if len(t.keyboardModes) > 0 {
		current = t.keyboardModes[len(t.keyboardModes)-1]
	}
	var next ansicode.KeyboardMode
	switch behavior {
	case ansicode.KeyboardModeBehaviorReplace:
		next = mode
	case ansicode.KeyboardModeBehaviorUnion:
		next = current | mode
	case ansicode.KeyboardModeBehaviorDifference:
		next = current &^ mode
	}
	if len(t.keyboardModes) > 0 {
		t.keyboardModes[len(t.keyboardModes)-1] = next
	} else {
		t.keyboardModes = append(t.keyboardModes, next)
	}
}

func (t *Terminal) ReportKeyboardMode() {
	var mode ansicode.KeyboardMode
	if len(t.keyboardModes) > 0 {
		mode = t.keyboardModes[len(t.keyboardModes)-1]
	}
	t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b[?%du", mode)))
}

// PopTitle/PushTitle maintain the xterm window-title stack (CSI 22t/23t).
func (t *Terminal) PopTitle() {
	if len(t.titleStack) > 0 {
		t.title = t.titleStack[len(t.titleStack)-1]
		t.titleStack = t.titleStack[:len(t.titleStack)-1]
	}
}

func (t *Terminal) PushTitle() {
	t.titleStack = append(t.titleStack, t.title)
}

// PrivacyMessageReceived / StartOfStringReceived / ApplicationCommandReceived
// (PM/SOS/APC) have no collaborator in this core — no image or terminfo
// extension consumes them — so they are accepted and discarded rather than
// fabricating a provider interface spec.md never names.
func (t *Terminal) PrivacyMessageReceived(data []byte) {}
func (t *Terminal) StartOfStringReceived(data []byte)  {}
func (t *Terminal) ApplicationCommandReceived(data []byte) {}

// ReportModifyOtherKeys replies with the current modify-other-keys mode.
func (t *Terminal) ReportModifyOtherKeys() {
	t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b[>4;%dm", t.modifyOtherKeys)))
}

func (t *Terminal) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {
	t.modifyOtherKeys = modify
}

// ResetColor/SetColor/SetDynamicColor implement OSC 4/104/10/11/12 palette
// queries and overrides against the 256-color palette.
func (t *Terminal) ResetColor(i int) {
	delete(t.colors, i)
}

func (t *Terminal) SetColor(index int, c color.Color) {
	r, g, b, _ := c.RGBA()
	t.colors[index] = RGBColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func (t *Terminal) SetDynamicColor(prefix string, index int, terminator string) {
	var c Color
	if custom, ok := t.colors[index]; ok {
		c = custom
	} else if index >= 0 && index < 256 {
		p := DefaultPalette256[index]
		c = RGBColor(p[0], p[1], p[2])
	} else {
		return
	}
	r, g, b := c.Resolve()
	t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b]%s;rgb:%02x/%02x/%02x%s", prefix, r, g, b, terminator)))
}

// SetCursorStyle is accepted but not stored: spec.md's offscreen buffer
// tracks only cursor_pos, not a rendered cursor shape. Forwarded as an OSC
// event so a host painter that does draw a cursor glyph still learns the
// requested style.
func (t *Terminal) SetCursorStyle(style ansicode.CursorStyle) {
	t.buf.ansiState.PushOscEvent(-2, fmt.Sprintf("cursor-style:%d", style))
}

// SetHyperlink records the active hyperlink as an OSC 8 event; spec.md's
// PixelChar carries no hyperlink field, so per-cell association is a host
// concern layered on top of the event stream, not the grid model.
func (t *Terminal) SetHyperlink(hyperlink *ansicode.Hyperlink) {
	if hyperlink == nil {
		t.buf.ansiState.PushOscEvent(8, "")
		return
	}
	t.buf.ansiState.PushOscEvent(8, hyperlink.ID+";"+hyperlink.URI)
}

// SetKeypadApplicationMode / UnsetKeypadApplicationMode: accepted, no
// buffer-visible effect (the core has no keypad-input concept; that lives
// in the VT-100 input parser, which is driven by the controlling terminal,
// not this output parser).
func (t *Terminal) SetKeypadApplicationMode()   {}
func (t *Terminal) UnsetKeypadApplicationMode() {}

// SetMode/UnsetMode cover spec.md's one named mode, DECAWM (auto-wrap);
// every other terminal mode is accepted and ignored rather than growing
// state the spec never asks for.
func (t *Terminal) SetMode(mode ansicode.TerminalMode) {
	t.setMode(mode, true)
}

func (t *Terminal) UnsetMode(mode ansicode.TerminalMode) {
	t.setMode(mode, false)
}

func (t *Terminal) setMode(mode ansicode.TerminalMode, set bool) {
	if mode == ansicode.TerminalModeLineWrap {
		t.buf.ansiState.AutoWrap = set
	}
}

// SetScrollingRegion sets the DECSTBM bounds (1-based input, converted to
// 0-based, half-open). An empty or out-of-range top or bottom falls back to
// the screen's edge; a region whose top is not above its bottom is ignored.
// Moves the cursor to the region's top-left.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	rowHeight := t.buf.windowSize.RowHeight
	top--
	if top < 0 {
		top = 0
	}
	if bottom <= 0 || bottom > int(rowHeight) {
		bottom = int(rowHeight)
	}
	if top >= bottom {
		return
	}
	t.buf.ansiState.ScrollRegionTop = RowIndex(top)
	t.buf.ansiState.ScrollRegionBottom = RowIndex(bottom)
	t.buf.cursorPos = Pos{Row: RowIndex(top), Col: 0}
}

// SaveCursorPosition / RestoreCursorPosition implement ESC 7/8 and their CSI
// s/u aliases. spec.md's saved_cursor_for_decsc holds only a position, not
// style or charset state.
func (t *Terminal) SaveCursorPosition() {
	pos := t.buf.cursorPos
	t.buf.ansiState.SavedCursorForDecsc = &pos
}

func (t *Terminal) RestoreCursorPosition() {
	saved := t.buf.ansiState.SavedCursorForDecsc
	if saved == nil {
		return
	}
	t.buf.cursorPos = Pos{
		Row: t.clampRow(saved.Row),
		Col: t.clampCol(saved.Col),
	}
}

// ReverseIndex moves the cursor up one row; at the scroll region's top it
// scrolls the region down instead.
func (t *Terminal) ReverseIndex() {
	top, bottom := t.scrollRegion()
	row := t.buf.cursorPos.Row
	if row == top {
		t.scrollDown(top, bottom, 1)
	} else if row > 0 {
		row--
		t.buf.cursorPos.Row = row
	}
}

// ScrollDown shifts lines down within the scroll region (CSI n T).
func (t *Terminal) ScrollDown(n int) {
	top, bottom := t.scrollRegion()
	t.scrollDown(top, bottom, n)
}

// ScrollUp shifts lines up within the scroll region (CSI n S).
func (t *Terminal) ScrollUp(n int) {
	top, bottom := t.scrollRegion()
	t.scrollUp(top, bottom, n)
}

// isLineDrawingCharset reports whether charset is DEC Special Graphics.
// go-ansicode enumerates Charset with the default (US-ASCII) at the zero
// value, so any non-zero designation is treated as the line-drawing set —
// the only alternate charset spec.md's translation table names.
func isLineDrawingCharset(charset ansicode.Charset) bool {
	return charset != ansicode.Charset(0)
}

// ResetState implements ESC c: full reset.
func (t *Terminal) ResetState() {
	size := t.buf.windowSize
	t.buf.Clear()
	t.buf.cursorPos = Pos{}
	t.buf.ansiState = NewAnsiState(size.RowHeight)
	t.colors = make(map[int]Color)
}

// attrColor resolves an SGR color sub-attribute to a *Color, or nil meaning
// "leave at the style's default" (SGR 39/49/59 and the no-argument case).
func attrColor(attr ansicode.TerminalCharAttribute) *Color {
	if attr.RGBColor != nil {
		c := RGBColor(attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B)
		return &c
	}
	if attr.IndexedColor != nil {
		c := IndexedColor8(uint8(attr.IndexedColor.Index))
		return &c
	}
	if attr.NamedColor != nil {
		c := BasicColor(uint8(*attr.NamedColor))
		return &c
	}
	return nil
}

// SetTerminalCharAttribute applies one SGR attribute to the style
// accumulator (current_style).
func (t *Terminal) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	style := &t.buf.ansiState.CurrentStyle

	switch attr.Attr {
	case ansicode.CharAttributeReset:
		*style = Style{}

	case ansicode.CharAttributeBold:
		style.Attrs |= AttrBold
	case ansicode.CharAttributeDim:
		style.Attrs |= AttrDim
	case ansicode.CharAttributeItalic:
		style.Attrs |= AttrItalic
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		style.Attrs |= AttrUnderline
	case ansicode.CharAttributeBlinkSlow:
		style.Blink = BlinkSlow
	case ansicode.CharAttributeBlinkFast:
		style.Blink = BlinkRapid
	case ansicode.CharAttributeReverse:
		style.Attrs |= AttrReverse
	case ansicode.CharAttributeHidden:
		style.Attrs |= AttrHidden
	case ansicode.CharAttributeStrike:
		style.Attrs |= AttrStrikethrough

	case ansicode.CharAttributeCancelBold:
		style.Attrs &^= AttrBold
	case ansicode.CharAttributeCancelBoldDim:
		style.Attrs &^= AttrBold | AttrDim
	case ansicode.CharAttributeCancelItalic:
		style.Attrs &^= AttrItalic
	case ansicode.CharAttributeCancelUnderline:
		style.Attrs &^= AttrUnderline
	case ansicode.CharAttributeCancelBlink:
		style.Blink = BlinkNone
	case ansicode.CharAttributeCancelReverse:
		style.Attrs &^= AttrReverse
	case ansicode.CharAttributeCancelHidden:
		style.Attrs &^= AttrHidden
	case ansicode.CharAttributeCancelStrike:
		style.Attrs &^= AttrStrikethrough

	case ansicode.CharAttributeForeground:
		style.Fg = attrColor(attr)
	case ansicode.CharAttributeBackground:
		style.Bg = attrColor(attr)
	case ansicode.CharAttributeUnderlineColor:
		// Underline color has no dedicated field on Style (spec.md's Style
		// doesn't name one); the attribute is accepted so the parser stays
		// in sync with the parameter stream, with no further effect.
	}
}

// SetTitle updates the window title and queues the corresponding OSC event.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	t.buf.ansiState.PushOscEvent(0, title)
}

// Title returns the current window title.
func (t *Terminal) Title() string { return t.title }

// Substitute replaces the cell at the cursor with '?' (SUB, error
// indication).
func (t *Terminal) Substitute() {
	t.buf.setCell(t.buf.cursorPos.Row, t.buf.cursorPos.Col, PlainText('?', t.buf.ansiState.CurrentStyle))
}

// TextAreaSizeChars replies with the terminal size in characters.
func (t *Terminal) TextAreaSizeChars() {
	rows := int(t.buf.windowSize.RowHeight)
	cols := int(t.buf.windowSize.ColWidth)
	t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b[8;%d;%dt", rows, cols)))
}

// TextAreaSizePixels replies with the terminal size in pixels, assuming a
// fixed 10x20 cell (the core has no real glyph metrics to report).
func (t *Terminal) TextAreaSizePixels() {
	rows := int(t.buf.windowSize.RowHeight)
	cols := int(t.buf.windowSize.ColWidth)
	t.buf.ansiState.PushDsrResponse([]byte(fmt.Sprintf("\x1b[4;%d;%dt", rows*20, cols*10)))
}

// CellSizePixels replies with a fixed 10x20 cell size.
func (t *Terminal) CellSizePixels() {
	t.buf.ansiState.PushDsrResponse([]byte("\x1b[6;20;10t"))
}

// SixelReceived: image protocols are an explicit Non-goal; accepted and
// discarded.
func (t *Terminal) SixelReceived(params [][]uint16, data []byte) {}

// SetWorkingDirectory records the OSC 7 cwd URI and queues it as an event.
func (t *Terminal) SetWorkingDirectory(uri string) {
	t.buf.ansiState.PushOscEvent(7, uri)
}

// ShellIntegrationMark handles OSC 133 shell-integration marks, recording
// them for prompt-based navigation (see shell_integration.go) and queuing
// the raw event.
func (t *Terminal) ShellIntegrationMark(mark ansicode.ShellIntegrationMark, exitCode int) {
	t.recordPromptMark(mark, exitCode)
	t.buf.ansiState.PushOscEvent(133, fmt.Sprintf("%v:%d", mark, exitCode))
}
