// Package vtinput converts byte streams from a terminal (keyboard, mouse,
// focus, paste, resize) into structured Events, and generates the inverse
// byte form for round-trip testing. It mirrors the output parser's
// ground/escape/CSI state-machine shape, grounded on the same state
// categories go-headless-term uses for its output side, cross-checked
// against an independent CSI-final-byte dispatch table in
// RavenTerminal's parser.
package vtinput

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyCode enumerates recognized keyboard keys.
type KeyCode int

const (
	KeyUp KeyCode = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyFunction
	KeyChar
)

// Modifiers records which modifier keys were held.
type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// KeyEvent is a single keyboard event. Function is only meaningful when
// Code == KeyFunction (1..=12); Char is only meaningful when Code == KeyChar.
type KeyEvent struct {
	Code      KeyCode
	Function  int
	Char      rune
	Modifiers Modifiers
}

// MouseButton enumerates recognized mouse buttons.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseUnknown
)

// MouseAction enumerates recognized mouse actions.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseDrag
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// MouseEvent is a single mouse event, with 0-based Col/Row.
type MouseEvent struct {
	Button    MouseButton
	Col       int
	Row       int
	Action    MouseAction
	Modifiers Modifiers
}

// FocusState is the window focus transition reported by CSI I / CSI O.
type FocusState int

const (
	FocusGained FocusState = iota
	FocusLost
)

// PasteState is the bracketed-paste transition reported by CSI 200~ / 201~.
type PasteState int

const (
	PasteStart PasteState = iota
	PasteEnd
)

// ResizeEvent reports a terminal size change (CSI 8;rows;cols t).
type ResizeEvent struct {
	RowHeight int
	ColWidth  int
}

// EventKind discriminates Event's active field.
type EventKind int

const (
	EventKeyboard EventKind = iota
	EventMouse
	EventFocus
	EventPaste
	EventResize
)

// Event is the sum type produced by the parser and consumed by Generate.
type Event struct {
	Kind     EventKind
	Keyboard KeyEvent
	Mouse    MouseEvent
	Focus    FocusState
	Paste    PasteState
	Resize   ResizeEvent
}

func keyEvent(code KeyCode, mods Modifiers) Event {
	return Event{Kind: EventKeyboard, Keyboard: KeyEvent{Code: code, Modifiers: mods}}
}

func charEvent(mods Modifiers, r rune) Event {
	return Event{Kind: EventKeyboard, Keyboard: KeyEvent{Code: KeyChar, Char: r, Modifiers: mods}}
}

func functionEvent(n int) Event {
	return Event{Kind: EventKeyboard, Keyboard: KeyEvent{Code: KeyFunction, Function: n}}
}

func mouseEvent(btn MouseButton, col, row int, action MouseAction, mods Modifiers) Event {
	return Event{Kind: EventMouse, Mouse: MouseEvent{Button: btn, Col: col, Row: row, Action: action, Modifiers: mods}}
}

func focusEvent(s FocusState) Event { return Event{Kind: EventFocus, Focus: s} }
func pasteEvent(s PasteState) Event { return Event{Kind: EventPaste, Paste: s} }

func resizeEvent(rows, cols int) Event {
	return Event{Kind: EventResize, Resize: ResizeEvent{RowHeight: rows, ColWidth: cols}}
}

type parserState int

const (
	stGround parserState = iota
	stEscape
	stCSI
	stSS3
	stMouseX10
)

// Parser is a resumable byte-stream state machine, fed incrementally as
// bytes arrive from a keyboard/mouse device.
type Parser struct {
	st          parserState
	params      []byte
	mouseX10Buf []byte
}

// NewParser returns a parser starting in the ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Feed processes data and returns every Event fully decoded so far. A
// trailing lone ESC with no following byte is flushed as a plain Escape key,
// since no more bytes are coming in this call and the state machine has no
// timer to wait on.
func (p *Parser) Feed(data []byte) []Event {
	var events []Event

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch p.st {
		case stGround:
			switch {
			case b == 0x1b:
				p.st = stEscape
			case b == 0x09:
				events = append(events, keyEvent(KeyTab, Modifiers{}))
			case b == 0x0d:
				events = append(events, keyEvent(KeyEnter, Modifiers{}))
			case b == 0x7f:
				events = append(events, keyEvent(KeyBackspace, Modifiers{}))
			case b >= 1 && b <= 26:
				events = append(events, charEvent(Modifiers{Ctrl: true}, rune('a'+b-1)))
			case b < 0x20:
				// other C0 controls carry no input-event meaning
			default:
				r, size := decodeRune(data[i:])
				events = append(events, charEvent(Modifiers{}, r))
				i += size - 1
			}

		case stEscape:
			switch b {
			case '[':
				p.st = stCSI
				p.params = p.params[:0]
			case 'O':
				p.st = stSS3
			default:
				r, size := decodeRune(data[i:])
				events = append(events, charEvent(Modifiers{Alt: true}, r))
				i += size - 1
				p.st = stGround
			}

		case stSS3:
			switch b {
			case 'P':
				events = append(events, functionEvent(1))
			case 'Q':
				events = append(events, functionEvent(2))
			case 'R':
				events = append(events, functionEvent(3))
			case 'S':
				events = append(events, functionEvent(4))
			}
			p.st = stGround

		case stCSI:
			if len(p.params) == 0 && b == 'M' {
				p.st = stMouseX10
				p.mouseX10Buf = p.mouseX10Buf[:0]
				continue
			}
			if isCSIFinal(b) {
				events = append(events, dispatchCSI(p.params, b)...)
				p.st = stGround
				p.params = p.params[:0]
			} else {
				p.params = append(p.params, b)
			}

		case stMouseX10:
			p.mouseX10Buf = append(p.mouseX10Buf, b)
			if len(p.mouseX10Buf) == 3 {
				events = append(events, x10MouseEvent(p.mouseX10Buf))
				p.st = stGround
			}
		}
	}

	if p.st == stEscape {
		events = append(events, keyEvent(KeyEscape, Modifiers{}))
		p.st = stGround
	}
	return events
}

// decodeRune decodes one UTF-8 rune at the start of data, falling back to a
// single-byte replacement on invalid input so the parser always advances.
func decodeRune(data []byte) (rune, int) {
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return rune(data[0]), 1
	}
	return r, size
}

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// parseCSIParams splits raw CSI bytes into an optional leading marker
// ('?', '<', '>', '=') and a slice of decimal sub-parameters.
func parseCSIParams(raw []byte) (marker byte, nums []int) {
	s := raw
	if len(s) > 0 {
		switch s[0] {
		case '?', '<', '>', '=':
			marker = s[0]
			s = s[1:]
		}
	}
	if len(s) == 0 {
		return marker, nil
	}
	parts := strings.Split(string(s), ";")
	nums = make([]int, len(parts))
	for i, part := range parts {
		n, _ := strconv.Atoi(part)
		nums[i] = n
	}
	return marker, nums
}

func modifiersFromParam(m int) Modifiers {
	bits := m - 1
	return Modifiers{
		Shift: bits&1 != 0,
		Alt:   bits&2 != 0,
		Ctrl:  bits&4 != 0,
	}
}

func dispatchCSI(raw []byte, final byte) []Event {
	marker, nums := parseCSIParams(raw)

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		var code KeyCode
		switch final {
		case 'A':
			code = KeyUp
		case 'B':
			code = KeyDown
		case 'C':
			code = KeyRight
		case 'D':
			code = KeyLeft
		case 'H':
			code = KeyHome
		case 'F':
			code = KeyEnd
		}
		mods := Modifiers{}
		if len(nums) >= 2 {
			mods = modifiersFromParam(nums[1])
		}
		return []Event{keyEvent(code, mods)}

	case 'Z':
		return []Event{keyEvent(KeyBackTab, Modifiers{})}

	case '~':
		if len(nums) == 0 {
			return nil
		}
		switch nums[0] {
		case 2:
			return []Event{keyEvent(KeyInsert, Modifiers{})}
		case 3:
			return []Event{keyEvent(KeyDelete, Modifiers{})}
		case 5:
			return []Event{keyEvent(KeyPageUp, Modifiers{})}
		case 6:
			return []Event{keyEvent(KeyPageDown, Modifiers{})}
		case 15:
			return []Event{functionEvent(5)}
		case 17:
			return []Event{functionEvent(6)}
		case 18:
			return []Event{functionEvent(7)}
		case 19:
			return []Event{functionEvent(8)}
		case 20:
			return []Event{functionEvent(9)}
		case 21:
			return []Event{functionEvent(10)}
		case 23:
			return []Event{functionEvent(11)}
		case 24:
			return []Event{functionEvent(12)}
		case 200:
			return []Event{pasteEvent(PasteStart)}
		case 201:
			return []Event{pasteEvent(PasteEnd)}
		}
		return nil

	case 'I':
		return []Event{focusEvent(FocusGained)}
	case 'O':
		return []Event{focusEvent(FocusLost)}

	case 'M', 'm':
		if marker == '<' {
			if len(nums) < 3 {
				return nil
			}
			return []Event{sgrMouseEvent(nums[0], nums[1], nums[2], final == 'M')}
		}
		if len(nums) >= 3 {
			return []Event{rxvtMouseEvent(nums[0], nums[1], nums[2])}
		}
		return nil

	case 't':
		if len(nums) >= 3 && nums[0] == 8 {
			return []Event{resizeEvent(nums[1], nums[2])}
		}
		return nil
	}
	return nil
}

// decodeMouseBits decodes the button-encoding byte shared by SGR, X10, and
// RXVT mouse reports: low 2 bits are the button (or scroll direction when
// bit 6 is set), bit 2/3/4 are shift/alt/ctrl, bit 5 is motion (drag).
func decodeMouseBits(cb int) (btn MouseButton, action MouseAction, mods Modifiers) {
	mods = Modifiers{Shift: cb&0x04 != 0, Alt: cb&0x08 != 0, Ctrl: cb&0x10 != 0}

	if cb&0x40 != 0 {
		switch cb & 0x03 {
		case 0:
			action = MouseScrollUp
		case 1:
			action = MouseScrollDown
		case 2:
			action = MouseScrollLeft
		default:
			action = MouseScrollRight
		}
		btn = MouseUnknown
		return
	}

	switch cb & 0x03 {
	case 0:
		btn = MouseLeft
	case 1:
		btn = MouseMiddle
	case 2:
		btn = MouseRight
	default:
		btn = MouseUnknown
	}
	if cb&0x20 != 0 {
		action = MouseDrag
	} else {
		action = MousePress
	}
	return
}

func sgrMouseEvent(cb, col, row int, isPress bool) Event {
	btn, action, mods := decodeMouseBits(cb)
	if !isPress {
		switch action {
		case MouseScrollUp, MouseScrollDown, MouseScrollLeft, MouseScrollRight:
		default:
			action = MouseRelease
		}
	}
	return mouseEvent(btn, col-1, row-1, action, mods)
}

// legacyMouseEvent applies the X10/RXVT convention that button code 3 with
// no motion bit means release, since those wire formats have no explicit
// press/release final byte the way SGR does.
func legacyMouseEvent(cb, col, row int) Event {
	btn, action, mods := decodeMouseBits(cb)
	if btn == MouseUnknown && action == MousePress {
		action = MouseRelease
	}
	return mouseEvent(btn, col, row, action, mods)
}

func x10MouseEvent(buf []byte) Event {
	cb := int(buf[0]) - 32
	col := int(buf[1]) - 32 - 1
	row := int(buf[2]) - 32 - 1
	return legacyMouseEvent(cb, col, row)
}

func rxvtMouseEvent(cb, col, row int) Event {
	return legacyMouseEvent(cb, col-1, row-1)
}

// Generate produces the canonical byte sequence a terminal would send for
// e. It always chooses the SGR mouse wire form. Feeding the result to a
// Parser gives back e for events in the parser's canonical form; Ctrl-I and
// Ctrl-M are written as 0x09 and 0x0D, which parse as Tab and Enter, and
// MouseMotion is written as a press.
func Generate(e Event) []byte {
	switch e.Kind {
	case EventKeyboard:
		return generateKeyboard(e.Keyboard)
	case EventMouse:
		return generateMouseSGR(e.Mouse)
	case EventFocus:
		if e.Focus == FocusGained {
			return []byte("\x1b[I")
		}
		return []byte("\x1b[O")
	case EventPaste:
		if e.Paste == PasteStart {
			return []byte("\x1b[200~")
		}
		return []byte("\x1b[201~")
	case EventResize:
		return []byte(fmt.Sprintf("\x1b[8;%d;%dt", e.Resize.RowHeight, e.Resize.ColWidth))
	}
	return nil
}

func generateKeyboard(k KeyEvent) []byte {
	modParam := 1
	if k.Modifiers.Shift {
		modParam += 1
	}
	if k.Modifiers.Alt {
		modParam += 2
	}
	if k.Modifiers.Ctrl {
		modParam += 4
	}
	hasMods := modParam != 1

	arrow := func(final byte) []byte {
		if hasMods {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", modParam, final))
		}
		return []byte{0x1b, '[', final}
	}

	switch k.Code {
	case KeyUp:
		return arrow('A')
	case KeyDown:
		return arrow('B')
	case KeyRight:
		return arrow('C')
	case KeyLeft:
		return arrow('D')
	case KeyHome:
		return arrow('H')
	case KeyEnd:
		return arrow('F')
	case KeyBackTab:
		return []byte("\x1b[Z")
	case KeyTab:
		return []byte{0x09}
	case KeyEnter:
		return []byte{0x0d}
	case KeyEscape:
		return []byte{0x1b}
	case KeyBackspace:
		return []byte{0x7f}
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyFunction:
		switch k.Function {
		case 1:
			return []byte("\x1bOP")
		case 2:
			return []byte("\x1bOQ")
		case 3:
			return []byte("\x1bOR")
		case 4:
			return []byte("\x1bOS")
		case 5:
			return []byte("\x1b[15~")
		case 6:
			return []byte("\x1b[17~")
		case 7:
			return []byte("\x1b[18~")
		case 8:
			return []byte("\x1b[19~")
		case 9:
			return []byte("\x1b[20~")
		case 10:
			return []byte("\x1b[21~")
		case 11:
			return []byte("\x1b[23~")
		case 12:
			return []byte("\x1b[24~")
		}
		return nil
	case KeyChar:
		if k.Modifiers.Ctrl && k.Char >= 'a' && k.Char <= 'z' {
			return []byte{byte(k.Char - 'a' + 1)}
		}
		if k.Modifiers.Alt {
			buf := make([]byte, 0, utf8.UTFMax+1)
			buf = append(buf, 0x1b)
			return utf8.AppendRune(buf, k.Char)
		}
		return utf8.AppendRune(nil, k.Char)
	}
	return nil
}

func generateMouseSGR(m MouseEvent) []byte {
	var cb int
	switch m.Button {
	case MouseLeft:
		cb = 0
	case MouseMiddle:
		cb = 1
	case MouseRight:
		cb = 2
	default:
		cb = 3
	}

	final := byte('M')
	switch m.Action {
	case MouseRelease:
		final = 'm'
	case MouseDrag:
		cb |= 0x20
	case MouseScrollUp:
		cb = 0x40 | 0
	case MouseScrollDown:
		cb = 0x40 | 1
	case MouseScrollLeft:
		cb = 0x40 | 2
	case MouseScrollRight:
		cb = 0x40 | 3
	}
	if m.Modifiers.Shift {
		cb |= 0x04
	}
	if m.Modifiers.Alt {
		cb |= 0x08
	}
	if m.Modifiers.Ctrl {
		cb |= 0x10
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, m.Col+1, m.Row+1, final))
}
