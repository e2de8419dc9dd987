package vtinput

import (
	"reflect"
	"testing"
)

func roundTrip(t *testing.T, e Event) {
	t.Helper()
	wire := Generate(e)
	p := NewParser()
	got := p.Feed(wire)
	if len(got) != 1 {
		t.Fatalf("Generate(%+v) = %q, Feed produced %d events, want 1", e, wire, len(got))
	}
	if !reflect.DeepEqual(got[0], e) {
		t.Errorf("round-trip mismatch: generate(%+v) = %q, parse = %+v", e, wire, got[0])
	}
}

func TestRoundTripArrowsNoModifiers(t *testing.T) {
	for _, code := range []KeyCode{KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd} {
		roundTrip(t, keyEvent(code, Modifiers{}))
	}
}

func TestRoundTripArrowsWithModifiers(t *testing.T) {
	mods := []Modifiers{
		{Shift: true},
		{Alt: true},
		{Ctrl: true},
		{Shift: true, Ctrl: true},
		{Shift: true, Alt: true, Ctrl: true},
	}
	for _, code := range []KeyCode{KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd} {
		for _, m := range mods {
			roundTrip(t, keyEvent(code, m))
		}
	}
}

func TestRoundTripFunctionKeys(t *testing.T) {
	for n := 1; n <= 12; n++ {
		roundTrip(t, functionEvent(n))
	}
}

func TestRoundTripBackTab(t *testing.T) {
	roundTrip(t, keyEvent(KeyBackTab, Modifiers{}))
}

func TestRoundTripPlainKeys(t *testing.T) {
	for _, code := range []KeyCode{KeyTab, KeyEnter, KeyEscape, KeyBackspace, KeyInsert, KeyDelete, KeyPageUp, KeyPageDown} {
		roundTrip(t, keyEvent(code, Modifiers{}))
	}
}

func TestRoundTripAltLetter(t *testing.T) {
	roundTrip(t, charEvent(Modifiers{Alt: true}, 'x'))
}

func TestRoundTripCtrlLetter(t *testing.T) {
	// Ctrl-I and Ctrl-M share the bytes 0x09 and 0x0D with Tab and Enter,
	// which the parser reports as those keys.
	sharedWith := map[rune]KeyCode{'i': KeyTab, 'm': KeyEnter}
	for r := rune('a'); r <= 'z'; r++ {
		code, shared := sharedWith[r]
		if !shared {
			roundTrip(t, charEvent(Modifiers{Ctrl: true}, r))
			continue
		}
		got := NewParser().Feed(Generate(charEvent(Modifiers{Ctrl: true}, r)))
		if len(got) != 1 || got[0] != keyEvent(code, Modifiers{}) {
			t.Errorf("Feed(Generate(ctrl-%c)) = %+v, want %+v", r, got, keyEvent(code, Modifiers{}))
		}
	}
}

func TestRoundTripPlainChars(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', ' ', '中', '€'} {
		roundTrip(t, charEvent(Modifiers{}, r))
	}
}

func TestRoundTripMouseSGR(t *testing.T) {
	actions := []MouseAction{MousePress, MouseRelease, MouseDrag}
	buttons := []MouseButton{MouseLeft, MouseMiddle, MouseRight}
	for _, btn := range buttons {
		for _, action := range actions {
			roundTrip(t, mouseEvent(btn, 10, 20, action, Modifiers{}))
		}
	}
}

func TestRoundTripMouseScroll(t *testing.T) {
	for _, action := range []MouseAction{MouseScrollUp, MouseScrollDown, MouseScrollLeft, MouseScrollRight} {
		roundTrip(t, mouseEvent(MouseUnknown, 3, 4, action, Modifiers{}))
	}
}

func TestRoundTripMouseWithModifiers(t *testing.T) {
	roundTrip(t, mouseEvent(MouseLeft, 0, 0, MousePress, Modifiers{Shift: true, Ctrl: true}))
}

func TestRoundTripFocus(t *testing.T) {
	roundTrip(t, focusEvent(FocusGained))
	roundTrip(t, focusEvent(FocusLost))
}

func TestRoundTripPaste(t *testing.T) {
	roundTrip(t, pasteEvent(PasteStart))
	roundTrip(t, pasteEvent(PasteEnd))
}

func TestRoundTripResize(t *testing.T) {
	roundTrip(t, resizeEvent(40, 120))
}

func TestParseLoneEscapeAtEndOfFeed(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte{0x1b})
	if len(got) != 1 || got[0] != keyEvent(KeyEscape, Modifiers{}) {
		t.Fatalf("Feed([ESC]) = %+v, want a single Escape event", got)
	}
}

func TestParseX10Mouse(t *testing.T) {
	p := NewParser()
	// CSI M Cb Cx Cy, left button press at col 5, row 5 (1-based + 32 offset)
	data := append([]byte("\x1b[M"), byte(' '+0), byte('!'+5-1), byte('!'+5-1))
	got := p.Feed(data)
	if len(got) != 1 {
		t.Fatalf("Feed(x10 mouse) produced %d events, want 1", len(got))
	}
	if got[0].Kind != EventMouse {
		t.Fatalf("got %+v, want mouse event", got[0])
	}
	if got[0].Mouse.Button != MouseLeft || got[0].Mouse.Action != MousePress {
		t.Errorf("got %+v, want left press", got[0].Mouse)
	}
}

func TestParseRXVTMouse(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte("\x1b[32;10;20M"))
	if len(got) != 1 || got[0].Kind != EventMouse {
		t.Fatalf("Feed(rxvt mouse) = %+v", got)
	}
	if got[0].Mouse.Col != 9 || got[0].Mouse.Row != 19 {
		t.Errorf("got col=%d row=%d, want 9,19", got[0].Mouse.Col, got[0].Mouse.Row)
	}
}

func TestParseCtrlLetterFromByte(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte{1}) // Ctrl-A
	if len(got) != 1 || got[0] != charEvent(Modifiers{Ctrl: true}, 'a') {
		t.Fatalf("Feed([0x01]) = %+v, want ctrl-a", got)
	}
}

func TestFeedIsResumableAcrossCalls(t *testing.T) {
	p := NewParser()
	first := p.Feed([]byte{0x1b, '['})
	if len(first) != 0 {
		t.Fatalf("partial CSI should not emit yet, got %+v", first)
	}
	second := p.Feed([]byte{'A'})
	if len(second) != 1 || second[0] != keyEvent(KeyUp, Modifiers{}) {
		t.Fatalf("Feed(second half) = %+v, want Up", second)
	}
}
