package termcore

import (
	"strings"
	"testing"
)

func lineText(snap *Snapshot, row int) string {
	return snap.Lines[row].Text
}

func TestRawModeMultiLineWrite(t *testing.T) {
	term := New(24, 80)
	term.WriteString("Line 1: first message\n\x1b[1GLine 2: second message\n\x1b[1GLine 3: third message\n\x1b[1G")

	snap := term.Snapshot(SnapshotDetailText)
	for row := 0; row < 3; row++ {
		text := lineText(snap, row)
		if !strings.HasPrefix(text, "L") {
			t.Errorf("row %d = %q, want to start with L", row, text)
		}
		if strings.Count(text, "Line ") > 1 {
			t.Errorf("row %d = %q, contains more than one \"Line \"", row, text)
		}
	}
}

func TestSGRPartialReset(t *testing.T) {
	term := New(24, 80)
	term.WriteString("\x1b[1m\x1b[3m\x1b[31mA\x1b[22mB")

	snap := term.Snapshot(SnapshotDetailFull)
	a := snap.Lines[0].Cells[0]
	if !a.Attributes.Bold || !a.Attributes.Italic {
		t.Errorf("cell (0,0) attrs = %+v, want bold+italic", a.Attributes)
	}
	if a.Fg == "" {
		t.Error("cell (0,0) should have a red fg")
	}

	b := snap.Lines[0].Cells[1]
	if b.Attributes.Bold {
		t.Error("cell (0,1) should not be bold after ESC[22m")
	}
	if !b.Attributes.Italic {
		t.Error("cell (0,1) should still be italic")
	}
	if b.Fg == "" {
		t.Error("cell (0,1) should still have a red fg")
	}
}

func TestDECSpecialGraphics(t *testing.T) {
	term := New(24, 80)
	term.WriteString("\x1b(0qxq\x1b(Bq")

	snap := term.Snapshot(SnapshotDetailText)
	text := lineText(snap, 0)
	runes := []rune(text)
	if len(runes) < 4 {
		t.Fatalf("row 0 = %q, want at least 4 cells", text)
	}
	if runes[0] != '─' || runes[1] != '│' || runes[2] != '─' {
		t.Errorf("row 0 graphics = %q, want ─│─", string(runes[:3]))
	}
	if runes[3] != 'q' {
		t.Errorf("row 0 cell 3 = %q, want literal q", string(runes[3]))
	}
}

func TestExtended256ColorSemicolonForm(t *testing.T) {
	term := New(24, 80)
	term.WriteString("\x1b[38;5;196mF\x1b[0m\x1b[48;5;21mB\x1b[0m\x1b[38;5;196;48;5;21mM\x1b[0m")

	snap := term.Snapshot(SnapshotDetailFull)
	f := snap.Lines[0].Cells[0]
	if f.Fg == "" {
		t.Error("F should have an fg color")
	}
	if f.Bg != "" {
		t.Error("F should not have a bg color")
	}

	b := snap.Lines[0].Cells[1]
	if b.Bg == "" {
		t.Error("B should have a bg color")
	}
	if b.Fg != "" {
		t.Error("B should not have an fg color")
	}

	m := snap.Lines[0].Cells[2]
	if m.Fg == "" || m.Bg == "" {
		t.Errorf("M should have both fg and bg, got %+v", m)
	}
}

func TestClearResetsToSpacerAndOrigin(t *testing.T) {
	term := New(10, 20)
	term.WriteString("hello\x1b[3;5H")
	term.Buffer().Clear()

	if term.Buffer().CursorPos() != (Pos{}) {
		t.Errorf("CursorPos = %+v, want origin", term.Buffer().CursorPos())
	}
	snap := term.Snapshot(SnapshotDetailFull)
	for _, cell := range snap.Lines[0].Cells {
		if cell.Char != " " || cell.Void {
			t.Errorf("cell = %+v, want Spacer", cell)
		}
	}
}

func TestNewEmptyHasExactDimensions(t *testing.T) {
	buf := NewEmpty(Size{RowHeight: 5, ColWidth: 12})
	if int(buf.WindowSize().RowHeight) != 5 || int(buf.WindowSize().ColWidth) != 12 {
		t.Fatalf("WindowSize = %+v, want 5x12", buf.WindowSize())
	}
	for row := RowIndex(0); int(row) < 5; row++ {
		line := buf.Line(row)
		if len(line) != 12 {
			t.Fatalf("row %d width = %d, want 12", row, len(line))
		}
		for _, pc := range line {
			if !pc.Equal(Spacer()) {
				t.Errorf("row %d not all Spacer", row)
			}
		}
	}
}

func TestDiffNilOnSizeMismatch(t *testing.T) {
	a := NewEmpty(Size{RowHeight: 5, ColWidth: 10})
	b := NewEmpty(Size{RowHeight: 6, ColWidth: 10})
	if _, ok := a.Diff(b); ok {
		t.Fatal("Diff should report !ok for mismatched window sizes")
	}
}

func TestDiffAppliesToEqualBuffers(t *testing.T) {
	a := New(5, 10)
	a.WriteString("abc")
	b := NewEmpty(Size{RowHeight: 5, ColWidth: 10})

	entries, ok := b.Diff(a.Buffer())
	if !ok {
		t.Fatal("Diff should succeed for equal window sizes")
	}
	for _, e := range entries {
		b.setCell(e.Pos.Row, e.Pos.Col, e.Char)
	}
	if lineToText(b.Line(0)) != "abc" {
		t.Errorf("after applying diff, row 0 = %q, want %q", lineToText(b.Line(0)), "abc")
	}
}

func TestDiffIgnoresColorPointerIdentity(t *testing.T) {
	a := New(5, 10)
	a.WriteString("\x1b[31mabc\x1b[0m")
	b := New(5, 10)
	b.WriteString("\x1b[31mabc\x1b[0m")

	entries, ok := b.Buffer().Diff(a.Buffer())
	if !ok {
		t.Fatal("Diff should succeed for equal window sizes")
	}
	if len(entries) != 0 {
		t.Errorf("Diff reported %d changed cells for two buffers with identical red \"abc\"; attrColor allocates a fresh *Color per SGR call, so pointer-identity comparison would wrongly report every styled cell as changed", len(entries))
	}
}

func lineToText(line PixelCharLine) string {
	var sb strings.Builder
	for _, pc := range line {
		if pc.Kind == PixelCharPlainText {
			sb.WriteRune(pc.DisplayChar)
		} else if pc.Kind == PixelCharSpacer {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestResizePreservesOverlappingContent(t *testing.T) {
	term := New(10, 20)
	term.WriteString("hello")
	term.Resize(5, 10)
	snap := term.Snapshot(SnapshotDetailText)
	if !strings.HasPrefix(lineText(snap, 0), "hello") {
		t.Errorf("row 0 = %q, want to start with hello", lineText(snap, 0))
	}
}
