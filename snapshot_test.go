package termcore

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(3, 10)
	term.WriteString("Hello")
	term.WriteString("\x1b[2;1H")
	term.WriteString("World")

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 3 {
		t.Errorf("Size.Rows = %d, want 3", snap.Size.Rows)
	}
	if snap.Size.Cols != 10 {
		t.Errorf("Size.Cols = %d, want 10", snap.Size.Cols)
	}
	if len(snap.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(snap.Lines))
	}
	if snap.Lines[0].Text != "Hello" {
		t.Errorf("Lines[0].Text = %q, want %q", snap.Lines[0].Text, "Hello")
	}
	if snap.Lines[1].Text != "World" {
		t.Errorf("Lines[1].Text = %q, want %q", snap.Lines[1].Text, "World")
	}
	if snap.Lines[0].Segments != nil {
		t.Error("text mode should not have segments")
	}
	if snap.Lines[0].Cells != nil {
		t.Error("text mode should not have cells")
	}
}

func TestSnapshotCursor(t *testing.T) {
	term := New(5, 10)
	term.WriteString("ABC")

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Cursor.Row != 0 {
		t.Errorf("Cursor.Row = %d, want 0", snap.Cursor.Row)
	}
	if snap.Cursor.Col != 3 {
		t.Errorf("Cursor.Col = %d, want 3", snap.Cursor.Col)
	}
}

func TestSnapshotStyled(t *testing.T) {
	term := New(3, 20)
	term.WriteString("\x1b[31mRed\x1b[0m Normal \x1b[32mGreen\x1b[0m")

	snap := term.Snapshot(SnapshotDetailStyled)

	if len(snap.Lines) < 1 {
		t.Fatal("expected at least 1 line")
	}
	line := snap.Lines[0]
	if len(line.Segments) < 3 {
		t.Fatalf("expected at least 3 segments, got %d", len(line.Segments))
	}
	if line.Segments[0].Text != "Red" {
		t.Errorf("Segments[0].Text = %q, want %q", line.Segments[0].Text, "Red")
	}
	if line.Cells != nil {
		t.Error("styled mode should not have cells")
	}
}

func TestSnapshotFull(t *testing.T) {
	term := New(3, 10)
	term.WriteString("Hi")

	snap := term.Snapshot(SnapshotDetailFull)

	if len(snap.Lines) < 1 {
		t.Fatal("expected at least 1 line")
	}
	line := snap.Lines[0]
	if len(line.Cells) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(line.Cells))
	}
	if line.Cells[0].Char != "H" {
		t.Errorf("Cells[0].Char = %q, want %q", line.Cells[0].Char, "H")
	}
	if line.Cells[1].Char != "i" {
		t.Errorf("Cells[1].Char = %q, want %q", line.Cells[1].Char, "i")
	}
	if line.Cells[2].Char != " " {
		t.Errorf("Cells[2].Char = %q, want %q", line.Cells[2].Char, " ")
	}
}

func TestSnapshotAttributes(t *testing.T) {
	term := New(3, 20)
	term.WriteString("\x1b[1mBold\x1b[0m")

	snap := term.Snapshot(SnapshotDetailFull)

	if len(snap.Lines[0].Cells) < 4 {
		t.Fatal("expected at least 4 cells")
	}
	for i := 0; i < 4; i++ {
		if !snap.Lines[0].Cells[i].Attributes.Bold {
			t.Errorf("cell[%d] should be bold", i)
		}
	}
}

func TestSnapshotBlinkStyles(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		slow     bool
		rapid    bool
	}{
		{"slow", "\x1b[5mText\x1b[0m", true, false},
		{"fast", "\x1b[6mText\x1b[0m", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := New(3, 20)
			term.WriteString(tt.sequence)

			snap := term.Snapshot(SnapshotDetailFull)
			if len(snap.Lines[0].Cells) < 4 {
				t.Fatal("expected at least 4 cells")
			}
			attrs := snap.Lines[0].Cells[0].Attributes
			if attrs.BlinkSlow != tt.slow {
				t.Errorf("BlinkSlow = %v, want %v", attrs.BlinkSlow, tt.slow)
			}
			if attrs.BlinkRapid != tt.rapid {
				t.Errorf("BlinkRapid = %v, want %v", attrs.BlinkRapid, tt.rapid)
			}
		})
	}
}

func TestSnapshotWideChar(t *testing.T) {
	term := New(3, 10)
	term.WriteString("中")

	snap := term.Snapshot(SnapshotDetailFull)

	if len(snap.Lines[0].Cells) < 2 {
		t.Fatal("expected at least 2 cells")
	}
	if snap.Lines[0].Cells[0].Void {
		t.Error("cell[0] should not be void")
	}
	if !snap.Lines[0].Cells[1].Void {
		t.Error("cell[1] should be void (wide-glyph continuation)")
	}
}

func TestColorToHex(t *testing.T) {
	red := RGBColor(255, 0, 0)
	tests := []struct {
		name     string
		color    *Color
		expected string
	}{
		{"nil", nil, ""},
		{"black", func() *Color { c := RGBColor(0, 0, 0); return &c }(), "#000000"},
		{"white", func() *Color { c := RGBColor(255, 255, 255); return &c }(), "#ffffff"},
		{"red", &red, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := colorToHex(tt.color)
			if result != tt.expected {
				t.Errorf("colorToHex(%v) = %q, want %q", tt.color, result, tt.expected)
			}
		})
	}
}

func TestSnapshotEmptyTerminal(t *testing.T) {
	term := New(3, 10)

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 3 {
		t.Errorf("Size.Rows = %d, want 3", snap.Size.Rows)
	}
	if len(snap.Lines) != 3 {
		t.Errorf("len(Lines) = %d, want 3", len(snap.Lines))
	}
	for i, line := range snap.Lines {
		if line.Text != "" {
			t.Errorf("Lines[%d].Text = %q, want empty", i, line.Text)
		}
	}
}

func TestSnapshotStyledSegments(t *testing.T) {
	term := New(3, 30)
	term.WriteString("\x1b[31mRedText\x1b[0m")

	snap := term.Snapshot(SnapshotDetailStyled)

	if len(snap.Lines[0].Segments) < 1 {
		t.Fatal("expected at least 1 segment")
	}
	if snap.Lines[0].Segments[0].Text != "RedText" {
		t.Errorf("Segments[0].Text = %q, want %q", snap.Lines[0].Segments[0].Text, "RedText")
	}
}
