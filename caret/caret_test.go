package caret

import (
	"testing"

	"github.com/go-vt100/termcore/gapbuffer"
)

func TestIncCaretColByWithinViewport(t *testing.T) {
	e := New(10, 5)
	e.IncCaretColBy(3, 20, 10)
	if e.CaretRaw.Col != 3 {
		t.Errorf("CaretRaw.Col = %d, want 3", e.CaretRaw.Col)
	}
	if e.ScrollOffset.Col != 0 {
		t.Errorf("ScrollOffset.Col = %d, want 0", e.ScrollOffset.Col)
	}
}

func TestIncCaretColByClampsToLineWidth(t *testing.T) {
	e := New(10, 5)
	e.IncCaretColBy(100, 7, 10)
	if e.CaretRaw.Col != 7 {
		t.Errorf("CaretRaw.Col = %d, want 7 (clamped to line width)", e.CaretRaw.Col)
	}
}

func TestIncCaretColByActivatesHorizontalScroll(t *testing.T) {
	e := New(10, 5)
	e.IncCaretColBy(15, 20, 10)
	if e.CaretRaw.Col != 10 {
		t.Errorf("CaretRaw.Col = %d, want 10 (pinned to viewport edge)", e.CaretRaw.Col)
	}
	if e.ScrollOffset.Col != 5 {
		t.Errorf("ScrollOffset.Col = %d, want 5", e.ScrollOffset.Col)
	}
	if e.ScrAdjCol() != 15 {
		t.Errorf("ScrAdjCol() = %d, want 15", e.ScrAdjCol())
	}
}

func TestDecCaretColByNoScrollActive(t *testing.T) {
	e := New(10, 5)
	e.CaretRaw.Col = 5
	e.DecCaretColBy(3)
	if e.CaretRaw.Col != 2 {
		t.Errorf("CaretRaw.Col = %d, want 2", e.CaretRaw.Col)
	}
	e.DecCaretColBy(10)
	if e.CaretRaw.Col != 0 {
		t.Errorf("CaretRaw.Col = %d, want 0 (saturating)", e.CaretRaw.Col)
	}
}

func TestDecCaretColByPullsScrollOffsetAtLeftEdge(t *testing.T) {
	e := New(10, 5)
	e.CaretRaw.Col = 0
	e.ScrollOffset.Col = 8
	e.DecCaretColBy(3)
	if e.ScrollOffset.Col != 5 {
		t.Errorf("ScrollOffset.Col = %d, want 5", e.ScrollOffset.Col)
	}
	if e.CaretRaw.Col != 0 {
		t.Errorf("CaretRaw.Col = %d, want 0", e.CaretRaw.Col)
	}
}

func TestDecCaretColByShortfallPullsScrollOffset(t *testing.T) {
	e := New(10, 5)
	e.CaretRaw.Col = 2
	e.ScrollOffset.Col = 8
	e.DecCaretColBy(5)
	if e.CaretRaw.Col != 0 {
		t.Errorf("CaretRaw.Col = %d, want 0", e.CaretRaw.Col)
	}
	if e.ScrollOffset.Col != 5 {
		t.Errorf("ScrollOffset.Col = %d, want 5 (8 - shortfall of 3)", e.ScrollOffset.Col)
	}
}

func TestSetCaretColTo(t *testing.T) {
	e := New(10, 5)
	e.SetCaretColTo(15, 20, 10)
	if e.ScrAdjCol() != 15 {
		t.Errorf("ScrAdjCol() = %d, want 15", e.ScrAdjCol())
	}
	e.SetCaretColTo(2, 20, 10)
	if e.ScrAdjCol() != 2 {
		t.Errorf("ScrAdjCol() = %d, want 2", e.ScrAdjCol())
	}
}

func TestClipCaretToContentWidth(t *testing.T) {
	e := New(10, 5)
	e.SetCaretColTo(15, 20, 10)
	e.ClipCaretToContentWidth(8)
	if e.ScrAdjCol() != 8 {
		t.Errorf("ScrAdjCol() = %d, want 8 (snapped to end of line)", e.ScrAdjCol())
	}
}

func TestIncCaretRowActivatesVerticalScroll(t *testing.T) {
	e := New(10, 5)
	for i := 0; i < 8; i++ {
		e.IncCaretRow(20)
	}
	if e.ScrAdjRow() != 8 {
		t.Errorf("ScrAdjRow() = %d, want 8", e.ScrAdjRow())
	}
	if e.ScrollOffset.Row == 0 {
		t.Error("expected vertical scroll to have activated")
	}
}

func TestChangeCaretRowByClipsToMaxOnDown(t *testing.T) {
	e := New(10, 5)
	e.ChangeCaretRowBy(100, Down, 12)
	if e.ScrAdjRow() != 12 {
		t.Errorf("ScrAdjRow() = %d, want 12 (clipped to max_row_index)", e.ScrAdjRow())
	}
}

func TestChangeCaretRowByClipsToZeroOnUp(t *testing.T) {
	e := New(10, 5)
	e.ChangeCaretRowBy(3, Down, 12)
	e.ChangeCaretRowBy(100, Up, 12)
	if e.ScrAdjRow() != 0 {
		t.Errorf("ScrAdjRow() = %d, want 0", e.ScrAdjRow())
	}
}

func TestValidateAfterMutationSnapsPastWideGrapheme(t *testing.T) {
	b := gapbuffer.New()
	b.AddLine()
	if err := b.InsertTextAtGrapheme(0, 0, "a中b"); err != nil {
		t.Fatalf("InsertTextAtGrapheme: %v", err)
	}
	view, err := b.GetLine(0)
	if err != nil {
		t.Fatalf("GetLine: %v", err)
	}

	e := New(10, 5)
	e.SetCaretColTo(2, view.Meta.DisplayWidth, e.VpWidth)
	e.ValidateAfterMutation(view.Meta)
	if e.ScrAdjCol() != 3 {
		t.Errorf("ScrAdjCol() = %d, want 3 (snapped past 中)", e.ScrAdjCol())
	}
}

func TestValidateAfterMutationNoopOnLegalPosition(t *testing.T) {
	b := gapbuffer.New()
	b.AddLine()
	_ = b.InsertTextAtGrapheme(0, 0, "abc")
	view, _ := b.GetLine(0)

	e := New(10, 5)
	e.SetCaretColTo(2, view.Meta.DisplayWidth, e.VpWidth)
	e.ValidateAfterMutation(view.Meta)
	if e.ScrAdjCol() != 2 {
		t.Errorf("ScrAdjCol() = %d, want 2 (unchanged)", e.ScrAdjCol())
	}
}
