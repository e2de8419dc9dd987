package termcore

import "fmt"

// SnapshotDetail selects how much detail Snapshot includes.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text split into same-style runs per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data, including Void cells.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a point-in-time capture of a terminal's visible screen,
// independent of the grid's internal PixelChar representation — suitable
// for JSON serialization to a host that only needs to read, not mutate.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SnapshotLine is a single captured row.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing one style.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
}

// SnapshotCell is one cell's full state.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Void       bool          `json:"void,omitempty"`
}

// SnapshotAttrs holds the boolean/enum text attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	BlinkSlow     bool `json:"blink_slow,omitempty"`
	BlinkRapid    bool `json:"blink_rapid,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// Snapshot captures the terminal's current visible state at the requested
// level of detail.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	size := t.buf.WindowSize()
	snap := &Snapshot{
		Size: SnapshotSize{
			Rows: int(size.RowHeight),
			Cols: int(size.ColWidth),
		},
		Cursor: SnapshotCursor{
			Row: int(t.buf.CursorPos().Row),
			Col: int(t.buf.CursorPos().Col),
		},
		Lines: make([]SnapshotLine, int(size.RowHeight)),
	}

	for row := 0; row < int(size.RowHeight); row++ {
		snap.Lines[row] = t.snapshotLine(RowIndex(row), detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(row RowIndex, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: t.lineText(row)}

	switch detail {
	case SnapshotDetailStyled:
		line.Segments = lineToSegments(t.buf.Line(row))
	case SnapshotDetailFull:
		line.Cells = lineToCells(t.buf.Line(row))
	}
	return line
}

// lineToSegments splits a row into runs of cells sharing one style.
func lineToSegments(line PixelCharLine) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []rune

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for _, pc := range line {
		if pc.Kind == PixelCharVoid {
			continue
		}
		ch := ' '
		style := Style{}
		if pc.Kind == PixelCharPlainText {
			ch = pc.DisplayChar
			style = pc.Style
		}
		fg := colorToHex(style.Fg)
		bg := colorToHex(style.Bg)
		attrs := attrsToSnapshot(style)

		if current == nil || current.Fg != fg || current.Bg != bg || current.Attributes != attrs {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attributes: attrs}
			chars = nil
		}
		chars = append(chars, ch)
	}
	flush()
	return segments
}

// lineToCells expands a row into one SnapshotCell per grid column.
func lineToCells(line PixelCharLine) []SnapshotCell {
	cells := make([]SnapshotCell, len(line))
	for i, pc := range line {
		if pc.Kind == PixelCharVoid {
			cells[i] = SnapshotCell{Void: true}
			continue
		}
		ch := ' '
		style := Style{}
		if pc.Kind == PixelCharPlainText {
			ch = pc.DisplayChar
			style = pc.Style
		}
		cells[i] = SnapshotCell{
			Char:       string(ch),
			Fg:         colorToHex(style.Fg),
			Bg:         colorToHex(style.Bg),
			Attributes: attrsToSnapshot(style),
		}
	}
	return cells
}

// colorToHex converts a Style color (nil meaning "terminal default") to a
// hex string, or "" for the default.
func colorToHex(c *Color) string {
	if c == nil {
		return ""
	}
	r, g, b := c.Resolve()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func attrsToSnapshot(style Style) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          style.Has(AttrBold),
		Dim:           style.Has(AttrDim),
		Italic:        style.Has(AttrItalic),
		Underline:     style.Has(AttrUnderline),
		BlinkSlow:     style.Blink == BlinkSlow,
		BlinkRapid:    style.Blink == BlinkRapid,
		Reverse:       style.Has(AttrReverse),
		Hidden:        style.Has(AttrHidden),
		Strikethrough: style.Has(AttrStrikethrough),
	}
}
