package termcore

// PixelCharKind discriminates the three cell variants a terminal grid cell
// can hold. Modeled as a tagged union (a kind tag plus the fields that are
// only meaningful for PlainText) rather than an interface, matching Design
// Note §9's "tagged variants are preferable to dynamic dispatch" guidance:
// there is exactly one sink (the offscreen buffer) interpreting these.
type PixelCharKind uint8

const (
	// PixelCharSpacer is a blank cell that still needs to be painted.
	PixelCharSpacer PixelCharKind = iota
	// PixelCharVoid is a continuation cell occupied by the right half of a
	// wide glyph; a painter must skip rendering it.
	PixelCharVoid
	// PixelCharPlainText holds one grapheme cluster's display character and
	// style.
	PixelCharPlainText
)

// PixelChar is one terminal cell's content.
type PixelChar struct {
	Kind        PixelCharKind
	DisplayChar rune  // valid when Kind == PixelCharPlainText
	Style       Style // valid when Kind == PixelCharPlainText
}

// Spacer returns a blank cell.
func Spacer() PixelChar { return PixelChar{Kind: PixelCharSpacer} }

// Void returns a wide-glyph continuation cell.
func Void() PixelChar { return PixelChar{Kind: PixelCharVoid} }

// PlainText returns a styled display-character cell.
func PlainText(ch rune, style Style) PixelChar {
	return PixelChar{Kind: PixelCharPlainText, DisplayChar: ch, Style: style}
}

// Equal reports whether two pixel chars represent the same cell content.
func (p PixelChar) Equal(o PixelChar) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind != PixelCharPlainText {
		return true
	}
	return p.DisplayChar == o.DisplayChar && p.Style.Equal(o.Style)
}

// PixelCharLine is a fixed-length, ordered sequence of pixel chars, one row
// of an offscreen buffer. Its length always equals the buffer's column
// width; writers must preserve the Void-follows-wide-glyph pairing (§3).
type PixelCharLine []PixelChar

// NewPixelCharLine returns a line of the given width, every cell a Spacer.
func NewPixelCharLine(width ColWidth) PixelCharLine {
	line := make(PixelCharLine, int(width))
	for i := range line {
		line[i] = Spacer()
	}
	return line
}

// Clone returns an independent copy of the line.
func (l PixelCharLine) Clone() PixelCharLine {
	out := make(PixelCharLine, len(l))
	copy(out, l)
	return out
}

// PixelCharLines is an ordered sequence of PixelCharLine, the whole grid.
type PixelCharLines []PixelCharLine

// NewPixelCharLines returns size.RowHeight lines, each size.ColWidth wide,
// every cell a Spacer.
func NewPixelCharLines(size Size) PixelCharLines {
	lines := make(PixelCharLines, int(size.RowHeight))
	for i := range lines {
		lines[i] = NewPixelCharLine(size.ColWidth)
	}
	return lines
}
