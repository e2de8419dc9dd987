package termcore

// RenderOpKind discriminates the operations an external painter consumes.
type RenderOpKind uint8

const (
	RenderOpMoveCursor RenderOpKind = iota
	RenderOpSetStyle
	RenderOpWriteGrapheme
)

// RenderOp is one instruction in a RenderPlan. Only the fields relevant to
// Kind are meaningful, matching the tagged-union convention used by PixelChar.
type RenderOp struct {
	Kind  RenderOpKind
	Pos   Pos   // valid when Kind == RenderOpMoveCursor
	Style Style // valid when Kind == RenderOpSetStyle
	Ch    rune  // valid when Kind == RenderOpWriteGrapheme
}

// RenderPlan is an ordered sequence of render operations. The core never
// executes a RenderPlan itself; an external painter walks it and emits ANSI
// bytes (or draws glyphs) to its own output device.
type RenderPlan []RenderOp

// Render produces the RenderPlan for painting the buffer's full contents.
func Render(b *OffscreenBuffer) RenderPlan {
	var plan RenderPlan
	var lastStyle Style
	haveStyle := false

	for row := 0; row < len(b.buffer); row++ {
		plan = append(plan, RenderOp{Kind: RenderOpMoveCursor, Pos: Pos{Row: RowIndex(row), Col: 0}})
		for col := 0; col < len(b.buffer[row]); col++ {
			pc := b.buffer[row][col]
			if pc.Kind == PixelCharVoid {
				continue
			}
			ch := ' '
			style := Style{}
			if pc.Kind == PixelCharPlainText {
				ch = pc.DisplayChar
				style = pc.Style
			}
			if !haveStyle || !lastStyle.Equal(style) {
				plan = append(plan, RenderOp{Kind: RenderOpSetStyle, Style: style})
				lastStyle = style
				haveStyle = true
			}
			plan = append(plan, RenderOp{Kind: RenderOpWriteGrapheme, Ch: ch})
		}
	}
	plan = append(plan, RenderOp{Kind: RenderOpMoveCursor, Pos: b.cursorPos})
	return plan
}

// RenderDiff produces the RenderPlan for painting only the cells a Diff call
// reported as changed, in the order given.
func RenderDiff(diff []DiffEntry) RenderPlan {
	var plan RenderPlan
	var lastStyle Style
	haveStyle := false

	for _, entry := range diff {
		plan = append(plan, RenderOp{Kind: RenderOpMoveCursor, Pos: entry.Pos})
		ch := ' '
		style := Style{}
		if entry.Char.Kind == PixelCharPlainText {
			ch = entry.Char.DisplayChar
			style = entry.Char.Style
		}
		if entry.Char.Kind == PixelCharVoid {
			continue
		}
		if !haveStyle || !lastStyle.Equal(style) {
			plan = append(plan, RenderOp{Kind: RenderOpSetStyle, Style: style})
			lastStyle = style
			haveStyle = true
		}
		plan = append(plan, RenderOp{Kind: RenderOpWriteGrapheme, Ch: ch})
	}
	return plan
}
