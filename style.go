package termcore

// ColorKind distinguishes the three color representations a terminal can use.
type ColorKind uint8

const (
	ColorKindBasic ColorKind = iota
	ColorKindIndexed
	ColorKindRGB
)

// Color is a terminal color in one of three forms: one of the 16 basic ANSI
// colors, an index into the 256-color palette, or a truecolor RGB triple.
type Color struct {
	Kind  ColorKind
	Basic uint8 // 0-15, valid when Kind == ColorKindBasic
	Index uint8 // 0-255, valid when Kind == ColorKindIndexed
	R, G, B uint8 // valid when Kind == ColorKindRGB
}

// Equal reports whether two colors represent the same value, treating nil
// as "terminal default" rather than comparing pointer identity.
func (c *Color) Equal(o *Color) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	return *c == *o
}

func BasicColor(n uint8) Color   { return Color{Kind: ColorKindBasic, Basic: n} }
func IndexedColor8(n uint8) Color { return Color{Kind: ColorKindIndexed, Index: n} }
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// Resolve converts the color to an RGB triple using the 256-color palette
// for the basic/indexed forms. Mirrors the teacher's resolveDefaultColor,
// but as a pure function on the Color value rather than a *Terminal method.
func (c Color) Resolve() (r, g, b uint8) {
	switch c.Kind {
	case ColorKindRGB:
		return c.R, c.G, c.B
	case ColorKindIndexed:
		p := DefaultPalette256[c.Index]
		return p[0], p[1], p[2]
	default: // ColorKindBasic
		idx := c.Basic
		if idx > 15 {
			idx = 15
		}
		p := DefaultPalette256[idx]
		return p[0], p[1], p[2]
	}
}

// BlinkMode is the SGR blink state.
type BlinkMode uint8

const (
	BlinkNone BlinkMode = iota
	BlinkSlow
	BlinkRapid
)

// AttrFlags is a bitmask of the boolean SGR attributes.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrStrikethrough
	AttrReverse
	AttrHidden
)

// Style is the full set of rendering attributes for one grapheme cluster:
// foreground/background color plus boolean and enum attributes. The zero
// value is "no style": default colors, no attributes, BlinkNone.
type Style struct {
	Fg, Bg    *Color
	Attrs     AttrFlags
	Blink     BlinkMode
}

// Equal reports whether two styles render identically, comparing Fg/Bg by
// color value rather than pointer identity — attrColor (vt100_handler.go)
// allocates a fresh *Color on every SGR color change, so two independently
// built styles with the same color would otherwise never compare equal.
func (s Style) Equal(o Style) bool {
	return s.Attrs == o.Attrs && s.Blink == o.Blink && s.Fg.Equal(o.Fg) && s.Bg.Equal(o.Bg)
}

// Has reports whether all bits in flags are set.
func (s Style) Has(flags AttrFlags) bool { return s.Attrs&flags == flags }

// With returns a copy of s with flags set.
func (s Style) With(flags AttrFlags) Style { s.Attrs |= flags; return s }

// Without returns a copy of s with flags cleared.
func (s Style) Without(flags AttrFlags) Style { s.Attrs &^= flags; return s }
