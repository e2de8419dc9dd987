package termcore

// DefaultPalette256 is the standard 256-color palette: 16 named colors
// (0-15), a 6x6x6 color cube (16-231), and 24 grayscale steps (232-255).
// Adapted from the teacher's DefaultPalette, using a plain [3]uint8 instead
// of image/color.RGBA since Style never needs an alpha channel.
var DefaultPalette256 [256][3]uint8

func init() {
	basic := [16][3]uint8{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	copy(DefaultPalette256[0:16], basic[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette256[i] = [3]uint8{uint8(r * 51), uint8(g * 51), uint8(b * 51)}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette256[232+j] = [3]uint8{gray, gray, gray}
	}
}

// DefaultForeground is the default text color (light gray), used when a
// cell's style leaves Fg nil and SGR 39 (reset foreground) is in effect.
var DefaultForeground = RGBColor(229, 229, 229)

// DefaultBackground is the default background color (black), used when a
// cell's style leaves Bg nil and SGR 49 (reset background) is in effect.
var DefaultBackground = RGBColor(0, 0, 0)
