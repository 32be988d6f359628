package render

import "strings"

// Theme colors
type Theme struct {
	Background [4]float32
	Foreground [4]float32
	Cursor     [4]float32
	TabBar     [4]float32
	TabActive  [4]float32
	Selection  [4]float32
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return ThemeByName("raven-blue")
}

// ThemeByName returns a theme for a known theme name. Unknown names get the
// default theme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "crow-black":
		return Theme{
			Background: [4]float32{0.020, 0.020, 0.020, 1.0}, // #050505
			Foreground: [4]float32{0.902, 0.902, 0.902, 1.0}, // #e6e6e6
			Cursor:     [4]float32{0.965, 0.965, 0.965, 1.0}, // #f6f6f6
			TabBar:     [4]float32{0.000, 0.000, 0.000, 1.0}, // #000000
			TabActive:  [4]float32{0.702, 0.702, 0.702, 1.0}, // #b3b3b3
			Selection:  [4]float32{0.702, 0.702, 0.702, 0.35},
		}
	case "catppuccin-mocha", "catppuccin":
		return Theme{
			Background: [4]float32{0.118, 0.118, 0.180, 1.0}, // #1e1e2e
			Foreground: [4]float32{0.804, 0.839, 0.957, 1.0}, // #cdd6f4
			Cursor:     [4]float32{0.961, 0.761, 0.906, 1.0}, // #f5c2e7
			TabBar:     [4]float32{0.094, 0.094, 0.145, 1.0}, // #181825
			TabActive:  [4]float32{0.537, 0.706, 0.980, 1.0}, // #89b4fa
			Selection:  [4]float32{0.537, 0.706, 0.980, 0.35},
		}
	default:
		return Theme{
			Background: [4]float32{0.051, 0.063, 0.102, 1.0}, // #0d101a
			Foreground: [4]float32{0.910, 0.929, 0.969, 1.0}, // #e8edf7
			Cursor:     [4]float32{0.635, 0.878, 0.780, 1.0}, // #a2e0c7
			TabBar:     [4]float32{0.039, 0.047, 0.078, 1.0}, // #0a0c14
			TabActive:  [4]float32{0.455, 0.714, 1.0, 1.0},   // #74b6ff
			Selection:  [4]float32{0.455, 0.714, 1.0, 0.35},
		}
	}
}

// ClearColor is the background premultiplied by the window opacity
func (t Theme) ClearColor(opacity float32) [4]float32 {
	bg := t.Background
	return [4]float32{bg[0] * opacity, bg[1] * opacity, bg[2] * opacity, opacity}
}

// PackRGB packs the RGB part of a color into 0xRRGGBB
func PackRGB(c [4]float32) uint32 {
	ch := func(v float32) uint32 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint32(v*255 + 0.5)
	}
	return ch(c[0])<<16 | ch(c[1])<<8 | ch(c[2])
}
