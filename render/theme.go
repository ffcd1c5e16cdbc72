// Package render draws one chart onto a raster surface: a fixed stack of
// layers from background fill up to the watermark.
package render

import (
	"image/color"
	"strconv"
)

// Theme holds the default palette for every drawable element. Explicit
// per-element colors from the config override these, chart-type defaults
// sit in between.
type Theme struct {
	Name       string
	Background color.RGBA
	GridLine   color.RGBA
	Axis       color.RGBA
	Text       color.RGBA
	Bull       color.RGBA
	Bear       color.RGBA
	Line       color.RGBA
	Watermark  color.RGBA
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: color.RGBA{0x13, 0x17, 0x22, 0xff},
		GridLine:   color.RGBA{0x2a, 0x2e, 0x39, 0xff},
		Axis:       color.RGBA{0x4a, 0x4e, 0x59, 0xff},
		Text:       color.RGBA{0xb2, 0xb5, 0xbe, 0xff},
		Bull:       color.RGBA{0x26, 0xa6, 0x9a, 0xff},
		Bear:       color.RGBA{0xef, 0x53, 0x50, 0xff},
		Line:       color.RGBA{0x29, 0x62, 0xff, 0xff},
		Watermark:  color.RGBA{0xb2, 0xb5, 0xbe, 0x2e},
	}
}

// LightTheme is the white-background palette.
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		GridLine:   color.RGBA{0xe0, 0xe3, 0xeb, 0xff},
		Axis:       color.RGBA{0x9a, 0x9e, 0xa9, 0xff},
		Text:       color.RGBA{0x13, 0x17, 0x22, 0xff},
		Bull:       color.RGBA{0x26, 0xa6, 0x9a, 0xff},
		Bear:       color.RGBA{0xef, 0x53, 0x50, 0xff},
		Line:       color.RGBA{0x29, 0x62, 0xff, 0xff},
		Watermark:  color.RGBA{0x13, 0x17, 0x22, 0x2e},
	}
}

// ThemeByName resolves a theme name; anything but "light" falls back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// ParseHex decodes #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (color.RGBA, bool) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hex := s[1:]

	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return color.RGBA{}, false
		}
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.RGBA{r | r<<4, g | g<<4, b | b<<4, 0xff}, true
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, true
	case 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	default:
		return color.RGBA{}, false
	}
}

// resolve applies the color resolution order: explicit custom hex first,
// then the supplied default.
func resolve(custom string, fallback color.RGBA) color.RGBA {
	if c, ok := ParseHex(custom); ok {
		return c
	}
	return fallback
}

// withAlpha returns the color with its alpha replaced.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
