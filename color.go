package nvg

import (
	"image/color"
	"math"

	"github.com/gogpu/nvg/backend"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = RGBf(0, 0, 0)
	White       = RGBf(1, 1, 1)
	Transparent = RGBAf(0, 0, 0, 0)
)

// RGB returns an opaque color from byte components.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// RGBA returns a color from byte components.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// RGBf returns an opaque color from float components.
func RGBf(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBAf returns a color from float components.
func RGBAf(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// TransRGBA returns c with its alpha set to a/255.
func TransRGBA(c Color, a uint8) Color {
	c.A = float64(a) / 255
	return c
}

// TransRGBAf returns c with its alpha set to a.
func TransRGBAf(c Color, a float64) Color {
	c.A = a
	return c
}

// LerpRGBA interpolates componentwise c0*(1-u) + c1*u. u is not clamped.
func LerpRGBA(c0, c1 Color, u float64) Color {
	if c0 == c1 {
		return c0
	}
	oneMinus := 1 - u
	return Color{
		R: c0.R*oneMinus + c1.R*u,
		G: c0.G*oneMinus + c1.G*u,
		B: c0.B*oneMinus + c1.B*u,
		A: c0.A*oneMinus + c1.A*u,
	}
}

// HSL returns an opaque color from hue, saturation and lightness. Hue is
// in turns (0..1 is one full circle); saturation and lightness are
// clamped to [0, 1].
func HSL(h, s, l float64) Color {
	return HSLA(h, s, l, 255)
}

// HSLA is HSL with a byte alpha.
func HSLA(h, s, l float64, a uint8) Color {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	s = clamp01(s)
	l = clamp01(l)
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return Color{
		R: clamp01(hue(h+1.0/3, m1, m2)),
		G: clamp01(hue(h, m1, m2)),
		B: clamp01(hue(h-1.0/3, m1, m2)),
		A: float64(a) / 255,
	}
}

func hue(h, m1, m2 float64) float64 {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 3.0/6:
		return m2
	case h < 4.0/6:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with or without a
// leading '#'. Malformed input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b uint32
	a := uint32(255)
	ok := true
	switch len(hex) {
	case 3, 4:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		if len(hex) == 4 {
			ok = ok && parseHex(hex[3:4], &a)
			a *= 17
		}
		r, g, b = r*17, g*17, b*17
	case 6, 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
		if len(hex) == 8 {
			ok = ok && parseHex(hex[6:8], &a)
		}
	default:
		ok = false
	}
	if !ok {
		return Black
	}
	return RGBA(uint8(r), uint8(g), uint8(b), uint8(a))
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}.RGBA()
}

// Premultiply returns c with its color components multiplied by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

func (c Color) premul() backend.Color {
	p := c.Premultiply()
	return backend.Color{R: p.R, G: p.G, B: p.B, A: p.A}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
