package cssdistill

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGBA is a color with 0-255 integer channels and a 0-1 alpha.
type RGBA struct {
	R, G, B int
	A       float64
}

// HSL is a color with hue in degrees (0-360), saturation and lightness in
// 0-1, and a 0-1 alpha.
type HSL struct {
	H, S, L, A float64
}

var colorArgSplitRe = regexp.MustCompile(`[,\s/]+`)

// ParseColor parses a hex, rgb[a]() or hsl[a]() literal. Unrecognized input
// resolves to opaque black so callers never have to branch on failure.
func ParseColor(literal string) RGBA {
	s := strings.TrimSpace(literal)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(lower, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(lower, "hsl"):
		return parseHSLFunc(s)
	}
	return RGBA{0, 0, 0, 1}
}

// parseHex handles 3, 4, 6 and 8 digit hex forms. Short forms expand by
// duplicating each digit; alpha is present only in the 4 and 8 digit forms.
func parseHex(s string) RGBA {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range digits {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		digits = expanded.String()
	case 6, 8:
	default:
		return RGBA{0, 0, 0, 1}
	}

	parse := func(part string) (int, bool) {
		v, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return 0, false
		}
		return int(v), true
	}

	r, ok1 := parse(digits[0:2])
	g, ok2 := parse(digits[2:4])
	b, ok3 := parse(digits[4:6])
	if !ok1 || !ok2 || !ok3 {
		return RGBA{0, 0, 0, 1}
	}

	a := 1.0
	if len(digits) == 8 {
		av, ok := parse(digits[6:8])
		if !ok {
			return RGBA{0, 0, 0, 1}
		}
		a = float64(av) / 255
	}
	return RGBA{r, g, b, clamp01(a)}
}

// colorArgs extracts the argument list of a functional color literal.
func colorArgs(s string) []string {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close <= open {
		return nil
	}
	inner := strings.TrimSpace(s[open+1 : close])
	if inner == "" {
		return nil
	}
	return colorArgSplitRe.Split(inner, -1)
}

// parseRGBFunc handles rgb() and rgba() with integer or percentage channels
// and an optional alpha argument.
func parseRGBFunc(s string) RGBA {
	args := colorArgs(s)
	if len(args) < 3 {
		return RGBA{0, 0, 0, 1}
	}

	channel := func(arg string) int {
		if strings.HasSuffix(arg, "%") {
			p, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			if err != nil {
				return 0
			}
			return clampChannel(int(math.Round(p * 2.55)))
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return 0
		}
		return clampChannel(int(math.Round(v)))
	}

	c := RGBA{R: channel(args[0]), G: channel(args[1]), B: channel(args[2]), A: 1}
	if len(args) >= 4 {
		c.A = parseAlpha(args[3])
	}
	return c
}

// parseHSLFunc handles hsl() and hsla(). Hue is taken as raw degrees;
// saturation and lightness accept a percentage or a bare 0-1 number.
func parseHSLFunc(s string) RGBA {
	args := colorArgs(s)
	if len(args) < 3 {
		return RGBA{0, 0, 0, 1}
	}

	hue, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(args[0]), "deg"), 64)
	if err != nil {
		hue = 0
	}

	fraction := func(arg string) float64 {
		if strings.HasSuffix(arg, "%") {
			p, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			if err != nil {
				return 0
			}
			return clamp01(p / 100)
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return 0
		}
		return clamp01(v)
	}

	h := HSL{H: hue, S: fraction(args[1]), L: fraction(args[2]), A: 1}
	if len(args) >= 4 {
		h.A = parseAlpha(args[3])
	}
	return h.RGBA()
}

func parseAlpha(arg string) float64 {
	if strings.HasSuffix(arg, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
		if err != nil {
			return 1
		}
		return clamp01(p / 100)
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 1
	}
	return clamp01(v)
}

// HSL converts to the HSL representation. Hue wraps modulo 360.
func (c RGBA) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: l, A: c.A}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h = math.Mod(h*60, 360)
	if h < 0 {
		h += 360
	}
	return HSL{H: h, S: s, L: l, A: c.A}
}

// RGBA converts back from HSL. Saturation and lightness are clamped to 0-1.
func (h HSL) RGBA() RGBA {
	hue := math.Mod(h.H, 360)
	if hue < 0 {
		hue += 360
	}
	s := clamp01(h.S)
	l := clamp01(h.L)

	if s == 0 {
		v := clampChannel(int(math.Round(l * 255)))
		return RGBA{v, v, v, clamp01(h.A)}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := hue / 360

	channel := func(t float64) int {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return clampChannel(int(math.Round(v * 255)))
	}

	return RGBA{
		R: channel(hk + 1.0/3),
		G: channel(hk),
		B: channel(hk - 1.0/3),
		A: clamp01(h.A),
	}
}

// Luminance returns WCAG 2.0 relative luminance.
func (c RGBA) Luminance() float64 {
	lin := func(ch int) float64 {
		v := float64(ch) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// colorDistance is a Euclidean distance over (hue/360, saturation, lightness).
// It is a distinctness gauge, not a perceptually uniform metric.
func colorDistance(a, b HSL) float64 {
	dh := (a.H - b.H) / 360
	ds := a.S - b.S
	dl := a.L - b.L
	return math.Sqrt(dh*dh + ds*ds + dl*dl)
}

// DarkVariant derives a dark-scope color using the selected algorithm.
func (c RGBA) DarkVariant(mode DarkAlgorithm) RGBA {
	switch mode {
	case DarkInvert:
		inv := func(ch int) int {
			v := 255 - ch
			if v < 10 {
				v = 10
			}
			if v > 245 {
				v = 245
			}
			return v
		}
		return RGBA{inv(c.R), inv(c.G), inv(c.B), clamp01(c.A)}

	case DarkTone:
		h := c.HSL()
		h.L = clampRange(1-h.L*0.9, 0.1, 0.92)
		h.S *= 0.9
		return h.RGBA()

	default: // DarkFlip
		h := c.HSL()
		neutral := h.S < 0.08
		h.L = clampRange(1-h.L, 0.08, 0.92)
		if neutral {
			h.S = 0
		}
		return h.RGBA()
	}
}

// String serializes to 6-digit hex when fully opaque, rgba() otherwise.
func (c RGBA) String() string {
	if c.A == 1 {
		return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
	}
	a := math.Round(c.A*10000) / 10000
	return "rgba(" + strconv.Itoa(c.R) + ", " + strconv.Itoa(c.G) + ", " +
		strconv.Itoa(c.B) + ", " + strconv.FormatFloat(a, 'f', -1, 64) + ")"
}

func hexByte(v int) string {
	s := strconv.FormatInt(int64(clampChannel(v)), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
