package cssdistill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    RGBA
	}{
		{"six digit hex", "#3b82f6", RGBA{59, 130, 246, 1}},
		{"short hex expands by duplication", "#abc", RGBA{170, 187, 204, 1}},
		{"four digit hex carries alpha", "#f008", RGBA{255, 0, 0, 0x88 / 255.0}},
		{"eight digit hex carries alpha", "#80808080", RGBA{128, 128, 128, 128.0 / 255}},
		{"rgb integers", "rgb(255, 0, 0)", RGBA{255, 0, 0, 1}},
		{"rgb percentages", "rgb(100%, 0%, 50%)", RGBA{255, 0, 128, 1}},
		{"rgb channels clamp", "rgb(300, -20, 0)", RGBA{255, 0, 0, 1}},
		{"rgba with alpha", "rgba(0, 0, 0, 0.5)", RGBA{0, 0, 0, 0.5}},
		{"rgb space separated with slash alpha", "rgb(10 20 30 / 0.4)", RGBA{10, 20, 30, 0.4}},
		{"hsl primary red", "hsl(0, 100%, 50%)", RGBA{255, 0, 0, 1}},
		{"hsl pure white", "hsl(120, 50%, 100%)", RGBA{255, 255, 255, 1}},
		{"hsla with alpha", "hsla(0, 0%, 0%, 0.25)", RGBA{0, 0, 0, 0.25}},
		{"case insensitive function name", "RGB(1, 2, 3)", RGBA{1, 2, 3, 1}},
		{"unknown literal defaults to opaque black", "tomato", RGBA{0, 0, 0, 1}},
		{"invalid hex defaults to opaque black", "#xyz", RGBA{0, 0, 0, 1}},
		{"truncated function defaults to opaque black", "rgb(1, 2)", RGBA{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseColor(tt.literal)
			require.Equal(t, tt.want.R, got.R)
			require.Equal(t, tt.want.G, got.G)
			require.Equal(t, tt.want.B, got.B)
			require.InDelta(t, tt.want.A, got.A, 1e-9)
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	literals := []string{
		"#000000", "#ffffff", "#3b82f6", "#8800ff",
		"rgb(12, 34, 56)", "rgba(12, 34, 56, 0.5)",
		"hsl(210, 40%, 60%)",
	}
	for _, lit := range literals {
		t.Run(lit, func(t *testing.T) {
			first := ParseColor(lit)
			again := ParseColor(first.String())
			require.Equal(t, first.R, again.R)
			require.Equal(t, first.G, again.G)
			require.Equal(t, first.B, again.B)
			require.InDelta(t, first.A, again.A, 1e-4)
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	colors := []RGBA{
		{0, 0, 0, 1}, {255, 255, 255, 1}, {59, 130, 246, 1},
		{17, 17, 17, 1}, {200, 100, 50, 0.5},
	}
	for _, c := range colors {
		back := c.HSL().RGBA()
		assert.InDelta(t, c.R, back.R, 1, "R for %+v", c)
		assert.InDelta(t, c.G, back.G, 1, "G for %+v", c)
		assert.InDelta(t, c.B, back.B, 1, "B for %+v", c)
		assert.InDelta(t, c.A, back.A, 1e-9, "A for %+v", c)
	}
}

func TestHSLHueWraps(t *testing.T) {
	a := HSL{H: 480, S: 1, L: 0.5, A: 1}.RGBA()
	b := HSL{H: 120, S: 1, L: 0.5, A: 1}.RGBA()
	require.Equal(t, b, a)
}

func TestLuminance(t *testing.T) {
	require.InDelta(t, 0.0, RGBA{0, 0, 0, 1}.Luminance(), 1e-9)
	require.InDelta(t, 1.0, RGBA{255, 255, 255, 1}.Luminance(), 1e-9)
	require.InDelta(t, 0.2159, RGBA{128, 128, 128, 1}.Luminance(), 1e-3)
	// green dominates the weighting
	require.Greater(t,
		RGBA{0, 255, 0, 1}.Luminance(),
		RGBA{255, 0, 0, 1}.Luminance())
}

func TestDarkVariantFlip(t *testing.T) {
	// white flips to near black, clamped at lightness 0.08
	require.Equal(t, "#141414", RGBA{255, 255, 255, 1}.DarkVariant(DarkFlip).String())
	// near black flips to near white, clamped at lightness 0.92
	require.Equal(t, "#ebebeb", RGBA{17, 17, 17, 1}.DarkVariant(DarkFlip).String())

	// neutrals stay neutral: saturation is zeroed
	v := RGBA{130, 128, 128, 1}.DarkVariant(DarkFlip)
	require.Equal(t, v.R, v.G)
	require.Equal(t, v.G, v.B)
}

func TestDarkVariantFlipInvolutionOnNeutrals(t *testing.T) {
	// for grays with lightness inside the clamp window, flipping twice
	// returns to the original color
	grays := []RGBA{{51, 51, 51, 1}, {128, 128, 128, 1}, {204, 204, 204, 1}}
	for _, g := range grays {
		twice := g.DarkVariant(DarkFlip).DarkVariant(DarkFlip)
		assert.InDelta(t, g.R, twice.R, 1, "for %+v", g)
		require.Zero(t, twice.HSL().S)
	}
}

func TestDarkVariantInvert(t *testing.T) {
	// channels invert but never reach the extremes
	require.Equal(t, RGBA{245, 245, 245, 1}, RGBA{0, 0, 0, 1}.DarkVariant(DarkInvert))
	require.Equal(t, RGBA{10, 10, 10, 1}, RGBA{255, 255, 255, 1}.DarkVariant(DarkInvert))
	require.Equal(t, RGBA{155, 125, 55, 0.5}, RGBA{100, 130, 200, 0.5}.DarkVariant(DarkInvert))
}

func TestDarkVariantTone(t *testing.T) {
	got := RGBA{255, 0, 0, 1}.DarkVariant(DarkTone)
	h := got.HSL()
	require.InDelta(t, 0.55, h.L, 0.01)
	require.InDelta(t, 0.9, h.S, 0.01)
}

func TestColorSerialization(t *testing.T) {
	require.Equal(t, "#3b82f6", RGBA{59, 130, 246, 1}.String())
	require.Equal(t, "#010203", RGBA{1, 2, 3, 1}.String())
	require.Equal(t, "rgba(0, 0, 0, 0.5)", RGBA{0, 0, 0, 0.5}.String())
	require.Equal(t, "rgba(255, 0, 0, 0.1235)", RGBA{255, 0, 0, 0.12345}.String())
}

func TestColorDistance(t *testing.T) {
	require.Zero(t, colorDistance(HSL{H: 100, S: 0.5, L: 0.5}, HSL{H: 100, S: 0.5, L: 0.5}))
	near := colorDistance(HSL{H: 210, S: 0.9, L: 0.5}, HSL{H: 212, S: 0.9, L: 0.52})
	far := colorDistance(HSL{H: 210, S: 0.9, L: 0.5}, HSL{H: 30, S: 0.9, L: 0.5})
	require.Less(t, near, distinctMinDistance)
	require.Greater(t, far, distinctMinDistance)
}
