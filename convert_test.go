package cssdistill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func convertWith(css string, pairs ...ConversionPair) string {
	cfg := DefaultConfig()
	cfg.Conversions = pairs
	return Convert(css, cfg)
}

func TestConvert(t *testing.T) {
	pxToRem := ConversionPair{From: UnitPx, To: UnitRem}

	tests := []struct {
		name  string
		css   string
		pairs []ConversionPair
		want  string
	}{
		{
			name:  "unit mismatch is a no-op",
			css:   "a { margin: 10px }",
			pairs: []ConversionPair{{From: UnitRem, To: UnitPx}},
			want:  "a { margin: 10px }",
		},
		{
			name:  "rem to px uses the root size",
			css:   "a { margin: 1rem }",
			pairs: []ConversionPair{{From: UnitRem, To: UnitPx}},
			want:  "a { margin: 16px }",
		},
		{
			name:  "px to rem",
			css:   "a { padding: 8px 16px }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { padding: 0.5rem 1rem }",
		},
		{
			name:  "chained pairs re-match unit identity at each step",
			css:   "a { width: 32px }",
			pairs: []ConversionPair{pxToRem, {From: UnitRem, To: UnitEm}},
			want:  "a { width: 2em }",
		},
		{
			name:  "conversion recurses into calc arguments",
			css:   "a { width: calc(10px + 1rem) }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { width: calc(0.625rem + 1rem) }",
		},
		{
			name:  "nested clamp function",
			css:   "a { width: clamp(8px, min(32px, 5vw), 64px) }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { width: clamp(0.5rem, min(2rem, 5vw), 4rem) }",
		},
		{
			name:  "viewport width resolves against the configured base",
			css:   "a { width: 50vw }",
			pairs: []ConversionPair{{From: UnitVw, To: UnitPx}},
			want:  "a { width: 960px }",
		},
		{
			name:  "percent resolves against the percent base",
			css:   "a { width: 50% }",
			pairs: []ConversionPair{{From: UnitPercent, To: UnitPx}},
			want:  "a { width: 8px }",
		},
		{
			name:  "ch resolves against the ch base",
			css:   "a { width: 2ch }",
			pairs: []ConversionPair{{From: UnitCh, To: UnitPx}},
			want:  "a { width: 16px }",
		},
		{
			name:  "negative and fractional values",
			css:   "a { margin: -4px; top: .4px }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { margin: -0.25rem; top: 0.025rem }",
		},
		{
			name:  "trailing zeros are stripped",
			css:   "a { margin: 16px }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { margin: 1rem }",
		},
		{
			name:  "hex colors are not mistaken for lengths",
			css:   "a { color: #aabbcc; border: 1px solid #fec }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { color: #aabbcc; border: 0.0625rem solid #fec }",
		},
		{
			name:  "identifiers are not split",
			css:   "a { grid-area: span2px1 }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { grid-area: span2px1 }",
		},
		{
			name:  "percent channels in color functions are preserved",
			css:   "a { color: rgb(100%, 0%, 50%); width: 50% }",
			pairs: []ConversionPair{{From: UnitPercent, To: UnitPx}},
			want:  "a { color: rgb(100%, 0%, 50%); width: 8px }",
		},
		{
			name:  "hsl components are preserved",
			css:   "a { border-color: hsl(210, 40%, 60%); height: 10% }",
			pairs: []ConversionPair{{From: UnitPercent, To: UnitPx}},
			want:  "a { border-color: hsl(210, 40%, 60%); height: 1.6px }",
		},
		{
			name:  "url arguments are preserved",
			css:   "a { background: url(16px.png); margin: 16px }",
			pairs: []ConversionPair{pxToRem},
			want:  "a { background: url(16px.png); margin: 1rem }",
		},
		{
			name:  "no pairs leaves text untouched",
			css:   "a { margin: 10px }",
			pairs: nil,
			want:  "a { margin: 10px }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, convertWith(tt.css, tt.pairs...))
		})
	}
}

func TestConvertEmContext(t *testing.T) {
	emToPx := []ConversionPair{{From: UnitEm, To: UnitPx}}

	// a rule's own font-size declaration resolves its em tokens
	got := convertWith(".card { font-size: 20px; width: 2em }", emToPx...)
	require.Equal(t, ".card { font-size: 20px; width: 40px }", got)

	// rem font sizes resolve through the root size first
	got = convertWith(".hero { font-size: 2rem; padding: 1em }", emToPx...)
	require.Equal(t, ".hero { font-size: 2rem; padding: 32px }", got)

	// without a rule-level font-size the global context applies
	got = convertWith("a { width: 2em }", emToPx...)
	require.Equal(t, "a { width: 32px }", got)

	// an em font-size cannot resolve itself and falls back to the context
	got = convertWith("a { font-size: 1.5em; width: 1em }", emToPx...)
	require.Equal(t, "a { font-size: 24px; width: 16px }", got)
}

func TestValidPairs(t *testing.T) {
	pairs, warnings := validPairs([]ConversionPair{
		{From: UnitPx, To: UnitRem},
		{From: "pt", To: UnitPx},
		{From: UnitRem, To: UnitRem},
	})
	require.Equal(t, []ConversionPair{{From: UnitPx, To: UnitRem}}, pairs)
	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], "unknown unit")
	require.Contains(t, warnings[1], "identical units")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.625, "0.625"},
		{0.33333333, "0.3333"},
		{16, "16"},
		{-0.25, "-0.25"},
		{0, "0"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestPixelEquivalent(t *testing.T) {
	cfg := DefaultConfig()
	require.InDelta(t, 16, pixelEquivalent("1rem", cfg), 1e-9)
	require.InDelta(t, 8, pixelEquivalent("8px", cfg), 1e-9)
	require.InDelta(t, 24, pixelEquivalent("1.5em", cfg), 1e-9)
	require.Zero(t, pixelEquivalent("auto", cfg))
}
