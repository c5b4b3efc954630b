package cssdistill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteColorsGlobal(t *testing.T) {
	names := nameMaps{colors: map[string]string{
		"#111":    "color-fg",
		"#3b82f6": "color-primary",
	}}
	css := "body { color: #111 } .banner { background: linear-gradient(#111, #3b82f6) }"
	got := rewriteText(css, names)
	require.Equal(t,
		"body { color: var(--color-fg) } .banner { background: linear-gradient(var(--color-fg), var(--color-primary)) }",
		got)
}

func TestRewriteColorsLongestFirst(t *testing.T) {
	// #111 must not match inside #1113's replacement
	names := nameMaps{colors: map[string]string{
		"#111":  "color-1",
		"#1113": "color-2",
	}}
	got := rewriteText("a { color: #1113 } b { color: #111 }", names)
	require.Equal(t, "a { color: var(--color-2) } b { color: var(--color-1) }", got)
}

func TestRewriteSpacingIsPropertyScoped(t *testing.T) {
	names := nameMaps{spacing: map[string]string{"8px": "space-1"}}
	css := ".a { padding: 8px; width: 8px }"
	got := rewriteText(css, names)
	require.Equal(t, ".a { padding: var(--space-1); width: 8px }", got)
}

func TestRewriteBorderAndMotion(t *testing.T) {
	names := nameMaps{
		borders:   map[string]string{"1px": "border-width-1"},
		durations: map[string]string{"0.3s": "duration-1"},
		easings:   map[string]string{"ease-in-out": "ease-1"},
	}
	css := ".a { border: 1px solid #000; transition: all 0.3s ease-in-out }"
	got := rewriteText(css, names)
	require.Equal(t,
		".a { border: var(--border-width-1) solid #000; transition: all var(--duration-1) var(--ease-1) }",
		got)
}

func TestRewriteWholeTokenBoundary(t *testing.T) {
	names := nameMaps{lineHeights: map[string]string{"1.5": "line-height-1"}}

	// 1.5 replaces as a whole token only
	got := rewriteText(".a { line-height: 1.5 }", names)
	require.Equal(t, ".a { line-height: var(--line-height-1) }", got)

	// no match inside a larger number
	got = rewriteText(".a { line-height: 21.5 }", names)
	require.Equal(t, ".a { line-height: 21.5 }", got)

	// an unrelated 15 is untouched even with both maps present
	names.sizes = map[string]string{"15px": "font-size-1"}
	got = rewriteText(".a { line-height: 1.5; font-size: 15px }", names)
	require.Equal(t, ".a { line-height: var(--line-height-1); font-size: var(--font-size-1) }", got)
}

func TestRewriteFontFamilyExactMatch(t *testing.T) {
	names := nameMaps{families: map[string]string{"Arial, sans-serif": "font-1"}}

	// formatting variants normalize onto the same candidate
	got := rewriteText(".a { font-family: Arial,   sans-serif }", names)
	require.Equal(t, ".a { font-family: var(--font-1) }", got)

	// unknown family stays
	got = rewriteText(".a { font-family: Georgia, serif }", names)
	require.Equal(t, ".a { font-family: Georgia, serif }", got)
}

func TestRewriteFontShorthand(t *testing.T) {
	names := nameMaps{
		weights:     map[string]string{"bold": "font-weight-1"},
		sizes:       map[string]string{"16px": "font-size-1"},
		lineHeights: map[string]string{"1.5": "line-height-1"},
		families:    map[string]string{"Arial, sans-serif": "font-1"},
	}

	got := rewriteText(".a { font: bold 16px/1.5 Arial, sans-serif }", names)
	require.Equal(t,
		".a { font: var(--font-weight-1) var(--font-size-1)/var(--line-height-1) var(--font-1) }",
		got)

	// the pair substitutes even when the line-height has no token
	delete(names.lineHeights, "1.5")
	got = rewriteText(".a { font: bold 16px/1.5 Arial, sans-serif }", names)
	require.Equal(t,
		".a { font: var(--font-weight-1) var(--font-size-1)/1.5 var(--font-1) }",
		got)

	// an unknown family tail stays verbatim
	got = rewriteText(".a { font: 16px Georgia, serif }", names)
	require.Equal(t, ".a { font: var(--font-size-1) Georgia, serif }", got)
}

func TestRewriteRadiusExactNormalizedMatch(t *testing.T) {
	names := nameMaps{radii: map[string]string{"4px / 8px": "radius-1", "4px": "radius-2"}}

	// the normalized form matches exactly
	got := rewriteText(".a { border-radius: 4px / 8px }", names)
	require.Equal(t, ".a { border-radius: var(--radius-1) }", got)

	// a differently normalized value is conservatively left alone
	got = rewriteText(".a { border-radius: 4px/8px }", names)
	require.Equal(t, ".a { border-radius: 4px/8px }", got)

	got = rewriteText(".a { border-radius: 4px }", names)
	require.Equal(t, ".a { border-radius: var(--radius-2) }", got)
}

func TestRewriteShadowExactMatch(t *testing.T) {
	names := nameMaps{shadows: map[string]string{"0 1px 2px rgba(0,0,0,0.1)": "shadow-1"}}

	got := rewriteText(".a { box-shadow: 0 1px 2px rgba(0,0,0,0.1) }", names)
	require.Equal(t, ".a { box-shadow: var(--shadow-1) }", got)

	// equivalent but differently spaced value stays unreplaced
	got = rewriteText(".a { box-shadow: 0 1px  2px rgba(0,0,0,0.1) }", names)
	require.Equal(t, ".a { box-shadow: 0 1px  2px rgba(0,0,0,0.1) }", got)
}

func TestRewritePreservesUnrelatedText(t *testing.T) {
	names := nameMaps{spacing: map[string]string{"8px": "space-1"}}
	css := "/* header */\n.a { padding: 8px }\n\n.b { color: red }"
	got := rewriteText(css, names)
	require.Equal(t, "/* header */\n.a { padding: var(--space-1) }\n\n.b { color: red }", got)
}
