package cssdistill

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit identifies a convertible length unit.
type Unit string

// Supported length units. Everything except px resolves against a
// configurable pixel base.
const (
	UnitPx      Unit = "px"
	UnitRem     Unit = "rem"
	UnitEm      Unit = "em"
	UnitPercent Unit = "%"
	UnitVh      Unit = "vh"
	UnitVw      Unit = "vw"
	UnitCh      Unit = "ch"
)

// ConversionPair requests converting tokens of one unit into another.
// Pairs are applied in order: a token converted by one pair is re-matched
// against the next pair with its new unit, so chains like px->rem->em work.
type ConversionPair struct {
	From Unit
	To   Unit
}

// lengthTokenRe matches a signed decimal number followed by a supported
// unit. Word-boundary checks happen in code since RE2 has no lookarounds.
var lengthTokenRe = regexp.MustCompile(`(-?(?:\d+(?:\.\d+)?|\.\d+))(px|rem|em|vh|vw|ch|%)`)

func isUnit(u Unit) bool {
	switch u {
	case UnitPx, UnitRem, UnitEm, UnitPercent, UnitVh, UnitVw, UnitCh:
		return true
	}
	return false
}

// validPairs drops pairs with unknown units or identical endpoints and
// reports each drop as a warning.
func validPairs(pairs []ConversionPair) ([]ConversionPair, []string) {
	var valid []ConversionPair
	var warnings []string
	for _, p := range pairs {
		switch {
		case !isUnit(p.From) || !isUnit(p.To):
			warnings = append(warnings, fmt.Sprintf("conversion %s->%s dropped: unknown unit", p.From, p.To))
		case p.From == p.To:
			warnings = append(warnings, fmt.Sprintf("conversion %s->%s dropped: identical units", p.From, p.To))
		default:
			valid = append(valid, p)
		}
	}
	return valid, warnings
}

// pxPerUnit returns how many pixels one unit is worth. emPx is the resolved
// em context for the current rule.
func pxPerUnit(u Unit, cfg Config, emPx float64) float64 {
	switch u {
	case UnitPx:
		return 1
	case UnitRem:
		return cfg.RootPx
	case UnitEm:
		return emPx
	case UnitPercent:
		return cfg.PercentBasePx / 100
	case UnitVh:
		return cfg.ViewportHeightPx / 100
	case UnitVw:
		return cfg.ViewportWidthPx / 100
	case UnitCh:
		return cfg.ChPx
	}
	return 1
}

var urlArgRe = regexp.MustCompile(`(?i)\burl\([^)]*\)`)

// maskedSpans marks regions whose interiors are never length tokens:
// functional color literals and url() arguments. Percent channels in
// rgb() and path fragments in url() must survive conversion verbatim.
func maskedSpans(s string) [][]int {
	if !strings.Contains(s, "(") {
		return nil
	}
	spans := colorLiteralRe.FindAllStringIndex(s, -1)
	return append(spans, urlArgRe.FindAllStringIndex(s, -1)...)
}

func inSpan(spans [][]int, pos int) bool {
	for _, span := range spans {
		if pos >= span[0] && pos < span[1] {
			return true
		}
	}
	return false
}

// findLengthTokens returns submatch index groups for standalone length
// tokens, rejecting matches glued to identifiers, hex digits or numbers
// and matches inside color functions or url() arguments.
func findLengthTokens(s string) [][]int {
	matches := lengthTokenRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}
	masked := maskedSpans(s)
	tokens := matches[:0]
	for _, m := range matches {
		start, end := m[0], m[1]
		if inSpan(masked, start) {
			continue
		}
		if start > 0 && isTokenGlue(s[start-1]) {
			continue
		}
		unit := s[m[4]:m[5]]
		if unit != "%" && end < len(s) && isWordByte(s[end]) {
			continue
		}
		tokens = append(tokens, m)
	}
	return tokens
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isTokenGlue(b byte) bool {
	return isWordByte(b) || b == '.' || b == '#'
}

// convertValue runs a numeric value through the pair pipeline. It reports
// whether any pair matched the token's unit along the way.
func convertValue(v float64, unit Unit, emPx float64, cfg Config, pairs []ConversionPair) (float64, Unit, bool) {
	current := unit
	applied := false
	for _, p := range pairs {
		if current != p.From {
			continue
		}
		px := v * pxPerUnit(current, cfg, emPx)
		v = px / pxPerUnit(p.To, cfg, emPx)
		current = p.To
		applied = true
	}
	return v, current, applied
}

// convertBody rewrites every length token in a rule body. Tokens that no
// pair matches, and numbers that fail to parse, pass through untouched.
// Math function arguments need no special casing: their length tokens are
// ordinary matches, and operators and function names are never touched.
func convertBody(body string, emPx float64, cfg Config, pairs []ConversionPair) string {
	tokens := findLengthTokens(body)
	if len(tokens) == 0 {
		return body
	}

	var out strings.Builder
	last := 0
	for _, m := range tokens {
		start, end := m[0], m[1]
		num := body[m[2]:m[3]]
		unit := Unit(body[m[4]:m[5]])

		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		converted, target, applied := convertValue(v, unit, emPx, cfg, pairs)
		if !applied {
			continue
		}

		out.WriteString(body[last:start])
		out.WriteString(formatNumber(converted))
		out.WriteString(string(target))
		last = end
	}
	out.WriteString(body[last:])
	return out.String()
}

// formatNumber renders with at most 4 decimal places, trailing zeros and
// dangling decimal points stripped.
func formatNumber(v float64) string {
	if v == 0 {
		v = math.Abs(v)
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// scanFontSizes builds the selector -> pixel font size map used to resolve
// em tokens. Only literal font-size declarations in a non-em unit count;
// later declarations for the same selector win. Cascade inheritance is not
// modeled.
func scanFontSizes(text string, cfg Config) map[string]float64 {
	sizes := make(map[string]float64)
	for decl := range Declarations(text) {
		if decl.Property != "font-size" {
			continue
		}
		tokens := findLengthTokens(decl.Value)
		if len(tokens) == 0 {
			continue
		}
		m := tokens[0]
		unit := Unit(decl.Value[m[4]:m[5]])
		if unit == UnitEm {
			continue
		}
		v, err := strconv.ParseFloat(decl.Value[m[2]:m[3]], 64)
		if err != nil {
			continue
		}
		sizes[decl.Selector] = v * pxPerUnit(unit, cfg, 0)
	}
	return sizes
}

// convertText applies the pair pipeline to every rule body, splicing the
// results back between the untouched selector spans.
func convertText(text string, cfg Config, pairs []ConversionPair) string {
	if len(pairs) == 0 {
		return text
	}
	emSizes := scanFontSizes(text, cfg)

	var out strings.Builder
	last := 0
	for rule := range Rules(text) {
		emPx := cfg.ContextPx
		if px, ok := emSizes[rule.Selector]; ok {
			emPx = px
		}
		out.WriteString(text[last:rule.BodyStart])
		out.WriteString(convertBody(rule.Body, emPx, cfg, pairs))
		last = rule.BodyEnd
	}
	out.WriteString(text[last:])
	return out.String()
}

// Convert applies the configured conversion pairs to text and returns the
// converted stylesheet. Invalid pairs are dropped silently; with no valid
// pairs the text is returned unchanged.
func Convert(text string, cfg Config) string {
	cfg, _ = cfg.withDefaults()
	pairs, _ := validPairs(cfg.Conversions)
	return convertText(text, cfg, pairs)
}

// pixelEquivalent approximates a literal's first length token in pixels for
// size ordering. Literals without a length token rank as zero.
func pixelEquivalent(literal string, cfg Config) float64 {
	tokens := findLengthTokens(literal)
	if len(tokens) == 0 {
		return 0
	}
	m := tokens[0]
	v, err := strconv.ParseFloat(literal[m[2]:m[3]], 64)
	if err != nil {
		return 0
	}
	return v * pxPerUnit(Unit(literal[m[4]:m[5]]), cfg, cfg.ContextPx)
}
