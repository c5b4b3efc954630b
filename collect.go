package cssdistill

import (
	"regexp"
	"strconv"
	"strings"
)

// ColorCandidate aggregates one distinct color literal, keyed by its exact
// source text. The numeric fields are derived once on first sight and never
// mutated afterwards.
type ColorCandidate struct {
	Literal        string
	Count          int
	PropertyCounts map[string]int
	Selectors      []string // originating selectors, duplicates allowed
	RGBA           RGBA
	HSL            HSL
	Luminance      float64
}

// Candidate aggregates one distinct literal in a non-color category.
type Candidate struct {
	Literal        string
	Count          int
	PropertyCounts map[string]int
	Ms             float64 // durations only: milliseconds for ordering
}

var (
	colorLiteralRe        = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})\b|\b(?i:rgba?|hsla?)\([^)]*\)`)
	durationRe            = regexp.MustCompile(`(\d+(?:\.\d+)?|\.\d+)(ms|s)\b`)
	easingRe              = regexp.MustCompile(`\b(?:cubic-bezier|steps)\([^)]*\)|\b(?:ease-in-out|ease-in|ease-out|ease|linear|step-start|step-end)\b`)
	shorthandWeightRe     = regexp.MustCompile(`\b(?:100|200|300|400|500|600|700|800|900|bold|bolder|lighter)\b`)
	shorthandLineHeightRe = regexp.MustCompile(`^\s*/\s*([^\s;]+)`)
	radiusSlashRe         = regexp.MustCompile(`\s*/\s*`)
)

// cssWideKeywords never become font-family candidates.
var cssWideKeywords = map[string]bool{
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"revert":       true,
	"revert-layer": true,
}

// table accumulates candidates for one category, preserving first-seen order.
type table struct {
	byLiteral map[string]*Candidate
	order     []string
}

func newTable() *table {
	return &table{byLiteral: make(map[string]*Candidate)}
}

func (t *table) add(literal, property string) *Candidate {
	c, ok := t.byLiteral[literal]
	if !ok {
		c = &Candidate{Literal: literal, PropertyCounts: make(map[string]int)}
		t.byLiteral[literal] = c
		t.order = append(t.order, literal)
	}
	c.Count++
	c.PropertyCounts[property]++
	return c
}

// candidates returns the table contents in first-seen order.
func (t *table) candidates() []*Candidate {
	out := make([]*Candidate, 0, len(t.order))
	for _, lit := range t.order {
		out = append(out, t.byLiteral[lit])
	}
	return out
}

// colorTable accumulates color candidates with their derived numeric forms.
type colorTable struct {
	byLiteral map[string]*ColorCandidate
	order     []string
}

func newColorTable() *colorTable {
	return &colorTable{byLiteral: make(map[string]*ColorCandidate)}
}

func (t *colorTable) add(literal, property, selector string) {
	c, ok := t.byLiteral[literal]
	if !ok {
		rgba := ParseColor(literal)
		c = &ColorCandidate{
			Literal:        literal,
			PropertyCounts: make(map[string]int),
			RGBA:           rgba,
			HSL:            rgba.HSL(),
			Luminance:      rgba.Luminance(),
		}
		t.byLiteral[literal] = c
		t.order = append(t.order, literal)
	}
	c.Count++
	c.PropertyCounts[property]++
	c.Selectors = append(c.Selectors, selector)
}

// palette returns color candidates in first-seen order. That order is the
// tie-breaker everywhere downstream.
func (t *colorTable) palette() []*ColorCandidate {
	out := make([]*ColorCandidate, 0, len(t.order))
	for _, lit := range t.order {
		out = append(out, t.byLiteral[lit])
	}
	return out
}

// tables holds every category accumulator plus scan counters.
type tables struct {
	colors      *colorTable
	spacing     *table
	borders     *table
	radii       *table
	shadows     *table
	durations   *table
	easings     *table
	families    *table
	sizes       *table
	lineHeights *table
	weights     *table
	tracking    *table

	rules        int
	declarations int
}

func newTables() *tables {
	return &tables{
		colors:      newColorTable(),
		spacing:     newTable(),
		borders:     newTable(),
		radii:       newTable(),
		shadows:     newTable(),
		durations:   newTable(),
		easings:     newTable(),
		families:    newTable(),
		sizes:       newTable(),
		lineHeights: newTable(),
		weights:     newTable(),
		tracking:    newTable(),
	}
}

// collector classifies declarations into the category tables.
type collector struct {
	cfg Config
	t   *tables
}

func newCollector(cfg Config) *collector {
	return &collector{cfg: cfg, t: newTables()}
}

// collectText scans the whole stylesheet and fills the tables.
func (c *collector) collectText(text string) *tables {
	for rule := range Rules(text) {
		c.t.rules++
		for _, d := range rule.Declarations() {
			c.t.declarations++
			c.collect(d)
		}
	}
	return c.t
}

// collect feeds one declaration into every category it matches. A single
// declaration may contribute to several categories independently.
func (c *collector) collect(d Declaration) {
	if c.cfg.enabled(FeatureColors) {
		for _, lit := range colorLiteralRe.FindAllString(d.Value, -1) {
			c.t.colors.add(lit, d.Property, d.Selector)
		}
	}

	if c.cfg.enabled(FeatureSpacing) && isSpacingProperty(d.Property) {
		for _, m := range findLengthTokens(d.Value) {
			c.t.spacing.add(d.Value[m[0]:m[1]], d.Property)
		}
	}

	if c.cfg.enabled(FeatureBorders) && isBorderProperty(d.Property) {
		if tokens := findLengthTokens(d.Value); len(tokens) > 0 {
			m := tokens[0]
			c.t.borders.add(d.Value[m[0]:m[1]], d.Property)
		}
	}

	if c.cfg.enabled(FeatureRadius) && strings.Contains(d.Property, "radius") {
		c.t.radii.add(normalizeRadius(d.Value), d.Property)
	}

	if c.cfg.enabled(FeatureShadows) && d.Property == "box-shadow" {
		c.t.shadows.add(normalizeWhitespace(d.Value), d.Property)
	}

	if c.cfg.enabled(FeatureMotion) && isMotionProperty(d.Property) {
		for _, m := range durationRe.FindAllStringSubmatchIndex(d.Value, -1) {
			lit := d.Value[m[0]:m[1]]
			cand := c.t.durations.add(lit, d.Property)
			if cand.Count == 1 {
				cand.Ms = durationMs(d.Value[m[2]:m[3]], d.Value[m[4]:m[5]])
			}
		}
		for _, lit := range easingRe.FindAllString(d.Value, -1) {
			c.t.easings.add(lit, d.Property)
		}
	}

	if c.cfg.enabled(FeatureTypography) {
		c.collectTypography(d)
	}
}

// collectTypography handles the font shorthand plus the exact typography
// properties. Shorthand components and exact properties count independently.
func (c *collector) collectTypography(d Declaration) {
	switch d.Property {
	case "font":
		if w := shorthandWeightRe.FindString(d.Value); w != "" {
			c.t.weights.add(w, d.Property)
		}
		if tokens := findLengthTokens(d.Value); len(tokens) > 0 {
			m := tokens[0]
			c.t.sizes.add(d.Value[m[0]:m[1]], d.Property)
			rest := d.Value[m[1]:]
			if lh := shorthandLineHeightRe.FindStringSubmatch(rest); lh != nil {
				c.t.lineHeights.add(lh[1], d.Property)
			}
		}
	case "font-size":
		c.t.sizes.add(d.Value, d.Property)
	case "line-height":
		c.t.lineHeights.add(d.Value, d.Property)
	case "font-weight":
		c.t.weights.add(d.Value, d.Property)
	case "letter-spacing":
		c.t.tracking.add(d.Value, d.Property)
	case "font-family":
		if cssWideKeywords[strings.ToLower(d.Value)] {
			return
		}
		c.t.families.add(normalizeFontFamily(d.Value), d.Property)
	}
}

func isSpacingProperty(p string) bool {
	switch p {
	case "margin", "padding", "gap", "row-gap", "column-gap":
		return true
	}
	return strings.HasPrefix(p, "margin-") || strings.HasPrefix(p, "padding-")
}

func isBorderProperty(p string) bool {
	if strings.Contains(p, "radius") {
		return false
	}
	return strings.HasPrefix(p, "border") || strings.HasPrefix(p, "outline")
}

func isMotionProperty(p string) bool {
	return strings.HasPrefix(p, "transition") || strings.HasPrefix(p, "animation")
}

func durationMs(num, unit string) float64 {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if unit == "s" {
		return v * 1000
	}
	return v
}

// normalizeWhitespace collapses runs of whitespace to single spaces.
func normalizeWhitespace(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// normalizeFontFamily collapses whitespace and puts exactly one space after
// each comma so formatting variants of the same list merge.
func normalizeFontFamily(v string) string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.Join(strings.Fields(part), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// normalizeRadius collapses whitespace and pads the corner separator to
// exactly one space on each side.
func normalizeRadius(v string) string {
	return radiusSlashRe.ReplaceAllString(normalizeWhitespace(v), " / ")
}
