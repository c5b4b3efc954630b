package cssdistill

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Token is one emitted name/literal pair.
type Token struct {
	Name    string
	Literal string
	Count   int
}

// Stats counts what the scan saw.
type Stats struct {
	RuleCount        int
	DeclarationCount int
}

// Result holds everything one distillation run produced. It is immutable
// once returned.
type Result struct {
	// Tokens maps each category to its tokens in emission order.
	Tokens map[Category][]Token
	// Roles maps each assigned semantic role to its color literal.
	Roles    map[Role]string
	Stats    Stats
	Warnings []string

	converted string
	names     nameMaps
	dark      DarkAlgorithm
}

// Distiller runs the analysis pipeline with one validated configuration.
type Distiller struct {
	cfg      Config
	log      *zap.Logger
	warnings []string
}

// NewDistiller validates the configuration and returns a ready distiller.
// A nil logger disables logging.
func NewDistiller(cfg Config, log *zap.Logger) (*Distiller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	full, warnings := cfg.withDefaults()
	if err := full.validate(); err != nil {
		return nil, err
	}
	pairs, pairWarnings := validPairs(full.Conversions)
	full.Conversions = pairs
	return &Distiller{
		cfg:      full,
		log:      log.Named("cssdistill"),
		warnings: append(warnings, pairWarnings...),
	}, nil
}

// Distill is the main entry point: convert units, collect candidates,
// assign roles and names, and return the result tables.
func Distill(text string, cfg Config) (*Result, error) {
	d, err := NewDistiller(cfg, nil)
	if err != nil {
		return nil, err
	}
	return d.Distill(text), nil
}

// Distill runs the full pipeline on one stylesheet text.
func (d *Distiller) Distill(text string) *Result {
	converted := d.Convert(text)
	t := newCollector(d.cfg).collectText(converted)
	d.log.Debug("collected candidates",
		zap.Int("rules", t.rules),
		zap.Int("declarations", t.declarations),
		zap.Int("colors", len(t.colors.order)))

	res := &Result{
		Tokens:    make(map[Category][]Token, len(allCategories)),
		Roles:     make(map[Role]string),
		Stats:     Stats{RuleCount: t.rules, DeclarationCount: t.declarations},
		Warnings:  append([]string(nil), d.warnings...),
		converted: converted,
		dark:      d.cfg.Dark,
	}

	res.Roles, res.Tokens[CategoryColor], res.names.colors = d.buildColors(t.colors)
	for _, role := range roleOrder {
		if lit, ok := res.Roles[role]; ok {
			d.log.Debug("assigned role", zap.String("role", string(role)), zap.String("literal", lit))
		}
	}

	res.Tokens[CategorySpacing], res.names.spacing = d.buildCategory(t.spacing, CategorySpacing, byPixelDesc(d.cfg))
	res.Tokens[CategoryBorderWidth], res.names.borders = d.buildCategory(t.borders, CategoryBorderWidth, byPixelDesc(d.cfg))
	res.Tokens[CategoryRadius], res.names.radii = d.buildCategory(t.radii, CategoryRadius, byPixelDesc(d.cfg))
	res.Tokens[CategoryShadow], res.names.shadows = d.buildCategory(t.shadows, CategoryShadow, byLiteralAsc)
	res.Tokens[CategoryDuration], res.names.durations = d.buildCategory(t.durations, CategoryDuration, byMsAsc)
	res.Tokens[CategoryEasing], res.names.easings = d.buildCategory(t.easings, CategoryEasing, byLiteralAsc)
	res.Tokens[CategoryFontFamily], res.names.families = d.buildCategory(t.families, CategoryFontFamily, byLiteralAsc)
	res.Tokens[CategoryFontSize], res.names.sizes = d.buildCategory(t.sizes, CategoryFontSize, byPixelDesc(d.cfg))
	res.Tokens[CategoryLineHeight], res.names.lineHeights = d.buildCategory(t.lineHeights, CategoryLineHeight,
		byNumericDesc(func(lit string) float64 { return lineHeightValue(lit, d.cfg) }))
	res.Tokens[CategoryFontWeight], res.names.weights = d.buildCategory(t.weights, CategoryFontWeight,
		byNumericDesc(fontWeightValue))
	res.Tokens[CategoryLetterSpacing], res.names.tracking = d.buildCategory(t.tracking, CategoryLetterSpacing, byPixelDesc(d.cfg))

	return res
}

// Convert applies the configured conversion pairs without token analysis.
func (d *Distiller) Convert(text string) string {
	if len(d.cfg.Conversions) == 0 {
		return text
	}
	d.log.Debug("converting units", zap.Int("pairs", len(d.cfg.Conversions)))
	return convertText(text, d.cfg, d.cfg.Conversions)
}

// buildColors runs role assignment, numbers the remainder, and names both.
func (d *Distiller) buildColors(t *colorTable) (map[Role]string, []Token, map[string]string) {
	palette := t.palette()
	roles, rest := assignRoles(palette)
	names := assignColorNames(roles, rest, d.cfg.prefix(CategoryColor), d.cfg.StableNames)

	byLiteral := make(map[string]*ColorCandidate, len(palette))
	for _, c := range palette {
		byLiteral[c.Literal] = c
	}

	tokens := make([]Token, 0, len(names))
	for _, role := range roleOrder {
		lit, ok := roles[role]
		if !ok {
			continue
		}
		tokens = append(tokens, Token{Name: names[lit], Literal: lit, Count: byLiteral[lit].Count})
	}
	for _, c := range rest {
		tokens = append(tokens, Token{Name: names[c.Literal], Literal: c.Literal, Count: c.Count})
	}
	return roles, tokens, names
}

// buildCategory sorts one table by descending count with the category's
// tie-breaker, then assigns names in that order.
func (d *Distiller) buildCategory(t *table, cat Category, tie func(a, b *Candidate) bool) ([]Token, map[string]string) {
	cands := t.candidates()
	sortCandidates(cands, tie)
	names := assignNames(cands, d.cfg.prefix(cat), d.cfg.StableNames)

	tokens := make([]Token, 0, len(cands))
	for _, c := range cands {
		tokens = append(tokens, Token{Name: names[c.Literal], Literal: c.Literal, Count: c.Count})
	}
	return tokens, names
}

// TokenDocument renders the default and dark scopes. Colors pass through the
// dark-variant transform in the dark block; every other category is
// theme-invariant and is duplicated verbatim.
func (r *Result) TokenDocument() string {
	var b strings.Builder
	b.WriteString("/* generated by cssdistill */\n")

	b.WriteString(":root {\n")
	r.writeScope(&b, false)
	b.WriteString("}\n\n")

	b.WriteString("[data-theme=\"dark\"] {\n")
	r.writeScope(&b, true)
	b.WriteString("}\n")
	return b.String()
}

func (r *Result) writeScope(b *strings.Builder, dark bool) {
	for _, cat := range allCategories {
		for _, tok := range r.Tokens[cat] {
			lit := tok.Literal
			if dark && cat == CategoryColor {
				lit = ParseColor(lit).DarkVariant(r.dark).String()
			}
			fmt.Fprintf(b, "  --%s: %s;\n", tok.Name, lit)
		}
	}
}

// Rewrite returns the token document followed by the source text with every
// mapped literal substituted by its var() reference.
func (r *Result) Rewrite() string {
	return r.TokenDocument() + "\n" + rewriteText(r.converted, r.names)
}

// ConvertedText returns the stylesheet after unit conversion only.
func (r *Result) ConvertedText() string {
	return r.converted
}

// TokenCount sums tokens across all categories.
func (r *Result) TokenCount() int {
	n := 0
	for _, toks := range r.Tokens {
		n += len(toks)
	}
	return n
}
