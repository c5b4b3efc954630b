package cssdistill

import "fmt"

// Feature toggles one analysis category on or off.
type Feature string

// Analysis features. An empty feature list enables all of them.
const (
	FeatureColors     Feature = "colors"
	FeatureSpacing    Feature = "spacing"
	FeatureBorders    Feature = "borders"
	FeatureRadius     Feature = "radius"
	FeatureShadows    Feature = "shadows"
	FeatureMotion     Feature = "motion"
	FeatureTypography Feature = "typography"
)

// AllFeatures returns every analysis feature in emission order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureColors,
		FeatureSpacing,
		FeatureBorders,
		FeatureRadius,
		FeatureShadows,
		FeatureMotion,
		FeatureTypography,
	}
}

// DarkAlgorithm selects how dark-scope color variants are derived.
type DarkAlgorithm string

// Dark-variant strategies.
const (
	// DarkFlip inverts HSL lightness and desaturates near-neutral colors.
	DarkFlip DarkAlgorithm = "flip"
	// DarkInvert inverts RGB channels directly, avoiding pure black/white.
	DarkInvert DarkAlgorithm = "invert"
	// DarkTone lowers lightness proportionally and reduces saturation by 10%.
	DarkTone DarkAlgorithm = "tone"
)

// Category identifies one token table. Categories are finer-grained than
// features: the typography feature covers five categories, motion covers two.
type Category string

// Token categories.
const (
	CategoryColor         Category = "color"
	CategorySpacing       Category = "spacing"
	CategoryBorderWidth   Category = "border-width"
	CategoryRadius        Category = "radius"
	CategoryShadow        Category = "shadow"
	CategoryDuration      Category = "duration"
	CategoryEasing        Category = "easing"
	CategoryFontFamily    Category = "font-family"
	CategoryFontSize      Category = "font-size"
	CategoryLineHeight    Category = "line-height"
	CategoryFontWeight    Category = "font-weight"
	CategoryLetterSpacing Category = "letter-spacing"
)

// allCategories lists every category in emission order.
var allCategories = []Category{
	CategoryColor,
	CategorySpacing,
	CategoryBorderWidth,
	CategoryRadius,
	CategoryShadow,
	CategoryDuration,
	CategoryEasing,
	CategoryFontFamily,
	CategoryFontSize,
	CategoryLineHeight,
	CategoryFontWeight,
	CategoryLetterSpacing,
}

// AllCategories returns every category in emission order.
func AllCategories() []Category {
	return append([]Category(nil), allCategories...)
}

// defaultPrefixes maps each category to its default token name prefix.
var defaultPrefixes = map[Category]string{
	CategoryColor:         "color",
	CategorySpacing:       "space",
	CategoryBorderWidth:   "border-width",
	CategoryRadius:        "radius",
	CategoryShadow:        "shadow",
	CategoryDuration:      "duration",
	CategoryEasing:        "ease",
	CategoryFontFamily:    "font",
	CategoryFontSize:      "font-size",
	CategoryLineHeight:    "line-height",
	CategoryFontWeight:    "font-weight",
	CategoryLetterSpacing: "letter-spacing",
}

// Config holds distiller configuration. The zero value of any numeric field
// is replaced with its default; an empty Features list enables everything.
type Config struct {
	RootPx           float64 // pixels per 1rem
	ContextPx        float64 // em fallback when no rule-level font-size is known
	ViewportWidthPx  float64 // pixels per 100vw
	ViewportHeightPx float64 // pixels per 100vh
	PercentBasePx    float64 // pixels per 100%
	ChPx             float64 // pixels per 1ch

	Dark        DarkAlgorithm
	Features    []Feature
	Prefixes    map[Category]string // overrides merged over the defaults
	StableNames bool                // hash-derived names instead of sequential
	Conversions []ConversionPair    // applied in order, before analysis
}

// DefaultConfig returns the configuration used when fields are left zero:
// 16px root and em context, a 1920x1080 viewport, 16px percent base, 8px ch,
// the flip dark algorithm, all features, and sequential naming.
func DefaultConfig() Config {
	return Config{
		RootPx:           16,
		ContextPx:        16,
		ViewportWidthPx:  1920,
		ViewportHeightPx: 1080,
		PercentBasePx:    16,
		ChPx:             8,
		Dark:             DarkFlip,
		Features:         AllFeatures(),
		Prefixes:         map[Category]string{},
	}
}

// withDefaults fills zero fields from DefaultConfig and normalizes the
// feature list. Unknown features are dropped and reported as warnings.
func (c Config) withDefaults() (Config, []string) {
	def := DefaultConfig()
	var warnings []string

	if c.RootPx <= 0 {
		c.RootPx = def.RootPx
	}
	if c.ContextPx <= 0 {
		c.ContextPx = def.ContextPx
	}
	if c.ViewportWidthPx <= 0 {
		c.ViewportWidthPx = def.ViewportWidthPx
	}
	if c.ViewportHeightPx <= 0 {
		c.ViewportHeightPx = def.ViewportHeightPx
	}
	if c.PercentBasePx <= 0 {
		c.PercentBasePx = def.PercentBasePx
	}
	if c.ChPx <= 0 {
		c.ChPx = def.ChPx
	}
	if c.Dark == "" {
		c.Dark = DarkFlip
	}

	if len(c.Features) == 0 {
		c.Features = AllFeatures()
	} else {
		known := make([]Feature, 0, len(c.Features))
		for _, f := range c.Features {
			switch f {
			case FeatureColors, FeatureSpacing, FeatureBorders, FeatureRadius,
				FeatureShadows, FeatureMotion, FeatureTypography:
				known = append(known, f)
			default:
				warnings = append(warnings, fmt.Sprintf("unknown feature %q ignored", string(f)))
			}
		}
		c.Features = known
	}

	merged := make(map[Category]string, len(defaultPrefixes))
	for cat, p := range defaultPrefixes {
		merged[cat] = p
	}
	for cat, p := range c.Prefixes {
		if p != "" {
			merged[cat] = p
		}
	}
	c.Prefixes = merged

	return c, warnings
}

// validate rejects configuration values outside the closed enums.
func (c Config) validate() error {
	switch c.Dark {
	case DarkFlip, DarkInvert, DarkTone:
	default:
		return fmt.Errorf("unknown dark algorithm %q", string(c.Dark))
	}
	return nil
}

// enabled reports whether a feature is on.
func (c Config) enabled(f Feature) bool {
	for _, have := range c.Features {
		if have == f {
			return true
		}
	}
	return false
}

// prefix returns the token name prefix for a category.
func (c Config) prefix(cat Category) string {
	if p, ok := c.Prefixes[cat]; ok && p != "" {
		return p
	}
	return defaultPrefixes[cat]
}
