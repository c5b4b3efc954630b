package cssdistill

import (
	"math"
	"sort"
	"strings"
)

// Role is a fixed semantic purpose a color token can fill.
type Role string

// Color roles, in assignment order.
const (
	RoleForeground Role = "foreground"
	RoleBackground Role = "background"
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleAccent     Role = "accent"
	RoleBorder     Role = "border"
	RoleSurface1   Role = "surface-1"
	RoleSurface2   Role = "surface-2"
	RoleOutline    Role = "outline"
	RoleMuted      Role = "muted"
	RoleDisabled   Role = "disabled"
)

// roleOrder fixes both assignment and emission order.
var roleOrder = []Role{
	RoleForeground,
	RoleBackground,
	RolePrimary,
	RoleSecondary,
	RoleAccent,
	RoleBorder,
	RoleSurface1,
	RoleSurface2,
	RoleOutline,
	RoleMuted,
	RoleDisabled,
}

// AllRoles returns every role in assignment order.
func AllRoles() []Role {
	return append([]Role(nil), roleOrder...)
}

// roleShortNames map roles to their token name suffixes.
var roleShortNames = map[Role]string{
	RoleForeground: "fg",
	RoleBackground: "bg",
	RolePrimary:    "primary",
	RoleSecondary:  "secondary",
	RoleAccent:     "accent",
	RoleBorder:     "border",
	RoleSurface1:   "surface-1",
	RoleSurface2:   "surface-2",
	RoleOutline:    "outline",
	RoleMuted:      "muted",
	RoleDisabled:   "disabled",
}

// Saturation pools and the distinctness gate. Colors between the two
// saturation thresholds join only pools that do not filter on saturation.
const (
	grayishMaxSaturation   = 0.10
	saturatedMinSaturation = 0.22
	distinctMinDistance    = 0.18
)

type roleScorer func(*ColorCandidate) float64

// assignRoles claims a color per role in the fixed order, then numbers the
// remainder by descending count and ascending literal. A literal claimed by
// one role never serves another and never reappears in the remainder.
func assignRoles(palette []*ColorCandidate) (map[Role]string, []*ColorCandidate) {
	used := make(map[string]bool)
	roles := make(map[Role]string)
	byLiteral := make(map[string]*ColorCandidate, len(palette))
	for _, c := range palette {
		byLiteral[c.Literal] = c
	}

	grayish := func(c *ColorCandidate) bool { return c.HSL.S <= grayishMaxSaturation }
	saturated := func(c *ColorCandidate) bool { return c.HSL.S >= saturatedMinSaturation }

	// pickBest scans the palette in first-seen order so score ties keep the
	// earliest candidate.
	pickBest := func(eligible func(*ColorCandidate) bool, score roleScorer) (*ColorCandidate, bool) {
		var best *ColorCandidate
		bestScore := math.Inf(-1)
		for _, c := range palette {
			if used[c.Literal] {
				continue
			}
			if eligible != nil && !eligible(c) {
				continue
			}
			if s := score(c); s > bestScore {
				best, bestScore = c, s
			}
		}
		return best, best != nil
	}

	assign := func(role Role, eligible func(*ColorCandidate) bool, score roleScorer) {
		if c, ok := pickBest(eligible, score); ok {
			roles[role] = c.Literal
			used[c.Literal] = true
		}
	}

	assignWithFallback := func(role Role, eligible func(*ColorCandidate) bool, score, fallback roleScorer) {
		if c, ok := pickBest(eligible, score); ok {
			roles[role] = c.Literal
			used[c.Literal] = true
			return
		}
		assign(role, nil, fallback)
	}

	distinctFrom := func(assigned ...Role) func(*ColorCandidate) bool {
		return func(c *ColorCandidate) bool {
			if !saturated(c) {
				return false
			}
			for _, role := range assigned {
				prev, ok := byLiteral[roles[role]]
				if !ok {
					continue
				}
				if colorDistance(c.HSL, prev.HSL) <= distinctMinDistance {
					return false
				}
			}
			return true
		}
	}

	assignWithFallback(RoleForeground, grayish, scoreForeground, scoreForeground)
	assignWithFallback(RoleBackground, grayish, scoreBackground, scoreBackground)
	assign(RolePrimary, saturated, scorePrimary)
	assign(RoleSecondary, distinctFrom(RolePrimary), scorePrimary)
	assign(RoleAccent, distinctFrom(RolePrimary, RoleSecondary), scorePrimary)
	assign(RoleBorder, grayish, scoreBorder)
	assign(RoleSurface1, grayish, scoreSurface(0.92))
	assign(RoleSurface2, grayish, scoreSurface(0.85))
	assignWithFallback(RoleOutline, saturated, scoreOutline, scoreOutline)
	assign(RoleMuted, grayish, scoreMuted)
	assignWithFallback(RoleDisabled, grayish, scoreDisabled, scoreMuted)

	var rest []*ColorCandidate
	for _, c := range palette {
		if !used[c.Literal] {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Count != rest[j].Count {
			return rest[i].Count > rest[j].Count
		}
		return rest[i].Literal < rest[j].Literal
	})

	return roles, rest
}

// Scoring formulas. The weights are frozen: they are the behavior, not
// tuning knobs.

func scoreForeground(c *ColorCandidate) float64 {
	s := 2.0*lumCloseness(c, 0.05) + 0.5*frequency(c)
	if hasProperty(c, "color") {
		s += 1.0
	}
	if selectorAny(c, isBaseSelector) {
		s += 0.75
	}
	return s
}

func scoreBackground(c *ColorCandidate) float64 {
	s := 2.0*lumCloseness(c, 0.97) + 0.5*frequency(c)
	if hasPropertyPrefix(c, "background") {
		s += 1.0
	}
	if selectorAny(c, isBaseSelector) {
		s += 0.75
	}
	return s
}

func scorePrimary(c *ColorCandidate) float64 {
	s := 1.5*lumCloseness(c, 0.5) + 0.5*frequency(c)
	if selectorAny(c, isInteractiveSelector) {
		s += 1.2
	}
	return s
}

func scoreBorder(c *ColorCandidate) float64 {
	s := 1.5*lumCloseness(c, 0.75) + 0.5*frequency(c)
	if hasPropertyPrefix(c, "border") {
		s += 1.2
	}
	return s
}

func scoreSurface(target float64) roleScorer {
	return func(c *ColorCandidate) float64 {
		s := 2.0*lumCloseness(c, target) + 0.5*frequency(c)
		if hasPropertyPrefix(c, "background") {
			s += 0.5
		}
		return s
	}
}

func scoreOutline(c *ColorCandidate) float64 {
	s := 1.0*lumCloseness(c, 0.5) + 0.5*frequency(c)
	if selectorAny(c, isFocusSelector) {
		s += 1.5
	}
	if hasPropertyPrefix(c, "outline") {
		s += 0.5
	}
	return s
}

func scoreMuted(c *ColorCandidate) float64 {
	s := 2.0*lumCloseness(c, 0.6) + 0.5*frequency(c)
	if hasProperty(c, "color") {
		s += 0.5
	}
	return s
}

func scoreDisabled(c *ColorCandidate) float64 {
	s := 2.0*lumCloseness(c, 0.7) + 0.5*frequency(c)
	if selectorAny(c, func(sel string) bool { return strings.Contains(sel, "disabled") }) {
		s += 1.0
	}
	return s
}

func lumCloseness(c *ColorCandidate, target float64) float64 {
	return 1 - math.Abs(c.Luminance-target)
}

func frequency(c *ColorCandidate) float64 {
	return math.Log1p(float64(c.Count))
}

func hasProperty(c *ColorCandidate, names ...string) bool {
	for _, name := range names {
		if c.PropertyCounts[name] > 0 {
			return true
		}
	}
	return false
}

func hasPropertyPrefix(c *ColorCandidate, prefix string) bool {
	for prop := range c.PropertyCounts {
		if strings.HasPrefix(prop, prefix) {
			return true
		}
	}
	return false
}

func selectorAny(c *ColorCandidate, pred func(string) bool) bool {
	for _, sel := range c.Selectors {
		if pred(sel) {
			return true
		}
	}
	return false
}

// isBaseSelector matches document-level selectors like body or :root.
func isBaseSelector(sel string) bool {
	for _, part := range selectorTokens(sel) {
		if part == "body" || part == "html" || part == ":root" {
			return true
		}
	}
	return false
}

// isInteractiveSelector matches links, buttons and hover states.
func isInteractiveSelector(sel string) bool {
	if strings.Contains(sel, "button") || strings.Contains(sel, ".btn") || strings.Contains(sel, ":hover") {
		return true
	}
	for _, part := range selectorTokens(sel) {
		if part == "a" || strings.HasPrefix(part, "a:") || strings.HasPrefix(part, "a.") {
			return true
		}
	}
	return false
}

func isFocusSelector(sel string) bool {
	return strings.Contains(sel, ":focus") || strings.Contains(sel, "skip-link")
}

// selectorTokens splits a selector on commas, whitespace and combinators.
func selectorTokens(sel string) []string {
	return strings.FieldsFunc(sel, func(r rune) bool {
		switch r {
		case ',', ' ', '\t', '\n', '>', '+', '~':
			return true
		}
		return false
	})
}
