package cssdistill

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// namer hands out collision-free names within one category.
type namer struct {
	taken map[string]bool
}

func newNamer() *namer {
	return &namer{taken: make(map[string]bool)}
}

// claim returns base if free, otherwise base-2, base-3, ... until unique.
func (n *namer) claim(base string) string {
	name := base
	for i := 2; n.taken[name]; i++ {
		name = base + "-" + strconv.Itoa(i)
	}
	n.taken[name] = true
	return name
}

// stableSuffix hashes a literal into an 8-hex-char suffix that survives
// reordering between runs.
func stableSuffix(literal string) string {
	h := fnv.New32a()
	h.Write([]byte(literal))
	return fmt.Sprintf("%08x", h.Sum32())
}

// assignNames maps each candidate literal to a token name, in slice order.
// Sequential mode numbers from 1; stable mode hashes the literal text.
func assignNames(ordered []*Candidate, prefix string, stable bool) map[string]string {
	n := newNamer()
	names := make(map[string]string, len(ordered))
	for i, c := range ordered {
		base := prefix + "-" + strconv.Itoa(i+1)
		if stable {
			base = prefix + "-" + stableSuffix(c.Literal)
		}
		names[c.Literal] = n.claim(base)
	}
	return names
}

// assignColorNames names role colors by their role and the numbered
// remainder like any other category. Role names stay semantic in both
// naming modes; only the remainder is hashed.
func assignColorNames(roles map[Role]string, numbered []*ColorCandidate, prefix string, stable bool) map[string]string {
	n := newNamer()
	names := make(map[string]string, len(roles)+len(numbered))
	for _, role := range roleOrder {
		lit, ok := roles[role]
		if !ok {
			continue
		}
		names[lit] = n.claim(prefix + "-" + roleShortNames[role])
	}
	for i, c := range numbered {
		base := prefix + "-" + strconv.Itoa(i+1)
		if stable {
			base = prefix + "-" + stableSuffix(c.Literal)
		}
		names[c.Literal] = n.claim(base)
	}
	return names
}

// sortCandidates orders by descending count, breaking ties with the given
// comparison. The sort is stable so equal candidates keep first-seen order.
func sortCandidates(cands []*Candidate, tie func(a, b *Candidate) bool) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Count != cands[j].Count {
			return cands[i].Count > cands[j].Count
		}
		return tie(cands[i], cands[j])
	})
}

// byPixelDesc breaks count ties by descending pixel-equivalent size.
func byPixelDesc(cfg Config) func(a, b *Candidate) bool {
	return func(a, b *Candidate) bool {
		return pixelEquivalent(a.Literal, cfg) > pixelEquivalent(b.Literal, cfg)
	}
}

// byNumericDesc breaks count ties by a descending derived numeric value.
func byNumericDesc(value func(string) float64) func(a, b *Candidate) bool {
	return func(a, b *Candidate) bool {
		return value(a.Literal) > value(b.Literal)
	}
}

// byMsAsc breaks count ties by ascending duration.
func byMsAsc(a, b *Candidate) bool {
	return a.Ms < b.Ms
}

// byLiteralAsc breaks count ties lexicographically.
func byLiteralAsc(a, b *Candidate) bool {
	return a.Literal < b.Literal
}

// lineHeightValue derives a comparable number from a line-height literal:
// unitless values as-is, lengths approximated in em, normal as 1.2.
func lineHeightValue(literal string, cfg Config) float64 {
	v := strings.TrimSpace(literal)
	if strings.EqualFold(v, "normal") {
		return 1.2
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if px := pixelEquivalent(v, cfg); px != 0 {
		return px / cfg.RootPx
	}
	return 0
}

// fontWeightValue derives a comparable number from a font-weight literal.
// Keyword weights map onto the numeric scale; lighter and bolder have no
// absolute value and sit mid-scale as a tie-breaking fallback.
func fontWeightValue(literal string) float64 {
	switch strings.ToLower(strings.TrimSpace(literal)) {
	case "normal":
		return 400
	case "bold":
		return 700
	case "lighter", "bolder":
		return 500
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(literal), 64); err == nil {
		return f
	}
	return 0
}
