package cssdistill

import (
	"regexp"
	"sort"
	"strings"
)

// nameMaps carries every category's literal -> token name table.
type nameMaps struct {
	colors      map[string]string
	spacing     map[string]string
	borders     map[string]string
	radii       map[string]string
	shadows     map[string]string
	durations   map[string]string
	easings     map[string]string
	families    map[string]string
	sizes       map[string]string
	lineHeights map[string]string
	weights     map[string]string
	tracking    map[string]string
}

var fontSlashRe = regexp.MustCompile(`^(\s*/\s*)([^\s;]+)`)

// rewriteText substitutes token references into the (already converted)
// source text. Exact-match categories run first so their whole values are
// still pristine; colors run last and globally.
func rewriteText(text string, names nameMaps) string {
	out := text
	out = rewriteDeclarations(out, isRadiusProperty, exactRawRewriter(names.radii))
	out = rewriteDeclarations(out, isShadowProperty, exactRawRewriter(names.shadows))
	out = rewriteDeclarations(out, isSpacingProperty, replacerRewriter(names.spacing))
	out = rewriteDeclarations(out, isBorderProperty, replacerRewriter(names.borders))
	out = rewriteDeclarations(out, isMotionProperty, replacerRewriter(names.durations))
	out = rewriteDeclarations(out, isMotionProperty, replacerRewriter(names.easings))
	out = rewriteDeclarations(out, propIs("font-size"), wholeTokenRewriter(names.sizes))
	out = rewriteDeclarations(out, propIs("line-height"), wholeTokenRewriter(names.lineHeights))
	out = rewriteDeclarations(out, propIs("letter-spacing"), wholeTokenRewriter(names.tracking))
	out = rewriteDeclarations(out, propIs("font-weight"), wholeTokenRewriter(names.weights))
	out = rewriteDeclarations(out, propIs("font-family"), familyRewriter(names.families))
	out = rewriteDeclarations(out, propIs("font"), shorthandRewriter(names))
	out = replaceColors(out, names.colors)
	return out
}

func isRadiusProperty(p string) bool {
	return strings.Contains(p, "radius")
}

func isShadowProperty(p string) bool {
	return p == "box-shadow"
}

func propIs(name string) func(string) bool {
	return func(p string) bool { return p == name }
}

// spliceBodies rebuilds text with each rule body transformed and everything
// between rules untouched.
func spliceBodies(text string, transform func(string) string) string {
	var out strings.Builder
	last := 0
	for rule := range Rules(text) {
		out.WriteString(text[last:rule.BodyStart])
		out.WriteString(transform(rule.Body))
		last = rule.BodyEnd
	}
	out.WriteString(text[last:])
	return out.String()
}

// rewriteDeclarations applies a value rewriter to every declaration whose
// property matches, keeping separators and unmatched segments verbatim.
func rewriteDeclarations(text string, propMatch func(string) bool, rewriteValue func(string) string) string {
	return spliceBodies(text, func(body string) string {
		segments := strings.Split(body, ";")
		changed := false
		for i, seg := range segments {
			name, value, ok := strings.Cut(seg, ":")
			if !ok {
				continue
			}
			if !propMatch(strings.ToLower(strings.TrimSpace(name))) {
				continue
			}
			if nv := rewriteValue(value); nv != value {
				segments[i] = name + ":" + nv
				changed = true
			}
		}
		if !changed {
			return body
		}
		return strings.Join(segments, ";")
	})
}

// sortedLiterals orders map keys longest first so no literal can match
// inside a longer sibling.
func sortedLiterals(names map[string]string) []string {
	lits := make([]string, 0, len(names))
	for lit := range names {
		lits = append(lits, lit)
	}
	sort.Slice(lits, func(i, j int) bool {
		if len(lits[i]) != len(lits[j]) {
			return len(lits[i]) > len(lits[j])
		}
		return lits[i] < lits[j]
	})
	return lits
}

// literalReplacer builds a single-pass replacer from literals to var()
// references. The single pass never rescans substituted output, so a token
// name containing another literal cannot cascade.
func literalReplacer(names map[string]string) *strings.Replacer {
	if len(names) == 0 {
		return nil
	}
	lits := sortedLiterals(names)
	pairs := make([]string, 0, 2*len(lits))
	for _, lit := range lits {
		pairs = append(pairs, lit, "var(--"+names[lit]+")")
	}
	return strings.NewReplacer(pairs...)
}

func replacerRewriter(names map[string]string) func(string) string {
	r := literalReplacer(names)
	return func(value string) string {
		if r == nil {
			return value
		}
		return r.Replace(value)
	}
}

// exactRawRewriter substitutes only when the trimmed raw value equals a
// candidate key. A value whose whitespace differs from the normalized key
// stays unreplaced.
func exactRawRewriter(names map[string]string) func(string) string {
	return func(value string) string {
		name, ok := names[strings.TrimSpace(value)]
		if !ok {
			return value
		}
		return leadingSpace(value) + "var(--" + name + ")"
	}
}

// familyRewriter substitutes a font-family value only on an exact match
// after list normalization.
func familyRewriter(names map[string]string) func(string) string {
	return func(value string) string {
		name, ok := names[normalizeFontFamily(value)]
		if !ok {
			return value
		}
		return leadingSpace(value) + "var(--" + name + ")"
	}
}

func leadingSpace(value string) string {
	return value[:len(value)-len(strings.TrimLeft(value, " \t\r\n"))]
}

// adjacentWordByte reports bytes that glue onto a token: replacing next to
// one would split an identifier or a larger number.
func adjacentWordByte(b byte) bool {
	return isWordByte(b) || b == '-'
}

// replaceWholeTokens substitutes literals only where neither neighbor is a
// word or hyphen byte. Longest literals win; substituted output is skipped,
// not rescanned.
func replaceWholeTokens(s string, lits []string, names map[string]string) string {
	if len(lits) == 0 {
		return s
	}
	var out strings.Builder
	i := 0
	for i < len(s) {
		replaced := false
		for _, lit := range lits {
			if lit == "" || !strings.HasPrefix(s[i:], lit) {
				continue
			}
			end := i + len(lit)
			if i > 0 && adjacentWordByte(s[i-1]) {
				continue
			}
			if end < len(s) && adjacentWordByte(s[end]) {
				continue
			}
			out.WriteString("var(--")
			out.WriteString(names[lit])
			out.WriteString(")")
			i = end
			replaced = true
			break
		}
		if !replaced {
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

func wholeTokenRewriter(names map[string]string) func(string) string {
	lits := sortedLiterals(names)
	return func(value string) string {
		return replaceWholeTokens(value, lits, names)
	}
}

// shorthandRewriter handles the font shorthand in three independent steps:
// weight by whole token, then the size[/line-height] pair, then the family
// tail on an exact normalized match. A shorthand without a recognized size
// keeps its tail untouched.
func shorthandRewriter(names nameMaps) func(string) string {
	weightLits := sortedLiterals(names.weights)
	sizeLits := sortedLiterals(names.sizes)
	return func(value string) string {
		v := replaceWholeTokens(value, weightLits, names.weights)
		return rewriteShorthandSize(v, sizeLits, names)
	}
}

// rewriteShorthandSize finds the first whole-token size literal, replaces
// it, optionally replaces a line-height token after the slash separator,
// and then tries the family tail.
func rewriteShorthandSize(v string, sizeLits []string, names nameMaps) string {
	for i := 0; i < len(v); i++ {
		for _, lit := range sizeLits {
			if lit == "" || !strings.HasPrefix(v[i:], lit) {
				continue
			}
			end := i + len(lit)
			if i > 0 && adjacentWordByte(v[i-1]) {
				continue
			}
			if end < len(v) && adjacentWordByte(v[end]) {
				continue
			}

			var out strings.Builder
			out.WriteString(v[:i])
			out.WriteString("var(--")
			out.WriteString(names.sizes[lit])
			out.WriteString(")")

			rest := v[end:]
			if m := fontSlashRe.FindStringSubmatch(rest); m != nil {
				out.WriteString(m[1])
				if name, ok := names.lineHeights[m[2]]; ok {
					out.WriteString("var(--")
					out.WriteString(name)
					out.WriteString(")")
				} else {
					out.WriteString(m[2])
				}
				rest = rest[len(m[0]):]
			}

			if trimmed := strings.TrimSpace(rest); trimmed != "" {
				if name, ok := names.families[normalizeFontFamily(trimmed)]; ok {
					out.WriteString(leadingSpace(rest))
					out.WriteString("var(--")
					out.WriteString(name)
					out.WriteString(")")
					return out.String()
				}
			}
			out.WriteString(rest)
			return out.String()
		}
	}
	return v
}

// replaceColors substitutes color literals anywhere in the text, not just
// in matching property values.
func replaceColors(text string, names map[string]string) string {
	r := literalReplacer(names)
	if r == nil {
		return text
	}
	return r.Replace(text)
}
