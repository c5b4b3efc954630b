package cssdistill

import (
	"iter"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is one flat `selector { body }` span. Nested rules are not modeled:
// when braces nest, the innermost flat span wins and the outer selector text
// is dropped, matching the shallow design intent.
type Rule struct {
	Selector  string // trimmed, otherwise verbatim
	Body      string // raw text between the braces
	BodyStart int    // byte offset of Body within the scanned text
	BodyEnd   int
}

// Declaration is one `property: value` occurrence within a rule.
type Declaration struct {
	Selector string
	Property string // lowercased and trimmed
	Value    string // trimmed
}

var propertyNameRe = regexp.MustCompile(`^--?[a-zA-Z][a-zA-Z0-9-]*$|^[a-zA-Z][a-zA-Z0-9-]*$`)

// Rules scans text and yields flat rules in document order. The sequence is
// restartable; each range starts a fresh scan. Malformed spans are skipped
// without error. Braces inside strings and comments do not delimit rules.
func Rules(text string) iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		lexer := css.NewLexer(parse.NewInputString(text))

		var run strings.Builder // text since the last brace
		var selector string
		haveSelector := false
		bodyStart := 0
		pos := 0

		for {
			tt, data := lexer.Next()
			if tt == css.ErrorToken {
				return
			}

			switch tt {
			case css.LeftBraceToken:
				// The run becomes the pending selector. An empty run
				// clears it: a rule needs selector text before its brace.
				if run.Len() > 0 {
					selector = run.String()
					haveSelector = true
					bodyStart = pos + len(data)
				} else {
					haveSelector = false
				}
				run.Reset()
			case css.RightBraceToken:
				if haveSelector {
					r := Rule{
						Selector:  strings.TrimSpace(selector),
						Body:      run.String(),
						BodyStart: bodyStart,
						BodyEnd:   pos,
					}
					if !yield(r) {
						return
					}
					haveSelector = false
				}
				run.Reset()
			default:
				run.Write(data)
			}
			pos += len(data)
		}
	}
}

// Declarations yields every property/value occurrence in document order.
func Declarations(text string) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for rule := range Rules(text) {
			for _, d := range rule.Declarations() {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// Declarations splits the rule body into property/value pairs. Fragments
// that do not look like `identifier: value` are dropped.
func (r Rule) Declarations() []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(r.Body, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(name))
		val := strings.TrimSpace(value)
		if prop == "" || val == "" || !propertyNameRe.MatchString(prop) {
			continue
		}
		decls = append(decls, Declaration{
			Selector: r.Selector,
			Property: prop,
			Value:    val,
		})
	}
	return decls
}
