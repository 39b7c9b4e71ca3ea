package types

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IntrinsicStringOp names one of the four built-in string-manipulation
// utility types.
type IntrinsicStringOp int

const (
	IntrinsicUppercase IntrinsicStringOp = iota
	IntrinsicLowercase
	IntrinsicCapitalize
	IntrinsicUncapitalize
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// ApplyIntrinsicString evaluates one of the Uppercase<S>/Lowercase<S>/
// Capitalize<S>/Uncapitalize<S> intrinsics against a literal string
// operand, producing the resulting literal type. Grounded on
// golang.org/x/text/cases for locale-aware casing instead of a naive
// strings.ToUpper, matching the rest of the pack's preference for the
// x/text casing package over ad hoc byte manipulation.
func ApplyIntrinsicString(op IntrinsicStringOp, s string) string {
	switch op {
	case IntrinsicUppercase:
		return upperCaser.String(s)
	case IntrinsicLowercase:
		return lowerCaser.String(s)
	case IntrinsicCapitalize:
		if s == "" {
			return s
		}
		first := titleCaser.String(s[:1])
		return first + s[1:]
	case IntrinsicUncapitalize:
		if s == "" {
			return s
		}
		return strings.ToLower(s[:1]) + s[1:]
	default:
		return s
	}
}

// patternFor builds a regex that matches any string a TemplateLiteral
// could produce, substituting each type hole with a wildcard governed
// by its constituent kind so that literal-type inference over template
// literals (`type Greeting = \`hello ${Name}\``) can pattern-match a
// candidate string back into its named captures.
func patternFor(t *TemplateLiteral) string {
	var sb strings.Builder
	sb.WriteString("^")
	for i, q := range t.Quasis {
		sb.WriteString(regexp.QuoteMeta(q))
		if i < len(t.Types) {
			sb.WriteString(holePattern(t.Types[i]))
		}
	}
	sb.WriteString("$")
	return sb.String()
}

func holePattern(t Type) string {
	switch Resolve(t).Kind() {
	case KindNumber:
		return `(-?\d+(?:\.\d+)?)`
	case KindBoolean:
		return `(true|false)`
	default:
		return `([\s\S]*)`
	}
}

// Matches reports whether candidate conforms to the shape described by
// a template-literal type, using regexp2 (the pack's chosen backtracking
// engine, not Go's RE2) because the generated alternation can include
// backreference-shaped constructs once union holes are expanded.
func Matches(t *TemplateLiteral, candidate string) (bool, error) {
	re, err := regexp2.Compile(patternFor(t), regexp2.None)
	if err != nil {
		return false, err
	}
	m, err := re.MatchString(candidate)
	if err != nil {
		return false, err
	}
	return m, nil
}

// ExpandTemplateUnion distributes a TemplateLiteral whose holes are
// themselves unions into the full set of literal-string combinations,
// e.g. `` `on${"Click"|"Hover"}` `` becomes the union of "onClick" and
// "onHover" (string-union distribution over template literal types).
func ExpandTemplateUnion(t *TemplateLiteral) []string {
	results := []string{""}
	for i, q := range t.Quasis {
		results = appendQuasi(results, q)
		if i < len(t.Types) {
			alts := literalAlternatives(t.Types[i])
			next := make([]string, 0, len(results)*len(alts))
			for _, r := range results {
				for _, a := range alts {
					next = append(next, r+a)
				}
			}
			results = next
		}
	}
	return results
}

func appendQuasi(results []string, q string) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r + q
	}
	return out
}

func literalAlternatives(t Type) []string {
	switch v := Resolve(t).(type) {
	case *Literal:
		if v.Value.IsString {
			return []string{v.Value.Str}
		}
		return []string{v.String()}
	case *Union:
		var out []string
		for _, m := range v.Members {
			out = append(out, literalAlternatives(m)...)
		}
		return out
	default:
		return []string{"${string}"}
	}
}
