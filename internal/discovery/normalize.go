package discovery

import (
	"regexp"
	"strings"
)

// Wildcard replaces every interpolated value in a test-name pattern
const Wildcard = "(.*?)"

// printfVerbs are the placeholders test.each/describe.each substitute
const printfVerbs = "sdifjoOp#"

// NormalizeTestName turns a raw block name into a regex for Jest's -t filter.
// Interpolation placeholders (%s and the other printf verbs, ${expr} and
// $variable) become Wildcard, %% becomes a literal percent sign, and every
// other character is regex-escaped.
func NormalizeTestName(name string) string {
	var out, literal strings.Builder
	flush := func() {
		out.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}
	placeholder := func() {
		flush()
		out.WriteString(Wildcard)
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '%' && i+1 < len(name) && name[i+1] == '%':
			literal.WriteByte('%')
			i++
		case c == '%' && i+1 < len(name) && strings.IndexByte(printfVerbs, name[i+1]) >= 0:
			placeholder()
			i++
		case c == '$' && i+1 < len(name) && name[i+1] == '{':
			placeholder()
			i = skipInterpolation(name, i+2) - 1
		case c == '$' && i+1 < len(name) && isIdentStart(name[i+1]) && name[i+1] != '$':
			placeholder()
			i = skipKeyPath(name, i+1) - 1
		default:
			literal.WriteByte(c)
		}
	}
	flush()
	return out.String()
}

// skipInterpolation returns the index just past the brace closing a ${ that
// ends right before from. Unbalanced input consumes the rest of the name.
func skipInterpolation(name string, from int) int {
	depth := 1
	for i := from; i < len(name); i++ {
		switch name[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(name)
}

// skipKeyPath returns the index past a `$a.b.c` style table reference
func skipKeyPath(name string, from int) int {
	i := from
	for i < len(name) {
		for i < len(name) && isIdentPart(name[i]) && name[i] != '$' {
			i++
		}
		if i+1 < len(name) && name[i] == '.' && isIdentStart(name[i+1]) && name[i+1] != '$' {
			i++
			continue
		}
		return i
	}
	return i
}
