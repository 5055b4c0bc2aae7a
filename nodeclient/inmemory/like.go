package inmemory

import (
	"errors"
	"regexp"
	"strings"
)

var errTrailingEscape = errors.New("LIKE pattern must not end with escape character")

// compileILike translates an ILIKE pattern into a matcher. The percent sign
// matches any sequence, the underscore matches a single character and the
// backslash escapes the next character.
func compileILike(pattern string) (func(string) bool, error) {
	var b strings.Builder

	b.WriteString("(?is)^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		case '\\':
			if i+1 == len(runes) {
				return nil, errTrailingEscape
			}

			i++
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}

	return re.MatchString, nil
}
