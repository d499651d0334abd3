// Package pathmatch matches paths against find -path style globs.
//
// Unlike filepath.Match, wildcards cross directory separators:
//   - * matches any run of characters, / included
//   - ? matches exactly one character
//   - [...] and [!...] match one character from (or outside) a set
//   - \ escapes the next character
//
// An empty Matcher matches nothing; callers decide what "no patterns" means.
package pathmatch

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"sync"
)

// Match reports whether name matches pattern.
func Match(pattern, name string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(name), nil
}

// Matcher holds a set of compiled patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns into a reusable Matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, p := range patterns {
		re, err := compile(strings.TrimPrefix(p, "./"))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}

		matcher.patterns = append(matcher.patterns, re)
	}

	return matcher, nil
}

// Empty reports whether the matcher holds no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// MatchAny reports whether name matches at least one pattern.
func (m *Matcher) MatchAny(name string) bool {
	if m == nil {
		return false
	}

	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}

	return false
}

// MatchBase reports whether the final element of a slash-separated name
// matches at least one pattern.
func (m *Matcher) MatchBase(name string) bool {
	return m.MatchAny(path.Base(name))
}

var cache sync.Map //nolint:gochecknoglobals // compiled patterns are immutable

func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := cache.Load(pattern); ok {
		re, _ := v.(*regexp.Regexp) //nolint:errcheck // only *regexp.Regexp is stored

		return re, nil
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	cache.Store(pattern, re)

	return re, nil
}

// translate rewrites a glob into an anchored regular expression.
func translate(pattern string) (string, error) {
	var out strings.Builder

	out.WriteByte('^')

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			out.WriteString(".*")
		case '?':
			out.WriteByte('.')
		case '\\':
			if i+1 == len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			i++
			out.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		case '[':
			end := classEnd(pattern, i)
			if end < 0 {
				return "", fmt.Errorf("unclosed character class in pattern %q", pattern)
			}

			class := pattern[i : end+1]
			if strings.HasPrefix(class, "[!") && len(class) > 2 {
				class = "[^" + class[2:]
			}

			out.WriteString(class)

			i = end
		default:
			out.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}

	out.WriteByte('$')

	return out.String(), nil
}

// classEnd returns the index of the ] closing the class opened at start, or -1.
// A ] directly after [ or [! is a literal member.
func classEnd(pattern string, start int) int {
	i := start + 1

	if i < len(pattern) && pattern[i] == '!' {
		i++
	}

	if i < len(pattern) && pattern[i] == ']' {
		i++
	}

	if idx := strings.IndexByte(pattern[i:], ']'); idx >= 0 {
		return i + idx
	}

	return -1
}
