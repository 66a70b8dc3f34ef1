// Package skills detects canonical skills in resume text and groups them by
// taxonomy category.
package skills

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

// Matcher finds taxonomy skills in free-form text. It holds no mutable state
// and may be shared between goroutines.
type Matcher struct {
	tax     *taxonomy.Taxonomy
	entries []taxonomy.SkillEntry
}

// NewMatcher creates a Matcher over tax. A nil taxonomy selects taxonomy.Default().
func NewMatcher(tax *taxonomy.Taxonomy) *Matcher {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Matcher{tax: tax, entries: tax.Entries()}
}

// Taxonomy returns the taxonomy the matcher was built with.
func (m *Matcher) Taxonomy() *taxonomy.Taxonomy {
	return m.tax
}

// FindSkills returns the sorted canonical names of every skill with at least
// one alias occurring in text as a whole token. The result is never nil.
func (m *Matcher) FindSkills(text string) []string {
	found := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for _, e := range m.entries {
		for _, alias := range e.Aliases {
			if containsToken(lower, alias) {
				found = append(found, e.Name)
				break
			}
		}
	}

	sort.Strings(found)
	return found
}

// containsToken reports whether alias occurs in text with a token boundary on
// both sides. Every occurrence is tried, so a rejected sub-word hit early in
// the text does not hide a valid one later.
func containsToken(text, alias string) bool {
	if alias == "" {
		return false
	}
	for offset := 0; offset+len(alias) <= len(text); {
		i := strings.Index(text[offset:], alias)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(alias)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// boundaryBefore reports whether the token starting at i is not glued to a
// preceding word. "x.js" counts as glued; "(.js" does not.
func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, size := utf8.DecodeLastRuneInString(text[:i])
	if isWordRune(r) {
		return false
	}
	if r == '.' && i-size > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:i-size])
		return !isWordRune(prev)
	}
	return true
}

// boundaryAfter mirrors boundaryBefore for the token ending at end, so a
// sentence-final period still counts as a boundary.
func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[end:])
	if isWordRune(r) {
		return false
	}
	if r == '.' && end+size < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end+size:])
		return !isWordRune(next)
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
