package skills

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

// NormalizedSkill is a user-supplied skill name resolved against the taxonomy.
type NormalizedSkill struct {
	Input    string `json:"input"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Known    bool   `json:"known"`
}

// NormalizeSkillName maps a free-form skill name to its canonical form.
// Names the taxonomy does not know are whitespace-collapsed and title-cased
// unless they already carry mixed case ("gRPC" stays as typed).
func NormalizeSkillName(tax *taxonomy.Taxonomy, name string) (NormalizedSkill, bool) {
	if tax == nil {
		tax = taxonomy.Default()
	}

	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return NormalizedSkill{}, false
	}

	if entry, ok := tax.Lookup(trimmed); ok {
		return NormalizedSkill{Input: name, Name: entry.Name, Category: entry.Category, Known: true}, true
	}

	display := trimmed
	if trimmed == strings.ToLower(trimmed) || (trimmed == strings.ToUpper(trimmed) && !isAcronym(trimmed)) {
		display = cases.Title(language.English).String(trimmed)
	}
	return NormalizedSkill{Input: name, Name: display}, true
}

// Normalize resolves each name with NormalizeSkillName, dropping blanks and
// keeping the first occurrence of every resulting name.
func Normalize(tax *taxonomy.Taxonomy, names []string) []NormalizedSkill {
	out := make([]NormalizedSkill, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		ns, ok := NormalizeSkillName(tax, n)
		if !ok {
			continue
		}
		key := strings.ToLower(ns.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ns)
	}
	return out
}

// isAcronym treats short all-caps words such as "AWS" or "UML" as intentional.
func isAcronym(s string) bool {
	return !strings.Contains(s, " ") && len(s) <= 5
}
