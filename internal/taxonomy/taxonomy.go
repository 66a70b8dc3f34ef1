// Package taxonomy provides the curated catalog of skills, their categories and
// the lowercase aliases used to detect them in resume text.
package taxonomy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// SkillEntry is a single canonical skill and the aliases that identify it.
type SkillEntry struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

// Category groups skill entries under a stable machine name.
type Category struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Entries []SkillEntry `json:"entries"`
}

// Taxonomy is an immutable, ordered set of categories. It is safe for
// concurrent use because nothing mutates it after New returns.
type Taxonomy struct {
	categories  []Category
	byName      map[string]SkillEntry
	byAlias     map[string]SkillEntry
	fingerprint string
}

// New validates the given categories and builds a Taxonomy from them.
// The input is copied; later changes to it do not affect the result.
func New(categories []Category) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		byName:     make(map[string]SkillEntry),
		byAlias:    make(map[string]SkillEntry),
	}

	seenCategories := make(map[string]bool, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, &DefinitionError{Message: "category name is empty"}
		}
		if seenCategories[name] {
			return nil, &DefinitionError{Category: name, Message: "duplicate category"}
		}
		seenCategories[name] = true

		label := c.Label
		if label == "" {
			label = labelFor(name)
		}

		cat := Category{Name: name, Label: label, Entries: make([]SkillEntry, 0, len(c.Entries))}
		for _, e := range c.Entries {
			entry, err := buildEntry(name, e)
			if err != nil {
				return nil, err
			}
			if _, dup := t.byName[entry.Name]; dup {
				return nil, &DefinitionError{Category: name, Skill: entry.Name, Message: "duplicate canonical name"}
			}
			cat.Entries = append(cat.Entries, entry)
			t.index(entry)
		}
		t.categories = append(t.categories, cat)
	}

	t.fingerprint = t.digest()
	return t, nil
}

// digest hashes categories, canonical names and aliases in declaration order.
func (t *Taxonomy) digest() string {
	h := sha256.New()
	for _, c := range t.categories {
		for _, e := range c.Entries {
			fmt.Fprintf(h, "%s\x1f%s\x1f%s\n", c.Name, e.Name, strings.Join(e.Aliases, "\x1f"))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func buildEntry(category string, e SkillEntry) (SkillEntry, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return SkillEntry{}, &DefinitionError{Category: category, Message: "skill name is empty"}
	}
	if len(e.Aliases) == 0 {
		return SkillEntry{}, &DefinitionError{Category: category, Skill: name, Message: "skill has no aliases"}
	}

	aliases := make([]string, 0, len(e.Aliases))
	seen := make(map[string]bool, len(e.Aliases))
	for _, a := range e.Aliases {
		if strings.TrimSpace(a) == "" || a != strings.TrimSpace(a) {
			return SkillEntry{}, &DefinitionError{Category: category, Skill: name, Alias: a, Message: "alias is empty or padded"}
		}
		if a != strings.ToLower(a) {
			return SkillEntry{}, &DefinitionError{Category: category, Skill: name, Alias: a, Message: "alias is not lowercase"}
		}
		if seen[a] {
			return SkillEntry{}, &DefinitionError{Category: category, Skill: name, Alias: a, Message: "duplicate alias"}
		}
		seen[a] = true
		aliases = append(aliases, a)
	}

	return SkillEntry{Name: name, Category: category, Aliases: aliases}, nil
}

func (t *Taxonomy) index(e SkillEntry) {
	t.byName[e.Name] = e
	// The first entry to claim an alias keeps it for Lookup.
	if _, ok := t.byAlias[strings.ToLower(e.Name)]; !ok {
		t.byAlias[strings.ToLower(e.Name)] = e
	}
	for _, a := range e.Aliases {
		if _, ok := t.byAlias[a]; !ok {
			t.byAlias[a] = e
		}
	}
}

// Categories returns a copy of all categories in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = copyCategory(c)
	}
	return out
}

// CategoryNames returns category names in declaration order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Category returns a copy of the named category.
func (t *Taxonomy) Category(name string) (Category, bool) {
	for _, c := range t.categories {
		if c.Name == name {
			return copyCategory(c), true
		}
	}
	return Category{}, false
}

// Entries returns every skill entry in category order, then entry order.
func (t *Taxonomy) Entries() []SkillEntry {
	out := make([]SkillEntry, 0, len(t.byName))
	for _, c := range t.categories {
		for _, e := range c.Entries {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

// CategoryOf returns the category owning the given canonical name.
func (t *Taxonomy) CategoryOf(canonical string) (string, bool) {
	e, ok := t.byName[canonical]
	if !ok {
		return "", false
	}
	return e.Category, true
}

// Lookup resolves a free-form name, matched case-insensitively against
// canonical names and aliases, to its skill entry.
func (t *Taxonomy) Lookup(name string) (SkillEntry, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if key == "" {
		return SkillEntry{}, false
	}
	e, ok := t.byAlias[key]
	if !ok {
		return SkillEntry{}, false
	}
	return copyEntry(e), true
}

// Fingerprint is a digest of the catalog contents. Taxonomies with the same
// categories, skills and aliases share a fingerprint.
func (t *Taxonomy) Fingerprint() string {
	return t.fingerprint
}

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int {
	return len(t.byName)
}

func copyEntry(e SkillEntry) SkillEntry {
	e.Aliases = append([]string(nil), e.Aliases...)
	return e
}

func copyCategory(c Category) Category {
	entries := make([]SkillEntry, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = copyEntry(e)
	}
	c.Entries = entries
	return c
}

// labelFor turns "data_science_ml" into "Data Science Ml".
func labelFor(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
