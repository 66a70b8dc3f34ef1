package skills

import (
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

// CategorySummary is one category's share of a skill list, in display form.
type CategorySummary struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Skills   []string `json:"skills"`
}

// Categorize groups canonical skill names by their owning category. Names not
// in the taxonomy are dropped, input order is kept within each bucket and
// repeated names appear once. The result is never nil.
func Categorize(tax *taxonomy.Taxonomy, skills []string) map[string][]string {
	if tax == nil {
		tax = taxonomy.Default()
	}

	out := make(map[string][]string)
	seen := make(map[string]bool, len(skills))
	for _, name := range skills {
		if seen[name] {
			continue
		}
		category, ok := tax.CategoryOf(name)
		if !ok {
			continue
		}
		seen[name] = true
		out[category] = append(out[category], name)
	}
	return out
}

// Summarize is Categorize with the buckets ordered the way the taxonomy
// declares its categories. Empty categories are omitted.
func Summarize(tax *taxonomy.Taxonomy, skills []string) []CategorySummary {
	if tax == nil {
		tax = taxonomy.Default()
	}

	grouped := Categorize(tax, skills)
	out := make([]CategorySummary, 0, len(grouped))
	for _, c := range tax.Categories() {
		names, ok := grouped[c.Name]
		if !ok {
			continue
		}
		out = append(out, CategorySummary{Category: c.Name, Label: c.Label, Skills: names})
	}
	return out
}
