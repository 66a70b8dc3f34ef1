// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/ingestion"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate cuts s to at most n runes, ending in "..." when shortened.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs where a document came from and how much text it had.
func (p *Printer) PrintDocument(doc *ingestion.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", doc.Name))
	if doc.Metadata != nil {
		sb.WriteString(fmt.Sprintf("Type:     %s\n", doc.Metadata.FileType))
		sb.WriteString(fmt.Sprintf("Hash:     %s\n", truncate(doc.Metadata.Hash, 19)))
	}
	sb.WriteString(fmt.Sprintf("Raw:      %d chars\n", len([]rune(doc.RawText))))
	sb.WriteString(fmt.Sprintf("Cleaned:  %d chars", len([]rune(doc.CleanText))))

	p.printBox("DOCUMENT", sb.String())
}

// PrintContact outputs the email and phone found, if any.
func (p *Printer) PrintContact(res extraction.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Email:    %s\n", valueOrNone(res.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s", valueOrNone(res.Phone)))

	p.printBox("CONTACT", sb.String())
}

// PrintSkills outputs the detected skills grouped by category.
func (p *Printer) PrintSkills(tax *taxonomy.Taxonomy, res extraction.Result) {
	summaries := skills.Summarize(tax, res.Skills)
	if len(summaries) == 0 {
		p.printBox("SKILLS", "No skills detected")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d skills:\n", len(res.Skills)))
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("\n%s:\n", s.Label))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(s.Skills, ", ")))
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEntries outputs the first few section entries under title.
func (p *Printer) PrintEntries(title string, entries []string) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d entries:\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(entries[i], 50)))
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the experience and education keywords present.
func (p *Printer) PrintKeywords(res extraction.Result) {
	if len(res.ExperienceKeywords) == 0 && len(res.EducationKeywords) == 0 {
		return
	}

	var sb strings.Builder
	if len(res.ExperienceKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", strings.Join(res.ExperienceKeywords, ", ")))
	}
	if len(res.EducationKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Education:  %s\n", strings.Join(res.EducationKeywords, ", ")))
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs every part of an extraction result.
func (p *Printer) PrintExtraction(tax *taxonomy.Taxonomy, res extraction.Result) {
	p.PrintContact(res)
	p.PrintSkills(tax, res)
	p.PrintKeywords(res)
	p.PrintEntries("EXPERIENCE", res.ExperienceEntries)
	p.PrintEntries("PROJECTS", res.ProjectEntries)
}

// PrintValidation outputs the outcome of schema validation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ SCHEMA VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	p.printBox("⚠ SCHEMA VALIDATION FAILED", strings.TrimSpace(err.Error()))
}

func valueOrNone(s *string) string {
	if s == nil || *s == "" {
		return "(none)"
	}
	return *s
}
