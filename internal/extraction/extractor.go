// Package extraction turns resume text into an ExtractionResult: contact
// fields, detected skills, keyword flags and experience/project entries.
package extraction

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/Surya0265/CareerNav/internal/sections"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

const (
	// DefaultEmailPattern matches the first plausible address in the text.
	DefaultEmailPattern = `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`
	// DefaultPhonePattern is a loose "optional country code + 3-3-4 digits" grammar.
	DefaultPhonePattern = `(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`
)

// resultVersion changes whenever the extraction rules change in a way that
// alters results for the same settings.
const resultVersion = 1

// The vocabularies below are read-only after package initialization.
var (
	// experienceKeywords are reported in this order when present.
	experienceKeywords = []string{"experience", "worked", "developed", "managed", "led", "created", "built"}
	// educationKeywords are reported in this order when present.
	educationKeywords = []string{"bachelor", "master", "phd", "degree", "university", "college", "education"}

	// experienceHeaders open the experience section.
	experienceHeaders = []string{"experience", "work experience", "professional experience", "employment history"}
	// projectHeaders open the projects section.
	projectHeaders = []string{"projects", "project experience", "personal projects", "notable projects", "selected projects"}
	// stopHeaders close whichever section is being captured.
	stopHeaders = []string{
		"education", "certifications", "skills", "projects", "project experience",
		"about", "summary", "objective", "achievements", "publications",
	}
)

var emailRe = regexp.MustCompile(DefaultEmailPattern)

// Result is the structured outcome of one extraction. Collections are never
// nil so they encode as [] and {}.
type Result struct {
	Email              *string             `json:"email"`
	Phone              *string             `json:"phone"`
	Skills             []string            `json:"skills"`
	SkillsByCategory   map[string][]string `json:"skills_by_category"`
	ExperienceKeywords []string            `json:"experience_keywords"`
	EducationKeywords  []string            `json:"education_keywords"`
	ExperienceEntries  []string            `json:"experience_entries"`
	ProjectEntries     []string            `json:"project_entries"`
}

// Empty returns a Result with every field at its empty default.
func Empty() Result {
	return Result{
		Skills:             []string{},
		SkillsByCategory:   map[string][]string{},
		ExperienceKeywords: []string{},
		EducationKeywords:  []string{},
		ExperienceEntries:  []string{},
		ProjectEntries:     []string{},
	}
}

// Extractor runs the extraction. It is immutable after New and safe for
// concurrent use.
type Extractor struct {
	tax        *taxonomy.Taxonomy
	matcher    *skills.Matcher
	phoneRe    *regexp.Regexp
	maxEntries int
	matchMode  sections.MatchMode

	fingerprint string
}

// Option configures an Extractor.
type Option func(*config) error

type config struct {
	tax          *taxonomy.Taxonomy
	phonePattern string
	maxEntries   int
	matchMode    sections.MatchMode
}

// WithTaxonomy replaces the built-in skill catalog.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(c *config) error {
		if tax == nil {
			return fmt.Errorf("taxonomy is nil")
		}
		c.tax = tax
		return nil
	}
}

// WithPhonePattern replaces DefaultPhonePattern.
func WithPhonePattern(pattern string) Option {
	return func(c *config) error {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("phone pattern is empty")
		}
		c.phonePattern = pattern
		return nil
	}
}

// WithMaxEntries caps experience and project entries.
func WithMaxEntries(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max entries must be positive, got %d", n)
		}
		c.maxEntries = n
		return nil
	}
}

// WithHeaderMatch sets how section headers are recognized.
func WithHeaderMatch(mode sections.MatchMode) Option {
	return func(c *config) error {
		c.matchMode = mode
		return nil
	}
}

// New builds an Extractor. Without options it uses the built-in taxonomy,
// DefaultPhonePattern, prefix header matching and sections.DefaultMaxEntries.
func New(opts ...Option) (*Extractor, error) {
	c := config{
		phonePattern: DefaultPhonePattern,
		maxEntries:   sections.DefaultMaxEntries,
		matchMode:    sections.MatchPrefix,
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, fmt.Errorf("invalid extractor option: %w", err)
		}
	}
	if c.tax == nil {
		c.tax = taxonomy.Default()
	}

	phoneRe, err := regexp.Compile(c.phonePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile phone pattern: %w", err)
	}

	return &Extractor{
		matcher:     skills.NewMatcher(c.tax),
		phoneRe:     phoneRe,
		maxEntries:  c.maxEntries,
		matchMode:   c.matchMode,
		fingerprint: fingerprint(c),
	}, nil
}

// fingerprint hashes every setting that shapes a Result.
func fingerprint(c config) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\nentries=%d\nmatch=%s\nphone=%s\ntaxonomy=%s\n",
		resultVersion, c.maxEntries, c.matchMode, c.phonePattern, c.tax.Fingerprint())
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Fingerprint identifies the extractor's settings. Extractors with equal
// fingerprints return equal Results for equal input, so cached or stored
// results may only be reused under the same fingerprint.
func (e *Extractor) Fingerprint() string {
	return e.fingerprint
}

// Taxonomy returns the catalog the extractor matches against.
func (e *Extractor) Taxonomy() *taxonomy.Taxonomy {
	return e.matcher.Taxonomy()
}

// ExtractBasicInfo extracts everything it can from cleanText. Section entries
// are read from rawText when it has content, since cleaning destroys line
// structure, and from cleanText otherwise. Blank cleanText yields Empty().
func (e *Extractor) ExtractBasicInfo(cleanText, rawText string) Result {
	res := Empty()
	if strings.TrimSpace(cleanText) == "" {
		return res
	}

	if m := emailRe.FindString(cleanText); m != "" {
		res.Email = &m
	}
	if phone := e.findPhone(cleanText); phone != "" {
		res.Phone = &phone
	}

	res.Skills = e.matcher.FindSkills(cleanText)
	res.SkillsByCategory = skills.Categorize(e.matcher.Taxonomy(), res.Skills)

	lower := strings.ToLower(cleanText)
	res.ExperienceKeywords = presentKeywords(lower, experienceKeywords)
	res.EducationKeywords = presentKeywords(lower, educationKeywords)

	source := rawText
	if strings.TrimSpace(source) == "" {
		source = cleanText
	}
	segOpts := []sections.Option{
		sections.WithMatchMode(e.matchMode),
		sections.WithMaxEntries(e.maxEntries),
	}
	res.ExperienceEntries = sections.ExtractEntries(source, experienceHeaders, stopHeaders, segOpts...)
	res.ProjectEntries = sections.ExtractEntries(source, projectHeaders, projectStops(), segOpts...)

	return res
}

// findPhone returns the whole match, trimmed, so patterns with several
// capture groups still produce one contiguous number.
func (e *Extractor) findPhone(text string) string {
	return strings.TrimSpace(e.phoneRe.FindString(text))
}

// projectStops ends a projects section at an experience header as well, so a
// resume that lists projects before experience does not bleed into it.
func projectStops() []string {
	stops := make([]string, 0, len(stopHeaders)+len(experienceHeaders))
	stops = append(stops, stopHeaders...)
	return append(stops, experienceHeaders...)
}

func presentKeywords(lowerText string, vocabulary []string) []string {
	out := make([]string, 0, len(vocabulary))
	for _, kw := range vocabulary {
		if strings.Contains(lowerText, kw) {
			out = append(out, kw)
		}
	}
	return out
}
