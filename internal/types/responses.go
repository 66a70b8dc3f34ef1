//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

// ExtractionResponse is returned by POST /extract.
type ExtractionResponse struct {
	ID          string            `json:"id,omitempty"`
	SourceName  string            `json:"source_name,omitempty"`
	ContentHash string            `json:"content_hash"`
	Cached      bool              `json:"cached"`
	Result      extraction.Result `json:"result"`
}

// ExtractedInfo is the subset of a result echoed by POST /extract-skills.
type ExtractedInfo struct {
	Email              *string  `json:"email"`
	DetectedSkills     []string `json:"detected_skills"`
	ExperienceEntries  []string `json:"experience_entries"`
	ProjectEntries     []string `json:"project_entries"`
	ExperienceKeywords []string `json:"experience_keywords"`
}

// SkillsResponse is returned by POST /extract-skills.
type SkillsResponse struct {
	Skills           []string            `json:"skills"`
	SkillsByCategory map[string][]string `json:"skills_by_category"`
	TotalSkillsFound int                 `json:"total_skills_found"`
	ExtractedInfo    ExtractedInfo       `json:"extracted_info"`
}

// NewSkillsResponse builds a SkillsResponse from an extraction result.
func NewSkillsResponse(res extraction.Result) SkillsResponse {
	return SkillsResponse{
		Skills:           res.Skills,
		SkillsByCategory: res.SkillsByCategory,
		TotalSkillsFound: len(res.Skills),
		ExtractedInfo: ExtractedInfo{
			Email:              res.Email,
			DetectedSkills:     res.Skills,
			ExperienceEntries:  res.ExperienceEntries,
			ProjectEntries:     res.ProjectEntries,
			ExperienceKeywords: res.ExperienceKeywords,
		},
	}
}

// FileInfo describes an uploaded file.
type FileInfo struct {
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	TextLength int    `json:"text_length"`
}

// ExtractedContent holds the cleaned text and the extraction result.
type ExtractedContent struct {
	FullText  string            `json:"full_text"`
	BasicInfo extraction.Result `json:"basic_info"`
}

// Analysis summarizes an extraction for quick display.
type Analysis struct {
	HasContactInfo  bool `json:"has_contact_info"`
	SkillsDetected  int  `json:"skills_detected"`
	AppearsComplete bool `json:"appears_complete"`
}

// CompleteTextThreshold is the clean text length above which a resume is
// considered complete.
const CompleteTextThreshold = 200

// ResumeResponse is returned by POST /extract-resume.
type ResumeResponse struct {
	Success          bool             `json:"success"`
	FileInfo         FileInfo         `json:"file_info"`
	ExtractedContent ExtractedContent `json:"extracted_content"`
	Analysis         Analysis         `json:"analysis"`
}

// NewResumeResponse builds a ResumeResponse for a processed upload.
func NewResumeResponse(filename, fileType, cleanText string, res extraction.Result) ResumeResponse {
	return ResumeResponse{
		Success: true,
		FileInfo: FileInfo{
			Filename:   filename,
			FileType:   fileType,
			TextLength: len(cleanText),
		},
		ExtractedContent: ExtractedContent{
			FullText:  cleanText,
			BasicInfo: res,
		},
		Analysis: Analysis{
			HasContactInfo:  res.Email != nil || res.Phone != nil,
			SkillsDetected:  len(res.Skills),
			AppearsComplete: len(cleanText) > CompleteTextThreshold,
		},
	}
}

// TaxonomyCategory is one category in GET /skills/taxonomy.
type TaxonomyCategory struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// TaxonomyResponse lists every category in catalog order.
type TaxonomyResponse struct {
	Categories  []TaxonomyCategory `json:"categories"`
	TotalSkills int                `json:"total_skills"`
}

// NewTaxonomyResponse lists the canonical names of every category in tax.
func NewTaxonomyResponse(tax *taxonomy.Taxonomy) TaxonomyResponse {
	cats := tax.Categories()
	resp := TaxonomyResponse{
		Categories:  make([]TaxonomyCategory, 0, len(cats)),
		TotalSkills: tax.Len(),
	}
	for _, c := range cats {
		resp.Categories = append(resp.Categories, newTaxonomyCategory(c))
	}
	return resp
}

// NewCategoryResponse lists a single category.
func NewCategoryResponse(c taxonomy.Category) TaxonomyResponse {
	return TaxonomyResponse{
		Categories:  []TaxonomyCategory{newTaxonomyCategory(c)},
		TotalSkills: len(c.Entries),
	}
}

func newTaxonomyCategory(c taxonomy.Category) TaxonomyCategory {
	names := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		names = append(names, e.Name)
	}
	return TaxonomyCategory{Name: c.Name, Label: c.Label, Skills: names}
}

// NormalizeSkillsResponse is returned by POST /skills/normalize.
type NormalizeSkillsResponse struct {
	Skills     []skills.NormalizedSkill `json:"skills"`
	Categories []skills.CategorySummary `json:"categories"`
}

// ExtractionRecordResponse is a stored extraction. Settings fingerprints the
// extractor configuration that produced Result.
type ExtractionRecordResponse struct {
	ID          string            `json:"id"`
	SourceName  string            `json:"source_name"`
	ContentHash string            `json:"content_hash"`
	Settings    string            `json:"settings"`
	Result      extraction.Result `json:"result"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ExtractionListResponse is returned by GET /extractions, newest first.
type ExtractionListResponse struct {
	Extractions []ExtractionRecordResponse `json:"extractions"`
	Count       int                        `json:"count"`
}
