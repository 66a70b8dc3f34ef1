package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya0265/CareerNav/internal/schemas"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/types"
)

func TestVersion(t *testing.T) {
	out, _, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "careernav dev\n", out)
}

func TestSkillsList(t *testing.T) {
	out, _, err := executeCommand(t, "", "skills", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Programming Languages (programming_languages)")
	assert.Contains(t, out, "Databases (databases)")
	assert.Contains(t, out, " skills\n")
}

func TestSkillsList_CategoryJSON(t *testing.T) {
	out, _, err := executeCommand(t, "", "skills", "list", "--category", "databases", "--format", "json")
	require.NoError(t, err)

	var resp types.TaxonomyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "databases", resp.Categories[0].Name)
	assert.Contains(t, resp.Categories[0].Skills, "MongoDB")
	assert.Equal(t, len(resp.Categories[0].Skills), resp.TotalSkills)
}

func TestSkillsList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown category", []string{"skills", "list", "--category", "cooking"}, `unknown category "cooking"`},
		{"unknown format", []string{"skills", "list", "--format", "xml"}, `invalid --format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSkillsNormalize(t *testing.T) {
	out, _, err := executeCommand(t, "", "skills", "normalize", "golang", "reactjs", "underwater basket weaving")
	require.NoError(t, err)
	assert.Contains(t, out, "golang -> Go (programming_languages)\n")
	assert.Contains(t, out, "reactjs -> React (web_frameworks)\n")
	assert.Contains(t, out, "underwater basket weaving -> Underwater Basket Weaving (unknown)\n")
}

func TestSkillsNormalize_JSON(t *testing.T) {
	out, _, err := executeCommand(t, "", "skills", "normalize", "--format", "json", "golang", "Go", "mongo")
	require.NoError(t, err)

	var resp types.NormalizeSkillsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Skills, 2)
	assert.Equal(t, skills.NormalizedSkill{Input: "golang", Name: "Go", Category: "programming_languages", Known: true}, resp.Skills[0])
	assert.Equal(t, "MongoDB", resp.Skills[1].Name)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "programming_languages", resp.Categories[0].Category)
	assert.Equal(t, "databases", resp.Categories[1].Category)
}

func TestSkillsFind(t *testing.T) {
	path := writeFile(t, "jane.txt", sampleResume)

	out, _, err := executeCommand(t, "", "skills", "find", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Programming Languages: Go, Python\n")

	empty := writeFile(t, "plain.txt", "Nothing technical here at all")
	out, _, err = executeCommand(t, "", "skills", "find", empty)
	require.NoError(t, err)
	assert.Equal(t, "No skills found\n", out)
}

func TestValidate(t *testing.T) {
	valid := writeFile(t, "valid.json", `{
  "email": null,
  "phone": null,
  "skills": ["Go"],
  "skills_by_category": {"programming_languages": ["Go"]},
  "experience_keywords": [],
  "education_keywords": [],
  "experience_entries": [],
  "project_entries": []
}`)
	invalid := writeFile(t, "invalid.json", `{"email": null}`)

	out, _, err := executeCommand(t, "", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")

	out, _, err = executeCommand(t, "", "validate", valid, invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed validation")
	assert.Contains(t, out, "Validation failed: "+invalid)
}

func TestValidate_PrintSchema(t *testing.T) {
	out, _, err := executeCommand(t, "", "validate", "--print-schema")
	require.NoError(t, err)
	assert.Equal(t, schemas.ExtractionResultSchema(), out)

	_, _, err = executeCommand(t, "", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 result file")
}

func TestSkills_TaxonomyFile(t *testing.T) {
	tax := writeFile(t, "taxonomy.json",
		`[{"name": "stores", "label": "Data Stores", "entries": [{"name": "Redis", "aliases": ["redis"]}]}]`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"list", []string{"skills", "list", "--taxonomy", tax}, "Data Stores (stores)\n  Redis\n1 skills\n"},
		{"normalize", []string{"skills", "normalize", "--taxonomy", tax, "redis", "golang"}, "redis -> Redis (stores)\ngolang -> Golang (unknown)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, _, err := executeCommand(t, "", "skills", "list", "--taxonomy", tax+".missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read taxonomy file")
}

func TestServe_InvalidPort(t *testing.T) {
	_, _, err := executeCommand(t, "", "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
