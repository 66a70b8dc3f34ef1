package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya0265/CareerNav/internal/extraction"
)

const validResultJSON = `{
  "email": "jane@example.com",
  "phone": "555-123-4567",
  "skills": ["Go", "Python"],
  "skills_by_category": {"programming_languages": ["Go", "Python"]},
  "experience_keywords": ["developed"],
  "education_keywords": [],
  "experience_entries": ["Built services"],
  "project_entries": []
}`

func TestExtractionResultSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ExtractionResultSchema()), &v))
	assert.Equal(t, "ExtractionResult", v["title"])
}

func TestValidateResult_ExtractorOutput(t *testing.T) {
	e, err := extraction.New()
	require.NoError(t, err)

	raw := "Jane Doe\njane@example.com\n\nExperience\n- Developed Go services on AWS\n\nProjects\n- Resume parser in Python\n\nEducation\nBachelor of Science"
	res := e.ExtractBasicInfo(raw, raw)

	assert.NoError(t, validateValue(t, res))
}

func TestValidateResult_Empty(t *testing.T) {
	assert.NoError(t, validateValue(t, extraction.Empty()))
}

func validateValue(t *testing.T, v any) error {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return ValidateResultJSON(data)
}

func TestValidateResultJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"valid", validResultJSON, false},
		{"valid array", "[" + validResultJSON + "," + validResultJSON + "]", false},
		{"empty array", "[]", false},
		{"missing field", `{"email": null}`, true},
		{"null skills", `{"email": null, "phone": null, "skills": null, "skills_by_category": {}, "experience_keywords": [], "education_keywords": [], "experience_entries": [], "project_entries": []}`, true},
		{"duplicate skills", `{"email": null, "phone": null, "skills": ["Go", "Go"], "skills_by_category": {}, "experience_keywords": [], "education_keywords": [], "experience_entries": [], "project_entries": []}`, true},
		{"bad email", `{"email": "nope", "phone": null, "skills": [], "skills_by_category": {}, "experience_keywords": [], "education_keywords": [], "experience_entries": [], "project_entries": []}`, true},
		{"unknown field", `{"email": null, "phone": null, "skills": [], "skills_by_category": {}, "experience_keywords": [], "education_keywords": [], "experience_entries": [], "project_entries": [], "extra": 1}`, true},
		{"bad category name", `{"email": null, "phone": null, "skills": [], "skills_by_category": {"Bad Name": ["Go"]}, "experience_keywords": [], "education_keywords": [], "experience_entries": [], "project_entries": []}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResultJSON([]byte(tt.json))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Violations)
		})
	}
}

func TestValidateResultJSON_ArrayFieldsAreIndexed(t *testing.T) {
	err := ValidateResultJSON([]byte("[" + validResultJSON + `, {"email": null}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1].")
	assert.NotContains(t, err.Error(), "[0].")
}

func TestValidateResultJSON_Malformed(t *testing.T) {
	err := ValidateResultJSON([]byte(`[{"email": `))
	require.Error(t, err)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestValidateResultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(path, []byte(validResultJSON), 0644))

	assert.NoError(t, ValidateResultFile(path))

	err := ValidateResultFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateResultJSON_RequiredRule(t *testing.T) {
	err := ValidateResultJSON([]byte(`{"email": null}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	for _, v := range ve.Violations {
		assert.Equal(t, "required", v.Rule)
		assert.Equal(t, "(root)", v.Path)
	}
	assert.Len(t, ve.Violations, 7)
}

func TestSchemaError(t *testing.T) {
	cause := errors.New("bad keyword")
	err := error(&SchemaError{Name: ExtractionResultName, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ExtractionResultName)
}

func TestCompiledResultSchema(t *testing.T) {
	schema, err := compiledResultSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}

func TestValidationError_Error(t *testing.T) {
	one := &ValidationError{Violations: []Violation{
		{Path: "skills", Rule: "invalid_type", Detail: "Invalid type"},
	}}
	assert.Equal(t, "schema violation at skills: Invalid type", one.Error())

	two := &ValidationError{Violations: []Violation{
		{Path: "skills", Rule: "invalid_type", Detail: "Invalid type"},
		{Path: "(root)", Rule: "required", Detail: "email is required"},
	}}
	assert.Equal(t, "2 schema violations:\n  skills: Invalid type\n  (root): email is required", two.Error())
}
