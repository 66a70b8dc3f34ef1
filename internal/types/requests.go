// Package types provides the request and response shapes of the HTTP API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractRequest asks for extraction from text the caller already has.
type ExtractRequest struct {
	Text       string `json:"text" validate:"required"`
	RawText    string `json:"raw_text,omitempty"`
	SourceName string `json:"source_name,omitempty" validate:"max=255"`
}

// Validate checks the request. Text made only of whitespace is rejected.
func (r *ExtractRequest) Validate() error {
	trimmed := *r
	trimmed.Text = strings.TrimSpace(r.Text)
	return validate.Struct(&trimmed)
}

// NormalizeSkillsRequest carries free-form skill names to normalize.
type NormalizeSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,max=500,dive,required,max=100"`
}

// Validate validates the NormalizeSkillsRequest using the validator.
func (r *NormalizeSkillsRequest) Validate() error {
	return validate.Struct(r)
}
