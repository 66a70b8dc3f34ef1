// Package ingestion turns uploaded resume documents into text: the raw text
// with line structure intact and the cleaned single-line form used for
// matching.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	disallowedRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s@.,()\-+#/]`)
	blankRunRe    = regexp.MustCompile(`\n\n\n+`)
	innerSpacesRe = regexp.MustCompile(`[ \t\f\v]+`)
)

// Clean produces the matching form of a resume: whitespace runs collapse to a
// single space and characters outside letters, digits, underscore and
// "@.,()-+#/" are dropped. "+", "#" and "/" survive so C++, C# and CI/CD
// are still recognizable.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// NormalizeLines tidies raw text without destroying its line structure:
// line endings become LF, spacing inside a line collapses, trailing
// whitespace goes and runs of blank lines shrink to one blank line. Section
// segmentation depends on both the line breaks and the blank lines.
func NormalizeLines(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}

	result := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// normalizeLine keeps leading indentation, since continuation lines of a
// bullet are often indented, and collapses everything else.
func normalizeLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	trimmed := strings.TrimLeft(line, " \t\u00a0")
	if trimmed == "" {
		return ""
	}
	indent := len(line) - len(trimmed)
	body := innerSpacesRe.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", min(indent, 4)) + body
	}
	return body
}

// Document is a resume after text extraction.
type Document struct {
	Name      string
	RawText   string
	CleanText string
	Metadata  *Metadata
}

// NewDocument normalizes raw text and derives the cleaned form and metadata.
func NewDocument(name, rawText string) *Document {
	raw := NormalizeLines(rawText)
	return &Document{
		Name:      name,
		RawText:   raw,
		CleanText: Clean(raw),
		Metadata:  NewMetadata(name, raw),
	}
}

// IngestFromBytes extracts text from an uploaded file. The extension of name
// selects the decoder.
func IngestFromBytes(name string, data []byte) (*Document, error) {
	text, err := ExtractText(name, data)
	if err != nil {
		return nil, err
	}
	doc := NewDocument(filepath.Base(name), text)
	if strings.TrimSpace(doc.CleanText) == "" {
		return nil, ErrNoText
	}
	return doc, nil
}

// IngestFromFile reads a resume from disk and ingests it.
func IngestFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return IngestFromBytes(path, data)
}
