package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type decoder func(data []byte) (string, error)

var decoders = map[string]decoder{
	".pdf":  extractPDFText,
	".docx": extractDocxText,
	".doc":  extractDocxText,
	".html": extractHTMLText,
	".htm":  extractHTMLText,
	".txt":  extractPlainText,
	".md":   extractPlainText,
}

// SupportedExtensions lists the accepted file extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether filename has an accepted extension.
func IsSupported(filename string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ExtractText returns the text content of a resume file. The decoder is
// chosen by the extension of filename. Legacy .doc files go through the DOCX
// decoder and fail with an ExtractError unless they are OOXML underneath.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	decode, ok := decoders[ext]
	if !ok {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	if len(data) == 0 {
		return "", ErrNoText
	}

	text, err := decode(data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPlainText(data []byte) (string, error) {
	return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
}

// extractPDFText concatenates the plain text of every page. The pdf package
// panics on some malformed files, so that is converted into an error.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "pdf", Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractError{Format: "pdf", Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxParagraphEndRe = regexp.MustCompile(`</w:p>`)
	docxBreakRe        = regexp.MustCompile(`<w:(br|cr)\b[^>]*/>`)
	docxTabRe          = regexp.MustCompile(`<w:tab\b[^>]*/>`)
	xmlTagRe           = regexp.MustCompile(`<[^>]+>`)
)

// extractDocxText reads word/document.xml and turns paragraphs into lines.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "docx", Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

func docxXMLToText(content string) string {
	content = docxParagraphEndRe.ReplaceAllString(content, "\n")
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, "\t")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// extractHTMLText keeps block structure: each block element ends a line and
// list items gain a "- " bullet so section segmentation still sees entries.
func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractError{Format: "html", Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, header, footer, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("h1, h2, h3, h4, h5, h6, section").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
