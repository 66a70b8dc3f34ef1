package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

// Metadata describes an ingested resume.
type Metadata struct {
	Filename   string `json:"filename,omitempty"`
	FileType   string `json:"file_type,omitempty"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the raw text
	TextLength int    `json:"text_length"`
}

// NewMetadata creates Metadata for text stamped with the current time.
func NewMetadata(filename, text string) *Metadata {
	return &Metadata{
		Filename:   filename,
		FileType:   strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       ContentHash(text),
		TextLength: len(text),
	}
}

// ContentHash returns the SHA256 hex digest of text.
func ContentHash(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
