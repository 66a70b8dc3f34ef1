package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/Surya0265/CareerNav/internal/extraction"
)

const (
	// DefaultListLimit caps ListExtractions when no limit is given.
	DefaultListLimit = 50
	// MaxListLimit is the largest page ListExtractions callers should ask for.
	MaxListLimit = 200
)

// ExtractionRecord is one persisted extraction.
type ExtractionRecord struct {
	ID          uuid.UUID         `json:"id"`
	SourceName  string            `json:"source_name"`
	ContentHash string            `json:"content_hash"`
	Settings    string            `json:"settings"`
	Result      extraction.Result `json:"result"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewExtractionRecord assigns a fresh ID to an extraction about to be saved.
// settings is the fingerprint of the extractor that produced result.
func NewExtractionRecord(sourceName, contentHash, settings string, result extraction.Result) *ExtractionRecord {
	return &ExtractionRecord{
		ID:          uuid.New(),
		SourceName:  sourceName,
		ContentHash: contentHash,
		Settings:    settings,
		Result:      result,
	}
}
