package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveExtraction inserts rec and fills in its creation time.
func (db *DB) SaveExtraction(ctx context.Context, rec *ExtractionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	jsonBytes, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction result: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO extractions (id, source_name, content_hash, settings, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		rec.ID, rec.SourceName, rec.ContentHash, rec.Settings, jsonBytes,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return nil
}

// GetExtraction returns the record with the given ID, or nil when none exists.
func (db *DB) GetExtraction(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, source_name, content_hash, settings, result, created_at
		 FROM extractions WHERE id = $1`,
		id,
	)
	rec, err := scanExtraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction %s: %w", id, err)
	}
	return rec, nil
}

// GetLatestExtractionByHash returns the newest record for a content hash
// extracted under the given settings, or nil when there is none.
func (db *DB) GetLatestExtractionByHash(ctx context.Context, contentHash, settings string) (*ExtractionRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, source_name, content_hash, settings, result, created_at
		 FROM extractions WHERE content_hash = $1 AND settings = $2
		 ORDER BY created_at DESC LIMIT 1`,
		contentHash, settings,
	)
	rec, err := scanExtraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction by hash: %w", err)
	}
	return rec, nil
}

// ListExtractions returns the most recent records, newest first. A
// non-positive limit selects DefaultListLimit. The result is never nil.
func (db *DB) ListExtractions(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source_name, content_hash, settings, result, created_at
		 FROM extractions ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	records := make([]ExtractionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extractions: %w", err)
	}
	return records, nil
}

func scanExtraction(row pgx.Row) (*ExtractionRecord, error) {
	var rec ExtractionRecord
	var content []byte
	if err := row.Scan(&rec.ID, &rec.SourceName, &rec.ContentHash, &rec.Settings, &content, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction result: %w", err)
	}
	return &rec, nil
}
