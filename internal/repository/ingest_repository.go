package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/estoqueops/estqop/internal/domain"
)

// IngestRepository records the provenance of input files pulled from the
// shared drive folder. One row per (drive file, content hash); re-ingesting
// the same bytes refreshes the timestamp instead of duplicating the row.
type IngestRepository struct {
	db *sql.DB
}

func NewIngestRepository(db *sql.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

func (r *IngestRepository) UpsertIngest(ctx context.Context, rec *domain.IngestRecord) (int64, error) {
	query := `
		INSERT INTO input_ingests (drive_id, filename, kind, md5, size_bytes, ingested_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (drive_id, md5)
		DO UPDATE SET
			filename = EXCLUDED.filename,
			kind = EXCLUDED.kind,
			size_bytes = EXCLUDED.size_bytes,
			ingested_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.DriveID,
		rec.Filename,
		rec.Kind,
		rec.MD5,
		rec.SizeBytes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert ingest: %w", err)
	}
	return id, nil
}

// HasIngest reports whether this exact drive file content was already pulled.
func (r *IngestRepository) HasIngest(ctx context.Context, driveID, md5 string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM input_ingests WHERE drive_id = $1 AND md5 = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, driveID, md5).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ingest: %w", err)
	}
	return exists, nil
}

func (r *IngestRepository) GetRecentIngests(ctx context.Context, limit int) ([]domain.IngestRecord, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT id, drive_id, filename, kind, md5, size_bytes, ingested_at
		FROM input_ingests
		ORDER BY ingested_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingests: %w", err)
	}
	defer rows.Close()

	var records []domain.IngestRecord
	for rows.Next() {
		var rec domain.IngestRecord
		if err := rows.Scan(
			&rec.ID, &rec.DriveID, &rec.Filename, &rec.Kind,
			&rec.MD5, &rec.SizeBytes, &rec.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingest: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
