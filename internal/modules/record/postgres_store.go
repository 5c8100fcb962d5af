// README: PostgreSQL record store backed by pgx.
package record

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the self-hosted alternative to Firestore, selected by
// NAVIRECO_RECORD_BACKEND=postgres.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the records table when it does not exist yet. There is
// deliberately no unique key on (user_id, recorded_at): duplicate appends
// from ambiguous write retries are tolerated, not resolved.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS location_records (
    id          BIGSERIAL PRIMARY KEY,
    user_id     TEXT NOT NULL,
    latitude    DOUBLE PRECISION NOT NULL,
    longitude   DOUBLE PRECISION NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL,
    place_name  TEXT NOT NULL,
    category    TEXT NOT NULL,
    accuracy_m  DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_location_records_user_time
    ON location_records (user_id, recorded_at DESC);
`)
	if err != nil {
		return fmt.Errorf("migrating location_records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, userID string, rec Record) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO location_records (user_id, latitude, longitude, recorded_at, place_name, category, accuracy_m)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, rec.Latitude, rec.Longitude, rec.RecordedAt, rec.PlaceName, rec.Category, rec.AccuracyM)
	if err != nil {
		return fmt.Errorf("appending location record: %w", err)
	}
	return nil
}

func (s *PostgresStore) QueryRecent(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
SELECT latitude, longitude, recorded_at, place_name, category, accuracy_m
FROM location_records
WHERE user_id = $1
ORDER BY recorded_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying location records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Latitude, &rec.Longitude, &rec.RecordedAt,
			&rec.PlaceName, &rec.Category, &rec.AccuracyM); err != nil {
			return nil, fmt.Errorf("scanning location record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
