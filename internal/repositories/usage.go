package repositories

import (
	"context"
	"database/sql"
	"time"

	"currency-converter/internal/models"
)

const usageSchema = `
CREATE TABLE IF NOT EXISTS conversion_events (
	id SERIAL PRIMARY KEY,
	client_id TEXT NOT NULL,
	from_code CHAR(3) NOT NULL,
	to_code CHAR(3) NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	result DOUBLE PRECISION NOT NULL,
	ok BOOLEAN NOT NULL,
	error_key TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS conversion_events_created_at_idx ON conversion_events (created_at);
`

// UsageRepository keeps conversion events for the popularity statistics.
type UsageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, usageSchema)
	return err
}

func (r *UsageRepository) Save(ctx context.Context, event models.ConversionEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversion_events (client_id, from_code, to_code, amount, result, ok, error_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.ClientID, event.From, event.To, event.Amount, event.Result, event.OK, event.ErrorKey, event.CreatedAt)
	return err
}

// TopPairs returns the most converted pairs since the given time. Only
// successful conversions are counted.
func (r *UsageRepository) TopPairs(ctx context.Context, since time.Time, limit int) ([]models.PopularPair, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT from_code, to_code, COUNT(*) AS cnt
		FROM conversion_events
		WHERE ok AND created_at >= $1
		GROUP BY from_code, to_code
		ORDER BY cnt DESC, from_code, to_code
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []models.PopularPair{}
	for rows.Next() {
		var p models.PopularPair
		if err := rows.Scan(&p.From, &p.To, &p.Count); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
