package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEvent inserts a bare event row directly (no relations) and returns its id and tag.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, category, start string) (int64, string) {
	t.Helper()

	d := domain.MustParseDate(start)
	name := "Event " + uniqueSuffix()
	tag := domain.MakeTag(category, "Test", name, d)

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO events (tag, category, topic, name, country, date_start)
		 VALUES ($1, $2, 'Test', $3, 'Global', $4) RETURNING id`,
		tag, category, name, d.Time(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("SeedEvent: %v", err)
	}

	return id, tag
}
