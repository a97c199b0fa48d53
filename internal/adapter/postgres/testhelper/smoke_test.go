package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	id, tag := SeedEvent(t, pool, "War", "1914-07-28")

	var got string
	err := pool.QueryRow(context.Background(), `SELECT tag FROM events WHERE id = $1`, id).Scan(&got)
	if err != nil {
		t.Fatalf("expected event in DB, got error: %v", err)
	}

	if got != tag {
		t.Fatalf("expected tag %q, got %q", tag, got)
	}
}
