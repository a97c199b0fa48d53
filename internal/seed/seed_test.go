package seed_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/timeline-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/timeline-backend/internal/adapter/sqlite/event"
	"github.com/heartmarshall/timeline-backend/internal/config"
	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/internal/seed"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newStore(t *testing.T) (*event.Repo, *sqlite.TxManager) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqlite.Migrate(ctx, db, discard())
	require.NoError(t, err)

	tx := sqlite.NewTxManager(db)
	return event.New(db, tx), tx
}

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestBuiltin(t *testing.T) {
	t.Parallel()

	events := seed.Builtin()
	require.Len(t, events, 6)

	tags := make([]string, 0, len(events))
	for _, e := range events {
		assert.Equal(t, domain.MakeTag(e.Category, e.Topic, e.Name, e.DateStart), e.Tag)
		tags = append(tags, e.Tag)
	}
	assert.Contains(t, tags, "Politics_War_World_War_I_1914")
	assert.Contains(t, tags, "Culture_Music_Woodstock_Festival_1969")

	moon := events[4]
	assert.Equal(t, "Moon Landing", moon.Name)
	assert.Nil(t, moon.DateEnd)
}

func TestParse_DerivesTag(t *testing.T) {
	t.Parallel()

	doc := `
events:
  - category: Science
    topic: Computing
    name: ARPANET
    country: USA
    date_start: "1969-10-29"
`
	events, err := seed.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Science_Computing_ARPANET_1969", events[0].Tag)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"missing start", "events:\n  - name: X\n"},
		{"malformed start", "events:\n  - name: X\n    date_start: \"1969/10/29\"\n"},
		{"end before start", "events:\n  - name: X\n    date_start: \"1970-01-01\"\n    date_end: \"1969-01-01\"\n"},
		{"unknown field", "events:\n  - name: X\n    date_start: \"1970-01-01\"\n    year: 1970\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := seed.Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	events, err := seed.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events:\n  - category: A\n    topic: B\n    name: C\n    date_start: \"2000-01-01\"\n"), 0o644))

	events, err := seed.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, events, 1)

	_, err = seed.ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

func TestSeedIfEmpty_LoadsBuiltinGraph(t *testing.T) {
	t.Parallel()
	repo, tx := newStore(t)
	ctx := context.Background()
	loader := seed.NewLoader(discard(), repo, tx)

	stats, err := loader.SeedIfEmpty(ctx, seed.Builtin())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Inserted)

	wwii, err := repo.GetByTag(ctx, "Politics_War_World_War_II_1939")
	require.NoError(t, err)
	assert.Equal(t, []string{"Politics_War_World_War_I_1914"}, wwii.AffectedBy)
	assert.Equal(t, []string{"Politics_Conflict_Cold_War_1947", "Science_Space_Moon_Landing_1969"}, wwii.Affects)

	moon, err := repo.GetByTag(ctx, "Science_Space_Moon_Landing_1969")
	require.NoError(t, err)
	assert.Equal(t, []string{"Politics_War_World_War_II_1939"}, moon.AffectedBy)

	again, err := loader.SeedIfEmpty(ctx, seed.Builtin())
	require.NoError(t, err)
	assert.Zero(t, again.Inserted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestLoad_ForceSkipsExisting(t *testing.T) {
	t.Parallel()
	repo, tx := newStore(t)
	ctx := context.Background()
	loader := seed.NewLoader(discard(), repo, tx)

	_, err := loader.Load(ctx, seed.Builtin())
	require.NoError(t, err)

	stats, err := loader.Load(ctx, seed.Builtin())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 6, stats.Skipped)

	wwi, err := repo.GetByTag(ctx, "Politics_War_World_War_I_1914")
	require.NoError(t, err)
	assert.Equal(t, []string{"Politics_War_World_War_II_1939"}, wwi.Affects)
}
