package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"battlecards/internal/db"
	"battlecards/internal/models"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.Database {
	t.Helper()
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	database, err := db.NewDB(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.Migrate(ctx))
	_, err = database.Pool.Exec(ctx, `TRUNCATE TABLE insights, battle_cards`)
	require.NoError(t, err)

	return database
}

func TestSnapshotRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	items := []models.Insight{
		{ID: "a", Competitor: "Avetta", Title: "Older", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Tags: []string{"AI"}, ImpactScore: 0.7},
		{ID: "b", Competitor: "KPA Flex", Title: "Newer", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, database.SaveSnapshot(ctx, items))

	loaded, err := database.LoadSnapshot(ctx, 10)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, "b", loaded[0].ID)
	require.Equal(t, []string{"AI"}, loaded[1].Tags)

	t.Run("snapshot replaces previous rows", func(t *testing.T) {
		require.NoError(t, database.SaveSnapshot(ctx, items[:1]))
		loaded, err := database.LoadSnapshot(ctx, 10)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
	})
}

func TestCardStore(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	store := database.Cards()

	cards := []models.BattleCard{
		{ID: "b", Headline: "B", Counters: []string{"x"}, Tags: []string{}},
		{ID: "a", Headline: "A", Counters: []string{"y"}, Tags: []string{"AI"}},
	}
	require.NoError(t, store.Save(ctx, cards))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, cards, loaded)

	require.NoError(t, store.Save(ctx, cards[1:]))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "a", loaded[0].ID)
}
