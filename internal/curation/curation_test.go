package curation_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"battlecards/internal/battlecard"
	"battlecards/internal/curation"
	"battlecards/internal/metrics"
	"battlecards/internal/models"
	"battlecards/internal/snapshot"

	"github.com/stretchr/testify/require"
)

type failingStore struct {
	curation.MemoryStore
}

func (f *failingStore) Save(context.Context, []models.BattleCard) error {
	return errors.New("store unavailable")
}

func TestService_CurateReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := curation.FileStore{Path: filepath.Join(t.TempDir(), "cards.json")}

	svc, err := curation.NewService(ctx, store, metrics.NewMetrics())
	require.NoError(t, err)
	require.Empty(t, svc.List())

	in := snapshot.Seed()[0]
	_, err = svc.Curate(ctx, in)
	require.NoError(t, err)

	in.Title = "Second version"
	card, err := svc.Curate(ctx, in)
	require.NoError(t, err)

	cards := svc.List()
	require.Len(t, cards, 1)
	require.Equal(t, card, cards[0])
	require.Contains(t, cards[0].Headline, "Second version")

	reloaded, err := curation.NewService(ctx, store, nil)
	require.NoError(t, err)
	require.Equal(t, cards, reloaded.List())
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, err := curation.NewService(ctx, &curation.MemoryStore{}, nil)
	require.NoError(t, err)

	for _, in := range snapshot.Seed() {
		_, err := svc.Curate(ctx, in)
		require.NoError(t, err)
	}
	require.Len(t, svc.List(), len(snapshot.Seed()))

	require.NoError(t, svc.Remove(ctx, "seed-avetta-ai"))
	_, ok := battlecard.Find(svc.List(), "seed-avetta-ai")
	require.False(t, ok)

	require.ErrorIs(t, svc.Remove(ctx, "seed-avetta-ai"), curation.ErrNotFound)
}

func TestService_StoreFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	svc, err := curation.NewService(ctx, &failingStore{}, nil)
	require.NoError(t, err)

	_, err = svc.Curate(ctx, snapshot.Seed()[0])
	require.Error(t, err)
	require.Empty(t, svc.List())
}

func TestService_ListIsCopy(t *testing.T) {
	ctx := context.Background()
	svc, err := curation.NewService(ctx, &curation.MemoryStore{}, nil)
	require.NoError(t, err)
	_, err = svc.Curate(ctx, snapshot.Seed()[0])
	require.NoError(t, err)

	list := svc.List()
	list[0].Headline = "changed"
	require.NotEqual(t, "changed", svc.List()[0].Headline)
}

func TestFileStore_MissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cards, err := curation.FileStore{Path: filepath.Join(dir, "missing.json")}.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cards)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0o644))
	_, err = curation.FileStore{Path: corrupt}.Load(ctx)
	require.Error(t, err)

	_, err = curation.NewService(ctx, curation.FileStore{Path: corrupt}, nil)
	require.Error(t, err)
}
