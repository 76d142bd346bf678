package snapshot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"battlecards/internal/metrics"
	"battlecards/internal/models"
	"battlecards/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `[
	{"id":"1","competitor":"Avetta","title":"One","sourceName":"BW","sourceUrl":"https://example.com/1","date":"2024-05-03T10:00:00+00:00","tags":["AI"]},
	{"id":"2","competitor":"KPA Flex","title":"Two","date":"not-a-date","tags":[]}
]`

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	loader := &snapshot.Loader{Path: path, Metrics: metrics.NewMetrics()}
	items := loader.Load(context.Background())

	require.Len(t, items, 1)
	require.Equal(t, "1", items[0].ID)
}

func TestLoader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validDoc))
	}))
	defer server.Close()

	loader := &snapshot.Loader{URL: server.URL}
	items := loader.Load(context.Background())
	require.Len(t, items, 1)
}

func TestLoader_Fallback(t *testing.T) {
	notArray := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer notArray.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	testCases := []struct {
		name     string
		loader   snapshot.Loader
		expected int
	}{
		{name: "missing file", loader: snapshot.Loader{Path: "/nonexistent/insights.json"}, expected: 0},
		{name: "not an array", loader: snapshot.Loader{URL: notArray.URL}, expected: 0},
		{name: "server error", loader: snapshot.Loader{URL: failing.URL, RetryDelay: time.Millisecond}, expected: 0},
		{name: "nothing configured", loader: snapshot.Loader{}, expected: 0},
		{name: "dev seed", loader: snapshot.Loader{Path: "/nonexistent/insights.json", Dev: true}, expected: len(snapshot.Seed())},
		{name: "dev seed on non-array", loader: snapshot.Loader{URL: notArray.URL, Dev: true}, expected: len(snapshot.Seed())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items := tc.loader.Load(context.Background())
			require.NotNil(t, items)
			require.Len(t, items, tc.expected)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "insights.json")
	require.NoError(t, snapshot.WriteFile(path, snapshot.Seed()))

	loader := &snapshot.Loader{Path: path}
	items := loader.Load(context.Background())
	require.Len(t, items, len(snapshot.Seed()))
	for i, in := range snapshot.Seed() {
		require.Equal(t, in.ID, items[i].ID)
		require.True(t, in.Date.Equal(items[i].Date))
	}
}

func TestWriteFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	require.NoError(t, snapshot.WriteFile(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestHolder(t *testing.T) {
	h := snapshot.NewHolder(nil)
	require.Empty(t, h.Load())

	seed := snapshot.Seed()
	h.Store(seed)
	seed[0].Title = "mutated after store"
	require.NotEqual(t, "mutated after store", h.Load()[0].Title)

	in, ok := h.Find("seed-kpa-survey")
	require.True(t, ok)
	require.Equal(t, "KPA Flex", in.Competitor)

	_, ok = h.Find("missing")
	require.False(t, ok)
}

func TestHolder_ConcurrentSwap(t *testing.T) {
	h := snapshot.NewHolder(snapshot.Seed())
	full := len(snapshot.Seed())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Store(snapshot.Seed())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, h.Load(), full)
			}
		}()
	}
	wg.Wait()
}

func TestRejectReason(t *testing.T) {
	_, errs := models.ParseSnapshot([]byte(`[{"id":"1","competitor":"A","title":"T","date":"x"},{"id":"","competitor":"A","title":"T","date":"2024-01-01"}]`))
	require.Equal(t, "invalid_date", snapshot.RejectReason(errs[0]))
	require.Equal(t, "missing_field", snapshot.RejectReason(errs[1]))
}
