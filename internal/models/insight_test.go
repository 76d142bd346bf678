package models_test

import (
	"errors"
	"testing"
	"time"

	"battlecards/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRawInsight_Validate(t *testing.T) {
	raw := models.RawInsight{
		ID:         "abc",
		Competitor: "Avetta",
		Title:      "Title",
		Date:       "2024-05-03T10:00:00+00:00",
		Tags:       []string{"AI"},
	}

	in, err := raw.Validate()
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC), in.Date.UTC())
	require.Equal(t, []string{"AI"}, in.Tags)

	raw.Tags[0] = "changed"
	require.Equal(t, "AI", in.Tags[0])
}

func TestRawInsight_ValidateRejects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(r *models.RawInsight)
		target error
	}{
		{name: "not a date", mutate: func(r *models.RawInsight) { r.Date = "not-a-date" }, target: models.ErrInvalidDate},
		{name: "empty date", mutate: func(r *models.RawInsight) { r.Date = "" }, target: models.ErrInvalidDate},
		{name: "missing id", mutate: func(r *models.RawInsight) { r.ID = " " }, target: models.ErrMissingField},
		{name: "missing competitor", mutate: func(r *models.RawInsight) { r.Competitor = "" }, target: models.ErrMissingField},
		{name: "missing title", mutate: func(r *models.RawInsight) { r.Title = "" }, target: models.ErrMissingField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := models.RawInsight{ID: "abc", Competitor: "Avetta", Title: "Title", Date: "2024-05-03"}
			tc.mutate(&raw)
			_, err := raw.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.target))
		})
	}
}

func TestParseSnapshot(t *testing.T) {
	doc := `[
		{"id":"1","competitor":"Avetta","title":"One","date":"2024-05-03T10:00:00Z","tags":["AI"]},
		{"id":"2","competitor":"KPA Flex","title":"Two","date":"not-a-date","tags":[]},
		{"id":"3","competitor":"VendorPM","title":"Three","date":"2024-05-01","tags":["Pricing"]},
		"garbage"
	]`

	insights, rejected := models.ParseSnapshot([]byte(doc))
	require.Len(t, insights, 2)
	require.Equal(t, "1", insights[0].ID)
	require.Equal(t, "3", insights[1].ID)
	require.Len(t, rejected, 2)
	require.ErrorIs(t, rejected[0], models.ErrInvalidDate)
}

func TestParseSnapshot_NotArray(t *testing.T) {
	for _, doc := range []string{`{"id":"1"}`, `null`, ``, `[oops`} {
		insights, rejected := models.ParseSnapshot([]byte(doc))
		require.NotNil(t, insights)
		require.Empty(t, insights)
		require.Len(t, rejected, 1)
		require.ErrorIs(t, rejected[0], models.ErrNotArray)
	}
}

func TestInsight_HasTag(t *testing.T) {
	in := models.Insight{Tags: []string{"AI", "E-bidding"}}
	require.True(t, in.HasTag("ai"))
	require.True(t, in.HasTag("E-Bidding"))
	require.False(t, in.HasTag("Pricing"))
}

func TestSeverity_Text(t *testing.T) {
	var s models.Severity
	require.NoError(t, s.UnmarshalText([]byte("watch")))
	require.Equal(t, models.SeverityWatch, s)
	require.Error(t, s.UnmarshalText([]byte("urgent")))

	b, err := models.SeverityCritical.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "critical", string(b))
}
