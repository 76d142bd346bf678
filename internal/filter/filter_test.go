package filter_test

import (
	"testing"
	"time"

	"battlecards/internal/filter"
	"battlecards/internal/models"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sample() []models.Insight {
	return []models.Insight{
		{ID: "a", Competitor: "Avetta", Title: "Avetta launches AI assistant", Summary: "GenAI for audits", Date: day("2024-05-03T10:00:00Z"), Tags: []string{"AI"}},
		{ID: "b", Competitor: "ISNetworld", Title: "New pricing tiers", Summary: "Bundle changes", Date: day("2024-05-01T08:00:00Z"), Tags: []string{"Pricing"}},
		{ID: "c", Competitor: "KPA Flex", Title: "Customer study", Summary: "Annual results", Date: day("2024-04-20T12:00:00Z"), Tags: []string{"Survey"}},
		{ID: "d", Competitor: "Avetta", Title: "Tender module", Summary: "", Date: day("2024-05-10T23:30:00Z"), Tags: []string{"E-bidding"}},
	}
}

func ids(items []models.Insight) []string {
	out := make([]string, 0, len(items))
	for _, in := range items {
		out = append(out, in.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name     string
		criteria filter.Criteria
		expected []string
	}{
		{name: "no criteria", criteria: filter.Criteria{Competitor: filter.AllCompetitors}, expected: []string{"a", "b", "c", "d"}},
		{name: "empty competitor means all", criteria: filter.Criteria{}, expected: []string{"a", "b", "c", "d"}},
		{name: "competitor exact", criteria: filter.Criteria{Competitor: "Avetta"}, expected: []string{"a", "d"}},
		{name: "competitor is case sensitive", criteria: filter.Criteria{Competitor: "avetta"}, expected: []string{}},
		{name: "query in title", criteria: filter.Criteria{Query: "PRICING"}, expected: []string{"b"}},
		{name: "query in summary", criteria: filter.Criteria{Query: "genai"}, expected: []string{"a"}},
		{name: "lowercase query matches capitalized tag", criteria: filter.Criteria{Query: "survey"}, expected: []string{"c"}},
		{name: "from inclusive", criteria: filter.Criteria{From: "2024-05-01T08:00:00Z"}, expected: []string{"a", "b", "d"}},
		{name: "to timestamp inclusive", criteria: filter.Criteria{To: "2024-05-01T08:00:00Z"}, expected: []string{"b", "c"}},
		{name: "query is not trimmed", criteria: filter.Criteria{Query: "ai "}, expected: []string{"a"}},
		{name: "to date-only covers whole day", criteria: filter.Criteria{To: "2024-05-10"}, expected: []string{"a", "b", "c", "d"}},
		{name: "range", criteria: filter.Criteria{From: "2024-04-25", To: "2024-05-05"}, expected: []string{"a", "b"}},
		{name: "malformed bounds are ignored", criteria: filter.Criteria{From: "yesterday", To: "31/12/2024"}, expected: []string{"a", "b", "c", "d"}},
		{name: "combined", criteria: filter.Criteria{Competitor: "Avetta", Query: "tender", From: "2024-05-05"}, expected: []string{"d"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := filter.Filter(sample(), tc.criteria)
			require.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	require.Empty(t, filter.Filter(nil, filter.Criteria{Query: "x"}))
}

func TestFilter_Idempotent(t *testing.T) {
	c := filter.Criteria{Competitor: "Avetta", From: "2024-05-01"}
	once := filter.Filter(sample(), c)
	twice := filter.Filter(once, c)
	require.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := sample()
	before := ids(items)
	filter.Filter(items, filter.Criteria{Query: "avetta", To: "2024-05-02"})
	require.Equal(t, before, ids(items))
}

func TestFilter_DateOnlyKeepsOrder(t *testing.T) {
	items := sample()
	got := filter.Filter(items, filter.Criteria{Competitor: filter.AllCompetitors, From: "2024-05-01"})
	require.LessOrEqual(t, len(got), len(items))
	require.Equal(t, []string{"a", "b", "d"}, ids(got))
}

func TestParseBound(t *testing.T) {
	_, ok := filter.ParseBound("", false)
	require.False(t, ok)

	_, ok = filter.ParseBound("not-a-date", true)
	require.False(t, ok)

	from, ok := filter.ParseBound("2024-05-01", false)
	require.True(t, ok)
	require.Equal(t, day("2024-05-01T00:00:00Z"), from)

	to, ok := filter.ParseBound("2024-05-01", true)
	require.True(t, ok)
	require.Equal(t, day("2024-05-02T00:00:00Z").Add(-time.Nanosecond), to)
}

func TestCompetitors(t *testing.T) {
	require.Equal(t, []string{"Avetta", "ISNetworld", "KPA Flex"}, filter.Competitors(sample()))
	require.Empty(t, filter.Competitors(nil))
}
