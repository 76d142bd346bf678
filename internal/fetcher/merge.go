package fetcher

import (
	"sort"

	"battlecards/internal/models"
)

// Merge добавляет к existing те записи fresh, чьих ID и канонического URL ещё нет,
// сортирует результат по дате (новые сверху) и обрезает до max (при max <= 0 без ограничения).
// Повторный опрос той же ленты не создаёт дублей.
func Merge(existing, fresh []models.Insight, max int) ([]models.Insight, int) {
	seenIDs := make(map[string]struct{}, len(existing)+len(fresh))
	seenURLs := make(map[string]struct{}, len(existing)+len(fresh))

	merged := make([]models.Insight, 0, len(existing)+len(fresh))
	for _, in := range existing {
		seenIDs[in.ID] = struct{}{}
		if u := Canonical(in.SourceURL); u != "" {
			seenURLs[u] = struct{}{}
		}
		merged = append(merged, in)
	}

	freshIDs := make(map[string]struct{}, len(fresh))
	for _, in := range fresh {
		u := Canonical(in.SourceURL)
		if _, ok := seenIDs[in.ID]; ok {
			continue
		}
		if _, ok := seenURLs[u]; ok && u != "" {
			continue
		}
		seenIDs[in.ID] = struct{}{}
		if u != "" {
			seenURLs[u] = struct{}{}
		}
		merged = append(merged, in)
		freshIDs[in.ID] = struct{}{}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	if max > 0 && len(merged) > max {
		merged = merged[:max]
	}

	// добавленными считаются только записи, пережившие обрезку
	added := 0
	for _, in := range merged {
		if _, ok := freshIDs[in.ID]; ok {
			added++
		}
	}
	return merged, added
}
