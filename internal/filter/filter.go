// Package filter отбирает записи по диапазону дат, конкуренту и тексту запроса.
package filter

import (
	"sort"
	"strings"
	"time"

	"battlecards/internal/models"
)

// AllCompetitors отключает фильтр по конкуренту.
const AllCompetitors = "All"

const dateOnly = "2006-01-02"

// Criteria: параметры отбора в том виде, в каком они приходят от пользователя.
type Criteria struct {
	Query      string
	Competitor string
	From       string
	To         string
}

// Filter возвращает подпоследовательность items, удовлетворяющую всем условиям c.
// Порядок сохраняется, входной срез не изменяется.
func Filter(items []models.Insight, c Criteria) []models.Insight {
	from, hasFrom := ParseBound(c.From, false)
	to, hasTo := ParseBound(c.To, true)
	query := strings.ToLower(c.Query)

	out := make([]models.Insight, 0, len(items))
	for _, in := range items {
		if hasFrom && in.Date.Before(from) {
			continue
		}
		if hasTo && in.Date.After(to) {
			continue
		}
		if c.Competitor != "" && c.Competitor != AllCompetitors && in.Competitor != c.Competitor {
			continue
		}
		if query != "" && !matches(in, query) {
			continue
		}
		out = append(out, in)
	}
	return out
}

func matches(in models.Insight, query string) bool {
	fields := []string{in.Title, in.Summary, strings.Join(in.Tags, " ")}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// ParseBound разбирает границу диапазона. Пустая или некорректная строка
// означает отсутствие границы (ok == false). Для верхней границы в формате
// даты без времени берётся конец дня в UTC.
func ParseBound(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		if endOfDay {
			return t.Add(24*time.Hour - time.Nanosecond), true
		}
		return t, true
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Competitors возвращает отсортированный список различных конкурентов.
func Competitors(items []models.Insight) []string {
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0)
	for _, in := range items {
		if _, ok := seen[in.Competitor]; ok {
			continue
		}
		seen[in.Competitor] = struct{}{}
		names = append(names, in.Competitor)
	}
	sort.Strings(names)
	return names
}
