// Package digest собирает текстовый дайджест из отобранных записей.
package digest

import (
	"fmt"
	"strings"
	"time"

	"battlecards/internal/models"
)

// DefaultLimit: число записей в дайджесте, если лимит не задан.
const DefaultLimit = 8

const (
	headingLayout  = "Jan 2, 2006 15:04 MST"
	itemDateLayout = "Jan 2, 2006"
)

// Composer собирает дайджест. Now задаёт время в заголовке.
type Composer struct {
	Now func() time.Time
}

// Compose собирает дайджест по первым limit записям в порядке items.
func Compose(items []models.Insight, limit int) string {
	return Composer{Now: time.Now}.Compose(items, limit)
}

// Compose не пересортировывает items: порядок задаёт вызывающая сторона.
func (c Composer) Compose(items []models.Insight, limit int) string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	blocks := make([]string, 0, len(items)+1)
	blocks = append(blocks, fmt.Sprintf("# Competitor digest (%s)", now().UTC().Format(headingLayout)))
	for _, in := range items {
		blocks = append(blocks, block(in))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func block(in models.Insight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**: %s\n", oneLine(in.Competitor), oneLine(in.Title))
	if summary := oneLine(in.Summary); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s (%s)", oneLine(in.SourceURL), in.Date.Format(itemDateLayout))
	return b.String()
}

// oneLine схлопывает пробельные символы, чтобы поле не разрывало блок.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
