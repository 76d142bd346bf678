// Package severity определяет уровень важности записи по её тегам.
package severity

import (
	"strings"

	"battlecards/internal/models"
)

// rule: упорядоченное правило классификации: первое совпадение побеждает.
type rule struct {
	level    models.Severity
	patterns []string
}

var rules = []rule{
	{level: models.SeverityCritical, patterns: []string{"pricing", "price", "bundle"}},
	{level: models.SeverityWatch, patterns: []string{"ai", "e-bidding", "integration"}},
}

// Classify возвращает уровень важности для набора тегов.
// Теги склеиваются в одну строку в нижнем регистре, шаблоны ищутся как подстроки.
func Classify(tags []string) models.Severity {
	blob := strings.ToLower(strings.Join(tags, " "))
	for _, r := range rules {
		for _, p := range r.patterns {
			if strings.Contains(blob, p) {
				return r.level
			}
		}
	}
	return models.SeverityInfo
}
