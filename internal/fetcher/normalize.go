package fetcher

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"battlecards/internal/config"
	"battlecards/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxSummaryRunes   = 400
	unknownCompetitor = "Unknown"
	idLayout          = "2006-01-02T15:04:05-07:00"
)

var ErrNoDate = errors.New("item has no parsable publication date")

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// tagRule: тег и ключевые слова, при наличии любого из которых он ставится.
type tagRule struct {
	tag      string
	keywords []string
	weight   float64
}

var tagRules = []tagRule{
	{tag: "AI", keywords: []string{"ai", "genai", "llm", "assistant"}, weight: 0.2},
	{tag: "Pricing", keywords: []string{"price", "pricing"}, weight: 0.3},
	{tag: "E-bidding", keywords: []string{"bid", "tender"}, weight: 0.2},
}

// Normalize превращает элемент ленты в Insight. Элемент без разбираемой даты
// отклоняется с ErrNoDate: текущее время не подставляется.
func Normalize(src config.Source, item models.Item, competitors []config.Competitor) (models.Insight, error) {
	title := CleanText(item.Title)
	summary := truncate(CleanText(item.Description), maxSummaryRunes)
	link := Canonical(item.Link)

	if title == "" {
		return models.Insight{}, fmt.Errorf("%w: title", models.ErrMissingField)
	}

	date, err := parsePubDate(item.PubDate)
	if err != nil {
		return models.Insight{}, err
	}

	lower := strings.ToLower(title+" "+summary) + " " + strings.ToLower(link)
	tags := detectTags(lower)

	return models.Insight{
		ID:          InsightID(link, title, date),
		Competitor:  detectCompetitor(lower, competitors),
		Title:       title,
		Summary:     summary,
		SourceName:  src.Name,
		SourceURL:   link,
		Date:        date,
		Tags:        tags,
		ImpactScore: impactScore(tags),
	}, nil
}

// CleanText убирает HTML-разметку и схлопывает пробелы.
func CleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Canonical отбрасывает query-строку и завершающий слэш.
func Canonical(u string) string {
	u, _, _ = strings.Cut(u, "?")
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// InsightID возвращает первые 12 hex-символов SHA-1 от canonical(url)|title|date.
func InsightID(link, title string, date time.Time) string {
	sum := sha1.Sum([]byte(Canonical(link) + "|" + title + "|" + date.UTC().Format(idLayout)))
	return hex.EncodeToString(sum[:])[:12]
}

func parsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoDate
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, s)
}

func detectCompetitor(lower string, competitors []config.Competitor) string {
	for _, c := range competitors {
		if strings.Contains(lower, strings.ToLower(c.Keyword)) {
			return c.Name
		}
	}
	return unknownCompetitor
}

func detectTags(lower string) []string {
	tags := []string{}
	for _, r := range tagRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	return tags
}

// impactScore: 0.5 плюс веса тегов, не больше 1.0.
func impactScore(tags []string) float64 {
	score := 0.5
	for _, r := range tagRules {
		for _, t := range tags {
			if t == r.tag {
				score += r.weight
			}
		}
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
