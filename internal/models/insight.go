package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidDate  = errors.New("invalid date")
	ErrNotArray     = errors.New("snapshot document is not a JSON array")
)

// dateLayouts перечисляет допустимые представления ISO 8601 в снимке.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Insight: нормализованная запись о конкуренте. После приёма не изменяется.
type Insight struct {
	ID          string    `json:"id"`
	Competitor  string    `json:"competitor"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	SourceName  string    `json:"sourceName"`
	SourceURL   string    `json:"sourceUrl"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	ImpactScore float64   `json:"impact_score,omitempty"`
}

// HasTag сообщает, есть ли у записи тег tag (без учёта регистра).
func (i Insight) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// RawInsight: форма записи на границе приёма, дата ещё не разобрана.
type RawInsight struct {
	ID          string   `json:"id"`
	Competitor  string   `json:"competitor"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	SourceName  string   `json:"sourceName"`
	SourceURL   string   `json:"sourceUrl"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	ImpactScore float64  `json:"impact_score,omitempty"`
}

// Validate проверяет обязательные поля и дату и возвращает Insight.
// Неразборчивая дата: ошибка ErrInvalidDate, подстановки "сейчас" нет.
func (r RawInsight) Validate() (Insight, error) {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return Insight{}, fmt.Errorf("%w: id", ErrMissingField)
	case strings.TrimSpace(r.Competitor) == "":
		return Insight{}, fmt.Errorf("%w: competitor", ErrMissingField)
	case strings.TrimSpace(r.Title) == "":
		return Insight{}, fmt.Errorf("%w: title", ErrMissingField)
	}

	date, err := ParseDate(r.Date)
	if err != nil {
		return Insight{}, err
	}

	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)

	return Insight{
		ID:          r.ID,
		Competitor:  r.Competitor,
		Title:       r.Title,
		Summary:     r.Summary,
		SourceName:  r.SourceName,
		SourceURL:   r.SourceURL,
		Date:        date,
		Tags:        tags,
		ImpactScore: r.ImpactScore,
	}, nil
}

// ParseDate разбирает дату записи в одном из форматов ISO 8601.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseSnapshot декодирует JSON-документ снимка. Документ, не являющийся массивом,
// даёт пустую коллекцию и ошибку ErrNotArray; невалидные элементы отбрасываются,
// а причина возвращается во втором результате.
func ParseSnapshot(data []byte) ([]Insight, []error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []Insight{}, []error{ErrNotArray}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return []Insight{}, []error{fmt.Errorf("%w: %v", ErrNotArray, err)}
	}

	insights := make([]Insight, 0, len(elems))
	var rejected []error
	for idx, elem := range elems {
		var raw RawInsight
		if err := json.Unmarshal(elem, &raw); err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", idx, err))
			continue
		}
		in, err := raw.Validate()
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d (%s): %w", idx, raw.ID, err))
			continue
		}
		insights = append(insights, in)
	}
	return insights, rejected
}
