package fetcher

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"battlecards/internal/models"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// FetchRSS загружает XML-ленту по url, декодирует и возвращает структуру models.RSS.
func FetchRSS(ctx context.Context, url string) (*models.RSS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "battlecards-ingest/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rss models.RSS
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, err
	}
	return &rss, nil
}
