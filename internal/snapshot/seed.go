package snapshot

import (
	"time"

	"battlecards/internal/models"
)

// Seed возвращает фиксированный набор записей для разработки и тестов.
func Seed() []models.Insight {
	return []models.Insight{
		{
			ID:          "seed-avetta-ai",
			Competitor:  "Avetta",
			Title:       "Avetta adds AI assistant to contractor prequalification",
			Summary:     "The assistant drafts prequalification answers and flags missing insurance documents.",
			SourceName:  "Business Wire",
			SourceURL:   "https://www.businesswire.com/news/home/avetta-ai-assistant",
			Date:        time.Date(2024, time.May, 6, 14, 0, 0, 0, time.UTC),
			Tags:        []string{"AI"},
			ImpactScore: 0.7,
		},
		{
			ID:          "seed-isn-pricing",
			Competitor:  "ISNetworld",
			Title:       "ISNetworld restructures subscription pricing",
			Summary:     "New per-contractor tiers bundle RAVS reviews with the base subscription.",
			SourceName:  "Business Wire",
			SourceURL:   "https://www.businesswire.com/news/home/isn-pricing",
			Date:        time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC),
			Tags:        []string{"Pricing"},
			ImpactScore: 0.8,
		},
		{
			ID:          "seed-vendorpm-bid",
			Competitor:  "VendorPM",
			Title:       "VendorPM launches tender workflows for property managers",
			Summary:     "Property managers can invite vetted vendors to bid and award work in one flow.",
			SourceName:  "Business Wire",
			SourceURL:   "https://www.businesswire.com/news/home/vendorpm-tender",
			Date:        time.Date(2024, time.April, 25, 16, 15, 0, 0, time.UTC),
			Tags:        []string{"E-bidding"},
			ImpactScore: 0.7,
		},
		{
			ID:          "seed-kpa-survey",
			Competitor:  "KPA Flex",
			Title:       "KPA publishes annual EHS benchmark survey",
			Summary:     "Survey of safety leaders highlights training compliance gaps.",
			SourceName:  "Business Wire",
			SourceURL:   "https://www.businesswire.com/news/home/kpa-survey",
			Date:        time.Date(2024, time.April, 18, 11, 0, 0, 0, time.UTC),
			Tags:        []string{"Survey"},
			ImpactScore: 0.5,
		},
	}
}
