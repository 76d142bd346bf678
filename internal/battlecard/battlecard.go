// Package battlecard строит карточки контраргументов по записям о конкурентах
// и поддерживает список отобранных карточек с заменой по ID.
package battlecard

import (
	"fmt"

	"battlecards/internal/models"
)

const proofDateLayout = "Jan 2, 2006"

const (
	DefaultImpact = "Raises buyer expectations for speed, transparency and measurable outcomes in contractor management."
	AIImpact      = "Positions AI as table stakes: buyers will expect automated prequalification and explainable risk scoring."

	CounterTimeToValue = "Lead with time-to-value: show go-live in weeks, not quarters, with reference customers."
	CounterIntegration = "Demo integration depth: live ERP/EHS sync instead of slideware connectors."
	CounterTCO         = "Tell the total-cost-of-ownership story: fees, admin hours and contractor burden over three years."
	CounterAI          = "Stress AI explainability: every automated decision is traceable, reviewable and auditable."
	CounterPricing     = "Offer TCO transparency: publish all-in pricing and contrast it with hidden per-contractor fees."
	CounterEBidding    = "Highlight eligibility at invite and award: only prequalified contractors can bid or be awarded."
)

// Rule: чистое преобразование карточки. Возвращает новую карточку, исходная не меняется.
type Rule struct {
	Name    string
	Applies func(models.Insight) bool
	Apply   func(models.BattleCard) models.BattleCard
}

// Rules применяются строго в этом порядке. Каждое правило добавляет свой
// контраргумент в начало списка, поэтому итоговый порядок обратный.
var Rules = []Rule{
	{
		Name:    "ai",
		Applies: func(in models.Insight) bool { return in.HasTag("AI") },
		Apply: func(c models.BattleCard) models.BattleCard {
			c = prepend(c, CounterAI)
			c.Impact = AIImpact
			return c
		},
	},
	{
		Name:    "pricing",
		Applies: func(in models.Insight) bool { return in.HasTag("Pricing") },
		Apply:   func(c models.BattleCard) models.BattleCard { return prepend(c, CounterPricing) },
	},
	{
		Name:    "e-bidding",
		Applies: func(in models.Insight) bool { return in.HasTag("E-bidding") },
		Apply:   func(c models.BattleCard) models.BattleCard { return prepend(c, CounterEBidding) },
	},
}

// Base строит карточку без учёта тегов.
func Base(in models.Insight) models.BattleCard {
	return models.BattleCard{
		ID:       in.ID,
		Headline: fmt.Sprintf("%s: %s", in.Competitor, in.Title),
		Impact:   DefaultImpact,
		Proof:    fmt.Sprintf("Source: %s • %s", in.SourceName, in.Date.Format(proofDateLayout)),
		Counters: []string{CounterTimeToValue, CounterIntegration, CounterTCO},
		Link:     in.SourceURL,
		Tags:     clone(in.Tags),
	}
}

// Generate строит карточку для записи: базовая карточка плюс сработавшие правила.
func Generate(in models.Insight) models.BattleCard {
	card := Base(in)
	for _, r := range Rules {
		if r.Applies(in) {
			card = r.Apply(card)
		}
	}
	return card
}

func prepend(c models.BattleCard, counter string) models.BattleCard {
	counters := make([]string, 0, len(c.Counters)+1)
	counters = append(counters, counter)
	counters = append(counters, c.Counters...)
	c.Counters = counters
	return c
}

func clone(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
