package models

// BattleCard: карточка контраргументов, построенная по одной записи.
// ID совпадает с ID исходной записи.
type BattleCard struct {
	ID       string   `json:"id"`
	Headline string   `json:"headline"`
	Impact   string   `json:"impact"`
	Proof    string   `json:"proof"`
	Counters []string `json:"counters"`
	Link     string   `json:"link"`
	Tags     []string `json:"tags"`
}
