package battlecard

import "battlecards/internal/models"

// Curate возвращает новый список, в котором card стоит первой, а прежняя
// карточка с тем же ID удалена. В списке не бывает двух карточек с одним ID.
func Curate(cards []models.BattleCard, card models.BattleCard) []models.BattleCard {
	out := make([]models.BattleCard, 0, len(cards)+1)
	out = append(out, card)
	for _, c := range cards {
		if c.ID != card.ID {
			out = append(out, c)
		}
	}
	return out
}

// Remove возвращает новый список без карточки id.
func Remove(cards []models.BattleCard, id string) []models.BattleCard {
	out := make([]models.BattleCard, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Find ищет карточку по ID.
func Find(cards []models.BattleCard, id string) (models.BattleCard, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.BattleCard{}, false
}
