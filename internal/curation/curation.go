// Package curation хранит список отобранных боевых карточек. Это состояние
// живёт здесь, в явно передаваемом объекте; пакеты battlecard, filter и digest
// к нему не обращаются.
package curation

import (
	"context"
	"errors"
	"sync"

	"battlecards/internal/battlecard"
	"battlecards/internal/logger"
	"battlecards/internal/metrics"
	"battlecards/internal/models"
)

var ErrNotFound = errors.New("battle card not found")

// Store загружает и сохраняет список карточек целиком.
type Store interface {
	Load(ctx context.Context) ([]models.BattleCard, error)
	Save(ctx context.Context, cards []models.BattleCard) error
}

// Service держит список в памяти и сохраняет его после каждого изменения.
type Service struct {
	mu      sync.RWMutex
	store   Store
	cards   []models.BattleCard
	metrics *metrics.Metrics
}

// NewService загружает сохранённый список из store.
func NewService(ctx context.Context, store Store, m *metrics.Metrics) (*Service, error) {
	cards, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.BattleCard{}
	}
	return &Service{store: store, cards: cards, metrics: m}, nil
}

// List возвращает копию текущего списка.
func (s *Service) List() []models.BattleCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BattleCard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Curate строит карточку по записи и ставит её в начало списка,
// заменяя прежнюю карточку с тем же ID.
func (s *Service) Curate(ctx context.Context, in models.Insight) (models.BattleCard, error) {
	card := battlecard.Generate(in)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := battlecard.Curate(s.cards, card)
	if err := s.store.Save(ctx, next); err != nil {
		return models.BattleCard{}, err
	}
	s.cards = next

	if s.metrics != nil {
		s.metrics.CardsCurated.Inc()
	}
	logger.Component("curation").WithField("id", card.ID).Info("Battle card curated")
	return card, nil
}

// Remove удаляет карточку id. Отсутствующая карточка: ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := battlecard.Find(s.cards, id); !ok {
		return ErrNotFound
	}
	next := battlecard.Remove(s.cards, id)
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.cards = next

	if s.metrics != nil {
		s.metrics.CardsRemoved.Inc()
	}
	return nil
}
