// Package snapshot хранит текущий неизменяемый снимок записей и загружает его
// из JSON-документа (файл или URL).
package snapshot

import (
	"sync/atomic"

	"battlecards/internal/models"
)

// Holder публикует снимок целиком. Читатели никогда не видят частично
// обновлённый список: Store подменяет указатель атомарно.
type Holder struct {
	current atomic.Pointer[[]models.Insight]
}

// NewHolder создаёт хранилище с начальным снимком.
func NewHolder(initial []models.Insight) *Holder {
	h := &Holder{}
	h.Store(initial)
	return h
}

// Load возвращает текущий снимок. Срез нельзя изменять.
func (h *Holder) Load() []models.Insight {
	p := h.current.Load()
	if p == nil {
		return []models.Insight{}
	}
	return *p
}

// Store копирует items и публикует копию как новый снимок.
func (h *Holder) Store(items []models.Insight) {
	next := make([]models.Insight, len(items))
	copy(next, items)
	h.current.Store(&next)
}

// Find ищет запись по ID в текущем снимке.
func (h *Holder) Find(id string) (models.Insight, bool) {
	for _, in := range h.Load() {
		if in.ID == id {
			return in, true
		}
	}
	return models.Insight{}, false
}
