package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"battlecards/internal/models"
)

// FileStore хранит карточки JSON-массивом в файле Path.
type FileStore struct {
	Path string
}

// Load читает файл. Отсутствующий файл означает пустой список.
func (f FileStore) Load(_ context.Context) ([]models.BattleCard, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.BattleCard{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cards []models.BattleCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("decode cards %s: %w", f.Path, err)
	}
	return cards, nil
}

// Save перезаписывает файл целиком.
func (f FileStore) Save(_ context.Context, cards []models.BattleCard) error {
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// MemoryStore держит карточки в памяти процесса; используется без настроенного хранилища.
type MemoryStore struct {
	cards []models.BattleCard
}

func (m *MemoryStore) Load(_ context.Context) ([]models.BattleCard, error) {
	return append([]models.BattleCard{}, m.cards...), nil
}

func (m *MemoryStore) Save(_ context.Context, cards []models.BattleCard) error {
	m.cards = append([]models.BattleCard{}, cards...)
	return nil
}
