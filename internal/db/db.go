package db

import (
	"context"
	"encoding/json"
	"fmt"

	"battlecards/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS insights (
	id           TEXT PRIMARY KEY,
	competitor   TEXT NOT NULL,
	title        TEXT NOT NULL,
	summary      TEXT NOT NULL DEFAULT '',
	source_name  TEXT NOT NULL DEFAULT '',
	source_url   TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMP WITH TIME ZONE NOT NULL,
	tags         TEXT[] NOT NULL DEFAULT '{}',
	impact_score DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS battle_cards (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	card     JSONB NOT NULL
);
`

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// Migrate создаёт таблицы, если их ещё нет.
func (db *Database) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// SaveSnapshot заменяет содержимое таблицы insights снимком items в одной транзакции,
// чтобы читатели видели либо старый, либо новый снимок целиком.
func (db *Database) SaveSnapshot(ctx context.Context, items []models.Insight) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM insights`); err != nil {
		return fmt.Errorf("clear insights: %w", err)
	}

	batch := &pgx.Batch{}
	for _, in := range items {
		tags := in.Tags
		if tags == nil {
			tags = []string{}
		}
		batch.Queue(`
			INSERT INTO insights (id, competitor, title, summary, source_name, source_url, published_at, tags, impact_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, in.ID, in.Competitor, in.Title, in.Summary, in.SourceName, in.SourceURL, in.Date, tags, in.ImpactScore)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert insights: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot возвращает последние limit записей, новые сверху.
func (db *Database) LoadSnapshot(ctx context.Context, limit int) ([]models.Insight, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, competitor, title, summary, source_name, source_url, published_at, tags, impact_score
		FROM insights
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Insight{}
	for rows.Next() {
		var in models.Insight
		if err := rows.Scan(&in.ID, &in.Competitor, &in.Title, &in.Summary, &in.SourceName, &in.SourceURL, &in.Date, &in.Tags, &in.ImpactScore); err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

// CardStore хранит список отобранных карточек в таблице battle_cards.
type CardStore struct {
	db *Database
}

// Cards возвращает хранилище карточек поверх базы.
func (db *Database) Cards() *CardStore {
	return &CardStore{db: db}
}

// Load возвращает карточки в сохранённом порядке.
func (s *CardStore) Load(ctx context.Context) ([]models.BattleCard, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT card FROM battle_cards ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.BattleCard{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var card models.BattleCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// Save заменяет весь список карточек.
func (s *CardStore) Save(ctx context.Context, cards []models.BattleCard) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cards tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM battle_cards`); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}
	for pos, card := range cards {
		raw, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("encode card %s: %w", card.ID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO battle_cards (id, position, card)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, card = EXCLUDED.card
		`, card.ID, pos, raw); err != nil {
			return fmt.Errorf("insert card %s: %w", card.ID, err)
		}
	}
	return tx.Commit(ctx)
}
