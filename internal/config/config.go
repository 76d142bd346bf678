package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultDigestLimit = 8
	defaultMaxInsights = 1000
	defaultQueue       = "insight_sources"
	defaultWorkers     = 5
)

// Source описывает одну отслеживаемую ленту.
type Source struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Competitor сопоставляет ключевое слово с именем конкурента.
// Порядок в конфиге важен: побеждает первое найденное слово.
type Competitor struct {
	Keyword string `json:"keyword"`
	Name    string `json:"name"`
}

// RabbitMQ описывает настройки очереди заданий на опрос источников.
// Пустой URL означает опрос в текущем процессе.
type RabbitMQ struct {
	URL     string `json:"url"`
	Queue   string `json:"queue"`
	Workers int    `json:"workers"`
}

// Config хранит источники, интервал опроса и адреса хранилищ.
type Config struct {
	Sources         []Source     `json:"sources"`
	PollInterval    int          `json:"poll_interval"`
	Competitors     []Competitor `json:"competitors"`
	SnapshotPath    string       `json:"snapshot_path"`
	SnapshotURL     string       `json:"snapshot_url"`
	CardsPath       string       `json:"cards_path"`
	DatabaseURL     string       `json:"database_url"`
	HTTPAddr        string       `json:"http_addr"`
	DigestLimit     int          `json:"digest_limit"`
	MaxInsights     int          `json:"max_insights"`
	Dev             bool         `json:"dev"`
	RabbitMQ        RabbitMQ     `json:"rabbitmq"`
	SlackWebhookURL string       `json:"slack_webhook_url"`
}

// DefaultCompetitors возвращает словарь конкурентов по умолчанию.
func DefaultCompetitors() []Competitor {
	return []Competitor{
		{Keyword: "isn", Name: "ISNetworld"},
		{Keyword: "isnetworld", Name: "ISNetworld"},
		{Keyword: "avetta", Name: "Avetta"},
		{Keyword: "kpa", Name: "KPA Flex"},
		{Keyword: "vendorpm", Name: "VendorPM"},
	}
}

// Validate проверяет, что PollInterval не меньше минуты, а все источники являются RSS с валидным URL.
func (cfg *Config) Validate() error {
	if cfg.PollInterval < 1 {
		return errors.New("poll interval must be ≥ 1 minute")
	}
	for _, s := range cfg.Sources {
		if s.Type != "rss" {
			return fmt.Errorf("unsupported source type %q for %s", s.Type, s.Name)
		}
		if _, err := url.ParseRequestURI(s.URL); err != nil {
			return fmt.Errorf("invalid source URL: %s", s.URL)
		}
	}
	for _, c := range cfg.Competitors {
		if c.Keyword == "" || c.Name == "" {
			return errors.New("competitor entries need both keyword and name")
		}
	}
	if cfg.DigestLimit < 0 || cfg.MaxInsights < 0 {
		return errors.New("digest_limit and max_insights must not be negative")
	}
	return nil
}

// applyDefaults заполняет незаданные поля и применяет переменные окружения.
func (cfg *Config) applyDefaults() {
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.DigestLimit == 0 {
		cfg.DigestLimit = defaultDigestLimit
	}
	if cfg.MaxInsights == 0 {
		cfg.MaxInsights = defaultMaxInsights
	}
	if len(cfg.Competitors) == 0 {
		cfg.Competitors = DefaultCompetitors()
	}
	if cfg.RabbitMQ.Queue == "" {
		cfg.RabbitMQ.Queue = defaultQueue
	}
	if cfg.RabbitMQ.Workers == 0 {
		cfg.RabbitMQ.Workers = defaultWorkers
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.SlackWebhookURL = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
}

// LoadConfig читает JSON-файл по пути path, декодирует его в Config и заполняет значения по умолчанию.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
