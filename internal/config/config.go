package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	HTTPAddr    string
	DBDSN       string

	JWTSecret     string
	JWTExpiration time.Duration

	Location      *time.Location
	BusinessStart int
	BusinessEnd   int
	SlotLength    time.Duration

	StripeSecretKey      string
	StripePublishableKey string
	StripeCurrency       string

	TelegramToken    string
	TelegramAdminIDs []int64

	AdminEmail    string
	AdminPassword string

	AuthRateLimit float64
	AuthRateBurst int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из getenv. Ошибка называет переменную.
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Environment: p.str("ENV", "development"),
		HTTPAddr:    p.str("HTTP_ADDR", ":8080"),
		DBDSN:       getenv("DB_DSN"),

		JWTSecret:     getenv("JWT_SECRET"),
		JWTExpiration: p.duration("JWT_EXPIRATION", 24*time.Hour),

		Location:      p.location("TIMEZONE"),
		BusinessStart: p.int("BUSINESS_HOURS_START", 8),
		BusinessEnd:   p.int("BUSINESS_HOURS_END", 18),
		SlotLength:    time.Duration(p.int("SLOT_MINUTES", 60)) * time.Minute,

		StripeSecretKey:      getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeCurrency:       strings.ToLower(p.str("STRIPE_CURRENCY", "usd")),

		TelegramToken:    getenv("TELEGRAM_TOKEN"),
		TelegramAdminIDs: p.int64List("TELEGRAM_ADMIN_IDS"),

		AdminEmail:    getenv("ADMIN_EMAIL"),
		AdminPassword: getenv("ADMIN_PASSWORD"),

		AuthRateLimit: p.float("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: p.int("AUTH_RATE_BURST", 10),
	}

	if p.err != nil {
		return nil, p.err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	if cfg.BusinessStart < 0 || cfg.BusinessEnd > 24 || cfg.BusinessStart >= cfg.BusinessEnd {
		return nil, fmt.Errorf("BUSINESS_HOURS_START/BUSINESS_HOURS_END: invalid window %d-%d", cfg.BusinessStart, cfg.BusinessEnd)
	}
	if cfg.SlotLength <= 0 {
		return nil, fmt.Errorf("SLOT_MINUTES must be positive")
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if cfg.AuthRateLimit <= 0 || cfg.AuthRateBurst <= 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// IsProduction проверяет окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PaymentsEnabled - задан ли ключ Stripe
func (c *Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

// BotEnabled - задан ли токен Telegram
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// parser запоминает первую ошибку разбора
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) int(key string, def int) int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return f
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return d
}

func (p *parser) location(key string) *time.Location {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		p.fail(key, err)
		return time.Local
	}
	return loc
}

func (p *parser) int64List(key string) []int64 {
	var out []int64
	for _, part := range strings.Split(p.getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			p.fail(key, err)
			return nil
		}
		out = append(out, id)
	}
	return out
}
