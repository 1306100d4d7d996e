package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Storage
	DataDir string `env:"DATA_DIR" envDefault:"data/ledgers"`

	// Dialogs
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"10m"`

	// Aggregation timezone. "Local" follows the machine; anything else is
	// an IANA zone name such as "Europe/Amsterdam".
	Timezone string `env:"TIMEZONE" envDefault:"Local"`

	// Defaults for newly created ledgers
	DefaultTargetCalories int `env:"DEFAULT_TARGET_CALORIES" envDefault:"2000"`
	DefaultTargetProtein  int `env:"DEFAULT_TARGET_PROTEIN" envDefault:"150"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"Markdown"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Location resolves the configured timezone, falling back to the machine's
// local zone when the name cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using local: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}
