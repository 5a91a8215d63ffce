// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/okoba/crypto-job-scraper/internal/filter"
)

type Config struct {
	TelegramToken  string   `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64    `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	Keywords       []string `yaml:"keywords"`
	//Feed
	APIURL     string `yaml:"api_url"`
	JobURLBase string `yaml:"job_url_base"`
	//Paths
	DataDir string `yaml:"data_dir"`
	//Timing
	FallbackWindowDays int `yaml:"fallback_window_days"`
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = filter.DefaultKeywords
	}

	if cfg.APIURL == "" {
		cfg.APIURL = "https://remoteok.com/api"
	}

	if cfg.JobURLBase == "" {
		cfg.JobURLBase = "https://remoteok.com/remote-jobs/"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.FallbackWindowDays <= 0 {
		cfg.FallbackWindowDays = 2
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 15
	}

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	if cfg.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID is required")
	}

	return cfg
}

func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataDir, "remoteok_crypto_jobs.csv")
}

func (c *Config) CursorPath() string {
	return filepath.Join(c.DataDir, "last_run.txt")
}

func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "scraper.lock")
}

func (c *Config) FallbackWindow() time.Duration {
	return time.Duration(c.FallbackWindowDays) * 24 * time.Hour
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
