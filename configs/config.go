package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultQuizAPIBaseURL = "https://wiki-quiz-backend-011u.onrender.com"

var loadEnvOnce sync.Once

func loadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

func Config(key string) string {
	loadEnv()
	return strings.TrimSpace(os.Getenv(key))
}

// Settings is the runtime configuration of the web client.
type Settings struct {
	QuizAPIBaseURL string
	QuizAPITimeout time.Duration

	ListenAddr        string
	CORSAllowOrigins  string
	GenerateRateLimit int

	SessionIdleTTL       time.Duration
	SessionSweepSchedule string

	LogMode string
}

// FileConfig is the optional YAML file named by CONFIG_FILE. Environment
// variables override anything set here.
type FileConfig struct {
	QuizAPI struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"quiz_api"`
	Server struct {
		Addr              string `yaml:"addr"`
		CORSAllowOrigins  string `yaml:"cors_allow_origins"`
		GenerateRateLimit int    `yaml:"generate_rate_limit"`
	} `yaml:"server"`
	Sessions struct {
		IdleMinutes   int    `yaml:"idle_minutes"`
		SweepSchedule string `yaml:"sweep_schedule"`
	} `yaml:"sessions"`
	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
}

func LoadFile(filename string) (*FileConfig, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &FileConfig{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return cfg, nil
}

func Load() Settings {
	file := &FileConfig{}
	if path := Config("CONFIG_FILE"); path != "" {
		cfg, err := LoadFile(path)
		if err != nil {
			log.Printf("Warning: could not read config file %s: %v", path, err)
		} else {
			file = cfg
		}
	}

	return Settings{
		QuizAPIBaseURL:       strings.TrimRight(String("QUIZ_API_BASE_URL", or(file.QuizAPI.BaseURL, DefaultQuizAPIBaseURL)), "/"),
		QuizAPITimeout:       time.Duration(Int("QUIZ_API_TIMEOUT_SECONDS", orInt(file.QuizAPI.TimeoutSeconds, 60))) * time.Second,
		ListenAddr:           String("LISTEN_ADDR", or(file.Server.Addr, ":8080")),
		CORSAllowOrigins:     String("CORS_ALLOW_ORIGINS", or(file.Server.CORSAllowOrigins, "*")),
		GenerateRateLimit:    Int("GENERATE_RATE_LIMIT", orInt(file.Server.GenerateRateLimit, 10)),
		SessionIdleTTL:       time.Duration(Int("SESSION_IDLE_MINUTES", orInt(file.Sessions.IdleMinutes, 30))) * time.Minute,
		SessionSweepSchedule: String("SESSION_SWEEP_SCHEDULE", or(file.Sessions.SweepSchedule, "@every 5m")),
		LogMode:              String("LOG_MODE", or(file.Log.Mode, "development")),
	}
}

func String(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func Int(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func or(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
