// Package config loads runtime settings from .env, flags and the environment.
// Environment values win over flags so containers can override a baked-in command line.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModePlay  = "play"
	ModeServe = "serve"
)

type Config struct {
	Mode     string
	Port     string
	LogLevel string
	Env      string

	Game  GameConfig
	DB    DBConfig
	Auth  AuthConfig
	HTTP  HTTPConfig
	Daily DailyConfig
}

type GameConfig struct {
	WordsFile  string
	Attempts   int
	Duds       int
	PoolSize   int
	WordLength int
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
}

type HTTPConfig struct {
	ClientOrigin  string
	StoreCapacity int
}

type DailyConfig struct {
	Salt     string
	PoolSize int
	Attempts int
}

// Production reports whether cookies should be Secure.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads .env (if present), parses args as flags, then applies env overrides.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("termhack", flag.ContinueOnError)
	mode := fs.String("mode", ModePlay, "play (terminal) or serve (HTTP)")
	port := fs.String("port", "5175", "HTTP port in serve mode")
	attempts := fs.Int("attempts", 4, "guesses per session")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := &Config{
		Mode:     getEnv("MODE", *mode),
		Port:     strings.TrimPrefix(getEnv("PORT", *port), ":"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Env:      getEnv("NODE_ENV", "development"),
		Game: GameConfig{
			WordsFile:  os.Getenv("WORDS_FILE"),
			Attempts:   envInt("ATTEMPTS", *attempts),
			Duds:       envInt("DUDS", 0),
			PoolSize:   envInt("POOL_SIZE", 12),
			WordLength: envInt("WORD_LENGTH", 5),
		},
		DB: DBConfig{Path: getEnv("DB_PATH", "./data/termhack.db")},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
			JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
			CookieName:     getEnv("COOKIE_NAME", "termhack_token"),
		},
		HTTP: HTTPConfig{
			ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			StoreCapacity: envInt("STORE_CAPACITY", 1024),
		},
		Daily: DailyConfig{
			Salt:     getEnv("DAILY_SALT", "local_dev_salt"),
			PoolSize: envInt("DAILY_POOL_SIZE", 12),
			Attempts: envInt("DAILY_ATTEMPTS", 4),
		},
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModePlay, ModeServe:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.Game.Attempts <= 0 {
		return fmt.Errorf("config: attempts must be positive, got %d", c.Game.Attempts)
	}
	if c.Game.PoolSize <= 0 || c.Daily.PoolSize <= 0 {
		return fmt.Errorf("config: pool size must be positive")
	}
	if c.Daily.Attempts <= 0 {
		return fmt.Errorf("config: daily attempts must be positive, got %d", c.Daily.Attempts)
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
