package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port          string
	Store         string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	RedisAddrs    []string
	RedisPassword string
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          getenv("PORT"),
		Store:         strings.ToLower(getenv("STORE")),
		DatabaseURL:   getenv("DATABASE_URL"),
		JWTSecret:     getenv("JWT_SECRET"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		TokenTTL:      720 * time.Hour,
		BcryptCost:    10,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Store == "" {
		cfg.Store = StorePostgres
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET not set")
	}
	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL not set")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	if v := getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if v := getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}
	for _, addr := range strings.Split(getenv("REDIS_ADDRS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.RedisAddrs = append(cfg.RedisAddrs, addr)
		}
	}
	return cfg, nil
}
