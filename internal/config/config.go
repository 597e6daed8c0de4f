// Package config loads application configuration from environment
// variables. Only the HTTP port and JWT secret are hard requirements; the
// database, Redis and broker are all optional and the service degrades to
// in-process implementations when they are absent.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/minsu-han/warehouse-inbound/internal/ledger"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env  string // application environment (dev/test/prod)
	Port string // HTTP port to listen on

	// Database. An empty DBHost selects the in-memory stores.
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	JWTSecret       string // secret used to sign access tokens
	AccessTTLMin    int    // access token time-to-live in minutes
	OperatorKeyHash string // bcrypt hash the operator key is compared against

	LedgerSeed    ledger.Seed // initial slot configuration ("single" or "all")
	EventsEnabled bool        // publish/consume broker events
}

// Load reads configuration from the environment. Missing required values
// cause a fatal log; everything else falls back to a sensible default.
func Load() Config {
	cfg := Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            must("APP_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    getint("ACCESS_TOKEN_TTL_MIN", 480),
		OperatorKeyHash: must("OPERATOR_KEY_HASH"),
		EventsEnabled:   getbool("EVENTS_ENABLED", false),
	}
	switch seed := getenv("LEDGER_SEED", "single"); seed {
	case string(ledger.SeedSingle):
		cfg.LedgerSeed = ledger.SeedSingle
	case string(ledger.SeedAll):
		cfg.LedgerSeed = ledger.SeedAll
	default:
		log.Fatalf("invalid LEDGER_SEED: %q (want single or all)", seed)
	}
	if cfg.DBHost != "" && (cfg.DBUser == "" || cfg.DBName == "") {
		log.Fatal("DB_HOST set but DB_USER/DB_NAME missing")
	}
	return cfg
}

// UseDatabase reports whether MySQL-backed stores should be used.
func (c Config) UseDatabase() bool { return c.DBHost != "" }

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func getbool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "":
		return def
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}
