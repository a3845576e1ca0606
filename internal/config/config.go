package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Simplify   SimplifyConfig   `yaml:"simplify"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitPerMinute caps requests per client IP. 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token verification settings. Tokens are issued by the
// learning-management frontend; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"readwell"`
}

// DictionaryConfig holds settings for the external dictionary fallback.
type DictionaryConfig struct {
	BaseURL string        `yaml:"base_url" env:"DICT_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout time.Duration `yaml:"timeout"  env:"DICT_TIMEOUT"  env-default:"10s"`
}

// LexiconConfig points at optional external lexical resources. When empty,
// the embedded lemma list and frequency table are used alone.
type LexiconConfig struct {
	// WordNetPath is an Open English WordNet GWN-LMF JSON file. Supplies
	// the synonym sets the simplifier draws from.
	WordNetPath string `yaml:"wordnet_path" env:"LEXICON_WORDNET_PATH"`
	// FrequencyPath is a zipf frequency CSV overriding the embedded table.
	FrequencyPath string `yaml:"frequency_path" env:"LEXICON_FREQUENCY_PATH"`
}

// VocabularyConfig holds word-selection sizes.
type VocabularyConfig struct {
	CueTarget       int `yaml:"cue_target"       env:"VOCAB_CUE_TARGET"       env-default:"10"`
	ChecklistTarget int `yaml:"checklist_target" env:"VOCAB_CHECKLIST_TARGET" env-default:"5"`
}

// SimplifyConfig holds text-simplification parameters.
type SimplifyConfig struct {
	// Percent of distinct words to attempt to replace when the request
	// does not specify one.
	Percent int `yaml:"percent" env:"SIMPLIFY_PERCENT" env-default:"10"`
	// Epsilon is the minimum Zipf-frequency gain a synonym must offer
	// over the word it replaces.
	Epsilon float64 `yaml:"epsilon" env:"SIMPLIFY_EPSILON" env-default:"0.2"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
