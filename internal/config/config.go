package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Conversation ConversationConfig
	Providers    ProvidersConfig
	Admin        AdminConfig
	Log          LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

// ConversationConfig selects where dialogue state lives. Store is either
// "memory" or "redis"; RedisAddr only matters for the latter.
type ConversationConfig struct {
	Store      string
	RedisAddr  string
	TTL        time.Duration
	MaxEntries int
}

// ProvidersConfig holds the live pricing provider credentials. An empty
// key disables that provider; the pricing cascade then uses the local
// calculators.
type ProvidersConfig struct {
	AmadeusAPIKey    string
	SkyscannerAPIKey string
	BookingAPIKey    string
	Timeout          time.Duration
}

type AdminConfig struct {
	APIToken string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 5000,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Conversation: ConversationConfig{
			Store:      "memory",
			RedisAddr:  "localhost:6379",
			TTL:        24 * time.Hour,
			MaxEntries: 10000,
		},
		Providers: ProvidersConfig{
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a .env file (if present), the JSON file
// backend at $XDG_CONFIG_HOME/brasilca/config.json, and the environment.
//
// Environment variables (BRASILCA_*) override backend values. Secrets
// (provider API keys and the admin token) are never stored in the backend
// and must come from the environment or the .env file.
func Load() (Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Admin.APIToken == "" {
		return Config{}, fmt.Errorf("missing required config: admin API token. " +
			"Set it via environment variable BRASILCA_ADMIN_API_TOKEN")
	}
	if s := cfg.Conversation.Store; s != "memory" && s != "redis" {
		return Config{}, fmt.Errorf("invalid conversation.store %q: must be \"memory\" or \"redis\"", s)
	}

	return cfg, nil
}
