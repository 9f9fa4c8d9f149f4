package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "BRASILCA_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "storage.data_dir", typ: kString, env: "BRASILCA_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "conversation.store", typ: kString, env: "BRASILCA_CONVERSATION_STORE",
		apply:   func(cfg *Config, v any) { cfg.Conversation.Store = v.(string) },
		extract: func(cfg Config) any { return cfg.Conversation.Store },
	},
	{
		key: "conversation.redis_addr", typ: kString, env: "BRASILCA_CONVERSATION_REDIS_ADDR",
		apply:   func(cfg *Config, v any) { cfg.Conversation.RedisAddr = v.(string) },
		extract: func(cfg Config) any { return cfg.Conversation.RedisAddr },
	},
	{
		key: "conversation.ttl", typ: kDuration, env: "BRASILCA_CONVERSATION_TTL",
		apply:   func(cfg *Config, v any) { cfg.Conversation.TTL = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Conversation.TTL },
	},
	{
		key: "conversation.max_entries", typ: kInt, env: "BRASILCA_CONVERSATION_MAX_ENTRIES",
		apply:   func(cfg *Config, v any) { cfg.Conversation.MaxEntries = v.(int) },
		extract: func(cfg Config) any { return cfg.Conversation.MaxEntries },
	},
	{
		key: "providers.amadeus_api_key", typ: kString, env: "BRASILCA_AMADEUS_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Providers.AmadeusAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.AmadeusAPIKey },
	},
	{
		key: "providers.skyscanner_api_key", typ: kString, env: "BRASILCA_SKYSCANNER_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Providers.SkyscannerAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.SkyscannerAPIKey },
	},
	{
		key: "providers.booking_api_key", typ: kString, env: "BRASILCA_BOOKING_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Providers.BookingAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.BookingAPIKey },
	},
	{
		key: "providers.timeout", typ: kDuration, env: "BRASILCA_PROVIDERS_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Providers.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Providers.Timeout },
	},
	{
		key: "admin.api_token", typ: kString, env: "BRASILCA_ADMIN_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Admin.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Admin.APIToken },
	},
	{
		key: "log.level", typ: kString, env: "BRASILCA_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kDuration:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if d, err := time.ParseDuration(v); err == nil {
					s.apply(cfg, d)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse duration from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kDuration:
			if d, err := time.ParseDuration(raw); err == nil {
				s.apply(cfg, d)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse duration from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
