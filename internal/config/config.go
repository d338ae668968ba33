package config

import (
	"fmt"
	"os"
	"time"
)

type AppConfig struct {
	Addr              string
	MongoURI          string
	MongoDB           string
	SessionSecret     string
	ReconcileInterval time.Duration
}

// Load reads the environment configuration. MONGO_URI and SESSION_SECRET
// are required; everything else has a default. RECONCILE_INTERVAL accepts
// Go duration syntax; "0" disables the background sweep.
func Load() (*AppConfig, error) {

	mongoURI := os.Getenv("MONGO_URI")
	sessionSecret := os.Getenv("SESSION_SECRET")

	if mongoURI == "" || sessionSecret == "" {
		return nil, fmt.Errorf("failed to load the environment configuration: MONGO_URI and SESSION_SECRET are required")
	}

	cfg := &AppConfig{
		Addr:              ":8080",
		MongoURI:          mongoURI,
		MongoDB:           "yapster",
		SessionSecret:     sessionSecret,
		ReconcileInterval: time.Hour,
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if db := os.Getenv("MONGO_DB"); db != "" {
		cfg.MongoDB = db
	}
	if raw := os.Getenv("RECONCILE_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECONCILE_INTERVAL %q: %v", raw, err)
		}
		cfg.ReconcileInterval = interval
	}

	return cfg, nil
}
