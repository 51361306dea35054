package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	JWTSecret      string
	NATSURL        string
	AllowedOrigins []string
	Tables         []string
	ChefKeys       map[string]string
	PaymentDelay   time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		NATSURL:        os.Getenv("NATS_URL"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		Tables:         splitList(getEnv("TABLES", "A,B,C,D,E,F,G,H")),
		ChefKeys:       parseChefKeys(getEnv("CHEF_KEYS", defaultChefKeys)),
		PaymentDelay:   getDuration("PAYMENT_DELAY", 0),
	}
}

// defaultChefKeys is the fixed access-key table carried over from the original
// deployment. Override with CHEF_KEYS in any real environment.
const defaultChefKeys = "CHEF-2025-001:Head Chef,CHEF-2025-002:Sous Chef,CHEF-2025-003:Line Chef"

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseChefKeys parses "KEY:Display Name" pairs separated by commas.
func parseChefKeys(s string) map[string]string {
	keys := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		key, name, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || key == "" {
			continue
		}
		keys[key] = strings.TrimSpace(name)
	}
	return keys
}
