package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/utils"
)

// Config carries deploy-time settings. Values come from an optional YAML file
// (CONFIG_FILE), with environment variables taking precedence over both the
// file and the built-in defaults.
type Config struct {
	Port            string        `yaml:"port"`
	Environment     string        `yaml:"environment"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	LevelLabels     []string      `yaml:"level_labels"`
	RedisNamespace  string        `yaml:"redis_namespace"`
	CompletionTTLH  int           `yaml:"completion_ttl_hours"`
	CompletionTTL   time.Duration `yaml:"-"`
	CatalogSeedFile string        `yaml:"catalog_seed_file"`
}

func defaults() Config {
	return Config{
		Port:        "8080",
		Environment: "development",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		// One label per proficiency level, indexed by the zero-based level
		// the builder UI works with.
		LevelLabels:    []string{"Niveau 1", "Niveau 2", "Niveau 3"},
		RedisNamespace: "naturecamp",
		CompletionTTL:  90 * 24 * time.Hour,
	}
}

func Load(log *logger.Logger) (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
		log.Info("Config file loaded", "path", path)
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.Environment = utils.GetEnv("APP_ENV", cfg.Environment, log)
	if origins := utils.GetEnv("CORS_ORIGINS", "", log); origins != "" {
		cfg.CORSOrigins = splitAndTrim(origins)
	}
	cfg.RedisNamespace = utils.GetEnv("REDIS_NAMESPACE", cfg.RedisNamespace, log)
	cfg.CatalogSeedFile = utils.GetEnv("CATALOG_SEED", cfg.CatalogSeedFile, log)
	if ttl := utils.GetEnvAsInt("COMPLETION_TTL_HOURS", cfg.CompletionTTLH, log); ttl > 0 {
		cfg.CompletionTTL = time.Duration(ttl) * time.Hour
	}

	if len(cfg.LevelLabels) == 0 {
		cfg.LevelLabels = defaults().LevelLabels
	}
	return cfg, nil
}

// LevelLabel returns the display label for a zero-based level index. Out of
// range indexes fall back to a numeric label rather than failing the save.
func (c Config) LevelLabel(levelIndex int) string {
	if levelIndex >= 0 && levelIndex < len(c.LevelLabels) {
		return c.LevelLabels[levelIndex]
	}
	return fmt.Sprintf("Niveau %d", levelIndex+1)
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
