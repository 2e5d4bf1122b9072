package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"webmarcas/backend/internal/scoring"
)

// Load reads configuration from an optional .env file, an optional YAML file and the
// environment, in increasing order of precedence. An empty path searches for
// config.yaml in the working directory and ./configs.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	overrideFromLegacyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		logrus.WithError(err).Warn("load .env")
		return
	}
	logrus.Debug("loaded .env")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 2000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("database.path", "data/webmarcas.db")
	v.SetDefault("database.silent", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ai.disabled", false)
	v.SetDefault("ai.timeout", 20*time.Second)
	v.SetDefault("ai.near_match_threshold", 0.75)
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openai.temperature", 0.3)
	v.SetDefault("ai.openai.max_tokens", 1200)
	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	v.SetDefault("ai.gemini.temperature", 0.3)
	v.SetDefault("ai.gemini.max_tokens", 1200)

	rules := scoring.DefaultRules()
	v.SetDefault("scoring.baseline", rules.Baseline)
	v.SetDefault("scoring.short_length", rules.ShortLength)
	v.SetDefault("scoring.short_penalty", rules.ShortPenalty)
	v.SetDefault("scoring.long_length", rules.LongLength)
	v.SetDefault("scoring.long_penalty", rules.LongPenalty)
	v.SetDefault("scoring.generic_word_penalty", rules.GenericWordPenalty)
	v.SetDefault("scoring.personal_name_penalty", rules.PersonalNamePenalty)
	v.SetDefault("scoring.digit_penalty", rules.DigitPenalty)
	v.SetDefault("scoring.multi_word_bonus", rules.MultiWordBonus)
	v.SetDefault("scoring.invented_bonus", rules.InventedBonus)
	v.SetDefault("scoring.min_score", rules.MinScore)
	v.SetDefault("scoring.max_score", rules.MaxScore)
	v.SetDefault("scoring.high_threshold", rules.HighThreshold)
	v.SetDefault("scoring.medium_threshold", rules.MediumThreshold)
}

// overrideFromLegacyEnv honours the conventional provider variables when the namespaced
// ones are unset.
func overrideFromLegacyEnv(cfg *Config) {
	if cfg.AI.OpenAI.APIKey == "" {
		cfg.AI.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if cfg.AI.Gemini.APIKey == "" {
		if val := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); val != "" {
			cfg.AI.Gemini.APIKey = val
		} else {
			cfg.AI.Gemini.APIKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.AI.Timeout <= 0 {
		errs = append(errs, errors.New("ai.timeout must be positive"))
	}
	if c.AI.NearMatchThreshold <= 0 || c.AI.NearMatchThreshold > 1 {
		errs = append(errs, errors.New("ai.near_match_threshold must be in (0, 1]"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	r := c.Scoring
	if r.MinScore < 0 || r.MaxScore > 100 || r.MinScore >= r.MaxScore {
		errs = append(errs, fmt.Errorf("scoring range [%d, %d] invalid", r.MinScore, r.MaxScore))
	}
	if r.MediumThreshold > r.HighThreshold {
		errs = append(errs, errors.New("scoring.medium_threshold must not exceed scoring.high_threshold"))
	}
	return errors.Join(errs...)
}

// ConfigureLogging applies level and formatter to the standard logrus logger.
func (c LogConfig) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if strings.EqualFold(c.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
