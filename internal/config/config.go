package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration, shared by the
// refresh pipeline and the API server.
type Config struct {
	AppEnv          string          `mapstructure:"app_env"`
	Logger          LoggerConfig    `mapstructure:"logger"`
	Bank            BankConfig      `mapstructure:"bank"`
	Feeds           FeedsConfig     `mapstructure:"feeds"`
	Generator       GeneratorConfig `mapstructure:"generator"`
	Dedup           DedupConfig     `mapstructure:"dedup"`
	Server          ServerConfig    `mapstructure:"server"`
	Redis           RedisConfig     `mapstructure:"redis"`
	AnthropicAPIKey string          `mapstructure:"-"`
}

type LoggerConfig struct {
	Env   string `mapstructure:"env"`
	Level string `mapstructure:"level"`
}

type BankConfig struct {
	File        string `mapstructure:"file"`
	PendingFile string `mapstructure:"pending_file"`
}

type FeedSource struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

type FeedsConfig struct {
	Sources      []FeedSource `mapstructure:"sources"`
	MaxPerFeed   int          `mapstructure:"max_per_feed"`
	SummaryLimit int          `mapstructure:"summary_limit"`
}

type GeneratorConfig struct {
	Model        string  `mapstructure:"model"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxHeadlines int     `mapstructure:"max_headlines"`
}

type DedupConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LoadConfig reads config.yaml (from path if given, otherwise the working
// directory), applies defaults and environment overrides, and returns the
// assembled Config. A missing config file is not an error; missing
// ANTHROPIC_API_KEY is checked by callers that actually invoke the generator.
func LoadConfig(path string) (*Config, error) {
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

	v.SetEnvPrefix("BRAINBURST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: defaults plus environment still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.AppEnv
	}

	// Secrets come from the environment only, never the config file.
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")

	// Override with environment variables if set
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		cfg.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("bank.file", "diplomacy_questions.json")
	v.SetDefault("bank.pending_file", "pending_questions.json")

	v.SetDefault("feeds.sources", []map[string]string{
		{"name": "Reuters World", "url": "https://feeds.reuters.com/Reuters/worldNews"},
		{"name": "BBC World", "url": "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{"name": "Al Jazeera", "url": "https://www.aljazeera.com/xml/rss/all.xml"},
		{"name": "The Guardian World", "url": "https://www.theguardian.com/world/rss"},
		{"name": "AP News World", "url": "https://rsshub.app/apnews/topics/world-news"},
	})
	v.SetDefault("feeds.max_per_feed", 10)
	v.SetDefault("feeds.summary_limit", 500)

	v.SetDefault("generator.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("generator.max_tokens", 4096)
	v.SetDefault("generator.temperature", 0.7)
	v.SetDefault("generator.max_headlines", 15)

	v.SetDefault("dedup.similarity_threshold", 0.85)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "1h")
}
