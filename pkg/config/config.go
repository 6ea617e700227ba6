package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
		ObservationTable string        `yaml:"observation_table"`
		PredictionTable  string        `yaml:"prediction_table"`
		WeightTable      string        `yaml:"weight_table"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		Linger       time.Duration `yaml:"linger"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	Evaluation struct {
		LookbackDays    int           `yaml:"lookback_days"`
		EvaluationRange int           `yaml:"evaluation_range"`
		Scope           string        `yaml:"scope"`
		ZeroPolicy      string        `yaml:"zero_policy"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
		RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	} `yaml:"evaluation"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}

	return c, nil
}

func applyDefaults(c *Config) {
	if c.ClickHouse.Database == "" {
		c.ClickHouse.Database = "warehouse"
	}
	if c.ClickHouse.ObservationTable == "" {
		c.ClickHouse.ObservationTable = c.ClickHouse.Database + ".fact_raw_data"
	}
	if c.ClickHouse.PredictionTable == "" {
		c.ClickHouse.PredictionTable = c.ClickHouse.Database + ".fact_prediction"
	}
	if c.ClickHouse.WeightTable == "" {
		c.ClickHouse.WeightTable = c.ClickHouse.Database + ".aggregated_classifier_weight"
	}
	if c.Evaluation.LookbackDays <= 0 {
		c.Evaluation.LookbackDays = 1
	}
	if c.Evaluation.EvaluationRange <= 0 {
		c.Evaluation.EvaluationRange = 15
	}
	if c.Evaluation.Scope == "" {
		c.Evaluation.Scope = "global"
	}
	if c.Evaluation.ZeroPolicy == "" {
		c.Evaluation.ZeroPolicy = "exclude"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.Evaluation.Scope != "global" && c.Evaluation.Scope != "per-asset" {
		return fmt.Errorf("evaluation.scope must be 'global' or 'per-asset', got '%s'", c.Evaluation.Scope)
	}
	if c.Evaluation.ZeroPolicy != "exclude" && c.Evaluation.ZeroPolicy != "error" {
		return fmt.Errorf("evaluation.zero_policy must be 'exclude' or 'error', got '%s'", c.Evaluation.ZeroPolicy)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
