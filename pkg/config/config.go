package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"PredVal/pkg/logger"
	"PredVal/pkg/util"
)

type Config struct {
	Environment string        `yaml:"environment" default:"development" validate:"required"`
	Log         logger.Config `yaml:"log"`
	Input       struct {
		WindowFile    string `yaml:"window_file"`
		ActualFile    string `yaml:"actual_file"`
		PredictedFile string `yaml:"predicted_file"`
	} `yaml:"input"`
	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`
	Pipeline struct {
		EmptyWindowPolicy string `yaml:"empty_window_policy" default:"fail" validate:"oneof=fail null"`
	} `yaml:"pipeline"`
	Backend struct {
		Type string `yaml:"type" default:"none" validate:"oneof=none kafka clickhouse"`
	} `yaml:"backend"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		BodyLimit       string        `yaml:"body_limit" default:"32M"`
	} `yaml:"server"`
	Metrics struct {
		Enabled        bool   `yaml:"enabled"`
		PushGatewayURL string `yaml:"push_gateway_url" validate:"omitempty,url"`
		Job            string `yaml:"job" default:"predval"`
	} `yaml:"metrics"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"predval.windows"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"100ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"predval"`
		Table            string        `yaml:"table" default:"window_errors"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
	} `yaml:"clickhouse"`
	Cache struct {
		Enabled  bool          `yaml:"enabled"`
		Addr     string        `yaml:"addr" default:"localhost:6379"` // host:port or a comma separated cluster list
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Prefix   string        `yaml:"prefix" default:"predval"`
		TTL      time.Duration `yaml:"ttl" default:"24h"`
	} `yaml:"cache"`
}

var validate = validator.New()

// Default returns a configuration populated with default values only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML (or defaults when path is empty or
// missing), overrides with environment variables, then validates.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c, err = Default()
	} else {
		c, err = Load(path)
		if errors.Is(err, os.ErrNotExist) {
			c, err = Default()
		}
	}
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PREDVAL_WINDOW_FILE"); v != "" {
		c.Input.WindowFile = v
	}
	if v := os.Getenv("PREDVAL_ACTUAL_FILE"); v != "" {
		c.Input.ActualFile = v
	}
	if v := os.Getenv("PREDVAL_PREDICTED_FILE"); v != "" {
		c.Input.PredictedFile = v
	}
	if v := os.Getenv("PREDVAL_OUTPUT_FILE"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("PREDVAL_BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("PREDVAL_SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when backend.type is kafka")
	}
	if c.Metrics.Enabled && c.Metrics.PushGatewayURL == "" {
		return fmt.Errorf("metrics.push_gateway_url is required when metrics are enabled")
	}
	return nil
}

// ValidateBatch checks that every batch input and output path is known.
func (c *Config) ValidateBatch() error {
	missing := map[string]string{
		"input.window_file":    c.Input.WindowFile,
		"input.actual_file":    c.Input.ActualFile,
		"input.predicted_file": c.Input.PredictedFile,
		"output.path":          c.Output.Path,
	}
	for _, key := range []string{"input.window_file", "input.actual_file", "input.predicted_file", "output.path"} {
		if missing[key] == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	return nil
}
