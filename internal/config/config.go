package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the room server settings
type Config struct {
	Port              string        `yaml:"port"`
	BidDuration       time.Duration `yaml:"bid_duration"`
	TickInterval      time.Duration `yaml:"tick_interval"`
	HistoryLimit      int           `yaml:"history_limit"`
	MaxUsernameLength int           `yaml:"max_username_length"`
	SendQueueSize     int           `yaml:"send_queue_size"`
	MaxMessageSize    int64         `yaml:"max_message_size"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	PingInterval      time.Duration `yaml:"ping_interval"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	NATSURL           string        `yaml:"nats_url"`
	NATSSubject       string        `yaml:"nats_subject"`
	LogLevel          string        `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:              "8000",
		BidDuration:       60 * time.Second,
		TickInterval:      time.Second,
		HistoryLimit:      50,
		MaxUsernameLength: 32,
		SendQueueSize:     256,
		MaxMessageSize:    4096,
		WriteTimeout:      10 * time.Second,
		ReadTimeout:       60 * time.Second,
		PingInterval:      30 * time.Second,
		AllowedOrigins:    []string{"http://localhost:3000"},
		NATSSubject:       "auction.room.events",
		LogLevel:          "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (a .env file is loaded first if present).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.BidDuration = getEnvAsDuration("BID_DURATION", c.BidDuration)
	c.TickInterval = getEnvAsDuration("TICK_INTERVAL", c.TickInterval)
	c.HistoryLimit = getEnvAsInt("HISTORY_LIMIT", c.HistoryLimit)
	c.MaxUsernameLength = getEnvAsInt("MAX_USERNAME_LENGTH", c.MaxUsernameLength)
	c.SendQueueSize = getEnvAsInt("SEND_QUEUE_SIZE", c.SendQueueSize)
	c.MaxMessageSize = int64(getEnvAsInt("MAX_MESSAGE_SIZE", int(c.MaxMessageSize)))
	c.WriteTimeout = getEnvAsDuration("WRITE_TIMEOUT", c.WriteTimeout)
	c.ReadTimeout = getEnvAsDuration("READ_TIMEOUT", c.ReadTimeout)
	c.PingInterval = getEnvAsDuration("PING_INTERVAL", c.PingInterval)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.NATSSubject = getEnv("NATS_SUBJECT", c.NATSSubject)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate rejects settings the room cannot run with
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("config: port is required")
	case c.BidDuration <= 0:
		return fmt.Errorf("config: bid_duration must be positive, got %s", c.BidDuration)
	case c.TickInterval <= 0:
		return fmt.Errorf("config: tick_interval must be positive, got %s", c.TickInterval)
	case c.TickInterval > c.BidDuration:
		return fmt.Errorf("config: tick_interval %s exceeds bid_duration %s", c.TickInterval, c.BidDuration)
	case c.HistoryLimit < 0:
		return fmt.Errorf("config: history_limit must not be negative, got %d", c.HistoryLimit)
	case c.MaxUsernameLength <= 0:
		return fmt.Errorf("config: max_username_length must be positive, got %d", c.MaxUsernameLength)
	case c.SendQueueSize <= 0:
		return fmt.Errorf("config: send_queue_size must be positive, got %d", c.SendQueueSize)
	case c.MaxMessageSize <= 0:
		return fmt.Errorf("config: max_message_size must be positive, got %d", c.MaxMessageSize)
	case c.WriteTimeout <= 0 || c.ReadTimeout <= 0 || c.PingInterval <= 0:
		return errors.New("config: websocket timeouts must be positive")
	case c.PingInterval >= c.ReadTimeout:
		return fmt.Errorf("config: ping_interval %s must be shorter than read_timeout %s", c.PingInterval, c.ReadTimeout)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
