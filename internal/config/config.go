package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
)

// Config holds all configuration for demand-estimator-service
type Config struct {
	Server     ServerConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	Estimation EstimationConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string // Topic to consume from (booking_snapshots)
	GroupID string `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// EstimationConfig holds MFRM estimation parameters
type EstimationConfig struct {
	Calibrate          bool    // redistribute unaccounted spill to zero-booking products
	DefaultMarketShare float64 `mapstructure:"default_market_share"` // fallback host market share for utility-only snapshots
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "booking_snapshots")
	v.SetDefault("kafka.group_id", "demand-estimator")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 1*time.Hour)

	v.SetDefault("estimation.calibrate", true)
	v.SetDefault("estimation.default_market_share", 0.5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("DEMAND_ESTIMATOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToEstimationParams converts config to estimation parameters
func (c *EstimationConfig) ToEstimationParams() models.EstimationParams {
	return models.EstimationParams{
		Calibrate:          c.Calibrate,
		DefaultMarketShare: c.DefaultMarketShare,
	}
}
