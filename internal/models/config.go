package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	UploadRateLimit int           `mapstructure:"upload_rate_limit"` // requests per minute
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type KafkaConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	BrokerList       string `mapstructure:"broker_list"`
	Topic            string `mapstructure:"topic"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type ExportConfig struct {
	OutputPath  string `mapstructure:"output_path"`
	Format      string `mapstructure:"format"`      // "html" or "parquet"
	Destination string `mapstructure:"destination"` // "local" or "s3"
}

type SampleConfig struct {
	Seed         int64 `mapstructure:"seed"`
	Days         int   `mapstructure:"days"`
	OrdersPerDay int   `mapstructure:"orders_per_day"`
}

type Config struct {
	DataDir         string             `mapstructure:"data_dir"`
	Currency        string             `mapstructure:"currency"`
	LogLevel        string             `mapstructure:"log_level"`
	TrendWindowDays int                `mapstructure:"trend_window_days"`
	Server          ServerConfig       `mapstructure:"server"`
	Database        DatabaseConfig     `mapstructure:"database"`
	Kafka           KafkaConfig        `mapstructure:"kafka"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`
	Export          ExportConfig       `mapstructure:"export"`
	Sample          SampleConfig       `mapstructure:"sample"`
	SocialDataFile  string             `mapstructure:"social_data_file"`
	GMBDataFile     string             `mapstructure:"gmb_data_file"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("data_dir", "data")
	viper.SetDefault("currency", "AED")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("trend_window_days", 7)
	viper.SetDefault("server.addr", ":5000")
	viper.SetDefault("server.request_timeout", "5s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.upload_rate_limit", 10)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("kafka.broker_list", "localhost:9092")
	viper.SetDefault("kafka.topic", "order_records")
	viper.SetDefault("cloud_storage.provider", "s3")
	viper.SetDefault("export.output_path", "reports")
	viper.SetDefault("export.format", "html")
	viper.SetDefault("export.destination", "local")
	viper.SetDefault("sample.seed", 42)
	viper.SetDefault("sample.days", 30)
	viper.SetDefault("sample.orders_per_day", 40)

	if err := viper.ReadInConfig(); err != nil {
		// a config file is optional; defaults plus env cover the common case
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
