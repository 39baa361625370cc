package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "maxzi-analytics",
	Short: "Restaurant analytics for multi-platform delivery data",
	Long: `maxzi-analytics ingests CSV exports from delivery platforms (Deliveroo,
Talabat, Noon Food and the SAPAAD POS), normalizes them into a single order
schema and serves an analytics dashboard API with aggregates, trends and
data freshness tracking.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.PersistentFlags().String("data-dir", "data", "Directory for the persisted order snapshot")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("addr", ":5000", "API listen address")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Publish accepted uploads to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().Bool("database-enabled", false, "Mirror accepted uploads into Postgres")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("server.addr", rootCmd.PersistentFlags().Lookup("addr"))
	viper.BindPFlag("kafka.enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka.broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
	viper.BindPFlag("database.enabled", rootCmd.PersistentFlags().Lookup("database-enabled"))
}

func initConfig() {
	viper.AutomaticEnv()
}

// loadConfig reads configuration and builds the process logger.
func loadConfig() (*models.Config, zerolog.Logger, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("error loading config: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	return cfg, logger, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
