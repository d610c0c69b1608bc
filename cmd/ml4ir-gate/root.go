package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/internal/config"
)

// errRejected signals a negative verdict that has already been reported.
var errRejected = errors.New("rejected")

var rootCmd = &cobra.Command{
	Use:   "ml4ir-gate",
	Short: "ml4ir-gate validates inference payloads against model serving signatures",
	Long: `ml4ir-gate loads the serving signature of each model (from a directory of
YAML/JSON/TOML files or from Redis) and checks request payloads against it:
required fields must be present, and in strict mode undeclared fields are rejected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing signature files (env ML4IR_SIGNATURE_DIR)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL of the signature store (env ML4IR_REDIS_URL)")
	rootCmd.PersistentFlags().String("env", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env ML4IR_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json (env ML4IR_LOG_FORMAT)")
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envPath, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(envPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		cfg.RedisURL, _ = flags.GetString("redis")
	}
	if flags.Changed("dir") {
		cfg.SignatureDir, _ = flags.GetString("dir")
		if !flags.Changed("redis") {
			cfg.RedisURL = ""
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("mode") != nil && flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the settings and opens the signature source.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, cli.Source, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	source, err := cli.OpenSource(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, source, nil
}
