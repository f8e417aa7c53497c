package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/creational/internal/config"
	"github.com/zjrosen/creational/internal/log"
	"github.com/zjrosen/creational/internal/tracing"
)

// skipValidation marks commands that must run even with a broken config file.
const skipValidation = "skip-validation"

const localConfigPath = ".creational/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	cfgErr     error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "creational",
	Short: "Prototype pattern demonstrations",
	Long: `Clones a root object that owns a primitive value, a component and a
back-reference node, then reports whether the clone was wired correctly.

Run without a subcommand to execute the reference scenario.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runPrototype,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./"+localConfigPath+" or ~/.config/creational/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by CREATIONAL_DEBUG)")
}

func initConfig() {
	setDefaults(config.Defaults())

	viper.SetEnvPrefix("CREATIONAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .creational/config.yaml (current directory)
		// 2. ~/.config/creational/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "creational"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults apply. Other errors surface in setup.
	cfgErr = nil
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			cfgErr = fmt.Errorf("reading config: %w", err)
		}
	}
	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil && cfgErr == nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
}

func setDefaults(d config.Config) {
	viper.SetDefault("debug", d.Debug)
	viper.SetDefault("log_file", d.LogFile)
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("prototype.value", d.Prototype.Value)
	viper.SetDefault("prototype.label", d.Prototype.Label)
	viper.SetDefault("prototype.copies", d.Prototype.Copies)
	viper.SetDefault("prototypes", d.Prototypes)
	viper.SetDefault("registry.ttl", d.Registry.TTL)
	viper.SetDefault("registry.cleanup_interval", d.Registry.CleanupInterval)
	viper.SetDefault("tracing.enabled", d.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", d.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func setup(cmd *cobra.Command, _ []string) error {
	if debugFlag {
		cfg.Debug = true
	}
	if cfg.Debug {
		logPath := cfg.LogFile
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
		logCleanup = cleanup
	}

	log.Debug(log.CatCLI, "Command starting", "cmd", cmd.CommandPath(), "config", viper.ConfigFileUsed())

	if _, skip := cmd.Annotations[skipValidation]; skip {
		return nil
	}
	if cfgErr != nil {
		log.ErrorErr(log.CatConfig, "Failed to load config", cfgErr)
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		log.ErrorErr(log.CatConfig, "Invalid configuration", err)
		return err
	}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	log.Debug(log.CatCLI, "Command finished", "cmd", cmd.CommandPath())
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// startTracing builds the tracing provider and returns a shutdown func that
// flushes pending spans.
func startTracing() (*tracing.Provider, func(), error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("starting tracing: %w", err)
	}
	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
