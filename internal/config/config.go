package config

import (
	"fmt"
	"os"

	"codeberg.org/vrekk/battstat/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultSysfsPath = "/sys/class/power_supply"
	DefaultThreshold = 1.0
	DefaultJournalDB = "/var/lib/battstat/journal.db"
	DefaultLogLevel  = "warning"

	envPrefix = "BATTSTAT"
	// EnvConfigFile points at an explicit configuration file, bypassing
	// the /etc lookup. Used by tests.
	EnvConfigFile = "BATTSTAT_CONFIG"
)

type Config struct {
	SysfsPath string  `mapstructure:"sysfs_path"`
	Threshold float64 `mapstructure:"threshold"`
	Journal   bool    `mapstructure:"journal"`
	JournalDB string  `mapstructure:"journal_db"`
	LogLevel  string  `mapstructure:"log_level"`
	Debug     bool    `mapstructure:"debug"`
	Verbose   bool    `mapstructure:"verbose"`
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}

// Load merges defaults, an optional TOML config file, BATTSTAT_* environment
// variables and command line flags, in ascending order of precedence.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("battstat", pflag.ContinueOnError)
	sysfsPath := fs.String("sysfs-path", DefaultSysfsPath, "Power-supply sysfs root to scan for batteries")
	threshold := fs.Float64("threshold", DefaultThreshold, "Charge-threshold fraction used for the time-to-full estimate")
	journal := fs.Bool("journal", false, "Record each snapshot to the journal database")
	journalDB := fs.String("journal-db", DefaultJournalDB, "Path to the journal database")
	logLevel := fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	debug := fs.Bool("debug", false, "Enable debugging mode")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("sysfs_path", DefaultSysfsPath)
	v.SetDefault("threshold", DefaultThreshold)
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", DefaultJournalDB)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path := os.Getenv(EnvConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName("battstat")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	// Command line flags override config file and environment values
	if fs.Changed("sysfs-path") {
		v.Set("sysfs_path", *sysfsPath)
	}
	if fs.Changed("threshold") {
		v.Set("threshold", *threshold)
	}
	if fs.Changed("journal") {
		v.Set("journal", *journal)
	}
	if fs.Changed("journal-db") {
		v.Set("journal_db", *journalDB)
	}
	if fs.Changed("log-level") {
		v.Set("log_level", *logLevel)
	}
	if fs.Changed("debug") {
		v.Set("debug", *debug)
	}
	if fs.Changed("verbose") {
		v.Set("verbose", *verbose)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.SysfsPath == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "sysfs path must not be empty")
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return errFactory.WithData(errors.ErrInvalidConfig,
			fmt.Sprintf("threshold must be within (0, 1], got %v", c.Threshold))
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Journal && c.JournalDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal database path must not be empty")
	}

	return nil
}
