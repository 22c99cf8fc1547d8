package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/snipdeck/internal/cmd/globals"
	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog configuration
	Source        string
	FailurePolicy string
	CopyFeedback  time.Duration

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from the config file or environment.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string

	Server ServerConfig
}

// ServerConfig holds the settings of the serve command.
type ServerConfig struct {
	Host        string
	Port        int
	Prefix      string
	CacheTTL    time.Duration
	RateLimit   int
	CORSOrigins []string
	Metrics     bool
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (SNIPDECK_*)
//  3. .env.local, then .env
//  4. Config file (./.snipdeck.yaml or ~/.snipdeck.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// LOG_LEVEL and friends are honored without the prefix too.
	for _, key := range []string{"log_level", "log_format", "log_output"} {
		envKey := strings.ToUpper(key)
		if err := v.BindEnv(key, constants.EnvPrefix+"_"+envKey, envKey); err != nil {
			return nil, errors.NewConfigError("env", "binding "+envKey, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "reading "+configFile, err)
		}
	} else {
		v.SetConfigName(constants.DefaultConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := userHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("file", "reading config", err)
			}
		}
	}

	return &Config{
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		NoColor:       v.GetBool("no_color"),
		Format:        v.GetString("format"),
		ConfigFile:    v.ConfigFileUsed(),
		Source:        v.GetString("source"),
		FailurePolicy: v.GetString("failure_policy"),
		CopyFeedback:  v.GetDuration("copy_feedback"),
		EnvLogLevel:   v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		LogOutput:     v.GetString("log_output"),
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			Prefix:      v.GetString("server.prefix"),
			CacheTTL:    v.GetDuration("server.cache_ttl"),
			RateLimit:   v.GetInt("server.rate_limit"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
			Metrics:     v.GetBool("server.metrics"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("failure_policy", "partial")
	v.SetDefault("copy_feedback", constants.CopyFeedbackDuration)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.prefix", "/api/v1")
	v.SetDefault("server.cache_ttl", constants.CacheTTL)
	v.SetDefault("server.rate_limit", constants.DefaultRateLimit)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.metrics", true)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Output != "" {
		c.Format = flags.Output
	}
	if flags.Source != "" {
		c.Source = flags.Source
	}
	c.LogLevel = flags.LogLevel
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides variables that are already set, so .env.local is loaded first.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
