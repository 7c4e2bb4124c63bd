package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested config keys to env var segments
// (output.format -> CLAIMLENS_OUTPUT_FORMAT).
var envKeyReplacer = strings.NewReplacer(".", "_")

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "claimlens"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "CLAIMLENS"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. It uses the global viper
// instance so cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// GetViper exposes the underlying viper instance.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// Load loads configuration from files, environment variables, and defaults.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshalAndValidate()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	return l.unmarshalAndValidate()
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// addConfigPaths registers the config file search locations.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "claimlens"))
	}
	l.v.AddConfigPath("/etc/claimlens")
}

// setupEnvironmentVariables configures env var handling
// (e.g. CLAIMLENS_LOG_LEVEL overrides log_level).
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(envKeyReplacer)
	l.v.AutomaticEnv()
}

// setDefaults registers the default values for all configuration keys.
func (l *Loader) setDefaults() {
	def := DefaultConfig()

	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("verbose", def.Verbose)

	l.v.SetDefault("output.dir", def.Output.Dir)
	l.v.SetDefault("output.format", def.Output.Format)
	l.v.SetDefault("output.detailed", def.Output.Detailed)

	l.v.SetDefault("normalizer.collapse_spaces", def.Normalizer.CollapseSpaces)
	l.v.SetDefault("normalizer.collapse_newlines", def.Normalizer.CollapseNewlines)
	l.v.SetDefault("normalizer.trim_lines", def.Normalizer.TrimLines)
	l.v.SetDefault("normalizer.fix_artifacts", def.Normalizer.FixArtifacts)
	l.v.SetDefault("normalizer.strip_zero_width", def.Normalizer.StripZeroWidth)
	l.v.SetDefault("normalizer.normalize_quotes", def.Normalizer.NormalizeQuotes)
	l.v.SetDefault("normalizer.tighten_punctuation", def.Normalizer.TightenPunctuation)
	l.v.SetDefault("normalizer.low_confidence_threshold", def.Normalizer.LowConfidenceThreshold)

	l.v.SetDefault("form.document_type", def.Form.DocumentType)
	l.v.SetDefault("form.envelope_label", def.Form.EnvelopeLabel)
	l.v.SetDefault("form.excluded_zip_codes", def.Form.ExcludedZIPCodes)
	l.v.SetDefault("form.sentinel_values", def.Form.SentinelValues)
	l.v.SetDefault("form.name_stop_list", def.Form.NameStopList)
	l.v.SetDefault("form.min_policy_number_length", def.Form.MinPolicyNumberLength)
	l.v.SetDefault("form.min_phone_digits", def.Form.MinPhoneDigits)
	l.v.SetDefault("form.checkbox_window", def.Form.CheckboxWindow)

	l.v.SetDefault("ingest.workers", def.Ingest.Workers)
}
