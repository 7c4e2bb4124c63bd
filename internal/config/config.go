// Package config loads and validates the claimlens configuration from
// configuration files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/claimtext"
)

// Config represents the complete configuration for the claimlens application.
// It covers all commands (process, accuracy) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Text normalization configuration
	Normalizer claimtext.Config `mapstructure:"normalizer" yaml:"normalizer" json:"normalizer"`

	// Form-family configuration (labels, exclusions, plausibility limits)
	Form FormConfig `mapstructure:"form" yaml:"form" json:"form"`

	// Ingestion configuration
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest" json:"ingest"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Format   string `mapstructure:"format" yaml:"format" json:"format"`
	Detailed bool   `mapstructure:"detailed" yaml:"detailed" json:"detailed"`
}

// IngestConfig contains ingestion coordinator settings.
type IngestConfig struct {
	// Workers bounds the recognition worker pool (0 = runtime.NumCPU()).
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// FormConfig hoists the form-family literals out of the extraction logic:
// label synonyms, excluded values, and plausibility limits are configuration,
// not code, so the extraction driver stays form-agnostic.
type FormConfig struct {
	// DocumentType labels the produced structured document.
	DocumentType string `mapstructure:"document_type" yaml:"document_type" json:"document_type"`

	// EnvelopeLabel is the label preceding the envelope/transaction
	// identifier on signed forms.
	EnvelopeLabel string `mapstructure:"envelope_label" yaml:"envelope_label" json:"envelope_label"`

	// ExcludedZIPCodes are postal codes that belong to the form issuer's
	// own header block and must never be attributed to the claimant.
	ExcludedZIPCodes []string `mapstructure:"excluded_zip_codes" yaml:"excluded_zip_codes" json:"excluded_zip_codes"`

	// SentinelValues are tokens meaning "no value" on this form family.
	SentinelValues []string `mapstructure:"sentinel_values" yaml:"sentinel_values" json:"sentinel_values"`

	// NameStopList filters name-shaped candidates that are actually form
	// boilerplate (issuer name, section titles, the issuer's city).
	NameStopList []string `mapstructure:"name_stop_list" yaml:"name_stop_list" json:"name_stop_list"`

	// MinPolicyNumberLength is the minimum plausible policy number length.
	MinPolicyNumberLength int `mapstructure:"min_policy_number_length" yaml:"min_policy_number_length" json:"min_policy_number_length"`

	// MinPhoneDigits is the minimum digit count for a phone candidate;
	// anything shorter is a page number or artifact.
	MinPhoneDigits int `mapstructure:"min_phone_digits" yaml:"min_phone_digits" json:"min_phone_digits"`

	// CheckboxWindow is the character window after a checkbox label in
	// which a mark glyph counts as checking the box.
	CheckboxWindow int `mapstructure:"checkbox_window" yaml:"checkbox_window" json:"checkbox_window"`
}

// DefaultConfig returns the built-in defaults for the WorldTrips claimant
// statement form family.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output: OutputConfig{
			Dir:    "output",
			Format: "json",
		},
		Normalizer: claimtext.DefaultConfig(),
		Form:       DefaultFormConfig(),
		Ingest: IngestConfig{
			Workers: 0,
		},
	}
}

// DefaultFormConfig returns the form-family defaults.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		DocumentType:  "WorldTrips Claimant Statement and Authorization",
		EnvelopeLabel: "DocuSign Envelope ID",
		// 48333-2005 is the issuer's header ZIP; 2005 its box number.
		ExcludedZIPCodes:      []string{"48333", "2005"},
		SentinelValues:        []string{"none", "n/a", "unspecified"},
		NameStopList:          []string{"World Trips", "Home Country", "Claimant Statement", "Farmington Hills", "Print Name"},
		MinPolicyNumberLength: 7,
		MinPhoneDigits:        7,
		CheckboxWindow:        3,
	}
}

// validLogLevels are the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// validFormats are the accepted output formats.
var validFormats = map[string]bool{
	"json": true, "text": true,
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q (want debug, info, warn, or error)", c.LogLevel)
	}
	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format %q (want json or text)", c.Output.Format)
	}
	if c.Normalizer.LowConfidenceThreshold < 0 || c.Normalizer.LowConfidenceThreshold > 1 {
		return fmt.Errorf("low_confidence_threshold %v out of range [0,1]", c.Normalizer.LowConfidenceThreshold)
	}
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("ingest workers must be >= 0, got %d", c.Ingest.Workers)
	}
	if err := c.Form.Validate(); err != nil {
		return fmt.Errorf("form configuration: %w", err)
	}
	return nil
}

// Validate checks the form configuration for consistency.
func (f *FormConfig) Validate() error {
	if f.DocumentType == "" {
		return fmt.Errorf("document_type must not be empty")
	}
	if f.MinPolicyNumberLength <= 0 {
		return fmt.Errorf("min_policy_number_length must be positive, got %d", f.MinPolicyNumberLength)
	}
	if f.MinPhoneDigits <= 0 {
		return fmt.Errorf("min_phone_digits must be positive, got %d", f.MinPhoneDigits)
	}
	if f.CheckboxWindow <= 0 {
		return fmt.Errorf("checkbox_window must be positive, got %d", f.CheckboxWindow)
	}
	return nil
}
