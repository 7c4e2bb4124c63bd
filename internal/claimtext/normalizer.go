// Package claimtext cleans raw recognized text and aggregates per-token
// confidence. Cleaning repairs artifacts the recognition collaborator is
// known to produce (stray pipes, broken glyph runs, curly quotes) so that
// downstream pattern matching sees stable input.
package claimtext

import (
	"regexp"
	"strings"
)

// Config toggles the individual normalization steps. Every step can be
// switched off independently, matching the form-family configuration file.
type Config struct {
	CollapseSpaces     bool `mapstructure:"collapse_spaces" yaml:"collapse_spaces" json:"collapse_spaces"`
	CollapseNewlines   bool `mapstructure:"collapse_newlines" yaml:"collapse_newlines" json:"collapse_newlines"`
	TrimLines          bool `mapstructure:"trim_lines" yaml:"trim_lines" json:"trim_lines"`
	FixArtifacts       bool `mapstructure:"fix_artifacts" yaml:"fix_artifacts" json:"fix_artifacts"`
	StripZeroWidth     bool `mapstructure:"strip_zero_width" yaml:"strip_zero_width" json:"strip_zero_width"`
	NormalizeQuotes    bool `mapstructure:"normalize_quotes" yaml:"normalize_quotes" json:"normalize_quotes"`
	TightenPunctuation bool `mapstructure:"tighten_punctuation" yaml:"tighten_punctuation" json:"tighten_punctuation"`

	// LowConfidenceThreshold is the cutoff under which a token counts as a
	// low-confidence detection.
	LowConfidenceThreshold float64 `mapstructure:"low_confidence_threshold" yaml:"low_confidence_threshold" json:"low_confidence_threshold"`
}

// DefaultConfig enables every step with the standard threshold.
func DefaultConfig() Config {
	return Config{
		CollapseSpaces:         true,
		CollapseNewlines:       true,
		TrimLines:              true,
		FixArtifacts:           true,
		StripZeroWidth:         true,
		NormalizeQuotes:        true,
		TightenPunctuation:     true,
		LowConfidenceThreshold: 0.7,
	}
}

// correction is one entry of the ordered recognition-artifact table.
type correction struct {
	pattern     *regexp.Regexp
	replacement string
}

// Known recognition artifacts, applied in order. The isolated-character
// rules rely on word boundaries so legitimate occurrences inside words
// are left alone.
var corrections = []correction{
	{regexp.MustCompile(`\b0\b`), "O"},
	{regexp.MustCompile(`\bl\b`), "I"},
	{regexp.MustCompile(`rn`), "m"},
	{regexp.MustCompile(`\|`), "I"},
	{regexp.MustCompile(`~`), "-"},
}

var (
	multiSpace    = regexp.MustCompile(` +`)
	multiNewline  = regexp.MustCompile(`\n{3,}`)
	zeroWidth     = regexp.MustCompile("[\u200B-\u200D\uFEFF]")
	spaceBeforePn = regexp.MustCompile(`\s+([.,;:!?])`)
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

// Normalizer applies the configured cleaning steps.
type Normalizer struct {
	cfg Config
}

// NewNormalizer builds a normalizer from the given configuration.
func NewNormalizer(cfg Config) *Normalizer {
	if cfg.LowConfidenceThreshold <= 0 {
		cfg.LowConfidenceThreshold = 0.7
	}
	return &Normalizer{cfg: cfg}
}

// Normalize cleans raw recognized text. It is idempotent: normalizing
// already-normalized text yields the same value.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}

	if n.cfg.StripZeroWidth {
		text = zeroWidth.ReplaceAllString(text, "")
	}
	if n.cfg.CollapseSpaces {
		text = multiSpace.ReplaceAllString(text, " ")
	}
	if n.cfg.CollapseNewlines {
		text = multiNewline.ReplaceAllString(text, "\n\n")
	}
	if n.cfg.TrimLines {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	if n.cfg.FixArtifacts {
		for _, c := range corrections {
			text = c.pattern.ReplaceAllString(text, c.replacement)
		}
	}
	if n.cfg.NormalizeQuotes {
		text = quoteReplacer.Replace(text)
	}
	if n.cfg.TightenPunctuation {
		text = spaceBeforePn.ReplaceAllString(text, "$1")
	}

	return text
}
