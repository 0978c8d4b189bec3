package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Default file names written into the scanned directory
const (
	DefaultManifestName = "SampleList.csv"
	JournalName         = ".samplelist-renames.csv"
	LockName            = ".samplelist.lock"
)

// Default filename patterns. They follow the names produced by the upstream
// pipeline; if those change, adjust here or override them in the config file.
const (
	DefaultFastqPattern = `(?P<sample>[^/]*)_dehosted.*(?P<read>_R[12])\.fastq$`
	DefaultFastaPattern = `(?P<sample>^.+)\.consensus\.(fa|fasta)$`
)

// EnvConfigPath names the environment variable consulted when --config is not given
const EnvConfigPath = "IRIDA_SAMPLELIST_CONFIG"

// PatternsConfig holds the filename regexes for each file type
type PatternsConfig struct {
	// Fastq must define the named groups "sample" and "read"
	Fastq string `yaml:"fastq"`

	// Fasta must define the named group "sample"
	Fasta string `yaml:"fasta"`
}

// Config represents irida-samplelist configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// MinFileSize is the size in bytes a file must exceed to be accepted
	MinFileSize int64 `yaml:"min_file_size"`

	// ManifestName is the manifest file name inside the scanned directory
	ManifestName string `yaml:"manifest_name"`

	// DateFormat is a Go time layout used to normalize sequencing dates.
	// Empty keeps the samplesheet value verbatim.
	DateFormat string `yaml:"date_format"`

	// DryRun logs the plan without renaming or writing anything
	DryRun bool `yaml:"dry_run"`

	// Journal records every rename so a run can be reverted
	Journal bool `yaml:"journal"`

	// Ignore lists glob patterns of directory entries that are never considered
	Ignore []string `yaml:"ignore"`

	// Patterns contains the filename regexes
	Patterns PatternsConfig `yaml:"patterns"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		MinFileSize:  50,
		ManifestName: DefaultManifestName,
		DateFormat:   "",
		DryRun:       false,
		Journal:      true,
		Ignore:       DefaultIgnore(DefaultManifestName),
		Patterns: PatternsConfig{
			Fastq: DefaultFastqPattern,
			Fasta: DefaultFastaPattern,
		},
	}
}

// DefaultIgnore returns the ignore globs that keep the tool's own files and
// hidden files out of the scan
func DefaultIgnore(manifestName string) []string {
	return []string{".*", manifestName}
}

// LoadConfig loads configuration from the specified file path
// An empty path returns the default configuration
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from an explicit zero value
	type yamlConfig struct {
		LogLevel     string   `yaml:"log_level"`
		MinFileSize  *int64   `yaml:"min_file_size"`
		ManifestName string   `yaml:"manifest_name"`
		DateFormat   string   `yaml:"date_format"`
		DryRun       *bool    `yaml:"dry_run"`
		Journal      *bool    `yaml:"journal"`
		Ignore       []string `yaml:"ignore"`
		Patterns     struct {
			Fastq string `yaml:"fastq"`
			Fasta string `yaml:"fasta"`
		} `yaml:"patterns"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.MinFileSize != nil {
		cfg.MinFileSize = *yamlCfg.MinFileSize
	}
	if yamlCfg.ManifestName != "" {
		cfg.ManifestName = yamlCfg.ManifestName
		cfg.Ignore = DefaultIgnore(cfg.ManifestName)
	}
	if yamlCfg.DateFormat != "" {
		cfg.DateFormat = yamlCfg.DateFormat
	}
	if yamlCfg.DryRun != nil {
		cfg.DryRun = *yamlCfg.DryRun
	}
	if yamlCfg.Journal != nil {
		cfg.Journal = *yamlCfg.Journal
	}
	if len(yamlCfg.Ignore) > 0 {
		cfg.Ignore = append(cfg.Ignore, yamlCfg.Ignore...)
	}
	if yamlCfg.Patterns.Fastq != "" {
		cfg.Patterns.Fastq = yamlCfg.Patterns.Fastq
	}
	if yamlCfg.Patterns.Fasta != "" {
		cfg.Patterns.Fasta = yamlCfg.Patterns.Fasta
	}

	return cfg, nil
}

// ResolvePath picks the config file location: the explicit flag value first,
// then the IRIDA_SAMPLELIST_CONFIG environment variable
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfigPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, minFileSize *int64, manifestName *string, dateFormat *string, dryRun *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if minFileSize != nil {
		c.MinFileSize = *minFileSize
	}
	if manifestName != nil && *manifestName != c.ManifestName {
		// Keep the previous manifest out of the scan as well as the new one
		c.Ignore = append(c.Ignore, *manifestName)
		c.ManifestName = *manifestName
	}
	if dateFormat != nil {
		c.DateFormat = *dateFormat
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.MinFileSize < 0 {
		return fmt.Errorf("min_file_size must be >= 0, got %d", c.MinFileSize)
	}

	if c.ManifestName == "" {
		return fmt.Errorf("manifest_name cannot be empty")
	}
	if c.ManifestName != filepath.Base(c.ManifestName) || c.ManifestName == ".." || c.ManifestName == "." {
		return fmt.Errorf("manifest_name must be a file name, got %q", c.ManifestName)
	}

	if err := validatePattern("patterns.fastq", c.Patterns.Fastq, "sample", "read"); err != nil {
		return err
	}
	if err := validatePattern("patterns.fasta", c.Patterns.Fasta, "sample"); err != nil {
		return err
	}

	return nil
}

// validatePattern checks that a pattern compiles and defines the named groups
func validatePattern(key, pattern string, groups ...string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	for _, g := range groups {
		if re.SubexpIndex(g) < 0 {
			return fmt.Errorf("%s must define the named group (?P<%s>...)", key, g)
		}
	}
	return nil
}
