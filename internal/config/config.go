// =============================================================================
// csv2locale - Configuration Module
// =============================================================================
//
// This module loads the optional converter configuration. Settings come from
// three layers, later layers winning:
//   1. Built-in defaults (applyDefaults)
//   2. The config file (csv2locale.yaml, or any *.toml file)
//   3. Environment variables, after an optional .env file is loaded
//
// Command-line flags are applied on top of the result by the cmd package.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = "csv2locale.yaml"

// Duplicate sentinel policies.
const (
	// SentinelLastWins keeps the value of the last ::locale/::fallback/
	// ::plural/::author row and logs a warning for each repeat.
	SentinelLastWins = "last"

	// SentinelReject fails the run on the first repeated sentinel row.
	SentinelReject = "reject"
)

// Input formats.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Environment variables read by Load.
const (
	EnvLogLevel           = "CSV2LOCALE_LOG_LEVEL"
	EnvEncoding           = "CSV2LOCALE_ENCODING"
	EnvDelimiter          = "CSV2LOCALE_DELIMITER"
	EnvDuplicateSentinels = "CSV2LOCALE_DUPLICATE_SENTINELS"
	EnvStrict             = "CSV2LOCALE_STRICT"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter configuration.
type Config struct {
	// InputFormat forces the table reader: "auto" (by extension), "csv" or "xlsx".
	// Default: "auto"
	InputFormat string `yaml:"input_format" toml:"input_format"`

	// Sheet is the worksheet read from XLSX input. Empty means the first one.
	Sheet string `yaml:"sheet" toml:"sheet"`

	// CSVSettings contains settings for parsing delimited input.
	CSVSettings CSVSettings `yaml:"csv_settings" toml:"csv_settings"`

	// Output contains serializer and file settings.
	Output OutputSettings `yaml:"output" toml:"output"`

	// DuplicateSentinels is the policy for repeated sentinel rows:
	// "last" or "reject".
	// Default: "last"
	DuplicateSentinels string `yaml:"duplicate_sentinels" toml:"duplicate_sentinels"`

	// Validation contains the advisory check settings.
	Validation ValidationSettings `yaml:"validation" toml:"validation"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format" toml:"log_format"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator. Aliases: "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Encoding is the IANA charset name of the input.
	// Common values: "UTF-8", "UTF-16", "windows-1252", "ISO-8859-1"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" toml:"encoding"`

	// LazyQuotes tolerates quotes appearing in unquoted fields.
	LazyQuotes bool `yaml:"lazy_quotes" toml:"lazy_quotes"`
}

// OutputSettings contains settings for the generated XML.
type OutputSettings struct {
	// Indent is the string used for one nesting level.
	// Default: "  " (two spaces)
	Indent string `yaml:"indent" toml:"indent"`

	// OmitDeclaration drops the <?xml ...?> declaration.
	OmitDeclaration bool `yaml:"omit_declaration" toml:"omit_declaration"`

	// BackupExisting copies an existing output file to BackupDir before it
	// is overwritten.
	BackupExisting bool `yaml:"backup_existing" toml:"backup_existing"`

	// BackupDir is where backups go. Relative paths are resolved against the
	// output file's directory.
	// Default: "backup"
	BackupDir string `yaml:"backup_dir" toml:"backup_dir"`

	// BackupTimestampSubdirs files backups under year/month/day folders.
	BackupTimestampSubdirs bool `yaml:"backup_timestamp_subdirs" toml:"backup_timestamp_subdirs"`
}

// ValidationSettings contains settings for the advisory checks.
type ValidationSettings struct {
	// Strict fails the run when blocking issues are found.
	Strict bool `yaml:"strict" toml:"strict"`

	// WarningsAsErrors makes warnings blocking in strict mode.
	WarningsAsErrors bool `yaml:"warnings_as_errors" toml:"warnings_as_errors"`

	// ReferenceLanguage is compared against for placeholder checks.
	// Empty means the first requested language.
	ReferenceLanguage string `yaml:"reference_language" toml:"reference_language"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path, then applies environment
// overrides and defaults.
//
// A missing file is not an error unless explicit is true (the user passed
// --config). A .env file in the working directory is loaded when present.
func Load(path string, explicit bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := unmarshal(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file; defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// unmarshal decodes data as TOML for *.toml files and YAML otherwise.
func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overrides file settings with environment variables.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvEncoding); ok {
		cfg.CSVSettings.Encoding = v
	}
	if v, ok := os.LookupEnv(EnvDelimiter); ok {
		cfg.CSVSettings.Delimiter = v
	}
	if v, ok := os.LookupEnv(EnvDuplicateSentinels); ok {
		cfg.DuplicateSentinels = v
	}
	if v, ok := os.LookupEnv(EnvStrict); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Validation.Strict = strict
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFormat == "" {
		cfg.InputFormat = FormatAuto
	}
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}
	if cfg.Output.Indent == "" {
		cfg.Output.Indent = "  "
	}
	if cfg.Output.BackupDir == "" {
		cfg.Output.BackupDir = "backup"
	}
	if cfg.DuplicateSentinels == "" {
		cfg.DuplicateSentinels = SentinelLastWins
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.InputFormat) {
	case FormatAuto, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("input_format must be %q, %q or %q, got %q", FormatAuto, FormatCSV, FormatXLSX, c.InputFormat)
	}

	if _, err := c.CSVSettings.Comma(); err != nil {
		return err
	}

	switch c.DuplicateSentinels {
	case SentinelLastWins, SentinelReject:
	default:
		return fmt.Errorf("duplicate_sentinels must be %q or %q, got %q", SentinelLastWins, SentinelReject, c.DuplicateSentinels)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat)
	}

	if strings.Trim(c.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent may only contain spaces and tabs")
	}

	return nil
}

// Comma resolves the configured delimiter to a single rune.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon", "SEMICOLON":
		return ';', nil
	}

	if utf8.RuneCountInString(s.Delimiter) != 1 {
		return 0, fmt.Errorf("csv_settings.delimiter must be a single character, got %q", s.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("csv_settings.delimiter %q is not allowed", s.Delimiter)
	}
	return r, nil
}
