package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultConfigFile), false)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.InputFormat != FormatAuto {
		t.Errorf("InputFormat = %q", cfg.InputFormat)
	}
	if cfg.CSVSettings.Delimiter != "," || cfg.CSVSettings.Encoding != "UTF-8" {
		t.Errorf("CSVSettings = %+v", cfg.CSVSettings)
	}
	if cfg.Output.Indent != "  " || cfg.Output.BackupDir != "backup" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.DuplicateSentinels != SentinelLastWins {
		t.Errorf("DuplicateSentinels = %q", cfg.DuplicateSentinels)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "csv2locale.yaml", `
input_format: csv
csv_settings:
  delimiter: semicolon
  encoding: windows-1252
output:
  indent: "    "
  omit_declaration: true
duplicate_sentinels: reject
validation:
  strict: true
  reference_language: de
log_level: debug
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.InputFormat != FormatCSV {
		t.Errorf("InputFormat = %q", cfg.InputFormat)
	}
	if comma, _ := cfg.CSVSettings.Comma(); comma != ';' {
		t.Errorf("Comma = %q", comma)
	}
	if cfg.CSVSettings.Encoding != "windows-1252" {
		t.Errorf("Encoding = %q", cfg.CSVSettings.Encoding)
	}
	if cfg.Output.Indent != "    " || !cfg.Output.OmitDeclaration {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.DuplicateSentinels != SentinelReject {
		t.Errorf("DuplicateSentinels = %q", cfg.DuplicateSentinels)
	}
	if !cfg.Validation.Strict || cfg.Validation.ReferenceLanguage != "de" {
		t.Errorf("Validation = %+v", cfg.Validation)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "csv2locale.toml", `
input_format = "xlsx"
sheet = "Strings"
log_format = "json"

[output]
backup_existing = true
backup_dir = "old"
backup_timestamp_subdirs = true

[validation]
warnings_as_errors = true
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.InputFormat != FormatXLSX || cfg.Sheet != "Strings" {
		t.Errorf("input = %q/%q", cfg.InputFormat, cfg.Sheet)
	}
	if !cfg.Output.BackupExisting || cfg.Output.BackupDir != "old" || !cfg.Output.BackupTimestampSubdirs {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if !cfg.Validation.WarningsAsErrors {
		t.Errorf("Validation = %+v", cfg.Validation)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	// Unset values still get defaults.
	if cfg.CSVSettings.Delimiter != "," {
		t.Errorf("Delimiter = %q", cfg.CSVSettings.Delimiter)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "csv2locale.yaml", "log_level: warn\ncsv_settings:\n  delimiter: \",\"\n")

	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDelimiter, "tab")
	t.Setenv(EnvEncoding, "ISO-8859-1")
	t.Setenv(EnvDuplicateSentinels, "reject")
	t.Setenv(EnvStrict, "true")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if comma, _ := cfg.CSVSettings.Comma(); comma != '\t' {
		t.Errorf("Comma = %q", comma)
	}
	if cfg.CSVSettings.Encoding != "ISO-8859-1" {
		t.Errorf("Encoding = %q", cfg.CSVSettings.Encoding)
	}
	if cfg.DuplicateSentinels != SentinelReject || !cfg.Validation.Strict {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv(EnvStrict, "sometimes")
	if _, err := Load(filepath.Join(t.TempDir(), DefaultConfigFile), false); err == nil {
		t.Fatal("expected error for a non-boolean strict value")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "input_format: [", "failed to parse"},
		{"bad format", "input_format: ods", "input_format"},
		{"bad policy", "duplicate_sentinels: first", "duplicate_sentinels"},
		{"bad level", "log_level: loud", "log_level"},
		{"bad log format", "log_format: xml", "log_format"},
		{"bad delimiter", "csv_settings:\n  delimiter: ab", "delimiter"},
		{"bad indent", "output:\n  indent: \"--\"", "indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "csv2locale.yaml", tt.content)
			_, err := Load(path, true)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestComma(t *testing.T) {
	tests := []struct {
		delimiter string
		want      rune
		wantErr   bool
	}{
		{",", ',', false},
		{"\\t", '\t', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{"pipe", '|', false},
		{"semicolon", ';', false},
		{"§", '§', false},
		{"", 0, true},
		{"ab", 0, true},
		{"\"", 0, true},
		{"\n", 0, true},
	}

	for _, tt := range tests {
		got, err := CSVSettings{Delimiter: tt.delimiter}.Comma()
		if (err != nil) != tt.wantErr {
			t.Errorf("Comma(%q) error = %v, wantErr %v", tt.delimiter, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Comma(%q) = %q, want %q", tt.delimiter, got, tt.want)
		}
	}
}
