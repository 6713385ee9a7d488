// =============================================================================
// csv2locale - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// pipeline for one run, from reading the table to writing the document.
//
// CONVERSION PIPELINE:
//   1. Read the table (CSV or XLSX) into memory once
//   2. Build one Locale per requested language, in argument order
//   3. Validate the table and the document
//   4. Generate the XML document
//   5. Write the output file (or standard output on a dry run)
//
// Output is all-or-nothing: nothing is written unless every earlier step
// succeeded.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/helio-fm/helio-sequencer/internal/config"
	"github.com/helio-fm/helio-sequencer/internal/csvparser"
	"github.com/helio-fm/helio-sequencer/internal/types"
	"github.com/helio-fm/helio-sequencer/internal/validation"
	"github.com/helio-fm/helio-sequencer/internal/xlsxparser"
	"github.com/helio-fm/helio-sequencer/internal/xmlwriter"
	"github.com/helio-fm/helio-sequencer/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// InputPath is the table that was read.
	InputPath string

	// OutputPath is the written document. Empty on failure, on a dry run and
	// for checks.
	OutputPath string

	// BackupPath is the copy of the previous output, if one was made.
	BackupPath string

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Validation holds the advisory findings, nil if the run failed earlier.
	Validation *validation.Result

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of non-empty data rows in the table.
	RowsRead int

	// Locales holds per-locale builder counts in output order.
	Locales []LocaleStats

	// BytesWritten is the size of the generated document.
	BytesWritten int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// Literals returns the number of Literal nodes over all locales.
func (s ProcessingStats) Literals() int {
	n := 0
	for _, l := range s.Locales {
		n += l.Literals
	}
	return n
}

// PluralLiterals returns the number of PluralLiteral nodes over all locales.
func (s ProcessingStats) PluralLiterals() int {
	n := 0
	for _, l := range s.Locales {
		n += l.PluralLiterals
	}
	return n
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the conversion pipeline with one configuration.
type Converter struct {
	// DryRun writes the document to Stdout instead of the output path.
	DryRun bool

	// Stdout receives the document on a dry run.
	Stdout io.Writer

	cfg    *config.Config
	files  *utils.FileManager
	logger Logger
}

// New creates a new Converter. A nil cfg uses config.Default(); a nil logger
// discards messages.
//
// PARAMETERS:
//   - cfg: The loaded configuration, with command-line overrides applied.
//   - logger: Receives progress and validation messages.
//
// RETURNS:
//   - A new Converter instance.
func New(cfg *config.Config, logger Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = discardLogger()
	}
	files := utils.NewFileManager(cfg.Output.BackupExisting, cfg.Output.BackupDir)
	files.UseTimestampSubdirs = cfg.Output.BackupTimestampSubdirs

	return &Converter{
		cfg:    cfg,
		files:  files,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run executes the full pipeline: read, build, validate, generate, write.
//
// PARAMETERS:
//   - input: Path to the CSV or XLSX table.
//   - output: Path of the XML document to write.
//   - langs: Language columns to emit, in output order.
//
// RETURNS:
//   - A Result struct containing the outcome of the run.
func (c *Converter) Run(input, output string, langs []string) Result {
	startTime := time.Now()
	result := Result{InputPath: input}

	doc, ok := c.prepare(input, langs, &result)
	if !ok {
		return result
	}

	// =========================================================================
	// STRICT MODE
	// =========================================================================

	if c.cfg.Validation.Strict {
		if n := result.Validation.Blocking(c.cfg.Validation.WarningsAsErrors); n > 0 {
			result.Error = &types.ValidationFailedError{Count: n}
			return result
		}
	}

	// =========================================================================
	// GENERATE XML DOCUMENT
	// =========================================================================

	options := xmlwriter.DefaultGenerateOptions()
	options.Indent = c.cfg.Output.Indent
	options.IncludeXMLDeclaration = !c.cfg.Output.OmitDeclaration

	data, err := xmlwriter.GenerateWithOptions(doc, options)
	if err != nil {
		result.Error = fmt.Errorf("failed to generate XML: %w", err)
		return result
	}

	result.Stats.BytesWritten = len(data)
	c.logger.Debugf("generated %d byte(s) of XML", len(data))

	// =========================================================================
	// WRITE OUTPUT
	// =========================================================================

	if c.DryRun {
		out := c.Stdout
		if out == nil {
			out = io.Discard
		}
		if _, err := out.Write(data); err != nil {
			result.Error = &types.OutputError{Path: "<stdout>", Err: err}
			return result
		}
		c.logger.Infof("dry run: %s not written", output)
	} else {
		backup, err := c.files.WriteOutput(output, data)
		result.BackupPath = backup
		if err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			return result
		}
		if backup != "" {
			c.logger.Infof("previous output backed up to %s", backup)
		}
		result.OutputPath = output
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Infof("converted %d row(s) into %d locale(s): %d literal(s), %d plural literal(s) in %s",
		result.Stats.RowsRead, len(result.Stats.Locales),
		result.Stats.Literals(), result.Stats.PluralLiterals(), result.Stats.ProcessingTime)

	return result
}

// Check reads, builds and validates without generating any output. The
// result carries a ValidationFailedError when blocking issues are found.
func (c *Converter) Check(input string, langs []string) Result {
	startTime := time.Now()
	result := Result{InputPath: input}

	if _, ok := c.prepare(input, langs, &result); !ok {
		return result
	}

	if n := result.Validation.Blocking(c.cfg.Validation.WarningsAsErrors); n > 0 {
		result.Error = &types.ValidationFailedError{Count: n}
		return result
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// prepare runs the read, build and validate steps shared by Run and Check.
// On failure it sets result.Error and returns false.
func (c *Converter) prepare(input string, langs []string, result *Result) (*types.Document, bool) {
	// =========================================================================
	// STEP 1: READ TABLE
	// =========================================================================

	c.logger.Infof("reading %s", input)

	table, err := ReadTable(input, c.cfg)
	if err != nil {
		result.Error = fmt.Errorf("failed to read table: %w", err)
		return nil, false
	}

	result.Stats.RowsRead = len(table.Rows)
	c.logger.Debugf("read %d row(s), columns: %s", len(table.Rows), strings.Join(table.Header, ", "))

	// =========================================================================
	// STEP 2: BUILD LOCALES
	// =========================================================================

	builder := NewBuilder(c.cfg.DuplicateSentinels, c.logger)
	doc, stats, err := builder.Build(table, langs)
	if err != nil {
		result.Error = fmt.Errorf("failed to build locales: %w", err)
		return nil, false
	}

	result.Stats.Locales = stats

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	result.Validation = validation.Validate(table, doc, validation.Options{
		ReferenceLanguage: c.cfg.Validation.ReferenceLanguage,
	})

	for _, issue := range result.Validation.Issues {
		if issue.Severity == validation.SeverityError {
			c.logger.Errorf("%s", issue.Error())
		} else {
			c.logger.Warnf("%s", issue.Error())
		}
	}

	c.logger.Debugf("validation complete: %d error(s), %d warning(s)",
		result.Validation.ErrorCount, result.Validation.WarningCount)

	return doc, true
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ReadTable loads the table at path with the reader selected by
// cfg.InputFormat. In auto mode .xlsx and .xlsm files are read as workbooks
// and everything else as delimited text.
func ReadTable(path string, cfg *config.Config) (*types.Table, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	switch detectFormat(path, cfg.InputFormat) {
	case config.FormatXLSX:
		return xlsxparser.Parse(path, cfg.Sheet)
	default:
		return csvparser.Parse(path, cfg.CSVSettings)
	}
}

// detectFormat resolves "auto" by file extension.
func detectFormat(path, format string) string {
	format = strings.ToLower(format)
	if format != "" && format != config.FormatAuto {
		return format
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return config.FormatXLSX
	default:
		return config.FormatCSV
	}
}
