// =============================================================================
// csv2locale - Validation Engine
// =============================================================================
//
// This module reviews a translation table and the document built from it.
// The checks are advisory: the document is always serializable, but some
// tables produce output the runtime loader handles poorly:
//   - Duplicate keys within a locale (the loader keeps the last one)
//   - Repeated sentinel rows
//   - Locales without a display name
//   - A fallback locale that is not part of the output
//   - Plural literals in a locale without a plural equation
//   - Language columns that are not well-formed BCP 47 tags
//   - Keys with leading or trailing whitespace
//   - Translations that drop the {x} placeholder of the reference language
//
// ERROR HANDLING:
//   - Issues are collected, never returned as errors
//   - Each issue carries its locale, key and source row where known
//   - Severity "error" blocks the run in strict mode; "warning" blocks only
//     when warnings are treated as errors
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names, one per check.
const (
	RuleDuplicateKey      = "duplicate-key"
	RuleDuplicateSentinel = "duplicate-sentinel"
	RuleMissingName       = "missing-name"
	RuleUnknownFallback   = "unknown-fallback"
	RuleMissingPlural     = "missing-plural-forms"
	RuleLanguageTag       = "language-tag"
	RuleKeyWhitespace     = "key-whitespace"
	RulePlaceholder       = "placeholder"
)

// =============================================================================
// VALIDATION ISSUE TYPES
// =============================================================================

// Issue is a single validation finding.
type Issue struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Rule is the check that produced the issue.
	Rule string

	// Locale is the language the issue applies to, empty for table-wide issues.
	Locale string

	// Key is the translation key involved, if any.
	Key string

	// Row is the source record number, 0 when not tied to a row.
	Row int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	var where []string
	if i.Locale != "" {
		where = append(where, "locale "+i.Locale)
	}
	if i.Row > 0 {
		where = append(where, fmt.Sprintf("row %d", i.Row))
	}
	if i.Key != "" {
		where = append(where, fmt.Sprintf("key %q", i.Key))
	}

	if len(where) == 0 {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(i.Severity), i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(i.Severity), strings.Join(where, ", "), i.Message)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the results of validation.
type Result struct {
	// Issues contains every finding in check order.
	Issues []*Issue

	// ErrorCount is the number of issues with SeverityError.
	ErrorCount int

	// WarningCount is the number of issues with SeverityWarning.
	WarningCount int

	// LocalesValidated is the number of locales reviewed.
	LocalesValidated int
}

// Blocking returns the number of issues that fail a strict run.
func (r *Result) Blocking(warningsAsErrors bool) int {
	if warningsAsErrors {
		return r.ErrorCount + r.WarningCount
	}
	return r.ErrorCount
}

// HasErrors reports whether any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return r.ErrorCount > 0
}

func (r *Result) add(issue *Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options contains options for validation.
type Options struct {
	// ReferenceLanguage is the locale other translations are compared with
	// for placeholder usage. Empty means the first locale of the document.
	ReferenceLanguage string
}

// Validate runs every check over the table and the document built from it.
func Validate(table *types.Table, doc *types.Document, options Options) *Result {
	result := &Result{LocalesValidated: len(doc.Locales)}

	checkDuplicateSentinels(table, result)

	outputLocales := make(map[string]bool, len(doc.Locales))
	for _, locale := range doc.Locales {
		outputLocales[locale.ID] = true
	}

	for _, locale := range doc.Locales {
		checkLanguageTag(locale, result)
		checkLocaleAttributes(locale, outputLocales, result)
		checkPluralForms(locale, result)
		checkKeys(table, locale.ID, result)
	}

	reference := options.ReferenceLanguage
	if reference == "" && len(doc.Locales) > 0 {
		reference = doc.Locales[0].ID
	}
	if reference != "" && table.HasColumn(reference) {
		for _, locale := range doc.Locales {
			if locale.ID != reference {
				checkPlaceholders(table, reference, locale.ID, result)
			}
		}
	}

	return result
}

// =============================================================================
// CHECKS
// =============================================================================

// checkDuplicateSentinels reports every sentinel row after the first.
func checkDuplicateSentinels(table *types.Table, result *Result) {
	first := make(map[string]int)

	for _, row := range table.Rows {
		id := row.ID()
		if !types.IsSentinel(id) {
			continue
		}
		if line, seen := first[id]; seen {
			result.add(&Issue{
				Severity: SeverityWarning,
				Rule:     RuleDuplicateSentinel,
				Key:      id,
				Row:      row.Number,
				Message:  fmt.Sprintf("repeats the %s row on line %d; the last one wins", id, line),
			})
			continue
		}
		first[id] = row.Number
	}
}

// checkLanguageTag reports locale IDs that do not parse as BCP 47 tags.
func checkLanguageTag(locale *types.Locale, result *Result) {
	if _, err := language.Parse(locale.ID); err != nil {
		result.add(&Issue{
			Severity: SeverityWarning,
			Rule:     RuleLanguageTag,
			Locale:   locale.ID,
			Message:  fmt.Sprintf("column name is not a well-formed language tag: %v", err),
		})
	}
}

// checkLocaleAttributes reviews the Name and Fallback attributes.
func checkLocaleAttributes(locale *types.Locale, outputLocales map[string]bool, result *Result) {
	if !locale.Name.Set || locale.Name.Value == "" {
		result.add(&Issue{
			Severity: SeverityWarning,
			Rule:     RuleMissingName,
			Locale:   locale.ID,
			Message:  fmt.Sprintf("no %s row sets a display name", types.SentinelLocale),
		})
	}

	if fallback := locale.Fallback.Value; locale.Fallback.Set && fallback != "" && !outputLocales[fallback] {
		result.add(&Issue{
			Severity: SeverityWarning,
			Rule:     RuleUnknownFallback,
			Locale:   locale.ID,
			Message:  fmt.Sprintf("fallback locale %q is not part of the output", fallback),
		})
	}
}

// checkPluralForms reports plural literals the loader cannot resolve.
func checkPluralForms(locale *types.Locale, result *Result) {
	if locale.PluralForms != nil {
		return
	}

	for _, pl := range locale.PluralLiterals() {
		result.add(&Issue{
			Severity: SeverityError,
			Rule:     RuleMissingPlural,
			Locale:   locale.ID,
			Key:      pl.Name,
			Message:  fmt.Sprintf("plural translation without a %s row", types.SentinelPlural),
		})
	}
}

// checkKeys reports duplicate and whitespace-padded keys among the rows
// that produce an entry for lang.
func checkKeys(table *types.Table, lang string, result *Result) {
	first := make(map[string]int)

	for _, row := range table.Rows {
		id := row.ID()
		if id == "" || row.Get(lang) == "" || types.IsSentinel(id) {
			continue
		}

		if strings.TrimSpace(id) != id {
			result.add(&Issue{
				Severity: SeverityWarning,
				Rule:     RuleKeyWhitespace,
				Locale:   lang,
				Key:      id,
				Row:      row.Number,
				Message:  "key has leading or trailing whitespace",
			})
		}

		if line, seen := first[id]; seen {
			result.add(&Issue{
				Severity: SeverityError,
				Rule:     RuleDuplicateKey,
				Locale:   lang,
				Key:      id,
				Row:      row.Number,
				Message:  fmt.Sprintf("key already defined on line %d", line),
			})
			continue
		}
		first[id] = row.Number
	}
}

// checkPlaceholders reports translations that drop the placeholder used by
// the reference language for the same key.
func checkPlaceholders(table *types.Table, reference, lang string, result *Result) {
	for _, row := range table.Rows {
		id := row.ID()
		if id == "" || types.IsSentinel(id) {
			continue
		}

		ref, value := row.Get(reference), row.Get(lang)
		if ref == "" || value == "" {
			continue
		}

		if types.HasPlaceholder(ref) && !types.HasPlaceholder(value) {
			result.add(&Issue{
				Severity: SeverityWarning,
				Rule:     RulePlaceholder,
				Locale:   lang,
				Key:      id,
				Row:      row.Number,
				Message:  fmt.Sprintf("%s uses %s but this translation does not", reference, types.Placeholder),
			})
		}
	}
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// FormatIssues formats issues for display, errors first, then by row.
func FormatIssues(issues []*Issue) string {
	if len(issues) == 0 {
		return "No validation issues."
	}

	sorted := make([]*Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Severity != sorted[b].Severity {
			return sorted[a].Severity == SeverityError
		}
		return sorted[a].Row < sorted[b].Row
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d validation issue(s):\n", len(issues))
	for i, issue := range sorted {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, issue.Error())
	}
	return sb.String()
}
