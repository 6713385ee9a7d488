// =============================================================================
// csv2locale - Row Classifier
// =============================================================================
//
// Every (row, language) cell is classified before it touches the document:
//
//   ID           cell value            -> Entry
//   ------------ --------------------- ----------------------------------
//   ::locale     English               -> Metadata{locale, "English"}
//   ::fallback   en                    -> Metadata{fallback, "en"}
//   ::plural     n != 1                -> Metadata{plural, "n != 1"}
//   ::author     Jane                  -> Metadata{author, "Jane"}
//   (empty)      anything              -> Skip
//   key          (empty)               -> Skip
//   key          "{x} item\n{x} items" -> Plural{key, ["{x} item", "{x} items"]}
//   key          "Hello {X}"           -> Singular{key, "Hello {x}"}
//
// PLURAL HEURISTIC:
//   A translator marks a string as having plural forms by writing one line per
//   form and using the {x} placeholder. A cell is plural when it contains {x}
//   (any case) AND spans more than one line. A multi-line singular that
//   happens to contain {x} is therefore classified as plural; downstream
//   consumers depend on this exact rule.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

// placeholderUpper is rewritten to the placeholder in every translation.
const placeholderUpper = "{X}"

// MetadataKind names the locale attribute a sentinel row sets.
type MetadataKind string

const (
	MetaLocale   MetadataKind = "locale"
	MetaFallback MetadataKind = "fallback"
	MetaPlural   MetadataKind = "plural"
	MetaAuthor   MetadataKind = "author"
)

// sentinels maps sentinel row IDs to their metadata kind.
var sentinels = map[string]MetadataKind{
	types.SentinelLocale:   MetaLocale,
	types.SentinelFallback: MetaFallback,
	types.SentinelPlural:   MetaPlural,
	types.SentinelAuthor:   MetaAuthor,
}

// =============================================================================
// ENTRY VARIANTS
// =============================================================================

// Entry is the classification of one cell.
type Entry interface {
	isEntry()
}

// Metadata sets a locale attribute or the plural equation.
type Metadata struct {
	Kind  MetadataKind
	Value string
}

// Singular is a one-form translation.
type Singular struct {
	Key  string
	Text string
}

// Plural is a multi-form translation, one form per line.
type Plural struct {
	Key   string
	Forms []string
}

// SkipReason tells why a cell produced no node.
type SkipReason string

const (
	SkipEmptyID    SkipReason = "empty id"
	SkipEmptyValue SkipReason = "empty value"
)

// Skip marks an untranslated cell.
type Skip struct {
	Reason SkipReason
}

func (Metadata) isEntry() {}
func (Singular) isEntry() {}
func (Plural) isEntry()   {}
func (Skip) isEntry()     {}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify decides what a cell with the given row ID and value becomes.
func Classify(id, value string) Entry {
	if kind, ok := sentinels[id]; ok {
		return Metadata{Kind: kind, Value: value}
	}

	if id == "" {
		return Skip{Reason: SkipEmptyID}
	}
	if value == "" {
		return Skip{Reason: SkipEmptyValue}
	}

	if IsPlural(value) {
		lines := SplitLines(value)
		forms := make([]string, len(lines))
		for i, line := range lines {
			forms[i] = NormalizePlaceholder(line)
		}
		return Plural{Key: id, Forms: forms}
	}

	return Singular{Key: id, Text: NormalizePlaceholder(value)}
}

// IsPlural reports whether value is written as a plural bundle: it contains
// the placeholder in any case and spans more than one line.
func IsPlural(value string) bool {
	return types.HasPlaceholder(value) && len(SplitLines(value)) > 1
}

// NormalizePlaceholder rewrites {X} to {x}.
func NormalizePlaceholder(value string) string {
	return strings.ReplaceAll(value, placeholderUpper, types.Placeholder)
}

// SplitLines splits value on LF, CRLF or CR. A single trailing line break
// does not start another line; empty lines in between are kept because a
// line's position is its plural form number.
func SplitLines(value string) []string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	value = strings.TrimSuffix(value, "\n")
	return strings.Split(value, "\n")
}
