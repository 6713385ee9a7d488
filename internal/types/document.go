package types

import "strings"

// =============================================================================
// DOCUMENT TYPES
// =============================================================================
//
// The document mirrors the XML read by the runtime localization loader:
//
//   <Translations>
//     <Locale Id="en" Name="English" Fallback="en">
//       <PluralForms Equation="..." />
//       <Literal Name="menu.file" Translation="File" />
//       <PluralLiteral Name="item.count">
//         <Translation Name="{x} item" PluralForm="1" />
//         <Translation Name="{x} items" PluralForm="2" />
//       </PluralLiteral>
//     </Locale>
//   </Translations>
//
// =============================================================================

// Document is the root Translations element.
type Document struct {
	Locales []*Locale
}

// Attr is an optional attribute value. A sentinel row with an empty cell
// still sets the attribute, so "set to empty" and "unset" differ.
type Attr struct {
	Value string
	Set   bool
}

// SetAttr returns a set attribute holding value.
func SetAttr(value string) Attr {
	return Attr{Value: value, Set: true}
}

// Locale is one target language's translation set.
type Locale struct {
	// ID is the language code (the column name in the table).
	ID string

	Name     Attr
	Fallback Attr
	Author   Attr

	// PluralForms holds the plural equation; nil when the table has no
	// ::plural row for this language.
	PluralForms *PluralForms

	// Entries holds Literal and PluralLiteral nodes in table order.
	Entries []Entry
}

// PluralForms carries the opaque plural equation string.
type PluralForms struct {
	Equation string
}

// Entry is a child of Locale: either *Literal or *PluralLiteral.
type Entry interface {
	isEntry()
}

// Literal is a singular translation.
type Literal struct {
	Name        string
	Translation string
}

func (*Literal) isEntry() {}

// PluralLiteral is a multi-form translation.
type PluralLiteral struct {
	Name  string
	Forms []PluralForm
}

func (*PluralLiteral) isEntry() {}

// PluralForm is one line of a plural translation.
type PluralForm struct {
	// Name is the translated text of this form.
	Name string

	// Form is the 1-based ordinal of the line, serialized as a decimal string.
	Form int
}

// Locale returns the locale with the given id, or nil.
func (d *Document) Locale(id string) *Locale {
	for _, l := range d.Locales {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Literals returns the singular entries of the locale.
func (l *Locale) Literals() []*Literal {
	var out []*Literal
	for _, e := range l.Entries {
		if lit, ok := e.(*Literal); ok {
			out = append(out, lit)
		}
	}
	return out
}

// PluralLiterals returns the plural entries of the locale.
func (l *Locale) PluralLiterals() []*PluralLiteral {
	var out []*PluralLiteral
	for _, e := range l.Entries {
		if pl, ok := e.(*PluralLiteral); ok {
			out = append(out, pl)
		}
	}
	return out
}

// =============================================================================
// SENTINELS AND PLACEHOLDERS
// =============================================================================

// Sentinel row IDs. A row with one of these IDs sets locale metadata instead
// of producing a translation.
const (
	SentinelLocale   = "::locale"
	SentinelFallback = "::fallback"
	SentinelPlural   = "::plural"
	SentinelAuthor   = "::author"
)

// Placeholder is the token substituted with a runtime value by the loader.
const Placeholder = "{x}"

// IsSentinel reports whether id is one of the sentinel row IDs.
func IsSentinel(id string) bool {
	switch id {
	case SentinelLocale, SentinelFallback, SentinelPlural, SentinelAuthor:
		return true
	}
	return false
}

// HasPlaceholder reports whether value contains {x} in any case.
func HasPlaceholder(value string) bool {
	return strings.Contains(strings.ToLower(value), Placeholder)
}
