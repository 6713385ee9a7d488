package converter

import (
	"fmt"

	"github.com/helio-fm/helio-sequencer/internal/config"
	"github.com/helio-fm/helio-sequencer/internal/types"
)

// LocaleStats counts what the builder emitted for one locale.
type LocaleStats struct {
	ID             string
	Literals       int
	PluralLiterals int
	Skipped        int
}

// Builder projects a row-major table into one Locale per requested language.
type Builder struct {
	// Policy is config.SentinelLastWins or config.SentinelReject.
	Policy string

	logger Logger
}

// NewBuilder creates a Builder. A nil logger discards messages.
func NewBuilder(policy string, logger Logger) *Builder {
	if logger == nil {
		logger = discardLogger()
	}
	if policy == "" {
		policy = config.SentinelLastWins
	}
	return &Builder{Policy: policy, logger: logger}
}

// Build creates the document for langs, in argument order. Every language
// must be a header column; nothing is built otherwise. A language requested
// twice is built once.
func (b *Builder) Build(table *types.Table, langs []string) (*types.Document, []LocaleStats, error) {
	if len(langs) == 0 {
		return nil, nil, &types.UsageError{Message: "at least one language is required"}
	}

	for _, lang := range langs {
		if lang == types.IDColumn {
			return nil, nil, &types.UsageError{Message: fmt.Sprintf("%q is the key column, not a language", lang)}
		}
	}

	if err := table.RequireColumns(langs...); err != nil {
		return nil, nil, err
	}

	doc := &types.Document{}
	stats := make([]LocaleStats, 0, len(langs))
	seen := make(map[string]bool, len(langs))

	for _, lang := range langs {
		if seen[lang] {
			b.logger.Warnf("language %q requested more than once, ignoring the repeat", lang)
			continue
		}
		seen[lang] = true

		locale, st, err := b.buildLocale(table, lang)
		if err != nil {
			return nil, nil, err
		}

		doc.Locales = append(doc.Locales, locale)
		stats = append(stats, st)
	}

	return doc, stats, nil
}

// buildLocale applies every row's classification for one language.
func (b *Builder) buildLocale(table *types.Table, lang string) (*types.Locale, LocaleStats, error) {
	locale := &types.Locale{ID: lang}
	st := LocaleStats{ID: lang}

	// Line of the first row seen for each sentinel kind.
	firstSeen := make(map[MetadataKind]int)

	for _, row := range table.Rows {
		switch e := Classify(row.ID(), row.Get(lang)).(type) {
		case Metadata:
			// Under the last-wins policy the validator reports the repeat.
			if first, dup := firstSeen[e.Kind]; !dup {
				firstSeen[e.Kind] = row.Number
			} else if b.Policy == config.SentinelReject {
				return nil, st, &types.InputError{
					Path: table.Source,
					Line: row.Number,
					Err:  fmt.Errorf("duplicate %s row (first on line %d)", row.ID(), first),
				}
			}
			applyMetadata(locale, e)

		case Singular:
			locale.Entries = append(locale.Entries, &types.Literal{Name: e.Key, Translation: e.Text})
			st.Literals++

		case Plural:
			pl := &types.PluralLiteral{Name: e.Key, Forms: make([]types.PluralForm, len(e.Forms))}
			for i, form := range e.Forms {
				pl.Forms[i] = types.PluralForm{Name: form, Form: i + 1}
			}
			locale.Entries = append(locale.Entries, pl)
			st.PluralLiterals++

		case Skip:
			st.Skipped++
		}
	}

	b.logger.Debugf("locale %s: %d literal(s), %d plural literal(s), %d empty cell(s)",
		lang, st.Literals, st.PluralLiterals, st.Skipped)

	return locale, st, nil
}

// applyMetadata sets the locale attribute named by the sentinel. Later calls
// overwrite earlier ones, so at most one PluralForms node exists.
func applyMetadata(locale *types.Locale, m Metadata) {
	switch m.Kind {
	case MetaLocale:
		locale.Name = types.SetAttr(m.Value)
	case MetaFallback:
		locale.Fallback = types.SetAttr(m.Value)
	case MetaAuthor:
		locale.Author = types.SetAttr(m.Value)
	case MetaPlural:
		locale.PluralForms = &types.PluralForms{Equation: m.Value}
	}
}
