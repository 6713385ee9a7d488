package validation

import (
	"strings"
	"testing"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

func newTable(t *testing.T, header []string, rows ...[]string) *types.Table {
	t.Helper()
	records := make([]types.Record, len(rows))
	for i, fields := range rows {
		records[i] = types.Record{Line: i + 2, Fields: fields}
	}
	table, err := types.NewTable("test.csv", header, records)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func rules(result *Result) []string {
	var out []string
	for _, issue := range result.Issues {
		out = append(out, issue.Rule)
	}
	return out
}

func TestValidate_Clean(t *testing.T) {
	table := newTable(t, []string{"ID", "en", "fr"},
		[]string{"::locale", "English", "Français"},
		[]string{"::plural", "n != 1", "n > 1"},
		[]string{"greeting", "Hello", "Bonjour"},
		[]string{"items", "{x} item\n{x} items", "{x} élément\n{x} éléments"},
	)
	doc := &types.Document{Locales: []*types.Locale{
		{
			ID: "en", Name: types.SetAttr("English"),
			PluralForms: &types.PluralForms{Equation: "n != 1"},
			Entries:     []types.Entry{&types.PluralLiteral{Name: "items"}},
		},
		{
			ID: "fr", Name: types.SetAttr("Français"),
			PluralForms: &types.PluralForms{Equation: "n > 1"},
			Entries:     []types.Entry{&types.PluralLiteral{Name: "items"}},
		},
	}}

	result := Validate(table, doc, Options{})
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got:\n%s", FormatIssues(result.Issues))
	}
	if result.LocalesValidated != 2 {
		t.Errorf("LocalesValidated = %d, want 2", result.LocalesValidated)
	}
}

func TestValidate_DuplicateKey(t *testing.T) {
	table := newTable(t, []string{"ID", "en"},
		[]string{"::locale", "English"},
		[]string{"a", "one"},
		[]string{"a", "two"},
		[]string{"a", ""},
	)
	doc := &types.Document{Locales: []*types.Locale{{ID: "en", Name: types.SetAttr("English")}}}

	result := Validate(table, doc, Options{})
	if result.ErrorCount != 1 {
		t.Fatalf("ErrorCount = %d, want 1 (%v)", result.ErrorCount, rules(result))
	}
	issue := result.Issues[0]
	if issue.Rule != RuleDuplicateKey || issue.Row != 4 || issue.Key != "a" {
		t.Errorf("unexpected issue: %+v", issue)
	}
	if !strings.Contains(issue.Message, "line 3") {
		t.Errorf("message %q should name the first definition", issue.Message)
	}
}

func TestValidate_DuplicateSentinel(t *testing.T) {
	table := newTable(t, []string{"ID", "en"},
		[]string{"::plural", "n != 1"},
		[]string{"::plural", "n > 1"},
	)
	doc := &types.Document{Locales: []*types.Locale{{
		ID: "en", Name: types.SetAttr("English"),
		PluralForms: &types.PluralForms{Equation: "n > 1"},
	}}}

	result := Validate(table, doc, Options{})
	if got := rules(result); len(got) != 1 || got[0] != RuleDuplicateSentinel {
		t.Fatalf("rules = %v, want [%s]", got, RuleDuplicateSentinel)
	}
	if result.Issues[0].Row != 3 {
		t.Errorf("Row = %d, want 3", result.Issues[0].Row)
	}
}

func TestValidate_LocaleAttributes(t *testing.T) {
	table := newTable(t, []string{"ID", "en", "de"},
		[]string{"::fallback", "", "fr"},
	)
	doc := &types.Document{Locales: []*types.Locale{
		{ID: "en", Name: types.SetAttr("English"), Fallback: types.SetAttr("")},
		{ID: "de", Fallback: types.SetAttr("fr")},
	}}

	result := Validate(table, doc, Options{})
	got := rules(result)
	want := []string{RuleMissingName, RuleUnknownFallback}
	if len(got) != len(want) {
		t.Fatalf("rules = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule %d = %s, want %s", i, got[i], want[i])
		}
		if result.Issues[i].Locale != "de" {
			t.Errorf("issue %d locale = %q, want de", i, result.Issues[i].Locale)
		}
	}
}

func TestValidate_PluralWithoutEquation(t *testing.T) {
	table := newTable(t, []string{"ID", "en"},
		[]string{"items", "{x} item\n{x} items"},
	)
	doc := &types.Document{Locales: []*types.Locale{{
		ID: "en", Name: types.SetAttr("English"),
		Entries: []types.Entry{&types.PluralLiteral{Name: "items"}},
	}}}

	result := Validate(table, doc, Options{})
	if !result.HasErrors() {
		t.Fatal("expected an error")
	}
	if result.Issues[0].Rule != RuleMissingPlural || result.Issues[0].Key != "items" {
		t.Errorf("unexpected issue: %+v", result.Issues[0])
	}
}

func TestValidate_LanguageTag(t *testing.T) {
	tests := []struct {
		lang  string
		valid bool
	}{
		{"en", true},
		{"pt-BR", true},
		{"zh-Hant", true},
		{"not a tag", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			table := newTable(t, []string{"ID", tt.lang}, []string{"::locale", "X"})
			doc := &types.Document{Locales: []*types.Locale{{ID: tt.lang, Name: types.SetAttr("X")}}}

			result := Validate(table, doc, Options{})
			hasTagIssue := false
			for _, issue := range result.Issues {
				if issue.Rule == RuleLanguageTag {
					hasTagIssue = true
				}
			}
			if hasTagIssue == tt.valid {
				t.Errorf("language tag issue = %v for %q", hasTagIssue, tt.lang)
			}
		})
	}
}

func TestValidate_KeyWhitespace(t *testing.T) {
	table := newTable(t, []string{"ID", "en"},
		[]string{"::locale", "English"},
		[]string{" padded ", "value"},
	)
	doc := &types.Document{Locales: []*types.Locale{{ID: "en", Name: types.SetAttr("English")}}}

	result := Validate(table, doc, Options{})
	if got := rules(result); len(got) != 1 || got[0] != RuleKeyWhitespace {
		t.Fatalf("rules = %v, want [%s]", got, RuleKeyWhitespace)
	}
}

func TestValidate_Placeholders(t *testing.T) {
	table := newTable(t, []string{"ID", "en", "de", "fr"},
		[]string{"::locale", "English", "Deutsch", "Français"},
		[]string{"count", "{x} items", "Elemente", "{X} éléments"},
		[]string{"title", "Title", "{x} Titel", ""},
	)
	doc := &types.Document{Locales: []*types.Locale{
		{ID: "en", Name: types.SetAttr("English")},
		{ID: "de", Name: types.SetAttr("Deutsch")},
		{ID: "fr", Name: types.SetAttr("Français")},
	}}

	result := Validate(table, doc, Options{})
	if got := rules(result); len(got) != 1 || got[0] != RulePlaceholder {
		t.Fatalf("rules = %v, want [%s]", got, RulePlaceholder)
	}
	if issue := result.Issues[0]; issue.Locale != "de" || issue.Key != "count" {
		t.Errorf("unexpected issue: %+v", issue)
	}

	// With German as the reference, the English title is fine and the
	// French count still uses the placeholder.
	result = Validate(table, doc, Options{ReferenceLanguage: "de"})
	if got := rules(result); len(got) != 1 || result.Issues[0].Locale != "en" || result.Issues[0].Key != "title" {
		t.Fatalf("unexpected issues with reference de: %s", FormatIssues(result.Issues))
	}
}

func TestResult_Blocking(t *testing.T) {
	result := &Result{}
	result.add(&Issue{Severity: SeverityWarning})
	result.add(&Issue{Severity: SeverityError})
	result.add(&Issue{Severity: SeverityWarning})

	if got := result.Blocking(false); got != 1 {
		t.Errorf("Blocking(false) = %d, want 1", got)
	}
	if got := result.Blocking(true); got != 3 {
		t.Errorf("Blocking(true) = %d, want 3", got)
	}
}

func TestFormatIssues(t *testing.T) {
	if got := FormatIssues(nil); got != "No validation issues." {
		t.Errorf("FormatIssues(nil) = %q", got)
	}

	out := FormatIssues([]*Issue{
		{Severity: SeverityWarning, Locale: "en", Row: 2, Message: "first"},
		{Severity: SeverityError, Locale: "en", Key: "k", Row: 5, Message: "second"},
	})
	want := "Found 2 validation issue(s):\n" +
		"1. [ERROR] locale en, row 5, key \"k\": second\n" +
		"2. [WARNING] locale en, row 2: first\n"
	if out != want {
		t.Errorf("FormatIssues =\n%s\nwant:\n%s", out, want)
	}
}
