package converter

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		value string
		want  Entry
	}{
		{"locale", "::locale", "English", Metadata{Kind: MetaLocale, Value: "English"}},
		{"fallback", "::fallback", "en", Metadata{Kind: MetaFallback, Value: "en"}},
		{"plural", "::plural", "n != 1", Metadata{Kind: MetaPlural, Value: "n != 1"}},
		{"author", "::author", "Jane", Metadata{Kind: MetaAuthor, Value: "Jane"}},
		{"empty sentinel value", "::locale", "", Metadata{Kind: MetaLocale, Value: ""}},
		{"unknown sentinel is a key", "::other", "x", Singular{Key: "::other", Text: "x"}},
		{"empty id", "", "orphan", Skip{Reason: SkipEmptyID}},
		{"empty value", "menu.file", "", Skip{Reason: SkipEmptyValue}},
		{"singular", "menu.file", "File", Singular{Key: "menu.file", Text: "File"}},
		{"singular keeps spaces", "pad", "  File ", Singular{Key: "pad", Text: "  File "}},
		{"uppercase placeholder", "n", "Hello {X}", Singular{Key: "n", Text: "Hello {x}"}},
		{"single line with placeholder", "n", "{x} items", Singular{Key: "n", Text: "{x} items"}},
		{"multi-line without placeholder", "about", "Line one\nLine two", Singular{Key: "about", Text: "Line one\nLine two"}},
		{
			"plural",
			"items",
			"{x} item\n{x} items",
			Plural{Key: "items", Forms: []string{"{x} item", "{x} items"}},
		},
		{
			"plural upper placeholder",
			"items",
			"{X} item\r\n{X} items\r\n",
			Plural{Key: "items", Forms: []string{"{x} item", "{x} items"}},
		},
		{
			"plural keeps empty middle line",
			"files",
			"{x} file\n\n{x} files",
			Plural{Key: "files", Forms: []string{"{x} file", "", "{x} files"}},
		},
		{
			"multi-line singular with placeholder is plural",
			"note",
			"Deleted {x}.\nThis cannot be undone.",
			Plural{Key: "note", Forms: []string{"Deleted {x}.", "This cannot be undone."}},
		},
		{
			"placeholder with trailing newline only",
			"one",
			"{x} thing\n",
			Singular{Key: "one", Text: "{x} thing\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.id, tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%q, %q) = %#v, want %#v", tt.id, tt.value, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\rb", []string{"a", "b"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\n\n", []string{"a", ""}},
	}

	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPlural(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"{x} item\n{x} items", true},
		{"{X} item\n{X} items", true},
		{"one\n{x} many", true},
		{"{x} items", false},
		{"one\ntwo", false},
		{"{x}\n", false},
	}

	for _, tt := range tests {
		if got := IsPlural(tt.value); got != tt.want {
			t.Errorf("IsPlural(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
