// =============================================================================
// csv2locale - XML Writer Module
// =============================================================================
//
// This module renders the translation document as indented XML for the
// runtime localization loader.
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <Translations>                                   <!-- Root element -->
//     <Locale Id="en" Name="English" Fallback="en">  <!-- One per language -->
//       <PluralForms Equation="n != 1" />            <!-- At most one -->
//       <Literal Name="menu.file" Translation="File" />
//       <PluralLiteral Name="item.count">
//         <Translation Name="{x} item" PluralForm="1" />
//         <Translation Name="{x} items" PluralForm="2" />
//       </PluralLiteral>
//     </Locale>
//   </Translations>
//
// All data lives in attributes. Attribute order is fixed so that the same
// table always produces byte-identical output. Childless elements are
// written self-closing with a space before the slash.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

// Element and attribute names read by the loader.
const (
	ElementTranslations  = "Translations"
	ElementLocale        = "Locale"
	ElementPluralForms   = "PluralForms"
	ElementLiteral       = "Literal"
	ElementPluralLiteral = "PluralLiteral"
	ElementTranslation   = "Translation"

	AttrID          = "Id"
	AttrName        = "Name"
	AttrFallback    = "Fallback"
	AttrAuthor      = "Author"
	AttrEquation    = "Equation"
	AttrTranslation = "Translation"
	AttrPluralForm  = "PluralForm"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for one nesting level.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration. The output is always
	// UTF-8; this only changes the label.
	// Default: "UTF-8"
	Encoding string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders the document with the default options.
func Generate(doc *types.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions renders the document with custom options.
func GenerateWithOptions(doc *types.Document, options GenerateOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nothing to serialize: document is nil")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		version := options.XMLVersion
		if version == "" {
			version = "1.0"
		}
		encoding := options.Encoding
		if encoding == "" {
			encoding = "UTF-8"
		}
		fmt.Fprintf(&buffer, "<?xml version=\"%s\" encoding=\"%s\"?>\n", version, encoding)
	}

	writeElement(&buffer, buildDocument(doc), options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// attr is one attribute; a slice of them keeps declaration order.
type attr struct {
	Name  string
	Value string
}

// element is a generic attribute-only XML element.
type element struct {
	Name       string
	Attributes []attr
	Children   []element
}

// buildDocument converts the document into the generic element tree.
func buildDocument(doc *types.Document) element {
	root := element{Name: ElementTranslations}
	for _, locale := range doc.Locales {
		root.Children = append(root.Children, buildLocaleElement(locale))
	}
	return root
}

// buildLocaleElement constructs a Locale element. Unset optional attributes
// are omitted; attributes set to an empty value are written empty.
func buildLocaleElement(locale *types.Locale) element {
	el := element{
		Name:       ElementLocale,
		Attributes: []attr{{AttrID, locale.ID}},
	}

	optional := []struct {
		name  string
		value types.Attr
	}{
		{AttrName, locale.Name},
		{AttrFallback, locale.Fallback},
		{AttrAuthor, locale.Author},
	}
	for _, o := range optional {
		if o.value.Set {
			el.Attributes = append(el.Attributes, attr{o.name, o.value.Value})
		}
	}

	if locale.PluralForms != nil {
		el.Children = append(el.Children, element{
			Name:       ElementPluralForms,
			Attributes: []attr{{AttrEquation, locale.PluralForms.Equation}},
		})
	}

	for _, entry := range locale.Entries {
		switch e := entry.(type) {
		case *types.Literal:
			el.Children = append(el.Children, element{
				Name:       ElementLiteral,
				Attributes: []attr{{AttrName, e.Name}, {AttrTranslation, e.Translation}},
			})

		case *types.PluralLiteral:
			pl := element{
				Name:       ElementPluralLiteral,
				Attributes: []attr{{AttrName, e.Name}},
			}
			for _, form := range e.Forms {
				pl.Children = append(pl.Children, element{
					Name:       ElementTranslation,
					Attributes: []attr{{AttrName, form.Name}, {AttrPluralForm, strconv.Itoa(form.Form)}},
				})
			}
			el.Children = append(el.Children, pl)
		}
	}

	return el
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, el element, indent string, level int) {
	writeIndent(buffer, indent, level)

	buffer.WriteString("<")
	buffer.WriteString(el.Name)

	for _, a := range el.Attributes {
		buffer.WriteString(" ")
		buffer.WriteString(a.Name)
		buffer.WriteString("=\"")
		buffer.WriteString(escapeAttr(a.Value))
		buffer.WriteString("\"")
	}

	if len(el.Children) == 0 {
		buffer.WriteString(" />\n")
		return
	}

	buffer.WriteString(">\n")
	for _, child := range el.Children {
		writeElement(buffer, child, indent, level+1)
	}

	writeIndent(buffer, indent, level)
	buffer.WriteString("</")
	buffer.WriteString(el.Name)
	buffer.WriteString(">\n")
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}

// escapeAttr escapes s for use inside a double-quoted attribute value.
// Whitespace control characters become character references, otherwise
// attribute value normalization would turn line breaks into spaces.
// Characters not allowed in XML 1.0 are replaced with U+FFFD.
func escapeAttr(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\t':
			buffer.WriteString("&#9;")
		case '\n':
			buffer.WriteString("&#10;")
		case '\r':
			buffer.WriteString("&#13;")
		default:
			if !isXMLChar(r) {
				r = '\uFFFD'
			}
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
