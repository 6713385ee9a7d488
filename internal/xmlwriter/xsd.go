package xmlwriter

import (
	"bytes"
	"fmt"
	"strings"
)

// =============================================================================
// XSD GENERATION
// =============================================================================

// xsdAttribute describes one attribute declaration.
type xsdAttribute struct {
	Name     string
	Type     string
	Required bool
}

// GenerateXSD returns an XML Schema describing the documents Generate
// produces. Literal and PluralLiteral may interleave in any order after the
// optional PluralForms element.
func GenerateXSD() []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
`)

	// Root element.
	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>

`, ElementTranslations, ElementLocale)

	// Locale element.
	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="1"/>
        <xs:choice minOccurs="0" maxOccurs="unbounded">
          <xs:element ref="%s"/>
          <xs:element ref="%s"/>
        </xs:choice>
      </xs:sequence>
`, ElementLocale, ElementPluralForms, ElementLiteral, ElementPluralLiteral)
	writeXSDAttributes(&buffer, []xsdAttribute{
		{AttrID, "xs:string", true},
		{AttrName, "xs:string", false},
		{AttrFallback, "xs:string", false},
		{AttrAuthor, "xs:string", false},
	}, 3)
	buffer.WriteString(`    </xs:complexType>
  </xs:element>

`)

	writeXSDEmptyElement(&buffer, ElementPluralForms, []xsdAttribute{
		{AttrEquation, "xs:string", true},
	})

	writeXSDEmptyElement(&buffer, ElementLiteral, []xsdAttribute{
		{AttrName, "xs:string", true},
		{AttrTranslation, "xs:string", true},
	})

	// PluralLiteral element.
	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="1" maxOccurs="unbounded"/>
      </xs:sequence>
`, ElementPluralLiteral, ElementTranslation)
	writeXSDAttributes(&buffer, []xsdAttribute{
		{AttrName, "xs:string", true},
	}, 3)
	buffer.WriteString(`    </xs:complexType>
  </xs:element>

`)

	writeXSDEmptyElement(&buffer, ElementTranslation, []xsdAttribute{
		{AttrName, "xs:string", true},
		{AttrPluralForm, "xs:positiveInteger", true},
	})

	buffer.WriteString(`</xs:schema>
`)

	return buffer.Bytes()
}

// writeXSDEmptyElement writes an element declaration with attributes only.
func writeXSDEmptyElement(buffer *bytes.Buffer, name string, attrs []xsdAttribute) {
	fmt.Fprintf(buffer, `  <xs:element name="%s">
    <xs:complexType>
`, name)
	writeXSDAttributes(buffer, attrs, 3)
	buffer.WriteString(`    </xs:complexType>
  </xs:element>

`)
}

// writeXSDAttributes writes attribute declarations at the given nesting level.
func writeXSDAttributes(buffer *bytes.Buffer, attrs []xsdAttribute, indentLevel int) {
	indent := strings.Repeat("  ", indentLevel)

	for _, a := range attrs {
		use := "optional"
		if a.Required {
			use = "required"
		}
		fmt.Fprintf(buffer, "%s<xs:attribute name=\"%s\" type=\"%s\" use=\"%s\"/>\n", indent, a.Name, a.Type, use)
	}
}
