// Package loot holds the in-memory model of a types.xml loot configuration:
// parsing, structural edits, and deterministic serialization.
package loot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultIndent is the serializer indent width used when none is configured.
const DefaultIndent = 4

const rootElement = "types"

// Attr is one attribute on a field, order-significant.
type Attr struct {
	Name  string
	Value string
}

// Field is one named entry inside a type: a tag name plus either text
// content, a set of attributes, or both. The model does not interpret
// field semantics; unknown tags and attributes are carried verbatim so a
// load/edit/save cycle never drops them.
type Field struct {
	Name  string
	Value string
	Attrs []Attr
}

// HasAttrs reports whether the field carries attribute payload.
func (f Field) HasAttrs() bool { return len(f.Attrs) > 0 }

// Label renders the field for display: the tag name, or "tag @attr" pairs
// when the payload is attributes.
func (f Field) Label() string {
	if !f.HasAttrs() {
		return f.Name
	}
	names := make([]string, 0, len(f.Attrs))
	for _, a := range f.Attrs {
		names = append(names, "@"+a.Name)
	}
	return f.Name + " " + strings.Join(names, " ")
}

// DisplayValue renders the field payload for display.
func (f Field) DisplayValue() string {
	if !f.HasAttrs() {
		return f.Value
	}
	parts := make([]string, 0, len(f.Attrs))
	for _, a := range f.Attrs {
		parts = append(parts, a.Name+"="+a.Value)
	}
	out := strings.Join(parts, " ")
	if f.Value != "" {
		out += " " + f.Value
	}
	return out
}

func (f Field) clone() Field {
	out := f
	out.Attrs = append([]Attr(nil), f.Attrs...)
	return out
}

// LootType is one <type> entry: its name, any extra attributes beyond
// name (preserved for round-trip fidelity), and an ordered field list.
// Duplicate names across a document are tolerated by the format.
type LootType struct {
	Name   string
	Attrs  []Attr
	Fields []Field
}

// Clone deep-copies the type including all fields.
func (t LootType) Clone() LootType {
	out := LootType{Name: t.Name}
	out.Attrs = append([]Attr(nil), t.Attrs...)
	out.Fields = make([]Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		out.Fields = append(out.Fields, f.clone())
	}
	return out
}

// Document is the ordered collection of types parsed from one file. It
// owns its entries; all references into it are index-based.
type Document struct {
	Types []LootType
}

// ParseError reports malformed or unsupported input along with the byte
// offset the decoder had reached.
type ParseError struct {
	Reason string
	Offset int64
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Reason)
}

// Parse decodes a types.xml byte buffer into a Document. The root element
// must be <types>. Every child element of a <type> becomes a field with
// its attribute order and text preserved, whether or not this editor
// knows the tag.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Document{}

	sawRoot := false
	var current *LootType // type being filled, nil between types
	depth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: err.Error(), Offset: dec.InputOffset()}
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				if el.Name.Local != rootElement {
					return nil, &ParseError{
						Reason: fmt.Sprintf("root element is <%s>, want <%s>", el.Name.Local, rootElement),
						Offset: dec.InputOffset(),
					}
				}
				sawRoot = true
			case depth == 2 && el.Name.Local == "type":
				t := LootType{}
				for _, a := range el.Attr {
					if a.Name.Local == "name" {
						t.Name = a.Value
						continue
					}
					t.Attrs = append(t.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
				doc.Types = append(doc.Types, t)
				current = &doc.Types[len(doc.Types)-1]
			case depth >= 3 && current != nil:
				f := Field{Name: el.Name.Local}
				for _, a := range el.Attr {
					f.Attrs = append(f.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
				current.Fields = append(current.Fields, f)
			}
		case xml.CharData:
			text := strings.TrimSpace(string(el))
			if text == "" || current == nil || depth < 3 {
				continue
			}
			f := &current.Fields[len(current.Fields)-1]
			if f.Value != "" {
				f.Value += " "
			}
			f.Value += text
		case xml.EndElement:
			if depth == 2 && el.Name.Local == "type" {
				current = nil
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, &ParseError{Reason: "document has no <" + rootElement + "> root", Offset: dec.InputOffset()}
	}
	return doc, nil
}

// Serialize emits the document with an XML declaration and fixed-width
// indentation at the given width (DefaultIndent when width <= 0). The
// original file's whitespace is not preserved; re-indentation on save is
// documented behavior. Attribute order follows the in-memory order.
func (d *Document) Serialize(indent int) []byte {
	if indent <= 0 {
		indent = DefaultIndent
	}
	pad := strings.Repeat(" ", indent)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	buf.WriteString("<" + rootElement + ">\n")
	for _, t := range d.Types {
		buf.WriteString(pad + `<type name="` + escapeAttr(t.Name) + `"`)
		for _, a := range t.Attrs {
			buf.WriteString(" " + a.Name + `="` + escapeAttr(a.Value) + `"`)
		}
		buf.WriteString(">\n")
		for _, f := range t.Fields {
			writeField(&buf, pad+pad, f)
		}
		buf.WriteString(pad + "</type>\n")
	}
	buf.WriteString("</" + rootElement + ">\n")
	return buf.Bytes()
}

func writeField(buf *bytes.Buffer, pad string, f Field) {
	buf.WriteString(pad + "<" + f.Name)
	for _, a := range f.Attrs {
		buf.WriteString(" " + a.Name + `="` + escapeAttr(a.Value) + `"`)
	}
	if f.Value == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">" + escapeText(f.Value) + "</" + f.Name + ">\n")
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func escapeAttr(s string) string {
	// EscapeText also escapes quotes, which is all attribute values need.
	return escapeText(s)
}
