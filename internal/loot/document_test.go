package loot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<types>
    <type name="AKM">
        <nominal>8</nominal>
        <lifetime>10800</lifetime>
        <restock>1800</restock>
        <min>4</min>
        <quantmin>-1</quantmin>
        <quantmax>-1</quantmax>
        <cost>100</cost>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
        <category name="weapons"/>
        <usage name="Military"/>
        <value name="Tier3"/>
        <value name="Tier4"/>
    </type>
    <type name="Apple">
        <nominal>40</nominal>
        <lifetime>14400</lifetime>
        <category name="food"/>
    </type>
</types>
`

func TestParseSample(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(sampleXML))
	require.NoError(t, err)
	require.Len(t, doc.Types, 2)

	akm := doc.Types[0]
	require.Equal(t, "AKM", akm.Name)
	require.Len(t, akm.Fields, 12)

	// field order follows the file
	require.Equal(t, "nominal", akm.Fields[0].Name)
	require.Equal(t, "8", akm.Fields[0].Value)
	require.Equal(t, "lifetime", akm.Fields[1].Name)
	require.Equal(t, "restock", akm.Fields[2].Name)

	flags := akm.Fields[7]
	require.Equal(t, "flags", flags.Name)
	require.True(t, flags.HasAttrs())
	require.Len(t, flags.Attrs, 6)
	require.Equal(t, Attr{Name: "count_in_cargo", Value: "0"}, flags.Attrs[0])
	require.Equal(t, Attr{Name: "count_in_map", Value: "1"}, flags.Attrs[2])

	// repeated marker elements stay distinct entries
	require.Equal(t, "value", akm.Fields[10].Name)
	require.Equal(t, "value", akm.Fields[11].Name)
	require.Equal(t, "Tier3", akm.Fields[10].Attrs[0].Value)
	require.Equal(t, "Tier4", akm.Fields[11].Attrs[0].Value)
}

func TestParsePreservesUnknownTagsAndAttrs(t *testing.T) {
	t.Parallel()

	in := `<types>
  <type name="X" tier="3">
    <frobnicate mode="7">deep</frobnicate>
  </type>
</types>`
	doc, err := Parse([]byte(in))
	require.NoError(t, err)
	require.Len(t, doc.Types, 1)
	require.Equal(t, []Attr{{Name: "tier", Value: "3"}}, doc.Types[0].Attrs)

	f := doc.Types[0].Fields[0]
	require.Equal(t, "frobnicate", f.Name)
	require.Equal(t, "deep", f.Value)
	require.Equal(t, []Attr{{Name: "mode", Value: "7"}}, f.Attrs)

	out := string(doc.Serialize(2))
	require.Contains(t, out, `<type name="X" tier="3">`)
	require.Contains(t, out, `<frobnicate mode="7">deep</frobnicate>`)
}

func TestRoundTripStable(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(sampleXML))
	require.NoError(t, err)
	first := doc.Serialize(4)

	reparsed, err := Parse(first)
	require.NoError(t, err)
	second := reparsed.Serialize(4)

	// serialize/parse/serialize must be a fixed point
	require.Equal(t, string(first), string(second))
	require.Equal(t, sampleXML, string(first))
}

func TestSerializeIndentWidth(t *testing.T) {
	t.Parallel()

	doc := &Document{Types: []LootType{{Name: "A", Fields: []Field{{Name: "nominal", Value: "1"}}}}}

	two := string(doc.Serialize(2))
	require.Contains(t, two, "\n  <type")
	require.Contains(t, two, "\n    <nominal>1</nominal>")

	def := string(doc.Serialize(0))
	require.Contains(t, def, "\n    <type")
	require.Contains(t, def, "\n        <nominal>1</nominal>")
	require.True(t, strings.HasPrefix(def, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`))
}

func TestSerializeEscapes(t *testing.T) {
	t.Parallel()

	doc := &Document{Types: []LootType{{
		Name: `A"B<C&D`,
		Fields: []Field{
			{Name: "nominal", Value: "1 < 2 & 3"},
			{Name: "category", Attrs: []Attr{{Name: "name", Value: `we"apons`}}},
		},
	}}}
	out := doc.Serialize(4)

	reparsed, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, `A"B<C&D`, reparsed.Types[0].Name)
	require.Equal(t, "1 < 2 & 3", reparsed.Types[0].Fields[0].Value)
	require.Equal(t, `we"apons`, reparsed.Types[0].Fields[1].Attrs[0].Value)
}

func TestParseEmptyRoot(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("<types></types>"))
	require.NoError(t, err)
	require.Empty(t, doc.Types)
}

func TestParseRejectsWrongRoot(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("<items><type name=\"A\"/></items>"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Reason, "<items>")
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("<types><type name=\"A\">"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Greater(t, perr.Offset, int64(0))
	require.Contains(t, perr.Error(), "parse error at byte")

	_, err = Parse(nil)
	require.ErrorAs(t, err, &perr)
}

func TestFieldDisplay(t *testing.T) {
	t.Parallel()

	plain := Field{Name: "nominal", Value: "8"}
	require.Equal(t, "nominal", plain.Label())
	require.Equal(t, "8", plain.DisplayValue())

	attrs := Field{Name: "category", Attrs: []Attr{{Name: "name", Value: "weapons"}}}
	require.Equal(t, "category @name", attrs.Label())
	require.Equal(t, "name=weapons", attrs.DisplayValue())
}
