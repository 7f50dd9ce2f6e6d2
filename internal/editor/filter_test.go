package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skelde/typesmith/internal/source"
)

func openNames(t *testing.T, names ...string) *Editor {
	t.Helper()
	xml := "<types>\n"
	for _, n := range names {
		xml += `<type name="` + n + `"/>` + "\n"
	}
	xml += "</types>"
	mem := source.NewMem()
	mem.Put("types.xml", []byte(xml))
	ed, err := Open(mem, "types.xml", Options{})
	require.NoError(t, err)
	return ed
}

func matchNames(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Name)
	}
	return out
}

func TestRankTypesEmptyQueryKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	ed := openNames(t, "Zucchini", "AKM", "Apple")
	got := ed.RankTypes("")
	require.Equal(t, []string{"Zucchini", "AKM", "Apple"}, matchNames(got))
	require.Equal(t, 0, got[0].Index)
	require.Equal(t, 2, got[2].Index)
}

func TestRankTypesPrefixBeforeSubstring(t *testing.T) {
	t.Parallel()

	ed := openNames(t, "CanOpener", "AmmoCan", "Candle", "Bandage")
	got := matchNames(ed.RankTypes("can"))
	// prefix matches lead, substring matches follow, rest trail
	require.Equal(t, "Candle", got[0])
	require.Equal(t, "CanOpener", got[1])
	require.Equal(t, "AmmoCan", got[2])
	require.Equal(t, "Bandage", got[3])
}

func TestRankTypesIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	ed := openNames(t, "AKM", "akm_mag")
	got := matchNames(ed.RankTypes("AKM"))
	require.Equal(t, []string{"AKM", "akm_mag"}, got)
}

func TestRankTypesIndicesStayValid(t *testing.T) {
	t.Parallel()

	ed := openNames(t, "AKM", "Apple", "Bandage")
	for _, m := range ed.RankTypes("ap") {
		require.GreaterOrEqual(t, m.Index, 0)
		require.Less(t, m.Index, 3)
		require.Equal(t, ed.TypeNames()[m.Index], m.Name)
	}
}
