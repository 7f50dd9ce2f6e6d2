package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalListSortsDirsFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zeta"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.xml"), []byte("<types/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Backup.xml"), []byte("<types/>"), 0o644))

	l := NewLocal()
	require.Equal(t, KindLocal, l.Kind())

	entries, err := l.List(dir)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		got = append(got, name)
	}
	require.Equal(t, []string{"Alpha/", "zeta/", "Backup.xml", "types.xml"}, got)
}

func TestLocalListMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewLocal().List(filepath.Join(t.TempDir(), "nope"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotFound, ioErr.Kind)
	require.Equal(t, "list", ioErr.Op)
}

func TestLocalReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "types.xml")
	require.NoError(t, os.WriteFile(path, []byte("<types></types>"), 0o644))

	data, err := NewLocal().ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<types></types>", string(data))

	_, err = NewLocal().ReadFile(filepath.Join(dir, "missing.xml"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotFound, ioErr.Kind)
}

func TestLocalWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "types.xml")
	l := NewLocal()

	require.NoError(t, l.WriteFile(path, []byte("first")))
	require.NoError(t, l.WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	// no temp droppings left behind
	dirents, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, de := range dirents {
		require.False(t, strings.HasSuffix(de.Name(), ".tmp"), "leftover temp file %s", de.Name())
	}
	require.Len(t, dirents, 1)
}

func TestLocalWriteFileMissingDir(t *testing.T) {
	t.Parallel()

	err := NewLocal().WriteFile(filepath.Join(t.TempDir(), "no", "such", "types.xml"), []byte("x"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotFound, ioErr.Kind)
	require.Equal(t, "write", ioErr.Op)
}

func TestIOErrorFormatting(t *testing.T) {
	t.Parallel()

	_, err := NewLocal().ReadFile(filepath.Join(t.TempDir(), "gone.xml"))
	require.Contains(t, err.Error(), "read")
	require.Contains(t, err.Error(), "gone.xml")

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "not found", ioErr.Kind.String())
	require.NotNil(t, ioErr.Unwrap())
}

func TestSortEntries(t *testing.T) {
	t.Parallel()

	entries := []DirEntry{
		{Name: "types.xml"},
		{Name: "events"},
		{Name: "db", IsDir: true},
		{Name: "Areas", IsDir: true},
		{Name: "cfglimits.xml"},
	}
	SortEntries(entries)

	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	require.Equal(t, []string{"Areas", "db", "cfglimits.xml", "events", "types.xml"}, got)
}
