package dirlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortsAndFilters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.dirlist")
	defer teardown()
	//
	listing, err := List(filepath.Join("testdata", "icons"))
	require.NoError(t, err)
	assert.Equal(t, []string{"arrow-left", "Icon1", "icon2", "icon10"}, listing.BaseNames())
	assert.Equal(t, []string{"arrow-left.svg", "Icon1.svg", "icon2.svg", "icon10.svg"}, listing.FileNames())
	paths := listing.Paths()
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join("testdata", "icons", "icon10.svg"), paths[3])
}

func TestListEmptyDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.dirlist")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	listing, err := List(dir)
	require.NoError(t, err)
	assert.True(t, listing.IsEmpty())
	assert.Empty(t, listing.BaseNames())
}

func TestListMissingDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.dirlist")
	defer teardown()
	//
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, core.EMISSING, core.Code(err))
	f := filepath.Join(t.TempDir(), "file.svg")
	require.NoError(t, os.WriteFile(f, []byte("<svg/>"), 0644))
	_, err = List(f)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSortNumericAndCaseInsensitive(t *testing.T) {
	names := []string{"icon10", "Icon1", "icon2", "Zeta", "alpha", "élan"}
	Sort(names)
	assert.Equal(t, []string{"alpha", "élan", "Icon1", "icon2", "icon10", "Zeta"}, names)
}

func TestSortIsDeterministic(t *testing.T) {
	a := []string{"Home", "home", "HOME"}
	b := []string{"HOME", "home", "Home"}
	Sort(a)
	Sort(b)
	assert.Equal(t, a, b, "names equal under collation must still sort the same way")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "gear", BaseName("/some/where/gear.svg"))
	assert.Equal(t, "gear.filled", BaseName("gear.filled.svg"))
	assert.Equal(t, "noext", BaseName("noext"))
}
