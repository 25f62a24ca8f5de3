package codepoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSequential(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.codepoint")
	defer teardown()
	//
	m := Assign([]string{"alarm", "gear", "valve"}, DefaultStart)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"alarm", "gear", "valve"}, m.Names())
	for i, name := range m.Names() {
		cp, ok := m.Codepoint(name)
		assert.True(t, ok)
		assert.Equal(t, 60000+i, cp)
	}
	_, ok := m.Codepoint("pump")
	assert.False(t, ok)
}

func TestAssignDuplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.codepoint")
	defer teardown()
	//
	m := Assign([]string{"a", "a", "b"}, 100)
	assert.Equal(t, 2, m.Len())
	cp, _ := m.Codepoint("b")
	assert.Equal(t, 101, cp, "a duplicate must not consume a codepoint")
	assert.Equal(t, []string{"a"}, m.Duplicates())
}

func TestAssignEmpty(t *testing.T) {
	m := Assign(nil, DefaultStart)
	assert.Equal(t, 0, m.Len())
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestAssignIsDeterministic(t *testing.T) {
	names := []string{"icon1", "icon2", "icon10"}
	a, _ := Assign(names, DefaultStart).MarshalJSON()
	b, _ := Assign(names, DefaultStart).MarshalJSON()
	assert.Equal(t, a, b)
}

func TestMarshalKeepsOrder(t *testing.T) {
	m := Assign([]string{"zeta", "alpha"}, DefaultStart)
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zeta\": 60000,\n  \"alpha\": 60001\n}", string(data))
}

func TestSaveAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.codepoint")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stale": 1}`), 0644))
	m := Assign([]string{"pump", "motor", "fan"}, DefaultStart)
	require.NoError(t, Save(path, m))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Names(), loaded.Names())
	cp, ok := loaded.Codepoint("fan")
	assert.True(t, ok)
	assert.Equal(t, 60002, cp)
	_, ok = loaded.Codepoint("stale")
	assert.False(t, ok, "old mapping must be replaced")
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.codepoint")
	defer teardown()
	//
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Equal(t, core.EMISSING, core.Code(err))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"a": 1.5}`), 0644))
	_, err = Load(bad)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
