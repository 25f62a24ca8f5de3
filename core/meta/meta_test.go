package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMeta(t *testing.T, content string) string {
	p := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.meta")
	defer teardown()
	//
	md, err := Load(writeMeta(t, `{"fontVersion": "1.2.3", "fontDescription": "shop floor icons"}`))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", md.FontVersion)
	assert.Equal(t, "shop floor icons", md.FontDescription)
	md, err = Load(writeMeta(t, `{"fontVersion": "2.0"}`))
	require.NoError(t, err)
	assert.Equal(t, "", md.FontDescription)
}

func TestLoadMetadataFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.meta")
	defer teardown()
	//
	_, err := Load(filepath.Join(t.TempDir(), "meta.json"))
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = Load(writeMeta(t, `{"fontVersion": `))
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Load(writeMeta(t, `{"fontDescription": "no version"}`))
	assert.Equal(t, core.EINVALID, core.Code(err))
}
