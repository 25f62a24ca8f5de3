package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackagedTemplates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.resources")
	defer teardown()
	//
	for _, name := range []string{"preview.hbs", "styles.hbs"} {
		tmpl, err := ResolveTemplate("", name).Template()
		require.NoError(t, err, name)
		assert.Equal(t, "packaged", tmpl.Origin)
		assert.Contains(t, tmpl.Source, "{{#each glyphs}}", name)
	}
}

func TestTemplateFromFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.resources")
	defer teardown()
	//
	p := filepath.Join(t.TempDir(), "styles.hbs")
	require.NoError(t, os.WriteFile(p, []byte(".{{prefix}} {}"), 0644))
	tmpl, err := ResolveTemplate(p, "styles.hbs").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ".{{prefix}} {}", tmpl.Source)
	assert.Equal(t, p, tmpl.Origin)
}

func TestMissingTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.resources")
	defer teardown()
	//
	_, err := ResolveTemplate(filepath.Join(t.TempDir(), "nope.hbs"), "styles.hbs").Template()
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = PackagedTemplate("unknown.hbs")
	assert.Equal(t, core.EMISSING, core.Code(err))
}
