package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/codepoint"
	"github.com/MfgOpen/industricons/engine/fontgen"
	"github.com/MfgOpen/industricons/engine/sprite"
	"github.com/MfgOpen/industricons/engine/svgopt"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type PipelineTestEnviron struct {
	suite.Suite
	config Config
}

// listen for 'go test' command --> run test methods
func TestPipelineFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.pipeline")
	defer teardown()
	suite.Run(t, new(PipelineTestEnviron))
}

// run before each test method: every test works on a fresh copy of the
// project
func (env *PipelineTestEnviron) SetupTest() {
	root := env.T().TempDir()
	env.Require().NoError(copyTree(filepath.Join("testdata", "project"), root))
	env.config = DefaultConfig(root)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
}

func (env *PipelineTestEnviron) path(elem ...string) string {
	return filepath.Join(append([]string{env.config.Root}, elem...)...)
}

func (env *PipelineTestEnviron) run() *Report {
	report, err := Run(context.Background(), env.config)
	env.Require().NoError(err)
	return report
}

// --- Tests -----------------------------------------------------------------

func (env *PipelineTestEnviron) TestCompleteRun() {
	report := env.run()
	env.Empty(report.Errors())
	env.Equal([]string{"arrow-up", "circle", "icon2", "icon10"}, report.Icons.BaseNames())
	for _, f := range []string{"industricon.ttf", "industricon.css", "industricon.html", "industricon.svg"} {
		env.FileExists(env.path("dist", f))
	}
	for _, name := range report.Icons.FileNames() {
		env.FileExists(env.path("dist", "lib", name))
	}
	env.Require().NotNil(report.Font)
	env.Equal([]string{"arrow-up", "circle", "icon2", "icon10"}, report.Font.Glyphs)
	env.Require().NotNil(report.Sprite)
	env.Len(report.Sprite.Symbols, 4)
	env.Equal("2.1.0", report.Metadata.FontVersion)
}

func (env *PipelineTestEnviron) TestMappingFile() {
	env.run()
	b, err := os.ReadFile(env.path("src", "mapping.json"))
	env.Require().NoError(err)
	env.Equal(`{
  "arrow-up": 60000,
  "circle": 60001,
  "icon2": 60002,
  "icon10": 60003
}`, string(b))
	m, err := codepoint.Load(env.path("src", "mapping.json"))
	env.Require().NoError(err)
	env.Equal(4, m.Len())
}

func (env *PipelineTestEnviron) TestRunsAreDeterministic() {
	env.run()
	first, err := os.ReadFile(env.path("src", "mapping.json"))
	env.Require().NoError(err)
	css1, err := os.ReadFile(env.path("dist", "industricon.css"))
	env.Require().NoError(err)
	env.run()
	second, err := os.ReadFile(env.path("src", "mapping.json"))
	env.Require().NoError(err)
	css2, err := os.ReadFile(env.path("dist", "industricon.css"))
	env.Require().NoError(err)
	env.Equal(string(first), string(second))
	env.Equal(string(css1), string(css2))
}

func (env *PipelineTestEnviron) TestOptimizedIcons() {
	env.run()
	for _, name := range []string{"arrow-up.svg", "circle.svg", "icon2.svg"} {
		b, err := os.ReadFile(env.path("dist", "lib", name))
		env.Require().NoError(err)
		s := string(b)
		env.Equal(1, strings.Count(s, "fill="), name)
		env.Contains(s, `fill="currentColor"`, name)
		env.NotContains(s, "<?xml", name)
	}
}

func (env *PipelineTestEnviron) TestProjectTemplateIsUsed() {
	env.run()
	b, err := os.ReadFile(env.path("dist", "industricon.html"))
	env.Require().NoError(err)
	env.Contains(string(b), `<li data-codepoint="ea60">arrow-up</li>`)
	// no styles template in the project: the bundled one is used
	b, err = os.ReadFile(env.path("dist", "industricon.css"))
	env.Require().NoError(err)
	env.Contains(string(b), "@font-face")
}

func (env *PipelineTestEnviron) TestMissingMetadataIsFatal() {
	stale := env.path("dist", "stale.txt")
	env.Require().NoError(os.MkdirAll(filepath.Dir(stale), 0755))
	env.Require().NoError(os.WriteFile(stale, []byte("old"), 0644))
	env.Require().NoError(os.Remove(env.path("meta.json")))
	report, err := Run(context.Background(), env.config)
	env.Require().Error(err)
	env.Equal(core.EMISSING, core.Code(err))
	env.NoFileExists(stale, "dist must have been wiped")
	env.NoFileExists(env.path("dist", "industricon.ttf"))
	env.NotNil(report.Mapping)
}

func (env *PipelineTestEnviron) TestInvalidMetadataIsFatal() {
	env.Require().NoError(os.WriteFile(env.path("meta.json"), []byte(`{"fontDescription": "x"}`), 0644))
	_, err := Run(context.Background(), env.config)
	env.Equal(core.EINVALID, core.Code(err))
}

func (env *PipelineTestEnviron) TestEmptyIconDirectory() {
	lib := env.path("src", "lib")
	env.Require().NoError(os.RemoveAll(lib))
	env.Require().NoError(os.MkdirAll(lib, 0755))
	report := env.run()
	b, err := os.ReadFile(env.path("src", "mapping.json"))
	env.Require().NoError(err)
	env.Equal("{}", string(b))
	env.Equal(0, report.Mapping.Len())
	env.NoError(report.FontErr)
	env.Require().NotNil(report.Sprite)
	env.Empty(report.Sprite.Symbols)
	env.Require().Len(report.Warnings(), 1)
	env.Contains(report.Warnings()[0], lib)
}

func (env *PipelineTestEnviron) TestBrokenIcon() {
	broken := env.path("src", "lib", "broken.svg")
	env.Require().NoError(os.WriteFile(broken, []byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0`), 0644))
	report := env.run()
	env.Equal(5, report.Mapping.Len(), "broken icons still get a codepoint")
	env.Require().Len(report.Optimized.Failed, 1)
	env.Equal(broken, report.Optimized.Failed[0].Path)
	env.Len(report.Errors(), 1)
	env.NoFileExists(env.path("dist", "lib", "broken.svg"))
	env.Require().NotNil(report.Font)
	env.Len(report.Font.Glyphs, 4)

	env.SetupTest()
	env.Require().NoError(os.WriteFile(env.path("src", "lib", "broken.svg"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0`), 0644))
	env.config.OnOptimizeError = svgopt.FailFast
	_, err := Run(context.Background(), env.config)
	env.Error(err)
}

func (env *PipelineTestEnviron) TestSpriteWriteKeepsIconErrors() {
	report := env.run()
	env.Empty(report.Warnings())
	layout := report.Layout
	env.Require().NoError(os.WriteFile(filepath.Join(layout.DistLibDir, "broken.svg"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0`), 0644))
	spritePath := filepath.Join(layout.DistRoot, sprite.DefaultFileName)
	env.Require().NoError(os.Remove(spritePath))
	env.Require().NoError(os.Mkdir(spritePath, 0755)) // sprite cannot be written
	s, err := compileSprite(layout)
	env.Nil(s)
	env.Require().Error(err)
	joined, ok := err.(interface{ Unwrap() []error })
	env.Require().True(ok)
	var codes []int
	for _, e := range joined.Unwrap() {
		codes = append(codes, core.Code(e))
	}
	env.Equal([]int{core.EINVALID, core.EIO}, codes)
}

func (env *PipelineTestEnviron) TestMissingIconDirectory() {
	env.Require().NoError(os.RemoveAll(env.path("src", "lib")))
	_, err := Run(context.Background(), env.config)
	env.Equal(core.EMISSING, core.Code(err))
}

func (env *PipelineTestEnviron) TestFontName() {
	env.config.FontName = "shopfloor"
	report := env.run()
	env.FileExists(env.path("dist", "shopfloor.ttf"))
	env.FileExists(env.path("dist", "shopfloor.css"))
	env.FileExists(env.path("dist", "industricon.svg"), "sprite name is fixed")
	env.NotNil(report.Font)
}

// ---------------------------------------------------------------------------

func TestConfigFrom(t *testing.T) {
	conf := testconfig.Conf{
		KeyFontName:        "shopfloor",
		KeyCodepointStart:  "61000",
		KeyVersionFormat:   "major-minor",
		KeyOnOptimizeError: "fail-fast",
	}
	c, err := ConfigFrom(conf, "/tmp/project")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Root:            "/tmp/project",
		FontName:        "shopfloor",
		CodepointStart:  61000,
		VersionFormat:   fontgen.VersionMajorMinor,
		OnOptimizeError: svgopt.FailFast,
	}, c)
	c, err = ConfigFrom(testconfig.Conf{}, "x")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig("x"), c)
	c, err = ConfigFrom(nil, "x")
	require.NoError(t, err)
	assert.Equal(t, codepoint.DefaultStart, c.CodepointStart)
}

func TestConfigErrors(t *testing.T) {
	for _, conf := range []testconfig.Conf{
		{KeyCodepointStart: "lots"},
		{KeyCodepointStart: 70000},
		{KeyVersionFormat: "semver"},
		{KeyOnOptimizeError: "retry"},
		{KeyFontName: ""},
	} {
		_, err := ConfigFrom(conf, "x")
		assert.Equal(t, core.EINVALID, core.Code(err), "%v", conf)
	}
}
