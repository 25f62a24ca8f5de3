package svgopt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type OptimizerTestEnviron struct {
	suite.Suite
	opt    *Optimizer
	outDir string
}

// listen for 'go test' command --> run test methods
func TestOptimizerFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "industricons.svgopt")
	defer teardown()
	suite.Run(t, new(OptimizerTestEnviron))
}

// run once, before test suite methods
func (env *OptimizerTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	env.opt = Default()
}

// run before each test method
func (env *OptimizerTestEnviron) SetupTest() {
	env.outDir = env.T().TempDir()
}

// --- Tests -----------------------------------------------------------------

func (env *OptimizerTestEnviron) TestFillIsReplaced() {
	out, err := env.opt.Optimize([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="#000000" d="M0 0h24v24H0z"/></svg>`))
	env.Require().NoError(err)
	env.Equal(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="currentColor"><path d="M0 0h24v24H0z"></path></svg>`, string(out))
}

func (env *OptimizerTestEnviron) TestNestedFillsAndCleanup() {
	svg, err := os.ReadFile(filepath.Join("testdata", "filled.svg"))
	env.Require().NoError(err)
	out, err := env.opt.Optimize(svg)
	env.Require().NoError(err)
	s := string(out)
	env.Equal(1, strings.Count(s, ` fill="`), "only the root fill should remain")
	env.Contains(s, `fill="currentColor"`)
	env.Contains(s, `fill-rule="evenodd"`, "fill-rule must be kept")
	env.NotContains(s, "<?xml")
	env.NotContains(s, "Generator")
	env.True(strings.HasPrefix(s, "<svg"))
	env.True(strings.HasSuffix(s, "</svg>"))
}

func (env *OptimizerTestEnviron) TestExistingRootAttributeIsKept() {
	opt := New(AddRootAttributes(Attr{Name: "fill", Value: "currentColor"}))
	out, err := opt.Optimize([]byte(`<svg fill="red"></svg>`))
	env.Require().NoError(err)
	env.Equal(`<svg fill="red"></svg>`, string(out))
}

func (env *OptimizerTestEnviron) TestInvalidDocuments() {
	_, err := env.opt.Optimize([]byte(`<svg><path></svg>`))
	env.Equal(core.EINVALID, core.Code(err))
	_, err = env.opt.Optimize([]byte(`just text`))
	env.Equal(core.EINVALID, core.Code(err))
	_, err = env.opt.Optimize([]byte(`<html></html>`))
	env.Equal(core.EINVALID, core.Code(err))
}

func (env *OptimizerTestEnviron) TestOptimizeAllBestEffort() {
	paths := []string{
		filepath.Join("testdata", "broken.svg"),
		filepath.Join("testdata", "filled.svg"),
		filepath.Join("testdata", "notsvg.svg"),
	}
	outcome, err := env.opt.OptimizeAll(paths, env.outDir, BestEffort)
	env.Require().NoError(err)
	env.Len(outcome.Written, 1)
	env.Len(outcome.Failed, 2)
	env.FileExists(filepath.Join(env.outDir, "filled.svg"))
	env.NoFileExists(filepath.Join(env.outDir, "broken.svg"))
}

func (env *OptimizerTestEnviron) TestOptimizeAllFailFast() {
	paths := []string{
		filepath.Join("testdata", "broken.svg"),
		filepath.Join("testdata", "filled.svg"),
	}
	outcome, err := env.opt.OptimizeAll(paths, env.outDir, FailFast)
	env.Error(err)
	env.Empty(outcome.Written)
	env.NoFileExists(filepath.Join(env.outDir, "filled.svg"))
}

func (env *OptimizerTestEnviron) TestMissingSourceFile() {
	err := env.opt.OptimizeFile(filepath.Join("testdata", "nope.svg"), filepath.Join(env.outDir, "nope.svg"))
	env.Equal(core.EMISSING, core.Code(err))
}

func TestParseFailurePolicy(t *testing.T) {
	for in, want := range map[string]FailurePolicy{
		"": BestEffort, "best-effort": BestEffort, "Fail-Fast": FailFast, "abort": FailFast,
	} {
		p, err := ParseFailurePolicy(in)
		if err != nil || p != want {
			t.Errorf("ParseFailurePolicy(%q) = %v, %v; want %v", in, p, err, want)
		}
	}
	if _, err := ParseFailurePolicy("retry"); core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for unknown policy, got %v", err)
	}
}
