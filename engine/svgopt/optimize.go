package svgopt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/antchfx/xmlquery"
)

var errNoRoot = errors.New("document has no <svg> root element")

// Optimizer applies a chain of plugins to SVG documents.
// An Optimizer does not hold per-document state and may be re-used.
type Optimizer struct {
	plugins []Plugin
}

// New creates an optimizer running plugins in the given order.
func New(plugins ...Plugin) *Optimizer {
	return &Optimizer{plugins: plugins}
}

// Default creates an optimizer which makes icons take on the current
// text color.
func Default() *Optimizer {
	return New(
		CleanupDocument(),
		RemoveAttrs("fill"),
		AddRootAttributes(Attr{Name: "fill", Value: "currentColor"}),
	)
}

// Optimize transforms a single SVG document. The result is the serialized
// root element, with surrounding whitespace trimmed.
func (o *Optimizer) Optimize(svg []byte) ([]byte, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(svg))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse SVG")
	}
	root := rootElement(doc)
	if root == nil || root.Data != "svg" {
		return nil, core.WrapError(errNoRoot, core.EINVALID, "not an SVG document")
	}
	for _, p := range o.plugins {
		if err = p.Apply(doc); err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "plugin %s failed", p.Name())
		}
	}
	out := strings.TrimSpace(root.OutputXML(true))
	return []byte(out), nil
}

// OptimizeFile reads src, optimizes it and writes the result to dst.
func (o *Optimizer) OptimizeFile(src, dst string) error {
	svg, err := os.ReadFile(src)
	if err != nil {
		return core.IOError(err, "cannot read %s", src)
	}
	out, err := o.Optimize(svg)
	if err != nil {
		return core.WrapError(err, core.Code(err), "%s: %s", filepath.Base(src), core.UserMessage(err))
	}
	if err = os.WriteFile(dst, out, 0644); err != nil {
		return core.IOError(err, "cannot write %s", dst)
	}
	return nil
}

// FailurePolicy decides what happens when a single file fails.
type FailurePolicy int

const (
	BestEffort FailurePolicy = iota // log the failure and continue with the next file
	FailFast                        // stop at the first failure
)

func (p FailurePolicy) String() string {
	if p == FailFast {
		return "fail-fast"
	}
	return "best-effort"
}

// ParseFailurePolicy reads a policy from its string form. The empty string
// selects BestEffort.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-effort", "skip", "log":
		return BestEffort, nil
	case "fail-fast", "abort":
		return FailFast, nil
	}
	return BestEffort, core.Error(core.EINVALID, "unknown failure policy: %q", s)
}

// Failure records a file which could not be optimized.
type Failure struct {
	Path string
	Err  error
}

// Outcome summarizes a run over a set of files.
type Outcome struct {
	Written []string // paths of optimized files
	Failed  []Failure
}

// OptimizeAll optimizes each file of paths, one after another, writing
// results under outDir with the same file name. With policy BestEffort the
// returned error is always nil and failures are found in the outcome.
func (o *Optimizer) OptimizeAll(paths []string, outDir string, policy FailurePolicy) (Outcome, error) {
	var outcome Outcome
	for _, src := range paths {
		dst := filepath.Join(outDir, filepath.Base(src))
		if err := o.OptimizeFile(src, dst); err != nil {
			tracer().Errorf("optimizing %s: %v", src, err)
			outcome.Failed = append(outcome.Failed, Failure{Path: src, Err: err})
			if policy == FailFast {
				return outcome, err
			}
			continue
		}
		tracer().Debugf("optimized %s", filepath.Base(src))
		outcome.Written = append(outcome.Written, dst)
	}
	return outcome, nil
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}
