package resources

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path"

	"github.com/MfgOpen/industricons/core"
)

// NotFound returns an application error for a missing template.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "template not found: %s", res)
}

//go:embed packaged/*
var packaged embed.FS

// Template is the source text of a Handlebars template, together with a
// note where it has been loaded from.
type Template struct {
	Name   string
	Source string
	Origin string // file path, or "packaged"
}

// PackagedTemplate returns one of the templates bundled with this module,
// i.e. "preview.hbs" or "styles.hbs".
func PackagedTemplate(name string) (Template, error) {
	b, err := packaged.ReadFile(path.Join("packaged/templates", name))
	if err != nil {
		return Template{}, NotFound(name)
	}
	return Template{Name: name, Source: string(b), Origin: "packaged"}, nil
}

// --- Templates -------------------------------------------------------------

type tmplPlusErr struct {
	tmpl Template
	err  error
}

// TemplatePromise delivers a template once loading has finished.
type TemplatePromise interface {
	Template() (Template, error)
	Await(ctx context.Context) (Template, error)
}

type templateLoader struct {
	await func(ctx context.Context) (Template, error)
}

func (loader templateLoader) Template() (Template, error) {
	return loader.await(context.Background())
}

func (loader templateLoader) Await(ctx context.Context) (Template, error) {
	return loader.await(ctx)
}

// ResolveTemplate loads a template from file path p. If p is empty, the
// packaged template with the given name is used. A path which is set but
// cannot be read results in an error; it never falls back silently.
func ResolveTemplate(p string, name string) TemplatePromise {
	ch := make(chan tmplPlusErr, 1)
	go func(ch chan<- tmplPlusErr) {
		result := tmplPlusErr{}
		if p == "" {
			tracer().Debugf("using packaged template %s", name)
			result.tmpl, result.err = PackagedTemplate(name)
		} else if b, err := os.ReadFile(p); err != nil {
			result.err = core.IOError(err, "cannot read template %s", p)
		} else {
			tracer().Debugf("loaded template %s", p)
			result.tmpl = Template{Name: name, Source: string(b), Origin: p}
		}
		ch <- result
		close(ch)
	}(ch)
	return templateLoader{
		await: func(ctx context.Context) (Template, error) {
			select {
			case <-ctx.Done():
				return Template{}, ctx.Err()
			case r := <-ch:
				return r.tmpl, r.err
			}
		},
	}
}
