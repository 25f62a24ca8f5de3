package fontgen

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/locate"
	"github.com/MfgOpen/industricons/core/locate/resources"
	"github.com/MfgOpen/industricons/engine/ttf"
)

// Asset is a file written by the generator.
type Asset struct {
	Path string
	Size int
}

// Result describes the outcome of a successful generation run.
type Result struct {
	Font, CSS, HTML Asset
	Glyphs          []string // icon names in codepoint order
	Skipped         []string // icons which could not be converted
}

// Promise delivers the result of an asynchronous generation run.
type Promise interface {
	Await(ctx context.Context) (*Result, error)
}

type resultPlusErr struct {
	result *Result
	err    error
}

type generator struct {
	once chan resultPlusErr
	r    *resultPlusErr
}

// Await blocks until generation has finished or ctx is done. It may be
// called more than once.
func (g *generator) Await(ctx context.Context) (*Result, error) {
	if g.r != nil {
		return g.r.result, g.r.err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-g.once:
		g.r = &r
		return r.result, r.err
	}
}

// Generate starts font generation in the background. Errors are reported
// through the returned promise.
func Generate(ctx context.Context, opts Options) Promise {
	ch := make(chan resultPlusErr, 1)
	go func(ch chan<- resultPlusErr) {
		r, err := generate(ctx, opts)
		if err != nil {
			tracer().Errorf("font generation failed: %v", err)
		}
		ch <- resultPlusErr{r, err}
		close(ch)
	}(ch)
	return &generator{once: ch}
}

func generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	versionName, revision, err := formatVersion(opts.Version, opts.VersionFormat)
	if err != nil {
		return nil, err
	}
	// template loading overlaps with glyph conversion
	cssTmpl := resources.ResolveTemplate(opts.Templates.CSS, locate.StylesTemplateName)
	htmlTmpl := resources.ResolveTemplate(opts.Templates.HTML, locate.PreviewTemplateName)

	icons, skipped, err := loadIcons(&opts)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	font := &ttf.Font{
		Family:      opts.Name,
		Version:     versionName,
		Revision:    revision,
		Description: opts.Description,
		UnitsPerEm:  opts.FontHeight,
		Descent:     opts.Descent,
		Glyphs:      glyphs(icons, &opts),
	}
	fontBytes, err := font.Bytes()
	if err != nil {
		return nil, err
	}
	result := &Result{Skipped: skipped}
	for _, ic := range icons {
		result.Glyphs = append(result.Glyphs, ic.name)
	}
	if result.Font, err = writeAsset(opts.OutputDir, opts.Name+".ttf", fontBytes); err != nil {
		return nil, err
	}
	tracer().Infof("wrote font %s with %d glyphs", result.Font.Path, len(icons))

	sum := md5.Sum(fontBytes)
	fontSrc := fmt.Sprintf(`url("./%s.ttf?%s") format("truetype")`, opts.Name, hex.EncodeToString(sum[:]))
	tctx := templateContext(&opts, icons, fontSrc)

	t, err := cssTmpl.Await(ctx)
	if err != nil {
		return nil, err
	}
	styles, err := render(t, tctx)
	if err != nil {
		return nil, err
	}
	rules, err := checkCSS(styles)
	if err != nil {
		return nil, err
	}
	if rules < len(icons) {
		tracer().Infof("style sheet has %d glyph rules for %d icons", rules, len(icons))
	}
	if result.CSS, err = writeAsset(opts.OutputDir, opts.Name+".css", []byte(styles)); err != nil {
		return nil, err
	}

	if t, err = htmlTmpl.Await(ctx); err != nil {
		return nil, err
	}
	preview, err := render(t, tctx)
	if err != nil {
		return nil, err
	}
	entries, err := checkHTML(preview)
	if err != nil {
		return nil, err
	}
	if entries != len(icons) {
		tracer().Debugf("preview page tags %d elements with a codepoint for %d icons", entries, len(icons))
	}
	if result.HTML, err = writeAsset(opts.OutputDir, opts.Name+".html", []byte(preview)); err != nil {
		return nil, err
	}
	return result, nil
}

func writeAsset(dir, name string, data []byte) (Asset, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Asset{}, core.IOError(err, "cannot write %s", path)
	}
	return Asset{Path: path, Size: len(data)}, nil
}
