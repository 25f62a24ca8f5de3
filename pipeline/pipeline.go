package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/codepoint"
	"github.com/MfgOpen/industricons/core/dirlist"
	"github.com/MfgOpen/industricons/core/locate"
	"github.com/MfgOpen/industricons/core/meta"
	"github.com/MfgOpen/industricons/engine/fontgen"
	"github.com/MfgOpen/industricons/engine/sprite"
	"github.com/MfgOpen/industricons/engine/svgopt"
)

// Report is the outcome of a pipeline run.
type Report struct {
	Layout    locate.Layout
	Icons     dirlist.Listing    // source icons
	Mapping   *codepoint.Mapping // as saved to src/mapping.json
	Optimized svgopt.Outcome
	Metadata  *meta.Metadata
	Font      *fontgen.Result // nil if font generation failed
	FontErr   error
	Sprite    *sprite.Sprite // nil if no sprite could be compiled
	SpriteErr error
}

// Errors returns all non-fatal errors of a run.
func (r *Report) Errors() []error {
	var errs []error
	for _, f := range r.Optimized.Failed {
		errs = append(errs, f.Err)
	}
	if r.FontErr != nil {
		errs = append(errs, r.FontErr)
	}
	if r.SpriteErr != nil {
		errs = append(errs, r.SpriteErr)
	}
	return errs
}

// Warnings returns messages about suspicious but harmless conditions of a
// run, to be shown to the user.
func (r *Report) Warnings() []string {
	var warnings []string
	if r.Icons.IsEmpty() {
		warnings = append(warnings, fmt.Sprintf("No files were found in %s", r.Layout.IconsSrcDir))
	}
	if r.Mapping != nil {
		for _, dup := range r.Mapping.Duplicates() {
			warnings = append(warnings, fmt.Sprintf("Icon name %s occurs more than once, keeping the first", dup))
		}
	}
	return warnings
}

// Run builds a project. A returned error is fatal; the report then holds
// whatever has been done up to the failing step.
func Run(ctx context.Context, config Config) (*Report, error) {
	if config.Root == "" {
		return nil, core.Error(core.EINVALID, "project root missing")
	}
	layout := locate.NewLayout(config.Root)
	report := &Report{Layout: layout}
	tracer().Infof("building icons of project %s", layout.Root)
	//
	// prepare: listing, codepoints, fresh dist folder
	icons, err := dirlist.List(layout.IconsSrcDir)
	if err != nil {
		return report, err
	}
	report.Icons = icons
	report.Mapping = codepoint.Assign(icons.BaseNames(), config.CodepointStart)
	for _, dup := range report.Mapping.Duplicates() {
		tracer().Infof("icon name %s occurs more than once, keeping the first", dup)
	}
	if err = layout.ResetDist(); err != nil {
		return report, err
	}
	if err = codepoint.Save(layout.MappingFile, report.Mapping); err != nil {
		return report, err
	}
	tracer().Infof("assigned %d codepoints", report.Mapping.Len())
	//
	// optimize icons into dist/lib
	if err = locate.EnsureDir(layout.DistLibDir); err != nil {
		return report, err
	}
	report.Optimized, err = svgopt.Default().OptimizeAll(icons.Paths(), layout.DistLibDir,
		config.OnOptimizeError)
	if err != nil {
		return report, err
	}
	//
	// font and sprite
	if report.Metadata, err = meta.Load(layout.MetaFile); err != nil {
		return report, err
	}
	font := fontgen.Generate(ctx, fontOptions(config, layout, report))
	report.Sprite, report.SpriteErr = compileSprite(layout)
	report.Font, report.FontErr = font.Await(ctx)
	return report, nil
}

func fontOptions(config Config, layout locate.Layout, report *Report) fontgen.Options {
	opts := fontgen.DefaultOptions()
	opts.Name = config.FontName
	opts.Prefix = config.FontName
	opts.InputDir = layout.DistLibDir
	opts.OutputDir = layout.DistRoot
	opts.Codepoints = report.Mapping
	opts.Version = report.Metadata.FontVersion
	opts.Description = report.Metadata.FontDescription
	opts.VersionFormat = config.VersionFormat
	opts.Templates = fontgen.Templates{
		HTML: projectTemplate(layout.PreviewTemplate),
		CSS:  projectTemplate(layout.StylesTemplate),
	}
	return opts
}

// projectTemplate returns path if the project provides this template and
// "" otherwise, selecting the bundled one.
func projectTemplate(path string) string {
	if _, err := os.Stat(path); err != nil {
		tracer().Infof("no template %s in project, using bundled one", path)
		return ""
	}
	return path
}

// compileSprite collects the optimized icons into a sprite and writes it.
// A sprite is written even if single icons fail.
func compileSprite(layout locate.Layout) (*sprite.Sprite, error) {
	optimized, err := dirlist.List(layout.DistLibDir)
	if err != nil {
		return nil, err
	}
	compiler := sprite.New(layout.DistRoot)
	for _, path := range optimized.Paths() {
		_ = compiler.AddFile(path) // errors are collected by the compiler
	}
	s, compileErr := compiler.Compile()
	if err = sprite.WriteFile(s); err != nil {
		return nil, errors.Join(compileErr, err)
	}
	return s, compileErr
}
