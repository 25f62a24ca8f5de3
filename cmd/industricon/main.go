/*
Command industricon builds the icon font, style sheet, preview page and
sprite of the project in the current working directory.

The command takes no arguments. It exits with status 1 if the build cannot
be completed; problems with single icons are reported but do not change
the exit status.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/pipeline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'industricons.cli'
func tracer() tracing.Trace {
	return tracing.Select("industricons.cli")
}

// packages whose traces are shown to the user
var traceKeys = []string{
	"cli", "pipeline", "dirlist", "codepoint", "meta", "svgopt",
	"outline", "ttf", "fontgen", "sprite", "resources",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace.industricons."+key] = "Error"
	}
	conf["trace.industricons.cli"] = "Info"
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	root, err := os.Getwd()
	if err != nil {
		core.UserError(core.IOError(err, "cannot determine working directory"))
		os.Exit(1)
	}
	config, err := pipeline.ConfigFrom(conf, root)
	if err != nil {
		fail(err)
	}
	pterm.Info.Printfln("Building icons in %s", root)
	report, err := pipeline.Run(context.Background(), config)
	if err != nil {
		fail(err)
	}
	summarize(report)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func fail(err error) {
	tracer().Errorf(err.Error())
	pterm.Error.Println(core.UserMessage(err))
	os.Exit(1)
}

func summarize(report *pipeline.Report) {
	for _, w := range report.Warnings() {
		pterm.Warning.Println(w)
	}
	for _, f := range report.Optimized.Failed {
		pterm.Warning.Printfln("Could not optimize %s: %s", f.Path, core.UserMessage(f.Err))
	}
	if report.FontErr != nil {
		pterm.Error.Printfln("Could not generate the font assets: %s", core.UserMessage(report.FontErr))
	} else if report.Font != nil {
		pterm.Success.Printfln("Font %s with %d glyphs", report.Font.Font.Path, len(report.Font.Glyphs))
	}
	if report.SpriteErr != nil {
		pterm.Error.Printfln("SVG sprite compilation was not successful: %s", core.UserMessage(report.SpriteErr))
	}
	if report.Sprite != nil {
		pterm.Success.Printfln("Sprite %s with %d symbols", report.Sprite.Path, len(report.Sprite.Symbols))
	}
	tracer().Infof("%d icons, %d problems", report.Icons.Len(), len(report.Errors()))
}
