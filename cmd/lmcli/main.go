/*
Command lmcli renders letter expressions.

Usage:

    lmcli [flags] [expression]

Without an expression the default expression is rendered. Flag -i starts an
interactive session, where every input line is rendered as soon as it has
been entered. Flag -batch renders every expression of a file into
out-NNNN.png, numbered by line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lettermath/backend/png"
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/core/locate/resources"
	"github.com/npillmayer/lettermath/engine/colors"
	"github.com/npillmayer/lettermath/engine/evaluate"
	"github.com/npillmayer/lettermath/engine/expr"
	"github.com/npillmayer/lettermath/input/exprfile"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lettermath.eval'
func tracer() tracing.Trace {
	return tracing.Select("lettermath.eval")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.lettermath.eval":  "Info",
		"trace.lettermath.fonts": "Info",
		"lettermath.font":        "100px Go",
		"lettermath.colors":      colors.DefaultName,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontspec := flag.String("font", conf.GetString("lettermath.font"), "Font specification, e.g. \"bold 80px Go\"")
	strategy := flag.String("colors", conf.GetString("lettermath.colors"), "Color strategy")
	fontdir := flag.String("fontdir", "", "Additional directory to search for fonts")
	palette := flag.String("palette", "", "Comma-separated hex colors for color strategy \"Custom\"")
	outfile := flag.String("o", "", "Write picture to PNG file")
	batch := flag.String("batch", "", "Render every line of a file into out-NNNN.png")
	outdir := flag.String("outdir", ".", "Output directory for batch mode")
	showRepr := flag.Bool("repr", false, "Print syntax tree")
	showPretty := flag.Bool("pretty", false, "Print normalized expression")
	showPolish := flag.Bool("polish", false, "Print expression in prefix notation")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()
	if *fontdir != "" {
		conf["lettermath.fontdir"] = *fontdir
	}
	if *palette != "" {
		conf["lettermath.palette"] = *palette
	}
	setTraceLevel(*tlevel)
	//
	catalog, err := colors.StandardCatalog(conf)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	factory, err := lookupColors(catalog, *strategy)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	tc, err := loadFont(conf, font.Spec(*fontspec))
	if err != nil {
		core.UserError(err)
		os.Exit(3)
	}
	//
	switch {
	case *interactive:
		if err := startREPL(conf, catalog, tc, factory); err != nil {
			core.UserError(err)
			os.Exit(4)
		}
	case *batch != "":
		if failed := renderBatch(*batch, *outdir, tc, factory); failed > 0 {
			os.Exit(5)
		}
	default:
		text := strings.TrimSpace(strings.Join(flag.Args(), " "))
		if text == "" {
			text = expr.DefaultExpression
		}
		r := evaluate.RenderText(text, tc, factory, nil)
		if r.Err != nil {
			reportError(r)
			os.Exit(6)
		}
		printResult(r, *showRepr, *showPretty, *showPolish)
		if *outfile != "" {
			if err := png.WriteFile(*outfile, r.Bitmap); err != nil {
				core.UserError(err)
				os.Exit(7)
			}
			pterm.Success.Printfln("wrote %s", *outfile)
		}
	}
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
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  " Warn ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range []string{"eval", "fonts", "expr", "colors", "glyphs", "raster"} {
		tracing.Select("lettermath." + key).SetTraceLevel(l)
	}
	if l == tracing.LevelDebug {
		pterm.EnableDebugMessages()
	}
}

func lookupColors(catalog *colors.Catalog, name string) (colors.Factory, error) {
	entry, err := catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	tracer().Infof("color strategy is %s", entry.Name)
	return entry.Factory, nil
}

// loadFont resolves a font specification. A missing family is reported as
// a warning and the fallback font is used.
func loadFont(conf schuko.Configuration, spec font.Spec) (*font.TypeCase, error) {
	tc, err := resources.ResolveTypeCase(conf, spec).TypeCase()
	if err != nil && tc != nil && core.Code(err) == core.EMISSING {
		pterm.Warning.Println(core.UserMessage(err))
		return tc, nil
	}
	return tc, err
}

func printResult(r *evaluate.Result, repr, pretty, polish bool) {
	if repr {
		pterm.Println(expr.Repr(r.Tree))
	}
	if pretty {
		pterm.Println(expr.Pretty(r.Tree))
	}
	if polish {
		pterm.Println(expr.Polish(r.Tree))
	}
	pterm.Info.Printfln("%s → %d×%d px", expr.Pretty(r.Tree), r.Bitmap.Width(), r.Bitmap.Height())
}

func reportError(r *evaluate.Result) {
	var serr *expr.SyntaxError
	if errors.As(r.Err, &serr) {
		pterm.Error.Println(r.Source)
		pterm.Error.Println(caret(r.Source, serr.Column) + " " + serr.Error())
		return
	}
	pterm.Error.Println(errorMessage(r.Err))
}

// errorMessage is the user message of err. Rasterization and internal errors
// carry their cause, too.
func errorMessage(err error) string {
	switch core.Code(err) {
	case core.ERASTER, core.EINTERNAL:
		return err.Error()
	}
	return core.UserMessage(err)
}

// caret returns a marker below a column of the source text, counting
// columns by grapheme clusters.
func caret(source string, column int) string {
	if column < 1 {
		column = 1
	}
	return strings.Repeat(" ", column-1) + "^"
}

// renderBatch renders every expression of a batch file and returns the
// number of expressions which could not be rendered.
func renderBatch(path, outdir string, tc *font.TypeCase, factory colors.Factory) int {
	lines, err := exprfile.ReadFile(path)
	if err != nil {
		core.UserError(err)
		return 1
	}
	failed := 0
	for _, line := range lines {
		r := evaluate.RenderText(line.Text, tc, factory, nil)
		if r.Err != nil {
			pterm.Error.Printfln("line %d: %s", line.No, errorMessage(r.Err))
			failed++
			continue
		}
		out := filepath.Join(outdir, fmt.Sprintf("out-%04d.png", line.No))
		if err := png.WriteFile(out, r.Bitmap); err != nil {
			core.UserError(err)
			failed++
			continue
		}
		pterm.Info.Printfln("line %d: %s → %s", line.No, expr.Pretty(r.Tree), out)
	}
	return failed
}
