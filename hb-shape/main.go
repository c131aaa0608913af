/*
Command hb-shape shapes text with an OpenType font and prints the glyph run.

	hb-shape shape [flags] <font> <text>
	hb-shape shapers
	hb-shape repl [--font <font>]

Fonts are given as file paths or as names of installed system fonts. The
output of command shape uses HarfBuzz's glyph serialization formats, either
"text" (the default) or "json".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'hbshape.cli'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.cli")
}

// traceKeys are the tracers of the module's packages.
var traceKeys = []string{"hbshape.cli", "hbshape.shaper", "hbshape.layout", "hbshape.font"}

func main() {
	initDisplay()
	initTracing()

	commando.
		SetExecutableName("hb-shape").
		SetVersion("v0.1.0").
		SetDescription("Shape text with OpenType fonts and print the resulting glyphs.")

	commando.
		Register("shape").
		SetDescription("Shape text with a font and print the serialized glyph run.").
		SetShortDescription("shape text").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("text", "text to shape (quote text containing spaces)", "").
		AddFlag("features,f", "feature list (e.g. kern,-liga,aalt[3:5]=2)", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl|ttb|btt (guessed if not given)", commando.String, "-").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Hebr; guessed if not given)", commando.String, "-").
		AddFlag("language,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "-").
		AddFlag("shapers", "comma separated list of shaping backends to try", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("face-index,i", "face of a font collection", commando.Int, 0).
		AddFlag("format,o", "output format: text|json", commando.String, "text").
		AddFlag("no-clusters", "do not print cluster values", commando.Bool, nil).
		AddFlag("no-positions", "do not print offsets and advances", commando.Bool, nil).
		AddFlag("no-glyph-names", "print glyph IDs instead of names", commando.Bool, nil).
		AddFlag("extents", "print glyph extents", commando.Bool, nil).
		AddFlag("table,T", "print a table instead of serialized glyphs", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runShapeCommand)

	commando.
		Register("shapers").
		SetDescription("List the shaping backends in the order they are tried.").
		SetShortDescription("list shapers").
		SetAction(runShapersCommand)

	commando.
		Register("repl").
		SetDescription("Shape text interactively.").
		SetShortDescription("interactive mode").
		AddFlag("font,F", "font file path or system font name", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Info").
		SetAction(runREPLCommand)

	commando.Parse(nil)
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

func initTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// setTraceLevel sets the level of all of the module's tracers.
func setTraceLevel(s string) error {
	level := tracing.LevelError
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level = tracing.LevelDebug
	case "info":
		level = tracing.LevelInfo
	case "", "error":
	default:
		return fmt.Errorf("invalid trace level %q (expected Debug|Info|Error)", s)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "hb-shape: "+format+"\n", args...)
	os.Exit(1)
}
