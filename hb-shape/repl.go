package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/hbshape/otlayout"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runREPLCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	level := mustFlagString(flags["trace"], "trace")
	if err := setTraceLevel(level); err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Println("Welcome to hb-shape") // colored welcome message
	repl, err := readline.New("hb > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	intp := newIntp()
	if name := noValue(mustFlagString(flags["font"], "font")); name != "" {
		if _, err := intp.execute("font " + name); err != nil {
			pterm.Error.Println(err)
		}
	}
	pterm.Info.Println("Quit with <ctrl>D, type 'help' for a list of commands")
	tracer().Infof("Trace level is %s", level)
	intp.REPL(repl)
}

// Intp is our interpreter object. It holds the font and the shaping
// settings which apply to lines of text being entered.
type Intp struct {
	font     *harfbuzz.Font
	fontname string
	opts     shapeOptions
}

func newIntp() *Intp {
	return &Intp{opts: defaultShapeOptions()}
}

func (intp *Intp) String() string {
	name := intp.fontname
	if name == "" {
		name = "<no font>"
	}
	return fmt.Sprintf("( font=%s features=%d shapers=%v )", name, len(intp.opts.features), intp.opts.shapers)
}

// REPL reads commands until EOF or 'quit'.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		pterm.Println(intp.String())
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type command func(intp *Intp, arg string) error

var commands map[string]command

func init() {
	commands = map[string]command{
		"font":      fontCmd,
		"features":  featuresCmd,
		"direction": directionCmd,
		"script":    scriptCmd,
		"language":  languageCmd,
		"shapers":   shapersCmd,
		"format":    formatCmd,
		"layout":    layoutCmd,
		"help":      helpCmd,
	}
}

// execute runs one line of input. Lines not starting with a command name
// are shaped as text; 'shape' forces shaping of the rest of the line.
func (intp *Intp) execute(line string) (quit bool, err error) {
	word, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch word {
	case "quit", "exit":
		return true, nil
	case "shape":
		return false, intp.shape(arg, false)
	}
	if cmd, ok := commands[word]; ok {
		return false, cmd(intp, arg)
	}
	return false, intp.shape(line, true)
}

// shape shapes text and prints the glyphs, optionally as a table.
func (intp *Intp) shape(text string, table bool) error {
	if intp.font == nil {
		return errors.New("no font loaded, use 'font <name>'")
	}
	buf, err := shapeText(intp.font, text, intp.opts)
	if err != nil {
		return err
	}
	if table {
		printGlyphTable(intp.font, buf)
	}
	pterm.Println(buf.SerializeAll(intp.font, intp.opts.format, intp.opts.flags))
	return nil
}

func fontCmd(intp *Intp, arg string) error {
	if arg == "" {
		return errors.New("usage: font <path or name>")
	}
	font, err := loadFont(arg, 0)
	if err != nil {
		return err
	}
	intp.font, intp.fontname = font, arg
	pterm.Printf("font tables: %v\n", font.Face().TableTags())
	return nil
}

func featuresCmd(intp *Intp, arg string) error {
	features, err := harfbuzz.ParseFeatures(arg)
	if err != nil {
		return err
	}
	intp.opts.features = features
	return nil
}

func directionCmd(intp *Intp, arg string) (err error) {
	intp.opts.props.Direction, err = parseDirection(arg)
	return
}

func scriptCmd(intp *Intp, arg string) (err error) {
	intp.opts.props.Script, err = parseScript(arg)
	return
}

func languageCmd(intp *Intp, arg string) error {
	intp.opts.props.Language = parseLanguage(arg)
	return nil
}

func shapersCmd(intp *Intp, arg string) error {
	if arg == "" {
		pterm.Printf("available shapers: %v\n", harfbuzz.ListShapers())
		return nil
	}
	intp.opts.shapers = parseShaperList(arg)
	return nil
}

func formatCmd(intp *Intp, arg string) (err error) {
	intp.opts.flags = 0
	for _, word := range strings.Fields(arg) {
		switch word {
		case "no-clusters":
			intp.opts.flags |= harfbuzz.SerializeNoClusters
		case "no-positions":
			intp.opts.flags |= harfbuzz.SerializeNoPositions
		case "no-glyph-names":
			intp.opts.flags |= harfbuzz.SerializeNoGlyphNames
		case "extents":
			intp.opts.flags |= harfbuzz.SerializeGlyphExtents
		default:
			if intp.opts.format, err = parseFormat(word); err != nil {
				return err
			}
		}
	}
	return nil
}

// layoutCmd prints the scripts and features of the font's layout tables.
func layoutCmd(intp *Intp, arg string) error {
	if intp.font == nil {
		return errors.New("no font loaded, use 'font <name>'")
	}
	layout := intp.font.Face().Layout()
	pterm.Printf("glyph classes: %v\n", layout.HasGlyphClasses())
	for _, t := range []struct {
		name  string
		table *otlayout.Table
	}{{"GSUB", layout.GSUB()}, {"GPOS", layout.GPOS()}} {
		pterm.Printf("%s has %d lookups\n", t.name, t.table.LookupCount())
		pterm.DefaultTable.WithHasHeader().WithData(layoutTable(t.table)).Render()
	}
	return nil
}

func layoutTable(table *otlayout.Table) [][]string {
	data := [][]string{
		{"Script", "Languages", "Features"},
	}
	for i, script := range table.ScriptTags() {
		var langs []string
		for _, lang := range table.LanguageTags(i) {
			langs = append(langs, lang.String())
		}
		var features []string
		for _, f := range table.FeatureTags(i, otlayout.NoIndex) {
			features = append(features, f.String())
		}
		data = append(data, []string{script.String(), strings.Join(langs, " "), strings.Join(features, " ")})
	}
	return data
}

func helpCmd(intp *Intp, arg string) error {
	pterm.Println(`
	font <path or name>      load a font file or system font
	features <list>          set features, e.g. kern,-liga,aalt[3:5]=2
	direction|script|language <value>
	                         set segment properties, '-' to guess them
	shapers [list]           list shapers or set the ones to try
	format <options>         text|json, no-clusters, no-positions, no-glyph-names, extents
	layout                   show scripts and features of the font
	shape <text>             shape text, printing serialized glyphs only
	<text>                   shape text
	quit                     leave`)
	return nil
}
