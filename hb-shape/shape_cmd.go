package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/hbshape/internal/fontload"
	"github.com/npillmayer/hbshape/otfont"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// shapeOptions are the settings for one shaping run. Unset segment
// properties are guessed from the text.
type shapeOptions struct {
	features []harfbuzz.Feature
	props    harfbuzz.SegmentProperties
	shapers  []string
	format   harfbuzz.SerializeFormat
	flags    harfbuzz.SerializeFlags
}

func defaultShapeOptions() shapeOptions {
	return shapeOptions{format: harfbuzz.SerializeText}
}

func runShapeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	if err := setTraceLevel(mustFlagString(flags["trace"], "trace")); err != nil {
		fatalf("%v", err)
	}
	fontName := strings.TrimSpace(args["font"].Value)
	if fontName == "" {
		fatalf("font is required")
	}
	font, err := loadFont(fontName, mustFlagInt(flags["face-index"], "face-index"))
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := shapeOptionsFromFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	text, err := shapeInput(args["text"].Value, mustFlagString(flags["codepoints"], "codepoints"))
	if err != nil {
		fatalf("%v", err)
	}
	buf, err := shapeText(font, text, opts)
	if err != nil {
		fatalf("shaping failed: %v", err)
	}
	if mustFlagBool(flags["table"], "table") {
		printGlyphTable(font, buf)
		return
	}
	fmt.Println(buf.SerializeAll(font, opts.format, opts.flags))
}

func runShapersCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	for _, name := range harfbuzz.ListShapers() {
		fmt.Println(name)
	}
}

// loadFont loads a face and creates a font at design-unit scale, using the
// font's tables for glyph metrics.
func loadFont(name string, index int) (*harfbuzz.Font, error) {
	f, err := fontload.LoadOpenTypeFont(name, index)
	if err != nil {
		return nil, err
	}
	font := harfbuzz.NewFont(f.Face)
	if err := otfont.SetFuncs(font); err != nil {
		return nil, err
	}
	tracer().Infof("using font %q from %s", f.Fontname, f.Filepath)
	return font, nil
}

func shapeOptionsFromFlags(flags map[string]commando.FlagValue) (opts shapeOptions, err error) {
	opts = defaultShapeOptions()
	if opts.features, err = harfbuzz.ParseFeatures(noValue(mustFlagString(flags["features"], "features"))); err != nil {
		return opts, err
	}
	if opts.props.Direction, err = parseDirection(mustFlagString(flags["direction"], "direction")); err != nil {
		return opts, err
	}
	if opts.props.Script, err = parseScript(mustFlagString(flags["script"], "script")); err != nil {
		return opts, err
	}
	opts.props.Language = parseLanguage(mustFlagString(flags["language"], "language"))
	opts.shapers = parseShaperList(mustFlagString(flags["shapers"], "shapers"))
	if opts.format, err = parseFormat(mustFlagString(flags["format"], "format")); err != nil {
		return opts, err
	}
	opts.flags = serializeFlags(
		mustFlagBool(flags["no-clusters"], "no-clusters"),
		mustFlagBool(flags["no-positions"], "no-positions"),
		mustFlagBool(flags["no-glyph-names"], "no-glyph-names"),
		mustFlagBool(flags["extents"], "extents"),
	)
	return opts, nil
}

// shapeText shapes text as one run with the given options.
func shapeText(font *harfbuzz.Font, text string, opts shapeOptions) (*harfbuzz.Buffer, error) {
	buf := harfbuzz.NewBuffer()
	buf.AddString(text, 0, -1)
	buf.SetDirection(opts.props.Direction)
	buf.SetScript(opts.props.Script)
	buf.SetLanguage(opts.props.Language)
	buf.GuessSegmentProperties()
	tracer().Debugf("shaping %q as %s", text, buf.Props())
	if err := harfbuzz.ShapeFull(font, buf, opts.features, opts.shapers); err != nil {
		return nil, err
	}
	return buf, nil
}

// --- Parsing of flag values ------------------------------------------------

// noValue maps the placeholder "-" of unset string flags to "".
func noValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

func shapeInput(text, codepoints string) (string, error) {
	if cp := noValue(codepoints); cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return text, nil
}

func parseDirection(s string) (harfbuzz.Direction, error) {
	s = noValue(s)
	if s == "" {
		return harfbuzz.DirectionInvalid, nil
	}
	dir := harfbuzz.DirectionFromString(s)
	if !dir.IsValid() {
		return dir, fmt.Errorf("unsupported direction %q (expected ltr|rtl|ttb|btt)", s)
	}
	return dir, nil
}

func parseScript(s string) (harfbuzz.Script, error) {
	s = noValue(s)
	if s == "" {
		return harfbuzz.ScriptInvalid, nil
	}
	if len(s) != 4 {
		return harfbuzz.ScriptInvalid, fmt.Errorf("invalid script %q (expected ISO 15924 code)", s)
	}
	return harfbuzz.ScriptFromString(s), nil
}

func parseLanguage(s string) harfbuzz.Language {
	return harfbuzz.LanguageFromString(noValue(s))
}

func parseShaperList(s string) []string {
	s = noValue(s)
	if s == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func parseFormat(s string) (harfbuzz.SerializeFormat, error) {
	s = noValue(s)
	if s == "" {
		return harfbuzz.SerializeText, nil
	}
	format := harfbuzz.SerializeFormatFromString(s)
	if format == harfbuzz.SerializeInvalid {
		return format, fmt.Errorf("unsupported output format %q (expected one of %v)", s, harfbuzz.SerializeFormats())
	}
	return format, nil
}

func serializeFlags(noClusters, noPositions, noGlyphNames, extents bool) harfbuzz.SerializeFlags {
	var flags harfbuzz.SerializeFlags
	if noClusters {
		flags |= harfbuzz.SerializeNoClusters
	}
	if noPositions {
		flags |= harfbuzz.SerializeNoPositions
	}
	if noGlyphNames {
		flags |= harfbuzz.SerializeNoGlyphNames
	}
	if extents {
		flags |= harfbuzz.SerializeGlyphExtents
	}
	return flags
}

func parseCodepoints(list string) ([]rune, error) {
	parts := splitCSVSpace(list)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF {
		return 0, fmt.Errorf("codepoint %q out of range", token)
	}
	return rune(u), nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// --- Output ----------------------------------------------------------------

func glyphTable(font *harfbuzz.Font, buf *harfbuzz.Buffer) [][]string {
	data := [][]string{
		{"#", "glyph", "name", "cluster", "x-adv", "y-adv", "x-off", "y-off"},
	}
	pos := buf.GlyphPositions()
	for i, g := range buf.GlyphInfos() {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.Itoa(int(g.Glyph)),
			font.GlyphToString(g.Glyph),
			strconv.Itoa(int(g.Cluster)),
			strconv.Itoa(int(pos[i].XAdvance)),
			strconv.Itoa(int(pos[i].YAdvance)),
			strconv.Itoa(int(pos[i].XOffset)),
			strconv.Itoa(int(pos[i].YOffset)),
		})
	}
	return data
}

func printGlyphTable(font *harfbuzz.Font, buf *harfbuzz.Buffer) {
	pterm.Printf("%d glyphs, %s\n", buf.Len(), buf.Props())
	pterm.DefaultTable.WithHasHeader().WithData(glyphTable(font, buf)).Render()
}
