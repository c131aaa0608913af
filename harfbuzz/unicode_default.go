package harfbuzz

import (
	"cmp"
	"slices"
	"unicode"
	"unicode/utf8"

	gthb "github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

func newDefaultUnicodeFuncs() *UnicodeFuncs {
	return &UnicodeFuncs{
		CombiningClass:         xtextCombiningClass,
		EastAsianWidth:         xtextEastAsianWidth,
		GeneralCategory:        stdGeneralCategory,
		Mirroring:              bidiMirroring,
		Script:                 gotextScript,
		Compose:                xtextCompose,
		Decompose:              xtextDecompose,
		DecomposeCompatibility: xtextDecomposeCompatibility,
	}
}

func xtextCombiningClass(u rune) CombiningClass {
	return CombiningClass(norm.NFC.PropertiesString(string(u)).CCC())
}

func xtextEastAsianWidth(u rune) int {
	switch width.LookupRune(u).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// xtextDecompose returns the first step of the canonical decomposition. NFD
// decomposes fully, so for longer decompositions all but the last rune are
// recomposed and must yield a single code point.
func xtextDecompose(ab rune) (a, b rune, ok bool) {
	dec := norm.NFD.PropertiesString(string(ab)).Decomposition()
	if len(dec) == 0 {
		return ab, 0, false
	}
	if nfc := []rune(norm.NFC.String(string(ab))); len(nfc) == 1 && nfc[0] != ab {
		return nfc[0], 0, true // singleton
	}
	runes := []rune(string(dec))
	switch len(runes) {
	case 1:
		return runes[0], 0, true
	case 2:
		return runes[0], runes[1], true
	}
	head := []rune(norm.NFC.String(string(runes[:len(runes)-1])))
	if len(head) != 1 {
		return ab, 0, false
	}
	return head[0], runes[len(runes)-1], true
}

func xtextCompose(a, b rune) (rune, bool) {
	composed := norm.NFC.String(string([]rune{a, b}))
	first, n := utf8.DecodeRuneInString(composed)
	if first == utf8.RuneError && n == 1 {
		return 0, false
	}
	if n != len(composed) {
		return 0, false
	}
	return first, true
}

func xtextDecomposeCompatibility(u rune) []rune {
	dec := norm.NFKD.PropertiesString(string(u)).Decomposition()
	if len(dec) == 0 {
		return nil
	}
	return []rune(string(dec))
}

func gotextScript(u rune) Script {
	return Script(language.LookupScript(u))
}

//go:generate go run gen_mirroring.go

// bidiMirroring resolves paired brackets with x/text and all other
// Bidi_Mirroring_Glyph pairs from the generated UCD table.
func bidiMirroring(u rune) rune {
	if p, _ := bidi.LookupRune(u); p.IsBracket() {
		if m, _ := utf8.DecodeRuneInString(bidi.ReverseString(string(u))); m != utf8.RuneError {
			return m
		}
	}
	i, found := slices.BinarySearchFunc(bidiMirrorPairs[:], u, func(p [2]rune, u rune) int {
		return cmp.Compare(p[0], u)
	})
	if found {
		return bidiMirrorPairs[i][1]
	}
	return u
}

// categoryTables maps the standard library's category tables to
// GeneralCategory, frequent categories first.
var categoryTables = []struct {
	gc    GeneralCategory
	table *unicode.RangeTable
}{
	{LowercaseLetter, unicode.Ll},
	{UppercaseLetter, unicode.Lu},
	{OtherLetter, unicode.Lo},
	{NonSpacingMark, unicode.Mn},
	{DecimalNumber, unicode.Nd},
	{OtherPunctuation, unicode.Po},
	{SpaceSeparator, unicode.Zs},
	{Control, unicode.Cc},
	{Format, unicode.Cf},
	{SpacingMark, unicode.Mc},
	{EnclosingMark, unicode.Me},
	{ModifierLetter, unicode.Lm},
	{TitlecaseLetter, unicode.Lt},
	{LetterNumber, unicode.Nl},
	{OtherNumber, unicode.No},
	{ConnectPunctuation, unicode.Pc},
	{DashPunctuation, unicode.Pd},
	{OpenPunctuation, unicode.Ps},
	{ClosePunctuation, unicode.Pe},
	{InitialPunctuation, unicode.Pi},
	{FinalPunctuation, unicode.Pf},
	{MathSymbol, unicode.Sm},
	{CurrencySymbol, unicode.Sc},
	{ModifierSymbol, unicode.Sk},
	{OtherSymbol, unicode.So},
	{LineSeparator, unicode.Zl},
	{ParagraphSeparator, unicode.Zp},
	{PrivateUse, unicode.Co},
	{Surrogate, unicode.Cs},
}

func stdGeneralCategory(u rune) GeneralCategory {
	for _, c := range categoryTables {
		if unicode.Is(c.table, u) {
			return c.gc
		}
	}
	return Unassigned
}

// isDefaultIgnorable reports whether u is a Default_Ignorable_Code_Point.
func isDefaultIgnorable(u rune) bool {
	return gthb.IsDefaultIgnorable(u)
}

// isVariationSelector is true for VS1–VS256.
func isVariationSelector(u rune) bool {
	return (u >= 0xFE00 && u <= 0xFE0F) || (u >= 0xE0100 && u <= 0xE01EF)
}
