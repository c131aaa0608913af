package harfbuzz

import "github.com/go-text/typesetting/language"

// Script identifies a writing system by its ISO 15924 code, packed as a Tag
// with the first letter upper case ('Latn', 'Arab', ...).
type Script uint32

// A selection of scripts. Any other ISO 15924 code can be created with
// ScriptFromString.
const (
	ScriptInvalid    Script = 0
	ScriptCommon     Script = 'Z'<<24 | 'y'<<16 | 'y'<<8 | 'y'
	ScriptInherited  Script = 'Z'<<24 | 'i'<<16 | 'n'<<8 | 'h'
	ScriptUnknown    Script = 'Z'<<24 | 'z'<<16 | 'z'<<8 | 'z'
	ScriptMath       Script = 'Z'<<24 | 'm'<<16 | 't'<<8 | 'h'
	ScriptLatin      Script = 'L'<<24 | 'a'<<16 | 't'<<8 | 'n'
	ScriptGreek      Script = 'G'<<24 | 'r'<<16 | 'e'<<8 | 'k'
	ScriptCyrillic   Script = 'C'<<24 | 'y'<<16 | 'r'<<8 | 'l'
	ScriptArmenian   Script = 'A'<<24 | 'r'<<16 | 'm'<<8 | 'n'
	ScriptHebrew     Script = 'H'<<24 | 'e'<<16 | 'b'<<8 | 'r'
	ScriptArabic     Script = 'A'<<24 | 'r'<<16 | 'a'<<8 | 'b'
	ScriptSyriac     Script = 'S'<<24 | 'y'<<16 | 'r'<<8 | 'c'
	ScriptThaana     Script = 'T'<<24 | 'h'<<16 | 'a'<<8 | 'a'
	ScriptNko        Script = 'N'<<24 | 'k'<<16 | 'o'<<8 | 'o'
	ScriptDevanagari Script = 'D'<<24 | 'e'<<16 | 'v'<<8 | 'a'
	ScriptBengali    Script = 'B'<<24 | 'e'<<16 | 'n'<<8 | 'g'
	ScriptGurmukhi   Script = 'G'<<24 | 'u'<<16 | 'r'<<8 | 'u'
	ScriptGujarati   Script = 'G'<<24 | 'u'<<16 | 'j'<<8 | 'r'
	ScriptOriya      Script = 'O'<<24 | 'r'<<16 | 'y'<<8 | 'a'
	ScriptTamil      Script = 'T'<<24 | 'a'<<16 | 'm'<<8 | 'l'
	ScriptTelugu     Script = 'T'<<24 | 'e'<<16 | 'l'<<8 | 'u'
	ScriptKannada    Script = 'K'<<24 | 'n'<<16 | 'd'<<8 | 'a'
	ScriptMalayalam  Script = 'M'<<24 | 'l'<<16 | 'y'<<8 | 'm'
	ScriptSinhala    Script = 'S'<<24 | 'i'<<16 | 'n'<<8 | 'h'
	ScriptThai       Script = 'T'<<24 | 'h'<<16 | 'a'<<8 | 'i'
	ScriptLao        Script = 'L'<<24 | 'a'<<16 | 'o'<<8 | 'o'
	ScriptTibetan    Script = 'T'<<24 | 'i'<<16 | 'b'<<8 | 't'
	ScriptMyanmar    Script = 'M'<<24 | 'y'<<16 | 'm'<<8 | 'r'
	ScriptGeorgian   Script = 'G'<<24 | 'e'<<16 | 'o'<<8 | 'r'
	ScriptHangul     Script = 'H'<<24 | 'a'<<16 | 'n'<<8 | 'g'
	ScriptEthiopic   Script = 'E'<<24 | 't'<<16 | 'h'<<8 | 'i'
	ScriptCherokee   Script = 'C'<<24 | 'h'<<16 | 'e'<<8 | 'r'
	ScriptKhmer      Script = 'K'<<24 | 'h'<<16 | 'm'<<8 | 'r'
	ScriptMongolian  Script = 'M'<<24 | 'o'<<16 | 'n'<<8 | 'g'
	ScriptHiragana   Script = 'H'<<24 | 'i'<<16 | 'r'<<8 | 'a'
	ScriptKatakana   Script = 'K'<<24 | 'a'<<16 | 'n'<<8 | 'a'
	ScriptBopomofo   Script = 'B'<<24 | 'o'<<16 | 'p'<<8 | 'o'
	ScriptHan        Script = 'H'<<24 | 'a'<<16 | 'n'<<8 | 'i'
	ScriptYi         Script = 'Y'<<24 | 'i'<<16 | 'i'<<8 | 'i'
	ScriptVai        Script = 'V'<<24 | 'a'<<16 | 'i'<<8 | 'i'
	ScriptCoptic     Script = 'C'<<24 | 'o'<<16 | 'p'<<8 | 't'
)

// ScriptFromISO15924Tag converts an ISO 15924 tag to a Script. Case is
// normalized and the legacy private-use aliases 'Qaai' and 'Qaac' map to
// Inherited and Coptic. Tags which do not consist of 4 letters yield
// ScriptUnknown, TagNone yields ScriptInvalid.
func ScriptFromISO15924Tag(tag Tag) Script {
	if tag == TagNone {
		return ScriptInvalid
	}
	tag = (tag & 0xDFDFDFDF) | 0x00202020 // first letter upper, rest lower case
	switch tag {
	case MakeTag('Q', 'a', 'a', 'i'):
		return ScriptInherited
	case MakeTag('Q', 'a', 'a', 'c'):
		return ScriptCoptic
	}
	if tag&0xE0E0E0E0 != 0x40606060 {
		return ScriptUnknown
	}
	return Script(tag)
}

// ScriptFromString converts a 4-letter ISO 15924 code like "latn" to a
// Script.
func ScriptFromString(s string) Script {
	return ScriptFromISO15924Tag(TagFromString(s))
}

// ISO15924Tag returns the script's ISO 15924 code as a Tag.
func (s Script) ISO15924Tag() Tag {
	return Tag(s)
}

func (s Script) String() string {
	if s == ScriptInvalid {
		return "Invalid"
	}
	return Tag(s).String()
}

// rtlScripts lists the scripts written right-to-left.
var rtlScripts = map[Script]struct{}{}

// Scripts which may be written in either direction, see
// https://github.com/harfbuzz/harfbuzz/issues/1000
var bidirectionalScripts = map[Script]struct{}{}

func init() {
	for _, s := range []string{
		"Arab", "Hebr", "Syrc", "Thaa", "Cprt", "Khar", "Phnx", "Nkoo",
		"Lydi", "Avst", "Armi", "Phli", "Prti", "Sarb", "Orkh", "Samr",
		"Mand", "Merc", "Mero", "Mani", "Mend", "Nbat", "Narb", "Palm",
		"Phlp", "Hatr", "Adlm", "Rohg", "Sogo", "Sogd", "Elym", "Chrs",
		"Yezi", "Ougr",
	} {
		rtlScripts[ScriptFromString(s)] = struct{}{}
	}
	for _, s := range []string{"Hung", "Ital", "Runr", "Tfng"} {
		bidirectionalScripts[ScriptFromString(s)] = struct{}{}
	}
}

// HorizontalDirection returns the horizontal direction a script is
// conventionally written in. Scripts which are written in both directions
// return DirectionInvalid. All other scripts, including Common, Inherited,
// Unknown and Invalid, return LeftToRight.
func (s Script) HorizontalDirection() Direction {
	if _, ok := rtlScripts[s]; ok {
		return RightToLeft
	}
	if _, ok := bidirectionalScripts[s]; ok {
		return DirectionInvalid
	}
	return LeftToRight
}

// isRealScript is false for the pseudo-scripts Common, Inherited, Unknown and
// for ScriptInvalid.
func (s Script) isRealScript() bool {
	switch s {
	case ScriptInvalid, ScriptCommon, ScriptInherited, ScriptUnknown:
		return false
	}
	return true
}

// goText converts to the script type of go-text/typesetting, which packs
// ISO 15924 codes identically.
func (s Script) goText() language.Script {
	return language.Script(s)
}
