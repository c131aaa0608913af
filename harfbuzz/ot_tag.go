package harfbuzz

import "strings"

// ported from harfbuzz/src/hb-ot-tag.cc Copyright © 2009  Red Hat, Inc. 2011  Google, Inc. Behdad Esfahbod, Roozbeh Pournader

var (
	// OpenType script tag, `DFLT`, for features that are not script-specific.
	TagDefaultScript = MakeTag('D', 'F', 'L', 'T')
	// OpenType language tag, `dflt`. Not a valid language tag, but some fonts
	// mistakenly use it.
	TagDefaultLanguage = MakeTag('d', 'f', 'l', 't')
)

func oldTagFromScript(script Script) Tag {
	// This seems to be accurate as of end of 2012.
	switch script {
	case ScriptInvalid:
		return TagDefaultScript
	case ScriptMath:
		return MakeTag('m', 'a', 't', 'h')
	// KATAKANA and HIRAGANA both map to 'kana'
	case ScriptHiragana:
		return MakeTag('k', 'a', 'n', 'a')
	// Spaces at the end are preserved, unlike ISO 15924
	case ScriptLao:
		return MakeTag('l', 'a', 'o', ' ')
	case ScriptYi:
		return MakeTag('y', 'i', ' ', ' ')
	case ScriptNko:
		return MakeTag('n', 'k', 'o', ' ')
	case ScriptVai:
		return MakeTag('v', 'a', 'i', ' ')
	}
	// Else, just change first char to lowercase and return
	return Tag(script | 0x20000000)
}

func newTagFromScript(script Script) Tag {
	switch script {
	case ScriptBengali:
		return MakeTag('b', 'n', 'g', '2')
	case ScriptDevanagari:
		return MakeTag('d', 'e', 'v', '2')
	case ScriptGujarati:
		return MakeTag('g', 'j', 'r', '2')
	case ScriptGurmukhi:
		return MakeTag('g', 'u', 'r', '2')
	case ScriptKannada:
		return MakeTag('k', 'n', 'd', '2')
	case ScriptMalayalam:
		return MakeTag('m', 'l', 'm', '2')
	case ScriptOriya:
		return MakeTag('o', 'r', 'y', '2')
	case ScriptTamil:
		return MakeTag('t', 'm', 'l', '2')
	case ScriptTelugu:
		return MakeTag('t', 'e', 'l', '2')
	case ScriptMyanmar:
		return MakeTag('m', 'y', 'm', '2')
	}
	return TagDefaultScript
}

// OTTags returns the OpenType script tags for a script, most preferred
// first. Indic scripts yield their new-style tags ('dev3', 'dev2') before the
// old-style tag ('deva'). Pseudo-scripts yield no tags.
func (s Script) OTTags() []Tag {
	if !s.isRealScript() && s != ScriptMath {
		return nil
	}
	var tags []Tag
	tag := newTagFromScript(s)
	if tag != TagDefaultScript {
		// 'mym2' has no 'mym3' successor
		if tag != MakeTag('m', 'y', 'm', '2') {
			tags = append(tags, tag&^0xff|'3')
		}
		tags = append(tags, tag)
	}
	if old := oldTagFromScript(s); old != TagDefaultScript {
		tags = append(tags, old)
	}
	return tags
}

// otLanguages maps ISO 639-1 codes to OpenType language system tags for
// languages where the two differ by more than case.
var otLanguages = map[string]Tag{
	"ar": MakeTag('A', 'R', 'A', ' '),
	"cs": MakeTag('C', 'S', 'Y', ' '),
	"da": MakeTag('D', 'A', 'N', ' '),
	"de": MakeTag('D', 'E', 'U', ' '),
	"el": MakeTag('E', 'L', 'L', ' '),
	"en": MakeTag('E', 'N', 'G', ' '),
	"es": MakeTag('E', 'S', 'P', ' '),
	"fa": MakeTag('F', 'A', 'R', ' '),
	"fi": MakeTag('F', 'I', 'N', ' '),
	"fr": MakeTag('F', 'R', 'A', ' '),
	"he": MakeTag('I', 'W', 'R', ' '),
	"hi": MakeTag('H', 'I', 'N', ' '),
	"hu": MakeTag('H', 'U', 'N', ' '),
	"it": MakeTag('I', 'T', 'A', ' '),
	"ja": MakeTag('J', 'A', 'N', ' '),
	"ko": MakeTag('K', 'O', 'R', ' '),
	"nl": MakeTag('N', 'L', 'D', ' '),
	"no": MakeTag('N', 'O', 'R', ' '),
	"pl": MakeTag('P', 'L', 'K', ' '),
	"pt": MakeTag('P', 'T', 'G', ' '),
	"ro": MakeTag('R', 'O', 'M', ' '),
	"ru": MakeTag('R', 'U', 'S', ' '),
	"sr": MakeTag('S', 'R', 'B', ' '),
	"sv": MakeTag('S', 'V', 'E', ' '),
	"th": MakeTag('T', 'H', 'A', ' '),
	"tr": MakeTag('T', 'R', 'K', ' '),
	"uk": MakeTag('U', 'K', 'R', ' '),
	"ur": MakeTag('U', 'R', 'D', ' '),
	"vi": MakeTag('V', 'I', 'T', ' '),
	"zh": MakeTag('Z', 'H', 'S', ' '),
}

// OTTag returns the OpenType language system tag for a language, or
// TagDefaultLanguage if none is known. Three-letter primary subtags are
// assumed to be ISO 639-3 and are upper-cased.
func (l *languageItem) OTTag() Tag {
	if l == nil {
		return TagDefaultLanguage
	}
	primary, _, _ := strings.Cut(l.tag, "-")
	if tag, ok := otLanguages[primary]; ok {
		return tag
	}
	if len(primary) == 3 {
		p := strings.ToUpper(primary)
		return MakeTag(p[0], p[1], p[2], ' ')
	}
	return TagDefaultLanguage
}
