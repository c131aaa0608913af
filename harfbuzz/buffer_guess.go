package harfbuzz

// GuessSegmentProperties fills in the segment properties which are not set.
//
// An invalid script is replaced by the script most code points belong to,
// not counting Common, Inherited and Unknown; ties go to the script seen
// first. If no code point has a real script, the script remains invalid.
// An invalid direction is derived from the script, defaulting to
// left-to-right; vertical directions are never guessed. A missing language
// is replaced by the default language.
func (b *Buffer) GuessSegmentProperties() {
	if b.props.Script == ScriptInvalid && b.contentType == ContentUnicode {
		b.props.Script = b.majorityScript()
	}
	if b.props.Direction == DirectionInvalid {
		b.props.Direction = b.props.Script.HorizontalDirection()
		if b.props.Direction == DirectionInvalid {
			b.props.Direction = LeftToRight
		}
	}
	if b.props.Language == LanguageInvalid {
		b.props.Language = DefaultLanguage()
	}
	tracer().Debugf("buffer: segment properties are %s", b.props)
}

func (b *Buffer) majorityScript() Script {
	counts := make(map[Script]int)
	var order []Script
	for _, c := range b.codepoints {
		s := b.unicode.script(c.Codepoint)
		if !s.isRealScript() {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	best := ScriptInvalid
	for _, s := range order {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
