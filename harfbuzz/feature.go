package harfbuzz

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FeatureGlobalStart is the start of a feature applying to the whole buffer.
	FeatureGlobalStart uint32 = 0
	// FeatureGlobalEnd is the end of a feature applying to the whole buffer.
	FeatureGlobalEnd uint32 = 0xFFFFFFFF
)

// Feature switches an OpenType feature on or off (or selects an alternate,
// for values > 1) for the characters with cluster values in [Start, End).
type Feature struct {
	Tag   Tag
	Value uint32
	Start uint32
	End   uint32
}

// NewFeature creates a feature with value 1 for the whole buffer.
func NewFeature(tag Tag) Feature {
	return Feature{Tag: tag, Value: 1, Start: FeatureGlobalStart, End: FeatureGlobalEnd}
}

// IsGlobal is true for features covering the whole buffer.
func (f Feature) IsGlobal() bool {
	return f.Start == FeatureGlobalStart && f.End == FeatureGlobalEnd
}

// covers reports whether the feature applies at cluster.
func (f Feature) covers(cluster uint32) bool {
	return f.Start <= cluster && cluster < f.End
}

// ParseFeature parses a feature setting. Accepted forms are
//
//	kern        switch on
//	+kern       switch on
//	-kern       switch off
//	kern=0      set value
//	aalt=2      select alternate 2
//	kern[3:5]   apply to clusters 3 and 4 (also kern[3:], kern[:5], kern[3])
//	kern=0[3:5] or kern[3:5]=0
//
// Tags may be quoted ('kern' or "kern") and are then required to have 4
// characters. Unquoted tags shorter than 4 characters are padded with
// spaces.
func ParseFeature(text string) (Feature, error) {
	p := &featureParser{s: text}
	f := Feature{Value: 1, Start: FeatureGlobalStart, End: FeatureGlobalEnd}
	p.skipSpace()
	switch p.peek() {
	case '-':
		f.Value = 0
		p.pos++
	case '+':
		p.pos++
	}
	var err error
	if f.Tag, err = p.tag(); err != nil {
		return Feature{}, err
	}
	hadRange := false
	if p.peek() == '[' {
		if f.Start, f.End, err = p.indices(); err != nil {
			return Feature{}, err
		}
		hadRange = true
	}
	if p.peek() == '=' {
		p.pos++
		p.skipSpace()
		if f.Value, err = p.uint(); err != nil {
			return Feature{}, err
		}
	}
	if p.peek() == '[' && !hadRange {
		if f.Start, f.End, err = p.indices(); err != nil {
			return Feature{}, err
		}
	}
	if p.skipSpace(); p.pos < len(p.s) {
		return Feature{}, p.errorf("unexpected trailing characters")
	}
	return f, nil
}

// ParseFeatures parses a list of feature settings separated by commas or
// white space.
func ParseFeatures(list string) ([]Feature, error) {
	parts := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	features := make([]Feature, 0, len(parts))
	for _, part := range parts {
		f, err := ParseFeature(part)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// String formats the feature in the syntax accepted by ParseFeature.
func (f Feature) String() string {
	var sb strings.Builder
	if f.Value == 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(strings.TrimRight(f.Tag.String(), " "))
	if !f.IsGlobal() {
		sb.WriteByte('[')
		if f.Start != 0 || f.End == 1 {
			sb.WriteString(strconv.FormatUint(uint64(f.Start), 10))
		}
		if f.End != f.Start+1 {
			sb.WriteByte(':')
			if f.End != FeatureGlobalEnd {
				sb.WriteString(strconv.FormatUint(uint64(f.End), 10))
			}
		}
		sb.WriteByte(']')
	}
	if f.Value > 1 {
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatUint(uint64(f.Value), 10))
	}
	return sb.String()
}

type featureParser struct {
	s   string
	pos int
}

func (p *featureParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedFeature, p.s, fmt.Sprintf(format, args...))
}

func (p *featureParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *featureParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func (p *featureParser) tag() (Tag, error) {
	if q := p.peek(); q == '\'' || q == '"' {
		p.pos++
		end := strings.IndexByte(p.s[p.pos:], q)
		if end != 4 {
			return TagNone, p.errorf("quoted tag must have 4 characters")
		}
		t := TagFromString(p.s[p.pos : p.pos+4])
		p.pos += 5
		return t, nil
	}
	start := p.pos
	for p.pos < len(p.s) && isTagChar(p.s[p.pos]) {
		p.pos++
	}
	switch n := p.pos - start; {
	case n == 0:
		return TagNone, p.errorf("missing tag")
	case n > 4:
		return TagNone, p.errorf("tag longer than 4 characters")
	}
	return TagFromString(p.s[start:p.pos]), nil
}

func (p *featureParser) uint() (uint32, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("number expected at position %d", start)
	}
	v, err := strconv.ParseUint(p.s[start:p.pos], 10, 32)
	if err != nil {
		return 0, p.errorf("number out of range")
	}
	return uint32(v), nil
}

// indices parses [start:end], [start:], [:end], [:] and [index].
func (p *featureParser) indices() (start, end uint32, err error) {
	p.pos++ // '['
	start, end = FeatureGlobalStart, FeatureGlobalEnd
	hadStart := false
	if c := p.peek(); c >= '0' && c <= '9' {
		if start, err = p.uint(); err != nil {
			return
		}
		hadStart = true
	}
	if p.peek() == ':' {
		p.pos++
		if c := p.peek(); c >= '0' && c <= '9' {
			if end, err = p.uint(); err != nil {
				return
			}
		}
	} else if hadStart {
		end = start + 1
	} else {
		return 0, 0, p.errorf("empty feature range")
	}
	if p.peek() != ']' {
		return 0, 0, p.errorf("unterminated feature range")
	}
	p.pos++
	return start, end, nil
}
