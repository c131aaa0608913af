package harfbuzz

import (
	"hash/fnv"
	"strings"
)

// Direction is the text direction of a run.
type Direction uint8

// Valid directions start at 4, so that the lowest bit tells backward from
// forward and bit 1 tells vertical from horizontal.
const (
	DirectionInvalid Direction = 0
	LeftToRight      Direction = 4 + iota - 1
	RightToLeft
	TopToBottom
	BottomToTop
)

// DirectionFromString parses a direction from a string. Only the first
// letter is significant and matched case-insensitively: 'l', 'r', 't' and 'b'
// yield LeftToRight, RightToLeft, TopToBottom and BottomToTop. Anything else
// yields DirectionInvalid.
func DirectionFromString(s string) Direction {
	if s == "" {
		return DirectionInvalid
	}
	switch s[0] | 0x20 {
	case 'l':
		return LeftToRight
	case 'r':
		return RightToLeft
	case 't':
		return TopToBottom
	case 'b':
		return BottomToTop
	}
	return DirectionInvalid
}

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return "invalid"
}

// IsValid reports whether d is one of the four concrete directions.
func (d Direction) IsValid() bool { return d&^3 == 4 }

// IsHorizontal is true for LeftToRight and RightToLeft.
func (d Direction) IsHorizontal() bool { return d&^1 == 4 }

// IsVertical is true for TopToBottom and BottomToTop.
func (d Direction) IsVertical() bool { return d&^1 == 6 }

// IsForward is true for LeftToRight and TopToBottom.
func (d Direction) IsForward() bool { return d&^2 == 4 }

// IsBackward is true for RightToLeft and BottomToTop.
func (d Direction) IsBackward() bool { return d&^2 == 5 }

// Reverse returns the opposite direction. DirectionInvalid reverses to
// itself.
func (d Direction) Reverse() Direction {
	if !d.IsValid() {
		return DirectionInvalid
	}
	return d ^ 1
}

// SegmentProperties describe a homogeneous run of text.
// The zero value has invalid direction, script and language.
type SegmentProperties struct {
	Direction Direction
	Script    Script
	Language  Language
}

// Equal compares two property sets by value. Languages compare by handle.
func (p SegmentProperties) Equal(q SegmentProperties) bool {
	return p.Direction == q.Direction && p.Script == q.Script && p.Language == q.Language
}

// Hash returns a hash value consistent with Equal.
func (p SegmentProperties) Hash() uint32 {
	h := fnv.New32a()
	b := Tag(p.Script).Bytes()
	h.Write([]byte{byte(p.Direction), b[0], b[1], b[2], b[3]})
	h.Write([]byte(p.Language.String()))
	return h.Sum32()
}

func (p SegmentProperties) String() string {
	var sb strings.Builder
	sb.WriteString(p.Direction.String())
	sb.WriteByte('/')
	sb.WriteString(p.Script.String())
	sb.WriteByte('/')
	sb.WriteString(p.Language.String())
	return sb.String()
}
