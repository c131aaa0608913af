package harfbuzz

import "sync"

// GeneralCategory is the Unicode general category of a code point, in the
// order HarfBuzz enumerates them.
type GeneralCategory uint8

const (
	Control             GeneralCategory = iota // Cc
	Format                                     // Cf
	Unassigned                                 // Cn
	PrivateUse                                 // Co
	Surrogate                                  // Cs
	LowercaseLetter                            // Ll
	ModifierLetter                             // Lm
	OtherLetter                                // Lo
	TitlecaseLetter                            // Lt
	UppercaseLetter                            // Lu
	SpacingMark                                // Mc
	EnclosingMark                              // Me
	NonSpacingMark                             // Mn
	DecimalNumber                              // Nd
	LetterNumber                               // Nl
	OtherNumber                                // No
	ConnectPunctuation                         // Pc
	DashPunctuation                            // Pd
	ClosePunctuation                           // Pe
	FinalPunctuation                           // Pf
	InitialPunctuation                         // Pi
	OtherPunctuation                           // Po
	OpenPunctuation                            // Ps
	CurrencySymbol                             // Sc
	ModifierSymbol                             // Sk
	MathSymbol                                 // Sm
	OtherSymbol                                // So
	LineSeparator                              // Zl
	ParagraphSeparator                         // Zp
	SpaceSeparator                             // Zs
)

var generalCategoryNames = [...]string{
	"Cc", "Cf", "Cn", "Co", "Cs", "Ll", "Lm", "Lo", "Lt", "Lu",
	"Mc", "Me", "Mn", "Nd", "Nl", "No", "Pc", "Pd", "Pe", "Pf",
	"Pi", "Po", "Ps", "Sc", "Sk", "Sm", "So", "Zl", "Zp", "Zs",
}

// String returns the two-letter Unicode abbreviation of the category.
func (gc GeneralCategory) String() string {
	if int(gc) < len(generalCategoryNames) {
		return generalCategoryNames[gc]
	}
	return "Cn"
}

// IsMark is true for the three mark categories.
func (gc GeneralCategory) IsMark() bool {
	return gc == SpacingMark || gc == EnclosingMark || gc == NonSpacingMark
}

// CombiningClass is the canonical combining class of a code point. Values
// without a name below are valid but have no special meaning.
type CombiningClass uint8

const (
	CombiningNotReordered       CombiningClass = 0
	CombiningOverlay            CombiningClass = 1
	CombiningNukta              CombiningClass = 7
	CombiningKanaVoicing        CombiningClass = 8
	CombiningVirama             CombiningClass = 9
	CombiningAttachedBelowLeft  CombiningClass = 200
	CombiningAttachedBelow      CombiningClass = 202
	CombiningAttachedAbove      CombiningClass = 214
	CombiningAttachedAboveRight CombiningClass = 216
	CombiningBelowLeft          CombiningClass = 218
	CombiningBelow              CombiningClass = 220
	CombiningBelowRight         CombiningClass = 222
	CombiningLeft               CombiningClass = 224
	CombiningRight              CombiningClass = 226
	CombiningAboveLeft          CombiningClass = 228
	CombiningAbove              CombiningClass = 230
	CombiningAboveRight         CombiningClass = 232
	CombiningDoubleBelow        CombiningClass = 233
	CombiningDoubleAbove        CombiningClass = 234
	CombiningIotaSubscript      CombiningClass = 240
	CombiningInvalid            CombiningClass = 255
)

// Named reports whether c is one of the named combining classes. Classes
// 10 to 199 are the fixed-position classes of individual scripts.
func (c CombiningClass) Named() bool {
	switch c {
	case CombiningNotReordered, CombiningOverlay, CombiningNukta, CombiningKanaVoicing,
		CombiningVirama, CombiningAttachedBelowLeft, CombiningAttachedBelow,
		CombiningAttachedAbove, CombiningAttachedAboveRight, CombiningBelowLeft,
		CombiningBelow, CombiningBelowRight, CombiningLeft, CombiningRight,
		CombiningAboveLeft, CombiningAbove, CombiningAboveRight, CombiningDoubleBelow,
		CombiningDoubleAbove, CombiningIotaSubscript, CombiningInvalid:
		return true
	}
	return false
}

// UnicodeFuncs is a table of Unicode character property functions. Nil
// entries delegate to the parent table. At the end of the chain neutral
// defaults are used: class 0, width 1, category Unassigned, no mirroring,
// script Unknown and no (de)composition.
//
// A table must not be changed once it is in use by a buffer.
type UnicodeFuncs struct {
	UserData
	CombiningClass  func(u rune) CombiningClass
	EastAsianWidth  func(u rune) int
	GeneralCategory func(u rune) GeneralCategory
	Mirroring       func(u rune) rune
	Script          func(u rune) Script
	// Compose returns the canonical composition of a and b.
	Compose func(a, b rune) (rune, bool)
	// Decompose returns the one-step canonical decomposition of ab; b is 0
	// for singleton decompositions.
	Decompose func(ab rune) (a, b rune, ok bool)
	// DecomposeCompatibility returns the full compatibility decomposition
	// of u, or nil.
	DecomposeCompatibility func(u rune) []rune

	parent    *UnicodeFuncs
	immutable bool
}

// NewUnicodeFuncs creates an empty function table delegating to parent. A
// nil parent stands for the neutral defaults.
func NewUnicodeFuncs(parent *UnicodeFuncs) *UnicodeFuncs {
	return &UnicodeFuncs{parent: parent}
}

// Parent returns the table ufuncs delegates to, or nil.
func (ufuncs *UnicodeFuncs) Parent() *UnicodeFuncs {
	return ufuncs.parent
}

// MakeImmutable marks the table as final. Clients must not modify
// immutable tables.
func (ufuncs *UnicodeFuncs) MakeImmutable() {
	ufuncs.immutable = true
}

// IsImmutable reports whether MakeImmutable has been called.
func (ufuncs *UnicodeFuncs) IsImmutable() bool {
	return ufuncs.immutable
}

func (ufuncs *UnicodeFuncs) combiningClass(u rune) CombiningClass {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.CombiningClass != nil {
			return uf.CombiningClass(u)
		}
	}
	return CombiningNotReordered
}

func (ufuncs *UnicodeFuncs) eastAsianWidth(u rune) int {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.EastAsianWidth != nil {
			return uf.EastAsianWidth(u)
		}
	}
	return 1
}

func (ufuncs *UnicodeFuncs) generalCategory(u rune) GeneralCategory {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.GeneralCategory != nil {
			return uf.GeneralCategory(u)
		}
	}
	return Unassigned
}

func (ufuncs *UnicodeFuncs) mirroring(u rune) rune {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.Mirroring != nil {
			return uf.Mirroring(u)
		}
	}
	return u
}

func (ufuncs *UnicodeFuncs) script(u rune) Script {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.Script != nil {
			return uf.Script(u)
		}
	}
	return ScriptUnknown
}

func (ufuncs *UnicodeFuncs) compose(a, b rune) (rune, bool) {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.Compose != nil {
			return uf.Compose(a, b)
		}
	}
	return 0, false
}

func (ufuncs *UnicodeFuncs) decompose(ab rune) (rune, rune, bool) {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.Decompose != nil {
			return uf.Decompose(ab)
		}
	}
	return ab, 0, false
}

func (ufuncs *UnicodeFuncs) decomposeCompatibility(u rune) []rune {
	for uf := ufuncs; uf != nil; uf = uf.parent {
		if uf.DecomposeCompatibility != nil {
			return uf.DecomposeCompatibility(u)
		}
	}
	return nil
}

// Exported queries resolve the delegation chain. A nil table answers with
// the neutral defaults.

// CombiningClassOf returns the canonical combining class of u.
func (ufuncs *UnicodeFuncs) CombiningClassOf(u rune) CombiningClass { return ufuncs.combiningClass(u) }

// EastAsianWidthOf returns 2 for wide and fullwidth code points, 1 otherwise.
func (ufuncs *UnicodeFuncs) EastAsianWidthOf(u rune) int { return ufuncs.eastAsianWidth(u) }

// GeneralCategoryOf returns the general category of u.
func (ufuncs *UnicodeFuncs) GeneralCategoryOf(u rune) GeneralCategory {
	return ufuncs.generalCategory(u)
}

// MirroringOf returns the mirror image of u, or u itself.
func (ufuncs *UnicodeFuncs) MirroringOf(u rune) rune { return ufuncs.mirroring(u) }

// ScriptOf returns the script of u.
func (ufuncs *UnicodeFuncs) ScriptOf(u rune) Script { return ufuncs.script(u) }

// ComposePair returns the canonical composition of a and b.
func (ufuncs *UnicodeFuncs) ComposePair(a, b rune) (rune, bool) { return ufuncs.compose(a, b) }

// DecomposeOne returns the one-step canonical decomposition of ab.
func (ufuncs *UnicodeFuncs) DecomposeOne(ab rune) (rune, rune, bool) { return ufuncs.decompose(ab) }

// DecomposeCompatibilityOf returns the compatibility decomposition of u.
func (ufuncs *UnicodeFuncs) DecomposeCompatibilityOf(u rune) []rune {
	return ufuncs.decomposeCompatibility(u)
}

var (
	defaultUnicodeOnce  sync.Once
	defaultUnicodeFuncs *UnicodeFuncs
)

// DefaultUnicodeFuncs returns the process-wide immutable table backed by
// the Unicode tables of golang.org/x/text, go-text/typesetting and the
// standard library.
func DefaultUnicodeFuncs() *UnicodeFuncs {
	defaultUnicodeOnce.Do(func() {
		defaultUnicodeFuncs = newDefaultUnicodeFuncs()
		defaultUnicodeFuncs.MakeImmutable()
	})
	return defaultUnicodeFuncs
}
