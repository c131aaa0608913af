package harfbuzz

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Language is an interned language handle. Two Languages are equal if and
// only if they were created from strings with the same canonical form.
// The nil handle is LanguageInvalid.
type Language = *languageItem

type languageItem struct {
	tag string
}

// LanguageInvalid is the empty language handle.
var LanguageInvalid Language = nil

// The interning table lives for the lifetime of the process.
var languages = struct {
	sync.Mutex
	items map[string]Language
}{items: make(map[string]Language)}

// LanguageFromString returns the interned language for a BCP 47 or POSIX
// style language string. Case is ignored and '_' is treated as '-'. Parsing
// stops at the first character which cannot appear in a language tag,
// which strips encoding suffixes like ".UTF-8". The empty string yields
// LanguageInvalid.
func LanguageFromString(s string) Language {
	canon := canonLanguage(s)
	if canon == "" {
		return LanguageInvalid
	}
	languages.Lock()
	defer languages.Unlock()
	if l, ok := languages.items[canon]; ok {
		return l
	}
	l := &languageItem{tag: canon}
	languages.items[canon] = l
	return l
}

func canonLanguage(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c == '_':
			c = '-'
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
		default:
			return strings.TrimRight(sb.String(), "-")
		}
		sb.WriteByte(c)
	}
	return strings.TrimRight(sb.String(), "-")
}

func (l *languageItem) String() string {
	if l == nil {
		return ""
	}
	return l.tag
}

// Tag converts the language to a BCP 47 tag. LanguageInvalid and strings
// not valid in BCP 47 yield language.Und.
func (l *languageItem) Tag() language.Tag {
	if l == nil {
		return language.Und
	}
	t, err := language.Parse(l.tag)
	if err != nil {
		return language.Und
	}
	return t
}

var defaultLanguage struct {
	once sync.Once
	lang Language
}

// DefaultLanguage returns the process default language. It is resolved on
// first use from the environment variables LC_ALL, LC_CTYPE and LANG, in this
// order, and never changes afterwards. The C and POSIX locales, as well as
// an empty environment, resolve to "en".
func DefaultLanguage() Language {
	defaultLanguage.once.Do(func() {
		defaultLanguage.lang = languageFromEnv(os.Getenv)
	})
	return defaultLanguage.lang
}

func languageFromEnv(getenv func(string) string) Language {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		if v == "C" || v == "POSIX" || strings.HasPrefix(v, "C.") {
			break
		}
		if l := LanguageFromString(v); l != LanguageInvalid {
			return l
		}
	}
	return LanguageFromString("en")
}
