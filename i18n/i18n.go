// Package i18n provides the localized messages voicenav speaks and prints.
//
// It wraps the gotext library. Catalogs are embedded in the binary via
// //go:embed under locales/{lang}/LC_MESSAGES/voicenav.po. Spoken messages
// are looked up per language with Get and Getf, since the assistant answers in the
// user's selected UI language rather than the process locale; T and N
// translate CLI output for the locale detected at startup by Init.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "voicenav"

// Message IDs shared with the voice interpreter and speech adapter.
const (
	MsgLanguageChanged    = "Language changed to %s"
	MsgSwitchingTab       = "Switching to %s tab"
	MsgNavigating         = "Navigating to %s"
	MsgFallbackStudent    = "I couldn't reach the assistant. You can say: go to dashboard, open my courses, open profile, go to home, or switch to the progress, assignments or certificates tab."
	MsgFallbackEducator   = "I couldn't reach the assistant. You can say: go to dashboard, open my courses, open profile, go to home, or switch to the students, materials or analytics tab."
	MsgRecognitionMissing = "Speech recognition is not supported on this device."
	MsgSynthesisMissing   = "Speech synthesis is not supported on this device."
	MsgNoSpeech           = "I didn't catch that. Please try again."
	MsgRecognitionFailed  = "Voice input failed. Please try again."
	MsgAlreadyListening   = "Already listening."
)

// po is the gotext locale used by T and N.
var po *gotext.Locale

var (
	mu     sync.Mutex
	byLang = map[string]*gotext.Locale{}
)

// Init initializes CLI translations. If lang is empty, it auto-detects
// from LANGUAGE, LC_ALL, LC_MESSAGES, LANG (in that order, matching GNU
// gettext behavior).
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	po = load(lang)
}

func load(lang string) *gotext.Locale {
	l := gotext.NewLocaleFSWithPath(lang, locales, "locales")
	l.AddDomain(domain)
	l.SetDomain(domain)
	return l
}

// T translates a CLI string. Without a translation the original string is
// returned unchanged.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return lookup(po, msgid)
}

// N translates a CLI string with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// Get translates msgid into lang. The result is never formatted, so msgid
// may contain a literal '%'. English, and languages without a catalog,
// return msgid itself.
func Get(lang, msgid string) string {
	if lang == "" || lang == "en" {
		return msgid
	}
	return lookup(locale(lang), msgid)
}

// Getf translates format into lang and formats it with vars.
func Getf(lang, format string, vars ...any) string {
	if lang == "" || lang == "en" {
		return fmt.Sprintf(format, vars...)
	}
	return locale(lang).Get(format, vars...)
}

func locale(lang string) *gotext.Locale {
	mu.Lock()
	defer mu.Unlock()
	l, ok := byLang[lang]
	if !ok {
		l = load(lang)
		byLang[lang] = l
	}
	return l
}

// lookup returns the catalog entry for msgid verbatim.
func lookup(l *gotext.Locale, msgid string) string {
	if tr, ok := l.GetTranslations()[msgid]; ok && tr.IsTranslated() {
		return tr.Get()
	}
	return msgid
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "hi_IN.UTF-8" -> "hi_IN")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
