// Package langmeta provides the registry of languages supported by the UI
// (English and native names, emoji flags), the spoken-name lookup used by
// voice commands, and the speech locale table.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is the source language of every UI string.
const Default = "en"

// DefaultSpeechLocale is used for recognition and synthesis when a language
// has no dedicated locale.
const DefaultSpeechLocale = "en-US"

// Language describes one supported UI language.
type Language struct {
	Code   string
	Name   string
	Native string
	Flag   string
}

// registry lists the supported languages in display order.
var registry = []Language{
	{Code: "en", Name: "English", Native: "English", Flag: "🇺🇸"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी", Flag: "🇮🇳"},
	{Code: "bn", Name: "Bengali", Native: "বাংলা", Flag: "🇮🇳"},
	{Code: "te", Name: "Telugu", Native: "తెలుగు", Flag: "🇮🇳"},
	{Code: "ta", Name: "Tamil", Native: "தமிழ்", Flag: "🇮🇳"},
	{Code: "mr", Name: "Marathi", Native: "मराठी", Flag: "🇮🇳"},
	{Code: "gu", Name: "Gujarati", Native: "ગુજરાતી", Flag: "🇮🇳"},
	{Code: "kn", Name: "Kannada", Native: "ಕನ್ನಡ", Flag: "🇮🇳"},
	{Code: "ml", Name: "Malayalam", Native: "മലയാളം", Flag: "🇮🇳"},
	{Code: "pa", Name: "Punjabi", Native: "ਪੰਜਾਬੀ", Flag: "🇮🇳"},
	{Code: "ur", Name: "Urdu", Native: "اردو", Flag: "🇵🇰"},
	{Code: "or", Name: "Odia", Native: "ଓଡ଼ିଆ", Flag: "🇮🇳"},
	{Code: "as", Name: "Assamese", Native: "অসমীয়া", Flag: "🇮🇳"},
	{Code: "es", Name: "Spanish", Native: "Español", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", Native: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", Native: "Deutsch", Flag: "🇩🇪"},
	{Code: "zh", Name: "Chinese", Native: "中文", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", Native: "日本語", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", Native: "한국어", Flag: "🇰🇷"},
	{Code: "ar", Name: "Arabic", Native: "العربية", Flag: "🇸🇦"},
	{Code: "ru", Name: "Russian", Native: "Русский", Flag: "🇷🇺"},
	{Code: "pt", Name: "Portuguese", Native: "Português", Flag: "🇵🇹"},
}

// speechLocales maps language codes to recognizer/synthesizer locale tags.
var speechLocales = map[string]string{
	"en": "en-US",
	"hi": "hi-IN",
	"bn": "bn-IN",
	"te": "te-IN",
	"ta": "ta-IN",
	"mr": "mr-IN",
	"gu": "gu-IN",
	"kn": "kn-IN",
	"ml": "ml-IN",
	"pa": "pa-IN",
}

// nameAliases are alternate spellings of native names in common use.
var nameAliases = map[string]string{
	"हिंदी": "hi",
	"bangla": "bn",
	"oriya": "or",
	"castellano": "es",
}

var (
	byCode = make(map[string]Language, len(registry))
	byName = make(map[string]string, 2*len(registry))
)

func init() {
	for _, l := range registry {
		byCode[l.Code] = l
		byName[strings.ToLower(l.Name)] = l.Code
		byName[strings.ToLower(l.Native)] = l.Code
	}
	for alias, code := range nameAliases {
		byName[alias] = code
	}
}

// Supported returns the supported languages in display order.
func Supported() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// IsSupported reports whether code is an exact registry member.
func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Lookup returns the registry entry for an exact code.
func Lookup(code string) (Language, bool) {
	l, ok := byCode[code]
	return l, ok
}

// canonicalize normalizes separators and casing ("pt_br" -> "pt-BR").
func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return ""
	}
	return tag.String()
}

// Normalize maps a language code or locale ("hi_IN", " EN-us ") onto a
// registry code. The bool is false when no supported language matches.
func Normalize(lang string) (string, bool) {
	if IsSupported(lang) {
		return lang, true
	}
	canonical := canonicalize(lang)
	if canonical == "" {
		return "", false
	}
	if IsSupported(canonical) {
		return canonical, true
	}
	tag, err := language.Parse(canonical)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if IsSupported(base.String()) {
		return base.String(), true
	}
	return "", false
}

// Resolve returns best-effort metadata for a code, falling back to a bare
// entry named after the input for unknown languages.
func Resolve(lang string) Language {
	if code, ok := Normalize(lang); ok {
		return byCode[code]
	}
	return Language{Code: lang, Name: lang}
}

// CodeForName resolves a spoken language name ("Hindi", "हिन्दी") to its
// code, case-insensitively.
func CodeForName(name string) (string, bool) {
	code, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// SpeechLocale returns the recognizer/synthesizer locale for a language code.
func SpeechLocale(code string) string {
	if locale, ok := speechLocales[code]; ok {
		return locale
	}
	return DefaultSpeechLocale
}
