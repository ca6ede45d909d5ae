package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "hi_IN.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "hi_IN" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "hi_IN")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "es_ES.UTF-8")

		if got := detectLanguage(); got != "es_ES" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "es_ES")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}
	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}
	if got := N("file", "files", 2); got != "files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "files")
	}
}

func TestGetf(t *testing.T) {
	cases := []struct {
		name string
		lang string
		want string
	}{
		{name: "english formats msgid", lang: "en", want: "Language changed to English"},
		{name: "empty language formats msgid", lang: "", want: "Language changed to English"},
		{name: "hindi catalog", lang: "hi", want: "भाषा English में बदल दी गई"},
		{name: "spanish catalog", lang: "es", want: "Idioma cambiado a English"},
		{name: "no catalog falls back", lang: "ta", want: "Language changed to English"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Getf(tc.lang, MsgLanguageChanged, "English"); got != tc.want {
				t.Fatalf("Getf(%q) = %q, want %q", tc.lang, got, tc.want)
			}
		})
	}
}

func TestGetReturnsCatalogTextVerbatim(t *testing.T) {
	cases := []struct {
		lang, msgid, want string
	}{
		{lang: "hi", msgid: MsgNoSpeech, want: "मैं समझ नहीं पाया। कृपया फिर से कोशिश करें।"},
		{lang: "es", msgid: MsgRecognitionFailed, want: "La entrada de voz falló. Inténtalo de nuevo."},
		{lang: "en", msgid: MsgNoSpeech, want: MsgNoSpeech},
		{lang: "ta", msgid: MsgFallbackStudent, want: MsgFallbackStudent},
		{lang: "hi", msgid: "Not in any catalog", want: "Not in any catalog"},
		{lang: "hi", msgid: MsgSwitchingTab, want: "%s टैब पर जा रहे हैं"},
	}

	for _, tc := range cases {
		if got := Get(tc.lang, tc.msgid); got != tc.want {
			t.Fatalf("Get(%q, %q) = %q, want %q", tc.lang, tc.msgid, got, tc.want)
		}
	}
}

func TestInitLoadsCatalog(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("es")
	if got := N("Found %d language", "Found %d languages", 3); got != "Se encontraron %d idiomas" {
		t.Fatalf("N() = %q", got)
	}
}
