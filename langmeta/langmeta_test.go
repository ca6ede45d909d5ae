package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "hi", want: "hi", wantOK: true},
		{in: "hi_IN", want: "hi", wantOK: true},
		{in: " EN-us ", want: "en", wantOK: true},
		{in: "pt-BR", want: "pt", wantOK: true},
		{in: "sv", want: "", wantOK: false},
		{in: "", want: "", wantOK: false},
		{in: "not a tag", want: "", wantOK: false},
	}

	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		got := Resolve("ta")
		if got.Name != "Tamil" || got.Flag == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("base fallback", func(t *testing.T) {
		got := Resolve("fr-CA")
		if got.Code != "fr" || got.Name != "French" {
			t.Fatalf("unexpected fallback result: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("zz-ZZ")
		if got.Name != "zz-ZZ" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}

func TestSupportedIsACopy(t *testing.T) {
	langs := Supported()
	if len(langs) < 20 {
		t.Fatalf("Supported() returned %d languages, want at least 20", len(langs))
	}
	if langs[0].Code != Default {
		t.Fatalf("first language = %q, want %q", langs[0].Code, Default)
	}
	langs[0].Code = "xx"
	if !IsSupported(Default) || Supported()[0].Code != Default {
		t.Fatalf("mutating Supported() result leaked into the registry")
	}
}

func TestCodeForName(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "Hindi", want: "hi", wantOK: true},
		{in: "TAMIL", want: "ta", wantOK: true},
		{in: " spanish ", want: "es", wantOK: true},
		{in: "हिन्दी", want: "hi", wantOK: true},
		{in: "हिंदी", want: "hi", wantOK: true},
		{in: "Oriya", want: "or", wantOK: true},
		{in: "klingon", want: "", wantOK: false},
	}

	for _, tc := range cases {
		got, ok := CodeForName(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("CodeForName(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSpeechLocale(t *testing.T) {
	want := map[string]string{
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
	if len(speechLocales) != len(want) {
		t.Fatalf("speech locale table has %d entries, want %d", len(speechLocales), len(want))
	}
	for code, locale := range want {
		if got := SpeechLocale(code); got != locale {
			t.Fatalf("SpeechLocale(%q) = %q, want %q", code, got, locale)
		}
	}

	for _, code := range []string{"fr", "ur", "", "zz"} {
		if got := SpeechLocale(code); got != DefaultSpeechLocale {
			t.Fatalf("SpeechLocale(%q) = %q, want %q", code, got, DefaultSpeechLocale)
		}
	}
}
