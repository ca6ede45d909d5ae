// Package voice turns spoken transcripts into navigation intents: a tab
// switch on the dashboard, a page navigation, or a language change.
package voice

import (
	"regexp"
	"strings"

	"github.com/learnhub/voicenav/langmeta"
)

// Kind classifies an Intent.
type Kind int

const (
	KindUnhandled Kind = iota
	KindTab
	KindPath
	KindLanguage
)

func (k Kind) String() string {
	switch k {
	case KindTab:
		return "tab"
	case KindPath:
		return "path"
	case KindLanguage:
		return "language"
	default:
		return "unhandled"
	}
}

// Input is one utterance and the context it was spoken in.
type Input struct {
	Transcript  string
	CurrentPath string
	Language    string
	Role        string
}

// Intent is the outcome of interpreting one utterance. Target is a tab name,
// a path or a language code depending on Kind. Ack is the text spoken back.
type Intent struct {
	Kind   Kind
	Target string
	Ack    string
	// Rule names the classifier that produced the intent ("responder" for
	// remote replies, "" when nothing matched).
	Rule string
}

// Rule is one named classifier. Match reports whether it claims the input.
type Rule struct {
	Name  string
	Match func(Input) (Intent, bool)
}

var (
	tabPattern       = regexp.MustCompile(`(?i)(switch|go|open) to (\w+) tab`)
	navigatePattern  = regexp.MustCompile(`(?i)(navigate to|go to|open)`)
	translatePattern = regexp.MustCompile(`(?i)translate to ([\p{L}\p{M}]+)`)
)

// hindiPhrases request a switch to Hindi.
var hindiPhrases = []string{
	"हिंदी में अनुवाद करें",
	"हिंदी में बदलें",
}

// destinations maps spoken keywords to paths, checked in order.
var destinations = []struct {
	keyword string
	path    string
}{
	{"dashboard", "/dashboard"},
	{"my courses", "/courses"},
	{"courses", "/courses"},
	{"profile", "/profile"},
	{"home", "/"},
}

// Destination returns the path for the first keyword contained in phrase.
func Destination(phrase string) (string, bool) {
	lower := strings.ToLower(phrase)
	for _, d := range destinations {
		if strings.Contains(lower, d.keyword) {
			return d.path, true
		}
	}
	return "", false
}

// DefaultRules returns the classifiers in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "dashboard-tab", Match: matchDashboardTab},
		{Name: "navigate", Match: matchNavigate},
		{Name: "translate-to", Match: matchTranslateTo},
		{Name: "translate-hindi", Match: matchTranslateHindi},
	}
}

// Classify returns the intent of the first rule that matches, or an
// unhandled intent.
func Classify(rules []Rule, in Input) Intent {
	for _, r := range rules {
		if intent, ok := r.Match(in); ok {
			intent.Rule = r.Name
			return intent
		}
	}
	return Intent{Kind: KindUnhandled}
}

func matchDashboardTab(in Input) (Intent, bool) {
	if !strings.Contains(in.CurrentPath, "dashboard") {
		return Intent{}, false
	}
	m := tabPattern.FindStringSubmatch(in.Transcript)
	if m == nil {
		return Intent{}, false
	}
	return Intent{Kind: KindTab, Target: strings.ToLower(m[2])}, true
}

func matchNavigate(in Input) (Intent, bool) {
	if !navigatePattern.MatchString(in.Transcript) {
		return Intent{}, false
	}
	path, ok := Destination(in.Transcript)
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: KindPath, Target: path}, true
}

func matchTranslateTo(in Input) (Intent, bool) {
	m := translatePattern.FindStringSubmatch(in.Transcript)
	if m == nil {
		return Intent{}, false
	}
	code, ok := langmeta.CodeForName(m[1])
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: KindLanguage, Target: code}, true
}

func matchTranslateHindi(in Input) (Intent, bool) {
	for _, phrase := range hindiPhrases {
		if strings.Contains(in.Transcript, phrase) {
			return Intent{Kind: KindLanguage, Target: "hi"}, true
		}
	}
	return Intent{}, false
}
