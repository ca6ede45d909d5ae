package voice

import (
	"regexp"
	"strings"
)

var (
	replyTabPattern      = regexp.MustCompile(`(?i)switching to (?:the )?(\w+) tab`)
	replyNavigatePattern = regexp.MustCompile(`(?i)navigating to ([^.!?,;\n]+)`)
)

// ParseReply extracts a navigation intent from assistant reply text.
//
// "switching to [the] <word> tab" yields a tab intent. "navigating to <target>"
// yields a path intent: a target starting with "/" is used as is, a target
// containing a destination keyword maps to its path, and anything else
// becomes "/" + its first word. Tab phrases win when both appear.
func ParseReply(text string) (Intent, bool) {
	if m := replyTabPattern.FindStringSubmatch(text); m != nil {
		return Intent{Kind: KindTab, Target: strings.ToLower(m[1])}, true
	}

	m := replyNavigatePattern.FindStringSubmatch(text)
	if m == nil {
		return Intent{}, false
	}
	fields := strings.Fields(m[1])
	if len(fields) == 0 {
		return Intent{}, false
	}
	if strings.HasPrefix(fields[0], "/") {
		return Intent{Kind: KindPath, Target: fields[0]}, true
	}
	if path, ok := Destination(m[1]); ok {
		return Intent{Kind: KindPath, Target: path}, true
	}
	word := strings.ToLower(strings.Trim(fields[0], `"'`))
	if word == "" {
		return Intent{}, false
	}
	return Intent{Kind: KindPath, Target: "/" + word}, true
}
