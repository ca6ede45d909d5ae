package voice

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/dashboard"
	"github.com/learnhub/voicenav/i18n"
	"github.com/learnhub/voicenav/langmeta"
	"github.com/learnhub/voicenav/responder"
	"github.com/learnhub/voicenav/translate"
)

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Responder answers utterances the rules do not understand.
type Responder interface {
	Ask(ctx context.Context, q responder.Query) (responder.Reply, error)
}

// Config wires an Interpreter. Navigator, Dashboards and Selector are
// required; Responder may be nil.
type Config struct {
	// Rules defaults to DefaultRules().
	Rules      []Rule
	Navigator  Navigator
	Dashboards *dashboard.Registry
	Selector   *translate.Selector
	Responder  Responder
	Logger     *zap.Logger
}

// Interpreter classifies utterances and carries out their intents.
type Interpreter struct {
	rules     []Rule
	nav       Navigator
	dashboard *dashboard.Registry
	selector  *translate.Selector
	responder Responder
	log       *zap.Logger
}

// NewInterpreter returns an Interpreter for cfg.
func NewInterpreter(cfg Config) *Interpreter {
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		rules:     rules,
		nav:       cfg.Navigator,
		dashboard: cfg.Dashboards,
		selector:  cfg.Selector,
		responder: cfg.Responder,
		log:       log,
	}
}

// Handle interprets one utterance and applies its intent. Unrecognized
// utterances go to the responder; when that fails a fallback listing the
// available commands is returned as the Ack. The only error Handle returns
// is a context error.
func (in *Interpreter) Handle(ctx context.Context, input Input) (Intent, error) {
	input.Transcript = strings.TrimSpace(input.Transcript)
	if input.Transcript == "" {
		return Intent{Kind: KindUnhandled}, nil
	}
	if input.Language == "" {
		input.Language = in.selector.Code()
	}

	intent := Classify(in.rules, input)
	in.log.Debug("classified utterance",
		zap.String("transcript", input.Transcript),
		zap.Stringer("kind", intent.Kind),
		zap.String("rule", intent.Rule),
		zap.String("target", intent.Target))

	switch intent.Kind {
	case KindTab:
		in.switchTab(input.Role, intent.Target)
		intent.Ack = i18n.Getf(input.Language, i18n.MsgSwitchingTab, intent.Target)
	case KindPath:
		in.nav.Navigate(intent.Target)
		intent.Ack = i18n.Getf(input.Language, i18n.MsgNavigating, intent.Target)
	case KindLanguage:
		intent.Ack = in.changeLanguage(intent.Target)
	default:
		return in.ask(ctx, input)
	}
	return intent, nil
}

// switchTab activates tab on the mounted dashboard, or leaves it pending
// for the next mount when that is not possible.
func (in *Interpreter) switchTab(role, tab string) {
	name := in.dashboard.Mounted()
	if name == "" {
		name = role
	}
	if allowed, ok := in.dashboard.Lookup(name, tab); ok {
		if in.dashboard.Activate(allowed) {
			return
		}
		tab = allowed
	}
	in.log.Debug("tab switch deferred", zap.String("dashboard", name), zap.String("tab", tab))
	in.dashboard.SetPending(tab)
}

// changeLanguage selects code and returns the confirmation in the new
// language.
func (in *Interpreter) changeLanguage(code string) string {
	if err := in.selector.Set(code); err != nil {
		in.log.Warn("language change rejected", zap.String("code", code), zap.Error(err))
		return ""
	}
	lang := in.selector.Current()
	return i18n.Getf(lang.Code, i18n.MsgLanguageChanged, lang.Native)
}

func (in *Interpreter) ask(ctx context.Context, input Input) (Intent, error) {
	if in.responder == nil {
		return Intent{Kind: KindUnhandled, Ack: fallback(input)}, nil
	}

	reply, err := in.responder.Ask(ctx, responder.Query{
		Text:        input.Transcript,
		Role:        input.Role,
		CurrentPath: input.CurrentPath,
		Language:    input.Language,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Intent{Kind: KindUnhandled}, ctxErr
		}
		in.log.Warn("responder unavailable, using fallback", zap.Error(err))
		return Intent{Kind: KindUnhandled, Ack: fallback(input)}, nil
	}

	intent := Intent{Kind: KindUnhandled}
	if reply.LanguageToSet != "" {
		if code, ok := langmeta.Normalize(reply.LanguageToSet); ok {
			if err := in.selector.Set(code); err == nil {
				intent = Intent{Kind: KindLanguage, Target: code}
			}
		} else {
			in.log.Debug("ignoring unsupported languageToSet", zap.String("code", reply.LanguageToSet))
		}
	}

	if parsed, ok := ParseReply(reply.Response); ok {
		switch parsed.Kind {
		case KindTab:
			in.switchTab(input.Role, parsed.Target)
		case KindPath:
			in.nav.Navigate(parsed.Target)
		}
		intent = parsed
	}
	intent.Ack = reply.Response
	intent.Rule = "responder"
	return intent, nil
}

// fallback lists what the user can say, by role, in the active language.
func fallback(input Input) string {
	msgid := i18n.MsgFallbackStudent
	if input.Role == dashboard.Educator {
		msgid = i18n.MsgFallbackEducator
	}
	return i18n.Get(input.Language, msgid)
}
