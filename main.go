// voicenav: voice navigation and UI translation for the learning platform.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/learnhub/voicenav/assistant"
	"github.com/learnhub/voicenav/cache"
	"github.com/learnhub/voicenav/cache/sqlite"
	"github.com/learnhub/voicenav/config"
	"github.com/learnhub/voicenav/dashboard"
	"github.com/learnhub/voicenav/i18n"
	"github.com/learnhub/voicenav/langmeta"
	"github.com/learnhub/voicenav/logging"
	"github.com/learnhub/voicenav/prefs"
	"github.com/learnhub/voicenav/responder"
	"github.com/learnhub/voicenav/secret"
	"github.com/learnhub/voicenav/settings"
	"github.com/learnhub/voicenav/speech"
	"github.com/learnhub/voicenav/translate"
	"github.com/learnhub/voicenav/voice"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "voicenav",
		Short: "Voice navigation and UI translation for the learning platform",
		Long: `voicenav drives the platform's voice assistant and translation client
from a terminal.

Commands:
  languages   List supported languages and speech locales
  lang        Show or set the interface language
  translate   Translate UI strings into one or more languages
  interpret   Run one utterance through the voice interpreter
  listen      Interactive voice session (one utterance per stdin line)
  cache       Inspect or clear the translation cache
  auth        Manage API keys

Configuration is read from .voicenav.yaml in --root and from VOICENAV_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Directory containing .voicenav.yaml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newLanguagesCmd(),
		newLangCmd(),
		newTranslateCmd(),
		newInterpretCmd(),
		newListenCmd(),
		newCacheCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Application wiring
// ---------------------------------------------------------------------------

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	dataDir  string
	prefs    *prefs.File
	selector *translate.Selector
	closers  []func() error
}

func newApp() (*app, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, err
	}

	dir := cfg.DataDir
	if dir == "" {
		if dir, err = settings.DataDir(); err != nil {
			return nil, err
		}
	}
	store, err := prefs.Load(dir)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      logger,
		dataDir:  dir,
		prefs:    store,
		selector: translate.NewSelector(store, logger),
	}
	if _, saved := store.Get(prefs.KeyLanguage); !saved && cfg.Language != "" {
		if err := a.selector.Set(cfg.Language); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("closing resource failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// printer formats numbers for the active language.
func (a *app) printer() *message.Printer {
	return message.NewPrinter(language.Make(a.selector.Code()))
}

// openCacheStore opens the SQLite translation cache in the data directory.
func (a *app) openCacheStore() (*sqlite.Store, error) {
	if err := os.MkdirAll(a.dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := sqlite.Open(filepath.Join(a.dataDir, sqlite.FileName))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// translationCache builds the cache selected by configuration.
func (a *app) translationCache() (cache.Cache, error) {
	switch a.cfg.TranslateCache {
	case config.CacheOff:
		return nil, nil
	case config.CacheMemory:
		return cache.NewMemory(a.cfg.CacheSize), nil
	default:
		store, err := a.openCacheStore()
		if err != nil {
			return nil, err
		}
		return cache.Tiered{Front: cache.NewMemory(a.cfg.CacheSize), Back: store}, nil
	}
}

func (a *app) translator(ctx context.Context, noCache bool) (*translate.Client, error) {
	if a.cfg.TranslateCache == config.CacheOff {
		noCache = true
	}
	opts := translate.Options{
		Endpoint:      a.cfg.TranslateEndpoint,
		APIKey:        a.cfg.TranslateAPIKey,
		Proxy:         a.cfg.Proxy,
		Timeout:       a.cfg.Timeout,
		MaxConcurrent: a.cfg.MaxConcurrent,
		NoCache:       noCache,
		Selector:      a.selector,
		Logger:        a.log,
		Tracker: translate.NewTracker(func(loading bool) {
			a.log.Debug("translation loading", zap.Bool("loading", loading))
		}),
	}
	if opts.Endpoint == "" {
		opts.Endpoint = settings.GetBaseURL(settings.ServiceTranslate)
	}
	if !noCache {
		c, err := a.translationCache()
		if err != nil {
			return nil, err
		}
		opts.Cache = c
	}
	if a.cfg.SecretEndpoint != "" {
		opts.Secrets = secret.NewClient(a.cfg.SecretEndpoint, a.cfg.SecretToken, a.cfg.Timeout)
	}

	client := translate.NewClient(opts)
	if !client.LoadCredential(ctx) {
		logWarning("No translation API key; text is passed through unchanged")
		logInfo("Set one with: voicenav auth set --service %s", settings.ServiceTranslate)
	}
	return client, nil
}

// responder returns the assistant endpoint client, or nil when none is
// configured.
func (a *app) responder() voice.Responder {
	endpoint := a.cfg.ResponderEndpoint
	if endpoint == "" {
		endpoint = settings.GetBaseURL(settings.ServiceResponder)
	}
	if endpoint == "" {
		return nil
	}
	return responder.NewClient(responder.Options{
		Endpoint: endpoint,
		APIKey:   settings.ResolveAPIKey(settings.ServiceResponder, a.cfg.ResponderAPIKey),
		Proxy:    a.cfg.Proxy,
		Timeout:  a.cfg.Timeout,
		History:  a.cfg.ResponderHistory,
		Logger:   a.log,
	})
}

// session builds an assistant session. rec may be nil for one-shot use.
func (a *app) session(role, path string, rec speech.Recognizer, out io.Writer) (*assistant.Session, error) {
	if role == "" {
		role = a.cfg.Role
	}
	registry := dashboard.NewRegistry(a.cfg.Dashboards, prefs.NewMemory(), a.log)
	if _, ok := registry.Dashboard(role); !ok {
		return nil, fmt.Errorf("unknown role %q (valid: %s, %s)", role, dashboard.Student, dashboard.Educator)
	}
	if path == "" {
		path = a.cfg.StartPath
	}

	adapter := speech.NewAdapter(rec, speech.NewWriterSynthesizer(out), a.selector.Code, speech.Options{
		Logger: a.log,
		OnError: func(err error, message string) {
			if errors.Is(err, speech.ErrNoSpeech) {
				return
			}
			logWarning("%s", message)
		},
	})

	registry.Subscribe(func(ev dashboard.Event) {
		if ev.Kind == dashboard.EventTabChanged {
			a.log.Info("tab changed", zap.String("dashboard", ev.Dashboard), zap.String("tab", ev.Tab))
		}
	})

	return assistant.New(assistant.Config{
		Role:       role,
		StartPath:  path,
		Dashboards: registry,
		Selector:   a.selector,
		Responder:  a.responder(),
		Speech:     adapter,
		Logger:     a.log,
		OnIntent: func(intent voice.Intent) {
			fmt.Fprintln(out, describeIntent(intent, registry))
		},
	}), nil
}

// describeIntent renders an intent for terminal output.
func describeIntent(intent voice.Intent, registry *dashboard.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "intent: %s", intent.Kind)
	if intent.Target != "" {
		fmt.Fprintf(&b, " %s", intent.Target)
	}
	if intent.Rule != "" {
		fmt.Fprintf(&b, " (%s)", intent.Rule)
	}
	if intent.Kind == voice.KindTab && registry != nil {
		if pending, ok := registry.Pending(); ok {
			fmt.Fprintf(&b, " [pending: %s]", pending)
		} else if tab := registry.ActiveTab(); tab != "" {
			fmt.Fprintf(&b, " [active: %s]", tab)
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "voicenav version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// languages / lang
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List supported languages",
		Long: `List every supported interface language with its native name and the
locale used for speech recognition and synthesis. The active language is
marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			langs := langmeta.Supported()
			logInfo(i18n.N("Found %d language", "Found %d languages", len(langs)), len(langs))
			writeLanguageTable(cmd.OutOrStdout(), langs, a.selector.Code())
			return nil
		},
	}
}

// writeLanguageTable prints one row per language.
func writeLanguageTable(w io.Writer, langs []langmeta.Language, active string) {
	for _, l := range langs {
		marker := " "
		if l.Code == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-3s %s  %-11s %-12s %s\n",
			marker, l.Code, l.Flag, l.Name, l.Native, langmeta.SpeechLocale(l.Code))
	}
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the interface language",
		Long: `Without arguments, print the active interface language. With a code
(or a locale such as hi_IN), select and persist it.

Examples:
  voicenav lang
  voicenav lang hi
  voicenav lang pt-BR`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				if err := a.selector.Set(args[0]); err != nil {
					return err
				}
				logSuccess("%s", i18n.Getf(a.selector.Code(), i18n.MsgLanguageChanged, a.selector.Current().Native))
				return nil
			}
			cur := a.selector.Current()
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("Active language: %s")+"\n", fmt.Sprintf("%s (%s)", cur.Name, cur.Code))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var (
		to      []string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate UI strings",
		Long: `Translate strings into the active language, or into the languages given
with --to. Each argument is one string; without arguments one string is
read per line from stdin. Blank strings are kept in place.

Failures never abort: untranslatable strings are printed unchanged.

Examples:
  voicenav translate "My Courses" "Profile"
  voicenav translate --to hi,ta "Switch to progress tab"
  cat labels.txt | voicenav translate --to es --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := splitLangs(to)
			if err != nil {
				return err
			}
			texts := args
			if len(texts) == 0 {
				if texts, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client, err := a.translator(ctx, noCache)
			if err != nil {
				return err
			}
			if len(langs) == 0 {
				langs = []string{client.Language()}
			}

			results, err := client.TranslateAll(ctx, texts, langs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, lang := range langs {
				for _, text := range results[lang] {
					fmt.Fprintf(out, "[%s] %s\n", lang, text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&to, "to", nil, "Target languages, comma separated (default: active language)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the translation cache and always query the API")
	_ = cmd.RegisterFlagCompletionFunc("to", completeLanguages)

	return cmd
}

// splitLangs flattens --to values, resolves each to a registry code and
// drops duplicates.
func splitLangs(values []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			code, ok := langmeta.Normalize(part)
			if !ok {
				return nil, fmt.Errorf("%w: %q", translate.ErrUnsupportedLanguage, part)
			}
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	return out, nil
}

// readLines returns the lines of r without their newlines.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	langs := langmeta.Supported()
	completions := make([]string, 0, len(langs))
	for _, l := range langs {
		completions = append(completions, fmt.Sprintf("%s\t%s", l.Code, l.Name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// ---------------------------------------------------------------------------
// interpret / listen
// ---------------------------------------------------------------------------

func newInterpretCmd() *cobra.Command {
	var role, path string

	cmd := &cobra.Command{
		Use:   "interpret <transcript...>",
		Short: "Run one utterance through the voice interpreter",
		Long: `Interpret a single transcript as if it had been spoken on --path, apply
its intent and print the intent followed by the spoken acknowledgement.

Examples:
  voicenav interpret "go to my courses"
  voicenav interpret --path /dashboard "switch to progress tab"
  voicenav interpret --role educator "what can I do here"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.session(role, path, nil, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			_, err = s.Handle(ctx, strings.Join(args, " "))
			return err
		},
	}

	addSessionFlags(cmd, &role, &path)
	return cmd
}

func newListenCmd() *cobra.Command {
	var role, path string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Start an interactive voice session",
		Long: `Start a voice session that treats every line read from stdin as one
recognized utterance. Acknowledgements are printed with the speech locale
of the active language. The session ends at end of input or on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			rec := speech.NewLineRecognizer(cmd.InOrStdin())
			defer rec.Close()

			s, err := a.session(role, path, rec, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			unsubscribe := a.selector.Subscribe(func(l langmeta.Language) {
				logInfo(i18n.T("Active language: %s"), l.Native)
			})
			defer unsubscribe()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logInfo("Listening on %s (%s). One utterance per line.", s.Path(), a.selector.Code())
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	addSessionFlags(cmd, &role, &path)
	return cmd
}

func addSessionFlags(cmd *cobra.Command, role, path *string) {
	cmd.Flags().StringVar(role, "role", "", "Dashboard role: student or educator (default from config)")
	cmd.Flags().StringVar(path, "path", "", "Current page path (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("role", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{dashboard.Student, dashboard.Educator}, cobra.ShellCompDirectiveNoFileComp
	})
}

// ---------------------------------------------------------------------------
// cache
// ---------------------------------------------------------------------------

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persistent translation cache",
	}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd())
	return cmd
}

func newCacheStatusCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the number of cached translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			store, err := a.openCacheStore()
			if err != nil {
				return err
			}
			n, err := store.Count(cmd.Context(), lang)
			if err != nil {
				return err
			}
			scope := "all languages"
			if lang != "" {
				scope = langmeta.Resolve(lang).Name
			}
			a.printer().Fprintf(cmd.OutOrStdout(), "%d cached translations (%s)\n", n, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Only count this language")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			store, err := a.openCacheStore()
			if err != nil {
				return err
			}
			n, err := store.Purge(cmd.Context(), lang)
			if err != nil {
				return err
			}
			logSuccess("%s", a.printer().Sprintf("Removed %d cached translations", n))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Only clear this language")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)
	return cmd
}

// ---------------------------------------------------------------------------
// auth (set / remove / status)
// ---------------------------------------------------------------------------

var authServices = []struct {
	id   string
	name string
}{
	{settings.ServiceTranslate, "Cloud Translation API"},
	{settings.ServiceResponder, "Voice assistant endpoint"},
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API keys",
		Long: `Manage the API keys stored in auth.json in the data directory.

Services:
  translate   Cloud Translation API key
  responder   Voice assistant endpoint key (and optional endpoint URL)

Keys from VOICENAV_TRANSLATE_API_KEY / VOICENAV_RESPONDER_API_KEY take
precedence over stored keys.

Examples:
  voicenav auth set                          Prompt for the translation key
  voicenav auth set --service responder --base-url https://...
  voicenav auth remove --service translate
  voicenav auth status`,
	}

	cmd.AddCommand(
		newAuthSetCmd(),
		newAuthRemoveCmd(),
		newAuthStatusCmd(),
	)
	return cmd
}

func validService(id string) error {
	for _, s := range authServices {
		if s.id == id {
			return nil
		}
	}
	return fmt.Errorf("unknown service %q (valid: %s, %s)", id, settings.ServiceTranslate, settings.ServiceResponder)
}

// isStored reports whether auth.json holds an entry for id.
func isStored(id string) bool {
	for _, stored := range settings.Services() {
		if stored == id {
			return true
		}
	}
	return false
}

func completeServices(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(authServices))
	for _, s := range authServices {
		out = append(out, fmt.Sprintf("%s\t%s", s.id, s.name))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func newAuthSetCmd() *cobra.Command {
	var service, key, baseURL string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validService(service); err != nil {
				return err
			}
			if key == "" {
				existing := settings.GetAPIKey(service)
				if existing != "" {
					fmt.Fprintf(os.Stderr, "  Current key: %s%s%s\n", colorYellow, settings.MaskKey(existing), colorReset)
					fmt.Fprintf(os.Stderr, "  Enter new key to replace, or press Enter to keep: ")
				} else {
					fmt.Fprintf(os.Stderr, "  Enter API key: ")
				}
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					key = strings.TrimSpace(scanner.Text())
				}
				if key == "" {
					if existing != "" {
						logInfo("Keeping existing key")
						return nil
					}
					return errors.New("no API key provided")
				}
			}

			if err := settings.SetAPIKeyWithBaseURL(service, key, baseURL); err != nil {
				return fmt.Errorf("saving API key: %w", err)
			}
			logSuccess("%s key saved to %s", service, settings.FilePath())
			return nil
		},
	}

	cmd.Flags().StringVar(&service, "service", settings.ServiceTranslate, "Service the key belongs to")
	cmd.Flags().StringVar(&key, "key", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the service endpoint")
	_ = cmd.RegisterFlagCompletionFunc("service", completeServices)
	return cmd
}

func newAuthRemoveCmd() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove stored keys",
		Long: `Remove the stored key of one service, or of all services when --service
is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if service == "" {
				if err := settings.RemoveAll(); err != nil {
					return fmt.Errorf("removing credentials: %w", err)
				}
				logSuccess("All stored credentials removed")
				return nil
			}
			if err := validService(service); err != nil && !isStored(service) {
				return err
			}
			if err := settings.Remove(service); err != nil {
				return fmt.Errorf("removing %s credentials: %w", service, err)
			}
			logSuccess("%s credentials removed", service)
			return nil
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "Service to remove (default: all)")
	_ = cmd.RegisterFlagCompletionFunc("service", completeServices)
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"list", "ls"},
		Short:   "Show stored keys",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%sStored Credentials%s (%s)\n", colorBlue, colorReset, settings.FilePath())
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, s := range authServices {
				info := settings.Get(s.id)
				switch {
				case info != nil && info.Key != "":
					status := fmt.Sprintf("%sconfigured%s (key: %s)", colorGreen, colorReset, settings.MaskKey(info.Key))
					if info.BaseURL != "" {
						status += fmt.Sprintf("\n  %12s endpoint: %s", "", info.BaseURL)
					}
					fmt.Fprintf(out, "  %-12s %s\n", s.id, status)
				default:
					fmt.Fprintf(out, "  %-12s %snot configured%s\n", s.id, colorRed, colorReset)
				}
			}

			for _, id := range settings.Services() {
				if validService(id) == nil {
					continue
				}
				fmt.Fprintf(out, "  %-12s %sunused%s (remove with: voicenav auth remove --service %s)\n", id, colorYellow, colorReset, id)
			}

			fmt.Fprintf(out, "\n  %sEnvironment Variables%s\n", colorYellow, colorReset)
			for _, name := range []string{"VOICENAV_TRANSLATE_API_KEY", "VOICENAV_RESPONDER_API_KEY"} {
				if v := os.Getenv(name); v != "" {
					fmt.Fprintf(out, "  %s: %s%s%s (overrides stored key)\n", name, colorGreen, settings.MaskKey(v), colorReset)
				} else {
					fmt.Fprintf(out, "  %s: %snot set%s\n", name, colorRed, colorReset)
				}
			}
			fmt.Fprintln(out)
		},
	}
}
