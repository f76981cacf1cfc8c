package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/editline/internal/bash"
	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/atinylittleshell/editline/internal/config"
	"github.com/atinylittleshell/editline/internal/core"
	"github.com/atinylittleshell/editline/internal/engine"
	"github.com/atinylittleshell/editline/internal/history"
	"github.com/atinylittleshell/editline/internal/session"
	"github.com/atinylittleshell/editline/internal/styles"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

const programName = "editline"

var configPath = flag.String("config", "", "path to the config file (default ~/.editline/config.yaml)")
var editrcPath = flag.String("editrc", "", "directive file to source (default ~/.editrc)")
var memoryHistory = flag.Bool("m", false, "keep history in memory only")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `editline - line editor with completion and history

USAGE:
  editline [options]

Each accepted line is printed to stdout. Lines starting with ":" are
session commands:

  :history               list history, most recent first
  :history -t            list history with timestamps
  :history search QUERY  search history
  :current               print the most recent entry
  :DIRECTIVE ...         apply a directive (history size N, prompt TEXT,
                         bind KEY ACTION, complete -W WORDS CMD, ...)

KEYS:
  Tab                    complete
  Ctrl+R                 search history

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, cfgErrs, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new editline session --------", zap.Any("args", os.Args))

	reportConfigErrors(cfgErrs, logger, os.Stderr)

	if err := run(cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	store, persistent, err := initializeHistoryStore(cfg, *memoryHistory)
	if err != nil {
		return err
	}

	eng, display, errOut, err := initializeEngine(logger)
	if err != nil {
		store.Close()
		return err
	}

	a, err := newApp(appOptions{
		Config:     cfg,
		Engine:     eng,
		Displayer:  display,
		Store:      store,
		Persistent: persistent,
		Out:        os.Stdout,
		ErrOut:     errOut,
		Logger:     logger,
	})
	if err != nil {
		eng.Close()
		store.Close()
		return err
	}

	editrc := *editrcPath
	if editrc == "" {
		editrc = cfg.EditRC
	}
	if err := a.session.Source(editrc); err != nil {
		fmt.Fprintln(os.Stderr, styles.WARNING(err.Error()))
	}

	defer a.close()
	return a.loop()
}

// reportConfigErrors logs configuration errors found before the logger
// existed and shows them to the user.
func reportConfigErrors(errs []error, logger *zap.Logger, w io.Writer) {
	for _, err := range errs {
		logger.Warn("invalid configuration value", zap.Error(err))
		fmt.Fprintln(w, styles.WARNING("config: "+err.Error()))
	}
}

func loadConfig(path string) (*config.Config, []error, error) {
	loader := config.NewLoader(nil)

	var (
		result *config.LoadResult
		err    error
	)
	if path == "" {
		result, err = loader.LoadDefaultConfigPath()
	} else {
		result, err = loader.LoadFromFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	return result.Config, result.Errors, nil
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs only go to file to avoid interfering with the line being edited.
	// Use `tail -f ~/.editline/editline.log` to monitor logs in real-time
	return loggerConfig.Build()
}

// initializeHistoryStore returns the store and, when history is persisted,
// the same store as a *history.SQLiteStore.
func initializeHistoryStore(cfg *config.Config, memoryOnly bool) (history.Store, *history.SQLiteStore, error) {
	if memoryOnly || !cfg.History.Persist {
		return history.NewMemoryStore(), nil, nil
	}

	path := cfg.History.File
	if path == "" {
		path = core.HistoryFile()
	}
	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

// initializeEngine picks the terminal engine for an interactive stdin and
// the reader engine otherwise. It also returns the displayer and the writer
// for completion errors that suit the engine.
func initializeEngine(logger *zap.Logger) (engine.Engine, completion.Displayer, io.Writer, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t, err := engine.NewTerminal(os.Stdin, os.Stdout, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return t, engine.NewColumnDisplay(t.Output(), t.Width), t.Output(), nil
	}

	return engine.NewReader(os.Stdin, nil), engine.NewColumnDisplay(os.Stdout, nil), os.Stderr, nil
}

type appOptions struct {
	Config     *config.Config
	Engine     engine.Engine
	Displayer  completion.Displayer
	Store      history.Store
	Persistent *history.SQLiteStore
	Out        io.Writer
	ErrOut     io.Writer
	Logger     *zap.Logger
}

// app runs the read loop over a Session.
type app struct {
	session    *session.Session
	persistent *history.SQLiteStore
	out        io.Writer
	errOut     io.Writer
	logger     *zap.Logger
}

func newApp(opts appOptions) (*app, error) {
	provider := completion.NewProvider(nil, nil)
	for command, words := range opts.Config.Completion.Words {
		provider.Registry().AddSpec(completion.CompletionSpec{Command: command, Words: words})
	}

	s, err := session.Init(programName, session.Options{
		Engine:    opts.Engine,
		Store:     opts.Store,
		Producer:  provider,
		Displayer: opts.Displayer,
		Logger:    opts.Logger,
		ErrOut:    opts.ErrOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	if err := s.RegisterDirective("complete", completion.NewCompleteDirective(provider.Registry(), opts.Out)); err != nil {
		return nil, err
	}

	s.SetPrompt(opts.Config.Prompt)
	if err := s.SetHistorySize(opts.Config.History.Size); err != nil {
		return nil, err
	}
	if err := s.SetHistoryUnique(opts.Config.History.Unique); err != nil {
		return nil, err
	}

	return &app{
		session:    s,
		persistent: opts.Persistent,
		out:        opts.Out,
		errOut:     opts.ErrOut,
		logger:     opts.Logger,
	}, nil
}

// close ends the session, closing the engine and the history store.
func (a *app) close() {
	if err := a.session.End(); err != nil {
		a.logger.Error("failed to end session", zap.Error(err))
	}
}

func (a *app) loop() error {
	for {
		line, ok, err := a.session.Gets()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if command, found := strings.CutPrefix(line, ":"); found {
			if err := a.command(command); err != nil {
				a.logger.Debug("session command failed", zap.String("command", command), zap.Error(err))
				fmt.Fprintln(a.errOut, styles.ERROR(err.Error()))
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := a.session.HistoryEnter(line); err != nil {
			fmt.Fprintln(a.errOut, styles.ERROR(err.Error()))
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *app) command(text string) error {
	commands, err := bash.SplitCommands(text, bash.Environ())
	if err != nil {
		return err
	}

	for _, args := range commands {
		if err := a.runCommand(args); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runCommand(args []string) error {
	switch {
	case len(args) == 1 && args[0] == "history":
		entries, err := a.session.History()
		if err != nil {
			return err
		}
		for i, entry := range entries {
			fmt.Fprintf(a.out, "%5d  %s\n", i+1, entry)
		}
		return nil
	case len(args) == 2 && args[0] == "history" && args[1] == "-t":
		return a.printTimestamped()
	case len(args) >= 2 && args[0] == "history" && args[1] == "search":
		entries, err := a.session.History()
		if err != nil {
			return err
		}
		for _, match := range history.Search(entries, strings.Join(args[2:], " ")) {
			fmt.Fprintln(a.out, match)
		}
		return nil
	case len(args) == 1 && args[0] == "current":
		entry, ok, err := a.session.HistoryCurrent()
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(a.out, entry)
		}
		return nil
	default:
		return a.session.Parse(args)
	}
}

func (a *app) printTimestamped() error {
	if a.persistent == nil {
		return errors.New("history timestamps require persistent history")
	}

	entries, err := a.persistent.Entries()
	if err != nil {
		return err
	}
	for i, entry := range entries {
		fmt.Fprintf(a.out, "%5d  %s  %s\n", i+1, styles.DIM(humanize.Time(entry.CreatedAt)), entry.Line)
	}
	return nil
}
