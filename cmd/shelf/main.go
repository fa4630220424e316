package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nikbrunner/shelf/internal/config"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/notify"
	"github.com/nikbrunner/shelf/internal/storage"
)

// errUsage is returned by commands called with bad arguments.
var errUsage = errors.New("usage")

// notified marks an error the store already reported to the user.
type notified struct{ error }

func (n notified) Unwrap() error { return n.error }

// command runs one subcommand against an opened app.
type command func(a *app, args []string) error

var commands = map[string]command{
	"add":        runAdd,
	"add-folder": runAddFolder,
	"edit":       runEdit,
	"rm":         runRemove,
	"mv":         runMove,
	"clear":      runClear,
	"list":       runList,
	"open":       runOpen,
	"import":     runImport,
	"export":     runExport,
	"stats":      runStats,
	"favicons":   runFavicons,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printHelp()
		return 0
	}

	name := args[0]
	switch name {
	case "help", "--help", "-h":
		printHelp()
		return 0
	}

	cmd, ok := commands[name]
	if !ok {
		// Treat as search query
		cmd, args = runOpen, append([]string{"open"}, args...)
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close()

	return a.exitCode(cmd(a, args[1:]))
}

// app bundles everything a command needs.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	storage storage.Storage
	store   *model.Store
	notify  *notify.Printer
}

func newApp() (*app, error) {
	configPath := os.Getenv("SHELF_CONFIG")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	st, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	log.Debug("storage opened", logger.String("backend", cfg.Backend), logger.String("dataDir", cfg.DataDir))

	printer := newPrinter(os.Stderr, cfg)
	store := model.NewStore(model.StoreParams{
		Persister:      st,
		Notifier:       printer,
		Logger:         log,
		FaviconService: cfg.FaviconService,
	})
	if err := store.Open(); err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		storage: st,
		store:   store,
		notify:  printer,
	}, nil
}

// newPrinter builds the notification printer, honoring the quiet setting.
func newPrinter(w io.Writer, cfg *config.Config) *notify.Printer {
	return notify.NewPrinter(w, cfg.Quiet)
}

func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn("failed to close storage", logger.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) info(format string, args ...any) {
	a.notify.Notify(model.Notification{Level: model.LevelInfo, Message: fmt.Sprintf(format, args...)})
}

func (a *app) success(format string, args ...any) {
	a.notify.Notify(model.Notification{Level: model.LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

func (a *app) fail(format string, args ...any) {
	a.notify.Notify(model.Notification{Level: model.LevelError, Message: fmt.Sprintf(format, args...)})
}

// exitCode reports err (unless already reported) and maps it to an exit status.
// A missing record is informational.
func (a *app) exitCode(err error) int {
	var n notified
	switch {
	case err == nil:
		return 0
	case errors.Is(err, model.ErrNotFound):
		a.info("Nothing changed: %v", err)
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "Usage: %s\n", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		return 1
	case errors.As(err, &n):
		return 1
	default:
		a.fail("%v", err)
		return 1
	}
}

func usage(line string) error {
	return fmt.Errorf("%w: %s", errUsage, line)
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("don't know how to open URLs on %s", runtime.GOOS)
	}
	return cmd.Start()
}

func printHelp() {
	help := `shelf - local bookmark manager

Usage:
  shelf add <url> <title> [description]   Add a bookmark
  shelf add-folder <title>                 Add a folder
  shelf edit <id> [-title T] [-url U] [-desc D] [-hide|-unhide]
  shelf rm <id>...                         Delete one or more records
  shelf mv <from> <to>                     Move a record in the manual order (0-based)
  shelf clear [-yes]                       Delete everything
  shelf list [-sort name|type|domain|date] [-desc] [-hidden] [query]
  shelf open [query]                       Search → select → open in browser
  shelf <query>                            Same as open
  shelf import <file.html>                 Import a Netscape bookmark file
  shelf export [path]                      Export to a Netscape bookmark file
  shelf stats                              Top domains
  shelf favicons [dir]                     Prefetch favicons into the cache
  shelf help                               Show this help

Queries:
  text           case-insensitive substring of title, url and description
  *.dev          wildcard: * matches anything, whole text must match
  /^go/          regular expression, case-insensitive

Picker keys:
  j/k  move   /  filter   y  copy URL   Enter  open   q/Esc  cancel

Configuration:
  ~/.config/shelf/config.yaml (override with SHELF_CONFIG)
  SHELF_BACKEND, SHELF_DATA_DIR, SHELF_LOG_LEVEL, SHELF_REDIS_ADDR, ...
  SHELF_QUIET=true shows only errors
`
	fmt.Print(help)
}
