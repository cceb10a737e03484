// ABOUTME: Wires configuration, session store, API client and services for a command
// ABOUTME: Client notifications print through the printer or, for the dashboard, the TUI

package cmd

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/config"
	"github.com/markalston/portfolio-admin/internal/logger"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/session"
	"github.com/markalston/portfolio-admin/internal/tui"
)

// appOptions selects how an app is wired
type appOptions struct {
	streams
	// dashboard sends notifications into the TUI and logs to a file
	dashboard bool
}

// app is everything a command needs, built once per invocation
type app struct {
	cfg     *config.Config
	printer *output.Printer
	logger  *slog.Logger
	store   session.Store
	api     *client.Client
	auth    *auth.Service
	cache   *cache.Cache
	svc     *portfolio.Services
	sink    *sink
	bridge  *tui.Bridge
	in      io.Reader

	closers []io.Closer
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := config.Load(flagOverrides(), cfgFile)
	if err != nil {
		return nil, &output.CLIError{
			Summary:    err.Error(),
			Suggestion: "Check --config, the PORTFOLIO_* variables and config.yaml",
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}
	}
	mode, err := output.ParseColorMode(cfg.Output.Color)
	if err != nil {
		return nil, &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}

	a := &app{
		cfg: cfg,
		printer: output.NewPrinter(output.PrinterOptions{
			ColorMode:    mode,
			ConfigColors: cfg.Output.Colors,
			Quiet:        quiet,
			Out:          opts.out,
			Err:          opts.errOut,
		}),
		in: opts.in,
	}
	if a.in == nil {
		a.in = os.Stdin
	}

	logOut := opts.errOut
	if logOut == nil {
		logOut = os.Stderr
	}
	if opts.dashboard {
		f, err := logger.OpenFile(cfg.LogFile())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		logOut = f
	}
	a.logger = logger.Init(logOut, cfg.Log.Level, cfg.Log.Format)

	if cfg.Ephemeral {
		a.store = session.NewMemoryStore()
	} else {
		a.store = session.NewFileStore(cfg.ConfigDir)
	}

	a.sink = &sink{printer: a.printer}
	if opts.dashboard {
		a.bridge = tui.NewBridge()
		a.sink.redirect(a.bridge)
	}

	a.api = client.New(cfg.APIURL, a.store,
		client.WithTimeout(cfg.Timeout),
		client.WithNotifier(a.sink),
		client.WithNavigator(a.sink),
		client.WithLogger(a.logger),
	)
	a.auth = auth.New(a.api, a.store, auth.WithLogger(a.logger))
	a.cache = cache.New(cfg.Cache.TTL)
	a.svc = portfolio.New(a.api, a.cache)

	// Cached responses may depend on who is signed in
	a.auth.Subscribe(func(*models.User) { a.svc.Invalidate() })

	a.logger.Debug("app ready", "api_url", cfg.APIURL, "config_dir", cfg.ConfigDir, "ephemeral", cfg.Ephemeral)
	return a, nil
}

// Close stops the cache janitor and closes the log file
func (a *app) Close() {
	a.cache.Close()
	for _, c := range a.closers {
		c.Close()
	}
}

// interactive reports whether stdin is a terminal that can run a form
func (a *app) interactive() bool {
	f, ok := a.in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// sink receives API client notifications and navigation intents. Commands
// print notifications and leave navigation to the exit code; the dashboard
// forwards both into its event loop.
type sink struct {
	mu      sync.Mutex
	printer *output.Printer
	target  *tui.Bridge
}

func (s *sink) redirect(b *tui.Bridge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = b
}

// Error implements client.Notifier
func (s *sink) Error(format string, args ...interface{}) {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	if target != nil {
		target.Error(format, args...)
		return
	}
	s.printer.Error(format, args...)
}

// Navigate implements client.Navigator
func (s *sink) Navigate(i client.Intent) {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	if target != nil {
		target.Navigate(i)
	}
}
