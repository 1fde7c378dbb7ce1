package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/five82/paa/internal/config"
	"github.com/five82/paa/internal/logging"
	"github.com/five82/paa/internal/ollama"
	"github.com/five82/paa/internal/prefs"
	"github.com/five82/paa/internal/ui"
)

// Options configure the paa application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/paa/config.toml
	PrefsPath  string // empty uses default ~/.config/paa/prefs.toml
	Model      string // overrides the configured model
	URL        string // overrides the configured ollama_url
	Debug      bool
}

var errNotTerminal = errors.New("terminal initialization failed: stdin and stdout must be a terminal")

// isTerminal reports whether both standard streams are attached to a tty.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run boots the chat TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if !isTerminal() {
		return errNotTerminal
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Debug: opts.Debug})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := ollama.NewClient(ollama.Options{
		BaseURL:      cfg.OllamaURL,
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
		Timeout:      cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("init ollama client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger.Info("starting",
		zap.String("ollama_url", client.BaseURL()),
		zap.String("model", client.Model()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("theme", userPrefs.Theme),
	)

	err = ui.Run(ui.Options{
		Context:        ctx,
		Backend:        client,
		Logger:         logger,
		ModelName:      client.Model(),
		RequestTimeout: cfg.RequestTimeout,
		LogPath:        cfg.LogFile,
		PrefsPath:      opts.PrefsPath,
		Prefs:          userPrefs,
	})
	switch {
	case err == nil:
		logger.Info("exited")
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		logger.Info("stopped by signal", zap.Error(ctx.Err()))
		return nil
	default:
		logger.Error("ui failed", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.URL != "" {
		cfg.OllamaURL = opts.URL
	}
	return cfg, nil
}
