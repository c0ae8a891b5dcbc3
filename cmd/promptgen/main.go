package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/promptgen/internal/config"
	"github.com/jask/promptgen/internal/database"
	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/service"
	"github.com/jask/promptgen/internal/tui"
)

// env is everything a command needs once the database is ready.
type env struct {
	cfg         config.Config
	db          *sql.DB
	logger      *slog.Logger
	logFile     *os.File
	settings    *repository.SettingsRepo
	vocabulary  *service.VocabularyService
	maintenance *service.MaintenanceService
}

func (e *env) Close() {
	_ = e.db.Close()
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	for _, p := range []string{cfg.Database.Path, cfg.Log.Path} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(p), err)
		}
	}

	// the TUI owns the terminal, so logs always go to a file
	logFile, err := tea.LogToFile(cfg.Log.Path, "promptgen")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := database.SeedDefaults(context.Background(), db); err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return &env{
		cfg:         cfg,
		db:          db,
		logger:      logger,
		logFile:     logFile,
		settings:    repository.NewSettingsRepo(db),
		vocabulary:  &service.VocabularyService{DB: db, Entries: repository.NewVocabularyRepo(db)},
		maintenance: &service.MaintenanceService{DB: db, Logger: logger},
	}, nil
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func runTUI(ctx context.Context, e *env) error {
	initial, err := e.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	app, err := tui.New(ctx, initial,
		tui.Repos{Settings: e.settings},
		tui.Services{
			Vocabulary: e.vocabulary,
			Generator:  service.NewGenerator(e.vocabulary, uint64(time.Now().UnixNano())),
		},
		e.logger,
	)
	if err != nil {
		return fmt.Errorf("build ui: %w", err)
	}
	e.logger.Info("starting ui", "db", e.cfg.Database.Path)
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root, closeEnv := newRootCmd()
	err := root.ExecuteContext(ctx)
	closeEnv()
	if err != nil {
		stop()
		// the std logger points at the log file by now
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The returned func releases whatever
// the command opened and is safe to call when nothing was.
func newRootCmd() (*cobra.Command, func()) {
	var e *env
	root := &cobra.Command{
		Use:           "promptgen",
		Short:         "Generate image prompts from a local vocabulary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			e, err = setup()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), e)
		},
	}
	envFn := func() *env { return e }
	root.AddCommand(
		newGenerateCmd(envFn),
		newSettingsCmd(envFn),
		newVocabCmd(envFn),
		newResetCmd(envFn),
		newConfigCmd(envFn),
	)
	return root, func() {
		if e != nil {
			e.Close()
		}
	}
}
