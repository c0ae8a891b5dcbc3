package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/service"
	"github.com/jask/promptgen/internal/settings"
)

// SettingsStore persists the AppSettings record.
type SettingsStore interface {
	Get(ctx context.Context) (settings.AppSettings, error)
	Save(ctx context.Context, s settings.AppSettings) error
}

// PromptGenerator turns settings into prompt lines.
type PromptGenerator interface {
	Generate(ctx context.Context, s settings.AppSettings) ([]string, error)
}

// CountStore reports vocabulary sizes per category.
type CountStore interface {
	Counts(ctx context.Context) (map[string]int, error)
}

type Repos struct {
	Settings SettingsStore
}

type Services struct {
	Vocabulary interface {
		VocabularyStore
		CountStore
	}
	Generator PromptGenerator
}

// App owns the AppSettings record and everything derived from it.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	logger   *slog.Logger

	settings settings.AppSettings
	panel    *SettingsPanel
	prompts  []string
	counts   map[string]int
	status   string
	width    int

	// commands queued by panel callbacks during the current Update
	queued []tea.Cmd

	saver  *settingsSaver
	genSeq uint64
}

// New builds the app around the stored settings record.
func New(ctx context.Context, initial settings.AppSettings, repos Repos, services Services, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{
		ctx:      ctx,
		repos:    repos,
		services: services,
		logger:   logger,
		settings: initial,
		saver:    &settingsSaver{},
	}
	var vocab VocabularyStore
	if services.Vocabulary != nil {
		vocab = services.Vocabulary
	}
	panel, err := NewSettingsPanel(PanelConfig{
		Context:          ctx,
		Settings:         initial,
		OnSettingsChange: a.handleSettingsChange,
		OnDatabaseUpdate: a.handleDatabaseUpdate,
		Vocabulary:       vocab,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}
	a.panel = panel
	return a, nil
}

func (a *App) Settings() settings.AppSettings { return a.settings }
func (a *App) Panel() *SettingsPanel           { return a.panel }

func (a *App) handleSettingsChange(next settings.AppSettings) {
	changed := a.settings.Diff(next)
	a.settings = next
	a.panel.SetSettings(next)
	fields := make([]string, len(changed))
	for i, f := range changed {
		fields[i] = f.String()
	}
	a.logger.Debug("settings changed", "fields", fields)
	a.queue(a.saveSettingsCmd(next), a.generateCmd())
}

func (a *App) handleDatabaseUpdate() {
	a.logger.Debug("vocabulary changed")
	a.queue(a.generateCmd(), a.loadCountsCmd())
}

func (a *App) queue(cmds ...tea.Cmd) {
	for _, c := range cmds {
		if c != nil {
			a.queued = append(a.queued, c)
		}
	}
}

func (a *App) drain() []tea.Cmd {
	out := a.queued
	a.queued = nil
	return out
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.panel.Init(), a.generateCmd(), a.loadCountsCmd())
}

// settingsSaver serialises saves and drops any that finish behind a newer one.
type settingsSaver struct {
	seq     atomic.Uint64
	mu      sync.Mutex
	written uint64
}

func (s *settingsSaver) next() uint64 {
	return s.seq.Add(1)
}

func (a *App) saveSettingsCmd(snapshot settings.AppSettings) tea.Cmd {
	if a.repos.Settings == nil {
		return nil
	}
	seq := a.saver.next()
	return func() tea.Msg {
		a.saver.mu.Lock()
		defer a.saver.mu.Unlock()
		if seq < a.saver.written {
			return nil
		}
		if err := a.repos.Settings.Save(a.ctx, snapshot); err != nil {
			return errMsg{fmt.Errorf("save settings: %w", err)}
		}
		a.saver.written = seq
		return settingsSavedMsg{}
	}
}

func (a *App) generateCmd() tea.Cmd {
	if a.services.Generator == nil {
		return nil
	}
	a.genSeq++
	seq := a.genSeq
	snapshot := a.settings
	return func() tea.Msg {
		prompts, err := a.services.Generator.Generate(a.ctx, snapshot)
		return promptsMsg{seq: seq, prompts: prompts, err: err}
	}
}

func (a *App) loadCountsCmd() tea.Cmd {
	if a.services.Vocabulary == nil {
		return nil
	}
	return func() tea.Msg {
		counts, err := a.services.Vocabulary.Counts(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return countsMsg(counts)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.ForceQuit):
			return a, tea.Quit
		case !a.panel.CapturingText() && key.Matches(m, keys.Quit):
			return a, tea.Quit
		case !a.panel.CapturingText() && key.Matches(m, keys.Generate):
			a.status = "regenerating..."
			return a, a.generateCmd()
		}
	case promptsMsg:
		if m.seq != a.genSeq {
			return a, nil
		}
		switch {
		case errors.Is(m.err, service.ErrNoVocabulary):
			a.prompts = nil
			a.status = "vocabulary is empty; add entries in the database manager"
		case m.err != nil:
			a.status = "error: " + m.err.Error()
		default:
			a.prompts = m.prompts
			a.status = fmt.Sprintf("%d prompts", len(m.prompts))
		}
		return a, nil
	case countsMsg:
		a.counts = map[string]int(m)
		return a, nil
	case settingsSavedMsg:
		return a, nil
	case errMsg:
		a.logger.Error("app error", "err", m.error)
		a.status = "error: " + m.Error()
		return a, nil
	}
	cmd := a.panel.Update(msg)
	return a, tea.Batch(append(a.drain(), cmd)...)
}

func (a *App) View() string {
	st := StylesFor(a.settings.DarkMode)
	var b strings.Builder
	b.WriteString(st.Title.Render("promptgen") + "\n")
	b.WriteString(a.panel.View() + "\n")

	b.WriteString(st.Section.Render("Prompts") + " " + st.Dim.Render(a.vocabularySummary()) + "\n")
	if len(a.prompts) == 0 {
		b.WriteString(st.Dim.Render("  (none yet)") + "\n")
	}
	for i, p := range a.prompts {
		b.WriteString(fmt.Sprintf("%3d. %s\n", i+1, p))
	}
	if a.status != "" {
		style := st.Dim
		if strings.HasPrefix(a.status, "error:") {
			style = st.Error
		}
		b.WriteString(style.Render(a.status) + "\n")
	}
	b.WriteString(st.Dim.Render("[g] Regenerate  [q] Quit"))
	return b.String()
}

func (a *App) vocabularySummary() string {
	if len(a.counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a.counts))
	for _, c := range repository.Categories() {
		parts = append(parts, fmt.Sprintf("%s %d", c, a.counts[c]))
	}
	return "(" + strings.Join(parts, " · ") + ")"
}

// messages
type promptsMsg struct {
	seq     uint64
	prompts []string
	err     error
}

type countsMsg map[string]int

type settingsSavedMsg struct{}

type errMsg struct{ error }
