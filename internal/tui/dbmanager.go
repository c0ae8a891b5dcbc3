package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/service"
)

// VocabularyStore is the subset of the vocabulary service the database
// manager works against.
type VocabularyStore interface {
	List(ctx context.Context, category string) ([]repository.VocabularyEntry, error)
	Add(ctx context.Context, category, text string) (service.AddResult, error)
	Delete(ctx context.Context, id string) error
	ResetCategory(ctx context.Context, category string) error
}

type dbMode int

const (
	dbModeBrowse dbMode = iota
	dbModeAdding
	dbModeConfirmReset
)

// DatabaseManager edits the prompt vocabulary. It reports every successful
// change through onDataUpdate and exposes nothing else to its owner.
type DatabaseManager struct {
	ctx          context.Context
	store        VocabularyStore
	onDataUpdate func()

	categories []string
	category   int
	entries    []repository.VocabularyEntry
	cursor     int
	mode       dbMode
	input      textinput.Model
	status     string
	statusErr  bool
	loading    bool
}

func NewDatabaseManager(ctx context.Context, store VocabularyStore, onDataUpdate func()) *DatabaseManager {
	if ctx == nil {
		ctx = context.Background()
	}
	if onDataUpdate == nil {
		onDataUpdate = func() {}
	}
	in := textinput.New()
	in.Placeholder = "new entry"
	in.CharLimit = 200
	return &DatabaseManager{
		ctx:          ctx,
		store:        store,
		onDataUpdate: onDataUpdate,
		categories:   repository.Categories(),
		input:        in,
	}
}

func (m *DatabaseManager) Init() tea.Cmd {
	return m.load()
}

// Category returns the category currently shown.
func (m *DatabaseManager) Category() string {
	return m.categories[m.category]
}

// Capturing reports whether the manager is consuming raw keys (text entry or
// a confirmation prompt).
func (m *DatabaseManager) Capturing() bool {
	return m.mode != dbModeBrowse
}

func (m *DatabaseManager) load() tea.Cmd {
	if m.store == nil {
		return nil
	}
	m.loading = true
	category := m.Category()
	return func() tea.Msg {
		list, err := m.store.List(m.ctx, category)
		if err != nil {
			return vocabErrMsg{err}
		}
		return vocabLoadedMsg{category: category, entries: list}
	}
}

func (m *DatabaseManager) addCmd(category, text string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.store.Add(m.ctx, category, text)
		if err != nil {
			return vocabErrMsg{err}
		}
		status := fmt.Sprintf("added %q to %s", res.Entry.Text, category)
		if len(res.Similar) > 0 {
			status += " (similar: " + strings.Join(res.Similar, ", ") + ")"
		}
		return vocabChangedMsg{status: status}
	}
}

func (m *DatabaseManager) deleteCmd(e repository.VocabularyEntry) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Delete(m.ctx, e.ID); err != nil {
			return vocabErrMsg{err}
		}
		return vocabChangedMsg{status: fmt.Sprintf("deleted %q", e.Text)}
	}
}

func (m *DatabaseManager) resetCmd(category string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.ResetCategory(m.ctx, category); err != nil {
			return vocabErrMsg{err}
		}
		return vocabChangedMsg{status: category + " reset to defaults"}
	}
}

func (m *DatabaseManager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case vocabLoadedMsg:
		if msg.category != m.Category() {
			return nil
		}
		m.loading = false
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = max(len(m.entries)-1, 0)
		}
		return nil
	case vocabChangedMsg:
		m.setStatus(msg.status, false)
		m.onDataUpdate()
		return m.load()
	case vocabErrMsg:
		m.loading = false
		m.setStatus("error: "+msg.Error(), true)
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.mode == dbModeAdding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *DatabaseManager) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.store == nil {
		m.setStatus("vocabulary store not configured", true)
		return nil
	}
	switch m.mode {
	case dbModeAdding:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = dbModeBrowse
			m.input.Blur()
			m.input.SetValue("")
			return nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.setStatus("enter a value", true)
				return nil
			}
			m.mode = dbModeBrowse
			m.input.Blur()
			m.input.SetValue("")
			return m.addCmd(m.Category(), text)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	case dbModeConfirmReset:
		switch {
		case key.Matches(msg, keys.Confirm):
			m.mode = dbModeBrowse
			return m.resetCmd(m.Category())
		case key.Matches(msg, keys.Deny):
			m.mode = dbModeBrowse
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Left):
		m.category = (m.category + len(m.categories) - 1) % len(m.categories)
		m.cursor = 0
		m.entries = nil
		return m.load()
	case key.Matches(msg, keys.Right):
		m.category = (m.category + 1) % len(m.categories)
		m.cursor = 0
		m.entries = nil
		return m.load()
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Add):
		m.mode = dbModeAdding
		m.status = ""
		return m.input.Focus()
	case key.Matches(msg, keys.Delete):
		if len(m.entries) == 0 {
			m.setStatus("nothing to delete", true)
			return nil
		}
		return m.deleteCmd(m.entries[m.cursor])
	case key.Matches(msg, keys.Reset):
		m.mode = dbModeConfirmReset
	}
	return nil
}

func (m *DatabaseManager) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the manager with the given styles; focused marks whether it
// currently receives keys.
func (m *DatabaseManager) View(st Styles, focused bool) string {
	var b strings.Builder
	title := "Vocabulary database"
	if focused {
		title = st.Focused.Render(title)
	} else {
		title = st.Section.Render(title)
	}
	b.WriteString(title + "\n")

	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.category {
			tabs[i] = st.Value.Render("[" + c + "]")
		} else {
			tabs[i] = st.Dim.Render(" " + c + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n")

	switch {
	case m.loading && len(m.entries) == 0:
		b.WriteString(st.Dim.Render("  loading...") + "\n")
	case len(m.entries) == 0:
		b.WriteString(st.Dim.Render("  (no entries)") + "\n")
	default:
		for i, e := range m.entries {
			marker := " "
			line := e.Text
			if i == m.cursor {
				marker = "▶"
				if focused {
					line = st.Focused.Render(line)
				}
			}
			b.WriteString(fmt.Sprintf("%s %s\n", marker, line))
		}
	}

	switch m.mode {
	case dbModeAdding:
		b.WriteString("Add to " + m.Category() + ": " + m.input.View() + "\n")
		b.WriteString(st.Dim.Render("[enter] Save  [esc] Cancel"))
	case dbModeConfirmReset:
		b.WriteString(st.Warning.Render("Reset "+m.Category()+" to defaults? This removes your entries.") + "\n")
		b.WriteString(st.Dim.Render("[y] Yes  [n] No"))
	default:
		b.WriteString(st.Dim.Render("[←/→] Category  [a] Add  [d] Delete  [r] Reset  [tab] Back to settings"))
	}
	if m.status != "" {
		style := st.Success
		if m.statusErr {
			style = st.Error
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	return b.String()
}

type vocabLoadedMsg struct {
	category string
	entries  []repository.VocabularyEntry
}

type vocabChangedMsg struct {
	status string
}

type vocabErrMsg struct{ error }
