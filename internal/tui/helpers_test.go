package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/service"
	"github.com/jask/promptgen/internal/settings"
)

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// memVocabulary is an in-memory VocabularyStore.
type memVocabulary struct {
	mu      sync.Mutex
	entries map[string][]repository.VocabularyEntry
	nextID  int
	failAdd error
}

func newMemVocabulary() *memVocabulary {
	return &memVocabulary{entries: map[string][]repository.VocabularyEntry{
		repository.CategorySubject: {{ID: "s1", Category: repository.CategorySubject, Text: "a fox spirit"}},
		repository.CategoryStyle:   {{ID: "st1", Category: repository.CategoryStyle, Text: "watercolor"}},
	}}
}

func (m *memVocabulary) List(_ context.Context, category string) ([]repository.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.VocabularyEntry(nil), m.entries[category]...), nil
}

func (m *memVocabulary) Add(_ context.Context, category, text string) (service.AddResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd != nil {
		return service.AddResult{}, m.failAdd
	}
	m.nextID++
	e := repository.VocabularyEntry{ID: fmt.Sprintf("n%d", m.nextID), Category: category, Text: text}
	m.entries[category] = append(m.entries[category], e)
	return service.AddResult{Entry: e}, nil
}

func (m *memVocabulary) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c, list := range m.entries {
		for i, e := range list {
			if e.ID == id {
				m.entries[c] = append(list[:i:i], list[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("not found")
}

func (m *memVocabulary) ResetCategory(_ context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[category] = []repository.VocabularyEntry{{ID: "default-" + category, Category: category, Text: "default " + category}}
	return nil
}

func (m *memVocabulary) Counts(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, c := range repository.Categories() {
		out[c] = len(m.entries[c])
	}
	return out, nil
}

func (m *memVocabulary) texts(category string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries[category] {
		out = append(out, e.Text)
	}
	sort.Strings(out)
	return out
}

// memSettings is an in-memory SettingsStore.
type memSettings struct {
	mu    sync.Mutex
	saved []settings.AppSettings
}

func (m *memSettings) Get(context.Context) (settings.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return settings.Defaults(), nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memSettings) Save(_ context.Context, s settings.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, s)
	return nil
}

// fixedGenerator echoes the settings it was called with.
type fixedGenerator struct {
	calls []settings.AppSettings
}

func (g *fixedGenerator) Generate(_ context.Context, s settings.AppSettings) ([]string, error) {
	g.calls = append(g.calls, s)
	out := make([]string, s.PromptCount)
	for i := range out {
		out[i] = fmt.Sprintf("prompt %d %s", i+1, s.CustomSuffix)
	}
	return out, nil
}

// runCmd executes cmd and feeds every resulting message back through update,
// following batches, until no command is left.
func runCmd(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch m := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, m...)
		default:
			if isBlink(msg) {
				continue
			}
			queue = append(queue, update(msg))
		}
	}
}

// isBlink filters the cursor blink ticks bubbles inputs schedule.
func isBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return t == "cursor.initialBlinkMsg" || t == "cursor.BlinkMsg" || t == "cursor.blinkCanceled"
}
