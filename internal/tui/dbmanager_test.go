package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/promptgen/internal/database/repository"
)

func newTestManager(t *testing.T) (*DatabaseManager, *memVocabulary, *int) {
	t.Helper()
	vocab := newMemVocabulary()
	calls := 0
	m := NewDatabaseManager(context.Background(), vocab, func() { calls++ })
	runCmd(m.Init(), m.Update)
	return m, vocab, &calls
}

func TestDatabaseManagerLoadsFirstCategory(t *testing.T) {
	m, _, calls := newTestManager(t)
	require.Equal(t, repository.CategorySubject, m.Category())
	require.Len(t, m.entries, 1)

	view := m.View(StylesFor(true), true)
	require.Contains(t, view, "Vocabulary database")
	require.Contains(t, view, "[subject]")
	require.Contains(t, view, "a fox spirit")
	require.Zero(t, *calls)
}

func TestDatabaseManagerSwitchesCategory(t *testing.T) {
	m, _, _ := newTestManager(t)

	runCmd(m.Update(specialKey(tea.KeyRight)), m.Update)
	require.Equal(t, repository.CategoryScene, m.Category())
	require.Contains(t, m.View(StylesFor(true), true), "(no entries)")

	runCmd(m.Update(specialKey(tea.KeyRight)), m.Update)
	require.Equal(t, repository.CategoryStyle, m.Category())
	require.Contains(t, m.View(StylesFor(true), true), "watercolor")

	for range 3 {
		runCmd(m.Update(specialKey(tea.KeyRight)), m.Update)
	}
	require.Equal(t, repository.CategorySubject, m.Category())

	runCmd(m.Update(specialKey(tea.KeyLeft)), m.Update)
	require.Equal(t, repository.CategoryCamera, m.Category())
}

func TestDatabaseManagerIgnoresStaleLoad(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Update(specialKey(tea.KeyRight)) // scene, load pending

	m.Update(vocabLoadedMsg{category: repository.CategorySubject, entries: []repository.VocabularyEntry{{ID: "x", Text: "late"}}})
	require.Empty(t, m.entries)
}

func TestDatabaseManagerAdd(t *testing.T) {
	m, vocab, calls := newTestManager(t)

	m.Update(keyMsg("a"))
	require.True(t, m.Capturing())
	require.Contains(t, m.View(StylesFor(false), true), "Add to subject: ")
	for _, r := range "a paper crane" {
		m.Update(keyMsg(string(r)))
	}
	runCmd(m.Update(specialKey(tea.KeyEnter)), m.Update)

	require.False(t, m.Capturing())
	require.Equal(t, []string{"a fox spirit", "a paper crane"}, vocab.texts(repository.CategorySubject))
	require.Len(t, m.entries, 2)
	require.Equal(t, 1, *calls)
	require.Contains(t, m.View(StylesFor(false), true), `added "a paper crane" to subject`)
}

func TestDatabaseManagerAddRejectsBlank(t *testing.T) {
	m, _, calls := newTestManager(t)

	m.Update(keyMsg("a"))
	m.Update(keyMsg(" "))
	cmd := m.Update(specialKey(tea.KeyEnter))

	require.Nil(t, cmd)
	require.True(t, m.Capturing())
	require.Equal(t, "enter a value", m.status)
	require.Zero(t, *calls)

	m.Update(specialKey(tea.KeyEsc))
	require.False(t, m.Capturing())
}

func TestDatabaseManagerAddErrorShowsStatus(t *testing.T) {
	m, vocab, calls := newTestManager(t)
	vocab.failAdd = errors.New("duplicate entry")

	m.Update(keyMsg("a"))
	m.Update(keyMsg("x"))
	runCmd(m.Update(specialKey(tea.KeyEnter)), m.Update)

	require.True(t, m.statusErr)
	require.Contains(t, m.View(StylesFor(true), true), "error: duplicate entry")
	require.Zero(t, *calls)
}

func TestDatabaseManagerDelete(t *testing.T) {
	m, vocab, calls := newTestManager(t)

	runCmd(m.Update(keyMsg("d")), m.Update)
	require.Empty(t, vocab.texts(repository.CategorySubject))
	require.Equal(t, 1, *calls)
	require.Contains(t, m.View(StylesFor(true), true), "(no entries)")

	runCmd(m.Update(keyMsg("d")), m.Update)
	require.Equal(t, "nothing to delete", m.status)
	require.Equal(t, 1, *calls)
}

func TestDatabaseManagerResetNeedsConfirmation(t *testing.T) {
	m, vocab, calls := newTestManager(t)

	m.Update(keyMsg("r"))
	require.True(t, m.Capturing())
	require.Contains(t, m.View(StylesFor(true), true), "Reset subject to defaults?")
	m.Update(keyMsg("n"))
	require.False(t, m.Capturing())
	require.Equal(t, []string{"a fox spirit"}, vocab.texts(repository.CategorySubject))

	m.Update(keyMsg("r"))
	runCmd(m.Update(keyMsg("y")), m.Update)
	require.Equal(t, []string{"default subject"}, vocab.texts(repository.CategorySubject))
	require.Equal(t, 1, *calls)
}

func TestDatabaseManagerWithoutStore(t *testing.T) {
	m := NewDatabaseManager(nil, nil, nil)
	require.Nil(t, m.Init())
	require.NotPanics(t, func() { m.Update(keyMsg("a")) })
	require.True(t, m.statusErr)
}
