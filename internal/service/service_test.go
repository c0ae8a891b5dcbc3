package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/promptgen/internal/database"
	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/settings"
)

func newTestVocabulary(t *testing.T, seed bool) (context.Context, *VocabularyService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	if seed {
		require.NoError(t, database.SeedDefaults(ctx, db))
	}
	return ctx, newService(db)
}

func newService(db *sql.DB) *VocabularyService {
	return &VocabularyService{DB: db, Entries: repository.NewVocabularyRepo(db)}
}

func TestVocabularyAdd(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, false)

	res, err := svc.Add(ctx, repository.CategorySubject, "  a paper crane  ")
	require.NoError(t, err)
	require.Equal(t, "a paper crane", res.Entry.Text)
	require.Empty(t, res.Similar)

	_, err = svc.Add(ctx, repository.CategorySubject, "A  Paper crane")
	require.ErrorIs(t, err, ErrDuplicateEntry)

	res, err = svc.Add(ctx, repository.CategorySubject, "a paper cranes")
	require.NoError(t, err)
	require.Equal(t, []string{"a paper crane"}, res.Similar)

	// same text in another category is not a duplicate
	_, err = svc.Add(ctx, repository.CategoryStyle, "a paper crane")
	require.NoError(t, err)

	_, err = svc.Add(ctx, repository.CategorySubject, "   ")
	require.ErrorIs(t, err, ErrEmptyEntry)

	_, err = svc.Add(ctx, "mood", "gloomy")
	require.ErrorIs(t, err, ErrUnknownCategory)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts[repository.CategorySubject])
	require.Equal(t, 1, counts[repository.CategoryStyle])
	require.Equal(t, 0, counts[repository.CategoryCamera])
}

func TestVocabularyDeleteAndReset(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, true)

	list, err := svc.List(ctx, repository.CategoryLighting)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	require.Error(t, svc.Delete(ctx, list[0].ID))

	_, err = svc.Add(ctx, repository.CategoryLighting, "candlelight")
	require.NoError(t, err)

	require.NoError(t, svc.ResetCategory(ctx, repository.CategoryLighting))
	after, err := svc.List(ctx, repository.CategoryLighting)
	require.NoError(t, err)
	require.Len(t, after, len(database.DefaultVocabulary(repository.CategoryLighting)))
	for _, e := range after {
		require.NotEqual(t, "candlelight", e.Text)
	}
}

func TestVocabularyResetKeepsEntriesOnFailure(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, true)
	_, err := svc.Add(ctx, repository.CategoryLighting, "candlelight")
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, svc.ResetCategory(cancelled, repository.CategoryLighting))

	list, err := svc.List(ctx, repository.CategoryLighting)
	require.NoError(t, err)
	var texts []string
	for _, e := range list {
		texts = append(texts, e.Text)
	}
	require.Contains(t, texts, "candlelight")
	require.Len(t, texts, len(database.DefaultVocabulary(repository.CategoryLighting))+1)
}

func TestVocabularyImportReportsEveryRow(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, false)

	data := "subject,a paper crane\nsubject,a \"bad\" quote\nsubject,a glass heron\n"
	var rows []int
	res, err := svc.Import(ctx, strings.NewReader(data), func(row int) { rows = append(rows, row) })
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Error(), "row 2")
	require.Equal(t, []int{1, 2, 3}, rows)
}

func TestVocabularyImportExport(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, false)

	data := strings.Join([]string{
		"# category,text",
		"subject,a clockwork owl",
		"Scene, \"moonlit pier, low tide\"",
		"",
		"subject,A clockwork owl",
		"mood,gloomy",
		"style",
	}, "\n")

	var rows []int
	res, err := svc.Import(ctx, strings.NewReader(data), func(row int) { rows = append(rows, row) })
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 2)
	require.Equal(t, []int{1, 2, 3, 4, 5}, rows)

	var buf bytes.Buffer
	n, err := svc.Export(ctx, &buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "subject,a clockwork owl\nscene,\"moonlit pier, low tide\"\n", buf.String())
}

func TestGeneratorBuildsPrompts(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, false)
	_, err := svc.Add(ctx, repository.CategorySubject, "a fox spirit")
	require.NoError(t, err)
	_, err = svc.Add(ctx, repository.CategoryStyle, "ukiyo-e woodblock print")
	require.NoError(t, err)

	s := settings.Defaults()
	s.PromptCount = 3
	s.IncludeEthnicity = true
	s.Ethnicity = "japanese"
	s.IncludeGender = true
	s.Gender = "female"
	s.IncludeAspectRatio = true
	s.AspectRatio = "16:9"
	s.IncludeVersion = true
	s.Version = "niji 6"
	s.IncludeStylize = true
	s.Stylize = "250"
	s.CustomSuffix = "--stop 80 --raw"

	gen := NewGenerator(svc.Entries, 7)
	got, err := gen.Generate(ctx, s)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, line := range got {
		require.Equal(t, "a fox spirit, ukiyo-e woodblock print, japanese female --ar 16:9 --niji 6 --s 250 --stop 80 --raw", line)
	}
}

func TestGeneratorHonoursGatesAndClamp(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, true)

	s := settings.Defaults()
	s.PromptCount = 80
	s.Ethnicity = "korean" // not included, must not appear
	gen := NewGenerator(svc.Entries, 1)
	got, err := gen.Generate(ctx, s)
	require.NoError(t, err)
	require.Len(t, got, settings.MaxPromptCount)
	for _, line := range got {
		require.NotContains(t, line, "korean")
		require.NotContains(t, line, "--")
	}
}

// staticLister serves a fixed vocabulary without a database.
type staticLister map[string][]string

func (l staticLister) List(_ context.Context, category string) ([]repository.VocabularyEntry, error) {
	var out []repository.VocabularyEntry
	for _, text := range l[category] {
		out = append(out, repository.VocabularyEntry{Category: category, Text: text})
	}
	return out, nil
}

func TestGeneratorConcurrentGenerate(t *testing.T) {
	t.Parallel()
	lister := staticLister{
		repository.CategorySubject: {"a fox spirit", "a street musician", "a lone traveler"},
		repository.CategoryScene:   {"misty bamboo forest", "abandoned greenhouse"},
	}
	gen := NewGenerator(lister, 1)
	s := settings.Defaults()
	s.PromptCount = settings.MaxPromptCount

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := gen.Generate(context.Background(), s)
			if err == nil && len(got) != settings.MaxPromptCount {
				err = fmt.Errorf("got %d prompts", len(got))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestGeneratorSeedIsReproducible(t *testing.T) {
	t.Parallel()
	lister := staticLister{
		repository.CategorySubject: {"a fox spirit", "a street musician", "a lone traveler"},
		repository.CategoryStyle:   {"watercolor illustration", "35mm film still", "ukiyo-e woodblock print"},
	}
	s := settings.Defaults()
	s.PromptCount = 20

	first, err := NewGenerator(lister, 42).Generate(context.Background(), s)
	require.NoError(t, err)
	second, err := NewGenerator(lister, 42).Generate(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGeneratorEmptyVocabulary(t *testing.T) {
	t.Parallel()
	ctx, svc := newTestVocabulary(t, false)
	_, err := NewGenerator(svc.Entries, 1).Generate(ctx, settings.Defaults())
	require.ErrorIs(t, err, ErrNoVocabulary)
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*settings.AppSettings)
		want string
	}{
		{"none", func(*settings.AppSettings) {}, ""},
		{"version", func(s *settings.AppSettings) { s.IncludeVersion = true }, "--v 6.1"},
		{"niji", func(s *settings.AppSettings) { s.IncludeVersion = true; s.Version = "niji 5" }, "--niji 5"},
		{"all", func(s *settings.AppSettings) {
			s.IncludeAspectRatio, s.IncludeVersion, s.IncludeStylize = true, true, true
		}, "--ar 1:1 --v 6.1 --s 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Defaults()
			tt.mod(&s)
			require.Equal(t, tt.want, Flags(s))
		})
	}
}
