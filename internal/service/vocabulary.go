package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/promptgen/internal/database"
	"github.com/jask/promptgen/internal/database/repository"
)

var (
	ErrEmptyEntry      = errors.New("vocabulary: entry text is empty")
	ErrUnknownCategory = errors.New("vocabulary: unknown category")
	ErrDuplicateEntry  = errors.New("vocabulary: entry already exists")
)

// similarDistance is the largest edit distance still reported as a near duplicate.
const similarDistance = 2

// VocabularyService manages the word lists prompts are assembled from.
type VocabularyService struct {
	DB      *sql.DB
	Entries *repository.VocabularyRepo
}

// AddResult describes a successful insert.
type AddResult struct {
	Entry   repository.VocabularyEntry
	Similar []string // existing entries within similarDistance edits
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

func (s *VocabularyService) List(ctx context.Context, category string) ([]repository.VocabularyEntry, error) {
	if !repository.IsCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return s.Entries.List(ctx, category)
}

func (s *VocabularyService) Counts(ctx context.Context) (map[string]int, error) {
	return s.Entries.Counts(ctx)
}

// Add inserts text into category. Exact duplicates (ignoring case and
// spacing) are rejected; near duplicates are accepted and reported.
func (s *VocabularyService) Add(ctx context.Context, category, text string) (AddResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return AddResult{}, ErrEmptyEntry
	}
	if !repository.IsCategory(category) {
		return AddResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	hash := repository.ContentHash(text)
	existing, err := s.Entries.ByHash(ctx, category, hash)
	if err != nil {
		return AddResult{}, err
	}
	if existing != nil {
		return AddResult{}, fmt.Errorf("%w: %q", ErrDuplicateEntry, existing.Text)
	}

	list, err := s.Entries.List(ctx, category)
	if err != nil {
		return AddResult{}, err
	}
	var similar []string
	lower := strings.ToLower(text)
	for _, e := range list {
		if levenshtein.ComputeDistance(lower, strings.ToLower(e.Text)) <= similarDistance {
			similar = append(similar, e.Text)
		}
	}

	entry := repository.VocabularyEntry{
		ID:          uuid.NewString(),
		Category:    category,
		Text:        text,
		ContentHash: hash,
		CreatedAt:   database.Now(),
	}
	if err := s.Entries.Insert(ctx, entry); err != nil {
		return AddResult{}, fmt.Errorf("insert %s entry: %w", category, err)
	}
	return AddResult{Entry: entry, Similar: similar}, nil
}

func (s *VocabularyService) Delete(ctx context.Context, id string) error {
	removed, err := s.Entries.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("vocabulary: entry %s not found", id)
	}
	return nil
}

// ResetCategory replaces a category's entries with the built-in defaults.
func (s *VocabularyService) ResetCategory(ctx context.Context, category string) error {
	if !repository.IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if s.DB == nil {
		return fmt.Errorf("vocabulary: db not configured")
	}
	// clear and reseed together so a failed reset leaves the old entries
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.Entries.Tx(tx).DeleteCategory(ctx, category); err != nil {
			return fmt.Errorf("clear %s: %w", category, err)
		}
		return database.SeedCategoryTx(ctx, tx, category)
	})
}

// Import reads CSV rows of "category,text". Blank lines and rows starting with
// '#' are ignored. Duplicates are counted as skipped; malformed rows are
// collected in Errors and do not stop the import. progress, when set, is
// called after each row with the 1-based row number.
func (s *VocabularyService) Import(ctx context.Context, r io.Reader, progress func(row int)) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var res ImportResult
	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Errorf("row %d: %w", row, err))
		case len(rec) < 2:
			res.Errors = append(res.Errors, fmt.Errorf("row %d: want category,text", row))
		default:
			_, addErr := s.Add(ctx, strings.ToLower(strings.TrimSpace(rec[0])), rec[1])
			switch {
			case addErr == nil:
				res.Imported++
			case errors.Is(addErr, ErrDuplicateEntry):
				res.Skipped++
			default:
				res.Errors = append(res.Errors, fmt.Errorf("row %d: %w", row, addErr))
			}
		}
		if progress != nil {
			progress(row)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Export writes every entry as "category,text" CSV rows in category order.
func (s *VocabularyService) Export(ctx context.Context, w io.Writer) (int, error) {
	all, err := s.Entries.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	for _, e := range all {
		if err := cw.Write([]string{e.Category, e.Text}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(all), cw.Error()
}
