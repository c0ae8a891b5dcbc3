package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/promptgen/internal/database/repository"
)

// defaultVocabulary seeds fresh databases, keyed by category.
var defaultVocabulary = map[string][]string{
	repository.CategorySubject: {
		"a lone traveler",
		"an old lighthouse keeper",
		"a street musician",
		"a fox spirit",
		"a tea ceremony host",
		"a cyberpunk courier",
	},
	repository.CategoryScene: {
		"rain-soaked neon alley",
		"misty bamboo forest",
		"quiet seaside village at dawn",
		"abandoned greenhouse",
		"rooftop garden above the city",
	},
	repository.CategoryStyle: {
		"cinematic photography",
		"watercolor illustration",
		"ukiyo-e woodblock print",
		"studio ghibli inspired",
		"35mm film still",
	},
	repository.CategoryLighting: {
		"golden hour",
		"soft overcast light",
		"volumetric fog",
		"rim lighting",
	},
	repository.CategoryCamera: {
		"wide angle",
		"close-up portrait",
		"low angle shot",
		"85mm lens, shallow depth of field",
	},
}

// DefaultVocabulary returns a copy of the seed list for category.
func DefaultVocabulary(category string) []string {
	return append([]string(nil), defaultVocabulary[category]...)
}

// SeedDefaults fills the vocabulary for new databases.
// It is idempotent and safe to run on every startup: nothing is written once
// any entry exists.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewVocabularyRepo(db)
	counts, err := repo.Counts(ctx)
	if err != nil {
		return err
	}
	for _, n := range counts {
		if n > 0 {
			return nil
		}
	}
	for _, c := range repository.Categories() {
		if err := SeedCategory(ctx, db, c); err != nil {
			return err
		}
	}
	return nil
}

// SeedCategory inserts the default entries of one category inside a single
// transaction. Entries that already exist are skipped.
func SeedCategory(ctx context.Context, db *sql.DB, category string) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		return SeedCategoryTx(ctx, tx, category)
	})
}

// SeedCategoryTx is SeedCategory on a caller-owned transaction, so a reset
// can clear and reseed a category atomically.
func SeedCategoryTx(ctx context.Context, tx *sql.Tx, category string) error {
	now := Now()
	for _, text := range defaultVocabulary[category] {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("vocab:"+category+":"+text)).String()
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO vocabulary_entries(id, category, text, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`, id, category, text, repository.ContentHash(text), now); err != nil {
			return fmt.Errorf("seed %s: %w", category, err)
		}
	}
	return nil
}
