package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jask/promptgen/internal/settings"
)

// SettingsRepo stores the single AppSettings row (id = 1).
type SettingsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
}

// Get returns the stored settings, or settings.Defaults() when nothing has
// been saved yet.
func (r *SettingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	var s settings.AppSettings
	err := r.db.QueryRowContext(ctx, `
	SELECT dark_mode, prompt_count,
	 include_ethnicity, ethnicity,
	 include_gender, gender,
	 include_aspect_ratio, aspect_ratio,
	 include_version, version,
	 include_stylize, stylize,
	 custom_suffix
	FROM app_settings WHERE id = 1`).Scan(
		&s.DarkMode, &s.PromptCount,
		&s.IncludeEthnicity, &s.Ethnicity,
		&s.IncludeGender, &s.Gender,
		&s.IncludeAspectRatio, &s.AspectRatio,
		&s.IncludeVersion, &s.Version,
		&s.IncludeStylize, &s.Stylize,
		&s.CustomSuffix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.AppSettings{}, err
	}
	return s, nil
}

// Save upserts the settings row.
func (r *SettingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO app_settings(id, dark_mode, prompt_count,
	 include_ethnicity, ethnicity, include_gender, gender,
	 include_aspect_ratio, aspect_ratio, include_version, version,
	 include_stylize, stylize, custom_suffix, updated_at)
	VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 dark_mode=excluded.dark_mode,
	 prompt_count=excluded.prompt_count,
	 include_ethnicity=excluded.include_ethnicity,
	 ethnicity=excluded.ethnicity,
	 include_gender=excluded.include_gender,
	 gender=excluded.gender,
	 include_aspect_ratio=excluded.include_aspect_ratio,
	 aspect_ratio=excluded.aspect_ratio,
	 include_version=excluded.include_version,
	 version=excluded.version,
	 include_stylize=excluded.include_stylize,
	 stylize=excluded.stylize,
	 custom_suffix=excluded.custom_suffix,
	 updated_at=excluded.updated_at;
	`, s.DarkMode, s.PromptCount,
		s.IncludeEthnicity, s.Ethnicity, s.IncludeGender, s.Gender,
		s.IncludeAspectRatio, s.AspectRatio, s.IncludeVersion, s.Version,
		s.IncludeStylize, s.Stylize, s.CustomSuffix, r.now())
	return err
}
