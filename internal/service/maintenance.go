package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jask/promptgen/internal/database"
)

// MaintenanceService houses destructive actions exposed by the CLI.
type MaintenanceService struct {
	DB     *sql.DB
	Logger *slog.Logger
}

func (s *MaintenanceService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Reset wipes the vocabulary and the stored settings, then reseeds the
// default vocabulary. The schema is left intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"vocabulary_entries", "app_settings"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	// reclaiming space is best effort; the reset itself has committed
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil {
		s.logger().Warn("maintenance: vacuum failed", "err", err)
	}
	return database.SeedDefaults(ctx, s.DB)
}
