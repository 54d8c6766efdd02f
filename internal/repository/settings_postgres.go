package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookadmin/internal/domain"
)

type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{
		db: db,
	}
}

// Get returns domain.ErrNotFound until settings are saved for the first time.
func (r *SettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.QueryRow(ctx, `SELECT data, updated_at FROM settings WHERE id = 1`).Scan(&settings, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("настройки не сохранены")
		}
		return nil, fmt.Errorf("ошибка получения настроек: %w", err)
	}

	return &settings, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	query := `
		INSERT INTO settings (id, data, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, settings, settings.UpdatedAt); err != nil {
		return fmt.Errorf("ошибка сохранения настроек: %w", err)
	}

	return nil
}
