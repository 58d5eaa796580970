package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Setting, error) {
	query :=
		`SELECT id, user_id, default_currency, reminder_time, reminder_enabled, notifications_enabled, theme
		 FROM settings WHERE user_id = $1`

	s := &models.Setting{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.DefaultCurrency, &s.ReminderTime, &s.ReminderEnabled, &s.NotificationsEnabled, &s.Theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.Setting) (*models.Setting, error) {
	query :=
		`INSERT INTO settings (id, user_id, default_currency, reminder_time, reminder_enabled, notifications_enabled, theme)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id)
		 DO UPDATE SET
			default_currency = EXCLUDED.default_currency,
			reminder_time = EXCLUDED.reminder_time,
			reminder_enabled = EXCLUDED.reminder_enabled,
			notifications_enabled = EXCLUDED.notifications_enabled,
			theme = EXCLUDED.theme
		 RETURNING id`

	id := s.ID
	if id == "" {
		id = r.newID()
	}
	err := r.db.QueryRowContext(ctx, query,
		id, s.UserID, s.DefaultCurrency, s.ReminderTime, s.ReminderEnabled, s.NotificationsEnabled, s.Theme).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
