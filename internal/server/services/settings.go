package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
)

// SettingsPatch updates only the non-nil fields.
type SettingsPatch struct {
	DefaultCurrency      *string
	ReminderTime         *string
	ReminderEnabled      *bool
	NotificationsEnabled *bool
	Theme                *string
}

type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{db: db, repomanager: m}
}

// Get returns the user's settings, storing the defaults first if none exist.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.Setting, error) {
	repo := s.repomanager.Settings(s.db)
	st, err := repo.Get(ctx, userID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}
	st, err = repo.Upsert(ctx, models.DefaultSetting(userID))
	if err != nil {
		return nil, fmt.Errorf("error creating settings: %w", err)
	}
	return st, nil
}

// Update applies p on top of the current (or default) settings.
func (s *SettingsService) Update(ctx context.Context, userID string, p SettingsPatch) (*models.Setting, error) {
	repo := s.repomanager.Settings(s.db)
	st, err := repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error loading settings: %w", err)
		}
		st = models.DefaultSetting(userID)
	}

	if p.DefaultCurrency != nil {
		st.DefaultCurrency = normalizeCurrency(*p.DefaultCurrency)
	}
	if p.ReminderTime != nil {
		st.ReminderTime = p.ReminderTime
	}
	if p.ReminderEnabled != nil {
		st.ReminderEnabled = *p.ReminderEnabled
	}
	if p.NotificationsEnabled != nil {
		st.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.Theme != nil {
		st.Theme = *p.Theme
	}

	st, err = repo.Upsert(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}
	return st, nil
}
