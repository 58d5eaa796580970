package models

import "github.com/dmitrijs2005/debtmanager/internal/common"

// DefaultSetting is the row created for a user on registration or on the
// first read of missing settings.
func DefaultSetting(userID string) *Setting {
	return &Setting{
		UserID:               userID,
		DefaultCurrency:      common.DefaultCurrency,
		NotificationsEnabled: true,
		Theme:                "light",
	}
}
