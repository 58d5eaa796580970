package httpapi

import (
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,max=4096"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type registerRequest struct {
	Username  string  `json:"username" validate:"required,max=150"`
	Password  string  `json:"password" validate:"required,max=72"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type debtCreateRequest struct {
	DebtType    string     `json:"debt_type" validate:"required,oneof=owed_to owed_by"`
	PersonName  string     `json:"person_name" validate:"required,max=100"`
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3,alpha"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date"`
}

type debtUpdateRequest struct {
	DebtType    *string    `json:"debt_type" validate:"omitempty,oneof=owed_to owed_by"`
	PersonName  *string    `json:"person_name" validate:"omitempty,min=1,max=100"`
	Amount      *int64     `json:"amount" validate:"omitempty,gt=0"`
	Currency    *string    `json:"currency" validate:"omitempty,len=3,alpha"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date"`
}

type debtResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DebtType    string     `json:"debt_type"`
	PersonName  string     `json:"person_name"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

func newDebtResponse(d *models.Debt) debtResponse {
	return debtResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		DebtType:    string(d.Type),
		PersonName:  d.PersonName,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Description: d.Description,
		StartDate:   d.StartDate,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
	}
}

type settingsRequest struct {
	DefaultCurrency      *string `json:"default_currency" validate:"omitempty,len=3,alpha"`
	ReminderTime         *string `json:"reminder_time" validate:"omitempty,datetime=15:04"`
	ReminderEnabled      *bool   `json:"reminder_enabled"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	Theme                *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

type settingsResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"user_id"`
	DefaultCurrency      string  `json:"default_currency"`
	ReminderTime         *string `json:"reminder_time"`
	ReminderEnabled      bool    `json:"reminder_enabled"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	Theme                string  `json:"theme"`
}

func newSettingsResponse(s *models.Setting) settingsResponse {
	return settingsResponse{
		ID:                   s.ID,
		UserID:               s.UserID,
		DefaultCurrency:      s.DefaultCurrency,
		ReminderTime:         s.ReminderTime,
		ReminderEnabled:      s.ReminderEnabled,
		NotificationsEnabled: s.NotificationsEnabled,
		Theme:                s.Theme,
	}
}

type currencySummary struct {
	Currency    string `json:"currency"`
	TotalOwedTo int64  `json:"total_owed_to"`
	TotalOwedBy int64  `json:"total_owed_by"`
	Balance     int64  `json:"balance"`
}

type summaryResponse struct {
	Summary []currencySummary `json:"summary"`
}
