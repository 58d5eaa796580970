package models

import (
	"fmt"
	"time"
)

// DebtType tells whether money is owed to the user or by the user.
type DebtType string

const (
	DebtOwedTo DebtType = "owed_to"
	DebtOwedBy DebtType = "owed_by"
)

// ParseDebtType validates s as a DebtType.
func ParseDebtType(s string) (DebtType, error) {
	switch t := DebtType(s); t {
	case DebtOwedTo, DebtOwedBy:
		return t, nil
	default:
		return "", fmt.Errorf("unknown debt type %q", s)
	}
}

// Debt is one record of money owed between the user and a counterparty.
// Amount is in minor-less units of Currency (whole numbers only).
type Debt struct {
	ID          string
	UserID      string
	Type        DebtType
	PersonName  string
	Amount      int64
	Currency    string
	Description *string
	StartDate   time.Time
	DueDate     *time.Time
	CreatedAt   time.Time
}

// CurrencySummary aggregates a user's debts in one currency.
// Balance is TotalOwedTo - TotalOwedBy.
type CurrencySummary struct {
	Currency    string
	TotalOwedTo int64
	TotalOwedBy int64
	Balance     int64
}
