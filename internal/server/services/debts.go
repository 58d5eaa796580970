package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
)

// DebtInput is the payload of a new debt. An empty Currency means
// common.DefaultCurrency.
type DebtInput struct {
	Type        string
	PersonName  string
	Amount      int64
	Currency    string
	Description *string
	DueDate     *time.Time
}

// DebtPatch updates only the non-nil fields.
type DebtPatch struct {
	Type        *string
	PersonName  *string
	Amount      *int64
	Currency    *string
	Description *string
	DueDate     *time.Time
}

// DebtService manages the debts of a single authenticated user at a time.
type DebtService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDebtService(db *sql.DB, m repomanager.RepositoryManager) *DebtService {
	return &DebtService{db: db, repomanager: m}
}

func (s *DebtService) Create(ctx context.Context, userID string, in DebtInput) (*models.Debt, error) {
	typ, err := models.ParseDebtType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if err := validateDebtFields(in.PersonName, in.Amount); err != nil {
		return nil, err
	}

	d := &models.Debt{
		UserID:      userID,
		Type:        typ,
		PersonName:  in.PersonName,
		Amount:      in.Amount,
		Currency:    normalizeCurrency(in.Currency),
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	created, err := s.repomanager.Debts(s.db).Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("error creating debt: %w", err)
	}
	return created, nil
}

// List returns the user's debts newest first. An unrecognised debtType
// matches nothing and yields an empty list; an empty one lists everything.
func (s *DebtService) List(ctx context.Context, userID, debtType string) ([]*models.Debt, error) {
	var filter *models.DebtType
	if debtType != "" {
		typ, err := models.ParseDebtType(debtType)
		if err != nil {
			return []*models.Debt{}, nil
		}
		filter = &typ
	}
	list, err := s.repomanager.Debts(s.db).List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing debts: %w", err)
	}
	return list, nil
}

func (s *DebtService) Get(ctx context.Context, userID, id string) (*models.Debt, error) {
	return s.repomanager.Debts(s.db).Get(ctx, userID, id)
}

func (s *DebtService) Update(ctx context.Context, userID, id string, p DebtPatch) (*models.Debt, error) {
	repo := s.repomanager.Debts(s.db)
	d, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if p.Type != nil {
		typ, err := models.ParseDebtType(*p.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		d.Type = typ
	}
	if p.PersonName != nil {
		d.PersonName = *p.PersonName
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Currency != nil {
		d.Currency = normalizeCurrency(*p.Currency)
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.DueDate != nil {
		d.DueDate = p.DueDate
	}
	if err := validateDebtFields(d.PersonName, d.Amount); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DebtService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Debts(s.db).Delete(ctx, userID, id)
}

// Summary aggregates all of the user's debts per currency.
func (s *DebtService) Summary(ctx context.Context, userID string) ([]models.CurrencySummary, error) {
	list, err := s.repomanager.Debts(s.db).List(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("error listing debts: %w", err)
	}
	return Summarize(list), nil
}

// Summarize totals debts per currency code, sorted by code. Debts without a
// currency count as common.DefaultCurrency.
func Summarize(list []*models.Debt) []models.CurrencySummary {
	byCode := map[string]*models.CurrencySummary{}
	for _, d := range list {
		code := d.Currency
		if code == "" {
			code = common.DefaultCurrency
		}
		cs, ok := byCode[code]
		if !ok {
			cs = &models.CurrencySummary{Currency: code}
			byCode[code] = cs
		}
		switch d.Type {
		case models.DebtOwedTo:
			cs.TotalOwedTo += d.Amount
		default:
			cs.TotalOwedBy += d.Amount
		}
	}

	out := make([]models.CurrencySummary, 0, len(byCode))
	for _, cs := range byCode {
		cs.Balance = cs.TotalOwedTo - cs.TotalOwedBy
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

func validateDebtFields(personName string, amount int64) error {
	if strings.TrimSpace(personName) == "" {
		return fmt.Errorf("%w: person_name is required", common.ErrorValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", common.ErrorValidation)
	}
	return nil
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return common.DefaultCurrency
	}
	return code
}
