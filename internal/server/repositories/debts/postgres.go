package debts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements debt storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
	now   func() time.Time
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString, now: time.Now}
}

const debtColumns = `id, user_id, debt_type, person_name, amount, currency, description, start_date, due_date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanDebt(s scanner) (*models.Debt, error) {
	var (
		d        models.Debt
		currency sql.NullString
	)
	if err := s.Scan(&d.ID, &d.UserID, &d.Type, &d.PersonName, &d.Amount, &currency,
		&d.Description, &d.StartDate, &d.DueDate, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Currency = currency.String
	return &d, nil
}

// Create inserts a new debt owned by debt.UserID.
func (r *PostgresRepository) Create(ctx context.Context, debt *models.Debt) (*models.Debt, error) {
	query := `
		INSERT INTO debts (id, user_id, debt_type, person_name, amount, currency, description, start_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	if debt.StartDate.IsZero() {
		debt.StartDate = r.now().UTC()
	}
	id := r.newID()
	err := r.db.QueryRowContext(ctx, query,
		id, debt.UserID, debt.Type, debt.PersonName, debt.Amount, debt.Currency,
		debt.Description, debt.StartDate, debt.DueDate).Scan(&debt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	debt.ID = id
	return debt, nil
}

// Get loads one debt of userID.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2`

	d, err := scanDebt(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// List returns debts of userID, optionally filtered by type.
func (r *PostgresRepository) List(ctx context.Context, userID string, debtType *models.DebtType) ([]*models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1`
	args := []any{userID}
	if debtType != nil {
		query += ` AND debt_type = $2`
		args = append(args, *debtType)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select debts: %w", err)
	}
	defer rows.Close()

	result := []*models.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes every mutable column of debt.
func (r *PostgresRepository) Update(ctx context.Context, debt *models.Debt) error {
	query := `
		UPDATE debts SET
			debt_type = $3,
			person_name = $4,
			amount = $5,
			currency = $6,
			description = $7,
			due_date = $8
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		debt.ID, debt.UserID, debt.Type, debt.PersonName, debt.Amount, debt.Currency, debt.Description, debt.DueDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes one debt of userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM debts WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
