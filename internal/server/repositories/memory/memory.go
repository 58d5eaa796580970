// Package memory keeps users, debts and settings in process memory. It backs
// the server when no database DSN is configured and the handler tests.
// Data is lost on restart and RunInTx gives no rollback.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/debts"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/settings"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/users"
	"github.com/google/uuid"
)

// RepositoryManager vends the in-memory repositories; the DBTX arguments
// are ignored.
type RepositoryManager struct {
	users    *Users
	debts    *Debts
	settings *Settings
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		users:    &Users{byID: map[string]*models.User{}},
		debts:    &Debts{rows: map[string]*models.Debt{}, now: time.Now},
		settings: &Settings{rows: map[string]*models.Setting{}},
	}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// RunInTx runs fn directly.
func (m *RepositoryManager) RunInTx(ctx context.Context, _ *sql.DB, fn dbx.TxFunc) error {
	return fn(ctx, nil)
}

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository       { return m.users }
func (m *RepositoryManager) Debts(dbx.DBTX) debts.Repository       { return m.debts }
func (m *RepositoryManager) Settings(dbx.DBTX) settings.Repository { return m.settings }

// Users is an in-memory users.Repository.
type Users struct {
	mu   sync.RWMutex
	byID map[string]*models.User
}

func (r *Users) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.UserName == u.UserName {
			return nil, common.ErrorAlreadyExists
		}
		if u.Email != nil && cur.Email != nil && *cur.Email == *u.Email {
			return nil, fmt.Errorf("%w: users_email_key", common.ErrorAlreadyExists)
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byID[u.ID] = &cp
	return u, nil
}

func (r *Users) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == login })
}

func (r *Users) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *Users) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Debts is an in-memory debts.Repository.
type Debts struct {
	mu   sync.RWMutex
	rows map[string]*models.Debt
	now  func() time.Time
}

func (r *Debts) Create(_ context.Context, d *models.Debt) (*models.Debt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt = r.now().UTC()
	if d.StartDate.IsZero() {
		d.StartDate = d.CreatedAt
	}
	cp := *d
	r.rows[d.ID] = &cp
	return d, nil
}

func (r *Debts) Get(_ context.Context, userID, id string) (*models.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.rows[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *Debts) List(_ context.Context, userID string, typ *models.DebtType) ([]*models.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Debt{}
	for _, d := range r.rows {
		if d.UserID != userID || (typ != nil && d.Type != *typ) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *Debts) Update(_ context.Context, d *models.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[d.ID]
	if !ok || cur.UserID != d.UserID {
		return common.ErrorNotFound
	}
	cp := *d
	cp.StartDate, cp.CreatedAt = cur.StartDate, cur.CreatedAt
	r.rows[d.ID] = &cp
	return nil
}

func (r *Debts) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

// Settings is an in-memory settings.Repository keyed by user id.
type Settings struct {
	mu   sync.RWMutex
	rows map[string]*models.Setting
}

func (r *Settings) Get(_ context.Context, userID string) (*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *Settings) Upsert(_ context.Context, s *models.Setting) (*models.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[s.UserID]; ok {
		s.ID = cur.ID
	} else if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	r.rows[s.UserID] = &cp
	return s, nil
}
