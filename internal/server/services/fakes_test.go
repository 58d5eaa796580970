package services

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/debts"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/settings"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return ts
}

// countingHasher records how many verifications ran.
type countingHasher struct {
	auth.PasswordHasher
	mu       sync.Mutex
	verifies int
}

func newCountingHasher() *countingHasher {
	return &countingHasher{PasswordHasher: auth.NewBcryptHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Verify(plaintext, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.PasswordHasher.Verify(plaintext, hash)
}

func (h *countingHasher) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

// --- users ---

type fakeUsersRepo struct {
	mu        sync.Mutex
	byName    map[string]*models.User
	getErr    error
	createErr error
	seq       int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) add(t *testing.T, h auth.PasswordHasher, name, password string) *models.User {
	t.Helper()
	hash, err := h.Hash(password)
	require.NoError(t, err)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	u := &models.User{ID: "u-" + strconv.Itoa(f.seq), UserName: name, PasswordHash: hash, CreatedAt: testNow}
	f.byName[name] = u
	return u
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.seq++
	u.ID = "u-" + strconv.Itoa(f.seq)
	u.CreatedAt = testNow
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- debts ---

type fakeDebtsRepo struct {
	mu      sync.Mutex
	rows    map[string]*models.Debt
	seq     int
	listErr error
	lists   int
}

func newFakeDebtsRepo() *fakeDebtsRepo {
	return &fakeDebtsRepo{rows: map[string]*models.Debt{}}
}

func (f *fakeDebtsRepo) Create(_ context.Context, d *models.Debt) (*models.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = "d-" + strconv.Itoa(f.seq)
	if d.StartDate.IsZero() {
		d.StartDate = testNow.Add(time.Duration(f.seq) * time.Minute)
	}
	d.CreatedAt = d.StartDate
	cp := *d
	f.rows[d.ID] = &cp
	return d, nil
}

func (f *fakeDebtsRepo) Get(_ context.Context, userID, id string) (*models.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDebtsRepo) List(_ context.Context, userID string, typ *models.DebtType) ([]*models.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Debt{}
	for _, d := range f.rows {
		if d.UserID != userID || (typ != nil && d.Type != *typ) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (f *fakeDebtsRepo) Update(_ context.Context, d *models.Debt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[d.ID]
	if !ok || cur.UserID != d.UserID {
		return common.ErrorNotFound
	}
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDebtsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

// --- settings ---

type fakeSettingsRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Setting
	getErr    error
	upsertErr error
	upserts   int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[string]*models.Setting{}}
}

func (f *fakeSettingsRepo) Get(_ context.Context, userID string) (*models.Setting, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *models.Setting) (*models.Setting, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if cur, ok := f.rows[s.UserID]; ok {
		s.ID = cur.ID
	} else if s.ID == "" {
		s.ID = "s-" + s.UserID
	}
	cp := *s
	f.rows[s.UserID] = &cp
	return s, nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	d *fakeDebtsRepo
	s *fakeSettingsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), d: newFakeDebtsRepo(), s: newFakeSettingsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) RunInTx(ctx context.Context, db *sql.DB, fn dbx.TxFunc) error {
	return dbx.WithTx(ctx, db, nil, fn)
}
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return m.u }
func (m *fakeRepoManager) Debts(dbx.DBTX) debts.Repository       { return m.d }
func (m *fakeRepoManager) Settings(dbx.DBTX) settings.Repository { return m.s }
