package debtctl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubPasswords replaces readPassword with a function returning answers in
// order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errors.New("no more input")
		}
		a := answers[i]
		i++
		return []byte(a), nil
	}
}

type fakeRegistrar struct {
	got services.RegisterInput
	err error
}

func (f *fakeRegistrar) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u-1", UserName: in.UserName}, nil
}

func TestGetPassword(t *testing.T) {
	stubPasswords(t, "s3cret")

	var out bytes.Buffer
	pw, err := GetPassword(&out, "Enter password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetConfirmedPassword(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		stubPasswords(t, "pw", "pw")
		pw, err := GetConfirmedPassword(&bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "pw", pw)
	})

	t.Run("mismatch", func(t *testing.T) {
		stubPasswords(t, "pw", "other")
		_, err := GetConfirmedPassword(&bytes.Buffer{})
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("empty", func(t *testing.T) {
		stubPasswords(t, "")
		_, err := GetConfirmedPassword(&bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("read error", func(t *testing.T) {
		stubPasswords(t)
		_, err := GetConfirmedPassword(&bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestHash(t *testing.T) {
	stubPasswords(t, "correct horse")

	var out bytes.Buffer
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, Hash(&out, hasher))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	hashed := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.True(t, hasher.Verify("correct horse", hashed))
}

func TestHash_Empty(t *testing.T) {
	stubPasswords(t, "")
	assert.ErrorIs(t, Hash(&bytes.Buffer{}, auth.NewBcryptHasher(bcrypt.MinCost)), ErrEmptyPassword)
}

func TestRegister(t *testing.T) {
	stubPasswords(t, "pw", "pw")
	email := "a@example.com"
	r := &fakeRegistrar{}

	var out bytes.Buffer
	user, err := Register(context.Background(), &out, r, "alice", &email)
	require.NoError(t, err)

	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "alice", r.got.UserName)
	assert.Equal(t, "pw", r.got.Password)
	assert.Equal(t, &email, r.got.Email)
	assert.Contains(t, out.String(), "User alice created (id u-1)")
}

func TestRegister_Errors(t *testing.T) {
	t.Run("no user name", func(t *testing.T) {
		_, err := Register(context.Background(), &bytes.Buffer{}, &fakeRegistrar{}, "", nil)
		assert.Error(t, err)
	})

	t.Run("taken", func(t *testing.T) {
		stubPasswords(t, "pw", "pw")
		_, err := Register(context.Background(), &bytes.Buffer{}, &fakeRegistrar{err: common.ErrUsernameTaken}, "bob", nil)
		assert.ErrorIs(t, err, common.ErrUsernameTaken)
	})
}
