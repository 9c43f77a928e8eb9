package usecase

import (
	"context"
	"testing"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]model.User
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	u.ID = uint(len(f.users) + 1)
	f.users[u.Username] = *u
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func TestAuthUsecase(t *testing.T) {
	ctx := context.Background()
	u := NewAuthUsecase(&fakeUsers{users: map[string]model.User{}}, "rahasia")

	user, err := u.Register(ctx, "admin", "Administrator", "admin123", model.RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", user.Password)

	_, err = u.Register(ctx, "admin", "Lagi", "x", "")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, _, err = u.Login(ctx, "admin", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = u.Login(ctx, "tidak-ada", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, logged, err := u.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", logged.Username)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("rahasia"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, model.RoleAdmin, claims["role"])
	assert.Equal(t, "admin", claims["username"])
}
