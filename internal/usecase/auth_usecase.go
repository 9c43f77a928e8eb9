package usecase

import (
	"context"
	"errors"
	"time"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	repo   repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthUsecase(repo repository.UserRepository, secret string) *AuthUsecase {
	return &AuthUsecase{repo: repo, secret: []byte(secret), ttl: 24 * time.Hour}
}

func (u *AuthUsecase) Register(ctx context.Context, username, name, password, role string) (*model.User, error) {
	// 1. Hashing Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = model.RoleOperator
	}

	// 2. Simpan ke Database
	user := &model.User{
		Username: username,
		Name:     name,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	// 1. Cari user berdasarkan username
	user, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	// 2. Bandingkan Password (Input vs Hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// 3. Jika benar, buat Token JWT
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(u.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(u.secret)
	if err != nil {
		return "", nil, err
	}
	return t, user, nil
}
