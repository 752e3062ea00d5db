package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and strips it from the response", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo)

		user, err := svc.Register(ctx, RegisterInput{
			FirstName:   "Ana",
			LastName:    "Lopez",
			Email:       "ana@example.com",
			PhoneNumber: "111",
			Birthdate:   "1999-05-20",
			Password:    "hunter22",
		})
		require.NoError(t, err)
		require.Empty(t, user.PasswordHash)

		stored := repo.byEmail["ana@example.com"]
		require.NotEqual(t, "hunter22", stored.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErr = repositories.ErrUserEmailConflict
		svc := NewAuthService(repo)

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "x"})
		require.ErrorIs(t, err, ErrUserEmailConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeUserRepo()
	repo.add(&models.User{ID: 1, Email: "ana@example.com", PasswordHash: string(hash)})
	svc := NewAuthService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "hunter22"})
		require.NoError(t, err)
		require.Equal(t, 1, user.ID)
		require.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "hunter22"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
