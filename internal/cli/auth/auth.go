package auth

import (
	"context"
	"errors"

	"Vineyard/internal/cli/api"
)

// Роли пользователей backend.
const (
	RoleHead    = "head"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Verifier проверяет токен у удалённого сервера.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// IdentityFetcher возвращает личность владельца токена.
type IdentityFetcher interface {
	Me(ctx context.Context, token string) (*api.Identity, error)
}

// Navigator выполняет клиентский переход по пути.
type Navigator interface {
	Navigate(path string) error
}

var (
	_ Verifier        = (*api.Client)(nil)
	_ IdentityFetcher = (*api.Client)(nil)
)

// Verify reports whether the authority accepts the token.
func Verify(ctx context.Context, v Verifier, token string) (bool, error) {
	return v.VerifyToken(ctx, token)
}

// NavigateIfRole navigates to target when the identity behind token has the
// expected role. Empty role means RoleStudent. A non-2xx identity answer is
// not an error: nothing happens and (false, nil) is returned.
func NavigateIfRole(ctx context.Context, f IdentityFetcher, nav Navigator, token, target, role string) (bool, error) {
	if role == "" {
		role = RoleStudent
	}
	id, err := f.Me(ctx, token)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			return false, nil
		}
		return false, err
	}
	if id.Role != role {
		return false, nil
	}
	if err := nav.Navigate(target); err != nil {
		return false, err
	}
	return true, nil
}
