package ports

import (
	"context"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// AuthService handles account registration and login. New accounts start
// with role none until an admin grants one.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login accepts username or email and returns a signed token plus the
	// authenticated user.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}
