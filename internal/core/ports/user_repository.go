package ports

import (
	"context"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// UserRepository is the user directory: identity, role, and the optional
// Discord identity link. It is the single choke point for user writes.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned id.
	// Returns domain.ErrUserExists when username or email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByLogin matches either username or email.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	// LinkDiscord sets the Discord identity pair. Returns
	// domain.ErrDiscordLinked when discordID is already held by another user.
	LinkDiscord(ctx context.Context, id int64, discordID, discordUsername string) error
	UnlinkDiscord(ctx context.Context, id int64) error
	ListByRoles(ctx context.Context, roles ...domain.Role) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
