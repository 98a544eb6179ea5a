package ports

import (
	"context"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// UserService covers directory operations outside the task lifecycle: role
// management, Discord identity linking, and lookups for the front-ends.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// SetRole changes a user's role. Only admins may call it; the handler
	// enforces that gate, the service validates the role value.
	SetRole(ctx context.Context, userID int64, role domain.Role) error
	// ListEligibleAssignees returns users with developer or admin role.
	ListEligibleAssignees(ctx context.Context) ([]*domain.User, error)
	LinkDiscord(ctx context.Context, userID int64, discordID, discordUsername string) error
	UnlinkDiscord(ctx context.Context, userID int64) error
	Get(ctx context.Context, userID int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
