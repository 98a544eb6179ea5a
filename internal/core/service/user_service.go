package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// UserService is the single write path for user role and Discord link
// changes; neither front-end touches the directory directly.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *UserService) SetRole(ctx context.Context, userID int64, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	s.logger.Info().Int64("user_id", userID).Str("role", string(role)).Msg("role updated")
	return nil
}

func (s *UserService) ListEligibleAssignees(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRoles(ctx, domain.RoleDeveloper, domain.RoleAdmin)
}

func (s *UserService) LinkDiscord(ctx context.Context, userID int64, discordID, discordUsername string) error {
	if discordID == "" || discordUsername == "" {
		return fmt.Errorf("%w: discord id and username are required", domain.ErrValidation)
	}
	if err := s.users.LinkDiscord(ctx, userID, discordID, discordUsername); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Str("discord_id", discordID).Msg("discord account linked")
	return nil
}

func (s *UserService) UnlinkDiscord(ctx context.Context, userID int64) error {
	if err := s.users.UnlinkDiscord(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Msg("discord account unlinked")
	return nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}
