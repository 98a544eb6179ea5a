package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/unmatched/taskboard/internal/core/domain"
)

func newUserServiceFixture() (*UserService, *stubUserRepo) {
	users := newStubUserRepo(
		&domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin},
		&domain.User{ID: 2, Username: "bob", Role: domain.RoleDeveloper},
		&domain.User{ID: 3, Username: "dave", Role: domain.RoleStaff},
		&domain.User{ID: 4, Username: "eve", Role: domain.RoleNone},
	)
	return NewUserService(users, zerolog.Nop()), users
}

func TestSetRole(t *testing.T) {
	svc, users := newUserServiceFixture()
	ctx := context.Background()

	if err := svc.SetRole(ctx, 4, domain.RoleDeveloper); err != nil {
		t.Fatalf("set role: %v", err)
	}
	u, _ := users.FindByID(ctx, 4)
	if u.Role != domain.RoleDeveloper {
		t.Errorf("expected developer, got %s", u.Role)
	}

	if err := svc.SetRole(ctx, 4, "superuser"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.SetRole(ctx, 99, domain.RoleStaff); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListEligibleAssignees(t *testing.T) {
	svc, _ := newUserServiceFixture()

	eligible, err := svc.ListEligibleAssignees(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(eligible) != 2 {
		t.Fatalf("expected admin and developer, got %d users", len(eligible))
	}
	for _, u := range eligible {
		if !u.Role.EligibleAssignee() {
			t.Errorf("user %s with role %s is not an eligible assignee", u.Username, u.Role)
		}
	}
}

func TestLinkDiscordEnforcesUniqueness(t *testing.T) {
	svc, users := newUserServiceFixture()
	ctx := context.Background()

	if err := svc.LinkDiscord(ctx, 2, "discord-1", "bob#1"); err != nil {
		t.Fatalf("link: %v", err)
	}
	u, _ := users.FindByID(ctx, 2)
	if !u.DiscordLinked() || u.DiscordUsername != "bob#1" {
		t.Fatalf("link not persisted: %+v", u)
	}

	// The same Discord account cannot be linked to a second user.
	if err := svc.LinkDiscord(ctx, 3, "discord-1", "dave#1"); !errors.Is(err, domain.ErrDiscordLinked) {
		t.Fatalf("expected ErrDiscordLinked, got %v", err)
	}

	if err := svc.LinkDiscord(ctx, 3, "", "dave#1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUnlinkDiscord(t *testing.T) {
	svc, users := newUserServiceFixture()
	ctx := context.Background()

	if err := svc.LinkDiscord(ctx, 2, "discord-1", "bob#1"); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := svc.UnlinkDiscord(ctx, 2); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	u, _ := users.FindByID(ctx, 2)
	if u.DiscordLinked() {
		t.Error("expected discord link removed")
	}

	// Freeing the id allows relinking elsewhere.
	if err := svc.LinkDiscord(ctx, 3, "discord-1", "dave#1"); err != nil {
		t.Fatalf("relink: %v", err)
	}
}
