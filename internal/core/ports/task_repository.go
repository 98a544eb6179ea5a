package ports

import (
	"context"
	"time"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// TaskFilter carries the optional list-query parameters. Zero values mean
// "no filter". Results are always ordered most-recently-created first.
type TaskFilter struct {
	Status     domain.TaskStatus
	Area       domain.TaskArea
	AssigneeID *int64
	CreatorID  *int64
}

// LeaderboardEntry is one row of a statistics leaderboard.
type LeaderboardEntry struct {
	Username string `json:"username" bson:"username"`
	Count    int64  `json:"count" bson:"count"`
}

// TaskRepository is the task store. The task service is the only caller that
// mutates through it. UpdateStatus and UpdateAssignee are single-document
// atomic read-modify-writes: concurrent calls on the same task id resolve to
// a deterministic last-writer outcome and both callers get a definite result.
type TaskRepository interface {
	// NextID returns the next monotonically increasing task id.
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// UpdateStatus atomically sets status, sets or clears the rejection
	// reason (non-empty iff status is rejected), bumps updated_at, and
	// returns the updated snapshot. Returns domain.ErrTaskNotFound when
	// the task does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, reason string, updatedAt time.Time) (*domain.Task, error)
	// UpdateAssignee atomically replaces the assignee (no history kept),
	// bumps updated_at, and returns the updated snapshot.
	UpdateAssignee(ctx context.Context, id int64, assigneeID int64, updatedAt time.Time) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Statistics queries.
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error)
	CountCreatedBy(ctx context.Context, userID int64) (int64, error)
	CountCompletedBy(ctx context.Context, userID int64) (int64, error)
	TopCreators(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	TopDevelopers(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
