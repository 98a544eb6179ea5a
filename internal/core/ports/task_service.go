package ports

import (
	"context"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// Actor is the resolved identity performing an operation.
type Actor struct {
	ID   int64
	Role domain.Role
}

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	Title       string
	Area        domain.TaskArea
	Description string
	// AssigneeID is optional. An assignee that does not resolve to a
	// developer or admin is dropped and the task is created unassigned.
	AssigneeID  *int64
	EvidenceURL string
}

// StatisticsOverview holds team-wide task counts per status.
type StatisticsOverview struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Rejected   int64 `json:"rejected"`
}

// StatisticsPersonal holds counts scoped to the requesting actor.
type StatisticsPersonal struct {
	Created   int64 `json:"created"`
	Completed int64 `json:"completed"`
}

// StatisticsLeaderboards holds the top creator and developer rankings.
type StatisticsLeaderboards struct {
	TopCreators   []LeaderboardEntry `json:"top_creators"`
	TopDevelopers []LeaderboardEntry `json:"top_developers"`
}

// Statistics is the full statistics view.
type Statistics struct {
	Overview     StatisticsOverview     `json:"overview"`
	Personal     StatisticsPersonal     `json:"personal"`
	Leaderboards StatisticsLeaderboards `json:"leaderboards"`
}

// TaskService defines the lifecycle operations both front-ends call. Every
// mutation is permission-gated, applied atomically against the task store,
// and followed by an asynchronous best-effort notification.
type TaskService interface {
	Create(ctx context.Context, actor Actor, in CreateTaskInput) (*domain.Task, error)
	Assign(ctx context.Context, actor Actor, taskID, assigneeID int64) (*domain.Task, error)
	// Transition moves the task to newStatus. reason is required when
	// newStatus is rejected and ignored otherwise.
	Transition(ctx context.Context, actor Actor, taskID int64, newStatus domain.TaskStatus, reason string) (*domain.Task, error)
	Get(ctx context.Context, actor Actor, taskID int64) (*domain.Task, error)
	List(ctx context.Context, actor Actor, filter TaskFilter) ([]*domain.Task, error)
	Statistics(ctx context.Context, actor Actor) (*Statistics, error)
}
