package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unmatched/taskboard/internal/api/metrics"
	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

const leaderboardSize = 10

// TaskService is the task lifecycle engine. Every mutation runs the
// permission evaluator first, applies exactly one atomic write against the
// task store, and hands the resulting snapshot to the notifier. Notification
// delivery never affects the outcome of the mutation.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, notifier: notifier, logger: logger}
}

// Create makes a new task in status pending with the actor as its creator.
// An assignee that does not resolve to a developer or admin is dropped and
// the task starts unassigned.
func (s *TaskService) Create(ctx context.Context, actor ports.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
	if !domain.Allowed(actor.Role, actor.ID, nil, domain.ActionCreate) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if !in.Area.Valid() {
		return nil, fmt.Errorf("%w: unknown area %q", domain.ErrValidation, in.Area)
	}

	var assigneeID *int64
	if in.AssigneeID != nil {
		assignee, err := s.users.FindByID(ctx, *in.AssigneeID)
		if err == nil && assignee.Role.EligibleAssignee() {
			assigneeID = in.AssigneeID
		} else {
			s.logger.Debug().Int64("assignee_id", *in.AssigneeID).Msg("ineligible assignee dropped at creation")
		}
	}

	id, err := s.tasks.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          id,
		Title:       in.Title,
		Area:        in.Area,
		Description: in.Description,
		Status:      domain.StatusPending,
		CreatorID:   actor.ID,
		AssigneeID:  assigneeID,
		EvidenceURL: in.EvidenceURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		s.logger.Error().Err(err).Int64("task_id", id).Msg("failed to insert task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Area)).Inc()
	s.logger.Info().
		Int64("task_id", task.ID).
		Str("area", string(task.Area)).
		Int64("creator_id", actor.ID).
		Msg("task created")

	s.notify(ctx, ports.EventCreated, task)
	return task, nil
}

// Assign replaces the task's assignee. The target must resolve to a user
// with developer or admin role; anything else is an assignee-constraint
// violation, reported before any mutation.
func (s *TaskService) Assign(ctx context.Context, actor ports.Actor, taskID, assigneeID int64) (*domain.Task, error) {
	if !domain.Allowed(actor.Role, actor.ID, nil, domain.ActionAssign) {
		return nil, domain.ErrForbidden
	}

	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, domain.ErrInvalidAssignee
	}
	if !assignee.Role.EligibleAssignee() {
		return nil, domain.ErrInvalidAssignee
	}

	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateAssignee(ctx, taskID, assigneeID, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Int64("task_id", taskID).Msg("failed to update assignee")
		return nil, fmt.Errorf("assign task: %w", err)
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("assignee_id", assigneeID).
		Int64("actor_id", actor.ID).
		Msg("task assigned")

	s.notify(ctx, ports.EventAssigned, task)
	return task, nil
}

// Transition moves the task to newStatus. Admins may transition any task,
// developers only their own assignments. pending is unreachable after
// creation; rejecting requires a non-empty reason, and leaving rejected
// clears the stored reason in the same atomic write.
func (s *TaskService) Transition(ctx context.Context, actor ports.Actor, taskID int64, newStatus domain.TaskStatus, reason string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(actor.Role, actor.ID, task, domain.ActionTransition) {
		return nil, domain.ErrForbidden
	}
	if !task.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: cannot transition to %q", domain.ErrValidation, newStatus)
	}

	reason = strings.TrimSpace(reason)
	if newStatus == domain.StatusRejected {
		if reason == "" {
			return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
		}
	} else {
		reason = ""
	}

	updated, err := s.tasks.UpdateStatus(ctx, taskID, newStatus, reason, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Int64("task_id", taskID).Str("status", string(newStatus)).Msg("failed to update status")
		return nil, fmt.Errorf("transition task: %w", err)
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(newStatus)).Inc()
	s.logger.Info().
		Int64("task_id", taskID).
		Str("status", string(newStatus)).
		Int64("actor_id", actor.ID).
		Msg("task transitioned")

	s.notify(ctx, ports.EventStatusChanged, updated)
	return updated, nil
}

// Get returns a snapshot of a single task.
func (s *TaskService) Get(ctx context.Context, actor ports.Actor, taskID int64) (*domain.Task, error) {
	if !domain.Allowed(actor.Role, actor.ID, nil, domain.ActionRead) {
		return nil, domain.ErrForbidden
	}
	return s.tasks.FindByID(ctx, taskID)
}

// List returns tasks matching filter, newest first.
func (s *TaskService) List(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
	if !domain.Allowed(actor.Role, actor.ID, nil, domain.ActionList) {
		return nil, domain.ErrForbidden
	}
	return s.tasks.List(ctx, filter)
}

// Statistics returns team-wide counts, the actor's personal counts, and the
// creator/developer leaderboards.
func (s *TaskService) Statistics(ctx context.Context, actor ports.Actor) (*ports.Statistics, error) {
	if !domain.Allowed(actor.Role, actor.ID, nil, domain.ActionRead) {
		return nil, domain.ErrForbidden
	}

	byStatus, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	created, err := s.tasks.CountCreatedBy(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	completed, err := s.tasks.CountCompletedBy(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	topCreators, err := s.tasks.TopCreators(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	topDevelopers, err := s.tasks.TopDevelopers(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	return &ports.Statistics{
		Overview: ports.StatisticsOverview{
			Total:      total,
			Pending:    byStatus[domain.StatusPending],
			InProgress: byStatus[domain.StatusProgress],
			Completed:  byStatus[domain.StatusCompleted],
			Rejected:   byStatus[domain.StatusRejected],
		},
		Personal: ports.StatisticsPersonal{
			Created:   created,
			Completed: completed,
		},
		Leaderboards: ports.StatisticsLeaderboards{
			TopCreators:   topCreators,
			TopDevelopers: topDevelopers,
		},
	}, nil
}

// notify resolves display identities and enqueues a notification with an
// immutable snapshot. Lookups are best-effort: a missing user degrades the
// message, it never fails the mutation.
func (s *TaskService) notify(ctx context.Context, event ports.EventKind, task *domain.Task) {
	n := ports.Notification{Event: event, Task: *task}

	if creator, err := s.users.FindByID(ctx, task.CreatorID); err == nil {
		n.CreatorName = creator.Username
		n.CreatorDiscordID = creator.DiscordID
	} else {
		s.logger.Warn().Err(err).Int64("user_id", task.CreatorID).Msg("creator lookup failed for notification")
	}
	if task.AssigneeID != nil {
		if assignee, err := s.users.FindByID(ctx, *task.AssigneeID); err == nil {
			n.AssigneeName = assignee.Username
			n.AssigneeDiscordID = assignee.DiscordID
		} else {
			s.logger.Warn().Err(err).Int64("user_id", *task.AssigneeID).Msg("assignee lookup failed for notification")
		}
	}

	s.notifier.Enqueue(n)
}
