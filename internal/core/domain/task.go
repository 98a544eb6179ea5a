package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusProgress  TaskStatus = "progress"
	StatusCompleted TaskStatus = "completed"
	StatusRejected  TaskStatus = "rejected"
)

// transitionTargets defines the states reachable after creation. pending is
// the initial state only and can never be re-entered; rejected is re-enterable.
var transitionTargets = map[TaskStatus]struct{}{
	StatusProgress:  {},
	StatusCompleted: {},
	StatusRejected:  {},
}

// CanTransitionTo reports whether next is a valid transition target.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	_, ok := transitionTargets[next]
	return ok
}

// Valid reports whether s is a known status value.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// TaskArea is the fixed set of development areas a task belongs to.
type TaskArea string

const (
	AreaScript   TaskArea = "script"
	AreaCars     TaskArea = "cars"
	AreaClothing TaskArea = "clothing"
	AreaMLO      TaskArea = "mlo"
)

// Valid reports whether a is a known area value.
func (a TaskArea) Valid() bool {
	switch a {
	case AreaScript, AreaCars, AreaClothing, AreaMLO:
		return true
	}
	return false
}

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidAssignee = errors.New("assignee must have developer or admin role")
)

// Task is the core aggregate. The task store is its sole owner; every mutation
// goes through the task service and bumps UpdatedAt.
type Task struct {
	ID              int64      `json:"id" bson:"_id"`
	Title           string     `json:"title" bson:"title"`
	Area            TaskArea   `json:"area" bson:"area"`
	Description     string     `json:"description" bson:"description"`
	Status          TaskStatus `json:"status" bson:"status"`
	CreatorID       int64      `json:"created_by_id" bson:"created_by_id"`
	AssigneeID      *int64     `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	EvidenceURL     string     `json:"evidence_url,omitempty" bson:"evidence_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// Assigned reports whether the task has an assignee.
func (t *Task) Assigned() bool {
	return t.AssigneeID != nil
}

// AssignedTo reports whether the task is currently assigned to userID.
func (t *Task) AssignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
