package handler

import (
	"time"

	"github.com/unmatched/taskboard/internal/core/domain"
)

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Area        string `json:"area" validate:"required,oneof=script cars clothing mlo"`
	Description string `json:"description" validate:"required"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
	EvidenceURL string `json:"evidence_url,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=progress completed rejected"`
	Reason string `json:"rejection_reason,omitempty"`
}

type assignTaskRequest struct {
	AssigneeID int64 `json:"assignee_id" validate:"required"`
}

// taskResponse is the task view both front-ends render. Usernames are joined
// in so clients need no second lookup.
type taskResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Area             string `json:"area"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	CreatedByID      int64  `json:"created_by_id"`
	CreatedBy        string `json:"created_by_username,omitempty"`
	AssigneeID       *int64 `json:"assignee_id,omitempty"`
	AssigneeUsername string `json:"assignee_username,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	EvidenceURL      string `json:"evidence_url,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func toTaskResponse(t *domain.Task, creatorName, assigneeName string) taskResponse {
	return taskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Area:             string(t.Area),
		Description:      t.Description,
		Status:           string(t.Status),
		CreatedByID:      t.CreatorID,
		CreatedBy:        creatorName,
		AssigneeID:       t.AssigneeID,
		AssigneeUsername: assigneeName,
		RejectionReason:  t.RejectionReason,
		EvidenceURL:      t.EvidenceURL,
		CreatedAt:        t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
