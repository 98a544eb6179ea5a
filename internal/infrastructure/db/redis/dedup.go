package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// NotificationDedup suppresses duplicate notification deliveries backed by
// Redis. Key format: notif:<task_id>:<event>:<unix_revision>, where the
// revision is the task's updated_at at mutation time — the same committed
// change never notifies twice, while a later change to the same task does.
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// IsDuplicate reports whether this task revision has already been notified.
func (d *NotificationDedup) IsDuplicate(ctx context.Context, taskID int64, event string, rev time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(taskID, event, rev)).Result()
	if err != nil {
		return false, fmt.Errorf("notification dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this task revision has been notified (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, taskID int64, event string, rev time.Time) error {
	return d.client.Set(ctx, d.key(taskID, event, rev), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(taskID int64, event string, rev time.Time) string {
	return fmt.Sprintf("notif:%d:%s:%d", taskID, event, rev.Unix())
}
