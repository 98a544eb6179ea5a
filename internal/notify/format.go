package notify

import (
	"fmt"
	"strings"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// channelMessage renders the broadcast text for a notification.
func channelMessage(n ports.Notification) string {
	t := n.Task
	switch n.Event {
	case ports.EventCreated:
		return fmt.Sprintf("📋 New task #%d [%s] %s — created by %s, assigned to %s\n%s",
			t.ID, areaLabel(t.Area), t.Title, orUnknown(n.CreatorName), orUnassigned(n.AssigneeName), truncate(t.Description, 1000))
	case ports.EventAssigned:
		return fmt.Sprintf("👥 Task #%d [%s] %s assigned to %s",
			t.ID, areaLabel(t.Area), t.Title, orUnassigned(n.AssigneeName))
	case ports.EventStatusChanged:
		switch t.Status {
		case domain.StatusCompleted:
			msg := fmt.Sprintf("✅ Task #%d %s completed by %s", t.ID, t.Title, orUnknown(n.AssigneeName))
			if n.CreatorDiscordID != "" {
				msg += fmt.Sprintf("\n🎉 <@%s> your task %q has been completed!", n.CreatorDiscordID, t.Title)
			}
			return msg
		case domain.StatusRejected:
			msg := fmt.Sprintf("❌ Task #%d %s rejected by %s\nReason: %s",
				t.ID, t.Title, orUnknown(n.AssigneeName), t.RejectionReason)
			if n.CreatorDiscordID != "" {
				msg += fmt.Sprintf("\n📢 <@%s> your task %q has been rejected.", n.CreatorDiscordID, t.Title)
			}
			return msg
		default:
			return fmt.Sprintf("🔄 Task #%d %s is now in progress (%s)", t.ID, t.Title, orUnknown(n.AssigneeName))
		}
	}
	return fmt.Sprintf("Task #%d %s: %s", t.ID, t.Title, t.Status)
}

// assignmentDM is the direct message sent to a newly assigned developer.
func assignmentDM(n ports.Notification) string {
	t := n.Task
	return fmt.Sprintf("🔔 You have been assigned task #%d [%s] %s\n%s",
		t.ID, areaLabel(t.Area), t.Title, truncate(t.Description, 500))
}

// outcomeDM is the direct message sent to the creator when their task is
// completed or rejected.
func outcomeDM(n ports.Notification) string {
	t := n.Task
	if t.Status == domain.StatusRejected {
		return fmt.Sprintf("📢 Your task #%d %q was rejected.\nReason: %s", t.ID, t.Title, t.RejectionReason)
	}
	return fmt.Sprintf("🎉 Your task #%d %q was completed by %s.", t.ID, t.Title, orUnknown(n.AssigneeName))
}

func areaLabel(a domain.TaskArea) string {
	return strings.ToUpper(string(a))
}

func orUnassigned(name string) string {
	if name == "" {
		return "Unassigned"
	}
	return name
}

func orUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
