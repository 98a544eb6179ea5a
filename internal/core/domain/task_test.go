package domain

import "testing"

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusProgress, StatusCompleted, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s must be valid", s)
		}
	}
	for _, s := range []TaskStatus{"", "done", "PENDING"} {
		if s.Valid() {
			t.Errorf("%q must be invalid", s)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	// pending is the initial state only; every live status can reach the
	// other working states, including re-entering rejected.
	for _, from := range []TaskStatus{StatusPending, StatusProgress, StatusCompleted, StatusRejected} {
		if from.CanTransitionTo(StatusPending) {
			t.Errorf("%s -> pending must be impossible", from)
		}
		for _, to := range []TaskStatus{StatusProgress, StatusCompleted, StatusRejected} {
			if !from.CanTransitionTo(to) {
				t.Errorf("%s -> %s must be allowed", from, to)
			}
		}
		if from.CanTransitionTo("archived") {
			t.Errorf("%s -> archived must be impossible", from)
		}
	}
}

func TestTaskAreaValid(t *testing.T) {
	for _, a := range []TaskArea{AreaScript, AreaCars, AreaClothing, AreaMLO} {
		if !a.Valid() {
			t.Errorf("%s must be valid", a)
		}
	}
	if TaskArea("weapons").Valid() {
		t.Error("weapons must be invalid")
	}
}

func TestTaskAssignmentHelpers(t *testing.T) {
	id := int64(3)
	task := &Task{ID: 1, AssigneeID: &id}

	if !task.Assigned() || !task.AssignedTo(3) {
		t.Error("expected task assigned to user 3")
	}
	if task.AssignedTo(4) {
		t.Error("task is not assigned to user 4")
	}

	unassigned := &Task{ID: 2}
	if unassigned.Assigned() || unassigned.AssignedTo(3) {
		t.Error("expected unassigned task")
	}
}

func TestRoleHelpers(t *testing.T) {
	if !RoleDeveloper.EligibleAssignee() || !RoleAdmin.EligibleAssignee() {
		t.Error("developer and admin must be eligible assignees")
	}
	if RoleStaff.EligibleAssignee() || RoleNone.EligibleAssignee() {
		t.Error("staff and none must not be eligible assignees")
	}
	if Role("ghost").Valid() {
		t.Error("unknown role must be invalid")
	}
}
