package domain

// Action is a permission-gated operation on tasks.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionList
	ActionAssign
	ActionTransition
)

// Role sets per action. Kept as tables rather than scattered conditionals so
// the whole rule surface is visible (and testable) in one place.
var (
	createRoles = map[Role]struct{}{
		RoleStaff:     {},
		RoleDeveloper: {},
		RoleAdmin:     {},
	}
	assignRoles = map[Role]struct{}{
		RoleDeveloper: {},
		RoleAdmin:     {},
	}
)

// Allowed is the pure permission evaluator: given the actor's role and
// identity, the target task (nil for creation and listing) and the requested
// action, it decides allow/deny. It has no side effects and no dependency on
// any store.
//
// Transition is the only relation-sensitive rule: admins may transition any
// task, developers only tasks currently assigned to them. Assignee-eligibility
// of an assignment target is a separate constraint checked by the task
// service, not a permission.
func Allowed(role Role, actorID int64, task *Task, action Action) bool {
	switch action {
	case ActionCreate:
		_, ok := createRoles[role]
		return ok
	case ActionRead, ActionList:
		// Any authenticated identity; scope filtering is a query concern.
		return role.Valid()
	case ActionAssign:
		_, ok := assignRoles[role]
		return ok
	case ActionTransition:
		if role == RoleAdmin {
			return true
		}
		if role != RoleDeveloper {
			return false
		}
		return task != nil && task.AssignedTo(actorID)
	}
	return false
}
