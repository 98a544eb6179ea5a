package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	mu        sync.Mutex
	seq       int64
	tasks     map[int64]*domain.Task
	insertErr error
	updateErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *stubTaskRepo) NextID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *stubTaskRepo) Insert(_ context.Context, t *domain.Task) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// UpdateStatus mirrors the Mongo repo: one atomic read-modify-write under a
// single lock, returning the updated snapshot.
func (r *stubTaskRepo) UpdateStatus(_ context.Context, id int64, status domain.TaskStatus, reason string, updatedAt time.Time) (*domain.Task, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.RejectionReason = reason
	t.UpdatedAt = updatedAt
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) UpdateAssignee(_ context.Context, id int64, assigneeID int64, updatedAt time.Time) (*domain.Task, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.AssigneeID = &assigneeID
	t.UpdatedAt = updatedAt
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Task
	for _, t := range r.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Area != "" && t.Area != f.Area {
			continue
		}
		if f.AssigneeID != nil && !t.AssignedTo(*f.AssigneeID) {
			continue
		}
		if f.CreatorID != nil && t.CreatorID != *f.CreatorID {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	return matched, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context) (map[domain.TaskStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.TaskStatus]int64)
	for _, t := range r.tasks {
		counts[t.Status]++
	}
	return counts, nil
}

func (r *stubTaskRepo) CountCreatedBy(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tasks {
		if t.CreatorID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) CountCompletedBy(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tasks {
		if t.AssignedTo(userID) && t.Status == domain.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) TopCreators(_ context.Context, _ int) ([]ports.LeaderboardEntry, error) {
	return nil, nil
}

func (r *stubTaskRepo) TopDevelopers(_ context.Context, _ int) ([]ports.LeaderboardEntry, error) {
	return nil, nil
}

type stubUserRepo struct {
	users map[int64]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	m := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &stubUserRepo{users: m}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	u.ID = int64(len(r.users) + 1)
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByDiscordID(_ context.Context, discordID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.DiscordID == discordID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) LinkDiscord(_ context.Context, id int64, discordID, discordUsername string) error {
	for _, u := range r.users {
		if u.DiscordID == discordID && u.ID != id {
			return domain.ErrDiscordLinked
		}
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DiscordID = discordID
	u.DiscordUsername = discordUsername
	return nil
}

func (r *stubUserRepo) UnlinkDiscord(_ context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DiscordID = ""
	u.DiscordUsername = ""
	return nil
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles ...domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				clone := *u
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

type stubNotifier struct {
	mu     sync.Mutex
	events []ports.Notification
}

func (n *stubNotifier) Enqueue(notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification)
}

func (n *stubNotifier) last() (ports.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return ports.Notification{}, false
	}
	return n.events[len(n.events)-1], true
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	admin      = &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin, DiscordID: "d-alice"}
	developer  = &domain.User{ID: 2, Username: "bob", Role: domain.RoleDeveloper, DiscordID: "d-bob"}
	developer2 = &domain.User{ID: 3, Username: "carol", Role: domain.RoleDeveloper}
	staffer    = &domain.User{ID: 4, Username: "dave", Role: domain.RoleStaff}
	newbie     = &domain.User{ID: 5, Username: "eve", Role: domain.RoleNone}
)

func newTestService() (*TaskService, *stubTaskRepo, *stubNotifier) {
	tasks := newStubTaskRepo()
	users := newStubUserRepo(admin, developer, developer2, staffer, newbie)
	notifier := &stubNotifier{}
	svc := NewTaskService(tasks, users, notifier, zerolog.Nop())
	return svc, tasks, notifier
}

func actor(u *domain.User) ports.Actor {
	return ports.Actor{ID: u.ID, Role: u.Role}
}

func mustCreate(t *testing.T, svc *TaskService, by *domain.User, assignee *int64) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), actor(by), ports.CreateTaskInput{
		Title:       "fix vehicle handling",
		Area:        domain.AreaCars,
		Description: "handling.meta values are off",
		AssigneeID:  assignee,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateRequiresStaffRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), actor(newbie), ports.CreateTaskInput{
		Title: "t", Area: domain.AreaScript, Description: "d",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []ports.CreateTaskInput{
		{Title: "", Area: domain.AreaScript, Description: "d"},
		{Title: "t", Area: domain.AreaScript, Description: "  "},
		{Title: "t", Area: "weapons", Description: "d"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), actor(staffer), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestCreateStartsPendingWithCreator(t *testing.T) {
	svc, _, notifier := newTestService()

	task := mustCreate(t, svc, staffer, nil)

	if task.ID != 1 {
		t.Errorf("expected id 1, got %d", task.ID)
	}
	if task.Status != domain.StatusPending {
		t.Errorf("expected pending, got %s", task.Status)
	}
	if task.CreatorID != staffer.ID {
		t.Errorf("expected creator %d, got %d", staffer.ID, task.CreatorID)
	}
	if task.Assigned() {
		t.Error("expected unassigned task")
	}

	n, ok := notifier.last()
	if !ok || n.Event != ports.EventCreated {
		t.Fatalf("expected created notification, got %+v", n)
	}
	if n.CreatorName != staffer.Username {
		t.Errorf("expected creator name %q, got %q", staffer.Username, n.CreatorName)
	}
}

func TestCreateDropsIneligibleAssignee(t *testing.T) {
	svc, _, _ := newTestService()

	// Staff role cannot be assigned; the task is created unassigned.
	task := mustCreate(t, svc, admin, &staffer.ID)
	if task.Assigned() {
		t.Errorf("expected assignee dropped, got %v", *task.AssigneeID)
	}

	// Unknown user id behaves the same.
	missing := int64(999)
	task = mustCreate(t, svc, admin, &missing)
	if task.Assigned() {
		t.Error("expected unknown assignee dropped")
	}
}

func TestCreateKeepsEligibleAssignee(t *testing.T) {
	svc, _, notifier := newTestService()

	task := mustCreate(t, svc, admin, &developer.ID)
	if !task.AssignedTo(developer.ID) {
		t.Fatal("expected task assigned to developer")
	}

	n, _ := notifier.last()
	if n.AssigneeDiscordID != developer.DiscordID {
		t.Errorf("expected assignee discord id resolved, got %q", n.AssigneeDiscordID)
	}
}

// ---------------------------------------------------------------------------
// Assign
// ---------------------------------------------------------------------------

func TestAssignRequiresDeveloperRole(t *testing.T) {
	svc, _, _ := newTestService()
	task := mustCreate(t, svc, admin, nil)

	_, err := svc.Assign(context.Background(), actor(staffer), task.ID, developer.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignRejectsIneligibleTarget(t *testing.T) {
	svc, tasks, _ := newTestService()
	task := mustCreate(t, svc, admin, nil)

	for _, target := range []int64{staffer.ID, newbie.ID, 999} {
		_, err := svc.Assign(context.Background(), actor(admin), task.ID, target)
		if !errors.Is(err, domain.ErrInvalidAssignee) {
			t.Errorf("target %d: expected ErrInvalidAssignee, got %v", target, err)
		}
	}

	// The task itself is untouched.
	stored, _ := tasks.FindByID(context.Background(), task.ID)
	if stored.Assigned() {
		t.Error("expected task to remain unassigned")
	}
}

func TestAssignUnknownTask(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Assign(context.Background(), actor(admin), 42, developer.ID)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestAssignReplacesAssigneeAndNotifies(t *testing.T) {
	svc, _, notifier := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)

	updated, err := svc.Assign(context.Background(), actor(admin), task.ID, developer2.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !updated.AssignedTo(developer2.ID) {
		t.Fatal("expected reassignment to developer2")
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) && !updated.UpdatedAt.Equal(task.UpdatedAt) {
		t.Error("expected updated_at bumped")
	}

	n, _ := notifier.last()
	if n.Event != ports.EventAssigned {
		t.Fatalf("expected assigned notification, got %s", n.Event)
	}
	if n.AssigneeName != developer2.Username {
		t.Errorf("expected assignee name %q, got %q", developer2.Username, n.AssigneeName)
	}
}

// ---------------------------------------------------------------------------
// Transition
// ---------------------------------------------------------------------------

func TestTransitionForbiddenForNonAssignee(t *testing.T) {
	svc, tasks, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)

	before, _ := tasks.FindByID(context.Background(), task.ID)

	// A different developer may not transition, even to the current state.
	_, err := svc.Transition(context.Background(), actor(developer2), task.ID, domain.StatusCompleted, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Staff may never transition.
	_, err = svc.Transition(context.Background(), actor(staffer), task.ID, domain.StatusProgress, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	after, _ := tasks.FindByID(context.Background(), task.ID)
	if after.Status != before.Status || after.RejectionReason != before.RejectionReason || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("denied transition must leave the task unchanged")
	}
}

func TestTransitionRejectsPendingTarget(t *testing.T) {
	svc, _, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)

	for _, target := range []domain.TaskStatus{domain.StatusPending, "bogus"} {
		_, err := svc.Transition(context.Background(), actor(admin), task.ID, target, "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("target %q: expected ErrValidation, got %v", target, err)
		}
	}
}

func TestTransitionRejectedRequiresReason(t *testing.T) {
	svc, tasks, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)

	for _, reason := range []string{"", "   "} {
		_, err := svc.Transition(context.Background(), actor(developer), task.ID, domain.StatusRejected, reason)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	}

	stored, _ := tasks.FindByID(context.Background(), task.ID)
	if stored.Status != domain.StatusPending {
		t.Error("failed rejection must not change status")
	}
}

func TestTransitionReasonInvariant(t *testing.T) {
	svc, _, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)
	ctx := context.Background()

	rejected, err := svc.Transition(ctx, actor(developer), task.ID, domain.StatusRejected, "blocked by design change")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.RejectionReason != "blocked by design change" {
		t.Errorf("expected reason stored, got %q", rejected.RejectionReason)
	}

	// Leaving rejected clears the reason in the same update.
	reopened, err := svc.Transition(ctx, actor(developer), task.ID, domain.StatusProgress, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != domain.StatusProgress || reopened.RejectionReason != "" {
		t.Errorf("expected progress with cleared reason, got %s %q", reopened.Status, reopened.RejectionReason)
	}

	// Reason supplied for a non-rejection is discarded.
	completed, err := svc.Transition(ctx, actor(developer), task.ID, domain.StatusCompleted, "stray reason")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.RejectionReason != "" {
		t.Errorf("expected no reason on completed, got %q", completed.RejectionReason)
	}
}

func TestTransitionNotifiesStatusChange(t *testing.T) {
	svc, _, notifier := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)

	if _, err := svc.Transition(context.Background(), actor(developer), task.ID, domain.StatusCompleted, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	n, _ := notifier.last()
	if n.Event != ports.EventStatusChanged {
		t.Fatalf("expected status_changed notification, got %s", n.Event)
	}
	if n.Task.Status != domain.StatusCompleted {
		t.Errorf("snapshot carries %s, want completed", n.Task.Status)
	}
	if n.CreatorDiscordID != admin.DiscordID {
		t.Errorf("expected creator discord id resolved, got %q", n.CreatorDiscordID)
	}
}

// Two equally-permitted actors racing on the same task: the task ends in
// exactly one of the two requested states and both callers get a definite
// result.
func TestTransitionConcurrentLastWriterWins(t *testing.T) {
	svc, tasks, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	targets := []domain.TaskStatus{domain.StatusProgress, domain.StatusCompleted}
	actors := []ports.Actor{actor(admin), actor(developer)}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Transition(ctx, actors[i], task.ID, targets[i], "")
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		if err != nil {
			t.Fatalf("caller %d got error: %v", i, err)
		}
	}

	final, _ := tasks.FindByID(ctx, task.ID)
	if final.Status != domain.StatusProgress && final.Status != domain.StatusCompleted {
		t.Fatalf("task ended in %s, want one of the requested states", final.Status)
	}
	if final.RejectionReason != "" {
		t.Errorf("reason must stay empty, got %q", final.RejectionReason)
	}
}

// ---------------------------------------------------------------------------
// Get / List / Statistics
// ---------------------------------------------------------------------------

func TestGetIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	task := mustCreate(t, svc, admin, &developer.ID)
	ctx := context.Background()

	first, err := svc.Get(ctx, actor(newbie), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := svc.Get(ctx, actor(newbie), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *first != *second {
		t.Errorf("snapshots differ: %+v vs %+v", first, second)
	}
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t1 := mustCreate(t, svc, admin, &developer.ID)
	mustCreate(t, svc, staffer, nil)
	if _, err := svc.Transition(ctx, actor(developer), t1.ID, domain.StatusProgress, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	inProgress, err := svc.List(ctx, actor(staffer), ports.TaskFilter{Status: domain.StatusProgress})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].ID != t1.ID {
		t.Fatalf("expected only task %d in progress, got %d results", t1.ID, len(inProgress))
	}

	mine, err := svc.List(ctx, actor(developer), ports.TaskFilter{AssigneeID: &developer.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 assigned task, got %d", len(mine))
	}
}

func TestStatistics(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t1 := mustCreate(t, svc, admin, &developer.ID)
	mustCreate(t, svc, admin, nil)
	if _, err := svc.Transition(ctx, actor(developer), t1.ID, domain.StatusCompleted, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	stats, err := svc.Statistics(ctx, actor(admin))
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Overview.Total != 2 || stats.Overview.Completed != 1 || stats.Overview.Pending != 1 {
		t.Errorf("unexpected overview: %+v", stats.Overview)
	}
	if stats.Personal.Created != 2 {
		t.Errorf("expected 2 created by admin, got %d", stats.Personal.Created)
	}
}

// ---------------------------------------------------------------------------
// End-to-end lifecycle scenario
// ---------------------------------------------------------------------------

func TestLifecycleScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Admin creates an unassigned script task.
	task, err := svc.Create(ctx, actor(admin), ports.CreateTaskInput{
		Title:       "rework job loop",
		Area:        domain.AreaScript,
		Description: "job loop stalls on relog",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != domain.StatusPending || task.Assigned() {
		t.Fatalf("fresh task: %+v", task)
	}

	// Developer gets assigned.
	task, err = svc.Assign(ctx, actor(admin), task.ID, developer.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !task.AssignedTo(developer.ID) {
		t.Fatal("expected developer assigned")
	}

	// Assignee starts work.
	task, err = svc.Transition(ctx, actor(developer), task.ID, domain.StatusProgress, "")
	if err != nil || task.Status != domain.StatusProgress {
		t.Fatalf("progress: %v (%+v)", err, task)
	}

	// A different developer may not complete it.
	if _, err := svc.Transition(ctx, actor(developer2), task.ID, domain.StatusCompleted, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-assignee, got %v", err)
	}

	// Rejecting without a reason fails.
	if _, err := svc.Transition(ctx, actor(developer), task.ID, domain.StatusRejected, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing reason, got %v", err)
	}

	// Rejecting with a reason succeeds.
	task, err = svc.Transition(ctx, actor(developer), task.ID, domain.StatusRejected, "blocked by design change")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if task.Status != domain.StatusRejected || task.RejectionReason != "blocked by design change" {
		t.Fatalf("rejected task: %+v", task)
	}
}
