package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// TaskHandler handles HTTP requests for task lifecycle operations.
type TaskHandler struct {
	tasks ports.TaskService
	users ports.UserService
}

func NewTaskHandler(tasks ports.TaskService, users ports.UserService) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users}
}

// Create handles POST /api/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		Title:       req.Title,
		Area:        domain.TaskArea(req.Area),
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, h.render(c, task))
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.render(c, task))
}

// List handles GET /api/tasks with optional status, area, assignee and
// created_by filters. assignee and created_by accept the literal "me";
// assignee also accepts a username.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        area        query     string  false  "Filter by area"
// @Param        assignee    query     string  false  "Filter by assignee: 'me' or a username"
// @Param        created_by  query     string  false  "Filter by creator: 'me'"
// @Success      200  {array}   taskResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := ports.TaskFilter{}

	if s := c.QueryParam("status"); s != "" {
		status := domain.TaskStatus(s)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		filter.Status = status
	}
	if a := c.QueryParam("area"); a != "" {
		area := domain.TaskArea(a)
		if !area.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid area filter")
		}
		filter.Area = area
	}

	switch assignee := c.QueryParam("assignee"); assignee {
	case "":
	case "me":
		filter.AssigneeID = &actor.ID
	default:
		user, err := h.users.GetByUsername(c.Request().Context(), assignee)
		if err != nil {
			// Unknown username matches nothing.
			return c.JSON(http.StatusOK, []taskResponse{})
		}
		filter.AssigneeID = &user.ID
	}

	if c.QueryParam("created_by") == "me" {
		filter.CreatorID = &actor.ID
	}

	tasks, err := h.tasks.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	names := map[int64]string{}
	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t, h.username(c, names, t.CreatorID), h.assigneeName(c, names, t)))
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PUT /api/tasks/:id/status.
//
// @Summary      Transition a task to a new status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Task id"
// @Param        body  body      updateStatusRequest  true  "New status; rejection_reason required when rejecting"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Transition(c.Request().Context(), actor, id, domain.TaskStatus(req.Status), req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.render(c, task))
}

// Assign handles PUT /api/tasks/:id/assign.
//
// @Summary      Assign a task to a developer
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      assignTaskRequest  true  "Assignee"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/tasks/{id}/assign [put]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Assign(c.Request().Context(), actor, id, req.AssigneeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.render(c, task))
}

func taskIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

// render joins creator/assignee usernames onto a single task response.
func (h *TaskHandler) render(c echo.Context, t *domain.Task) taskResponse {
	names := map[int64]string{}
	return toTaskResponse(t, h.username(c, names, t.CreatorID), h.assigneeName(c, names, t))
}

func (h *TaskHandler) assigneeName(c echo.Context, cache map[int64]string, t *domain.Task) string {
	if t.AssigneeID == nil {
		return ""
	}
	return h.username(c, cache, *t.AssigneeID)
}

// username resolves a user id to a username, memoized per request. Lookup
// failures degrade to an empty name rather than failing the response.
func (h *TaskHandler) username(c echo.Context, cache map[int64]string, id int64) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	if user, err := h.users.Get(c.Request().Context(), id); err == nil {
		name = user.Username
	}
	cache[id] = name
	return name
}
