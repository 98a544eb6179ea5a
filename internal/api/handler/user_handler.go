package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// UserHandler handles directory endpoints: user listing, role management,
// eligible-assignee lookup and Discord identity linking.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=none staff developer admin"`
}

type linkDiscordRequest struct {
	DiscordID       string `json:"discord_id" validate:"required"`
	DiscordUsername string `json:"discord_username" validate:"required"`
}

type discordStatusResponse struct {
	Linked          bool   `json:"linked"`
	DiscordID       string `json:"discord_id,omitempty"`
	DiscordUsername string `json:"discord_username,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List handles GET /api/users (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole handles PUT /api/users/:id/role (admin only).
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.SetRole(c.Request().Context(), id, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

// Developers handles GET /api/developers — the eligible-assignee list.
//
// @Summary      List eligible assignees (developers and admins)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/developers [get]
func (h *UserHandler) Developers(c echo.Context) error {
	users, err := h.users.ListEligibleAssignees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// LinkDiscord handles POST /api/discord/link for the authenticated user.
//
// @Summary      Link a Discord account
// @Tags         discord
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      linkDiscordRequest  true  "Discord identity"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/discord/link [post]
func (h *UserHandler) LinkDiscord(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req linkDiscordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.LinkDiscord(c.Request().Context(), actor.ID, req.DiscordID, req.DiscordUsername); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "discord account linked"})
}

// DiscordStatus handles GET /api/discord/status for the authenticated user.
//
// @Summary      Get Discord link status
// @Tags         discord
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  discordStatusResponse
// @Router       /api/discord/status [get]
func (h *UserHandler) DiscordStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, discordStatusResponse{
		Linked:          user.DiscordLinked(),
		DiscordID:       user.DiscordID,
		DiscordUsername: user.DiscordUsername,
	})
}

// UnlinkDiscord handles DELETE /api/discord/link for the authenticated user.
//
// @Summary      Unlink the Discord account
// @Tags         discord
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /api/discord/link [delete]
func (h *UserHandler) UnlinkDiscord(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.users.UnlinkDiscord(c.Request().Context(), actor.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "discord account unlinked"})
}
