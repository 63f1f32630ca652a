package handler

import (
	"strconv"

	"shared-wallet-service/internal/adapter/http/dto"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"
	"shared-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user directory endpoints.
type UserHandler struct {
	userSvc ports.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc ports.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toUserResponse(user))
}

// Resolve handles GET /api/v1/users/resolve?name=.
func (h *UserHandler) Resolve(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, apperror.Validation("name query parameter is required"))
		return
	}

	id, err := h.userSvc.ResolveIDByName(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ResolveUserResponse{UserID: id})
}

// List handles GET /api/v1/users?prefix=&limit=&cursor=.
func (h *UserHandler) List(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.userSvc.List(c.Request.Context(), c.Query("prefix"), c.Query("cursor"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.UserListResponse{
		Users:   make([]dto.UserSummaryResponse, 0, len(page.Users)),
		HasMore: page.HasMore,
	}
	if page.HasMore {
		out.Cursor = page.Cursor
	}
	for _, u := range page.Users {
		out.Users = append(out.Users, toUserSummary(u))
	}
	response.OK(c, out)
}

// parseLimit parses an optional limit query parameter. Empty means
// service default; anything non-numeric or negative is rejected.
func parseLimit(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return 0, apperror.Validation("limit must be a non-negative integer")
	}
	return limit, nil
}
