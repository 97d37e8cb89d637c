package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parkspot/internal/errors"
	"parkspot/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserWithSpotsResponse is a user together with the spots it holds.
type UserWithSpotsResponse struct {
	User  *UserResponse  `json:"user"`
	Spots []SpotResponse `json:"spots"`
}

// GetUser godoc
// @Summary Get user by id with its spots
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserWithSpotsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}

	user, spots, err := h.svc.GetUserSpots(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(err)
	}

	for i := range spots {
		spots[i].User = user
	}
	return c.JSON(http.StatusOK, UserWithSpotsResponse{
		User:  toUserResponse(user),
		Spots: toSpotResponses(spots),
	})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string][]UserResponse
// @Router /users/ [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string][]UserResponse{"users": toUserResponses(users)})
}
