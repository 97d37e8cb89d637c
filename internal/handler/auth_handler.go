package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parkspot/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,max=80"`
	Email        string `json:"email" validate:"required,email,max=80"`
	Password     string `json:"password" validate:"required"`
	VehiclePlate string `json:"vehicle_plate" validate:"required,max=16"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r RegisterRequest) registration() service.Registration {
	return service.Registration{
		Name:         r.Name,
		Email:        r.Email,
		Password:     r.Password,
		VehiclePlate: r.VehiclePlate,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	user, err := h.authService.Register(c.Request().Context(), req.registration())
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Created new User.",
		User:    toUserResponse(user),
	})
}

// Login godoc
// @Summary Check user credentials
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]*UserResponse{"user": toUserResponse(user)})
}
