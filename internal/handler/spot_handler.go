package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parkspot/internal/errors"
	"parkspot/internal/service"
)

// SpotHandler handles spot endpoints.
type SpotHandler struct {
	reservationService service.ReservationService
}

// NewSpotHandler creates a new spot handler.
func NewSpotHandler(reservationService service.ReservationService) *SpotHandler {
	return &SpotHandler{reservationService: reservationService}
}

// SpotUserRef identifies the requesting user by email.
type SpotUserRef struct {
	Email string `json:"email" validate:"required,email"`
}

// ReserveRequest represents a reservation attempt.
type ReserveRequest struct {
	ID            uint        `json:"id" validate:"required"`
	HoursReserved int         `json:"hours_reserved" validate:"required,gt=0,lte=720"`
	User          SpotUserRef `json:"user"`
}

// CheckInRequest represents a check-in attempt. hours_reserved is accepted for
// compatibility with existing clients and ignored.
type CheckInRequest struct {
	ID            uint        `json:"id" validate:"required"`
	HoursReserved int         `json:"hours_reserved"`
	User          SpotUserRef `json:"user"`
}

// CreateSpotRequest represents an administrative spot creation with an owner.
type CreateSpotRequest struct {
	User RegisterRequest `json:"user"`
}

// OccupancyRequest reports whether a vehicle is parked on a spot.
type OccupancyRequest struct {
	ID         uint `json:"id" validate:"required"`
	IsOccupied *int `json:"is_occupied" validate:"required,oneof=0 1"`
}

// ListSpots godoc
// @Summary List spots
// @Tags spots
// @Produce json
// @Success 200 {object} map[string][]SpotResponse
// @Router /spots/ [get]
func (h *SpotHandler) ListSpots(c echo.Context) error {
	spots, err := h.reservationService.ListSpots(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string][]SpotResponse{"spots": toSpotResponses(spots)})
}

// GetSpot godoc
// @Summary Get spot by id
// @Tags spots
// @Produce json
// @Param id path int true "Spot ID"
// @Success 200 {object} map[string]SpotResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spot/{id} [get]
func (h *SpotHandler) GetSpot(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid spot id",
			Code:  "INVALID_ID",
		})
	}

	spot, err := h.reservationService.GetSpot(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]*SpotResponse{"spot": toSpotResponse(spot)})
}

// Reserve godoc
// @Summary Reserve a spot
// @Tags spots
// @Accept json
// @Produce json
// @Param request body ReserveRequest true "Reservation"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /spot/update/ [post]
func (h *SpotHandler) Reserve(c echo.Context) error {
	var req ReserveRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	spot, err := h.reservationService.Reserve(c.Request().Context(), req.ID, req.User.Email, req.HoursReserved)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Updated spot successfully.",
		Spot:    toSpotResponse(spot),
	})
}

// CheckIn godoc
// @Summary Check in to a reserved spot
// @Tags spots
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Check-in"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /spot/checkIn/ [post]
func (h *SpotHandler) CheckIn(c echo.Context) error {
	var req CheckInRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	spot, err := h.reservationService.CheckIn(c.Request().Context(), req.ID, req.User.Email)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Checked in spot successfully.",
		Spot:    toSpotResponse(spot),
	})
}

// CreateSpot godoc
// @Summary Create a spot attached to an owner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSpotRequest true "Owner"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /spot/ [post]
func (h *SpotHandler) CreateSpot(c echo.Context) error {
	var req CreateSpotRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	spot, err := h.reservationService.CreateSpotWithOwner(c.Request().Context(), req.User.registration())
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Created new Spot.",
		Spot:    toSpotResponse(spot),
	})
}

// CreateEmptySpot godoc
// @Summary Create an empty spot
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Router /spot/new_empty/ [get]
func (h *SpotHandler) CreateEmptySpot(c echo.Context) error {
	spot, err := h.reservationService.CreateEmptySpot(c.Request().Context())
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Created an Empty Spot successfully.",
		Spot:    toSpotResponse(spot),
	})
}

// SetOccupancy godoc
// @Summary Record whether a vehicle is parked on a spot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OccupancyRequest true "Occupancy"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /spot/occupancy/ [post]
func (h *SpotHandler) SetOccupancy(c echo.Context) error {
	var req OccupancyRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(err)
	}

	spot, err := h.reservationService.SetOccupancy(c.Request().Context(), req.ID, *req.IsOccupied == 1)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Updated spot occupancy.",
		Spot:    toSpotResponse(spot),
	})
}
