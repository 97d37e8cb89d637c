package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"parkspot/internal/errors"
	"parkspot/internal/model"
)

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	VehiclePlate string `json:"vehicle_plate"`
}

// SpotResponse is the public view of a spot. Flags are rendered as 0/1 to stay
// compatible with existing clients.
type SpotResponse struct {
	ID            uint          `json:"id"`
	IsReserved    int           `json:"is_reserved"`
	IsOccupied    int           `json:"is_occupied"`
	IsCheckedIn   int           `json:"is_checked_in"`
	User          *UserResponse `json:"user"`
	ReservedAt    time.Time     `json:"reserved_at"`
	ReservedDueTo time.Time     `json:"reserved_due_to"`
	HoursReserved int           `json:"hours_reserved"`
}

// MessageResponse pairs a human readable message with the affected resource.
type MessageResponse struct {
	Message string        `json:"message"`
	Spot    *SpotResponse `json:"spot,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}

func toUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		VehiclePlate: u.VehiclePlate,
	}
}

func toUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out
}

func toSpotResponse(s *model.Spot) *SpotResponse {
	return &SpotResponse{
		ID:            s.ID,
		IsReserved:    flag(s.IsReserved),
		IsOccupied:    flag(s.IsOccupied),
		IsCheckedIn:   flag(s.IsCheckedIn),
		User:          toUserResponse(s.User),
		ReservedAt:    s.ReservedAt,
		ReservedDueTo: s.ReservedDueTo,
		HoursReserved: s.HoursReserved,
	}
}

func toSpotResponses(spots []model.Spot) []SpotResponse {
	out := make([]SpotResponse, 0, len(spots))
	for i := range spots {
		out = append(out, *toSpotResponse(&spots[i]))
	}
	return out
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// bindJSON decodes and validates the request body. An absent body or one that
// decodes to an empty value is reported as missing input.
func bindJSON(c echo.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	if isEmptyJSON(body) {
		return errors.ErrMissingInput
	}

	c.Request().Body = io.NopCloser(bytes.NewReader(body))
	c.Request().ContentLength = int64(len(body))
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return fmt.Errorf("%w: malformed json", errors.ErrValidation)
	}
	if err := c.Validate(dst); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}

// isEmptyJSON reports whether body is blank or a JSON value with no content:
// null, {}, [], "", 0 or false. Malformed JSON is not empty.
func isEmptyJSON(body []byte) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	}
	return false
}

// respondError converts a service error into the standard error payload.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
