package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"parkspot/internal/auth"
	"parkspot/internal/config"
	"parkspot/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *slog.Logger,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	spotHandler *handler.SpotHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Users
	e.GET("/users/", userHandler.ListUsers)
	e.GET("/user/:id", userHandler.GetUser)
	e.POST("/user/login/", authHandler.Login)
	e.POST("/user/", authHandler.Register)

	// Spots
	e.GET("/spots/", spotHandler.ListSpots)
	e.GET("/spot/:id", spotHandler.GetSpot)
	e.POST("/spot/update/", spotHandler.Reserve)
	e.POST("/spot/checkIn/", spotHandler.CheckIn)

	// Lot administration, open unless ADMIN_JWT_SECRET is set
	adminOnly := auth.AdminMiddleware(cfg.AdminJWTSecret)
	e.POST("/spot/", spotHandler.CreateSpot, adminOnly)
	e.GET("/spot/new_empty/", spotHandler.CreateEmptySpot, adminOnly)
	e.POST("/spot/occupancy/", spotHandler.SetOccupancy, adminOnly)
}

// RequestLogger logs one structured line per request.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			log.LogAttrs(context.Background(), level, "request completed", attrs...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
