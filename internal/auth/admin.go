package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "parkspot/internal/errors"
)

// AdminRole is the role claim an operator token must carry.
const AdminRole = "admin"

// AdminClaims represents the JWT claims of an operator token. Tokens are minted
// by the operator tooling outside this service; we only verify them.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var (
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errNotAdmin                = errors.New("token does not carry the admin role")
)

// ParseAdminToken validates an HS256 token signed with secret and returns its
// claims when the role is admin.
func ParseAdminToken(secret []byte, tokenString string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse admin token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != AdminRole {
		return nil, errNotAdmin
	}
	return token, nil
}

// AdminMiddleware guards the lot administration routes. With an empty secret
// the routes stay open, which is how the lot has always been run.
func AdminMiddleware(secret string) echo.MiddlewareFunc {
	if secret == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	key := []byte(secret)
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return ParseAdminToken(key, auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAdminTokenInvalid)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
		},
	})
}
