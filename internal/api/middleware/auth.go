package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

const identityKey = "identity"

// RequireAuth validates the JWT and injects the resolved identity into the
// request context. Requests without a valid token are rejected with 401.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolve(c, jwtSecret)
			if err != nil {
				return err
			}
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// OptionalAuth resolves the identity when a valid token is present and lets
// everyone else through as anonymous. Used on routes like catalog browsing
// and cart reads, where anonymous callers get a degraded (empty) view
// instead of a 401.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity, err := resolve(c, jwtSecret); err == nil {
				SetIdentity(c, identity)
			}
			return next(c)
		}
	}
}

// Identity extracts the resolved caller from the echo context. The zero
// value (anonymous) is returned when no middleware stored one.
func Identity(c echo.Context) domain.Identity {
	identity, _ := c.Get(identityKey).(domain.Identity)
	return identity
}

// SetIdentity stores the caller on the echo context for Identity to read.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

func resolve(c echo.Context, jwtSecret string) (domain.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if sub == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return domain.Identity{UserID: sub, Username: username}, nil
}
