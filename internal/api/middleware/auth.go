package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles a user may not grant themselves through user_metadata.
var elevatedRoles = map[string]struct{}{
	"admin":      {},
	"instructor": {},
}

// Auth validates an identity-provider access token (HS256) and injects
// "sub", "email" and "role" into the echo context.
//
// The role comes from app_metadata, which only the provider's service role
// can write. user_metadata is set by the user at signup, so a role found
// there is only trusted when it is not elevated.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			email, _ := claims["email"].(string)

			c.Set("sub", sub)
			c.Set("email", email)
			c.Set("role", roleFromClaims(claims))

			return next(c)
		}
	}
}

func roleFromClaims(claims jwt.MapClaims) string {
	if role := metadataRole(claims, "app_metadata"); role != "" {
		return role
	}
	role := metadataRole(claims, "user_metadata")
	if _, elevated := elevatedRoles[role]; elevated {
		return ""
	}
	return role
}

func metadataRole(claims jwt.MapClaims, key string) string {
	meta, ok := claims[key].(map[string]interface{})
	if !ok {
		return ""
	}
	role, _ := meta["role"].(string)
	return role
}
