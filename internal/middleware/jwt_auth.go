package middleware

import (
	"net/http"
	"strings"

	"github.com/capasdev/redsocial/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the authenticated claims live in the echo context.
const UserContextKey = "user"

// JWTAuth checks for a valid JWT and extracts user claims. The secret is
// injected at wiring time instead of being read from the environment here.
func JWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"mensaje": "Acceso denegado. Se requiere token de autenticación.",
				})
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"mensaje": "Formato de cabecera Authorization inválido.",
				})
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"mensaje": "Token inválido o expirado.",
				})
			}

			// Store user claims in context
			c.Set(UserContextKey, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the authenticated claims set by JWTAuth, or nil.
func ClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(UserContextKey).(*models.JwtCustomClaims)
	return claims
}
