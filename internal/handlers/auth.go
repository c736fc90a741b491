package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/capasdev/redsocial/internal/middleware"
	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. The secret comes from the
// service configuration, never from the environment here.
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterPublicRoutes registers the routes that require no token.
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
}

// RegisterSessionRoutes registers token-protected session routes.
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/logout", h.Logout)
}

// Login validates credentials and issues a signed JWT.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": "Cuerpo de la petición inválido.",
		})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": `Se requiere "username" y "contrasenaPlana".`,
		})
	}

	usuario, err := h.userRepository.ValidateCredentials(req.Username, req.ContrasenaPlana)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			log.Printf("[auth] WARN: credenciales inválidas para el usuario: %s", req.Username)
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"status":  "error",
				"mensaje": "Credenciales inválidas. Verifique el usuario o la contraseña.",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al intentar iniciar sesión.",
		})
	}

	token, err := h.generateJWT(usuario)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al generar el token.",
		})
	}

	log.Printf("[auth] SUCCESS: login exitoso para el usuario: %s", usuario.Username)
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"mensaje": "Inicio de sesión exitoso.",
		"data": echo.Map{
			"token": token,
			"usuario": echo.Map{
				"username": usuario.Username,
				"rol":      usuario.Rol,
			},
		},
	})
}

// Logout acknowledges the logout; with stateless JWTs the client simply
// destroys its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims != nil {
		log.Printf("[auth] INFO: logout de %s", claims.Username)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"mensaje": "Cierre de sesión exitoso. El cliente debe destruir el token.",
	})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(usuario *models.Usuario) (string, error) {
	claims := &models.JwtCustomClaims{
		Username: usuario.Username,
		Rol:      usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(8 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
