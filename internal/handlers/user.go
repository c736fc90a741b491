package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/capasdev/redsocial/internal/middleware"
	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles user CRUD requests; GET /:username doubles as the
// identity-verification endpoint consumed by the other services.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user routes on a token-protected group.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("", h.CreateUser)
	g.GET("", h.GetAllUsers)
	g.GET("/:username", h.GetUserByUsername)
}

// CreateUser creates a new user. Admin only.
func (h *UserHandler) CreateUser(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"status":  "error",
			"mensaje": "Acceso denegado. Se requiere token de autenticación.",
		})
	}

	if claims.Rol != models.RolAdministrador {
		log.Printf("[users] WARN: %s (rol %s) intentó crear un usuario sin permisos", claims.Username, claims.Rol)
		return c.JSON(http.StatusForbidden, echo.Map{
			"status":  "error",
			"mensaje": "Acceso denegado. Solo los administradores pueden crear usuarios.",
		})
	}

	var req models.CreateUsuarioRequest
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
			"mensaje": `Datos incompletos. Se requiere "username", "nombre" y "contrasena_plana".`,
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.ContrasenaPlana), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al crear el usuario.",
		})
	}

	rol := req.Rol
	if rol == "" {
		rol = models.RolUsuario
	}

	usuario := &models.Usuario{
		Username:       req.Username,
		Nombre:         req.Nombre,
		ContrasenaHash: string(hashedPassword),
		Rol:            rol,
	}

	if err := h.userRepository.CreateUser(usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, echo.Map{
				"status":  "error",
				"mensaje": `Conflicto: El "username" ya está en uso.`,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al crear el usuario.",
		})
	}

	log.Printf("[users] SUCCESS: usuario %s creado por %s", usuario.Username, claims.Username)
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"mensaje": "Usuario creado exitosamente.",
		"data": echo.Map{
			"username": usuario.Username,
			"nombre":   usuario.Nombre,
			"rol":      usuario.Rol,
		},
	})
}

// GetAllUsers returns every user; the password hash never leaves the model.
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	usuarios, err := h.userRepository.GetAllUsers()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al consultar los usuarios.",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   usuarios,
	})
}

// GetUserByUsername returns one user record or 404.
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	username := c.Param("username")

	usuario, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"mensaje": "Usuario no encontrado.",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al buscar el usuario.",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   usuario,
	})
}
