package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/capasdev/redsocial/internal/clients"
	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles message HTTP requests. Callers are verified by
// forwarding their bearer token to the Usuarios service rather than by a
// local middleware.
type MessageHandler struct {
	mensajeRepository repositories.MensajeRepository
	usersClient       clients.UserVerifier
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(mensajeRepo repositories.MensajeRepository, usersClient clients.UserVerifier) *MessageHandler {
	return &MessageHandler{
		mensajeRepository: mensajeRepo,
		usersClient:       usersClient,
	}
}

// RegisterMensajeRoutes registers message-related routes
func (h *MessageHandler) RegisterMensajeRoutes(g *echo.Group) {
	g.POST("/:username", h.CreateMensaje)
	g.GET("/:username", h.GetMensajesPorUsuario)
}

// CreateMensaje creates a new message authored by :username.
func (h *MessageHandler) CreateMensaje(c echo.Context) error {
	username := c.Param("username")
	credential := c.Request().Header.Get("Authorization")

	var req models.CreateMensajeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": "Cuerpo de la petición inválido.",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": `Se requiere "contenido" en el body.`,
		})
	}

	if _, err := h.usersClient.VerifyUser(c.Request().Context(), username, credential); err != nil {
		switch {
		case errors.Is(err, clients.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"status":  "error",
				"mensaje": "No te encuentras logueado en el sistema o tu token es inválido.",
			})
		case errors.Is(err, clients.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"mensaje": "El usuario autor del mensaje no existe.",
			})
		default:
			log.Printf("[mensajes] ERROR: falló la comunicación con el servicio de usuarios: %v", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":  "error",
				"mensaje": "El servicio de usuarios no está disponible en este momento.",
			})
		}
	}

	mensaje := &models.Mensaje{
		UsernameAutor: username,
		Contenido:     req.Contenido,
	}
	if err := h.mensajeRepository.CreateMensaje(c.Request().Context(), mensaje); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al crear el mensaje.",
		})
	}

	log.Printf("[mensajes] SUCCESS: mensaje creado por %s", username)
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"mensaje": "Mensaje creado exitosamente.",
		"data": echo.Map{
			"username_autor": username,
			"contenido":      req.Contenido,
		},
	})
}

// GetMensajesPorUsuario returns all messages of one user, newest first.
// This is the endpoint the Relaciones composer fans out to.
func (h *MessageHandler) GetMensajesPorUsuario(c echo.Context) error {
	username := c.Param("username")
	credential := c.Request().Header.Get("Authorization")

	if _, err := h.usersClient.VerifyUser(c.Request().Context(), username, credential); err != nil {
		log.Printf("[mensajes] WARN: token inválido para GET /mensajes/%s: %v", username, err)
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"status":  "error",
			"mensaje": "No te encuentras logueado en el sistema.",
		})
	}

	mensajes, err := h.mensajeRepository.GetMensajesByAutor(c.Request().Context(), username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al consultar los mensajes.",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   mensajes,
	})
}
