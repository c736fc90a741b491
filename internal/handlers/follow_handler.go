package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/capasdev/redsocial/internal/clients"
	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/capasdev/redsocial/internal/timeline"
	"github.com/labstack/echo/v4"
)

// TimelineComposer is the slice of the timeline package the handler needs.
type TimelineComposer interface {
	Compose(ctx context.Context, requester, credential string) ([]models.TimelineEntry, error)
}

// FollowHandler handles follow-edge creation and timeline composition for
// the Relaciones service.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	usersClient      clients.UserVerifier
	composer         TimelineComposer
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, usersClient clients.UserVerifier, composer TimelineComposer) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		usersClient:      usersClient,
		composer:         composer,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/:username", h.CreateFollow)
	g.GET("/siguiendo/:username", h.GetTimeline)
}

// CreateFollow lets :username (the follower) follow the user named in the
// body. The followee's existence is confirmed against the Usuarios service
// before the edge is written; the edge itself relies on the store's unique
// constraint to reject duplicates.
func (h *FollowHandler) CreateFollow(c echo.Context) error {
	username := c.Param("username")
	credential := c.Request().Header.Get("Authorization")

	var req models.CreateFollowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": "Cuerpo de la petición inválido.",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Printf("[follows] WARN: intento de seguir sin \"usuarioSeguidorUsername\"")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": `Se requiere "usuarioSeguidorUsername" en el body.`,
		})
	}
	followee := req.UsuarioSeguidorUsername

	if username == followee {
		log.Printf("[follows] WARN: el usuario %s intentó seguirse a sí mismo", username)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"mensaje": "Un usuario no puede seguirse a sí mismo.",
		})
	}

	if _, err := h.usersClient.VerifyUser(c.Request().Context(), followee, credential); err != nil {
		if errors.Is(err, clients.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"mensaje": "El usuario al que intentas seguir no existe.",
			})
		}
		log.Printf("[follows] ERROR: falló la comunicación con el servicio de usuarios: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":  "error",
			"mensaje": "El servicio de usuarios no está disponible en este momento.",
		})
	}

	follow := &models.Follow{
		UsuarioPrincipalUsername: followee,
		UsuarioSeguidorUsername:  username,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEdge) {
			log.Printf("[follows] CONFLICT: %s ya sigue a %s", username, followee)
			return c.JSON(http.StatusConflict, echo.Map{
				"status":  "error",
				"mensaje": "Ya estás siguiendo a este usuario.",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al procesar la solicitud.",
		})
	}

	log.Printf("[follows] SUCCESS: %s ahora sigue a %s", username, followee)
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"mensaje": "Usuario seguido exitosamente.",
		"data": echo.Map{
			"seguidor": username,
			"seguido":  followee,
		},
	})
}

// GetTimeline returns everything :username's followees have posted,
// grouped per followee in follow-store order.
func (h *FollowHandler) GetTimeline(c echo.Context) error {
	username := c.Param("username")
	credential := c.Request().Header.Get("Authorization")

	entries, err := h.composer.Compose(c.Request().Context(), username, credential)
	if err != nil {
		if errors.Is(err, timeline.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"status":  "error",
				"mensaje": "No te encuentras Logeado en el sistema",
			})
		}
		log.Printf("[follows] ERROR: error interno componiendo el timeline de %s: %v", username, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"mensaje": "Error interno del servidor al consultar los seguimientos.",
		})
	}

	log.Printf("[follows] SUCCESS: timeline de %s con %d seguidos", username, len(entries))
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   entries,
	})
}
