package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
)

// agencyFrom pulls the authenticated agency out of the gin context.
func agencyFrom(c *gin.Context) (*model.Agency, bool) {
	agency, ok := c.MustGet("agency").(*model.Agency)
	return agency, ok
}

// renderServiceError maps service errors onto the error envelope. Anything
// unrecognized is a 500.
func renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("Cliente no encontrado", err))
	case errors.Is(err, service.ErrCredentialsNotFound):
		c.JSON(http.StatusBadRequest, serializer.Err("NO_CREDENTIALS", "Credenciales no encontradas", err))
	case errors.Is(err, service.ErrUnsupportedPlatform):
		c.JSON(http.StatusBadRequest, serializer.Err("UNSUPPORTED_PLATFORM", "Plataforma no soportada", err))
	case errors.Is(err, service.ErrInvalidContentType):
		c.JSON(http.StatusBadRequest, serializer.Err("INVALID_CONTENT_TYPE", "Tipo de contenido no válido", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
