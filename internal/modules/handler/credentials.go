package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
	"gorm.io/datatypes"
)

type CredentialsHandler struct {
	svc service.CredentialService
}

func NewCredentialsHandler(s service.CredentialService) *CredentialsHandler {
	return &CredentialsHandler{svc: s}
}

type CredentialsActionReq struct {
	Action      string            `json:"action" binding:"required" example:"set"`
	ClientID    uuid.UUID         `json:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	Platform    string            `json:"platform" example:"meta"`
	Credentials datatypes.JSONMap `json:"credentials" swaggertype:"object"`
}

// Manage godoc
//
//	@Summary		Manage client platform credentials
//	@Description	Single entry point for credential management. The action field selects the operation: get lists stored credential metadata, set replaces the bundle for a platform, test runs a live validation, delete removes the pair.
//	@Tags			credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body	CredentialsActionReq	true	"Action envelope"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/credentials [post]
func (h *CredentialsHandler) Manage(c *gin.Context) {
	req := CredentialsActionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	// set, test and delete operate on exactly one platform.
	if req.Action != "get" && req.Platform == "" {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("platform es requerido", nil))
		return
	}

	ctx := c.Request.Context()

	switch req.Action {
	case "get":
		out, err := h.svc.Get(ctx, service.GetCredentialsInput{
			AgencyID: agency.ID,
			ClientID: req.ClientID,
			Platform: req.Platform,
		})
		if err != nil {
			renderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})

	case "set":
		if len(req.Credentials) == 0 {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("credentials es requerido", nil))
			return
		}
		out, err := h.svc.Set(ctx, service.SetCredentialsInput{
			AgencyID:    agency.ID,
			ClientID:    req.ClientID,
			Platform:    req.Platform,
			Credentials: req.Credentials,
		})
		if err != nil {
			renderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})

	case "test":
		out, err := h.svc.Test(ctx, service.TestCredentialsInput{
			AgencyID:    agency.ID,
			ClientID:    req.ClientID,
			Platform:    req.Platform,
			Credentials: req.Credentials,
		})
		if err != nil {
			renderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})

	case "delete":
		out, err := h.svc.Delete(ctx, service.DeleteCredentialsInput{
			AgencyID: agency.ID,
			ClientID: req.ClientID,
			Platform: req.Platform,
		})
		if err != nil {
			renderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})

	default:
		c.JSON(http.StatusBadRequest, serializer.Err("INVALID_ACTION", "Acción no válida: "+req.Action, nil))
	}
}
