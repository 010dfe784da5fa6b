package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{svc: s}
}

type GenerateContentReq struct {
	ClientID     uuid.UUID `json:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	Type         string    `json:"type" binding:"required" example:"post"`
	Topic        string    `json:"topic" example:"lanzamiento de temporada"`
	Platform     string    `json:"platform" example:"facebook"`
	Tone         string    `json:"tone" example:"profesional"`
	CustomPrompt string    `json:"custom_prompt"`
}

// Generate godoc
//
//	@Summary		Generate marketing content
//	@Description	Generates a post, strategy or analysis for a client with OpenAI, grounded on the stored client profile. The result is persisted and returned.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			request	body	GenerateContentReq	true	"Generation request"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GeneratedContent}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/content/generate [post]
func (h *ContentHandler) Generate(c *gin.Context) {
	req := GenerateContentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.Generate(c.Request.Context(), service.GenerateContentInput{
		AgencyID:     agency.ID,
		ClientID:     req.ClientID,
		Type:         req.Type,
		Topic:        req.Topic,
		Platform:     req.Platform,
		Tone:         req.Tone,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) || errors.Is(err, service.ErrInvalidContentType) {
			renderServiceError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err("CONTENT_GENERATION_FAILED", "No se pudo generar el contenido", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type ContentHistoryReq struct {
	ClientID uuid.UUID `form:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	Type     string    `form:"type" example:"post"`
	Limit    int       `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// History godoc
//
//	@Summary		Generated content history
//	@Description	Lists previously generated content for a client, newest first.
//	@Tags			content
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"
//	@Param			type		query	string	false	"Filter by content type"	Enums(post, strategy, analysis)
//	@Param			limit		query	integer	false	"Page size, max 100"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.GeneratedContent}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/content [get]
func (h *ContentHandler) History(c *gin.Context) {
	req := ContentHistoryReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.History(c.Request.Context(), service.ContentHistoryInput{
		AgencyID: agency.ID,
		ClientID: req.ClientID,
		Type:     req.Type,
		Limit:    req.Limit,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
