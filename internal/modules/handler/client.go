package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
	"gorm.io/datatypes"
)

type ClientHandler struct {
	svc service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{svc: s}
}

type CreateClientReq struct {
	Name                   string            `json:"name" binding:"required" example:"TiendaSTS GT"`
	Industry               string            `json:"industry" example:"E-commerce"`
	BusinessType           string            `json:"business_type" example:"B2C"`
	Description            string            `json:"description"`
	UniqueValueProposition string            `json:"unique_value_proposition"`
	WebsiteURL             string            `json:"website_url" binding:"omitempty,url"`
	Country                string            `json:"country" example:"Guatemala"`
	TargetAudience         datatypes.JSONMap `json:"target_audience" swaggertype:"object"`
	Competitors            datatypes.JSONMap `json:"competitors" swaggertype:"object"`
	SocialProfiles         datatypes.JSONMap `json:"social_profiles" swaggertype:"object"`
}

// Create godoc
//
//	@Summary		Create client
//	@Description	Registers a new client under the calling agency.
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body	CreateClientReq	true	"Client profile"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Client}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	req := CreateClientReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.Create(c.Request.Context(), service.CreateClientInput{
		AgencyID:               agency.ID,
		Name:                   req.Name,
		Industry:               req.Industry,
		BusinessType:           req.BusinessType,
		Description:            req.Description,
		UniqueValueProposition: req.UniqueValueProposition,
		WebsiteURL:             req.WebsiteURL,
		Country:                req.Country,
		TargetAudience:         req.TargetAudience,
		Competitors:            req.Competitors,
		SocialProfiles:         req.SocialProfiles,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Get godoc
//
//	@Summary		Get client
//	@Tags			clients
//	@Produce		json
//	@Param			id	path	string	true	"Client ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Client}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("client id inválido", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.Get(c.Request.Context(), agency.ID, clientID)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type ListClientsReq struct {
	Limit          int       `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
	AfterCreatedAt time.Time `form:"after_created_at" time_format:"2006-01-02T15:04:05Z07:00"`
	AfterID        string    `form:"after_id" binding:"omitempty,uuid"`
}

// List godoc
//
//	@Summary		List clients
//	@Description	Lists the agency's active clients, newest first, with keyset pagination.
//	@Tags			clients
//	@Produce		json
//	@Param			limit				query	integer	false	"Page size, max 100"
//	@Param			after_created_at	query	string	false	"Keyset cursor: created_at of the last row seen"
//	@Param			after_id			query	string	false	"Keyset cursor: id of the last row seen"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListClientsOutput}
//	@Router			/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	req := ListClientsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	afterID := uuid.Nil
	if req.AfterID != "" {
		afterID = uuid.MustParse(req.AfterID)
	}

	out, err := h.svc.List(c.Request.Context(), service.ListClientsInput{
		AgencyID:       agency.ID,
		Limit:          req.Limit,
		AfterCreatedAt: req.AfterCreatedAt,
		AfterID:        afterID,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateClientReq struct {
	Name                   *string            `json:"name"`
	Industry               *string            `json:"industry"`
	BusinessType           *string            `json:"business_type"`
	Description            *string            `json:"description"`
	UniqueValueProposition *string            `json:"unique_value_proposition"`
	WebsiteURL             *string            `json:"website_url"`
	Country                *string            `json:"country"`
	TargetAudience         *datatypes.JSONMap `json:"target_audience" swaggertype:"object"`
	Competitors            *datatypes.JSONMap `json:"competitors" swaggertype:"object"`
	SocialProfiles         *datatypes.JSONMap `json:"social_profiles" swaggertype:"object"`
}

// Update godoc
//
//	@Summary		Update client
//	@Description	Patches the provided fields of a client profile; omitted fields keep their value.
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Client ID"
//	@Param			request	body	UpdateClientReq	true	"Fields to patch"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Client}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/clients/{id} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("client id inválido", err))
		return
	}

	req := UpdateClientReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.Update(c.Request.Context(), service.UpdateClientInput{
		AgencyID:               agency.ID,
		ClientID:               clientID,
		Name:                   req.Name,
		Industry:               req.Industry,
		BusinessType:           req.BusinessType,
		Description:            req.Description,
		UniqueValueProposition: req.UniqueValueProposition,
		WebsiteURL:             req.WebsiteURL,
		Country:                req.Country,
		TargetAudience:         req.TargetAudience,
		Competitors:            req.Competitors,
		SocialProfiles:         req.SocialProfiles,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Delete godoc
//
//	@Summary		Deactivate client
//	@Description	Soft-deletes a client. Stored credentials and analytics history stay in place.
//	@Tags			clients
//	@Produce		json
//	@Param			id	path	string	true	"Client ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("client id inválido", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), agency.ID, clientID); err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "cliente desactivado"})
}
