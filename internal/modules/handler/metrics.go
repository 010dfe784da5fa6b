package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
)

type MetricsHandler struct {
	svc service.MetricsService
}

func NewMetricsHandler(s service.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: s}
}

type ConsolidatedMetricsReq struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	Platforms []string  `json:"platforms" example:"meta,twitter"`
	DateRange string    `json:"date_range" example:"last_7d"`
}

// Consolidated godoc
//
//	@Summary		Consolidated metrics report
//	@Description	Fetches metrics from every requested platform in parallel and aggregates them into one report. A platform without stored credentials shows up as a failed entry; it never fails the whole report.
//	@Tags			metrics
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ConsolidatedMetricsReq	true	"Report scope"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ConsolidatedReport}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/metrics/consolidated [post]
func (h *MetricsHandler) Consolidated(c *gin.Context) {
	req := ConsolidatedMetricsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	report, err := h.svc.Consolidated(c.Request.Context(), service.ConsolidatedInput{
		AgencyID:  agency.ID,
		ClientID:  req.ClientID,
		Platforms: req.Platforms,
		DateRange: req.DateRange,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: report})
}

type PlatformMetricsReq struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	DateRange string    `json:"date_range" example:"last_7d"`
}

// Platform godoc
//
//	@Summary		Single platform metrics
//	@Description	Fetches one platform's metrics snapshot for a client. Unlike the consolidated report, missing credentials answer 400 with code NO_CREDENTIALS.
//	@Tags			metrics
//	@Accept			json
//	@Produce		json
//	@Param			platform	path	string				true	"Platform identifier"	Enums(meta, twitter, linkedin, tiktok, google_analytics)
//	@Param			request		body	PlatformMetricsReq	true	"Fetch scope"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/metrics/{platform} [post]
func (h *MetricsHandler) Platform(c *gin.Context) {
	req := PlatformMetricsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	res, err := h.svc.FetchPlatform(c.Request.Context(), service.FetchPlatformInput{
		AgencyID:  agency.ID,
		ClientID:  req.ClientID,
		Platform:  c.Param("platform"),
		DateRange: req.DateRange,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: res})
}

type FetchMetricsReq struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required" swaggertype:"string" format:"uuid"`
	Platforms []string  `json:"platforms" example:"meta,tiktok"`
	DateRange string    `json:"date_range" example:"last_7d"`
}

// Fetch godoc
//
//	@Summary		Fetch and store an analytics snapshot
//	@Description	Materializes an industry-scaled metrics snapshot per platform and appends the rows to the analytics history.
//	@Tags			metrics
//	@Accept			json
//	@Produce		json
//	@Param			request	body	FetchMetricsReq	true	"Snapshot scope"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.FetchAndStoreOutput}
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/metrics/fetch [post]
func (h *MetricsHandler) Fetch(c *gin.Context) {
	req := FetchMetricsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	agency, ok := agencyFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("agency not found")))
		return
	}

	out, err := h.svc.FetchAndStore(c.Request.Context(), service.FetchAndStoreInput{
		AgencyID:  agency.ID,
		ClientID:  req.ClientID,
		Platforms: req.Platforms,
		DateRange: req.DateRange,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
