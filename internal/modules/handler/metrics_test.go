package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/modules/service"
	"github.com/tiendastsgt/agencia/internal/platform"
	"go.uber.org/zap"
)

type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) Consolidated(ctx context.Context, in service.ConsolidatedInput) (*service.ConsolidatedReport, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsolidatedReport), args.Error(1)
}

func (m *MockMetricsService) FetchPlatform(ctx context.Context, in service.FetchPlatformInput) (*platform.FetchResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.FetchResult), args.Error(1)
}

func (m *MockMetricsService) FetchAndStore(ctx context.Context, in service.FetchAndStoreInput) (*service.FetchAndStoreOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FetchAndStoreOutput), args.Error(1)
}

func newMetricsRouter(svc service.MetricsService, agency *model.Agency) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("agency", agency)
		c.Next()
	})
	h := NewMetricsHandler(svc)
	r.POST("/metrics/consolidated", h.Consolidated)
	r.POST("/metrics/fetch", h.Fetch)
	r.POST("/metrics/:platform", h.Platform)
	return r
}

func TestMetricsHandler_Consolidated(t *testing.T) {
	agency := &model.Agency{ID: uuid.New()}
	clientID := uuid.New()

	t.Run("returns the aggregated report", func(t *testing.T) {
		svc := new(MockMetricsService)
		svc.On("Consolidated", mock.Anything, mock.MatchedBy(func(in service.ConsolidatedInput) bool {
			return in.AgencyID == agency.ID && in.ClientID == clientID && len(in.Platforms) == 2
		})).Return(&service.ConsolidatedReport{
			ClientInfo: service.ClientInfo{ID: clientID, Name: "TiendaSTS GT"},
			DateRange:  "last_7d",
			PlatformsStatus: service.PlatformsStatus{
				Total: 2, Successful: 1, Failed: 1, SuccessRate: 50,
			},
		}, nil)

		r := newMetricsRouter(svc, agency)
		rec := postJSON(r, "/metrics/consolidated",
			`{"client_id":"`+clientID.String()+`","platforms":["twitter","linkedin"]}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data service.ConsolidatedReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 50, resp.Data.PlatformsStatus.SuccessRate)
		assert.Equal(t, resp.Data.PlatformsStatus.Total,
			resp.Data.PlatformsStatus.Successful+resp.Data.PlatformsStatus.Failed)
	})

	t.Run("client not found", func(t *testing.T) {
		svc := new(MockMetricsService)
		svc.On("Consolidated", mock.Anything, mock.Anything).Return(nil, service.ErrClientNotFound)

		r := newMetricsRouter(svc, agency)
		rec := postJSON(r, "/metrics/consolidated", `{"client_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMetricsHandler_Platform(t *testing.T) {
	agency := &model.Agency{ID: uuid.New()}
	clientID := uuid.New()

	t.Run("missing credentials answer NO_CREDENTIALS", func(t *testing.T) {
		svc := new(MockMetricsService)
		svc.On("FetchPlatform", mock.Anything, mock.MatchedBy(func(in service.FetchPlatformInput) bool {
			return in.Platform == "meta"
		})).Return(nil, service.ErrCredentialsNotFound)

		r := newMetricsRouter(svc, agency)
		rec := postJSON(r, "/metrics/meta", `{"client_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "NO_CREDENTIALS")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		svc := new(MockMetricsService)
		svc.On("FetchPlatform", mock.Anything, mock.Anything).Return(nil, service.ErrUnsupportedPlatform)

		r := newMetricsRouter(svc, agency)
		rec := postJSON(r, "/metrics/instagram", `{"client_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNSUPPORTED_PLATFORM")
	})

	t.Run("snapshot passthrough", func(t *testing.T) {
		svc := new(MockMetricsService)
		svc.On("FetchPlatform", mock.Anything, mock.Anything).Return(&platform.FetchResult{
			Platform: "tiktok",
			Status:   platform.StatusSimulated,
			Data:     map[string]interface{}{"account_info": map[string]interface{}{}},
		}, nil)

		r := newMetricsRouter(svc, agency)
		rec := postJSON(r, "/metrics/tiktok", `{"client_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"simulated"`)
	})
}

func TestMetricsHandler_Fetch(t *testing.T) {
	agency := &model.Agency{ID: uuid.New()}
	clientID := uuid.New()

	svc := new(MockMetricsService)
	svc.On("FetchAndStore", mock.Anything, mock.MatchedBy(func(in service.FetchAndStoreInput) bool {
		return in.AgencyID == agency.ID && in.ClientID == clientID
	})).Return(&service.FetchAndStoreOutput{
		ClientName:         "TiendaSTS GT",
		PlatformsProcessed: []string{"meta"},
		TotalRecordsSaved:  8,
	}, nil)

	r := newMetricsRouter(svc, agency)
	rec := postJSON(r, "/metrics/fetch", `{"client_id":"`+clientID.String()+`","platforms":["meta"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_records_saved":8`)
}
