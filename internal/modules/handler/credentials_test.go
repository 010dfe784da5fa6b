package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Get(ctx context.Context, in service.GetCredentialsInput) ([]model.CredentialMeta, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CredentialMeta), args.Error(1)
}

func (m *MockCredentialService) Set(ctx context.Context, in service.SetCredentialsInput) (*service.SetCredentialsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SetCredentialsOutput), args.Error(1)
}

func (m *MockCredentialService) Test(ctx context.Context, in service.TestCredentialsInput) (*platform.ValidationResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.ValidationResult), args.Error(1)
}

func (m *MockCredentialService) Delete(ctx context.Context, in service.DeleteCredentialsInput) (*service.DeleteCredentialsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteCredentialsOutput), args.Error(1)
}

func newCredentialsRouter(svc service.CredentialService, agency *model.Agency) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("agency", agency)
		c.Next()
	})
	r.POST("/credentials", NewCredentialsHandler(svc).Manage)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCredentialsHandler_Manage(t *testing.T) {
	agency := &model.Agency{ID: uuid.New(), Name: "test agency"}
	clientID := uuid.New()

	t.Run("set routes to the set operation", func(t *testing.T) {
		svc := new(MockCredentialService)
		svc.On("Set", mock.Anything, mock.MatchedBy(func(in service.SetCredentialsInput) bool {
			return in.AgencyID == agency.ID &&
				in.ClientID == clientID &&
				in.Platform == "meta" &&
				in.Credentials["access_token"] == "tok"
		})).Return(&service.SetCredentialsOutput{
			Message:  "Credenciales guardadas correctamente",
			Platform: "meta",
		}, nil)

		r := newCredentialsRouter(svc, agency)
		rec := postJSON(r, "/credentials",
			`{"action":"set","client_id":"`+clientID.String()+`","platform":"meta","credentials":{"access_token":"tok","page_id":"p1"}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Credenciales guardadas correctamente")
		svc.AssertExpectations(t)
	})

	t.Run("get lists metadata without secrets", func(t *testing.T) {
		svc := new(MockCredentialService)
		svc.On("Get", mock.Anything, mock.Anything).Return([]model.CredentialMeta{
			{Platform: "meta", IsActive: true},
		}, nil)

		r := newCredentialsRouter(svc, agency)
		rec := postJSON(r, "/credentials",
			`{"action":"get","client_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []model.CredentialMeta `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "meta", resp.Data[0].Platform)
		assert.NotContains(t, rec.Body.String(), "access_token")
	})

	t.Run("test relays the validation verdict", func(t *testing.T) {
		svc := new(MockCredentialService)
		svc.On("Test", mock.Anything, mock.Anything).Return(&platform.ValidationResult{
			Success: false,
			Message: "Credenciales incompletas: access_token y page_id son requeridos",
			Details: map[string]interface{}{},
		}, nil)

		r := newCredentialsRouter(svc, agency)
		rec := postJSON(r, "/credentials",
			`{"action":"test","client_id":"`+clientID.String()+`","platform":"meta"}`)

		// An upstream validation failure is still a 200; the verdict is data.
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "incompletas")
	})

	t.Run("unknown action", func(t *testing.T) {
		r := newCredentialsRouter(new(MockCredentialService), agency)
		rec := postJSON(r, "/credentials",
			`{"action":"rotate","client_id":"`+clientID.String()+`","platform":"meta"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_ACTION")
	})

	t.Run("set without platform", func(t *testing.T) {
		r := newCredentialsRouter(new(MockCredentialService), agency)
		rec := postJSON(r, "/credentials",
			`{"action":"set","client_id":"`+clientID.String()+`","credentials":{"a":"b"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		svc := new(MockCredentialService)
		svc.On("Set", mock.Anything, mock.Anything).Return(nil, service.ErrUnsupportedPlatform)

		r := newCredentialsRouter(svc, agency)
		rec := postJSON(r, "/credentials",
			`{"action":"set","client_id":"`+clientID.String()+`","platform":"instagram","credentials":{"a":"b"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNSUPPORTED_PLATFORM")
	})

	t.Run("client not found", func(t *testing.T) {
		svc := new(MockCredentialService)
		svc.On("Delete", mock.Anything, mock.Anything).Return(nil, service.ErrClientNotFound)

		r := newCredentialsRouter(svc, agency)
		rec := postJSON(r, "/credentials",
			`{"action":"delete","client_id":"`+clientID.String()+`","platform":"meta"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cliente no encontrado")
	})

	t.Run("missing client_id", func(t *testing.T) {
		r := newCredentialsRouter(new(MockCredentialService), agency)
		rec := postJSON(r, "/credentials", `{"action":"get"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})
}
