package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/platform"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestCredentialService_Set(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()
	client := &model.Client{ID: clientID, AgencyID: agencyID, Name: "TiendaSTS GT"}

	t.Run("saves and answers with confirmation", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		creds := new(MockCredentialRepo)
		creds.On("Upsert", mock.Anything, mock.MatchedBy(func(c *model.APICredential) bool {
			return c.ClientID == clientID && c.Platform == platform.Meta && c.IsActive
		})).Return(nil)

		svc := NewCredentialService(creds, clients, testRegistry(), zap.NewNop())
		out, err := svc.Set(context.Background(), SetCredentialsInput{
			AgencyID:    agencyID,
			ClientID:    clientID,
			Platform:    platform.Meta,
			Credentials: datatypes.JSONMap{"access_token": "tok", "page_id": "p1"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Credenciales guardadas correctamente", out.Message)
		assert.Equal(t, platform.Meta, out.Platform)
		assert.False(t, out.SavedAt.IsZero())
		creds.AssertExpectations(t)
	})

	t.Run("unsupported platform", func(t *testing.T) {
		svc := NewCredentialService(new(MockCredentialRepo), new(MockClientRepo), testRegistry(), zap.NewNop())
		_, err := svc.Set(context.Background(), SetCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: "instagram",
			Credentials: datatypes.JSONMap{"access_token": "tok"},
		})
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	})

	t.Run("client not found", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCredentialService(new(MockCredentialRepo), clients, testRegistry(), zap.NewNop())
		_, err := svc.Set(context.Background(), SetCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: platform.Meta,
			Credentials: datatypes.JSONMap{"access_token": "tok", "page_id": "p1"},
		})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestCredentialService_Test(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()
	client := &model.Client{ID: clientID, AgencyID: agencyID, Name: "TiendaSTS GT"}

	t.Run("incomplete inline credentials fail without saving", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		svc := NewCredentialService(new(MockCredentialRepo), clients, testRegistry(), zap.NewNop())
		res, err := svc.Test(context.Background(), TestCredentialsInput{
			AgencyID:    agencyID,
			ClientID:    clientID,
			Platform:    platform.LinkedIn,
			Credentials: datatypes.JSONMap{"access_token": "tok"},
		})
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "incompletas")
		assert.Contains(t, res.Message, "company_id")
	})

	t.Run("falls back to stored bundle", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		creds := new(MockCredentialRepo)
		creds.On("Get", mock.Anything, clientID, platform.TikTok).Return(&model.APICredential{
			ClientID:    clientID,
			Platform:    platform.TikTok,
			Credentials: datatypes.JSONMap{"access_token": "tok", "user_id": "1"},
		}, nil)

		svc := NewCredentialService(creds, clients, testRegistry(), zap.NewNop())
		res, err := svc.Test(context.Background(), TestCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: platform.TikTok,
		})
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Contains(t, res.Message, "simulado")
	})

	t.Run("nothing stored", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		creds := new(MockCredentialRepo)
		creds.On("Get", mock.Anything, clientID, platform.TikTok).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCredentialService(creds, clients, testRegistry(), zap.NewNop())
		_, err := svc.Test(context.Background(), TestCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: platform.TikTok,
		})
		assert.ErrorIs(t, err, ErrCredentialsNotFound)
	})
}

func TestCredentialService_GetAndDelete(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()
	client := &model.Client{ID: clientID, AgencyID: agencyID, Name: "TiendaSTS GT"}

	t.Run("lists metadata", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		creds := new(MockCredentialRepo)
		creds.On("ListMeta", mock.Anything, clientID, "").Return([]model.CredentialMeta{
			{Platform: platform.Meta, IsActive: true},
			{Platform: platform.Twitter, IsActive: true},
		}, nil)

		svc := NewCredentialService(creds, clients, testRegistry(), zap.NewNop())
		out, err := svc.Get(context.Background(), GetCredentialsInput{AgencyID: agencyID, ClientID: clientID})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("rejects unknown platform filter", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		svc := NewCredentialService(new(MockCredentialRepo), clients, testRegistry(), zap.NewNop())
		_, err := svc.Get(context.Background(), GetCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: "instagram",
		})
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	})

	t.Run("delete confirms even when absent", func(t *testing.T) {
		clients := new(MockClientRepo)
		clients.On("GetByID", mock.Anything, agencyID, clientID).Return(client, nil)

		creds := new(MockCredentialRepo)
		creds.On("Delete", mock.Anything, clientID, platform.Meta).Return(nil)

		svc := NewCredentialService(creds, clients, testRegistry(), zap.NewNop())
		out, err := svc.Delete(context.Background(), DeleteCredentialsInput{
			AgencyID: agencyID, ClientID: clientID, Platform: platform.Meta,
		})
		require.NoError(t, err)
		assert.Equal(t, "Credenciales eliminadas correctamente", out.Message)
		assert.False(t, out.DeletedAt.IsZero())
	})
}
