package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupCredentialTestDB creates a test database connection
func setupCredentialTestDB(t *testing.T) *gorm.DB {
	// Skip if no test database is configured
	dsn := "host=localhost user=agencia password=helloworld dbname=agencia port=15432 sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skip("Test database not available, skipping integration tests")
		return nil
	}

	err = db.AutoMigrate(
		&model.Agency{},
		&model.Client{},
		&model.APICredential{},
		&model.AnalyticsMetric{},
	)
	require.NoError(t, err)

	return db
}

func cleanupCredentialTestDB(t *testing.T, db *gorm.DB, agencyID uuid.UUID) {
	// Clean up in reverse order of foreign key dependencies
	db.Exec("DELETE FROM analytics WHERE client_id IN (SELECT id FROM clients WHERE agency_id = ?)", agencyID)
	db.Exec("DELETE FROM client_api_credentials WHERE client_id IN (SELECT id FROM clients WHERE agency_id = ?)", agencyID)
	db.Exec("DELETE FROM clients WHERE agency_id = ?", agencyID)
	db.Exec("DELETE FROM agencies WHERE id = ?", agencyID)
}

func seedTestClient(t *testing.T, db *gorm.DB) (*model.Agency, *model.Client) {
	agency := &model.Agency{
		ID:               uuid.New(),
		Name:             "test agency",
		SecretKeyHMAC:    "test_hmac_" + uuid.NewString()[:8],
		SecretKeyHashPHC: "test_hash",
	}
	require.NoError(t, db.Create(agency).Error)

	client := &model.Client{
		ID:       uuid.New(),
		AgencyID: agency.ID,
		Name:     "TiendaSTS GT",
		Industry: "E-commerce",
	}
	require.NoError(t, db.Create(client).Error)

	return agency, client
}

func TestCredentialRepo_UpsertReplacesBundle(t *testing.T) {
	db := setupCredentialTestDB(t)
	if db == nil {
		return
	}

	repo := NewCredentialRepo(db)
	ctx := context.Background()

	agency, client := seedTestClient(t, db)
	defer cleanupCredentialTestDB(t, db, agency.ID)

	first := &model.APICredential{
		ClientID: client.ID,
		Platform: "meta",
		Credentials: datatypes.JSONMap{
			"access_token": "tok-1",
			"page_id":      "page-1",
			"app_secret":   "shh",
		},
		IsActive: true,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	// Second write for the same pair fully replaces the blob. The app_secret
	// key from the first write must not survive.
	second := &model.APICredential{
		ClientID: client.ID,
		Platform: "meta",
		Credentials: datatypes.JSONMap{
			"access_token": "tok-2",
			"page_id":      "page-2",
		},
		IsActive: true,
	}
	require.NoError(t, repo.Upsert(ctx, second))

	stored, err := repo.GetActive(ctx, client.ID, "meta")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", stored.Credentials["access_token"])
	assert.Equal(t, "page-2", stored.Credentials["page_id"])
	_, hasOldKey := stored.Credentials["app_secret"]
	assert.False(t, hasOldKey, "old bundle keys must not survive an upsert")

	var count int64
	db.Model(&model.APICredential{}).
		Where("client_id = ? AND platform = ?", client.ID, "meta").
		Count(&count)
	assert.Equal(t, int64(1), count, "at most one record per (client, platform)")
}

func TestCredentialRepo_ListMetaOmitsSecrets(t *testing.T) {
	db := setupCredentialTestDB(t)
	if db == nil {
		return
	}

	repo := NewCredentialRepo(db)
	ctx := context.Background()

	agency, client := seedTestClient(t, db)
	defer cleanupCredentialTestDB(t, db, agency.ID)

	for _, p := range []string{"meta", "twitter"} {
		require.NoError(t, repo.Upsert(ctx, &model.APICredential{
			ClientID:    client.ID,
			Platform:    p,
			Credentials: datatypes.JSONMap{"access_token": "secret"},
			IsActive:    true,
		}))
	}

	all, err := repo.ListMeta(ctx, client.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "meta", all[0].Platform)
	assert.Equal(t, "twitter", all[1].Platform)
	assert.True(t, all[0].IsActive)

	one, err := repo.ListMeta(ctx, client.ID, "twitter")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "twitter", one[0].Platform)

	none, err := repo.ListMeta(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCredentialRepo_Delete(t *testing.T) {
	db := setupCredentialTestDB(t)
	if db == nil {
		return
	}

	repo := NewCredentialRepo(db)
	ctx := context.Background()

	agency, client := seedTestClient(t, db)
	defer cleanupCredentialTestDB(t, db, agency.ID)

	require.NoError(t, repo.Upsert(ctx, &model.APICredential{
		ClientID:    client.ID,
		Platform:    "tiktok",
		Credentials: datatypes.JSONMap{"access_token": "tok", "user_id": "1"},
		IsActive:    true,
	}))

	require.NoError(t, repo.Delete(ctx, client.ID, "tiktok"))

	_, err := repo.Get(ctx, client.ID, "tiktok")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting an absent pair is a no-op, not an error.
	assert.NoError(t, repo.Delete(ctx, client.ID, "tiktok"))
}

func TestAnalyticsRepo_AppendOnly(t *testing.T) {
	db := setupCredentialTestDB(t)
	if db == nil {
		return
	}

	repo := NewAnalyticsRepo(db)
	ctx := context.Background()

	agency, client := seedTestClient(t, db)
	defer cleanupCredentialTestDB(t, db, agency.ID)

	now := time.Now().UTC()
	rows := []model.AnalyticsMetric{
		{ClientID: client.ID, MetricType: "social_media", MetricName: "likes", MetricValue: 850, MetricUnit: "count", Platform: "meta", DateRecorded: now},
		{ClientID: client.ID, MetricType: "social_media", MetricName: "engagement_rate", MetricValue: 4.2, MetricUnit: "percentage", Platform: "meta", DateRecorded: now},
	}
	require.NoError(t, repo.InsertBatch(ctx, rows))

	// A second fetch for the same day appends, never overwrites.
	require.NoError(t, repo.InsertBatch(ctx, []model.AnalyticsMetric{
		{ClientID: client.ID, MetricType: "social_media", MetricName: "likes", MetricValue: 900, MetricUnit: "count", Platform: "meta", DateRecorded: now},
	}))

	stored, err := repo.ListByClient(ctx, client.ID, "meta", time.Time{}, 50)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	require.NoError(t, repo.InsertBatch(ctx, nil))
}
