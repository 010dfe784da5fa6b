package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/repo"
	"github.com/tiendastsgt/agencia/internal/platform"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MetricsService aggregates per-platform metrics into consolidated reports
// and persists placeholder analytics snapshots.
type MetricsService interface {
	Consolidated(ctx context.Context, in ConsolidatedInput) (*ConsolidatedReport, error)
	FetchPlatform(ctx context.Context, in FetchPlatformInput) (*platform.FetchResult, error)
	FetchAndStore(ctx context.Context, in FetchAndStoreInput) (*FetchAndStoreOutput, error)
}

type metricsService struct {
	clients   repo.ClientRepo
	creds     repo.CredentialRepo
	analytics repo.AnalyticsRepo
	registry  *platform.Registry
	log       *zap.Logger
}

func NewMetricsService(clients repo.ClientRepo, creds repo.CredentialRepo, analytics repo.AnalyticsRepo, registry *platform.Registry, log *zap.Logger) MetricsService {
	return &metricsService{
		clients:   clients,
		creds:     creds,
		analytics: analytics,
		registry:  registry,
		log:       log,
	}
}

type ConsolidatedInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`
	// Empty means all supported platforms.
	Platforms []string `json:"platforms"`
	DateRange string   `json:"date_range"`
}

type ClientInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Industry string    `json:"industry"`
}

type ConsolidatedSummary struct {
	TotalFollowers       float64  `json:"total_followers"`
	TotalEngagement      float64  `json:"total_engagement"`
	TotalReach           float64  `json:"total_reach"`
	TotalPosts           float64  `json:"total_posts"`
	AvgEngagementPerPost float64  `json:"avg_engagement_per_post"`
	PlatformsConnected   []string `json:"platforms_connected"`
	OverallHealthScore   int      `json:"overall_health_score"`
}

type PlatformsStatus struct {
	Total       int `json:"total"`
	Successful  int `json:"successful"`
	Failed      int `json:"failed"`
	SuccessRate int `json:"success_rate"`
}

type ConsolidatedReport struct {
	ClientInfo      ClientInfo             `json:"client_info"`
	DateRange       string                 `json:"date_range"`
	Summary         ConsolidatedSummary    `json:"summary"`
	PlatformsData   []platform.FetchResult `json:"platforms_data"`
	PlatformsStatus PlatformsStatus        `json:"platforms_status"`
	LastUpdated     time.Time              `json:"last_updated"`
}

func (s *metricsService) requireClient(ctx context.Context, agencyID, clientID uuid.UUID) (*model.Client, error) {
	c, err := s.clients.GetByID(ctx, agencyID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func daysBackFor(dateRange string) int {
	if dateRange == "last_30d" {
		return 30
	}
	return 7
}

// fetchOne resolves stored credentials and runs one platform fetch. Missing
// credentials are a typed outcome, not an error; only unexpected repo
// failures surface as errors and those too degrade to a no-credentials entry
// so one platform can never sink the whole report.
func (s *metricsService) fetchOne(ctx context.Context, client *model.Client, platformID, dateRange string) platform.FetchResult {
	adapter, ok := s.registry.Get(platformID)
	if !ok {
		res := platform.NoCredentialsResult(platformID)
		res.Message = "Plataforma no soportada: " + platformID
		return res
	}

	stored, err := s.creds.GetActive(ctx, client.ID, platformID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("credential lookup failed",
				zap.String("platform", platformID),
				zap.Error(err))
		}
		return platform.NoCredentialsResult(platformID)
	}

	return adapter.Fetch(ctx, platform.FetchInput{
		Credentials: platform.FromJSONMap(stored.Credentials),
		ClientName:  client.Name,
		Industry:    client.Industry,
		DateRange:   dateRange,
		DaysBack:    daysBackFor(dateRange),
	})
}

func (s *metricsService) Consolidated(ctx context.Context, in ConsolidatedInput) (*ConsolidatedReport, error) {
	client, err := s.requireClient(ctx, in.AgencyID, in.ClientID)
	if err != nil {
		return nil, err
	}

	dateRange := in.DateRange
	if dateRange == "" {
		dateRange = "last_7d"
	}
	platforms := in.Platforms
	if len(platforms) == 0 {
		platforms = platform.All()
	}

	// Fan out one goroutine per platform. A WaitGroup rather than an errgroup:
	// a platform failure is a per-entry outcome, never a reason to cancel the
	// siblings.
	results := make([]platform.FetchResult, len(platforms))
	var wg sync.WaitGroup
	for i, p := range platforms {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			results[i] = s.fetchOne(ctx, client, p, dateRange)
		}(i, p)
	}
	wg.Wait()

	successful := 0
	for _, r := range results {
		if r.Status.Connected() {
			successful++
		}
	}
	failed := len(platforms) - successful

	return &ConsolidatedReport{
		ClientInfo: ClientInfo{
			ID:       client.ID,
			Name:     client.Name,
			Industry: client.Industry,
		},
		DateRange:     dateRange,
		Summary:       summarize(results),
		PlatformsData: results,
		PlatformsStatus: PlatformsStatus{
			Total:       len(platforms),
			Successful:  successful,
			Failed:      failed,
			SuccessRate: int(math.Round(float64(successful) / float64(len(platforms)) * 100)),
		},
		LastUpdated: time.Now().UTC(),
	}, nil
}

// summarize rolls connected platform payloads into the cross-platform totals.
// Each platform contributes the fields its payload actually carries.
func summarize(results []platform.FetchResult) ConsolidatedSummary {
	var followers, engagement, reach, posts float64
	connected := make([]string, 0, len(results))

	for _, r := range results {
		if !r.Status.Connected() {
			continue
		}
		connected = append(connected, r.Platform)

		switch r.Platform {
		case platform.Meta:
			followers += numAt(r.Data, "page_info", "followers_count")
			reach += numAt(r.Data, "metrics", "page_impressions", "current_value")
		case platform.Twitter:
			followers += numAt(r.Data, "account_info", "followers_count")
			engagement += numAt(r.Data, "period_metrics", "total_engagement")
			posts += numAt(r.Data, "period_metrics", "tweets_in_period")
		case platform.LinkedIn:
			followers += numAt(r.Data, "company_info", "follower_count")
			posts += numAt(r.Data, "period_metrics", "posts_in_period")
		case platform.TikTok:
			followers += numAt(r.Data, "account_info", "followers_count")
			engagement += numAt(r.Data, "period_metrics", "total_likes")
			posts += numAt(r.Data, "period_metrics", "videos_in_period")
		case platform.GoogleAnalytics:
			reach += numAt(r.Data, "period_metrics", "total_users")
		}
	}

	avgEngagement := 0.0
	if posts > 0 {
		avgEngagement = math.Round(engagement/posts*100) / 100
	}

	return ConsolidatedSummary{
		TotalFollowers:       followers,
		TotalEngagement:      engagement,
		TotalReach:           reach,
		TotalPosts:           posts,
		AvgEngagementPerPost: avgEngagement,
		PlatformsConnected:   connected,
		OverallHealthScore:   healthScore(len(connected), followers, engagement),
	}
}

// healthScore weighs platform coverage 40% and followers and engagement 30%
// each, saturating at 10k followers and 1k engagement. Always within [0, 100].
func healthScore(connectedPlatforms int, followers, engagement float64) int {
	platformScore := float64(connectedPlatforms) / float64(len(platform.All())) * 40
	followersScore := math.Min(followers/10000*30, 30)
	engagementScore := math.Min(engagement/1000*30, 30)

	score := int(math.Round(platformScore + followersScore + engagementScore))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// numAt walks nested maps and coerces the leaf to float64. Missing or
// non-numeric leaves count as zero.
func numAt(data map[string]interface{}, path ...string) float64 {
	var cur interface{} = data
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return 0
		}
		cur = m[key]
	}
	switch v := cur.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

type FetchPlatformInput struct {
	AgencyID  uuid.UUID `json:"agency_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Platform  string    `json:"platform"`
	DateRange string    `json:"date_range"`
}

// FetchPlatform runs a single-platform snapshot. Unlike the consolidated
// report, missing credentials surface as ErrCredentialsNotFound so the
// endpoint can answer 400.
func (s *metricsService) FetchPlatform(ctx context.Context, in FetchPlatformInput) (*platform.FetchResult, error) {
	adapter, ok := s.registry.Get(in.Platform)
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	client, err := s.requireClient(ctx, in.AgencyID, in.ClientID)
	if err != nil {
		return nil, err
	}

	dateRange := in.DateRange
	if dateRange == "" {
		dateRange = "last_7d"
	}

	stored, err := s.creds.GetActive(ctx, client.ID, in.Platform)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, err
	}

	res := adapter.Fetch(ctx, platform.FetchInput{
		Credentials: platform.FromJSONMap(stored.Credentials),
		ClientName:  client.Name,
		Industry:    client.Industry,
		DateRange:   dateRange,
		DaysBack:    daysBackFor(dateRange),
	})
	return &res, nil
}

type FetchAndStoreInput struct {
	AgencyID  uuid.UUID `json:"agency_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Platforms []string  `json:"platforms"`
	DateRange string    `json:"date_range"`
}

type FetchAndStoreOutput struct {
	ClientName         string                        `json:"client_name"`
	PlatformsProcessed []string                      `json:"platforms_processed"`
	Metrics            map[string]map[string]float64 `json:"metrics"`
	TotalRecordsSaved  int                           `json:"total_records_saved"`
}

// FetchAndStore materializes an industry-scaled placeholder snapshot per
// platform and appends it to the analytics table.
func (s *metricsService) FetchAndStore(ctx context.Context, in FetchAndStoreInput) (*FetchAndStoreOutput, error) {
	client, err := s.requireClient(ctx, in.AgencyID, in.ClientID)
	if err != nil {
		return nil, err
	}

	platforms := in.Platforms
	if len(platforms) == 0 {
		platforms = platform.All()
	}

	now := time.Now().UTC()
	metrics := make(map[string]map[string]float64, len(platforms))
	var rows []model.AnalyticsMetric

	for _, p := range platforms {
		if !s.registry.Supported(p) {
			s.log.Warn("skipping unsupported platform", zap.String("platform", p))
			continue
		}
		flat := platform.FlatMetrics(p, client.Industry)
		metrics[p] = flat
		for name, value := range flat {
			rows = append(rows, model.AnalyticsMetric{
				ClientID:     client.ID,
				MetricType:   "social_media",
				MetricName:   name,
				MetricValue:  value,
				MetricUnit:   platform.MetricUnit(name),
				Platform:     p,
				DateRecorded: now,
				AdditionalData: datatypes.JSONMap{
					"source":     "api_fetch",
					"date_range": in.DateRange,
				},
			})
		}
	}

	if err := s.analytics.InsertBatch(ctx, rows); err != nil {
		return nil, err
	}

	s.log.Info("analytics snapshot stored",
		zap.String("client_id", client.ID.String()),
		zap.Int("records", len(rows)))

	return &FetchAndStoreOutput{
		ClientName:         client.Name,
		PlatformsProcessed: platforms,
		Metrics:            metrics,
		TotalRecordsSaved:  len(rows),
	}, nil
}
