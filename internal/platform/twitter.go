package platform

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/tiendastsgt/agencia/internal/infra/httpclient"
	"go.uber.org/zap"
)

// twitterAdapter talks to the Twitter v2 API with an app bearer token.
type twitterAdapter struct {
	hc      *httpclient.Client
	baseURL string
	log     *zap.Logger
}

func newTwitterAdapter(hc *httpclient.Client, baseURL string, log *zap.Logger) *twitterAdapter {
	return &twitterAdapter{hc: hc, baseURL: baseURL, log: log.Named("twitter")}
}

func (a *twitterAdapter) Platform() string { return Twitter }

func (a *twitterAdapter) RequiredFields() []string { return []string{"bearer_token", "username"} }

type twitterUserEnvelope struct {
	Data *struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Username      string `json:"username"`
		Verified      bool   `json:"verified"`
		Description   string `json:"description"`
		PublicMetrics struct {
			FollowersCount int `json:"followers_count"`
			FollowingCount int `json:"following_count"`
			TweetCount     int `json:"tweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

type twitterTweetsEnvelope struct {
	Data []struct {
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

func (a *twitterAdapter) authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	}
}

func (a *twitterAdapter) Validate(ctx context.Context, creds Credentials) ValidationResult {
	if missing := missingFields(creds, a.RequiredFields()); len(missing) > 0 {
		return incompleteResult(missing)
	}

	username := strings.TrimPrefix(creds["username"], "@")
	var user twitterUserEnvelope
	u := fmt.Sprintf("%s/users/by/username/%s?user.fields=id,name,username,public_metrics",
		a.baseURL, url.PathEscape(username))
	if err := a.hc.GetJSON(ctx, u, a.authHeaders(creds["bearer_token"]), &user); err != nil {
		a.log.Warn("user lookup failed", zap.Error(err))
		return ValidationResult{
			Success: false,
			Message: fmt.Sprintf("Error de Twitter API: %s", err.Error()),
			Details: map[string]interface{}{},
		}
	}
	if user.Data == nil {
		return ValidationResult{
			Success: false,
			Message: "Usuario de Twitter no encontrado",
			Details: map[string]interface{}{},
		}
	}

	return ValidationResult{
		Success: true,
		Message: "Credenciales de Twitter válidas",
		Details: map[string]interface{}{
			"username":  "@" + user.Data.Username,
			"name":      user.Data.Name,
			"user_id":   user.Data.ID,
			"followers": user.Data.PublicMetrics.FollowersCount,
		},
	}
}

func (a *twitterAdapter) Fetch(ctx context.Context, in FetchInput) FetchResult {
	username := strings.TrimPrefix(in.Credentials["username"], "@")
	token := in.Credentials["bearer_token"]
	daysBack := in.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}

	fallback := func(reason string) FetchResult {
		return FetchResult{
			Platform: Twitter,
			Status:   StatusFallback,
			Data:     twitterFallbackMetrics(username, daysBack),
			Message:  reason,
		}
	}

	if missing := missingFields(in.Credentials, a.RequiredFields()); len(missing) > 0 {
		return fallback("Credenciales de Twitter incompletas")
	}

	headers := a.authHeaders(token)

	var user twitterUserEnvelope
	userURL := fmt.Sprintf("%s/users/by/username/%s?user.fields=id,name,username,public_metrics,verified,description",
		a.baseURL, url.PathEscape(username))
	if err := a.hc.GetJSON(ctx, userURL, headers, &user); err != nil {
		a.log.Warn("user info fetch failed, serving fallback", zap.Error(err))
		return fallback("API real falló, mostrando datos simulados")
	}
	if user.Data == nil {
		return fallback("Usuario de Twitter no encontrado")
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	// Recent tweets are best effort; missing them yields a real snapshot with
	// zeroed period metrics.
	var tweets twitterTweetsEnvelope
	tweetsURL := fmt.Sprintf("%s/users/%s/tweets?max_results=100&tweet.fields=created_at,public_metrics,text&start_time=%s&end_time=%s",
		a.baseURL, url.PathEscape(user.Data.ID),
		url.QueryEscape(start.Format(time.RFC3339)), url.QueryEscape(end.Format(time.RFC3339)))
	if err := a.hc.GetJSON(ctx, tweetsURL, headers, &tweets); err != nil {
		a.log.Warn("recent tweets unavailable", zap.Error(err))
	}

	var totalLikes, totalRetweets, totalReplies int
	for _, t := range tweets.Data {
		totalLikes += t.PublicMetrics.LikeCount
		totalRetweets += t.PublicMetrics.RetweetCount
		totalReplies += t.PublicMetrics.ReplyCount
	}
	totalEngagement := totalLikes + totalRetweets + totalReplies

	avgEngagement := 0.0
	if len(tweets.Data) > 0 {
		avgEngagement = math.Round(float64(totalEngagement)/float64(len(tweets.Data))*100) / 100
	}

	return FetchResult{
		Platform: Twitter,
		Status:   StatusReal,
		Data: map[string]interface{}{
			"account_info": map[string]interface{}{
				"username":        "@" + user.Data.Username,
				"name":            user.Data.Name,
				"followers_count": user.Data.PublicMetrics.FollowersCount,
				"following_count": user.Data.PublicMetrics.FollowingCount,
				"tweet_count":     user.Data.PublicMetrics.TweetCount,
				"verified":        user.Data.Verified,
				"description":     user.Data.Description,
			},
			"period_metrics": map[string]interface{}{
				"days_analyzed":            daysBack,
				"tweets_in_period":         len(tweets.Data),
				"total_engagement":         totalEngagement,
				"avg_engagement_per_tweet": avgEngagement,
				"total_likes":              totalLikes,
				"total_retweets":           totalRetweets,
				"total_replies":            totalReplies,
			},
			"date_range": map[string]interface{}{
				"period":     fmt.Sprintf("%d días", daysBack),
				"start_date": start.Format(time.RFC3339),
				"end_date":   end.Format(time.RFC3339),
			},
			"last_updated": nowISO(),
			"api_version":  "v2",
		},
	}
}
