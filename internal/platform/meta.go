package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tiendastsgt/agencia/internal/infra/httpclient"
	"go.uber.org/zap"
)

// metaAdapter talks to the Facebook Graph API. A failed real call degrades to
// randomized fallback data rather than an error.
type metaAdapter struct {
	hc      *httpclient.Client
	baseURL string
	log     *zap.Logger
}

func newMetaAdapter(hc *httpclient.Client, baseURL string, log *zap.Logger) *metaAdapter {
	return &metaAdapter{hc: hc, baseURL: baseURL, log: log.Named("meta")}
}

func (a *metaAdapter) Platform() string { return Meta }

func (a *metaAdapter) RequiredFields() []string { return []string{"access_token", "page_id"} }

type metaPageInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FanCount       int    `json:"fan_count"`
	FollowersCount int    `json:"followers_count"`
	Link           string `json:"link"`
}

type metaInsights struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value float64 `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

func (a *metaAdapter) Validate(ctx context.Context, creds Credentials) ValidationResult {
	if missing := missingFields(creds, a.RequiredFields()); len(missing) > 0 {
		return incompleteResult(missing)
	}

	var page metaPageInfo
	u := fmt.Sprintf("%s/%s?fields=name,id&access_token=%s",
		a.baseURL, url.PathEscape(creds["page_id"]), url.QueryEscape(creds["access_token"]))
	if err := a.hc.GetJSON(ctx, u, nil, &page); err != nil {
		a.log.Warn("page lookup failed", zap.Error(err))
		return ValidationResult{
			Success: false,
			Message: fmt.Sprintf("Error de Facebook API: %s", err.Error()),
			Details: map[string]interface{}{},
		}
	}

	return ValidationResult{
		Success: true,
		Message: "Credenciales de Facebook válidas",
		Details: map[string]interface{}{
			"page_name": page.Name,
			"page_id":   page.ID,
		},
	}
}

func (a *metaAdapter) Fetch(ctx context.Context, in FetchInput) FetchResult {
	pageID := in.Credentials["page_id"]
	token := in.Credentials["access_token"]

	if missing := missingFields(in.Credentials, a.RequiredFields()); len(missing) > 0 {
		return FetchResult{
			Platform: Meta,
			Status:   StatusFallback,
			Data:     metaFallbackMetrics(pageID, in.DateRange),
			Message:  "Credenciales de Facebook incompletas",
		}
	}

	var page metaPageInfo
	pageURL := fmt.Sprintf("%s/%s?fields=name,followers_count,fan_count,link&access_token=%s",
		a.baseURL, url.PathEscape(pageID), url.QueryEscape(token))
	if err := a.hc.GetJSON(ctx, pageURL, nil, &page); err != nil {
		a.log.Warn("page info fetch failed, serving fallback", zap.Error(err))
		return FetchResult{
			Platform: Meta,
			Status:   StatusFallback,
			Data:     metaFallbackMetrics(pageID, in.DateRange),
			Message:  "API real falló, mostrando datos simulados",
		}
	}

	// Insights are best effort; the snapshot stays real without them.
	var insights metaInsights
	insightsURL := fmt.Sprintf("%s/%s/insights?metric=page_impressions,page_engaged_users,page_post_engagements&period=day&since=7daysago&access_token=%s",
		a.baseURL, url.PathEscape(pageID), url.QueryEscape(token))
	if err := a.hc.GetJSON(ctx, insightsURL, nil, &insights); err != nil {
		a.log.Warn("insights unavailable, using page data only", zap.Error(err))
	}

	followers := page.FanCount
	if followers == 0 {
		followers = page.FollowersCount
	}
	link := page.Link
	if link == "" {
		link = "https://facebook.com/" + pageID
	}
	name := page.Name
	if name == "" {
		name = "Página del Cliente"
	}

	return FetchResult{
		Platform: Meta,
		Status:   StatusReal,
		Data: map[string]interface{}{
			"page_info": map[string]interface{}{
				"name":            name,
				"followers_count": followers,
				"page_url":        link,
			},
			"metrics": map[string]interface{}{
				"page_fans": map[string]interface{}{
					"current_value": page.FanCount,
					"description":   "Número total de seguidores de la página",
				},
				"page_impressions": map[string]interface{}{
					"current_value": insights.sum("page_impressions"),
					"description":   "Veces que se mostró contenido de la página (últimos 7 días)",
				},
				"page_engaged_users": map[string]interface{}{
					"current_value": insights.sum("page_engaged_users"),
					"description":   "Usuarios que interactuaron con la página (últimos 7 días)",
				},
			},
			"date_range": map[string]interface{}{
				"period": in.DateRange,
			},
			"last_updated": nowISO(),
			"api_version":  "v18.0",
		},
	}
}

func (m metaInsights) sum(name string) float64 {
	var total float64
	for _, d := range m.Data {
		if d.Name != name {
			continue
		}
		for _, v := range d.Values {
			total += v.Value
		}
	}
	return total
}
