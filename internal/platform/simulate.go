package platform

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Industry multipliers for placeholder data, carried over from the original
// dashboard so simulated numbers stay plausible per vertical.
var industryMultipliers = map[string]float64{
	"Cuidado Personal y Salud": 1.2,
	"Salud y Cuidado Personal": 1.2,
	"E-commerce":               1.1,
	"Marketing y Publicidad":   1.0,
	"Tecnología":               0.9,
}

const defaultMultiplier = 1.0

// IndustryMultiplier returns the placeholder scaling factor for an industry.
func IndustryMultiplier(industry string) float64 {
	if m, ok := industryMultipliers[industry]; ok {
		return m
	}
	return defaultMultiplier
}

// variation returns a random factor in [0.8, 1.2).
func variation() float64 {
	return 0.8 + rand.Float64()*0.4
}

func scaled(base float64, mult float64) int {
	return int(math.Round(base * mult * variation()))
}

func scaledRate(base float64, mult float64) float64 {
	return math.Round(base*mult*variation()*100) / 100
}

func randBetween(min, spread int) int {
	return rand.IntN(spread) + min
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// twitterFallbackMetrics is the payload returned when the Twitter API attempt
// fails: same shape as the real one, random values.
func twitterFallbackMetrics(username string, daysBack int) map[string]interface{} {
	return map[string]interface{}{
		"account_info": map[string]interface{}{
			"username":        "@" + username,
			"name":            "Cliente Twitter",
			"followers_count": randBetween(1000, 5000),
			"following_count": randBetween(200, 800),
			"tweet_count":     randBetween(500, 3000),
		},
		"period_metrics": map[string]interface{}{
			"days_analyzed":            daysBack,
			"tweets_in_period":         randBetween(3, 15),
			"total_engagement":         randBetween(150, 800),
			"avg_engagement_per_tweet": math.Round((rand.Float64()*40+8)*100) / 100,
			"total_likes":              randBetween(80, 400),
			"total_retweets":           randBetween(25, 150),
			"total_replies":            randBetween(15, 80),
		},
		"date_range": map[string]interface{}{
			"period": fmt.Sprintf("%d días", daysBack),
		},
		"last_updated": nowISO(),
		"error_info":   "API real falló, mostrando datos simulados",
	}
}

// metaFallbackMetrics mirrors the Facebook payload shape with random values.
func metaFallbackMetrics(pageID, dateRange string) map[string]interface{} {
	return map[string]interface{}{
		"page_info": map[string]interface{}{
			"name":            "Página del Cliente",
			"followers_count": randBetween(1000, 5000),
			"page_url":        "https://facebook.com/" + pageID,
		},
		"metrics": map[string]interface{}{
			"page_fans": map[string]interface{}{
				"current_value": randBetween(500, 3000),
				"description":   "Número total de seguidores de la página (simulado)",
			},
			"page_impressions": map[string]interface{}{
				"current_value": randBetween(5000, 25000),
				"description":   "Impresiones de página (simulado)",
			},
			"page_engaged_users": map[string]interface{}{
				"current_value": randBetween(100, 500),
				"description":   "Usuarios comprometidos (simulado)",
			},
		},
		"date_range": map[string]interface{}{
			"period": dateRange,
		},
		"last_updated": nowISO(),
		"error_info":   "API real falló, mostrando datos simulados",
	}
}

// linkedinSimulatedMetrics: no real LinkedIn integration yet.
func linkedinSimulatedMetrics(dateRange string, daysBack int) map[string]interface{} {
	return map[string]interface{}{
		"company_info": map[string]interface{}{
			"name":           "Empresa del Cliente",
			"description":    "Descripción de la empresa del cliente",
			"follower_count": randBetween(500, 3000),
			"staff_count":    randBetween(10, 100),
		},
		"period_metrics": map[string]interface{}{
			"days_analyzed":     daysBack,
			"posts_in_period":   randBetween(3, 15),
			"avg_posts_per_day": math.Round((rand.Float64()*2+0.2)*100) / 100,
			"total_impressions": randBetween(2000, 10000),
			"total_clicks":      randBetween(100, 500),
			"total_reactions":   randBetween(50, 200),
		},
		"date_range": map[string]interface{}{
			"period": dateRange,
		},
		"last_updated": nowISO(),
	}
}

// tiktokSimulatedMetrics: no real TikTok integration yet.
func tiktokSimulatedMetrics(daysBack int) map[string]interface{} {
	return map[string]interface{}{
		"account_info": map[string]interface{}{
			"username":        "@cliente_tiktok",
			"display_name":    "Cliente TikTok",
			"followers_count": randBetween(5000, 50000),
			"following_count": randBetween(50, 500),
			"video_count":     randBetween(30, 200),
			"likes_count":     randBetween(10000, 100000),
		},
		"period_metrics": map[string]interface{}{
			"days_analyzed":       daysBack,
			"videos_in_period":    randBetween(2, 10),
			"total_views":         randBetween(50000, 500000),
			"total_likes":         randBetween(2500, 25000),
			"total_shares":        randBetween(100, 1000),
			"total_comments":      randBetween(200, 2000),
			"avg_engagement_rate": math.Round((rand.Float64()*5+2)*100) / 100,
		},
		"top_videos": []map[string]interface{}{
			{
				"id":       "1",
				"views":    randBetween(10000, 100000),
				"likes":    randBetween(500, 5000),
				"shares":   randBetween(50, 200),
				"comments": randBetween(30, 300),
			},
		},
		"date_range": map[string]interface{}{
			"period": fmt.Sprintf("%d días", daysBack),
		},
		"last_updated": nowISO(),
	}
}

// analyticsSimulatedMetrics: no real Google Analytics integration yet.
func analyticsSimulatedMetrics(dateRange string, daysBack int) map[string]interface{} {
	return map[string]interface{}{
		"website_info": map[string]interface{}{
			"property_id":     "GA4-XXXXXXX-1",
			"website_url":     "https://sitio-cliente.com",
			"tracking_active": true,
		},
		"period_metrics": map[string]interface{}{
			"days_analyzed":        daysBack,
			"total_users":          randBetween(1000, 5000),
			"new_users":            randBetween(500, 3000),
			"sessions":             randBetween(1200, 6000),
			"page_views":           randBetween(3000, 15000),
			"avg_session_duration": math.Round((rand.Float64()*300+120)*100) / 100,
			"bounce_rate":          math.Round((rand.Float64()*30+40)*100) / 100,
		},
		"traffic_sources": map[string]interface{}{
			"organic_search": math.Round((rand.Float64()*40+30)*100) / 100,
			"direct":         math.Round((rand.Float64()*25+15)*100) / 100,
			"social_media":   math.Round((rand.Float64()*20+10)*100) / 100,
			"referral":       math.Round((rand.Float64()*15+5)*100) / 100,
			"email":          math.Round((rand.Float64()*10+2)*100) / 100,
		},
		"top_pages": []map[string]interface{}{
			{
				"page":         "/",
				"views":        randBetween(500, 2000),
				"unique_views": randBetween(300, 1500),
			},
			{
				"page":         "/productos",
				"views":        randBetween(200, 1000),
				"unique_views": randBetween(150, 800),
			},
		},
		"conversions": map[string]interface{}{
			"goal_completions":  randBetween(10, 50),
			"conversion_rate":   math.Round((rand.Float64()*3+1)*100) / 100,
			"ecommerce_revenue": math.Round((rand.Float64()*10000+2000)*100) / 100,
		},
		"date_range": map[string]interface{}{
			"period": dateRange,
		},
		"last_updated": nowISO(),
	}
}

// FlatMetrics produces the flat metric_name -> value map that the analytics
// store persists row-by-row, scaled by the client's industry multiplier.
func FlatMetrics(platform, industry string) map[string]float64 {
	mult := IndustryMultiplier(industry)

	switch platform {
	case Meta:
		return map[string]float64{
			"reach":              float64(scaled(15000, mult)),
			"impressions":        float64(scaled(45000, mult)),
			"engagement_rate":    scaledRate(4.2, mult),
			"likes":              float64(scaled(850, mult)),
			"comments":           float64(scaled(120, mult)),
			"shares":             float64(scaled(65, mult)),
			"click_through_rate": scaledRate(2.1, mult),
			"cost_per_click":     scaledRate(1.50, 1.0),
		}
	case Twitter:
		return map[string]float64{
			"impressions":     float64(scaled(25000, mult)),
			"engagement_rate": scaledRate(3.5, mult),
			"retweets":        float64(scaled(85, mult)),
			"likes":           float64(scaled(320, mult)),
			"replies":         float64(scaled(45, mult)),
			"profile_clicks":  float64(scaled(150, mult)),
			"hashtag_clicks":  float64(scaled(75, mult)),
		}
	case LinkedIn:
		return map[string]float64{
			"impressions":     float64(scaled(8000, mult)),
			"engagement_rate": scaledRate(3.1, mult),
			"clicks":          float64(scaled(180, mult)),
			"likes":           float64(scaled(95, mult)),
			"comments":        float64(scaled(25, mult)),
			"shares":          float64(scaled(15, mult)),
			"follower_growth": float64(scaled(12, mult)),
		}
	case TikTok:
		return map[string]float64{
			"views":           float64(scaled(50000, mult)),
			"engagement_rate": scaledRate(8.5, mult),
			"likes":           float64(scaled(4200, mult)),
			"comments":        float64(scaled(280, mult)),
			"shares":          float64(scaled(150, mult)),
			"profile_visits":  float64(scaled(320, mult)),
			"follower_growth": float64(scaled(45, mult)),
		}
	case GoogleAnalytics:
		return map[string]float64{
			"sessions":        float64(scaled(4000, mult)),
			"page_views":      float64(scaled(9000, mult)),
			"total_users":     float64(scaled(3000, mult)),
			"bounce_rate":     scaledRate(52, 1.0),
			"conversion_rate": scaledRate(2.4, mult),
		}
	default:
		return map[string]float64{}
	}
}

var metricUnits = map[string]string{
	"engagement_rate":    "percentage",
	"click_through_rate": "percentage",
	"bounce_rate":        "percentage",
	"conversion_rate":    "percentage",
	"cost_per_click":     "currency",
}

// MetricUnit maps a metric name to its unit; everything unlisted is a count.
func MetricUnit(name string) string {
	if u, ok := metricUnits[name]; ok {
		return u
	}
	return "count"
}
