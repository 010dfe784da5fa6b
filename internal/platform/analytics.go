package platform

import "context"

// analyticsAdapter has no real Google Analytics integration yet. The GA4 Data
// API needs a service account flow that is still pending.
type analyticsAdapter struct{}

func newAnalyticsAdapter() *analyticsAdapter { return &analyticsAdapter{} }

func (a *analyticsAdapter) Platform() string { return GoogleAnalytics }

func (a *analyticsAdapter) RequiredFields() []string {
	return []string{"property_id", "service_account_key"}
}

func (a *analyticsAdapter) Validate(_ context.Context, creds Credentials) ValidationResult {
	if missing := missingFields(creds, a.RequiredFields()); len(missing) > 0 {
		return incompleteResult(missing)
	}
	return ValidationResult{
		Success: true,
		Message: "Test de credenciales de Google Analytics (simulado)",
		Details: map[string]interface{}{
			"note": "Implementar prueba real de Google Analytics API",
		},
	}
}

func (a *analyticsAdapter) Fetch(_ context.Context, in FetchInput) FetchResult {
	daysBack := in.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	return FetchResult{
		Platform: GoogleAnalytics,
		Status:   StatusSimulated,
		Data:     analyticsSimulatedMetrics(in.DateRange, daysBack),
	}
}
