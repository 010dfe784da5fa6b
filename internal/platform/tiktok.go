package platform

import "context"

// tiktokAdapter has no real TikTok integration yet.
type tiktokAdapter struct{}

func newTikTokAdapter() *tiktokAdapter { return &tiktokAdapter{} }

func (a *tiktokAdapter) Platform() string { return TikTok }

func (a *tiktokAdapter) RequiredFields() []string { return []string{"access_token", "user_id"} }

func (a *tiktokAdapter) Validate(_ context.Context, creds Credentials) ValidationResult {
	if missing := missingFields(creds, a.RequiredFields()); len(missing) > 0 {
		return incompleteResult(missing)
	}
	return ValidationResult{
		Success: true,
		Message: "Test de credenciales de TikTok (simulado)",
		Details: map[string]interface{}{
			"note": "Implementar prueba real de TikTok API",
		},
	}
}

func (a *tiktokAdapter) Fetch(_ context.Context, in FetchInput) FetchResult {
	daysBack := in.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	return FetchResult{
		Platform: TikTok,
		Status:   StatusSimulated,
		Data:     tiktokSimulatedMetrics(daysBack),
	}
}
