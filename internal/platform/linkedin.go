package platform

import "context"

// linkedinAdapter has no real LinkedIn integration yet. Validation checks the
// stored fields and reports a simulated pass; fetches serve placeholder data.
type linkedinAdapter struct{}

func newLinkedInAdapter() *linkedinAdapter { return &linkedinAdapter{} }

func (a *linkedinAdapter) Platform() string { return LinkedIn }

func (a *linkedinAdapter) RequiredFields() []string { return []string{"access_token", "company_id"} }

func (a *linkedinAdapter) Validate(_ context.Context, creds Credentials) ValidationResult {
	if missing := missingFields(creds, a.RequiredFields()); len(missing) > 0 {
		return incompleteResult(missing)
	}
	return ValidationResult{
		Success: true,
		Message: "Test de credenciales de LinkedIn (simulado)",
		Details: map[string]interface{}{
			"note": "Implementar prueba real de LinkedIn API",
		},
	}
}

func (a *linkedinAdapter) Fetch(_ context.Context, in FetchInput) FetchResult {
	daysBack := in.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	return FetchResult{
		Platform: LinkedIn,
		Status:   StatusSimulated,
		Data:     linkedinSimulatedMetrics(in.DateRange, daysBack),
	}
}
