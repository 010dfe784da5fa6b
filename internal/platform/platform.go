package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/infra/httpclient"
	"go.uber.org/zap"
)

// Supported platform identifiers. These are the values stored in
// client_api_credentials.platform and accepted by the credential facade.
const (
	Meta            = "meta"
	Twitter         = "twitter"
	LinkedIn        = "linkedin"
	TikTok          = "tiktok"
	GoogleAnalytics = "google_analytics"
)

// All returns the five supported platforms in consolidation order.
func All() []string {
	return []string{Meta, Twitter, LinkedIn, TikTok, GoogleAnalytics}
}

var displayNames = map[string]string{
	Meta:            "Facebook",
	Twitter:         "Twitter",
	LinkedIn:        "LinkedIn",
	TikTok:          "TikTok",
	GoogleAnalytics: "Google Analytics",
}

// DisplayName returns the user-facing platform name used in messages.
func DisplayName(platform string) string {
	if n, ok := displayNames[platform]; ok {
		return n
	}
	return platform
}

// Credentials is the opaque per-platform secret bundle. Values are always
// strings on the wire; non-string JSONB values are stringified on load.
type Credentials map[string]string

// FromJSONMap coerces a stored JSONB credentials blob into Credentials.
func FromJSONMap(m map[string]interface{}) Credentials {
	creds := make(Credentials, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			creds[k] = s
		} else if v != nil {
			creds[k] = fmt.Sprintf("%v", v)
		}
	}
	return creds
}

// Status is the typed outcome of a metrics fetch. The original system
// signalled this with inconsistently-spelled strings; callers here switch on
// the type instead of comparing payload fields.
type Status string

const (
	// StatusReal: the platform API answered and the payload is real telemetry.
	StatusReal Status = "real"
	// StatusFallback: a real attempt failed; the payload is randomized
	// placeholder data scaled by the client's industry.
	StatusFallback Status = "fallback"
	// StatusSimulated: no real integration exists for this platform yet; the
	// payload is placeholder data and no API call was attempted.
	StatusSimulated Status = "simulated"
	// StatusNoCredentials: nothing stored for this (client, platform) pair.
	StatusNoCredentials Status = "no_credentials"
)

// Connected reports whether the fetch produced a usable payload (real or
// placeholder). Only missing credentials count as a failed platform.
func (s Status) Connected() bool {
	return s == StatusReal || s == StatusFallback || s == StatusSimulated
}

// ValidationResult is the outcome of a credential test. Upstream failures are
// reported here, never as Go errors.
type ValidationResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

// FetchInput carries everything an adapter needs for one metrics snapshot.
type FetchInput struct {
	Credentials Credentials
	ClientName  string
	Industry    string
	DateRange   string
	DaysBack    int
}

// FetchResult is one platform's outcome inside a consolidated report.
type FetchResult struct {
	Platform string                 `json:"platform"`
	Status   Status                 `json:"status"`
	Data     map[string]interface{} `json:"data,omitempty"`
	// Message carries the fallback reason or, for no_credentials, the
	// user-facing remediation hint.
	Message string `json:"message,omitempty"`
}

// NoCredentialsResult is the structured outcome for a platform with nothing
// configured. It is a value, not an error: the aggregator counts it as a
// failed platform and moves on.
func NoCredentialsResult(platform string) FetchResult {
	name := DisplayName(platform)
	return FetchResult{
		Platform: platform,
		Status:   StatusNoCredentials,
		Message: fmt.Sprintf("No se encontraron credenciales de %s para este cliente. "+
			"Configura las credenciales de %s en la sección de Configuración", name, name),
	}
}

// Adapter is one platform integration: a cheap credential check and a
// normalized metrics snapshot. Neither method returns a Go error; all
// upstream failures are absorbed into the result types.
type Adapter interface {
	Platform() string
	RequiredFields() []string
	Validate(ctx context.Context, creds Credentials) ValidationResult
	Fetch(ctx context.Context, in FetchInput) FetchResult
}

// Registry holds the adapter set keyed by platform identifier.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(hc *httpclient.Client, cfg *config.Config, log *zap.Logger) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	r.register(newMetaAdapter(hc, cfg.PlatformAPI.MetaBaseURL, log))
	r.register(newTwitterAdapter(hc, cfg.PlatformAPI.TwitterBaseURL, log))
	r.register(newLinkedInAdapter())
	r.register(newTikTokAdapter())
	r.register(newAnalyticsAdapter())
	return r
}

func (r *Registry) register(a Adapter) {
	r.adapters[a.Platform()] = a
}

// Get returns the adapter for a platform identifier.
func (r *Registry) Get(platform string) (Adapter, bool) {
	a, ok := r.adapters[platform]
	return a, ok
}

// Supported reports whether the identifier names a registered platform.
func (r *Registry) Supported(platform string) bool {
	_, ok := r.adapters[platform]
	return ok
}

// missingFields returns required credential fields that are absent or blank.
func missingFields(creds Credentials, required []string) []string {
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(creds[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// incompleteResult fails a validation without touching the network.
func incompleteResult(fields []string) ValidationResult {
	return ValidationResult{
		Success: false,
		Message: fmt.Sprintf("Credenciales incompletas: %s son requeridos", strings.Join(fields, " y ")),
		Details: map[string]interface{}{},
	}
}
