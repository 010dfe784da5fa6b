package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/auth-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/pkg/utils/secrets"
	"github.com/tiendastsgt/agencia/internal/pkg/utils/tokens"
)

const agencyCacheKeyPrefix = "auth:agency:"

// AgencyKey is the gin context key holding the authenticated *model.Agency.
const AgencyKey = "agency"

// AgencyAuth authenticates requests with agency bearer tokens. Verified
// agencies are cached in Redis so the argon2 verification only runs on cache
// misses. When Supabase auth is enabled, dashboard user JWTs are accepted too
// and resolve to the default agency.
func AgencyAuth(cfg *config.Config, db *gorm.DB, cache *redis.Client, log *zap.Logger) gin.HandlerFunc {
	var supa auth.Client
	if cfg.Auth.Supabase.Enabled {
		supa = auth.New(cfg.Auth.Supabase.ProjectRef, cfg.Auth.Supabase.AnonKey)
	}

	// The default agency is the one seeded from the configured API token; it
	// backs the Supabase user path.
	defaultLookup := ""
	if secret, ok := tokens.ParseToken(cfg.Auth.ApiBearerToken, cfg.Auth.AgencyTokenPrefix); ok {
		defaultLookup = tokens.HMAC256Hex(cfg.Auth.SecretPepper, secret)
	}

	cacheTTL := time.Duration(cfg.Auth.CacheTTLSec) * time.Second

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx, authSpan := otel.Tracer("middleware").Start(ctx, "agency_auth",
			trace.WithAttributes(attribute.String("middleware", "agency_auth")))

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, authSpan)
			return
		}
		raw := strings.TrimPrefix(authHeader, "Bearer ")

		secret, isAgencyToken := tokens.ParseToken(raw, cfg.Auth.AgencyTokenPrefix)

		var lookup string
		verifyArgon2 := false
		switch {
		case isAgencyToken:
			lookup = tokens.HMAC256Hex(cfg.Auth.SecretPepper, secret)
			verifyArgon2 = cfg.Auth.EnableArgon2Verification
		case supa != nil && defaultLookup != "":
			// Not an agency key: try it as a Supabase user JWT.
			if _, err := supa.WithToken(raw).GetUser(); err != nil {
				abortUnauthorized(c, authSpan)
				return
			}
			lookup = defaultLookup
		default:
			abortUnauthorized(c, authSpan)
			return
		}

		if agency, ok := cachedAgency(ctx, cache, lookup); ok {
			finishAuth(c, authSpan, agency)
			return
		}

		var agency model.Agency
		if err := db.WithContext(ctx).
			Where("secret_key_hmac = ? AND is_active = ?", lookup, true).
			First(&agency).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, authSpan)
				return
			}
			authSpan.RecordError(err)
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		if verifyArgon2 {
			_, verifySpan := otel.Tracer("middleware").Start(ctx, "agency_auth.verify_secret")
			pass, err := secrets.VerifySecret(secret, cfg.Auth.SecretPepper, agency.SecretKeyHashPHC)
			verifySpan.End()
			if err != nil || !pass {
				abortUnauthorized(c, authSpan)
				return
			}
		}

		storeCachedAgency(ctx, cache, lookup, &agency, cacheTTL, log)
		finishAuth(c, authSpan, &agency)
	}
}

func abortUnauthorized(c *gin.Context, span trace.Span) {
	span.SetAttributes(attribute.Bool("authenticated", false))
	span.End()
	c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
}

func finishAuth(c *gin.Context, span trace.Span, agency *model.Agency) {
	// Tag the request root span for telemetry filtering
	rootSpan := trace.SpanFromContext(c.Request.Context())
	if rootSpan.SpanContext().IsValid() {
		rootSpan.SetAttributes(attribute.String("agency_id", agency.ID.String()))
	}

	span.SetAttributes(
		attribute.String("agency_id", agency.ID.String()),
		attribute.Bool("authenticated", true),
	)
	span.End()

	c.Set(AgencyKey, agency)
	c.Next()
}

func cachedAgency(ctx context.Context, cache *redis.Client, lookup string) (*model.Agency, bool) {
	if cache == nil {
		return nil, false
	}
	raw, err := cache.Get(ctx, agencyCacheKeyPrefix+lookup).Bytes()
	if err != nil {
		return nil, false
	}
	var agency model.Agency
	if err := sonic.Unmarshal(raw, &agency); err != nil {
		return nil, false
	}
	return &agency, true
}

func storeCachedAgency(ctx context.Context, cache *redis.Client, lookup string, agency *model.Agency, ttl time.Duration, log *zap.Logger) {
	if cache == nil || ttl <= 0 {
		return
	}
	raw, err := sonic.Marshal(agency)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, agencyCacheKeyPrefix+lookup, raw, ttl).Err(); err != nil {
		log.Warn("agency cache write failed", zap.Error(err))
	}
}

// GetAgency returns the authenticated agency set by AgencyAuth.
func GetAgency(c *gin.Context) *model.Agency {
	v, ok := c.Get(AgencyKey)
	if !ok {
		return nil
	}
	agency, _ := v.(*model.Agency)
	return agency
}
