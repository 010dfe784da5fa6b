package config

import (
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

// AuthConfig drives bearer-token authentication for agency accounts.
// The default agency is seeded at boot from ApiBearerToken; requests carrying
// a Supabase access token are validated against the identity provider when
// Supabase.Enabled is set.
type AuthConfig struct {
	ApiBearerToken           string         `mapstructure:"api_bearer_token"`
	SecretPepper             string         `mapstructure:"secret_pepper"`
	AgencyTokenPrefix        string         `mapstructure:"agency_token_prefix"`
	EnableArgon2Verification bool           `mapstructure:"enable_argon2_verification"`
	CacheTTLSec              int            `mapstructure:"cache_ttl_sec"`
	Supabase                 SupabaseConfig `mapstructure:"supabase"`
}

type SupabaseConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ProjectRef string `mapstructure:"project_ref"`
	AnonKey    string `mapstructure:"anon_key"`
}

// PlatformAPIConfig configures outbound calls to the social platform APIs.
// The original system had no timeout at all; 10s keeps one slow platform from
// stalling the consolidated response.
type PlatformAPIConfig struct {
	TimeoutSec       int    `mapstructure:"timeout_sec"`
	MetaBaseURL      string `mapstructure:"meta_base_url"`
	TwitterBaseURL   string `mapstructure:"twitter_base_url"`
	LinkedInBaseURL  string `mapstructure:"linkedin_base_url"`
	TikTokBaseURL    string `mapstructure:"tiktok_base_url"`
	AnalyticsBaseURL string `mapstructure:"analytics_base_url"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	PlatformAPI PlatformAPIConfig `mapstructure:"platform_api"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Log         LogConfig         `mapstructure:"log"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("AGENCIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; env + defaults must be enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "agencia-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("auth.agency_token_prefix", "sk_agency_")
	v.SetDefault("auth.cache_ttl_sec", 300)
	v.SetDefault("platform_api.timeout_sec", 10)
	v.SetDefault("platform_api.meta_base_url", "https://graph.facebook.com/v18.0")
	v.SetDefault("platform_api.twitter_base_url", "https://api.twitter.com/2")
	v.SetDefault("platform_api.linkedin_base_url", "https://api.linkedin.com/v2")
	v.SetDefault("platform_api.tiktok_base_url", "https://open.tiktokapis.com/v2")
	v.SetDefault("platform_api.analytics_base_url", "https://analyticsdata.googleapis.com/v1beta")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.8)
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("log.level", "info")
}
