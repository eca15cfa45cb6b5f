package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults reported by /info when the environment does not say otherwise.
const (
	DefaultDeploymentType   = "unknown"
	DefaultImageType        = "custom"
	DefaultRuntimeInterface = "direct"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Host        string
	Port        string `validate:"required,numeric"`
	Service     ServiceConfig
	Docs        DocsConfig
	Log         LogConfig
	Limits      LimitsConfig
	Auth        AuthConfig
	Lambda      LambdaConfig
}

// ServiceConfig describes how and where the service is deployed
type ServiceConfig struct {
	DeploymentType   string
	ImageType        string
	RuntimeInterface string
}

// DocsConfig holds the paths of the API documentation.
// An empty path disables that viewer; an empty OpenAPIPath disables all of them.
type DocsConfig struct {
	OpenAPIPath string `validate:"omitempty,startswith=/"`
	SwaggerPath string `validate:"omitempty,startswith=/"`
	RedocPath   string `validate:"omitempty,startswith=/"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=json text"`
}

// LimitsConfig holds request limits
type LimitsConfig struct {
	MaxBodyBytes   int64   `validate:"gt=0"`
	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=0"`
}

// AuthConfig holds the optional access guard configuration
type AuthConfig struct {
	APIKey    string
	JWTSecret string
	JWTIssuer string
}

// LambdaConfig holds adapter configuration
type LambdaConfig struct {
	BasePath string `validate:"omitempty,startswith=/"`
}

// RoutePaths are served by the API and cannot be reused for documentation
var RoutePaths = []string{"/", "/health", "/info", "/echo"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateDocsPaths, DocsConfig{})
	return v
}

// validateDocsPaths rejects documentation paths that would collide when
// registered on the router next to the API routes and each other.
func validateDocsPaths(sl validator.StructLevel) {
	docs := sl.Current().Interface().(DocsConfig)
	if docs.OpenAPIPath == "" {
		return
	}

	taken := make(map[string]bool, len(RoutePaths)+3)
	for _, p := range RoutePaths {
		taken[p] = true
	}

	check := func(value, field string) {
		if value == "" {
			return
		}
		if taken[value] || (docs.SwaggerPath != "" && strings.HasPrefix(value, docs.SwaggerPath+"/")) {
			sl.ReportError(value, field, field, "free_route", "")
			return
		}
		taken[value] = true
	}

	check(docs.OpenAPIPath, "OpenAPIPath")
	check(docs.SwaggerPath, "SwaggerPath")
	check(docs.RedocPath, "RedocPath")
}

// Load loads configuration from environment variables and an optional .env file
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	// An empty DOCS_* variable disables that viewer
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "80")
	v.SetDefault("DEPLOYMENT_TYPE", DefaultDeploymentType)
	v.SetDefault("IMAGE_TYPE", DefaultImageType)
	v.SetDefault("RUNTIME_INTERFACE", DefaultRuntimeInterface)
	v.SetDefault("DOCS_OPENAPI_PATH", "/openapi.json")
	v.SetDefault("DOCS_SWAGGER_PATH", "/swagger")
	v.SetDefault("DOCS_REDOC_PATH", "/redoc")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Host:        v.GetString("HOST"),
		Port:        v.GetString("PORT"),
		Service: ServiceConfig{
			DeploymentType:   v.GetString("DEPLOYMENT_TYPE"),
			ImageType:        v.GetString("IMAGE_TYPE"),
			RuntimeInterface: v.GetString("RUNTIME_INTERFACE"),
		},
		Docs: DocsConfig{
			OpenAPIPath: v.GetString("DOCS_OPENAPI_PATH"),
			SwaggerPath: strings.TrimSuffix(v.GetString("DOCS_SWAGGER_PATH"), "/"),
			RedocPath:   strings.TrimSuffix(v.GetString("DOCS_REDOC_PATH"), "/"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Limits: LimitsConfig{
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Auth: AuthConfig{
			APIKey:    v.GetString("AUTH_API_KEY"),
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer: v.GetString("AUTH_JWT_ISSUER"),
		},
		Lambda: LambdaConfig{
			BasePath: strings.TrimSuffix(v.GetString("LAMBDA_BASE_PATH"), "/"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against its validation tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// GuardEnabled reports whether POST routes require an API key or bearer token
func (c *Config) GuardEnabled() bool {
	return c.IsProduction() && (c.Auth.APIKey != "" || c.Auth.JWTSecret != "")
}
