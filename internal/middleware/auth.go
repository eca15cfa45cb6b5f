package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

// APIKeyHeader carries the shared API key
const APIKeyHeader = "x-api-key"

// PrincipalKey stores the authenticated caller in the gin context
const PrincipalKey = "principal"

// apiKeyPrincipal identifies callers authenticated by the shared key
const apiKeyPrincipal = "api-key"

// ErrMissingCredentials is returned when a request carries neither an API key nor a bearer token
var ErrMissingCredentials = errors.New("API key or bearer token is required")

// AuthService checks API keys and HS256 bearer tokens
type AuthService struct {
	apiKey    []byte
	jwtSecret []byte
	issuer    string
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		apiKey:    []byte(cfg.APIKey),
		jwtSecret: []byte(cfg.JWTSecret),
		issuer:    cfg.JWTIssuer,
	}
}

// GenerateToken signs a token for subject valid for ttl
func (a *AuthService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if len(a.jwtSecret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a bearer token and returns its claims
func (a *AuthService) ValidateToken(tokenString string) (*jwt.RegisteredClaims, error) {
	if len(a.jwtSecret) == 0 {
		return nil, errors.New("bearer tokens are not accepted")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate returns the caller identity for the supplied credentials
func (a *AuthService) Authenticate(apiKey, authorization string) (string, error) {
	if apiKey != "" {
		if len(a.apiKey) > 0 && subtle.ConstantTimeCompare([]byte(apiKey), a.apiKey) == 1 {
			return apiKeyPrincipal, nil
		}
		return "", errors.New("invalid API key")
	}

	if authorization == "" {
		return "", ErrMissingCredentials
	}

	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("invalid authorization header format, expected: Bearer <token>")
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Guard rejects requests without a valid API key or bearer token
func Guard(authService *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authService.Authenticate(c.GetHeader(APIKeyHeader), c.GetHeader("Authorization"))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"path":       c.Request.URL.Path,
				"error":      err.Error(),
			}).Warn("Access denied")

			abortWithError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}
