package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain"
)

// DefaultLoginPath is the login endpoint relative to the backend base URL
const DefaultLoginPath = "F0_Acceso/Login"

// AuthServiceConfig holds the configuration for the auth service
type AuthServiceConfig struct {
	BaseURL   string
	LoginPath string
}

// AuthService implements domain.Authenticator against the backend login endpoint
type AuthService struct {
	config     AuthServiceConfig
	httpClient domain.HTTPClientInterface
}

// NewAuthService creates a new auth service
func NewAuthService(config AuthServiceConfig, httpClient domain.HTTPClientInterface) domain.Authenticator {
	if httpClient == nil {
		panic("HTTP client cannot be nil")
	}
	if config.LoginPath == "" {
		config.LoginPath = DefaultLoginPath
	}

	return &AuthService{
		config:     config,
		httpClient: httpClient,
	}
}

// Authenticate exchanges credentials for a bearer token.
// A single attempt is made and the token is not stored.
func (s *AuthService) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.AuthResult, error) {
	loginURL, err := url.JoinPath(strings.TrimSpace(s.config.BaseURL), strings.TrimSpace(s.config.LoginPath))
	if err != nil {
		return domain.AuthResult{}, common.AuthError{
			Kind:    common.AuthTransport,
			Message: fmt.Sprintf("failed to build login URL: %v", err),
			Err:     err,
		}
	}

	requestBody, err := json.Marshal(credentials)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	resp, err := s.httpClient.Request(
		ctx,
		http.MethodPost,
		loginURL,
		requestBody,
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return domain.AuthResult{}, common.AuthError{
			Kind:    common.AuthTransport,
			Message: err.Error(),
			Err:     err,
		}
	}

	body, err := s.httpClient.ReadResponseBody(resp)
	if err != nil {
		return domain.AuthResult{}, common.AuthError{
			Kind:       common.AuthTransport,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AuthResult{}, common.AuthError{
			Kind:       common.AuthBackendRejected,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var result domain.AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.AuthResult{}, common.AuthError{
			Kind:       common.AuthMalformedResponse,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to parse login response: %v", err),
			Err:        err,
		}
	}

	if strings.TrimSpace(result.Token) == "" {
		return domain.AuthResult{}, common.AuthError{
			Kind:       common.AuthMalformedResponse,
			StatusCode: resp.StatusCode,
			Message:    "login response carries no token",
		}
	}

	common.LoggerFromContext(ctx).Info("authenticated against backend",
		"username", credentials.Username,
		"role", roleOf(result))

	return result, nil
}

func roleOf(result domain.AuthResult) string {
	if result.UserDetails == nil {
		return ""
	}
	return result.UserDetails.Role
}
