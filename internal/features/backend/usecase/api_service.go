package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain"
)

// APIServiceConfig holds the configuration for the API service
type APIServiceConfig struct {
	BaseURL string
}

// APIService performs calls against backend paths with a bound bearer token
type APIService struct {
	config     APIServiceConfig
	token      string
	httpClient domain.HTTPClientInterface
}

// NewAPIService creates an API service bound to token.
// An empty token is rejected so unauthenticated calls fail before reaching the backend.
func NewAPIService(config APIServiceConfig, httpClient domain.HTTPClientInterface, token string) (domain.APICaller, error) {
	if httpClient == nil {
		return nil, common.InvalidInputError("HTTP client cannot be nil")
	}
	if strings.TrimSpace(token) == "" {
		return nil, common.InvalidInputError("bearer token cannot be empty")
	}
	if _, err := url.Parse(strings.TrimSpace(config.BaseURL)); err != nil || strings.TrimSpace(config.BaseURL) == "" {
		return nil, common.InvalidInputError("invalid backend base URL %q", config.BaseURL)
	}

	return &APIService{
		config:     config,
		token:      token,
		httpClient: httpClient,
	}, nil
}

// CallAPI makes an authenticated API call
func (s *APIService) CallAPI(
	ctx context.Context,
	method string,
	apiPath string,
	query url.Values,
	requestBody interface{},
) (*http.Response, error) {
	if apiPath == "" {
		return nil, common.InvalidInputError("API path cannot be empty")
	}

	apiURL, err := s.buildURL(apiPath, query)
	if err != nil {
		return nil, err
	}

	// Marshal request body if provided
	var bodyBytes []byte
	if requestBody != nil {
		bodyBytes, err = json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + s.token,
	}

	resp, err := s.httpClient.Request(ctx, method, apiURL, bodyBytes, headers)
	if err != nil {
		return nil, common.NewTransportError(operationName(method, apiPath), err)
	}

	return resp, nil
}

// CallAPIAndParseResponse calls an API, requires a 2xx status and parses the
// body into result when result is not nil and the body is not empty.
func (s *APIService) CallAPIAndParseResponse(
	ctx context.Context,
	method string,
	apiPath string,
	query url.Values,
	requestBody interface{},
	result interface{},
) ([]byte, error) {
	resp, err := s.CallAPI(ctx, method, apiPath, query, requestBody)
	if err != nil {
		return nil, err
	}

	operation := operationName(method, apiPath)

	body, err := s.httpClient.ReadResponseBody(resp)
	if err != nil {
		return nil, common.NewTransportError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, common.NewHTTPError(operation, resp.StatusCode, body)
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return body, common.NewDecodeError(operation, err)
		}
	}

	return body, nil
}

func (s *APIService) buildURL(apiPath string, query url.Values) (string, error) {
	joined, err := url.JoinPath(strings.TrimSpace(s.config.BaseURL), strings.TrimSpace(apiPath))
	if err != nil {
		return "", fmt.Errorf("failed to build API URL: %w", err)
	}
	if len(query) == 0 {
		return joined, nil
	}

	u, err := url.Parse(joined)
	if err != nil {
		return "", fmt.Errorf("failed to build API URL: %w", err)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func operationName(method, apiPath string) string {
	return method + " " + apiPath
}
