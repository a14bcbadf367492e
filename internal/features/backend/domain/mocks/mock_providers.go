package mocks

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"
	"sid-client/internal/features/backend/domain"
)

// MockHTTPClient is a mock implementation of domain.HTTPClientInterface
type MockHTTPClient struct {
	mock.Mock
}

// Request mocks the Request method
func (m *MockHTTPClient) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	args := m.Called(ctx, method, url, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// ReadResponseBody mocks the ReadResponseBody method
func (m *MockHTTPClient) ReadResponseBody(resp *http.Response) ([]byte, error) {
	args := m.Called(resp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSecretProvider is a mock implementation of domain.SecretProvider
type MockSecretProvider struct {
	mock.Mock
}

// GetSecretData mocks the GetSecretData method
func (m *MockSecretProvider) GetSecretData(ctx context.Context, secretName string, keys []string) (map[string]string, error) {
	args := m.Called(ctx, secretName, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockAuthenticator is a mock implementation of domain.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method
func (m *MockAuthenticator) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.AuthResult, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

// MockCredentialSource is a mock implementation of domain.CredentialSource
type MockCredentialSource struct {
	mock.Mock
}

// Credentials mocks the Credentials method
func (m *MockCredentialSource) Credentials(ctx context.Context) (domain.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Credentials), args.Error(1)
}

// MockAPICaller is a mock implementation of domain.APICaller
type MockAPICaller struct {
	mock.Mock
}

// CallAPI mocks the CallAPI method
func (m *MockAPICaller) CallAPI(ctx context.Context, method, apiPath string, query url.Values, requestBody interface{}) (*http.Response, error) {
	args := m.Called(ctx, method, apiPath, query, requestBody)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// CallAPIAndParseResponse mocks the CallAPIAndParseResponse method
func (m *MockAPICaller) CallAPIAndParseResponse(ctx context.Context, method, apiPath string, query url.Values, requestBody interface{}, result interface{}) ([]byte, error) {
	args := m.Called(ctx, method, apiPath, query, requestBody, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
