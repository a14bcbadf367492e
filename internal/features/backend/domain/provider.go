package domain

import (
	"context"
	"net/http"
	"net/url"
)

// Authenticator exchanges credentials for a bearer token
type Authenticator interface {
	// Authenticate performs a single login attempt
	Authenticate(ctx context.Context, credentials Credentials) (AuthResult, error)
}

// CredentialSource supplies the login pair
type CredentialSource interface {
	// Credentials returns the username and password to log in with
	Credentials(ctx context.Context) (Credentials, error)
}

// SecretProvider defines the interface for retrieving secrets
type SecretProvider interface {
	// GetSecretData retrieves specific keys from a secret
	GetSecretData(ctx context.Context, secretName string, keys []string) (map[string]string, error)
}

// HTTPClientInterface defines the contract for HTTP clients
type HTTPClientInterface interface {
	// Request makes an HTTP request with the specified method, URL, body, and headers
	Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error)

	// ReadResponseBody reads and closes the response body
	ReadResponseBody(resp *http.Response) ([]byte, error)
}

// APICaller performs authenticated calls against backend paths
type APICaller interface {
	// CallAPI sends requestBody as JSON to apiPath and returns the raw response
	CallAPI(
		ctx context.Context,
		method string,
		apiPath string,
		query url.Values,
		requestBody interface{},
	) (*http.Response, error)

	// CallAPIAndParseResponse calls an API, requires a 2xx status and parses the
	// body into result when result is not nil. It returns the raw body.
	CallAPIAndParseResponse(
		ctx context.Context,
		method string,
		apiPath string,
		query url.Values,
		requestBody interface{},
		result interface{},
	) ([]byte, error)
}
