package backend

import (
	"fmt"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/adapter/http"
	ks "sid-client/internal/features/backend/adapter/kubernetes"
	"sid-client/internal/features/backend/domain"
	"sid-client/internal/features/backend/usecase"

	"k8s.io/client-go/kubernetes"
)

// Credential source names
const (
	CredentialSourceStatic = "static"
	CredentialSourceSecret = "secret"
)

// Config holds the configuration for the backend package
type Config struct {
	BaseURL    string
	LoginPath  string
	HTTPClient http.ClientConfig

	CredentialSource string
	Username         string
	Password         string

	Namespace   string
	SecretName  string
	UsernameKey string
	PasswordKey string
}

// Services contains all the services provided by the backend package
type Services struct {
	HTTPClient       domain.HTTPClientInterface
	Authenticator    domain.Authenticator
	CredentialSource domain.CredentialSource
	Metrics          *http.Metrics

	baseURL string
}

// NewBackendServices creates and initializes all backend services.
// clientset is only required when credentials come from a secret.
func NewBackendServices(clientset kubernetes.Interface, config Config) (*Services, error) {
	if config.BaseURL == "" {
		return nil, common.InvalidInputError("backend base URL cannot be empty")
	}

	metrics := http.NewMetrics()
	httpClient, err := http.NewClient(config.HTTPClient, http.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	credentialSource, err := newCredentialSource(clientset, config)
	if err != nil {
		return nil, err
	}

	authService := usecase.NewAuthService(usecase.AuthServiceConfig{
		BaseURL:   config.BaseURL,
		LoginPath: config.LoginPath,
	}, httpClient)

	return &Services{
		HTTPClient:       httpClient,
		Authenticator:    authService,
		CredentialSource: credentialSource,
		Metrics:          metrics,
		baseURL:          config.BaseURL,
	}, nil
}

// NewAPICaller binds the bearer token to an API caller for the configured backend
func (s *Services) NewAPICaller(token string) (domain.APICaller, error) {
	return usecase.NewAPIService(usecase.APIServiceConfig{BaseURL: s.baseURL}, s.HTTPClient, token)
}

func newCredentialSource(clientset kubernetes.Interface, config Config) (domain.CredentialSource, error) {
	switch config.CredentialSource {
	case "", CredentialSourceStatic:
		return usecase.NewStaticCredentials(config.Username, config.Password), nil
	case CredentialSourceSecret:
		if clientset == nil {
			return nil, common.InvalidInputError("kubernetes client cannot be nil for secret credentials")
		}
		if config.SecretName == "" {
			return nil, common.InvalidInputError("secret name cannot be empty for secret credentials")
		}
		secretProvider := ks.NewSecretProvider(clientset, config.Namespace)
		return usecase.NewSecretCredentials(usecase.SecretCredentialsConfig{
			SecretName:  config.SecretName,
			UsernameKey: config.UsernameKey,
			PasswordKey: config.PasswordKey,
		}, secretProvider), nil
	default:
		return nil, common.InvalidInputError("unknown credential source %q", config.CredentialSource)
	}
}
