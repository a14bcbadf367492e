package usecase

import (
	"context"
	"fmt"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain"
)

// StaticCredentials returns a fixed login pair taken from flags, env or config
type StaticCredentials struct {
	credentials domain.Credentials
}

// NewStaticCredentials creates a credential source for a fixed pair
func NewStaticCredentials(username, password string) domain.CredentialSource {
	return &StaticCredentials{
		credentials: domain.Credentials{Username: username, Password: password},
	}
}

// Credentials returns the configured pair
func (s *StaticCredentials) Credentials(ctx context.Context) (domain.Credentials, error) {
	if err := common.HandleContextError(ctx, "read credentials"); err != nil {
		return domain.Credentials{}, err
	}
	return s.credentials, nil
}

// SecretCredentialsConfig names the secret and the keys holding the login pair
type SecretCredentialsConfig struct {
	SecretName  string
	UsernameKey string
	PasswordKey string
}

// SecretCredentials reads the login pair from a secret on every call
type SecretCredentials struct {
	config         SecretCredentialsConfig
	secretProvider domain.SecretProvider
}

// NewSecretCredentials creates a secret-backed credential source
func NewSecretCredentials(config SecretCredentialsConfig, secretProvider domain.SecretProvider) domain.CredentialSource {
	if secretProvider == nil {
		panic("secret provider cannot be nil")
	}
	if config.UsernameKey == "" {
		config.UsernameKey = "username"
	}
	if config.PasswordKey == "" {
		config.PasswordKey = "password"
	}

	return &SecretCredentials{
		config:         config,
		secretProvider: secretProvider,
	}
}

// Credentials fetches the login pair from the secret
func (s *SecretCredentials) Credentials(ctx context.Context) (domain.Credentials, error) {
	keys := []string{s.config.UsernameKey, s.config.PasswordKey}

	secretData, err := s.secretProvider.GetSecretData(ctx, s.config.SecretName, keys)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to get credential secret data: %w", err)
	}

	for _, key := range keys {
		if _, exists := secretData[key]; !exists {
			return domain.Credentials{}, common.NotFoundError("required key '%s' missing in secret %s", key, s.config.SecretName)
		}
	}

	return domain.Credentials{
		Username: secretData[s.config.UsernameKey],
		Password: secretData[s.config.PasswordKey],
	}, nil
}
