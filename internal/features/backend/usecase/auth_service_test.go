package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain"
	"sid-client/internal/features/backend/domain/mocks"
)

const testBaseURL = "https://backend.example.com/sid/"

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewAuthService(t *testing.T) {
	mockHTTPClient := new(mocks.MockHTTPClient)

	service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)
	require.NotNil(t, service, "AuthService should not be nil")
	assert.Equal(t, DefaultLoginPath, service.(*AuthService).config.LoginPath, "Login path should default")

	assert.Panics(t, func() {
		NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, nil)
	}, "Should panic when HTTP client is nil")
}

func TestAuthenticate(t *testing.T) {
	credentials := domain.Credentials{Username: "inspector", Password: "s3cret"}
	loginURL := "https://backend.example.com/sid/F0_Acceso/Login"
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockHTTPClient := new(mocks.MockHTTPClient)
		service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)

		body := `{"token":"abc.def","userDetails":{"nombre":"Ana","username":"inspector","empresa":"ACME","rol":"INSPECTOR","maximoIntentosPruebas":3,"ip":["10.0.0.1"]}}`
		resp := newResponse(http.StatusOK, body)

		mockHTTPClient.On("Request",
			mock.Anything,
			http.MethodPost,
			loginURL,
			mock.MatchedBy(func(payload []byte) bool {
				var sent domain.Credentials
				return json.Unmarshal(payload, &sent) == nil && sent == credentials
			}),
			mock.Anything).Return(resp, nil).Once()
		mockHTTPClient.On("ReadResponseBody", resp).Return([]byte(body), nil).Once()

		result, err := service.Authenticate(ctx, credentials)

		require.NoError(t, err)
		assert.Equal(t, "abc.def", result.Token)
		require.NotNil(t, result.UserDetails)
		assert.Equal(t, "Ana", result.UserDetails.Name)
		assert.Equal(t, "INSPECTOR", result.UserDetails.Role)
		assert.Equal(t, 3, result.UserDetails.MaxTestAttempts)
		assert.Equal(t, []string{"10.0.0.1"}, result.UserDetails.IPAllowlist)
		mockHTTPClient.AssertExpectations(t)
	})

	t.Run("rejected with 401", func(t *testing.T) {
		mockHTTPClient := new(mocks.MockHTTPClient)
		service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)

		resp := newResponse(http.StatusUnauthorized, `{"mensaje":"credenciales invalidas"}`)
		mockHTTPClient.On("Request", mock.Anything, http.MethodPost, loginURL, mock.Anything, mock.Anything).
			Return(resp, nil).Once()
		mockHTTPClient.On("ReadResponseBody", resp).
			Return([]byte(`{"mensaje":"credenciales invalidas"}`), nil).Once()

		_, err := service.Authenticate(ctx, credentials)

		require.Error(t, err)
		authErr, ok := common.AsAuthError(err)
		require.True(t, ok, "Error should be an AuthError")
		assert.Equal(t, common.AuthBackendRejected, authErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Contains(t, err.Error(), "401")
		mockHTTPClient.AssertExpectations(t)
	})

	t.Run("empty object is malformed", func(t *testing.T) {
		mockHTTPClient := new(mocks.MockHTTPClient)
		service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)

		resp := newResponse(http.StatusOK, `{}`)
		mockHTTPClient.On("Request", mock.Anything, http.MethodPost, loginURL, mock.Anything, mock.Anything).
			Return(resp, nil).Once()
		mockHTTPClient.On("ReadResponseBody", resp).Return([]byte(`{}`), nil).Once()

		_, err := service.Authenticate(ctx, credentials)

		authErr, ok := common.AsAuthError(err)
		require.True(t, ok, "Error should be an AuthError")
		assert.Equal(t, common.AuthMalformedResponse, authErr.Kind)
	})

	t.Run("non json body is malformed", func(t *testing.T) {
		mockHTTPClient := new(mocks.MockHTTPClient)
		service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)

		resp := newResponse(http.StatusOK, `<html>`)
		mockHTTPClient.On("Request", mock.Anything, http.MethodPost, loginURL, mock.Anything, mock.Anything).
			Return(resp, nil).Once()
		mockHTTPClient.On("ReadResponseBody", resp).Return([]byte(`<html>`), nil).Once()

		_, err := service.Authenticate(ctx, credentials)

		authErr, ok := common.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, common.AuthMalformedResponse, authErr.Kind)
	})

	t.Run("transport failure", func(t *testing.T) {
		mockHTTPClient := new(mocks.MockHTTPClient)
		service := NewAuthService(AuthServiceConfig{BaseURL: testBaseURL}, mockHTTPClient)

		mockHTTPClient.On("Request", mock.Anything, http.MethodPost, loginURL, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("connection refused")).Once()

		_, err := service.Authenticate(ctx, credentials)

		authErr, ok := common.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, common.AuthTransport, authErr.Kind)
		assert.Contains(t, authErr.Message, "connection refused", "Original message should be kept")
		mockHTTPClient.AssertNotCalled(t, "ReadResponseBody", mock.Anything)
	})
}
