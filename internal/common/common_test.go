package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestErrorHelpers(t *testing.T) {
	err := NotFoundError("product %s", "p-1")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "product p-1")

	err = InvalidInputError("token cannot be empty")
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create failed: %w", NewValidationError("contract", "detalleContrato[0].unidad", RuleNotAllowed, "box", ""))

	require.True(t, IsValidationError(err))
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleNotAllowed, vErr.Rule)
	assert.Equal(t, "box", vErr.Value)
	assert.Contains(t, err.Error(), `"box"`)

	missing, ok := AsValidationError(NewMissingIDError("norm"))
	require.True(t, ok)
	assert.Equal(t, RuleMissingID, missing.Rule)
	assert.Equal(t, "id", missing.Field)
}

func TestAPIError(t *testing.T) {
	httpErr := NewHTTPError("list contracts", 503, []byte("maintenance"))
	apiErr, ok := AsAPIError(httpErr)
	require.True(t, ok)
	assert.Equal(t, APIErrorHTTP, apiErr.Kind)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "503")
	assert.Contains(t, httpErr.Error(), "maintenance")

	cause := &url.Error{Op: "Get", URL: "https://example.com", Err: timeoutErr{}}
	transportErr := NewTransportError("list norms", cause)
	apiErr, ok = AsAPIError(transportErr)
	require.True(t, ok)
	assert.Equal(t, APIErrorTransport, apiErr.Kind)
	assert.True(t, IsTimeout(transportErr), "timeout cause should survive wrapping")

	decodeErr := NewDecodeError("list tests", json.Unmarshal([]byte("{"), &map[string]any{}))
	assert.False(t, IsValidationError(decodeErr))
	apiErr, _ = AsAPIError(decodeErr)
	assert.Equal(t, APIErrorDecode, apiErr.Kind)
	assert.NotErrorIs(t, decodeErr, ErrNotFound)
}

func TestAuthError(t *testing.T) {
	err := AuthError{Kind: AuthBackendRejected, StatusCode: 401}
	authErr, ok := AsAuthError(fmt.Errorf("login: %w", err))
	require.True(t, ok)
	assert.Equal(t, 401, authErr.StatusCode)
	assert.Contains(t, err.Error(), "401")
}

func TestContextHelpers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, HandleContextError(ctx, "heartbeat"))
	cancel()

	err := HandleContextError(ctx, "heartbeat")
	require.Error(t, err)
	assert.True(t, IsContextCanceled(err))
	assert.False(t, IsTimeout(err))

	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(timeoutErr{}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: ParseLogLevel("WARN"), Output: &buf, Component: "sid-test"})

	logger.Info("dropped")
	logger.Warn("kept", "resource", "norms")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "sid-test", record["component"])
	assert.Equal(t, "norms", record["resource"])

	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(context.Background()))
	assert.Equal(t, InfoLevel, ParseLogLevel("verbose"))
}
