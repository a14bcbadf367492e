package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain/mocks"
	"sid-client/internal/features/heartbeat/domain"
)

// countingCaller answers every status post with a fixed status code
type countingCaller struct {
	calls      atomic.Int32
	statusCode int
	mu         sync.Mutex
	payloads   []interface{}
}

func (c *countingCaller) CallAPI(ctx context.Context, method, apiPath string, query url.Values, requestBody interface{}) (*http.Response, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.payloads = append(c.payloads, requestBody)
	c.mu.Unlock()
	return &http.Response{StatusCode: c.statusCode, Body: http.NoBody}, nil
}

func (c *countingCaller) CallAPIAndParseResponse(ctx context.Context, method, apiPath string, query url.Values, requestBody interface{}, result interface{}) ([]byte, error) {
	return nil, fmt.Errorf("not used")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(interval time.Duration) Config {
	return Config{
		Interval:       interval,
		RequestTimeout: interval,
		Path:           domain.DefaultPath,
		Status:         domain.StatusWaiting,
	}
}

func TestNewReporter(t *testing.T) {
	caller := new(mocks.MockAPICaller)

	_, err := NewReporter(testConfig(time.Second), nil, nil, nil)
	assert.True(t, common.IsInvalidInput(err))

	_, err = NewReporter(testConfig(0), caller, nil, nil)
	assert.True(t, common.IsInvalidInput(err))

	config := testConfig(time.Second)
	config.Status = "APAGADO"
	_, err = NewReporter(config, caller, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APAGADO")

	config = DefaultConfig()
	config.Path = ""
	config.RequestTimeout = 0
	reporter, err := NewReporter(config, caller, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPath, reporter.config.Path)
	assert.Equal(t, config.Interval, reporter.config.RequestTimeout)
	assert.Equal(t, domain.StateIdle, reporter.State())
}

func TestReporterClassification(t *testing.T) {
	payload := domain.StatusPayload{Status: domain.StatusWaiting}

	tests := []struct {
		name     string
		response *http.Response
		err      error
		outcome  domain.Outcome
		timedOut bool
	}{
		{name: "no content", response: &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, outcome: domain.OutcomeOnline},
		{name: "server error", response: &http.Response{StatusCode: http.StatusInternalServerError, Body: http.NoBody}, outcome: domain.OutcomeOffline},
		{name: "bad request", response: &http.Response{StatusCode: http.StatusBadRequest, Body: http.NoBody}, outcome: domain.OutcomeOffline},
		{name: "teapot", response: &http.Response{StatusCode: http.StatusTeapot, Body: http.NoBody}, outcome: domain.OutcomeUnknown},
		{
			name:     "timeout",
			err:      common.NewTransportError("POST "+domain.DefaultPath, fmt.Errorf("failed to send HTTP request: %w", context.DeadlineExceeded)),
			outcome:  domain.OutcomeOffline,
			timedOut: true,
		},
		{
			name:    "connection refused",
			err:     common.NewTransportError("POST "+domain.DefaultPath, fmt.Errorf("dial tcp: connection refused")),
			outcome: domain.OutcomeOffline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := new(mocks.MockAPICaller)
			if tt.err != nil {
				caller.On("CallAPI", mock.Anything, http.MethodPost, domain.DefaultPath, url.Values(nil), payload).Return(nil, tt.err)
			} else {
				caller.On("CallAPI", mock.Anything, http.MethodPost, domain.DefaultPath, url.Values(nil), payload).Return(tt.response, nil)
			}

			metrics := NewMetrics()
			require.NoError(t, metrics.Register(prometheus.NewRegistry()))

			reporter, err := NewReporter(testConfig(time.Second), caller, metrics, quietLogger())
			require.NoError(t, err)

			reporter.tick(context.Background())

			report, ok := reporter.LastReport()
			require.True(t, ok)
			assert.Equal(t, tt.outcome, report.Outcome)
			assert.Equal(t, tt.timedOut, report.TimedOut)
			assert.Equal(t, float64(1), testutil.ToFloat64(metrics.reports.WithLabelValues(string(tt.outcome))))

			expectedOnline := float64(0)
			if tt.outcome == domain.OutcomeOnline {
				expectedOnline = 1
			}
			assert.Equal(t, expectedOnline, testutil.ToFloat64(metrics.online))
			caller.AssertExpectations(t)
		})
	}
}

func TestReporterDropsPostsCancelledByShutdown(t *testing.T) {
	caller := new(mocks.MockAPICaller)
	caller.On("CallAPI", mock.Anything, http.MethodPost, domain.DefaultPath, url.Values(nil), mock.Anything).
		Return(nil, common.NewTransportError("POST "+domain.DefaultPath, context.Canceled))

	reporter, err := NewReporter(testConfig(time.Second), caller, nil, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reporter.tick(ctx)

	_, ok := reporter.LastReport()
	assert.False(t, ok, "A post aborted by shutdown must not be reported")
}

func TestReporterLifecycle(t *testing.T) {
	interval := 50 * time.Millisecond
	caller := &countingCaller{statusCode: http.StatusOK}

	reporter, err := NewReporter(testConfig(interval), caller, nil, quietLogger())
	require.NoError(t, err)
	require.NoError(t, reporter.Start(context.Background()))
	assert.Equal(t, domain.StateReporting, reporter.State())
	assert.Error(t, reporter.Start(context.Background()), "Start twice must fail")

	require.Eventually(t, func() bool { return caller.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	started := time.Now()
	reporter.Stop()
	assert.Less(t, time.Since(started), interval, "Stop must return within one interval")
	assert.Equal(t, domain.StateStopped, reporter.State())

	calls := caller.calls.Load()
	time.Sleep(3 * interval)
	assert.Equal(t, calls, caller.calls.Load(), "No post may be sent after Stop")

	report, ok := reporter.LastReport()
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeOnline, report.Outcome)

	caller.mu.Lock()
	assert.Equal(t, domain.StatusPayload{Status: domain.StatusWaiting}, caller.payloads[0])
	caller.mu.Unlock()

	// stopping again is a no-op
	reporter.Stop()
	assert.Error(t, reporter.Start(context.Background()))
}

func TestReporterStopsWithParentContext(t *testing.T) {
	caller := &countingCaller{statusCode: http.StatusNoContent}
	reporter, err := NewReporter(testConfig(20*time.Millisecond), caller, nil, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, reporter.Start(ctx))
	require.Eventually(t, func() bool { return caller.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	reporter.Stop()
	calls := caller.calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, calls, caller.calls.Load())
}

func TestStopIdleReporter(t *testing.T) {
	reporter, err := NewReporter(testConfig(time.Second), &countingCaller{}, nil, quietLogger())
	require.NoError(t, err)

	reporter.Stop()
	assert.Equal(t, domain.StateStopped, reporter.State())
	_, ok := reporter.LastReport()
	assert.False(t, ok)
}
