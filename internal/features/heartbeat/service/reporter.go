package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/heartbeat/domain"
)

// Config holds the reporter settings
type Config struct {
	// Interval between two status posts
	Interval time.Duration
	// RequestTimeout bounds a single post; zero means Interval
	RequestTimeout time.Duration
	// Path is the backend endpoint receiving the status
	Path string
	// Status is the station status sent on every tick
	Status string
}

// DefaultConfig returns the default reporter configuration
func DefaultConfig() Config {
	return Config{
		Interval:       60 * time.Second,
		RequestTimeout: 10 * time.Second,
		Path:           domain.DefaultPath,
		Status:         domain.StatusWaiting,
	}
}

// Reporter periodically posts the station status to the backend
type Reporter struct {
	config  Config
	caller  backenddomain.APICaller
	metrics *Metrics
	logger  *slog.Logger

	mu     sync.RWMutex
	state  domain.State
	last   *domain.Report
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReporter validates config and creates an idle reporter
func NewReporter(config Config, caller backenddomain.APICaller, metrics *Metrics, logger *slog.Logger) (*Reporter, error) {
	if caller == nil {
		return nil, common.InvalidInputError("API caller cannot be nil")
	}
	if config.Interval <= 0 {
		return nil, common.InvalidInputError("heartbeat interval must be positive, got %s", config.Interval)
	}
	if !domain.IsAllowedStatus(config.Status) {
		return nil, common.InvalidInputError("heartbeat status %q is not one of %s",
			config.Status, strings.Join(domain.AllowedStatuses, ", "))
	}
	if strings.TrimSpace(config.Path) == "" {
		config.Path = domain.DefaultPath
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = config.Interval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Reporter{
		config:  config,
		caller:  caller,
		metrics: metrics,
		logger:  logger.With("component", "heartbeat"),
		state:   domain.StateIdle,
	}, nil
}

// Start launches the reporting loop. The first post is sent immediately.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.StateIdle {
		return fmt.Errorf("heartbeat reporter cannot start from state %s", r.state)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.state = domain.StateReporting

	go r.run(runCtx, r.done)

	r.logger.Info("heartbeat reporter started",
		"interval", r.config.Interval,
		"status", r.config.Status)
	return nil
}

// Stop cancels the loop and waits for an in-flight post to finish
func (r *Reporter) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	previous := r.state
	r.state = domain.StateStopped
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	if previous == domain.StateReporting {
		r.logger.Info("heartbeat reporter stopped")
	}
}

// State returns the lifecycle state
func (r *Reporter) State() domain.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// LastReport returns the most recent report, if any
func (r *Reporter) LastReport() (domain.Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return domain.Report{}, false
	}
	return *r.last, true
}

func (r *Reporter) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := backoff.NewTicker(backoff.WithContext(backoff.NewConstantBackOff(r.config.Interval), ctx))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticker.C:
			if !ok || ctx.Err() != nil {
				return
			}
			r.tick(ctx)
		}
	}
}

// tick posts the status once and records the outcome. A post aborted because
// ctx was cancelled is dropped.
func (r *Reporter) tick(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, r.config.RequestTimeout)
	defer cancel()

	report := domain.Report{Status: r.config.Status}
	resp, err := r.caller.CallAPI(reqCtx, http.MethodPost, r.config.Path, nil, domain.StatusPayload{Status: r.config.Status})
	report.At = time.Now()

	switch {
	case err != nil && ctx.Err() != nil:
		return
	case err != nil:
		report.Outcome = domain.OutcomeOffline
		report.TimedOut = common.IsTimeout(err)
		report.Error = err.Error()
	default:
		report.StatusCode = resp.StatusCode
		report.Outcome = domain.Classify(resp.StatusCode)
		if resp.Body != nil {
			resp.Body.Close()
		}
	}

	r.record(report)
}

func (r *Reporter) record(report domain.Report) {
	r.mu.Lock()
	r.last = &report
	r.mu.Unlock()

	r.metrics.record(report)

	attrs := []any{
		"outcome", report.Outcome,
		"status", report.Status,
	}
	if report.StatusCode != 0 {
		attrs = append(attrs, "statusCode", report.StatusCode)
	}
	if report.Error != "" {
		attrs = append(attrs, "timedOut", report.TimedOut, "error", report.Error)
	}

	if report.Outcome == domain.OutcomeOnline {
		r.logger.Debug("status reported", attrs...)
	} else {
		r.logger.Warn("status report failed", attrs...)
	}
}
