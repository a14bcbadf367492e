package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	v1 "sid-client/internal/api/v1"
	"sid-client/internal/api/v1/handler"
	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	heartbeatdomain "sid-client/internal/features/heartbeat/domain"
	heartbeat "sid-client/internal/features/heartbeat/service"
	"sid-client/internal/features/inspection"
	"sid-client/internal/features/inspection/validation"
)

// Session is the foreground work run once the client is authenticated
type Session func(ctx context.Context, env *Env) error

// Env is what a session works with
type Env struct {
	Auth     backenddomain.AuthResult
	Caller   backenddomain.APICaller
	Services *inspection.Services
	Reporter *heartbeat.Reporter
}

// ServerConfig holds the local status server settings
type ServerConfig struct {
	Enabled         bool
	Addr            string
	ShutdownTimeout time.Duration
}

// Config holds the orchestrator settings
type Config struct {
	HeartbeatEnabled bool
	Heartbeat        heartbeat.Config
	Server           ServerConfig
	Rules            validation.Rules
}

// Dependencies are the collaborators the orchestrator sequences
type Dependencies struct {
	Credentials   backenddomain.CredentialSource
	Authenticator backenddomain.Authenticator
	// NewCaller binds a bearer token to an API caller
	NewCaller func(token string) (backenddomain.APICaller, error)
	// Registry receives the heartbeat metrics and backs /metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Orchestrator authenticates, starts the background reporter and status
// server, runs a session and tears everything down in order
type Orchestrator struct {
	config Config
	deps   Dependencies
	logger *slog.Logger
}

// NewOrchestrator validates the dependencies and creates an orchestrator
func NewOrchestrator(config Config, deps Dependencies) (*Orchestrator, error) {
	if deps.Credentials == nil {
		return nil, common.InvalidInputError("credential source cannot be nil")
	}
	if deps.Authenticator == nil {
		return nil, common.InvalidInputError("authenticator cannot be nil")
	}
	if deps.NewCaller == nil {
		return nil, common.InvalidInputError("caller factory cannot be nil")
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{config: config, deps: deps, logger: logger}, nil
}

// Run executes session after a successful login. On a failed login nothing is
// started and the authentication error is returned.
func (o *Orchestrator) Run(ctx context.Context, session Session) error {
	ctx = common.ContextWithLogger(ctx, o.logger)

	env, err := o.authenticate(ctx)
	if err != nil {
		o.logger.Error("authentication failed", "error", err)
		return err
	}

	if o.config.HeartbeatEnabled {
		reporter, err := o.startReporter(ctx, env.Caller)
		if err != nil {
			return err
		}
		env.Reporter = reporter
	}

	var statusServer *http.Server
	if o.config.Server.Enabled {
		statusServer = o.startStatusServer(env.Reporter)
	}

	sessionErr := session(ctx, env)
	if sessionErr != nil {
		o.logger.Error("session ended with error", "error", sessionErr)
	}

	if env.Reporter != nil {
		env.Reporter.Stop()
	}
	if statusServer != nil {
		o.stopStatusServer(statusServer)
	}

	o.logger.Info("session finished")
	return sessionErr
}

func (o *Orchestrator) authenticate(ctx context.Context) (*Env, error) {
	credentials, err := o.deps.Credentials.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain credentials: %w", err)
	}

	auth, err := o.deps.Authenticator.Authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}

	caller, err := o.deps.NewCaller(auth.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create API caller: %w", err)
	}

	services, err := inspection.NewServices(caller, o.config.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspection services: %w", err)
	}

	return &Env{Auth: auth, Caller: caller, Services: services}, nil
}

func (o *Orchestrator) startReporter(ctx context.Context, caller backenddomain.APICaller) (*heartbeat.Reporter, error) {
	metrics := heartbeat.NewMetrics()
	if err := metrics.Register(o.deps.Registry); err != nil {
		return nil, fmt.Errorf("failed to register heartbeat metrics: %w", err)
	}

	reporter, err := heartbeat.NewReporter(o.config.Heartbeat, caller, metrics, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create heartbeat reporter: %w", err)
	}
	if err := reporter.Start(ctx); err != nil {
		return nil, err
	}
	return reporter, nil
}

func (o *Orchestrator) startStatusServer(reporter *heartbeat.Reporter) *http.Server {
	routerConfig := v1.RouterConfig{
		Logger:   o.logger,
		Gatherer: o.deps.Registry,
		Ready:    readiness(reporter),
	}
	// a nil *Reporter must not reach the handler as a non-nil interface
	if reporter != nil {
		routerConfig.Status = reporter
	}

	srv := &http.Server{
		Addr:              o.config.Server.Addr,
		Handler:           v1.NewRouter(routerConfig),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		o.logger.Info("status server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.logger.Error("status server failed", "error", err)
		}
	}()

	return srv
}

func (o *Orchestrator) stopStatusServer(srv *http.Server) {
	timeout := o.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		o.logger.Warn("status server shutdown failed", "error", err)
	}
}

func readiness(reporter *heartbeat.Reporter) handler.ReadinessFunc {
	return func() (bool, string) {
		if reporter == nil {
			return true, ""
		}
		if reporter.State() != heartbeatdomain.StateReporting {
			return false, fmt.Sprintf("heartbeat reporter is %s", reporter.State())
		}
		if report, ok := reporter.LastReport(); ok && report.Outcome != heartbeatdomain.OutcomeOnline {
			return false, fmt.Sprintf("backend is %s", report.Outcome)
		}
		return true, ""
	}
}
