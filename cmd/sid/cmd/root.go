package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"sid-client/cmd/app"
	"sid-client/internal/common"
	"sid-client/internal/features/backend"
	"sid-client/internal/server"
)

var (
	cfgFile  string
	baseURL  string
	username string
	password string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "sid",
	Short: "Console client for the SID inspection workflow",
	Long: `sid talks to the SID inspection backend.

Stages:
  configuration - instruments, norms, tests, documents, products, prototypes, reference values
  preparation   - contracts, manufacturing orders, dossiers and samples
  execution     - test results and dossier validation
  release       - test notices and dossier closing`,
	SilenceUsage: true,
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, ./configs/config.yaml, /etc/sid-client/config.yaml)")
	flags.StringVar(&baseURL, "base-url", "", "backend base URL")
	flags.StringVarP(&username, "username", "u", "", "login username")
	flags.StringVarP(&password, "password", "p", "", "login password")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.SilenceErrors = true
}

// loadConfig reads the configuration with changed flags taking precedence
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	overrides := map[string]interface{}{}
	flagKeys := map[string]string{
		"base-url":  "backend.base_url",
		"username":  "credentials.username",
		"password":  "credentials.password",
		"log-level": "app.log_level",
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	options := []app.Option{app.WithOverrides(overrides)}
	if cfgFile != "" {
		options = append(options, app.WithConfigFile(cfgFile))
	}
	return app.Load(options...)
}

// runSession logs in and runs session. The heartbeat and status server only run
// for long lived sessions.
func runSession(cmd *cobra.Command, longLived bool, session server.Session) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := common.NewLogger(cfg.LoggerConfig())

	var kubeClients *app.KubeClients
	if cfg.NeedsKubernetes() {
		if kubeClients, err = app.NewKubeClients(&cfg.Kubernetes); err != nil {
			return err
		}
	}

	services, err := newBackendServices(kubeClients, cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	if err := services.Metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register backend metrics: %w", err)
	}

	orchestrator, err := server.NewOrchestrator(server.Config{
		HeartbeatEnabled: longLived && cfg.Heartbeat.Enabled,
		Heartbeat:        cfg.ReporterConfig(),
		Server: server.ServerConfig{
			Enabled:         longLived && cfg.Server.Enabled,
			Addr:            cfg.Server.Port,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		Rules: cfg.ValidationRules(),
	}, server.Dependencies{
		Credentials:   services.CredentialSource,
		Authenticator: services.Authenticator,
		NewCaller:     services.NewAPICaller,
		Registry:      registry,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	return orchestrator.Run(cmd.Context(), session)
}

func newBackendServices(kubeClients *app.KubeClients, cfg *app.Config) (*backend.Services, error) {
	if kubeClients == nil {
		return backend.NewBackendServices(nil, cfg.BackendServicesConfig())
	}
	return backend.NewBackendServices(kubeClients.ClientSet, cfg.BackendServicesConfig())
}

// printJSON writes value as indented JSON
func printJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
