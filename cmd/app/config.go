package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sid-client/internal/common"
	"sid-client/internal/features/backend"
	backendhttp "sid-client/internal/features/backend/adapter/http"
	heartbeatdomain "sid-client/internal/features/heartbeat/domain"
	heartbeat "sid-client/internal/features/heartbeat/service"
	"sid-client/internal/features/inspection/validation"
)

// EnvPrefix prefixes every environment override, e.g. SID_BACKEND_BASE_URL
const EnvPrefix = "SID"

// Config holds the complete application configuration
type Config struct {
	// Backend configuration
	Backend BackendConfig `mapstructure:"backend"`

	// Credentials configuration
	Credentials CredentialsConfig `mapstructure:"credentials"`

	// Kubernetes configuration
	Kubernetes KubernetesConfig `mapstructure:"kubernetes"`

	// Heartbeat configuration
	Heartbeat HeartbeatConfig `mapstructure:"heartbeat"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Rules overrides the validation allow-lists
	Rules RulesConfig `mapstructure:"rules"`

	// Application configuration
	App AppConfig `mapstructure:"app"`
}

// BackendConfig holds backend API configuration
type BackendConfig struct {
	// BaseURL is the root every backend path is joined to
	BaseURL string `mapstructure:"base_url"`

	// LoginPath is the credential exchange endpoint
	LoginPath string `mapstructure:"login_path"`

	// Timeout is the timeout for backend API requests
	Timeout time.Duration `mapstructure:"timeout"`

	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
	EnableHTTP2        bool `mapstructure:"enable_http2"`

	// RateLimit caps requests per second, zero disables it
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// CredentialsConfig selects where the login pair comes from
type CredentialsConfig struct {
	// Source is "static" or "secret"
	Source string `mapstructure:"source"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// SecretName is the Kubernetes secret holding the pair
	SecretName  string `mapstructure:"secret_name"`
	UsernameKey string `mapstructure:"username_key"`
	PasswordKey string `mapstructure:"password_key"`
}

// KubernetesConfig holds Kubernetes client configuration
type KubernetesConfig struct {
	// Namespace is the default namespace for resources
	Namespace string `mapstructure:"namespace"`

	// ConfigPath is the path to the kubeconfig file
	ConfigPath string `mapstructure:"config_path"`

	// MasterURL is the Kubernetes API server URL
	MasterURL string `mapstructure:"master_url"`
}

// HeartbeatConfig holds the status reporter configuration
type HeartbeatConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	IntervalSeconds int    `mapstructure:"interval_seconds"`
	Path            string `mapstructure:"path"`
	Status          string `mapstructure:"status"`
}

// ServerConfig holds the local status server configuration
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the HTTP server address
	Port string `mapstructure:"port"`

	// ShutdownTimeout is the timeout for server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RulesConfig holds allow-list overrides. Empty lists keep the defaults.
type RulesConfig struct {
	ContractUnits      []string `mapstructure:"contract_units"`
	ContractTypes      []string `mapstructure:"contract_types"`
	ManufacturingTypes []string `mapstructure:"manufacturing_types"`
	TestTypes          []string `mapstructure:"test_types"`
	ResultTypes        []string `mapstructure:"result_types"`
	TestStatuses       []string `mapstructure:"test_statuses"`
	DocumentTypes      []string `mapstructure:"document_types"`
	Comparisons        []string `mapstructure:"comparisons"`
}

// AppConfig holds application configuration
type AppConfig struct {
	// Component is the name of the component
	Component string `mapstructure:"component"`

	// LogLevel is the log level
	LogLevel string `mapstructure:"log_level"`
}

// Option customizes Load
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	overrides  map[string]interface{}
}

// WithConfigFile reads configuration from path instead of the search paths
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithOverrides sets keys after every other source, e.g. from command line flags
func WithOverrides(overrides map[string]interface{}) Option {
	return func(o *loadOptions) {
		o.overrides = overrides
	}
}

// Load loads configuration from files and environment
func Load(options ...Option) (*Config, error) {
	opts := loadOptions{}
	for _, option := range options {
		option(&opts)
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure paths and file types
	configureViper(v, opts.configFile)

	// Read configs file
	if err := readConfigs(v, opts.configFile != ""); err != nil {
		return nil, err
	}

	// Load environment variables from app.env
	if err := loadEnvVars(v); err != nil {
		return nil, err
	}

	for key, value := range opts.overrides {
		v.Set(key, value)
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configs: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// configureViper sets up Viper configuration paths and types
func configureViper(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sid-client/")
	}

	// Enable environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// readConfigs attempts to read the configuration file. An explicit file must exist.
func readConfigs(v *viper.Viper, explicit bool) error {
	if err := v.ReadInConfig(); err != nil {
		// Only return error if it's not a "configs file not found" error
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read configs file: %w", err)
		}
		// Otherwise, continue with defaults and environment variables
	}
	return nil
}

// loadEnvVars loads environment variables from app.env file
func loadEnvVars(v *viper.Viper) error {
	envViper := viper.New()
	envViper.SetConfigName("app")
	envViper.SetConfigType("env")
	envViper.AddConfigPath("./configs")

	if err := envViper.ReadInConfig(); err == nil {
		// Merge environment file into main configs if found
		for _, key := range envViper.AllKeys() {
			v.Set(key, envViper.Get(key))
		}
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	// Validate backend configuration
	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if cfg.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit cannot be negative")
	}

	// Validate credentials configuration
	switch cfg.Credentials.Source {
	case backend.CredentialSourceStatic:
	case backend.CredentialSourceSecret:
		if cfg.Credentials.SecretName == "" {
			return fmt.Errorf("credentials.secret_name is required when credentials.source is %q", backend.CredentialSourceSecret)
		}
		if cfg.Kubernetes.Namespace == "" {
			return fmt.Errorf("kubernetes.namespace is required when credentials.source is %q", backend.CredentialSourceSecret)
		}
	default:
		return fmt.Errorf("credentials.source must be %q or %q, got %q",
			backend.CredentialSourceStatic, backend.CredentialSourceSecret, cfg.Credentials.Source)
	}

	// Validate heartbeat configuration
	if cfg.Heartbeat.Enabled {
		if cfg.Heartbeat.IntervalSeconds <= 0 {
			return fmt.Errorf("heartbeat.interval_seconds must be positive")
		}
		if !heartbeatdomain.IsAllowedStatus(cfg.Heartbeat.Status) {
			return fmt.Errorf("heartbeat.status must be one of %s, got %q",
				strings.Join(heartbeatdomain.AllowedStatuses, ", "), cfg.Heartbeat.Status)
		}
	}

	// Validate server configuration
	if cfg.Server.Enabled && cfg.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Backend defaults
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.login_path", "F0_Acceso/Login")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.insecure_skip_verify", false)
	v.SetDefault("backend.enable_http2", true)
	v.SetDefault("backend.rate_limit", 0.0)
	v.SetDefault("backend.rate_burst", 1)

	// Credentials defaults
	v.SetDefault("credentials.source", backend.CredentialSourceStatic)
	v.SetDefault("credentials.username", "")
	v.SetDefault("credentials.password", "")
	v.SetDefault("credentials.secret_name", "sid-login")
	v.SetDefault("credentials.username_key", "username")
	v.SetDefault("credentials.password_key", "password")

	// Kubernetes defaults
	v.SetDefault("kubernetes.namespace", "default")
	v.SetDefault("kubernetes.config_path", "")
	v.SetDefault("kubernetes.master_url", "")

	// Heartbeat defaults
	v.SetDefault("heartbeat.enabled", true)
	v.SetDefault("heartbeat.interval_seconds", 60)
	v.SetDefault("heartbeat.path", heartbeatdomain.DefaultPath)
	v.SetDefault("heartbeat.status", heartbeatdomain.StatusWaiting)

	// Server defaults
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Rules defaults
	for _, key := range []string{
		"contract_units", "contract_types", "manufacturing_types", "test_types",
		"result_types", "test_statuses", "document_types", "comparisons",
	} {
		v.SetDefault("rules."+key, []string{})
	}

	// App defaults
	v.SetDefault("app.component", "sid-client")
	v.SetDefault("app.log_level", "info")
}

// BackendServicesConfig maps the loaded configuration to the backend package
func (c *Config) BackendServicesConfig() backend.Config {
	return backend.Config{
		BaseURL:   c.Backend.BaseURL,
		LoginPath: c.Backend.LoginPath,
		HTTPClient: backendhttp.ClientConfig{
			Timeout:            c.Backend.Timeout,
			InsecureSkipVerify: c.Backend.InsecureSkipVerify,
			EnableHTTP2:        c.Backend.EnableHTTP2,
			RateLimit:          c.Backend.RateLimit,
			RateBurst:          c.Backend.RateBurst,
		},
		CredentialSource: c.Credentials.Source,
		Username:         c.Credentials.Username,
		Password:         c.Credentials.Password,
		Namespace:        c.Kubernetes.Namespace,
		SecretName:       c.Credentials.SecretName,
		UsernameKey:      c.Credentials.UsernameKey,
		PasswordKey:      c.Credentials.PasswordKey,
	}
}

// ReporterConfig maps the heartbeat section to the reporter configuration
func (c *Config) ReporterConfig() heartbeat.Config {
	config := heartbeat.DefaultConfig()
	config.Interval = time.Duration(c.Heartbeat.IntervalSeconds) * time.Second
	if config.RequestTimeout > config.Interval {
		config.RequestTimeout = config.Interval
	}
	config.Path = c.Heartbeat.Path
	config.Status = c.Heartbeat.Status
	return config
}

// ValidationRules builds the validation rules with configured overrides applied
func (c *Config) ValidationRules() validation.Rules {
	return validation.NewRules(validation.Lists{
		ContractUnits:      c.Rules.ContractUnits,
		ContractTypes:      c.Rules.ContractTypes,
		ManufacturingTypes: c.Rules.ManufacturingTypes,
		TestTypes:          c.Rules.TestTypes,
		ResultTypes:        c.Rules.ResultTypes,
		TestStatuses:       c.Rules.TestStatuses,
		DocumentTypes:      c.Rules.DocumentTypes,
		Comparisons:        c.Rules.Comparisons,
	})
}

// LoggerConfig maps the app section to the logger configuration
func (c *Config) LoggerConfig() common.LoggerConfig {
	config := common.DefaultLoggerConfig()
	config.Level = common.ParseLogLevel(c.App.LogLevel)
	config.Component = c.App.Component
	return config
}
