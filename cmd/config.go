package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myregistrar/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath          = "CONFIG_PATH"
	envHTTPPort            = "SERVICE_PORT_HTTP"
	envLogLevel            = "LOG_LEVEL"
	envRegistryURL         = "REGISTRY_URL"
	envRegistryUsername    = "REGISTRY_USERNAME"
	envRegistryPassword    = "REGISTRY_PASSWORD"
	envAutoRegistration    = "AUTO_REGISTRATION"
	envAutoDeregistration  = "AUTO_DEREGISTRATION"
	envRegisterOnce        = "REGISTER_ONCE"
	envHeartbeat           = "HEARTBEAT"
	envRegistrationPeriod  = "REGISTRATION_PERIOD_MS"
	envRegistrationTimeout = "REGISTRATION_TIMEOUT_MS"
	envAppName             = "APP_NAME"
	envServiceURL          = "SERVICE_URL"
	envServiceBaseURL      = "SERVICE_BASE_URL"
	envManagementURL       = "MANAGEMENT_URL"
	envManagementPath      = "MANAGEMENT_PATH"
	envHealthURL           = "HEALTH_URL"
	envPreferIP            = "PREFER_IP"
)

// Config holds the registrar configuration loaded by LoadConfig from the optional YAML file and environment
// variables. Registration drives service.RegistrationManager; Instance is what service.NewApplication derives
// the announced URLs from.
type Config struct {
	HTTPPort     int
	LogLevel     string
	Registration domain.RegistrationConfig
	Instance     domain.InstanceConfig
}

// yamlConfig is the root struct for YAML unmarshalling. It is filled with defaults first, then the file, then env
// overrides, and validated as a whole.
type yamlConfig struct {
	HTTPPort     int              `yaml:"service_port_http" validate:"min=1,max=65535"`
	LogLevel     string           `yaml:"log_level" validate:"oneof=debug info warn error"`
	Registration yamlRegistration `yaml:"registration"`
	Instance     yamlInstance     `yaml:"instance"`
}

// yamlRegistration holds the registry endpoints, credentials, enablement flags and timings (milliseconds).
type yamlRegistration struct {
	URLs               []string `yaml:"urls" validate:"required,min=1,dive,required,url"`
	Username           string   `yaml:"username"`
	Password           string   `yaml:"password"`
	AutoRegistration   bool     `yaml:"auto_registration"`
	AutoDeregistration bool     `yaml:"auto_deregistration"`
	RegisterOnce       bool     `yaml:"register_once"`
	Heartbeat          bool     `yaml:"heartbeat"`
	PeriodMs           int      `yaml:"period_ms" validate:"gt=0"`
	TimeoutMs          int      `yaml:"timeout_ms" validate:"gt=0"`
}

// yamlInstance holds the announced application name, explicit or base URLs and metadata.
type yamlInstance struct {
	Name           string            `yaml:"name" validate:"required"`
	ServiceURL     string            `yaml:"service_url" validate:"omitempty,url"`
	ServiceBaseURL string            `yaml:"service_base_url" validate:"omitempty,url"`
	ManagementURL  string            `yaml:"management_url" validate:"omitempty,url"`
	ManagementPath string            `yaml:"management_path"`
	HealthURL      string            `yaml:"health_url" validate:"omitempty,url"`
	PreferIP       bool              `yaml:"prefer_ip"`
	Metadata       map[string]string `yaml:"metadata"`
}

func defaultYAMLConfig() yamlConfig {
	return yamlConfig{
		HTTPPort: 8080,
		LogLevel: "info",
		Registration: yamlRegistration{
			AutoRegistration:   true,
			AutoDeregistration: true,
			RegisterOnce:       true,
			PeriodMs:           int(domain.DefaultPeriod / time.Millisecond),
			TimeoutMs:          int(domain.DefaultTimeout / time.Millisecond),
		},
		Instance: yamlInstance{
			Name:           domain.DefaultApplicationName,
			ManagementPath: "/actuator",
		},
	}
}

// loadYAMLConfig reads the YAML file at path over the defaults in out. Keys absent from the file keep their defaults.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string, out *yamlConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// LoadConfig builds the registrar config: defaults, then the YAML file at CONFIG_PATH (optional, converted to
// absolute), then environment overrides (REGISTRY_URL is comma separated; durations are milliseconds). The result
// is validated with struct tags.
//
// Returns: (*Config, nil) on success; (nil, error) on unreadable or malformed YAML, unparsable env values or a
// failed validation (e.g. missing REGISTRY_URL, non-positive period).
//
// Called from the serve and deregister commands.
func LoadConfig() (*Config, error) {
	raw := defaultYAMLConfig()

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		if err := loadYAMLConfig(configPath, &raw); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	}

	if err := applyEnv(&raw); err != nil {
		return nil, err
	}
	raw.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	urls := make([]string, 0, len(raw.Registration.URLs))
	for _, u := range raw.Registration.URLs {
		urls = append(urls, strings.TrimRight(strings.TrimSpace(u), "/"))
	}
	return &Config{
		HTTPPort: raw.HTTPPort,
		LogLevel: raw.LogLevel,
		Registration: domain.RegistrationConfig{
			RegistryURLs:       urls,
			Username:           raw.Registration.Username,
			Password:           raw.Registration.Password,
			AutoRegistration:   raw.Registration.AutoRegistration,
			AutoDeregistration: raw.Registration.AutoDeregistration,
			RegisterOnce:       raw.Registration.RegisterOnce,
			Heartbeat:          raw.Registration.Heartbeat,
			Period:             time.Duration(raw.Registration.PeriodMs) * time.Millisecond,
			Timeout:            time.Duration(raw.Registration.TimeoutMs) * time.Millisecond,
		},
		Instance: domain.InstanceConfig{
			Name:           raw.Instance.Name,
			ServiceURL:     raw.Instance.ServiceURL,
			ServiceBaseURL: raw.Instance.ServiceBaseURL,
			ManagementURL:  raw.Instance.ManagementURL,
			ManagementPath: raw.Instance.ManagementPath,
			HealthURL:      raw.Instance.HealthURL,
			Port:           raw.HTTPPort,
			PreferIP:       raw.Instance.PreferIP,
			Metadata:       raw.Instance.Metadata,
		},
	}, nil
}

func applyEnv(raw *yamlConfig) error {
	if err := envInt(envHTTPPort, &raw.HTTPPort); err != nil {
		return err
	}
	envString(envLogLevel, &raw.LogLevel)

	if v := strings.TrimSpace(os.Getenv(envRegistryURL)); v != "" {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		raw.Registration.URLs = urls
	}
	envString(envRegistryUsername, &raw.Registration.Username)
	envString(envRegistryPassword, &raw.Registration.Password)
	for name, dst := range map[string]*bool{
		envAutoRegistration:   &raw.Registration.AutoRegistration,
		envAutoDeregistration: &raw.Registration.AutoDeregistration,
		envRegisterOnce:       &raw.Registration.RegisterOnce,
		envHeartbeat:          &raw.Registration.Heartbeat,
		envPreferIP:           &raw.Instance.PreferIP,
	} {
		if err := envBool(name, dst); err != nil {
			return err
		}
	}
	if err := envInt(envRegistrationPeriod, &raw.Registration.PeriodMs); err != nil {
		return err
	}
	if err := envInt(envRegistrationTimeout, &raw.Registration.TimeoutMs); err != nil {
		return err
	}

	envString(envAppName, &raw.Instance.Name)
	envString(envServiceURL, &raw.Instance.ServiceURL)
	envString(envServiceBaseURL, &raw.Instance.ServiceBaseURL)
	envString(envManagementURL, &raw.Instance.ManagementURL)
	envString(envManagementPath, &raw.Instance.ManagementPath)
	envString(envHealthURL, &raw.Instance.HealthURL)
	return nil
}

func envString(name string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = b
	return nil
}
