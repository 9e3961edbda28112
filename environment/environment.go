// Package environment resolves which Payvment API environment a session
// talks to. Payvment runs two fully isolated environments, production and
// sandbox, each with its own base URL and application credentials. The
// choice is made once, at session construction, and never changes for the
// lifetime of the session.
package environment

import (
	"os"

	"github.com/pkg/errors"
)

// Default base URLs for the two Payvment environments. Either can be
// overridden through Config for testing against a local stub.
const (
	ProductionBaseURL = "https://api.payvment.com"
	SandboxBaseURL    = "https://api-sandbox.payvment.com"
)

// ErrMissingCredentials indicates that one of the four required application
// credentials was absent at construction time. This is a fatal startup
// condition, not a recoverable per-call error.
var ErrMissingCredentials = errors.New("missing application credentials")

// Config supplies the application credentials for both environments.
// All four credential values are required; the base URLs default to the
// platform's known hosts when left empty.
type Config struct {
	ProductionClientID     string
	ProductionClientSecret string
	SandboxClientID        string
	SandboxClientSecret    string

	// Optional overrides for the platform base URLs.
	ProductionBaseURL string
	SandboxBaseURL    string
}

// Validate checks that all four application credentials are present.
func (c Config) Validate() error {
	if c.ProductionClientID == "" {
		return errors.Wrap(ErrMissingCredentials, "production client id")
	}
	if c.ProductionClientSecret == "" {
		return errors.Wrap(ErrMissingCredentials, "production client secret")
	}
	if c.SandboxClientID == "" {
		return errors.Wrap(ErrMissingCredentials, "sandbox client id")
	}
	if c.SandboxClientSecret == "" {
		return errors.Wrap(ErrMissingCredentials, "sandbox client secret")
	}
	return nil
}

// Environment is the resolved selection: one base URL and one credential
// pair. Immutable once resolved.
type Environment struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Sandbox      bool
}

// Resolve picks the environment for a session. Pure selection: no side
// effects beyond validating the configuration.
func Resolve(sandbox bool, cfg Config) (Environment, error) {
	if err := cfg.Validate(); err != nil {
		return Environment{}, errors.Wrap(err, "[environment.Resolve]")
	}

	if sandbox {
		baseURL := cfg.SandboxBaseURL
		if baseURL == "" {
			baseURL = SandboxBaseURL
		}
		return Environment{
			BaseURL:      baseURL,
			ClientID:     cfg.SandboxClientID,
			ClientSecret: cfg.SandboxClientSecret,
			Sandbox:      true,
		}, nil
	}

	baseURL := cfg.ProductionBaseURL
	if baseURL == "" {
		baseURL = ProductionBaseURL
	}
	return Environment{
		BaseURL:      baseURL,
		ClientID:     cfg.ProductionClientID,
		ClientSecret: cfg.ProductionClientSecret,
	}, nil
}

// Environment variable names read by FromEnv.
const (
	productionClientIDVar     = "PAYVMENT_CLIENT_ID"
	productionClientSecretVar = "PAYVMENT_CLIENT_SECRET"
	sandboxClientIDVar        = "PAYVMENT_SANDBOX_CLIENT_ID"
	sandboxClientSecretVar    = "PAYVMENT_SANDBOX_CLIENT_SECRET"
	productionBaseURLVar      = "PAYVMENT_BASE_URL"
	sandboxBaseURLVar         = "PAYVMENT_SANDBOX_BASE_URL"
)

// FromEnv builds a Config from PAYVMENT_* environment variables.
// Validation is deferred to Resolve so callers can layer overrides first.
func FromEnv() Config {
	return Config{
		ProductionClientID:     GetEnv(productionClientIDVar, ""),
		ProductionClientSecret: GetEnv(productionClientSecretVar, ""),
		SandboxClientID:        GetEnv(sandboxClientIDVar, ""),
		SandboxClientSecret:    GetEnv(sandboxClientSecretVar, ""),
		ProductionBaseURL:      GetEnv(productionBaseURLVar, ""),
		SandboxBaseURL:         GetEnv(sandboxBaseURLVar, ""),
	}
}

// GetEnv returns the value of envVar, or defaultValue when unset or empty.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
