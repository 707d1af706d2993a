package edge

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/radwave/edgesign/sigv4"
)

// Configuration errors.
var (
	// ErrMissingUpstream is returned when no upstream host is configured.
	ErrMissingUpstream = errors.New("edge: upstream host must not be empty")

	// ErrMissingScope is returned when the region or service name is
	// empty. Both are fixed configuration, never derived from requests.
	ErrMissingScope = errors.New("edge: region and service must not be empty")
)

// Config configures the interceptor.
type Config struct {
	// UpstreamHost is the fixed host requests are signed for and
	// forwarded to. It is configuration rather than the inbound Host
	// header, so a caller cannot inject a host into the signature.
	UpstreamHost string `yaml:"upstream_host"`

	// Region is the region portion of the credential scope.
	Region string `yaml:"region"`

	// Service is the service name portion of the credential scope.
	Service string `yaml:"service"`

	// Preflight configures the CORS preflight responder that answers
	// OPTIONS requests before they reach the signer.
	Preflight PreflightConfig `yaml:"preflight"`

	// TrustIncomingRequestID reuses an X-Request-ID from the inbound
	// request instead of generating a new one.
	TrustIncomingRequestID bool `yaml:"trust_incoming_request_id"`

	// Provider supplies per-invocation credentials. Defaults to
	// sigv4.EnvProvider, matching execution environments that inject
	// fresh credentials per invocation.
	Provider sigv4.CredentialsProvider `yaml:"-"`

	// Now returns the timestamp captured once per signing operation.
	// Defaults to time.Now. Fix it in tests for deterministic output.
	Now func() time.Time `yaml:"-"`

	// LogFunc is an optional callback invoked with the request and the
	// failure when signing or forwarding fails. When nil, no logging is
	// performed.
	LogFunc func(r *http.Request, err error) `yaml:"-"`
}

// Validate checks the fields that have no usable zero value.
func (c Config) Validate() error {
	if c.UpstreamHost == "" {
		return ErrMissingUpstream
	}

	if c.Region == "" || c.Service == "" {
		return ErrMissingScope
	}

	return nil
}

// LoadConfig reads an interceptor configuration from a YAML file. The
// callback and provider fields are left nil for the caller to fill in.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("edge: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("edge: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
