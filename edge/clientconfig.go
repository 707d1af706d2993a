package edge

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

// ClientConfig is the static key/value configuration consumed by the
// browser client: API endpoint, storage bucket, datastore identifier,
// environment tag, route names. It is generated by out-of-band
// provisioning and served read-only; it plays no part in signing.
type ClientConfig map[string]string

// LoadClientConfig reads a client configuration from a YAML file.
func LoadClientConfig(path string) (ClientConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("edge: read client config: %w", err)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("edge: parse client config: %w", err)
	}

	return cfg, nil
}

// Handler serves the configuration as JSON. The payload only changes on
// re-provisioning, so responses carry a short public cache lifetime.
func (c ClientConfig) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		responseJSON(w, http.StatusOK, c)
	})
}
