package edge

import (
	"net/http"
	"strconv"
	"strings"
)

// Preflight defaults applied when the corresponding config field is empty.
var (
	defaultAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	defaultAllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

const defaultMaxAge = 3600

// PreflightConfig describes the static CORS policy advertised to
// browsers. The responder echoes these values verbatim; there is no
// per-origin negotiation.
type PreflightConfig struct {
	// AllowedOrigin is the origin policy. Defaults to "*".
	AllowedOrigin string `yaml:"allowed_origin"`

	// AllowedMethods lists the methods the client may use.
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists the headers the client may send.
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the number of seconds a preflight result may be cached.
	MaxAge int `yaml:"max_age"`
}

// PreflightHandler returns a handler that answers CORS preflight OPTIONS
// requests with a fixed 204 response and the static header set. It is
// stateless, involves no signing, and short-circuits the edge pipeline:
// the signer never sees a preflight request.
func PreflightHandler(cfg PreflightConfig) http.Handler {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultAllowedMethods
	}

	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultAllowedHeaders
	}

	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = defaultMaxAge
	}

	methodList := strings.Join(methods, ",")
	headerList := strings.Join(headers, ",")
	maxAgeValue := strconv.Itoa(maxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", methodList)
		h.Set("Access-Control-Allow-Headers", headerList)
		h.Set("Access-Control-Max-Age", maxAgeValue)

		w.WriteHeader(http.StatusNoContent)
	})
}
