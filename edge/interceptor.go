package edge

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"

	"github.com/radwave/edgesign/sigv4"
)

// headerRequestID propagates a per-request identifier through the edge
// pipeline and back to the caller.
const headerRequestID = "X-Request-ID"

// Interceptor sits on the path between the edge and the backend service.
// It turns an unsigned inbound request into a request bearing a valid
// signature for the fixed upstream host and forwards it; on any failure
// it returns a synthetic error response instead of a half-signed
// request.
//
// Every request is handled by an independent, stateless computation: the
// Interceptor holds no mutable state and is safe for concurrent use.
type Interceptor struct {
	cfg       Config
	signer    sigv4.Signer
	provider  sigv4.CredentialsProvider
	now       func() time.Time
	preflight http.Handler
	proxy     *httputil.ReverseProxy
}

// NewInterceptor builds an Interceptor from cfg. It returns a
// configuration error when the upstream host, region, or service is
// missing.
func NewInterceptor(cfg Config) (*Interceptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := cfg.Provider
	if provider == nil {
		provider = sigv4.EnvProvider{}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("edge: configure upstream transport: %w", err)
	}

	it := &Interceptor{
		cfg:       cfg,
		signer:    sigv4.Signer{Region: cfg.Region, Service: cfg.Service},
		provider:  provider,
		now:       now,
		preflight: PreflightHandler(cfg.Preflight),
	}

	it.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = "https"
			pr.Out.URL.Host = cfg.UpstreamHost
			pr.Out.Host = cfg.UpstreamHost
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			it.log(r, err)
			responseJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream unreachable"})
		},
	}

	return it, nil
}

// ServeHTTP implements http.Handler. OPTIONS requests short-circuit to
// the preflight responder before any signing. Everything else is signed
// against a single freshly captured timestamp and forwarded; method,
// path, query, body, and uncovered headers pass through verbatim while
// caller-supplied values for the signed header names are overwritten.
func (it *Interceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		it.preflight.ServeHTTP(w, r)
		return
	}

	it.assignRequestID(w, r)

	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(error); ok && err == http.ErrAbortHandler {
				panic(rec)
			}

			it.fail(w, r, fmt.Errorf("edge: recovered panic: %v", rec))
		}
	}()

	creds, err := it.provider.Retrieve()
	if err != nil {
		it.fail(w, r, err)
		return
	}

	// The inbound Host header never enters the signature; the request is
	// re-targeted at the configured upstream before signing.
	r.Host = it.cfg.UpstreamHost

	if err := it.signer.SignHTTP(r, creds, it.now()); err != nil {
		it.fail(w, r, err)
		return
	}

	it.proxy.ServeHTTP(w, r)
}

// assignRequestID sets the request ID header on both the request and the
// response, generating a fresh UUID unless a trusted incoming value is
// present.
func (it *Interceptor) assignRequestID(w http.ResponseWriter, r *http.Request) {
	id := ""
	if it.cfg.TrustIncomingRequestID {
		id = r.Header.Get(headerRequestID)
	}

	if id == "" {
		id = uuid.New().String()
	}

	r.Header.Set(headerRequestID, id)
	w.Header().Set(headerRequestID, id)
}

// fail writes the synthetic error response. No partially signed request
// ever reaches the upstream: the response short-circuits the pipeline.
func (it *Interceptor) fail(w http.ResponseWriter, r *http.Request, err error) {
	it.log(r, err)
	responseJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// log reports a failure through the configured callback, if any.
func (it *Interceptor) log(r *http.Request, err error) {
	if it.cfg.LogFunc != nil {
		it.cfg.LogFunc(r, err)
	}
}
