package sigv4

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that signs outgoing requests before
// delegating to a base transport. Each attempt is signed with a fresh
// timestamp and freshly retrieved credentials.
//
// Use NewTransport to create a Transport with a configured
// *http.Transport for proxy, TLS, and timeout settings.
type Transport struct {
	base     http.RoundTripper
	signer   Signer
	provider CredentialsProvider
	now      func() time.Time
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of
// http.DefaultTransport is used, giving an independent connection pool
// with default proxy, TLS, and timeout settings. When provider is nil,
// credentials are read from the environment via EnvProvider.
//
//	client := &http.Client{
//	    Transport: sigv4.NewTransport(nil, sigv4.Signer{
//	        Region:  "us-east-1",
//	        Service: "medical-imaging",
//	    }, nil),
//	}
func NewTransport(base *http.Transport, signer Signer, provider CredentialsProvider) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	if provider == nil {
		provider = EnvProvider{}
	}

	return &Transport{
		base:     rt,
		signer:   signer,
		provider: provider,
		now:      time.Now,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation. When
// GetBody is available, the clone receives its own body copy so that
// hash computation does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	creds, err := t.provider.Retrieve()
	if err != nil {
		return nil, err
	}

	if err := t.signer.SignHTTP(clone, creds, t.now()); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
