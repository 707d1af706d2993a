package sigv4

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	t.Run("nil base uses default transport clone", func(t *testing.T) {
		tr := NewTransport(nil, testSigner, nil)

		require.NotNil(t, tr.base)
		assert.NotSame(t, http.DefaultTransport, tr.base)
	})

	t.Run("nil provider defaults to environment", func(t *testing.T) {
		tr := NewTransport(nil, testSigner, nil)

		assert.IsType(t, EnvProvider{}, tr.provider)
	})
}

func TestTransportRoundTrip(t *testing.T) {
	provider := StaticProvider{Credentials: testCreds}

	t.Run("signs outgoing requests", func(t *testing.T) {
		var seen http.Header
		var seenBody []byte

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Clone()
			seenBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		tr := NewTransport(nil, testSigner, provider)
		tr.now = func() time.Time { return testTime }

		client := &http.Client{Transport: tr}

		body := []byte(`{"datastoreId":"d1"}`)
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/search", bytes.NewReader(body))
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.NotEmpty(t, seen.Get(HeaderAuthorization))
		assert.Equal(t, "20150830T123600Z", seen.Get(HeaderAmzDate))
		assert.Equal(t, sha256Hex(body), seen.Get(HeaderContentSHA256))
		assert.Equal(t, body, seenBody)
	})

	t.Run("original request is not mutated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		tr := NewTransport(nil, testSigner, provider)
		tr.now = func() time.Time { return testTime }

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
		require.NoError(t, err)

		resp, err := tr.RoundTrip(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, req.Header.Get(HeaderAuthorization))
		assert.Empty(t, req.Header.Get(HeaderAmzDate))
	})

	t.Run("provider failure aborts before dialing", func(t *testing.T) {
		tr := NewTransport(nil, testSigner, StaticProvider{})

		req, err := http.NewRequest(http.MethodGet, "https://example.invalid/", nil)
		require.NoError(t, err)

		_, err = tr.RoundTrip(req)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}
