package sigv4

import (
	"bytes"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCreds = Credentials{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
	}

	testTime = time.Date(2015, 8, 30, 12, 36, 0, 0, time.UTC)

	testSigner = Signer{Region: "us-east-1", Service: "iam"}

	hexSignature = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

func TestSignerSign(t *testing.T) {
	req := SignableRequest{
		Method: "GET",
		Host:   "iam.amazonaws.com",
		Path:   "/",
	}

	t.Run("empty body hashes to empty-string digest", func(t *testing.T) {
		headers, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		assert.Equal(t, EmptyPayloadHash, headers.ContentSHA256)
		assert.Equal(t, "20150830T123600Z", headers.AmzDate)
		assert.Equal(t, "iam.amazonaws.com", headers.Host)
	})

	t.Run("authorization header has exactly three fields", func(t *testing.T) {
		headers, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		alg, rest, ok := strings.Cut(headers.Authorization, " ")
		require.True(t, ok)
		assert.Equal(t, SigningAlgorithm, alg)

		fields := strings.Split(rest, ", ")
		require.Len(t, fields, 3)
		assert.Equal(t, "Credential=AKIDEXAMPLE/20150830/us-east-1/iam/aws4_request", fields[0])
		assert.Equal(t, "SignedHeaders=host;x-amz-content-sha256;x-amz-date", fields[1])

		sig, found := strings.CutPrefix(fields[2], "Signature=")
		require.True(t, found)
		assert.Regexp(t, hexSignature, sig)
	})

	t.Run("deterministic for a fixed timestamp", func(t *testing.T) {
		first, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		second, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("single body byte changes hash and signature", func(t *testing.T) {
		withBody := req
		withBody.Method = "POST"
		withBody.Body = []byte(`{"imageSetId":"abc"}`)

		first, err := testSigner.Sign(withBody, testCreds, testTime)
		require.NoError(t, err)

		withBody.Body = []byte(`{"imageSetId":"abd"}`)

		second, err := testSigner.Sign(withBody, testCreds, testTime)
		require.NoError(t, err)

		assert.NotEqual(t, first.ContentSHA256, second.ContentSHA256)
		assert.NotEqual(t, first.Authorization, second.Authorization)
	})

	t.Run("missing credentials yield no partial signature", func(t *testing.T) {
		for _, creds := range []Credentials{
			{},
			{AccessKeyID: "AKIDEXAMPLE"},
			{SecretAccessKey: "secret"},
		} {
			headers, err := testSigner.Sign(req, creds, testTime)

			assert.ErrorIs(t, err, ErrMissingCredentials)
			assert.Equal(t, Headers{}, headers)
		}
	})

	t.Run("missing host is rejected", func(t *testing.T) {
		_, err := testSigner.Sign(SignableRequest{Method: "GET", Path: "/"}, testCreds, testTime)

		assert.ErrorIs(t, err, ErrMissingHost)
	})

	t.Run("timestamp is normalized to UTC", func(t *testing.T) {
		zone := time.FixedZone("UTC+3", 3*60*60)
		local := testTime.In(zone)

		fromLocal, err := testSigner.Sign(req, testCreds, local)
		require.NoError(t, err)

		fromUTC, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		assert.Equal(t, fromUTC, fromLocal)
	})
}

func TestSignerSignSessionToken(t *testing.T) {
	req := SignableRequest{Method: "GET", Host: "iam.amazonaws.com", Path: "/"}

	withToken := testCreds
	withToken.SessionToken = "FwoGZXIvYXdzEJr//token"

	t.Run("token adds header and signed-header entry together", func(t *testing.T) {
		headers, err := testSigner.Sign(req, withToken, testTime)
		require.NoError(t, err)

		assert.Equal(t, withToken.SessionToken, headers.SecurityToken)
		assert.Contains(t, headers.Authorization,
			"SignedHeaders=host;x-amz-content-sha256;x-amz-date;x-amz-security-token")
	})

	t.Run("no token leaves both out", func(t *testing.T) {
		headers, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		assert.Empty(t, headers.SecurityToken)
		assert.NotContains(t, headers.Authorization, "x-amz-security-token")
	})

	t.Run("token presence changes the signature", func(t *testing.T) {
		plain, err := testSigner.Sign(req, testCreds, testTime)
		require.NoError(t, err)

		tokened, err := testSigner.Sign(req, withToken, testTime)
		require.NoError(t, err)

		assert.NotEqual(t, plain.Authorization, tokened.Authorization)
	})
}

func TestHeadersApply(t *testing.T) {
	t.Run("overwrites caller-supplied values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://caller.example.com/", nil)
		r.Header.Set(HeaderAuthorization, "Bearer stale")
		r.Header.Set(HeaderAmzDate, "19990101T000000Z")
		r.Header.Set("X-Custom", "kept")

		diff := Headers{
			Host:          "iam.amazonaws.com",
			AmzDate:       "20150830T123600Z",
			ContentSHA256: EmptyPayloadHash,
			Authorization: "AWS4-HMAC-SHA256 Credential=...",
		}
		diff.Apply(r)

		assert.Equal(t, "iam.amazonaws.com", r.Host)
		assert.Equal(t, "20150830T123600Z", r.Header.Get(HeaderAmzDate))
		assert.Equal(t, EmptyPayloadHash, r.Header.Get(HeaderContentSHA256))
		assert.Equal(t, diff.Authorization, r.Header.Get(HeaderAuthorization))
		assert.Equal(t, "kept", r.Header.Get("X-Custom"))
	})

	t.Run("empty token removes stale header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://example.com/", nil)
		r.Header.Set(HeaderSecurityToken, "stale")

		Headers{Host: "example.com"}.Apply(r)

		assert.Empty(t, r.Header.Get(HeaderSecurityToken))
	})
}

func TestSignerSignHTTP(t *testing.T) {
	t.Run("signs in place and restores the body", func(t *testing.T) {
		body := []byte(`{"imageSetId":"abc"}`)
		r := httptest.NewRequest("POST", "https://iam.amazonaws.com/search?datastore=d1", bytes.NewReader(body))

		err := testSigner.SignHTTP(r, testCreds, testTime)
		require.NoError(t, err)

		assert.NotEmpty(t, r.Header.Get(HeaderAuthorization))
		assert.Equal(t, "20150830T123600Z", r.Header.Get(HeaderAmzDate))
		assert.Equal(t, sha256Hex(body), r.Header.Get(HeaderContentSHA256))

		restored, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, body, restored)
	})

	t.Run("falls back to URL host", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://iam.amazonaws.com/", nil)
		r.Host = ""

		err := testSigner.SignHTTP(r, testCreds, testTime)
		require.NoError(t, err)

		assert.Equal(t, "iam.amazonaws.com", r.Host)
	})
}
