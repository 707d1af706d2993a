package sigv4

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"
)

// Headers is the explicit header diff produced by signing. Applying it to
// the outbound request, overwriting any caller-supplied values for the
// same names, makes the request authentic to the verifying service for
// this single invocation.
type Headers struct {
	// Host is the authority the signature was computed for.
	Host string

	// AmzDate is the captured timestamp in ISO basic UTC form.
	AmzDate string

	// ContentSHA256 is the hex encoded body hash.
	ContentSHA256 string

	// Authorization carries the algorithm, credential scope, signed-header
	// list, and signature.
	Authorization string

	// SecurityToken is empty when the credentials carry no session token.
	SecurityToken string
}

// Apply sets the diff on r, overwriting existing values for the exact
// header names the signature covers. All other headers are untouched.
// The security token header is removed when the diff carries no token so
// the header set and the signed-header list stay consistent.
func (sh Headers) Apply(r *http.Request) {
	r.Host = sh.Host
	r.Header.Set(HeaderAmzDate, sh.AmzDate)
	r.Header.Set(HeaderContentSHA256, sh.ContentSHA256)
	r.Header.Set(HeaderAuthorization, sh.Authorization)

	if sh.SecurityToken != "" {
		r.Header.Set(HeaderSecurityToken, sh.SecurityToken)
	} else {
		r.Header.Del(HeaderSecurityToken)
	}
}

// Signer computes request signatures for a fixed region and service. It
// is stateless and safe for concurrent use.
type Signer struct {
	// Region is the region portion of the credential scope.
	Region string

	// Service is the service name portion of the credential scope.
	Service string
}

// Sign computes the signature headers for req using creds at the given
// time. The caller captures the timestamp once and passes it in; every
// value feeding the canonical request and the string to sign derives
// from that single capture, so repeated calls with the same inputs yield
// byte-identical output.
//
// Sign never mutates req. A missing access key or secret returns
// ErrMissingCredentials with an empty diff; no partial signature is ever
// produced.
func (s Signer) Sign(req SignableRequest, creds Credentials, at time.Time) (Headers, error) {
	if !creds.Valid() {
		return Headers{}, ErrMissingCredentials
	}

	if req.Host == "" {
		return Headers{}, ErrMissingHost
	}

	at = at.UTC()
	amzDate := at.Format(TimeFormat)
	date := at.Format(ShortTimeFormat)

	bodyHash := sha256Hex(req.Body)

	headers := [][2]string{
		{"host", req.Host},
		{"x-amz-content-sha256", bodyHash},
		{"x-amz-date", amzDate},
	}

	if creds.SessionToken != "" {
		headers = append(headers, [2]string{"x-amz-security-token", creds.SessionToken})
	}

	canonical, signedHeaders := canonicalRequest(req, headers, bodyHash)

	scope := credentialScope(date, s.Region, s.Service)
	toSign := stringToSign(amzDate, scope, canonical)

	key := creds.DeriveSigningKey(date, s.Region, s.Service)
	signature := hmacSHA256Hex(key, []byte(toSign))

	return Headers{
		Host:          req.Host,
		AmzDate:       amzDate,
		ContentSHA256: bodyHash,
		Authorization: authorizationHeader(creds.AccessKeyID, scope, signedHeaders, signature),
		SecurityToken: creds.SessionToken,
	}, nil
}

// SignHTTP signs r in place: it reads and restores the body, computes
// the header diff, and applies it. Caller-supplied values for the
// covered header names are overwritten; method, path, other headers, and
// body pass through verbatim.
func (s Signer) SignHTTP(r *http.Request, creds Credentials, at time.Time) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}

	diff, err := s.Sign(SignableRequest{
		Method: r.Method,
		Host:   host,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Body:   body,
	}, creds, at)
	if err != nil {
		return err
	}

	diff.Apply(r)

	return nil
}

// credentialScope joins the date, region, and service with the fixed
// terminator. The same scope string must feed both the key derivation
// chain and the string to sign, or the verifier rejects the signature.
func credentialScope(date, region, service string) string {
	return strings.Join([]string{date, region, service, scopeTerminator}, "/")
}

// stringToSign combines the algorithm identifier, the captured timestamp,
// the credential scope, and the digest of the canonical request.
func stringToSign(amzDate, scope, canonical string) string {
	return SigningAlgorithm + "\n" + amzDate + "\n" + scope + "\n" + sha256Hex([]byte(canonical))
}

// authorizationHeader formats the Authorization value. The comma-space
// separators are mandated by the verifier's parser.
func authorizationHeader(accessKeyID, scope, signedHeaders, signature string) string {
	return SigningAlgorithm +
		" Credential=" + accessKeyID + "/" + scope +
		", SignedHeaders=" + signedHeaders +
		", Signature=" + signature
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again downstream. A nil body
// yields nil bytes.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
