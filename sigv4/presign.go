package sigv4

import (
	"net/url"
	"strconv"
	"time"
)

// Presign expiry bounds. The verifying service rejects anything longer
// than seven days.
const (
	minPresignExpiry = time.Second
	maxPresignExpiry = 7 * 24 * time.Hour
)

// Presign produces a URL that carries the signature in the query string
// instead of headers, suitable for handing to a browser that cannot set
// signed headers itself. Only the host header is signed and the payload
// uses the UNSIGNED-PAYLOAD sentinel, so the URL authorizes the request
// line regardless of body.
//
// The same determinism rules as Sign apply: identical inputs and
// timestamp yield an identical URL.
func (s Signer) Presign(req SignableRequest, creds Credentials, at time.Time, expires time.Duration) (string, error) {
	if !creds.Valid() {
		return "", ErrMissingCredentials
	}

	if req.Host == "" {
		return "", ErrMissingHost
	}

	if expires < minPresignExpiry || expires > maxPresignExpiry {
		return "", ErrInvalidExpiry
	}

	at = at.UTC()
	amzDate := at.Format(TimeFormat)
	date := at.Format(ShortTimeFormat)
	scope := credentialScope(date, s.Region, s.Service)

	query := url.Values{}
	for key, values := range req.Query {
		query[key] = append([]string(nil), values...)
	}

	query.Set(queryAlgorithm, SigningAlgorithm)
	query.Set(queryCredential, creds.AccessKeyID+"/"+scope)
	query.Set(queryDate, amzDate)
	query.Set(queryExpires, strconv.Itoa(int(expires/time.Second)))
	query.Set(querySignedHeaders, "host")

	if creds.SessionToken != "" {
		query.Set(querySecurityToken, creds.SessionToken)
	}

	signable := req
	signable.Query = query

	headers := [][2]string{{"host", req.Host}}
	canonical, _ := canonicalRequest(signable, headers, UnsignedPayload)

	key := creds.DeriveSigningKey(date, s.Region, s.Service)
	signature := hmacSHA256Hex(key, []byte(stringToSign(amzDate, scope, canonical)))

	query.Set(querySignature, signature)

	path := req.Path
	if path == "" {
		path = "/"
	}

	return "https://" + req.Host + path + "?" + canonicalQuery(query), nil
}
