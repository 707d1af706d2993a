package sigv4

import "os"

// Environment variable names read by EnvProvider.
const (
	envAccessKeyID     = "AWS_ACCESS_KEY_ID"
	envSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	envSessionToken    = "AWS_SESSION_TOKEN"
)

// Credentials is a temporary credential set supplied fresh per
// invocation by the hosting environment. It is never persisted.
type Credentials struct {
	// AccessKeyID identifies the credentials in the Authorization header.
	AccessKeyID string

	// SecretAccessKey seeds the signing key derivation chain. It never
	// appears in any output.
	SecretAccessKey string

	// SessionToken is the optional temporary session token. It is itself
	// a signed artifact and is forwarded untouched in the
	// X-Amz-Security-Token header when present.
	SessionToken string
}

// Valid reports whether the credentials carry both an access key ID and
// a secret access key. The session token is optional.
func (c Credentials) Valid() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// DeriveSigningKey derives the single-purpose signing key for the given
// scope through the four-step HMAC chain:
//
//	kDate    = HMAC("AWS4" + secret, date)
//	kRegion  = HMAC(kDate, region)
//	kService = HMAC(kRegion, service)
//	kSigning = HMAC(kService, "aws4_request")
//
// The order and the literal strings are fixed by the protocol. The
// returned key is ephemeral: it is used for exactly one signature
// computation and must not be logged or cached.
func (c Credentials) DeriveSigningKey(date, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+c.SecretAccessKey), []byte(date))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(service))

	return hmacSHA256(kService, []byte(scopeTerminator))
}

// CredentialsProvider supplies credentials for a single signing
// operation. Retrieval is a fast local read, not a network call.
type CredentialsProvider interface {
	// Retrieve returns the credentials to sign with, or an error when no
	// usable credentials are available.
	Retrieve() (Credentials, error)
}

// StaticProvider returns a fixed credential set on every call.
type StaticProvider struct {
	Credentials Credentials
}

// Retrieve implements CredentialsProvider. It returns
// ErrMissingCredentials when the static set is incomplete.
func (p StaticProvider) Retrieve() (Credentials, error) {
	if !p.Credentials.Valid() {
		return Credentials{}, ErrMissingCredentials
	}

	return p.Credentials, nil
}

// EnvProvider reads credentials from the conventional environment
// variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and the optional
// AWS_SESSION_TOKEN) on every call, picking up whatever the execution
// environment has injected for the current invocation.
type EnvProvider struct{}

// Retrieve implements CredentialsProvider. Absence of the access key or
// secret is a hard failure; there is no partial signing.
func (EnvProvider) Retrieve() (Credentials, error) {
	creds := Credentials{
		AccessKeyID:     os.Getenv(envAccessKeyID),
		SecretAccessKey: os.Getenv(envSecretAccessKey),
		SessionToken:    os.Getenv(envSessionToken),
	}

	if !creds.Valid() {
		return Credentials{}, ErrMissingCredentials
	}

	return creds, nil
}
