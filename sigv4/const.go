package sigv4

// Signing protocol constants.
const (
	// SigningAlgorithm is the algorithm identifier that prefixes the
	// string to sign and the Authorization header value.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// EmptyPayloadHash is the hex encoded SHA-256 digest of an empty byte
	// sequence. Requests without a body carry this value in the
	// X-Amz-Content-Sha256 header; an empty body is hashed, never skipped.
	EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// UnsignedPayload is the sentinel content hash used by presigned URLs,
	// where the payload is not covered by the signature.
	UnsignedPayload = "UNSIGNED-PAYLOAD"

	// TimeFormat is the layout of the X-Amz-Date value (ISO basic UTC).
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the layout of the date portion of the credential
	// scope.
	ShortTimeFormat = "20060102"
)

// scopeTerminator ends every credential scope string and is the final
// message of the key derivation chain.
const scopeTerminator = "aws4_request"

// Header names set by the signer.
const (
	HeaderAmzDate       = "X-Amz-Date"
	HeaderContentSHA256 = "X-Amz-Content-Sha256"
	HeaderAuthorization = "Authorization"
	HeaderSecurityToken = "X-Amz-Security-Token"
)

// Query parameter names used by presigned URLs.
const (
	queryAlgorithm     = "X-Amz-Algorithm"
	queryCredential    = "X-Amz-Credential"
	queryDate          = "X-Amz-Date"
	queryExpires       = "X-Amz-Expires"
	querySignedHeaders = "X-Amz-SignedHeaders"
	querySignature     = "X-Amz-Signature"
	querySecurityToken = "X-Amz-Security-Token"
)
