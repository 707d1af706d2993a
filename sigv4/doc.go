// Package sigv4 implements AWS Signature Version 4 request signing: the
// canonical request serialization, the scoped signing-key derivation
// chain, and the Authorization header format accepted by SigV4-verifying
// services.
//
// The package is a signer only, never a verifier. Credentials and the
// captured timestamp are explicit parameters rather than ambient state,
// so signing is a pure function that tests can pin to a fixed clock.
//
// # Signing Requests
//
// Sign computes an explicit header diff without touching its input:
//
//	signer := sigv4.Signer{Region: "us-east-1", Service: "medical-imaging"}
//
//	headers, err := signer.Sign(sigv4.SignableRequest{
//	    Method: http.MethodGet,
//	    Host:   "runtime-medical-imaging.us-east-1.amazonaws.com",
//	    Path:   "/datastore/abc123/imageSet/def456/getImageSetMetadata",
//	}, creds, time.Now())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers.Apply(req)
//
// SignHTTP is the in-place convenience for an *http.Request: it reads
// and restores the body, then applies the diff, overwriting any
// caller-supplied values for the covered header names.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request with a fresh timestamp. Pass an *http.Transport to configure
// proxy, TLS, and timeout settings; pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: sigv4.NewTransport(nil, signer, sigv4.EnvProvider{}),
//	}
//
// # Presigned URLs
//
// Presign moves the signature into the query string for callers that
// cannot set headers, such as a browser downloading an object directly:
//
//	url, err := signer.Presign(sigv4.SignableRequest{
//	    Method: http.MethodGet,
//	    Host:   bucket + ".s3.amazonaws.com",
//	    Path:   "/input/" + key,
//	}, creds, time.Now(), 15*time.Minute)
//
// # Credentials
//
// CredentialsProvider abstracts where credentials come from. EnvProvider
// reads the conventional AWS_* environment variables on every call,
// matching execution environments that rotate credentials per
// invocation; StaticProvider holds a fixed set for tests and tooling.
package sigv4
