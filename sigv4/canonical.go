package sigv4

import (
	"net/url"
	"slices"
	"strings"
)

// SignableRequest describes the parts of an HTTP request covered by the
// signature. It is immutable input: the signer reads it and never writes
// it back.
type SignableRequest struct {
	// Method is the upper-case HTTP verb.
	Method string

	// Host is the authority the request is signed for. It is fixed
	// configuration on the signing side, never taken from an inbound
	// Host header.
	Host string

	// Path is the URI path, already percent-normalized by the caller.
	// The signer does not re-normalize it. Empty means "/".
	Path string

	// Query holds the query parameters. They are canonicalized (encoded
	// and sorted) before entering the canonical request.
	Query url.Values

	// Body is the raw, transport-decoded request body. Nil and empty are
	// equivalent: both hash to the empty-sequence digest.
	Body []byte
}

// canonicalRequest serializes the request into the canonical signing
// payload: method, path, canonical query string, canonical headers,
// signed-header list, and the hex body hash, six fields joined by
// newlines. The canonical header block carries its own trailing newline,
// which yields the required blank line in the middle of the string.
//
// It returns the canonical request and the semicolon-joined signed-header
// list. headers is mutated (sorted in place).
func canonicalRequest(req SignableRequest, headers [][2]string, bodyHash string) (string, string) {
	slices.SortFunc(headers, func(a, b [2]string) int {
		return strings.Compare(a[0], b[0])
	})

	var block strings.Builder
	names := make([]string, 0, len(headers))

	for _, h := range headers {
		block.WriteString(h[0])
		block.WriteByte(':')
		block.WriteString(collapseSpaces(h[1]))
		block.WriteByte('\n')

		names = append(names, h[0])
	}

	signedHeaders := strings.Join(names, ";")

	path := req.Path
	if path == "" {
		path = "/"
	}

	fields := []string{
		req.Method,
		path,
		canonicalQuery(req.Query),
		block.String(),
		signedHeaders,
		bodyHash,
	}

	return strings.Join(fields, "\n"), signedHeaders
}

// canonicalQuery encodes and sorts the query parameters: every key and
// value is percent-encoded with the RFC 3986 unreserved set, parameters
// are sorted ordinally by encoded key and then by encoded value within a
// repeated key, and a key with no values still contributes "key=".
// Space encodes as %20, never "+".
//
// Keys and values are sorted separately; sorting joined "key=value"
// strings would let the '=' separator outrank characters below 0x3D and
// invert the order of prefix-related keys.
func canonicalQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	encoded := make(map[string][]string, len(query))

	for key, values := range query {
		encodedKey := escapeQuery(key)
		keys = append(keys, encodedKey)

		encodedValues := make([]string, 0, len(values))
		for _, v := range values {
			encodedValues = append(encodedValues, escapeQuery(v))
		}

		slices.Sort(encodedValues)
		encoded[encodedKey] = encodedValues
	}

	slices.Sort(keys)

	pairs := make([]string, 0, len(query))

	for _, key := range keys {
		values := encoded[key]

		if len(values) == 0 {
			pairs = append(pairs, key+"=")
			continue
		}

		for _, v := range values {
			pairs = append(pairs, key+"="+v)
		}
	}

	return strings.Join(pairs, "&")
}

const upperHex = "0123456789ABCDEF"

// escapeQuery percent-encodes s for the canonical query string. Unlike
// url.QueryEscape it leaves only the RFC 3986 unreserved characters
// unescaped and encodes space as %20.
func escapeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if isUnreserved(ch) {
			b.WriteByte(ch)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperHex[ch>>4])
		b.WriteByte(upperHex[ch&0xf])
	}

	return b.String()
}

// isUnreserved reports whether ch is in the RFC 3986 unreserved set.
func isUnreserved(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '-' || ch == '.' || ch == '_' || ch == '~'
}

// collapseSpaces trims v and folds internal whitespace runs into a single
// space, per the canonical header value rules.
func collapseSpaces(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
