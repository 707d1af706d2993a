// Package edge implements the request-signing interceptor that sits
// between a content-delivery edge and a SigV4-verifying backend service.
//
// The Interceptor transforms an unsigned inbound request into a request
// bearing a valid temporary-credential signature for a fixed upstream
// host, without the caller ever holding long-lived secrets. Credentials
// are resolved fresh per invocation (by default from the environment),
// a single timestamp is captured per signing operation, and on any
// failure the interceptor returns a synthetic JSON error response rather
// than forwarding an unsigned or partially signed request.
//
//	it, err := edge.NewInterceptor(edge.Config{
//	    UpstreamHost: "runtime-medical-imaging.us-east-1.amazonaws.com",
//	    Region:       "us-east-1",
//	    Service:      "medical-imaging",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", it)
//
// Two boundary collaborators live alongside the interceptor:
//
//   - PreflightHandler answers CORS preflight OPTIONS requests with a
//     fixed 204 response and a static header set; preflights never reach
//     the signer.
//   - ClientConfig serves the static key/value configuration the browser
//     client reads at startup.
package edge
