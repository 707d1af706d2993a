package edge

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// errorResponse is the synthetic failure body. The interceptor returns
// it instead of ever forwarding an unsigned or partially signed request.
type errorResponse struct {
	Error string `json:"error"`
}

// responseJSON encodes v as JSON and writes it to the response with the
// given status code. The Content-Type header is set to "application/json".
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func responseJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
