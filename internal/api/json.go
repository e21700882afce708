package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/settlr/settlr/internal/service"
)

// writeJSON writes the envelope with its ErrorCode as the HTTP status.
func writeJSON[T any](w http.ResponseWriter, resp service.Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.ErrorCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON parses the request body into dst. A malformed body is a
// validation failure, not a server error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, service.Fail[any](service.MsgValidationFailed, http.StatusBadRequest))
		return false
	}
	return true
}

// pathID parses the {id} path segment. Non-numeric ids are rejected before
// any service call.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, service.Fail[any](service.MsgValidationFailed, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}
