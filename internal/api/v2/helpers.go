package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// decodeRequest decodes the JSON request body into reqStruct.
func decodeRequest(r *http.Request, reqStruct interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&reqStruct); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// parsePathSegments splits a URL path of the form
// "/api/v2/{apiPath}/a/b/c" into its non-empty segments after the API path.
func parsePathSegments(url, apiPath string) []string {
	url = strings.TrimPrefix(url, fmt.Sprintf("/api/v2/%s", apiPath))

	var segments []string
	for _, v := range strings.Split(url, "/") {
		if v != "" {
			segments = append(segments, v)
		}
	}
	return segments
}

// parseID parses a decimal resource ID path segment.
func parseID(segment string) (uint, error) {
	id, err := strconv.ParseUint(segment, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid resource ID: %q", segment)
	}
	return uint(id), nil
}
