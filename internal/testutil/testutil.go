package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Subjects maps a subject slug to the raw body served for it.
type Subjects map[string]string

// NewOpenLibraryServer serves /subjects/{slug}.json from subjects. Unknown
// subjects answer with status fallback. Returns the server base URL.
func NewOpenLibraryServer(t testing.TB, subjects Subjects, fallback int) string {
	t.Helper()
	mux := http.NewServeMux()
	for slug, body := range subjects {
		mux.HandleFunc("/subjects/"+slug+".json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(fallback)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// RecordResponse is a decoded JSON envelope response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as a JSON object.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns body.error.code, or "" when absent.
func (r RecordResponse) ErrorCode() string {
	e, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// ErrorFields returns the field of every body.error.details entry, in order.
func (r RecordResponse) ErrorFields() []string {
	e, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return nil
	}
	details, _ := e["details"].([]interface{})
	fields := make([]string, 0, len(details))
	for _, d := range details {
		if m, ok := d.(map[string]interface{}); ok {
			field, _ := m["field"].(string)
			fields = append(fields, field)
		}
	}
	return fields
}
