package subject

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"booktitles/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the subject routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /subjects/titles", h.BatchTitles)
	mux.HandleFunc("GET /subjects/lookups", h.Recent)
	mux.HandleFunc("GET /subjects/{subject}/titles", h.Titles)
}

type titlesRequest struct {
	Subject string `json:"subject" validate:"notblank,max=200"`
}

type batchTitlesRequest struct {
	Subjects []string `json:"subjects" validate:"required,min=1,max=20,dive,notblank,max=200"`
}

// Titles handles GET /subjects/{subject}/titles.
// Remote failures still answer 200 with degraded=true and no titles.
func (h *HTTPHandler) Titles(w http.ResponseWriter, r *http.Request) {
	req := titlesRequest{Subject: r.PathValue("subject")}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SUBJECT", "invalid subject", details)
		return
	}

	lookup, err := h.svc.Lookup(r.Context(), Key(req.Subject))
	if errors.Is(err, ErrEmptySubject) {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SUBJECT", err.Error(), nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, lookup, map[string]interface{}{
		"count": len(lookup.Titles),
	})
}

// BatchTitles handles GET /subjects/titles?subject=a&subject=b (or subject=a,b).
// Empty list entries such as a trailing comma are ignored.
func (h *HTTPHandler) BatchTitles(w http.ResponseWriter, r *http.Request) {
	var req batchTitlesRequest
	for _, v := range r.URL.Query()["subject"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				req.Subjects = append(req.Subjects, part)
			}
		}
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SUBJECT", "invalid subjects", details)
		return
	}

	keys := make([]Key, len(req.Subjects))
	for i, s := range req.Subjects {
		keys[i] = Key(s)
	}

	lookups := h.svc.LookupMany(r.Context(), keys)
	degraded := 0
	for _, l := range lookups {
		if l.Degraded {
			degraded++
		}
	}

	httpx.JSONSuccess(w, r, lookups, map[string]interface{}{
		"count":    len(lookups),
		"degraded": degraded,
	})
}

// Recent handles GET /subjects/lookups?limit=N.
func (h *HTTPHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.svc.Recent(r.Context(), limit)
	if errors.Is(err, ErrLookupLogDisabled) {
		httpx.JSONError(w, r, http.StatusNotFound, "LOOKUP_LOG_DISABLED", err.Error(), nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	httpx.JSONSuccess(w, r, entries, map[string]interface{}{
		"count": len(entries),
	})
}
