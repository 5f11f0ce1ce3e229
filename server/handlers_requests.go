package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/internal/pagination"
	"github.com/jrsteele09/go-admin-frontend/upstream"
	"github.com/rs/zerolog/log"
)

// AccountRequestsHandler lists registrations waiting for approval, one page at a time.
func (s *Server) AccountRequestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		data := ViewData{
			"accepted": queryFlag(r, "accepted"),
			"rejected": queryFlag(r, "rejected"),
		}

		pending, err := s.accounts.Pending(r.Context(), creds)
		if err != nil {
			log.Err(err).Msg("Error loading account requests")
			data["pages"] = []int{1}
			data["currentPage"] = 1
			data["hasRequests"] = false
			data["error"] = s.t(r, "requestsLoadError")
			s.render(w, r, http.StatusOK, ViewAccountRequests, data)
			return
		}

		page := pagination.Paginate(len(pending), pagination.PageSize, r.URL.Query().Get("page"))
		data["pages"] = page.Pages
		data["currentPage"] = page.Current
		data["totalPages"] = page.TotalPages
		data["hasRequests"] = len(pending) > 0
		data["requests"] = rows(pagination.Slice(pending, page))
		s.render(w, r, http.StatusOK, ViewAccountRequests, data)
	}
}

// PendingRequestsJSONHandler forwards the pending request list for the page scripts.
func (s *Server) PendingRequestsJSONHandler() http.HandlerFunc {
	return s.listJSONHandler(s.accounts.Pending, "Failed to load pending requests")
}

func (s *Server) AcceptRequestHandler() http.HandlerFunc {
	return s.decideRequestHandler(s.accounts.Approve, "accepted=true", "requestsAcceptError")
}

func (s *Server) RejectRequestHandler() http.HandlerFunc {
	return s.decideRequestHandler(s.accounts.Reject, "rejected=true", "requestsRejectError")
}

type requestDecision func(ctx context.Context, creds upstream.Credentials, requestID string) error

func (s *Server) decideRequestHandler(decide requestDecision, flag, failKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		requestID := r.PathValue("id")
		if err := decide(r.Context(), creds, requestID); err != nil {
			log.Err(err).Str("request_id", requestID).Msg("Failed to process account request")
			s.render(w, r, http.StatusInternalServerError, ViewAccountRequests, ViewData{
				"accepted":    false,
				"rejected":    false,
				"pages":       []int{1},
				"currentPage": 1,
				"hasRequests": false,
				"error":       s.t(r, failKey),
			})
			return
		}

		redirectSuccess(w, r, RouteAccountRequests+"?"+flag)
	}
}

type listFetcher func(ctx context.Context, creds upstream.Credentials) (upstream.List, error)

func (s *Server) listJSONHandler(fetch listFetcher, failMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		items, err := fetch(r.Context(), creds)
		if err != nil {
			log.Err(err).Str("path", r.URL.Path).Msg("Failed to load list")
			writeJSONError(w, http.StatusInternalServerError, failMessage)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// rows decodes list items for the templates. Items are already known to be JSON objects.
func rows(items upstream.List) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()

		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			continue
		}
		out = append(out, row)
	}
	return out
}
