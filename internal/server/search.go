package server

import (
	"net/http"
	"strconv"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/identity"
)

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if _, err := apperr.RequireCaller(identity.CallerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	page := 1
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperr.Validation("page must be a number"))
			return
		}
		page = n
	}

	response, err := s.searcher.SearchKeyword(r.Context(), query.Get("query"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
