// Package server exposes the appraisal core as a JSON HTTP API.
package server

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_searcher.go -package=mock_server

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"github.com/at-ishikawa/imjang/internal/identity"
	"github.com/at-ishikawa/imjang/internal/kakao"
	"github.com/at-ishikawa/imjang/internal/note"
	"github.com/at-ishikawa/imjang/internal/place"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
	"github.com/at-ishikawa/imjang/internal/ratelimit"
)

// Searcher looks up places by keyword.
type Searcher interface {
	SearchKeyword(ctx context.Context, query string, page int) (kakao.SearchResponse, error)
}

// Options are the dependencies of a Server.
type Options struct {
	Templates      *questionnaire.Service
	Places         *place.Service
	Notes          *note.Service
	Searcher       Searcher
	Issuer         *identity.Issuer
	Limiter        *ratelimit.Limiter
	ReportTemplate string
	// TrustedProxies lists addresses or CIDR ranges allowed to report the client address.
	TrustedProxies []string
}

type Server struct {
	templates      *questionnaire.Service
	places         *place.Service
	notes          *note.Service
	searcher       Searcher
	issuer         *identity.Issuer
	limiter        *ratelimit.Limiter
	reportTemplate string
	trustedProxies []netip.Prefix
	validator      *requestValidator
	now            func() time.Time
}

func New(opts Options) (*Server, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	trusted, err := parseTrustedProxies(opts.TrustedProxies)
	if err != nil {
		return nil, err
	}
	return &Server{
		templates:      opts.Templates,
		places:         opts.Places,
		notes:          opts.Notes,
		searcher:       opts.Searcher,
		issuer:         opts.Issuer,
		limiter:        opts.Limiter,
		reportTemplate: opts.ReportTemplate,
		trustedProxies: trusted,
		validator:      v,
		now:            time.Now,
	}, nil
}

// Handler returns the API with request logging and bearer authentication applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/templates", s.listTemplates)
	mux.HandleFunc("POST /api/templates", s.createTemplate)
	mux.HandleFunc("GET /api/templates/default", s.defaultTemplate)
	mux.HandleFunc("GET /api/templates/{id}", s.getTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", s.updateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.deleteTemplate)

	mux.HandleFunc("GET /api/places", s.listPlaces)
	mux.HandleFunc("POST /api/places", s.savePlace)
	mux.HandleFunc("GET /api/places/{id}", s.getPlace)
	mux.HandleFunc("DELETE /api/places/{id}", s.deletePlace)
	mux.HandleFunc("PUT /api/places/{id}/favorite", s.saveFavorite)
	mux.HandleFunc("GET /api/places/{id}/units", s.listUnits)
	mux.HandleFunc("POST /api/places/{id}/units", s.saveUnit)
	mux.HandleFunc("DELETE /api/units/{id}", s.deleteUnit)
	mux.HandleFunc("GET /api/places/{id}/links", s.listLinks)
	mux.HandleFunc("POST /api/places/{id}/links", s.addLink)
	mux.HandleFunc("DELETE /api/links/{id}", s.deleteLink)

	mux.HandleFunc("GET /api/places/{id}/notes", s.listNotes)
	mux.HandleFunc("GET /api/notes", s.getNote)
	mux.HandleFunc("PUT /api/notes", s.saveNote)
	mux.HandleFunc("GET /api/notes/report", s.noteReport)

	mux.HandleFunc("GET /api/search", s.search)

	return logRequests(s.authenticate(mux))
}
