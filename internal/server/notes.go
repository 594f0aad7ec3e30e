package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/evaluation"
	"github.com/at-ishikawa/imjang/internal/identity"
	"github.com/at-ishikawa/imjang/internal/note"
	"github.com/at-ishikawa/imjang/internal/report"
)

type noteResponse struct {
	ID         string              `json:"id"`
	PlaceID    *string             `json:"place_id"`
	UnitID     *string             `json:"unit_id"`
	TemplateID *string             `json:"template_id"`
	Answers    json.RawMessage     `json:"answers"`
	Evaluation *evaluation.Verdict `json:"evaluation"`
	Score      *float64            `json:"score"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func newNoteResponse(n note.Note) noteResponse {
	response := noteResponse{
		ID:         n.ID,
		PlaceID:    nullable(n.PlaceID.String, n.PlaceID.Valid),
		UnitID:     nullable(n.UnitID.String, n.UnitID.Valid),
		TemplateID: nullable(n.TemplateID.String, n.TemplateID.Valid),
		Answers:    json.RawMessage(n.Answers),
		Evaluation: n.Evaluation,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
	if n.Score.Valid {
		score := n.Score.Float64
		response.Score = &score
	}
	return response
}

type saveNoteRequest struct {
	PlaceID    string          `json:"place_id" validate:"required_without=UnitID"`
	UnitID     string          `json:"unit_id" validate:"required_without=PlaceID"`
	TemplateID string          `json:"template_id"`
	Answers    json.RawMessage `json:"answers"`
}

type saveNoteResponse struct {
	Note   noteResponse       `json:"note"`
	Result *evaluation.Result `json:"result"`
}

func targetFromQuery(r *http.Request) note.Target {
	query := r.URL.Query()
	return note.Target{PlaceID: query.Get("place_id"), UnitID: query.Get("unit_id")}
}

func (s *Server) saveNote(w http.ResponseWriter, r *http.Request) {
	var req saveNoteRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := s.notes.Save(r.Context(), note.SaveInput{
		Target:     note.Target{PlaceID: req.PlaceID, UnitID: req.UnitID},
		TemplateID: req.TemplateID,
		Answers:    req.Answers,
	}, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveNoteResponse{Note: newNoteResponse(*saved.Note), Result: saved.Result})
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	n, err := s.notes.Get(r.Context(), targetFromQuery(r), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteResponse(*n))
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.ListByPlace(r.Context(), r.PathValue("id"), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		response = append(response, newNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": response})
}

// noteReport renders the note of a place or unit as a Markdown report.
func (s *Server) noteReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := identity.CallerID(ctx)
	n, err := s.notes.Get(ctx, targetFromQuery(r), callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !n.TemplateID.Valid {
		writeError(w, r, apperr.Validation("note was saved without a template"))
		return
	}
	t, err := s.templates.Get(ctx, n.TemplateID.String, callerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = apperr.Validation("template %s of the note no longer exists", n.TemplateID.String)
		}
		writeError(w, r, err)
		return
	}

	subject, err := s.places.Subject(ctx, n.PlaceID.String, n.UnitID.String, callerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := report.BuildFromJSON(subject, *t, n.Answers, s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if err := report.WriteMarkdown(w, s.reportTemplate, rep); err != nil {
		writeError(w, r, err)
	}
}
