package server

import (
	"net/http"
	"strings"

	"github.com/at-ishikawa/imjang/internal/identity"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

type templateResponse struct {
	questionnaire.Template
	IsDefault bool `json:"is_default"`
}

func newTemplateResponse(t questionnaire.Template) templateResponse {
	if t.Questions == nil {
		t.Questions = []questionnaire.Question{}
	}
	for i := range t.Questions {
		if t.Questions[i].Options == nil {
			t.Questions[i].Options = questionnaire.Options{}
		}
	}
	return templateResponse{Template: t, IsDefault: t.IsDefault()}
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context(), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		response = append(response, newTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": response})
}

func (s *Server) defaultTemplate(w http.ResponseWriter, r *http.Request) {
	scope := questionnaire.Scope(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("scope"))))
	t, err := s.templates.GetByScope(r.Context(), scope, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTemplateResponse(*t))
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathValue(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := s.templates.Get(r.Context(), id, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTemplateResponse(*t))
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var in questionnaire.TemplateInput
	if err := s.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.ID = ""
	s.saveTemplate(w, r, in, http.StatusCreated)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathValue(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in questionnaire.TemplateInput
	if err := s.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.ID = id
	s.saveTemplate(w, r, in, http.StatusOK)
}

func (s *Server) saveTemplate(w http.ResponseWriter, r *http.Request, in questionnaire.TemplateInput, status int) {
	t, err := s.templates.Save(r.Context(), in.Template(), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, newTemplateResponse(*t))
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathValue(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.templates.Delete(r.Context(), id, identity.CallerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
