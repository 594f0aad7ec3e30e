package server

import (
	"net/http"
	"time"

	"github.com/at-ishikawa/imjang/internal/identity"
	"github.com/at-ishikawa/imjang/internal/place"
)

type placeResponse struct {
	ID            string    `json:"id"`
	KakaoID       string    `json:"kakao_id"`
	Name          string    `json:"name"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Address       *string   `json:"address"`
	RoadAddress   *string   `json:"road_address"`
	Evaluation    *string   `json:"evaluation,omitempty"`
	FavoriteColor *string   `json:"favorite_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newPlaceResponse(p place.Place) placeResponse {
	return placeResponse{
		ID:          p.ID,
		KakaoID:     p.KakaoID,
		Name:        p.Name,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Address:     nullable(p.Address.String, p.Address.Valid),
		RoadAddress: nullable(p.RoadAddress.String, p.RoadAddress.Valid),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func nullable(s string, valid bool) *string {
	if !valid {
		return nil
	}
	return &s
}

type savePlaceRequest struct {
	KakaoID     string `json:"kakao_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=255"`
	X           string `json:"x" validate:"required"`
	Y           string `json:"y" validate:"required"`
	Address     string `json:"address" validate:"max=500"`
	RoadAddress string `json:"road_address" validate:"max=500"`
}

type saveUnitRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}

type saveFavoriteRequest struct {
	Color string `json:"color" validate:"required"`
}

type addLinkRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	URL   string `json:"url" validate:"required"`
}

func (s *Server) listPlaces(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.places.ListPlaces(r.Context(), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response := make([]placeResponse, 0, len(summaries))
	for _, summary := range summaries {
		p := newPlaceResponse(summary.Place)
		p.Evaluation = nullable(summary.Evaluation.String, summary.Evaluation.Valid)
		p.FavoriteColor = nullable(summary.FavoriteColor.String, summary.FavoriteColor.Valid)
		response = append(response, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": response})
}

func (s *Server) savePlace(w http.ResponseWriter, r *http.Request) {
	var req savePlaceRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.places.SavePlace(r.Context(), place.PlaceInput{
		KakaoID:     req.KakaoID,
		Name:        req.Name,
		X:           req.X,
		Y:           req.Y,
		Address:     req.Address,
		RoadAddress: req.RoadAddress,
	}, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlaceResponse(*p))
}

func (s *Server) getPlace(w http.ResponseWriter, r *http.Request) {
	p, err := s.places.GetPlace(r.Context(), r.PathValue("id"), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlaceResponse(*p))
}

func (s *Server) deletePlace(w http.ResponseWriter, r *http.Request) {
	if err := s.places.DeletePlace(r.Context(), r.PathValue("id"), identity.CallerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveFavorite(w http.ResponseWriter, r *http.Request) {
	var req saveFavoriteRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	f, err := s.places.SaveFavorite(r.Context(), r.PathValue("id"), req.Color, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.places.ListUnits(r.Context(), r.PathValue("id"), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if units == nil {
		units = []place.Unit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": units})
}

func (s *Server) saveUnit(w http.ResponseWriter, r *http.Request) {
	var req saveUnitRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.places.SaveUnit(r.Context(), r.PathValue("id"), req.Label, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) deleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := s.places.DeleteUnit(r.Context(), r.PathValue("id"), identity.CallerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.places.ListLinks(r.Context(), r.PathValue("id"), identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if links == nil {
		links = []place.ExternalLink{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

func (s *Server) addLink(w http.ResponseWriter, r *http.Request) {
	var req addLinkRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	l, err := s.places.AddLink(r.Context(), r.PathValue("id"), req.Title, req.URL, identity.CallerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) deleteLink(w http.ResponseWriter, r *http.Request) {
	if err := s.places.DeleteLink(r.Context(), r.PathValue("id"), identity.CallerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
