package place

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

// Service applies ownership and input rules on top of a Repository.
// Ownership is re-checked against the stored rows on every call.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AssertPlaceOwnership returns the place if it exists and belongs to the caller.
func (s *Service) AssertPlaceOwnership(ctx context.Context, placeID, callerID string) (*Place, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	placeID, err = requireString(placeID, "place id")
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("find place: %w", err)
	}
	if p.OwnerID != callerID {
		return nil, apperr.Forbidden("place %s belongs to another user", placeID)
	}
	return p, nil
}

// AssertUnitOwnership returns the unit if it exists and belongs to the caller.
func (s *Service) AssertUnitOwnership(ctx context.Context, unitID, callerID string) (*Unit, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	unitID, err = requireString(unitID, "unit id")
	if err != nil {
		return nil, err
	}
	u, err := s.repo.FindUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("find unit: %w", err)
	}
	if u.OwnerID != callerID {
		return nil, apperr.Forbidden("unit %s belongs to another user", unitID)
	}
	return u, nil
}

// Subject names a place, or a unit after the name of its place, as shown in reports.
func (s *Service) Subject(ctx context.Context, placeID, unitID, callerID string) (string, error) {
	if unitID == "" {
		p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	}

	u, err := s.AssertUnitOwnership(ctx, unitID, callerID)
	if err != nil {
		return "", err
	}
	p, err := s.AssertPlaceOwnership(ctx, u.PlaceID, callerID)
	if err != nil {
		return "", err
	}
	return p.Name + " " + u.Label, nil
}

// SavePlace stores a search result for the caller. Saving the same Kakao place again refreshes it.
func (s *Service) SavePlace(ctx context.Context, in PlaceInput, callerID string) (*Place, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	kakaoID, err := requireString(in.KakaoID, "kakao id")
	if err != nil {
		return nil, err
	}
	name, err := requireString(in.Name, "name")
	if err != nil {
		return nil, err
	}
	lat, lng, err := ParseCoordinates(in.X, in.Y)
	if err != nil {
		return nil, err
	}

	p := &Place{
		OwnerID:     callerID,
		KakaoID:     kakaoID,
		Name:        name,
		Lat:         lat,
		Lng:         lng,
		Address:     nullString(in.Address),
		RoadAddress: nullString(in.RoadAddress),
	}
	if err := s.repo.UpsertPlace(ctx, p); err != nil {
		return nil, fmt.Errorf("save place: %w", err)
	}
	slog.Info("place saved", "owner", callerID, "place", p.ID, "kakao_id", kakaoID)
	return p, nil
}

// GetPlace returns one of the caller's places.
func (s *Service) GetPlace(ctx context.Context, placeID, callerID string) (*Place, error) {
	return s.AssertPlaceOwnership(ctx, placeID, callerID)
}

// ListPlaces returns the caller's places with their place-level verdicts and favorite colours.
func (s *Service) ListPlaces(ctx context.Context, callerID string) ([]Summary, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.repo.ListPlaces(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return summaries, nil
}

// DeletePlace removes one of the caller's places with everything attached to it.
func (s *Service) DeletePlace(ctx context.Context, placeID, callerID string) error {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePlace(ctx, p.ID); err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	slog.Info("place deleted", "owner", p.OwnerID, "place", p.ID)
	return nil
}

// SaveUnit adds a unit to one of the caller's places.
func (s *Service) SaveUnit(ctx context.Context, placeID, label, callerID string) (*Unit, error) {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return nil, err
	}
	label, err = requireString(label, "label")
	if err != nil {
		return nil, err
	}

	u := &Unit{PlaceID: p.ID, OwnerID: p.OwnerID, Label: label}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, fmt.Errorf("save unit: %w", err)
	}
	slog.Info("unit saved", "owner", p.OwnerID, "place", p.ID, "unit", u.ID)
	return u, nil
}

// ListUnits returns the units of one of the caller's places.
func (s *Service) ListUnits(ctx context.Context, placeID, callerID string) ([]Unit, error) {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return nil, err
	}
	units, err := s.repo.ListUnits(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// DeleteUnit removes one of the caller's units and its notes.
func (s *Service) DeleteUnit(ctx context.Context, unitID, callerID string) error {
	u, err := s.AssertUnitOwnership(ctx, unitID, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUnit(ctx, u.ID); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	slog.Info("unit deleted", "owner", u.OwnerID, "unit", u.ID)
	return nil
}

// SaveFavorite sets the favorite colour of one of the caller's places.
func (s *Service) SaveFavorite(ctx context.Context, placeID, color, callerID string) (*Favorite, error) {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return nil, err
	}
	color, err = ValidateColor(color)
	if err != nil {
		return nil, err
	}

	f := &Favorite{PlaceID: p.ID, OwnerID: p.OwnerID, Color: color}
	if err := s.repo.UpsertFavorite(ctx, f); err != nil {
		return nil, fmt.Errorf("save favorite: %w", err)
	}
	return f, nil
}

// AddLink attaches an http or https link to one of the caller's places.
func (s *Service) AddLink(ctx context.Context, placeID, title, rawURL, callerID string) (*ExternalLink, error) {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return nil, err
	}
	title, err = requireString(title, "title")
	if err != nil {
		return nil, err
	}
	normalized, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	l := &ExternalLink{PlaceID: p.ID, OwnerID: p.OwnerID, Title: title, URL: normalized}
	if err := s.repo.CreateLink(ctx, l); err != nil {
		return nil, fmt.Errorf("add link: %w", err)
	}
	return l, nil
}

// ListLinks returns the links of one of the caller's places.
func (s *Service) ListLinks(ctx context.Context, placeID, callerID string) ([]ExternalLink, error) {
	p, err := s.AssertPlaceOwnership(ctx, placeID, callerID)
	if err != nil {
		return nil, err
	}
	links, err := s.repo.ListLinks(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// DeleteLink removes one of the caller's links.
func (s *Service) DeleteLink(ctx context.Context, linkID, callerID string) error {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return err
	}
	linkID, err = requireString(linkID, "link id")
	if err != nil {
		return err
	}
	l, err := s.repo.FindLink(ctx, linkID)
	if err != nil {
		return fmt.Errorf("find link: %w", err)
	}
	if l.OwnerID != callerID {
		return apperr.Forbidden("link %s belongs to another user", linkID)
	}
	if err := s.repo.DeleteLink(ctx, l.ID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
