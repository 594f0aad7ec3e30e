package place_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/imjang/internal/apperr"
	mock_place "github.com/at-ishikawa/imjang/internal/mocks/place"
	"github.com/at-ishikawa/imjang/internal/place"
)

func TestService_AssertPlaceOwnership(t *testing.T) {
	tests := []struct {
		name     string
		placeID  string
		callerID string
		setup    func(repo *mock_place.MockRepository)
		wantErr  error
	}{
		{
			name:     "owner",
			placeID:  "p1",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
			},
		},
		{
			name:     "another owner",
			placeID:  "p1",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "bob"}, nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name:     "missing place",
			placeID:  "p1",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(nil, apperr.NotFound("place p1 does not exist"))
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:     "blank place id",
			placeID:  " ",
			callerID: "alice",
			setup:    func(repo *mock_place.MockRepository) {},
			wantErr:  apperr.ErrValidation,
		},
		{
			name:     "no caller",
			placeID:  "p1",
			callerID: "",
			setup:    func(repo *mock_place.MockRepository) {},
			wantErr:  apperr.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := place.NewService(repo).AssertPlaceOwnership(context.Background(), tt.placeID, tt.callerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p1", got.ID)
		})
	}
}

func TestService_AssertUnitOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_place.NewMockRepository(ctrl)
	repo.EXPECT().FindUnit(gomock.Any(), "u1").Return(&place.Unit{ID: "u1", PlaceID: "p1", OwnerID: "alice"}, nil).Times(2)
	service := place.NewService(repo)

	got, err := service.AssertUnitOwnership(context.Background(), "u1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlaceID)

	_, err = service.AssertUnitOwnership(context.Background(), "u1", "bob")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestService_Subject(t *testing.T) {
	tests := []struct {
		name      string
		placeID   string
		unitID    string
		setupMock func(repo *mock_place.MockRepository)
		want      string
		wantErr   error
	}{
		{
			name:    "place",
			placeID: "p1",
			setupMock: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice", Name: "래미안대치팰리스"}, nil)
			},
			want: "래미안대치팰리스",
		},
		{
			name:   "unit",
			unitID: "u1",
			setupMock: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindUnit(gomock.Any(), "u1").Return(&place.Unit{ID: "u1", PlaceID: "p1", OwnerID: "alice", Label: "101동 1203호"}, nil)
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice", Name: "래미안대치팰리스"}, nil)
			},
			want: "래미안대치팰리스 101동 1203호",
		},
		{
			name:   "unit of another user",
			unitID: "u1",
			setupMock: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindUnit(gomock.Any(), "u1").Return(&place.Unit{ID: "u1", PlaceID: "p1", OwnerID: "bob"}, nil)
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := place.NewService(repo).Subject(context.Background(), tt.placeID, tt.unitID, "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SavePlace(t *testing.T) {
	tests := []struct {
		name    string
		input   place.PlaceInput
		setup   func(repo *mock_place.MockRepository)
		wantErr error
	}{
		{
			name: "parses coordinates and saves under the caller",
			input: place.PlaceInput{
				KakaoID: "12345", Name: " 래미안 ", X: "127.0276", Y: "37.4979",
				Address: "서울 서초구 서초동 1", RoadAddress: "",
			},
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().UpsertPlace(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *place.Place) error {
						assert.Equal(t, "alice", p.OwnerID)
						assert.Equal(t, "12345", p.KakaoID)
						assert.Equal(t, "래미안", p.Name)
						assert.Equal(t, 37.4979, p.Lat)
						assert.Equal(t, 127.0276, p.Lng)
						assert.Equal(t, sql.NullString{String: "서울 서초구 서초동 1", Valid: true}, p.Address)
						assert.False(t, p.RoadAddress.Valid)
						p.ID = "p1"
						return nil
					})
			},
		},
		{
			name:    "invalid coordinates",
			input:   place.PlaceInput{KakaoID: "12345", Name: "A", X: "200", Y: "37"},
			setup:   func(repo *mock_place.MockRepository) {},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "missing kakao id",
			input:   place.PlaceInput{Name: "A", X: "127", Y: "37"},
			setup:   func(repo *mock_place.MockRepository) {},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := place.NewService(repo).SavePlace(context.Background(), tt.input, "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p1", got.ID)
		})
	}
}

func TestService_DeletePlace(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		setup    func(repo *mock_place.MockRepository)
		wantErr  error
	}{
		{
			name:     "owner deletes",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
				repo.EXPECT().DeletePlace(gomock.Any(), "p1").Return(nil)
			},
		},
		{
			name:     "other users cannot delete",
			callerID: "bob",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setup(repo)

			err := place.NewService(repo).DeletePlace(context.Background(), "p1", tt.callerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_SaveUnit(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		setup   func(repo *mock_place.MockRepository)
		wantErr error
	}{
		{
			name:  "trims the label",
			label: " 101동 1203호 ",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
				repo.EXPECT().CreateUnit(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *place.Unit) error {
						assert.Equal(t, place.Unit{PlaceID: "p1", OwnerID: "alice", Label: "101동 1203호"}, *u)
						u.ID = "u1"
						return nil
					})
			},
		},
		{
			name:  "blank label",
			label: "  ",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:  "repository error",
			label: "101동",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil)
				repo.EXPECT().CreateUnit(gomock.Any(), gomock.Any()).Return(fmt.Errorf("connection refused"))
			},
			wantErr: fmt.Errorf("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := place.NewService(repo).SaveUnit(context.Background(), "p1", tt.label, "alice")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", got.ID)
		})
	}
}

func TestService_SaveFavorite(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_place.NewMockRepository(ctrl)
	repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil).Times(2)
	repo.EXPECT().UpsertFavorite(gomock.Any(), &place.Favorite{PlaceID: "p1", OwnerID: "alice", Color: "#FF0000"}).Return(nil)
	service := place.NewService(repo)

	got, err := service.SaveFavorite(context.Background(), "p1", "#FF0000", "alice")
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", got.Color)

	_, err = service.SaveFavorite(context.Background(), "p1", "red", "alice")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_AddLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_place.NewMockRepository(ctrl)
	repo.EXPECT().FindPlace(gomock.Any(), "p1").Return(&place.Place{ID: "p1", OwnerID: "alice"}, nil).Times(3)
	repo.EXPECT().CreateLink(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *place.ExternalLink) error {
			assert.Equal(t, "https://example.com/", l.URL)
			assert.Equal(t, "Listing", l.Title)
			return nil
		})
	service := place.NewService(repo)

	_, err := service.AddLink(context.Background(), "p1", " Listing ", "https://example.com", "alice")
	require.NoError(t, err)

	_, err = service.AddLink(context.Background(), "p1", "Listing", "ftp://example.com", "alice")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = service.AddLink(context.Background(), "p1", "", "https://example.com", "alice")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_DeleteLink(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		setup    func(repo *mock_place.MockRepository)
		wantErr  error
	}{
		{
			name:     "owner deletes",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindLink(gomock.Any(), "l1").Return(&place.ExternalLink{ID: "l1", OwnerID: "alice"}, nil)
				repo.EXPECT().DeleteLink(gomock.Any(), "l1").Return(nil)
			},
		},
		{
			name:     "other users cannot delete",
			callerID: "bob",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindLink(gomock.Any(), "l1").Return(&place.ExternalLink{ID: "l1", OwnerID: "alice"}, nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name:     "missing link",
			callerID: "alice",
			setup: func(repo *mock_place.MockRepository) {
				repo.EXPECT().FindLink(gomock.Any(), "l1").Return(nil, apperr.NotFound("link l1 does not exist"))
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_place.NewMockRepository(ctrl)
			tt.setup(repo)

			err := place.NewService(repo).DeleteLink(context.Background(), "l1", tt.callerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
