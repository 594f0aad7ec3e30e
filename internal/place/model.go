// Package place manages the places and household units users evaluate, with their favorites and links.
package place

import (
	"database/sql"
	"time"
)

// Place is a searched location saved by a user, keyed by its Kakao place id.
type Place struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     string         `db:"owner_id" json:"-"`
	KakaoID     string         `db:"kakao_id" json:"kakao_id"`
	Name        string         `db:"name" json:"name"`
	Lat         float64        `db:"lat" json:"lat"`
	Lng         float64        `db:"lng" json:"lng"`
	Address     sql.NullString `db:"address" json:"-"`
	RoadAddress sql.NullString `db:"road_address" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Summary is a place with the badges shown on the dashboard.
type Summary struct {
	Place
	Evaluation    sql.NullString `db:"evaluation" json:"-"`
	FavoriteColor sql.NullString `db:"favorite_color" json:"-"`
}

// Unit is a household unit inside a place, such as "101동 1203호".
type Unit struct {
	ID        string    `db:"id" json:"id"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	OwnerID   string    `db:"owner_id" json:"-"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Favorite marks a place with a colour. A place has at most one.
type Favorite struct {
	ID        string    `db:"id" json:"id"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	OwnerID   string    `db:"owner_id" json:"-"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ExternalLink is a bookmark attached to a place.
type ExternalLink struct {
	ID        string    `db:"id" json:"id"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	OwnerID   string    `db:"owner_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PlaceInput is a search result to save. X is the longitude and Y the latitude, as text.
type PlaceInput struct {
	KakaoID     string `json:"kakao_id"`
	Name        string `json:"name"`
	X           string `json:"x"`
	Y           string `json:"y"`
	Address     string `json:"address"`
	RoadAddress string `json:"road_address"`
}
