package place

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func requireString(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Validation("%s is required", field)
	}
	return trimmed, nil
}

// ParseCoordinates converts the text coordinates of a search result into latitude and longitude.
func ParseCoordinates(x, y string) (lat, lng float64, err error) {
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(x), 64)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if lngErr != nil || latErr != nil {
		return 0, 0, apperr.Validation("coordinates (%q, %q) are not numbers", x, y)
	}
	if err := ValidateLatLng(lat, lng); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// ValidateLatLng checks that the coordinates are finite and on the globe.
func ValidateLatLng(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) ||
		lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return apperr.Validation("coordinates (%v, %v) are out of range", lat, lng)
	}
	return nil
}

// ValidateColor returns the trimmed colour if it is in #RRGGBB form.
func ValidateColor(color string) (string, error) {
	color, err := requireString(color, "color")
	if err != nil {
		return "", err
	}
	if !colorPattern.MatchString(color) {
		return "", apperr.Validation("color %q must be in #RRGGBB form", color)
	}
	return color, nil
}

// ValidateURL returns the normalised form of an absolute http or https URL.
func ValidateURL(raw string) (string, error) {
	raw, err := requireString(raw, "url")
	if err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", apperr.Validation("%q is not a valid URL", raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperr.Validation("only http and https URLs are allowed")
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
