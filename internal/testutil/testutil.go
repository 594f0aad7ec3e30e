// Package testutil provides shared test helpers for config files and SQLite-backed fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/imjang/internal/config"
	"github.com/at-ishikawa/imjang/internal/database"
)

// SetupTestConfig creates a minimal config file using an SQLite database under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
auth:
  jwt_secret: test-secret-test-secret-test-secret
`, filepath.Join(tmpDir, "imjang.db"))

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithKakao creates a config file whose Kakao client points at baseURL.
func SetupTestConfigWithKakao(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("kakao:\n  rest_api_key: fake-key-for-testing\n  base_url: %s\n  max_retry_attempts: 1\n", baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// NewSQLiteDB opens a migrated SQLite database in a temporary directory.
// The connection is closed when the test ends.
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "imjang.db"),
	}
	require.NoError(t, database.Migrate(cfg))

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// PlaceOption configures optional fields when creating a place fixture.
type PlaceOption func(*placeFixture)

type placeFixture struct {
	kakaoID string
	name    string
}

// WithKakaoID sets the Kakao id of the place fixture.
func WithKakaoID(kakaoID string) PlaceOption {
	return func(f *placeFixture) {
		f.kakaoID = kakaoID
	}
}

// WithPlaceName sets the name of the place fixture.
func WithPlaceName(name string) PlaceOption {
	return func(f *placeFixture) {
		f.name = name
	}
}

// CreatePlace inserts a place owned by ownerID and returns its id.
func CreatePlace(t *testing.T, db *sqlx.DB, ownerID string, opts ...PlaceOption) string {
	t.Helper()

	f := placeFixture{
		kakaoID: uuid.NewString(),
		name:    "테스트 아파트",
	}
	for _, opt := range opts {
		opt(&f)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO places (id, owner_id, kakao_id, name, lat, lng, address, road_address, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, ownerID, f.kakaoID, f.name, 37.4979, 127.0276, "서울 강남구", nil, now, now,
	)
	require.NoError(t, err)
	return id
}

// CreateUnit inserts a unit of placeID owned by ownerID and returns its id.
func CreateUnit(t *testing.T, db *sqlx.DB, placeID, ownerID, label string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO units (id, place_id, owner_id, label, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, placeID, ownerID, label, now, now,
	)
	require.NoError(t, err)
	return id
}

// CountRows returns the number of rows of table matching where.
func CountRows(t *testing.T, db *sqlx.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var count int
	require.NoError(t, db.Get(&count, query, args...))
	return count
}
