package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "imjang.db"))
	assert.Contains(t, string(content), "jwt_secret:")
	assert.NotContains(t, string(content), "kakao:")
}

func TestSetupTestConfigWithKakao(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithKakao(t, tmpDir, "http://127.0.0.1:9999")

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite")
	assert.Contains(t, string(content), "rest_api_key: fake-key-for-testing")
	assert.Contains(t, string(content), "base_url: http://127.0.0.1:9999")
}

func TestFixtures(t *testing.T) {
	db := NewSQLiteDB(t)

	assert.Equal(t, 0, CountRows(t, db, "places", ""))

	first := CreatePlace(t, db, "user-1")
	second := CreatePlace(t, db, "user-1", WithKakaoID("8134571"), WithPlaceName("래미안대치팰리스"))
	CreatePlace(t, db, "user-2")
	assert.NotEqual(t, first, second)

	assert.Equal(t, 3, CountRows(t, db, "places", ""))
	assert.Equal(t, 2, CountRows(t, db, "places", "owner_id = ?", "user-1"))
	assert.Equal(t, 1, CountRows(t, db, "places", "kakao_id = ? AND name = ?", "8134571", "래미안대치팰리스"))

	unitID := CreateUnit(t, db, second, "user-1", "101동 1203호")
	assert.NotEmpty(t, unitID)
	assert.Equal(t, 1, CountRows(t, db, "units", "place_id = ?", second))
}
