package config

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsBaseURL(t *testing.T) {
	userID := uuid.NewString()
	t.Setenv("ALMANAC_BASE_URL", "")
	t.Setenv("ALMANAC_HOST", "")
	t.Setenv("ALMANAC_USER_ID", userID)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL.String())
	require.Equal(t, userID, cfg.UserID.String())
}

func TestLoadHostWithoutPortGetsDefault(t *testing.T) {
	t.Setenv("ALMANAC_BASE_URL", "")
	t.Setenv("ALMANAC_HOST", "almanac.internal")
	t.Setenv("ALMANAC_USER_ID", uuid.NewString())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://almanac.internal:8080", cfg.BaseURL.String())
}

func TestLoadExplicitBaseURLWins(t *testing.T) {
	t.Setenv("ALMANAC_BASE_URL", "https://almanac.example.com")
	t.Setenv("ALMANAC_HOST", "ignored")
	t.Setenv("ALMANAC_USER_ID", uuid.NewString())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://almanac.example.com", cfg.BaseURL.String())
}

func TestLoadRequiresUserID(t *testing.T) {
	t.Setenv("ALMANAC_BASE_URL", "")
	t.Setenv("ALMANAC_HOST", "")
	t.Setenv("ALMANAC_USER_ID", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsMalformedUserID(t *testing.T) {
	t.Setenv("ALMANAC_USER_ID", "not-a-uuid")

	_, err := Load()
	require.Error(t, err)
}
