package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	envBaseURL = "ALMANAC_BASE_URL"
	envHost    = "ALMANAC_HOST"
	envUserID  = "ALMANAC_USER_ID"
)

// Config captures runtime configuration for the console client.
type Config struct {
	BaseURL     *url.URL
	UserID      uuid.UUID
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
}

// Load reads configuration values from the environment and
// applies sane defaults if values are not provided.
func Load() (*Config, error) {
	baseURL := os.Getenv(envBaseURL)

	if baseURL == "" {
		host := strings.TrimSpace(os.Getenv(envHost))
		if host == "" {
			baseURL = "http://127.0.0.1:8080"
		} else {
			if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
				baseURL = host
			} else {
				baseURL = "http://" + host
			}

			if !strings.Contains(baseURL[strings.Index(baseURL, "://")+3:], ":") {
				baseURL = strings.TrimRight(baseURL, "/") + ":8080"
			}
		}
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	rawUser := strings.TrimSpace(os.Getenv(envUserID))
	if rawUser == "" {
		return nil, fmt.Errorf("%s is required", envUserID)
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envUserID, err)
	}

	cfg := &Config{
		BaseURL:     u,
		UserID:      userID,
		HTTPTimeout: 10 * time.Second,
		CacheTTL:    30 * time.Second,
	}

	return cfg, nil
}
