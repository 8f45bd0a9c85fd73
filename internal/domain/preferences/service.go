// internal/domain/preferences/service.go
package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	themeTTL = 365 * 24 * time.Hour
)

var ErrInvalidTheme = errors.New("invalid theme")

// Service stores per-session display preferences in Redis
type Service struct {
	redisClient *redis.Client
}

// NewService creates a new preferences service
func NewService(redisClient *redis.Client) *Service {
	return &Service{redisClient: redisClient}
}

// GetTheme returns the stored theme for a session, defaulting to light
func (s *Service) GetTheme(ctx context.Context, sessionID string) (string, error) {
	theme, err := s.redisClient.Get(ctx, themeKey(sessionID)).Result()
	if err == redis.Nil {
		return ThemeLight, nil
	} else if err != nil {
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the theme for a session
func (s *Service) SetTheme(ctx context.Context, sessionID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	return s.redisClient.Set(ctx, themeKey(sessionID), theme, themeTTL).Err()
}

func themeKey(sessionID string) string {
	return fmt.Sprintf("theme:session:%s", sessionID)
}
