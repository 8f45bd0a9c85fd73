// internal/domain/preferences/service_test.go
package preferences

import (
	"context"
	"testing"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, context.Context, string) {
	t.Helper()

	redisClient := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	sessionID := uuid.New().String()
	t.Cleanup(func() {
		redisClient.Del(ctx, themeKey(sessionID))
		redisClient.Close()
	})
	return NewService(redisClient), ctx, sessionID
}

func TestGetThemeDefaultsToLight(t *testing.T) {
	svc, ctx, sessionID := newTestService(t)

	theme, err := svc.GetTheme(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestSetThemeRoundTrip(t *testing.T) {
	svc, ctx, sessionID := newTestService(t)

	require.NoError(t, svc.SetTheme(ctx, sessionID, ThemeDark))

	theme, err := svc.GetTheme(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	svc, ctx, sessionID := newTestService(t)

	err := svc.SetTheme(ctx, sessionID, "sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}
