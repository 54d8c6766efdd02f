package flash

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR не задан")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	store := NewRedisStore(client, time.Minute)
	userID := "test-" + time.Now().Format("150405.000000")

	require.NoError(t, store.Put(ctx, userID, Notice{Type: NoticeError, Message: "нет доступа", Code: "forbidden"}))

	ttl, err := client.TTL(ctx, key(userID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	notice, err := store.Take(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "нет доступа", notice.Message)
	assert.Equal(t, "forbidden", notice.Code)

	notice, err = store.Take(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, notice)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "flash:notice:42", key("42"))
}
