package flash

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookadmin/internal/domain"
)

func TestMemoryStoreTakeClears(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Put(ctx, "7", Success("Сотрудник %d сохранен", 3)))

	notice, err := store.Take(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, NoticeSuccess, notice.Type)
	assert.Equal(t, "Сотрудник 3 сохранен", notice.Message)

	notice, err = store.Take(ctx, "7")
	require.NoError(t, err)
	assert.Nil(t, notice)
}

func TestMemoryStoreScopedByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Put(ctx, "1", Notice{Type: NoticeInfo, Message: "one"}))

	notice, err := store.Take(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, notice)

	notice, err = store.Take(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "one", notice.Message)
}

func TestMemoryStoreLastPutWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Put(ctx, "1", Notice{Type: NoticeInfo, Message: "first"}))
	require.NoError(t, store.Put(ctx, "1", Notice{Type: NoticeWarning, Message: "second"}))

	notice, err := store.Take(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "second", notice.Message)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "1", Notice{Type: NoticeInfo, Message: "stale"}))
	now = now.Add(2 * time.Minute)

	notice, err := store.Take(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, notice)
	assert.Empty(t, store.entries)
}

func TestFailure(t *testing.T) {
	wrapped := fmt.Errorf("ошибка обновления: %w", domain.NotFoundError("сотрудник %d не найден", 5))

	notice := Failure(wrapped)
	assert.Equal(t, NoticeError, notice.Type)
	assert.Equal(t, "сотрудник 5 не найден", notice.Message)
	assert.Equal(t, string(domain.ErrorCodeNotFound), notice.Code)

	notice = Failure(errors.New("boom"))
	assert.Equal(t, "boom", notice.Message)
	assert.Empty(t, notice.Code)
}
