package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mood-journal/internal/apperr"
	"mood-journal/internal/cache"
	"mood-journal/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func day(d int) *time.Time {
	t := time.Date(2024, 5, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateEntry(t *testing.T) {
	st := newMemStore()
	svc := NewEntryService(EntryConfig{Entries: st})
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", nil, 7, "ok")
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, "u1", e.UserID)
	require.Equal(t, 7, e.Mood)
	require.Equal(t, "ok", e.Note)
	require.WithinDuration(t, time.Now(), e.Date, 5*time.Second)

	e, err = svc.Create(ctx, "u1", day(3), 0, "")
	require.NoError(t, err)
	require.True(t, e.Date.Equal(*day(3)))
}

func TestCreateEntryRejectsMood(t *testing.T) {
	st := newMemStore()
	svc := NewEntryService(EntryConfig{Entries: st})
	for _, m := range []int{-1, 11} {
		_, err := svc.Create(context.Background(), "u1", nil, m, "")
		require.ErrorIs(t, err, apperr.ErrValidation)
		require.Equal(t, "Mood must be an integer between 0 and 10", apperr.PublicMessage(err))
	}
	require.Zero(t, st.entryCalls)
}

func TestCreateEntryStoreFailure(t *testing.T) {
	st := newMemStore()
	st.createEntryErr = errBoom
	svc := NewEntryService(EntryConfig{Entries: st})
	_, err := svc.Create(context.Background(), "u1", nil, 5, "")
	require.ErrorIs(t, err, apperr.ErrInternal)
}

func TestListOrderAndIsolation(t *testing.T) {
	st := newMemStore()
	svc := NewEntryService(EntryConfig{Entries: st})
	ctx := context.Background()

	_, _ = svc.Create(ctx, "u1", day(1), 3, "")
	_, _ = svc.Create(ctx, "u1", day(5), 8, "")
	_, _ = svc.Create(ctx, "u1", day(3), 5, "")
	_, _ = svc.Create(ctx, "u2", day(4), 9, "")

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int{8, 5, 3}, []int{got[0].Mood, got[1].Mood, got[2].Mood})
	for _, e := range got {
		require.Equal(t, "u1", e.UserID)
	}

	empty, err := svc.List(ctx, "u3")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestDeleteEntry(t *testing.T) {
	st := newMemStore()
	svc := NewEntryService(EntryConfig{Entries: st})
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", nil, 7, "ok")
	require.NoError(t, err)

	foreign := svc.Delete(ctx, "u2", e.ID)
	missing := svc.Delete(ctx, "u2", "does-not-exist")
	require.ErrorIs(t, foreign, apperr.ErrNotFound)
	require.Equal(t, missing.Error(), foreign.Error())

	require.NoError(t, svc.Delete(ctx, "u1", e.ID))
	list, _ := svc.List(ctx, "u1")
	require.Empty(t, list)

	err = svc.Delete(ctx, "u1", e.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, "Not found", apperr.PublicMessage(err))
}

func TestListFromCache(t *testing.T) {
	st := newMemStore()
	st.listErr = errors.New("store must not be hit")
	cached, _ := json.Marshal([]model.Entry{{ID: "e1", UserID: "u1", Mood: 4}})
	rec := &recorder{}
	fc := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			switch key {
			case "entries:gen:u1":
				return redis.NewStringResult("2", nil)
			case "entries:list:u1:2":
				return redis.NewStringResult(string(cached), nil)
			}
			t.Fatalf("unexpected key %q", key)
			return nil
		},
	}
	svc := NewEntryService(EntryConfig{Entries: st, Cache: fc, Metrics: rec})

	got, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "e1", got[0].ID)
	require.Equal(t, []string{"hit"}, rec.cache)
}

func TestListCacheMissFills(t *testing.T) {
	st := newMemStore()
	rec := &recorder{}
	var stored []byte
	var storedKey string
	var ttl time.Duration
	fc := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, v any, exp time.Duration) *redis.StatusCmd {
			storedKey = key
			stored = v.([]byte)
			ttl = exp
			return redis.NewStatusResult("OK", nil)
		},
		IncrFn: func(context.Context, string) *redis.IntCmd { return redis.NewIntResult(1, nil) },
	}
	svc := NewEntryService(EntryConfig{Entries: st, Cache: fc, CacheTTL: time.Minute, Metrics: rec})
	ctx := context.Background()
	_, err := svc.Create(ctx, "u1", day(2), 6, "")
	require.NoError(t, err)

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, []string{"miss"}, rec.cache)
	require.Equal(t, time.Minute, ttl)
	require.Equal(t, "entries:list:u1:0", storedKey)

	var decoded []model.Entry
	require.NoError(t, json.Unmarshal(stored, &decoded))
	require.Equal(t, got[0].ID, decoded[0].ID)
}

func TestListCacheErrorFallsThrough(t *testing.T) {
	st := newMemStore()
	rec := &recorder{}
	fc := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("conn refused"))
		},
	}
	svc := NewEntryService(EntryConfig{Entries: st, Cache: fc, Metrics: rec})
	got, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, []string{"error"}, rec.cache)
}

func TestCreateAndDeleteBumpGeneration(t *testing.T) {
	st := newMemStore()
	var bumped []string
	fc := &cache.FakeCache{
		IncrFn: func(_ context.Context, key string) *redis.IntCmd {
			bumped = append(bumped, key)
			return redis.NewIntResult(int64(len(bumped)), nil)
		},
	}
	svc := NewEntryService(EntryConfig{Entries: st, Cache: fc})
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", nil, 5, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "u1", e.ID))
	require.Error(t, svc.Delete(ctx, "u1", e.ID))
	require.Equal(t, []string{"entries:gen:u1", "entries:gen:u1"}, bumped)
}

func TestListCacheNotStaleAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	st := &pausingStore{memStore: newMemStore()}
	svc := NewEntryService(EntryConfig{Entries: st, Cache: mc.fake(), CacheTTL: time.Minute})

	// 第一次 List 讀完 store 後、寫入快取前，插入一筆 Create
	st.afterRead = func() {
		_, err := svc.Create(ctx, "u1", day(2), 7, "")
		require.NoError(t, err)
	}
	first, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, first)

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 7, got[0].Mood)

	// 刪除同樣不能讓舊清單復活
	deleted := got[0].ID
	_, err = svc.Create(ctx, "u1", day(3), 4, "")
	require.NoError(t, err)
	st.afterRead = func() {
		require.NoError(t, svc.Delete(ctx, "u1", deleted))
	}
	before, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, before, 2)

	got, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 4, got[0].Mood)
}
