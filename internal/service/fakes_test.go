package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"mood-journal/internal/cache"
	"mood-journal/internal/model"
	"mood-journal/internal/store"

	"github.com/redis/go-redis/v9"
)

// memStore 測試用 in-memory UserStore + EntryStore
type memStore struct {
	mu      sync.Mutex
	seq     int
	users   map[string]*model.User // key: email
	entries map[string]model.Entry // key: id

	createUserErr  error
	createEntryErr error
	listErr        error
	createCalls    int
	entryCalls     int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*model.User{}, entries: map[string]model.Entry{}}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createUserErr != nil {
		return m.createUserErr
	}
	if _, ok := m.users[u.Email]; ok {
		return store.ErrDuplicateEmail
	}
	u.ID = m.nextID("u")
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *memStore) LinkGoogleID(_ context.Context, userID, googleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == userID && u.GoogleID == nil {
			g := googleID
			u.GoogleID = &g
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) CreateEntry(_ context.Context, e *model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entryCalls++
	if m.createEntryErr != nil {
		return m.createEntryErr
	}
	e.ID = m.nextID("e")
	e.CreatedAt = e.Date
	e.UpdatedAt = e.Date
	m.entries[e.ID] = *e
	return nil
}

func (m *memStore) ListEntriesByUser(_ context.Context, userID string) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []model.Entry{}
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) DeleteEntry(_ context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.entries, entryID)
	return nil
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type fakeGoogle struct {
	id  *GoogleIdentity
	err error
}

func (f *fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.id, nil
}

type recorder struct {
	auth  []string
	cache []string
}

func (r *recorder) RecordAuth(method, result string) { r.auth = append(r.auth, method+":"+result) }
func (r *recorder) RecordCacheLookup(result string) { r.cache = append(r.cache, result) }

var errBoom = errors.New("boom")

// memCache 以 map 模擬 redis 的 Get/Set/Del/Incr
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (m *memCache) fake() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			v, ok := m.data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(_ context.Context, key string, v any, _ time.Duration) *redis.StatusCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.data[key] = string(v.([]byte))
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, k := range keys {
				delete(m.data, k)
			}
			return redis.NewIntResult(int64(len(keys)), nil)
		},
		IncrFn: func(_ context.Context, key string) *redis.IntCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			n, _ := strconv.ParseInt(m.data[key], 10, 64)
			n++
			m.data[key] = strconv.FormatInt(n, 10)
			return redis.NewIntResult(n, nil)
		},
	}
}

// pausingStore 在 ListEntriesByUser 讀完 store 之後、回傳之前執行一次 afterRead
type pausingStore struct {
	*memStore
	afterRead func()
}

func (p *pausingStore) ListEntriesByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	out, err := p.memStore.ListEntriesByUser(ctx, userID)
	if hook := p.afterRead; hook != nil {
		p.afterRead = nil
		hook()
	}
	return out, err
}
