// File: internal/service/entry.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mood-journal/internal/apperr"
	"mood-journal/internal/cache"
	"mood-journal/internal/logging"
	"mood-journal/internal/model"
	"mood-journal/internal/store"

	"github.com/sirupsen/logrus"
)

const msgInvalidMood = "Mood must be an integer between 0 and 10"

type EntryStore interface {
	CreateEntry(ctx context.Context, e *model.Entry) error
	ListEntriesByUser(ctx context.Context, userID string) ([]model.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// CacheRecorder 記錄快取命中，*metrics.Metrics 實作
type CacheRecorder interface {
	RecordCacheLookup(result string)
}

type EntryConfig struct {
	Entries EntryStore
	// Cache 為 nil 時不使用快取
	Cache    cache.Cache
	CacheTTL time.Duration
	Metrics  CacheRecorder
	Logger   logrus.FieldLogger
}

type EntryService struct {
	entries  EntryStore
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  CacheRecorder
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewEntryService(cfg EntryConfig) *EntryService {
	s := &EntryService{
		entries:  cfg.Entries,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		metrics:  cfg.Metrics,
		log:      cfg.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

// entriesGenKey 每次寫入遞增；清單快取 key 帶入當下的世代，舊世代的 key 不會再被讀到
func entriesGenKey(userID string) string {
	return "entries:gen:" + userID
}

func entriesKey(userID, gen string) string {
	return "entries:list:" + userID + ":" + gen
}

// Create 新增紀錄；date 為 nil 時使用現在時間
func (s *EntryService) Create(ctx context.Context, ownerID string, date *time.Time, mood int, note string) (*model.Entry, error) {
	if !model.ValidMood(mood) {
		return nil, apperr.Validation(msgInvalidMood)
	}
	e := &model.Entry{
		UserID: ownerID,
		Mood:   mood,
		Note:   note,
	}
	if date != nil {
		e.Date = date.UTC()
	} else {
		e.Date = s.now()
	}
	if err := s.entries.CreateEntry(ctx, e); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create entry: %w", err))
	}
	s.invalidate(ctx, ownerID)
	return e, nil
}

// List 回傳使用者全部紀錄，date 由新到舊；快取失敗時直接查 store
func (s *EntryService) List(ctx context.Context, ownerID string) ([]model.Entry, error) {
	key, useCache := s.listKey(ctx, ownerID)
	if useCache {
		if entries, ok := s.cached(ctx, key); ok {
			return entries, nil
		}
	}
	entries, err := s.entries.ListEntriesByUser(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list entries: %w", err))
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	if useCache {
		s.fill(ctx, key, entries)
	}
	return entries, nil
}

// Delete 只刪除屬於 ownerID 的紀錄；不存在、他人所有、格式錯誤的 id 都回傳 Not found
func (s *EntryService) Delete(ctx context.Context, ownerID, entryID string) error {
	err := s.entries.DeleteEntry(ctx, ownerID, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Not found")
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("delete entry: %w", err))
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// listKey 讀取世代並組出清單 key；世代讀不到時本次不使用快取
func (s *EntryService) listKey(ctx context.Context, ownerID string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	gen, err := s.cache.Get(ctx, entriesGenKey(ownerID)).Result()
	if cache.IsMiss(err) {
		gen = "0"
	} else if err != nil {
		s.metrics.RecordCacheLookup("error")
		s.log.WithError(err).Warn("entry cache generation get failed")
		return "", false
	}
	return entriesKey(ownerID, gen), true
}

func (s *EntryService) cached(ctx context.Context, key string) ([]model.Entry, bool) {
	raw, err := s.cache.Get(ctx, key).Bytes()
	if cache.IsMiss(err) {
		s.metrics.RecordCacheLookup("miss")
		return nil, false
	}
	if err != nil {
		s.metrics.RecordCacheLookup("error")
		s.log.WithError(err).Warn("entry cache get failed")
		return nil, false
	}
	var entries []model.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.metrics.RecordCacheLookup("error")
		s.log.WithError(err).Warn("entry cache payload invalid")
		return nil, false
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	s.metrics.RecordCacheLookup("hit")
	return entries, true
}

// fill 寫入讀取前取得的世代 key；期間若有寫入，這份資料只會留在已淘汰的世代
func (s *EntryService) fill(ctx context.Context, key string, entries []model.Entry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		s.log.WithError(err).Warn("entry cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).Warn("entry cache set failed")
	}
}

func (s *EntryService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, entriesGenKey(ownerID)).Err(); err != nil {
		s.log.WithError(err).Warn("entry cache invalidate failed")
	}
}
