package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/models"
)

// DayStore is read-before-write storage for day-scoped bundles (roster
// index, injury set). A cache hit short-circuits all network calls for that
// bundle until the UTC date rolls over. Single writer, no contention.
type DayStore interface {
	// Get loads the value stored under key into dest, reporting whether a
	// usable entry existed.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores the value under key. Failures are logged, not returned:
	// a broken cache degrades to refetching, never to a failed run.
	Set(ctx context.Context, key string, value interface{})
}

// DayKey builds the cache key for one bundle kind, league and UTC date.
func DayKey(kind string, league models.League, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", kind, league, day.UTC().Format("2006-01-02"))
}

// RedisStore keeps day bundles in Redis with an expiry at the next UTC
// midnight.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Logger
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed day store.
func NewRedisStore(client *redis.Client, logger *logrus.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger, now: time.Now}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warnf("Cache get failed for %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		s.logger.Warnf("Cache entry for %s is unreadable: %v", key, err)
		return false
	}
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warnf("Cache marshal failed for %s: %v", key, err)
		return
	}

	// Entries are keyed by UTC date, so anything still present after the
	// date rolls over is dead weight; expire it then.
	next := s.now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	if err := s.client.Set(ctx, key, data, time.Until(next)).Err(); err != nil {
		s.logger.Warnf("Cache set failed for %s: %v", key, err)
	}
}

// FileStore keeps day bundles as JSON files in a local directory. Used when
// no Redis is configured; the date inside the key makes stale files
// self-invalidating.
type FileStore struct {
	dir    string
	logger *logrus.Logger
}

// NewFileStore creates a filesystem-backed day store rooted at dir.
func NewFileStore(dir string, logger *logrus.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".json")
}

func (s *FileStore) Get(_ context.Context, key string, dest interface{}) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warnf("Cache file for %s is unreadable: %v", key, err)
		return false
	}
	return true
}

func (s *FileStore) Set(_ context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warnf("Cache marshal failed for %s: %v", key, err)
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Warnf("Cache dir %s unavailable: %v", s.dir, err)
		return
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Warnf("Cache write failed for %s: %v", key, err)
		return
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		s.logger.Warnf("Cache rename failed for %s: %v", key, err)
	}
}

// NewDayStore picks the cache backend: Redis when a URL is configured and
// reachable, otherwise the on-disk store.
func NewDayStore(redisURL, cacheDir string, logger *logrus.Logger) DayStore {
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Warnf("Invalid Redis URL, falling back to file cache: %v", err)
			return NewFileStore(cacheDir, logger)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("Redis unreachable, falling back to file cache: %v", err)
			return NewFileStore(cacheDir, logger)
		}
		return NewRedisStore(client, logger)
	}
	return NewFileStore(cacheDir, logger)
}
