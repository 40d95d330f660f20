package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/pkg/logger"
)

// cachedFileRepo keeps avatar and banner lookups out of Postgres. Cache
// failures are logged and fall through to the wrapped repository.
type cachedFileRepo struct {
	next   file.Repository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedFileRepo(next file.Repository, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) file.Repository {
	return &cachedFileRepo{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func fileCacheKey(id int64) string {
	return fmt.Sprintf("file:%d", id)
}

func (r *cachedFileRepo) Save(ctx context.Context, f *file.File) error {
	return r.next.Save(ctx, f)
}

func (r *cachedFileRepo) Update(ctx context.Context, f *file.File) error {
	if err := r.next.Update(ctx, f); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, fileCacheKey(f.ID)).Err(); err != nil {
		r.logger.Warn("Failed to invalidate file cache", zap.Int64("file_id", f.ID), zap.Error(err))
	}
	return nil
}

func (r *cachedFileRepo) FindByID(ctx context.Context, id int64) (*file.File, error) {
	key := fileCacheKey(id)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var f file.File
		if jsonErr := json.Unmarshal(raw, &f); jsonErr == nil {
			return &f, nil
		}
		r.logger.Warn("Dropping undecodable file cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("File cache read failed", zap.String("key", key), zap.Error(err))
	}

	f, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(f); err == nil {
		if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("File cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return f, nil
}
