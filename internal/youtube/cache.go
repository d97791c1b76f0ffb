package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

const (
	cuesKeyPrefix    = "moodline:cues:"
	detailsKeyPrefix = "moodline:details:"
)

// RedisKV is the subset of a go-redis client the cache needs.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSource memoises successful caption fetches in Redis, keyed by caption
// language and video id. Failures are never cached and a Redis outage only
// costs the cache, not the fetch.
type CachedSource struct {
	next    CaptionSource
	details DetailsProvider
	kv      RedisKV
	lang    string
	ttl     time.Duration
	logger  *slog.Logger
}

func NewCachedSource(next CaptionSource, kv RedisKV, lang string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{next: next, kv: kv, lang: lang, ttl: ttl, logger: logger}
}

// WithDetails caches video details from d as well.
func (c *CachedSource) WithDetails(d DetailsProvider) *CachedSource {
	c.details = d
	return c
}

// FetchRawCues implements CaptionSource.
func (c *CachedSource) FetchRawCues(ctx context.Context, videoID string) ([]transcript.RawCue, error) {
	key := cuesKeyPrefix + c.lang + ":" + videoID

	var cues []transcript.RawCue
	if c.load(ctx, key, videoID, &cues) {
		c.logger.Debug("caption cache hit", "video_id", videoID, "cues", len(cues))
		return cues, nil
	}

	cues, err := c.next.FetchRawCues(ctx, videoID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, videoID, cues)
	return cues, nil
}

// VideoDetails implements DetailsProvider.
func (c *CachedSource) VideoDetails(ctx context.Context, videoID string) (VideoDetails, error) {
	if c.details == nil {
		return VideoDetails{}, fmt.Errorf("%w: no details provider", ErrLookup)
	}
	key := detailsKeyPrefix + videoID

	var d VideoDetails
	if c.load(ctx, key, videoID, &d) {
		return d, nil
	}

	d, err := c.details.VideoDetails(ctx, videoID)
	if err != nil {
		return VideoDetails{}, err
	}
	c.store(ctx, key, videoID, d)
	return d, nil
}

func (c *CachedSource) load(ctx context.Context, key, videoID string, dst any) bool {
	raw, err := c.kv.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, dst); jerr == nil {
			return true
		}
		c.logger.Warn("discarding corrupt cache entry", "key", key, "video_id", videoID)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("cache read failed", "key", key, "video_id", videoID, "error", err)
	}
	return false
}

func (c *CachedSource) store(ctx context.Context, key, videoID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "video_id", videoID, "error", err)
	}
}
