package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pageza/recipebox/backend/internal/display"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/measure"
	"github.com/pageza/recipebox/backend/internal/model"
)

// DisplayService renders recipes for reading and keeps the results in redis.
// Keys include the recipe's update time, so edits never serve stale views.
type DisplayService struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewDisplayService creates a DisplayService. A nil client disables caching.
func NewDisplayService(client *redis.Client, ttl time.Duration) *DisplayService {
	return &DisplayService{redis: client, ttl: ttl}
}

// Render returns the display view of r for opts. Cache failures are logged
// and the view is computed directly.
func (s *DisplayService) Render(ctx context.Context, r *model.Recipe, opts display.Options) display.View {
	if opts.Servings <= 0 {
		opts.Servings = measure.ParseServings(r.Servings)
	}
	if s.redis == nil {
		return display.Assemble(r, opts)
	}

	log := logger.For("display")
	key := displayKey(r, opts)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == nil {
		var view display.View
		decodeErr := msgpack.Unmarshal(data, &view)
		if decodeErr == nil {
			return view
		}
		log.WithError(decodeErr).Warnf("Discarding unreadable cache entry %s", key)
	} else if err != redis.Nil {
		log.WithError(err).Warn("Display cache unavailable")
	}

	view := display.Assemble(r, opts)
	data, err = msgpack.Marshal(&view)
	if err != nil {
		log.WithError(err).Warn("Failed to encode display view")
		return view
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to store display view")
	}
	return view
}

func displayKey(r *model.Recipe, opts display.Options) string {
	return fmt.Sprintf("recipe:display:%s:%d:%d:%t", r.ID, r.UpdatedAt.UnixNano(), opts.Servings, opts.Metric)
}
