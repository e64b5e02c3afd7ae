package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	counterViewPrefix  = "promo:views:"
	counterClickPrefix = "promo:clicks:"
	counterDirtySet    = "promo:counters:dirty"
)

// CounterDelta is the accumulated, not-yet-persisted view/click activity of
// one promotion.
type CounterDelta struct {
	Views  int64
	Clicks int64
}

// CounterRepository buffers promotion view/click counters in redis so every
// impression does not hit the relational store. A background job drains the
// buffer into the promotions table.
type CounterRepository struct {
	Client *redis.Client
}

func (r *CounterRepository) IncrementViews(ctx context.Context, promotionID string) error {
	pipe := r.Client.TxPipeline()
	pipe.Incr(ctx, counterViewPrefix+promotionID)
	pipe.SAdd(ctx, counterDirtySet, promotionID)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *CounterRepository) IncrementClicks(ctx context.Context, promotionID string) error {
	pipe := r.Client.TxPipeline()
	pipe.Incr(ctx, counterClickPrefix+promotionID)
	pipe.SAdd(ctx, counterDirtySet, promotionID)
	_, err := pipe.Exec(ctx)
	return err
}

// Pending returns the buffered deltas for the given promotions without
// consuming them. Used to merge live counts into owner-facing reads.
func (r *CounterRepository) Pending(ctx context.Context, promotionIDs []string) (map[string]CounterDelta, error) {
	deltas := make(map[string]CounterDelta, len(promotionIDs))
	for _, id := range promotionIDs {
		views, err := r.getCount(ctx, counterViewPrefix+id)
		if err != nil {
			return nil, err
		}
		clicks, err := r.getCount(ctx, counterClickPrefix+id)
		if err != nil {
			return nil, err
		}
		if views != 0 || clicks != 0 {
			deltas[id] = CounterDelta{Views: views, Clicks: clicks}
		}
	}
	return deltas, nil
}

// Drain atomically consumes every buffered delta and returns it for
// persistence. Counters incremented after the drain started land in the next
// cycle.
func (r *CounterRepository) Drain(ctx context.Context) (map[string]CounterDelta, error) {
	ids, err := r.Client.SMembers(ctx, counterDirtySet).Result()
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]CounterDelta, len(ids))
	for _, id := range ids {
		views, err := r.takeCount(ctx, counterViewPrefix+id)
		if err != nil {
			return deltas, err
		}
		clicks, err := r.takeCount(ctx, counterClickPrefix+id)
		if err != nil {
			return deltas, err
		}
		if err := r.Client.SRem(ctx, counterDirtySet, id).Err(); err != nil {
			return deltas, err
		}
		if views != 0 || clicks != 0 {
			deltas[id] = CounterDelta{Views: views, Clicks: clicks}
		}
	}
	return deltas, nil
}

func (r *CounterRepository) getCount(ctx context.Context, key string) (int64, error) {
	raw, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (r *CounterRepository) takeCount(ctx context.Context, key string) (int64, error) {
	raw, err := r.Client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}
