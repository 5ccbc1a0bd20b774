package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kuisioner/internal/model"
)

// AnalyticsCache holds computed analytics bundles per questionnaire. The
// bundle is a pure re-derivation of stored responses, so the cache is
// invalidated on every new submission and expires on its own otherwise.
type AnalyticsCache interface {
	GetBundle(ctx context.Context, questionnaireID string) (*model.AnalyticsBundle, error)
	SetBundle(ctx context.Context, bundle *model.AnalyticsBundle) error
	Invalidate(ctx context.Context, questionnaireID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *analyticsCache) bundleKey(questionnaireID string) string {
	return fmt.Sprintf("questionnaire:%s:analytics", questionnaireID)
}

func (c *analyticsCache) GetBundle(ctx context.Context, questionnaireID string) (*model.AnalyticsBundle, error) {
	data, err := c.client.Get(ctx, c.bundleKey(questionnaireID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bundle model.AnalyticsBundle
	if err := json.Unmarshal([]byte(data), &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *analyticsCache) SetBundle(ctx context.Context, bundle *model.AnalyticsBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.bundleKey(bundle.QuestionnaireID), data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, questionnaireID string) error {
	return c.client.Del(ctx, c.bundleKey(questionnaireID)).Err()
}
