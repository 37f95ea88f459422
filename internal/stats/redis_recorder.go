package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey = "intent_stats:categories"
	keyPrefix     = "intent_stats:"
)

// RedisRecorder 基于 Redis 的分类统计，多实例共享：
// 每个类别一个 hash（field 为 outcome），类别名集合保存在一个 set 中
type RedisRecorder struct {
	client *redis.Client
}

// NewRedisRecorder 创建 Redis 统计
func NewRedisRecorder(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{client: client}
}

func categoryKey(category string) string {
	return keyPrefix + category
}

// Record 记录一次分类
func (r *RedisRecorder) Record(ctx context.Context, p model.Prediction) error {
	c := string(p.Category)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, categoriesKey, c)
	pipe.HIncrBy(ctx, categoryKey(c), Outcome(p), 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("记录分类统计失败: %w", err)
	}
	return nil
}

// Snapshot 读取所有类别的统计
func (r *RedisRecorder) Snapshot(ctx context.Context) (Counts, error) {
	categories, err := r.client.SMembers(ctx, categoriesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("读取类别集合失败: %w", err)
	}

	out := make(Counts, len(categories))
	for _, c := range categories {
		fields, err := r.client.HGetAll(ctx, categoryKey(c)).Result()
		if err != nil {
			return nil, fmt.Errorf("读取类别 %s 统计失败: %w", c, err)
		}
		out[c] = make(map[string]int64, len(fields))
		for outcome, v := range fields {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("类别 %s 统计值非法: %w", c, err)
			}
			out[c][outcome] = n
		}
	}
	return out, nil
}

// Reset 清空统计
func (r *RedisRecorder) Reset(ctx context.Context) error {
	categories, err := r.client.SMembers(ctx, categoriesKey).Result()
	if err != nil {
		return fmt.Errorf("读取类别集合失败: %w", err)
	}
	keys := []string{categoriesKey}
	for _, c := range categories {
		keys = append(keys, categoryKey(c))
	}
	return r.client.Del(ctx, keys...).Err()
}
