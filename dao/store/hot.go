package store

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// 热度榜 zset，member 是 prompt_id，score 由 worker 按事件权重累加
const keyHotPrompts = "promptx:hot:prompts"

// IncrHotScore 给提示词累加热度分
func IncrHotScore(ctx context.Context, promptID int64, delta float64) error {
	return rdb.ZIncrBy(ctx, keyHotPrompts, delta, strconv.FormatInt(promptID, 10)).Err()
}

// HotPromptIDs 取热度前 n 的提示词 ID，分数高的在前
func HotPromptIDs(ctx context.Context, n int64) ([]int64, error) {
	members, err := rdb.ZRevRange(ctx, keyHotPrompts, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RemoveHotPrompt 提示词删除后同步清掉榜上的条目
func RemoveHotPrompt(ctx context.Context, promptID int64) error {
	err := rdb.ZRem(ctx, keyHotPrompts, strconv.FormatInt(promptID, 10)).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
