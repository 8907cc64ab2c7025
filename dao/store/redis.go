package store

import (
	"context"
	"fmt"

	"github.com/DuoLi1999/promptx/setting"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// Init 初始化Redis连接
func Init(cfg *setting.RedisConfig) (err error) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	_, err = rdb.Ping(context.Background()).Result()
	return
}

// Close 关闭Redis连接
func Close() {
	_ = rdb.Close()
}
