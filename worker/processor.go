// Package worker 消费计数事件队列，把浏览/复制行为落到 MySQL 计数列，
// 同时按权重累加 Redis 热度榜。
package worker

import (
	"context"
	"encoding/json"

	"github.com/DuoLi1999/promptx/dao/mysql"
	"github.com/DuoLi1999/promptx/dao/store"
	"github.com/DuoLi1999/promptx/pkg/queue"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// 热度权重：复制比浏览更能说明提示词有用
const (
	viewWeight = 1
	copyWeight = 3
)

type StatProcessor struct {
	mq queue.MessageQueue
	// 控制并发处理数，和 channel 的 Qos 配合
	sem chan struct{}
}

func NewStatProcessor(mq queue.MessageQueue) *StatProcessor {
	return &StatProcessor{
		mq:  mq,
		sem: make(chan struct{}, 10),
	}
}

// Start 阻塞消费，应在单独的 goroutine 中运行
func (sp *StatProcessor) Start() error {
	deliveries, err := sp.mq.Consume()
	if err != nil {
		return err
	}
	for d := range deliveries {
		sp.sem <- struct{}{}
		go func(d amqp.Delivery) {
			defer func() { <-sp.sem }()
			sp.process(d)
		}(d)
	}
	return nil
}

func (sp *StatProcessor) process(d amqp.Delivery) {
	var ev queue.StatEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		// 消息体坏了，重投也没用
		zap.L().Error("stat event unmarshal failed", zap.ByteString("body", d.Body), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := sp.apply(&ev); err != nil {
		zap.L().Error("stat event apply failed",
			zap.String("type", ev.Type), zap.Int64("prompt_id", ev.PromptID), zap.Error(err))
		// 第一次失败重投一次，重投过的丢弃，避免死循环
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (sp *StatProcessor) apply(ev *queue.StatEvent) error {
	ctx := context.Background()
	switch ev.Type {
	case queue.EventCopy:
		if err := mysql.IncrCopyCount(ev.PromptID, 1); err != nil {
			return err
		}
		return store.IncrHotScore(ctx, ev.PromptID, copyWeight)
	default:
		if err := mysql.IncrViewCount(ev.PromptID, 1); err != nil {
			return err
		}
		return store.IncrHotScore(ctx, ev.PromptID, viewWeight)
	}
}
