// Package queue 基于 RabbitMQ 的浏览/复制计数事件队列。
// 计数写入不在请求路径上落库，先发消息，由 worker 异步聚合。
package queue

import (
	"encoding/json"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	EventView = "view"
	EventCopy = "copy"
)

// StatEvent 一次浏览或复制行为
type StatEvent struct {
	Type       string `json:"type"`
	PromptID   int64  `json:"prompt_id,string"`
	OccurredAt int64  `json:"occurred_at"`
}

// MessageQueue 抽象出发布和消费，便于测试替换
type MessageQueue interface {
	Publish(ev *StatEvent) error
	Consume() (<-chan amqp.Delivery, error)
	Close() error
}

type rabbitMQ struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

var (
	instance *rabbitMQ
	once     sync.Once
	initErr  error
)

// InitRabbitMQ 建立连接并声明持久化队列，进程内只执行一次
func InitRabbitMQ(url, queueName string) error {
	once.Do(func() {
		conn, err := amqp.Dial(url)
		if err != nil {
			initErr = err
			return
		}
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			conn.Close()
			return
		}
		if _, err = ch.QueueDeclare(
			queueName,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			initErr = err
			ch.Close()
			conn.Close()
			return
		}
		// 限制未确认消息数量，防止 worker 被打爆
		if err = ch.Qos(10, 0, false); err != nil {
			initErr = err
			ch.Close()
			conn.Close()
			return
		}
		instance = &rabbitMQ{conn: conn, channel: ch, queueName: queueName}
	})
	return initErr
}

// GetRabbitMQ 返回单例，未初始化时为 nil
func GetRabbitMQ() MessageQueue {
	if instance == nil {
		return nil
	}
	return instance
}

func (r *rabbitMQ) Publish(ev *StatEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = r.channel.Publish(
		"",          // exchange
		r.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		zap.L().Error("queue publish failed", zap.String("type", ev.Type), zap.Error(err))
	}
	return err
}

func (r *rabbitMQ) Consume() (<-chan amqp.Delivery, error) {
	return r.channel.Consume(
		r.queueName,
		"",    // consumer
		false, // autoAck，处理成功后手动确认
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
}

func (r *rabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
