package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"brewbuy/internal/domain"
)

// messageWriter 是 *kafka.Writer 的最小子集，便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 事件在后台 goroutine 写入，请求不等待 broker
type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func ParseBrokers(csv string) []string {
	var out []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// NewKafkaPublisher 在 brokers 为空时返回 nil（调用方改用 Noop）
func NewKafkaPublisher(brokersCSV, topic string, timeout time.Duration, log *zap.Logger) *KafkaPublisher {
	brokers := ParseBrokers(brokersCSV)
	if len(brokers) == 0 {
		return nil
	}
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // 同一订单落同一分区，保证顺序
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		MaxAttempts:            3,
	}, timeout, log)
}

func newPublisher(w messageWriter, timeout time.Duration, log *zap.Logger) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &KafkaPublisher{w: w, timeout: timeout, log: log}
}

// Publish 只同步返回编码错误；写入失败在后台记日志
func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", ev.OrderID)),
		Value: data,
		Time:  ev.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	// 请求结束后 ctx 会被取消，这里只保留其中的值
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		wctx, cancel := context.WithTimeout(bg, p.timeout)
		defer cancel()
		if err := p.w.WriteMessages(wctx, msg); err != nil {
			p.log.Warn("order event write failed",
				zap.String("type", ev.Type),
				zap.Uint("order_id", ev.OrderID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Close 等待在途写入结束后关闭 writer
func (p *KafkaPublisher) Close() error {
	p.wg.Wait()
	return p.w.Close()
}

type Noop struct{}

func (Noop) Publish(context.Context, domain.OrderEvent) error { return nil }
