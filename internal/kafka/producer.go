package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type Producer struct {
	topic  string
	client *kgo.Client
	logger log.Logger
}

func NewProducer(brokers []string, topic string, logger log.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}

	level.Info(logger).Log("msg", "kafka producer initialized", "topic", topic)
	return &Producer{topic: topic, client: client, logger: logger}, nil
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return err
	}

	level.Debug(p.logger).Log("msg", "published", "topic", p.topic, "key", string(key))
	return nil
}

func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	go func() {
		value, err := json.Marshal(obj)
		if err != nil {
			level.Error(p.logger).Log("msg", "marshal for kafka failed", "err", err)
			return
		}

		if err := p.Publish(context.Background(), key, value); err != nil {
			level.Error(p.logger).Log("msg", "kafka async publish failed", "topic", p.topic, "err", err)
		}
	}()
}
