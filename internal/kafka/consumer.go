package kafka

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/twmb/franz-go/pkg/kgo"
)

type Consumer struct {
	client *kgo.Client
	topic  string
	logger log.Logger
}

func NewConsumer(brokers []string, topic, group string, logger log.Logger) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, err
	}

	level.Info(logger).Log("msg", "kafka consumer initialized", "topic", topic, "group", group)
	return &Consumer{client: client, topic: topic, logger: logger}, nil
}

// Start polls in the background and calls handler for every record until ctx
// is done or the consumer is stopped.
func (c *Consumer) Start(ctx context.Context, handler func(key, value []byte)) {
	go func() {
		for {
			fetches := c.client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				return
			}
			fetches.EachError(func(topic string, partition int32, err error) {
				level.Error(c.logger).Log("msg", "kafka fetch error", "topic", topic, "partition", partition, "err", err)
			})
			iter := fetches.RecordIter()
			for !iter.Done() {
				record := iter.Next()
				handler(record.Key, record.Value)
			}
		}
	}()
}

func (c *Consumer) Stop() {
	c.client.Close()
}
