package kafka

import (
	"currency-converter/internal/config"

	"github.com/go-kit/log"
)

const usageGroup = "conversion-usage-syncer"

type KafkaBundle struct {
	ConversionProducer *Producer
	ConversionConsumer *Consumer
}

// InitKafka returns nil when no brokers are configured.
func InitKafka(cfg *config.Config, logger log.Logger) (*KafkaBundle, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}

	producer, err := NewProducer(cfg.KafkaBrokers, cfg.ConversionTopic, logger)
	if err != nil {
		return nil, err
	}

	bundle := &KafkaBundle{ConversionProducer: producer}
	if cfg.DatabaseURL != "" {
		consumer, err := NewConsumer(cfg.KafkaBrokers, cfg.ConversionTopic, usageGroup, logger)
		if err != nil {
			producer.Close()
			return nil, err
		}
		bundle.ConversionConsumer = consumer
	}
	return bundle, nil
}

func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	if b.ConversionConsumer != nil {
		b.ConversionConsumer.Stop()
	}
	if b.ConversionProducer != nil {
		b.ConversionProducer.Close()
	}
}
