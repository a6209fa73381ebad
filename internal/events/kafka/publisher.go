package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/pkg/events"
)

const DefaultTopic = "hold_token_receipts"

type Publisher struct {
	writer *kafka.Writer
	logger logrus.FieldLogger
}

func NewPublisher(brokers []string, topic string, writeTimeout time.Duration, logger logrus.FieldLogger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers is empty")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}, nil
}

// Messages renders one message per receipt, keyed by tx hash
func Messages(ev *events.ExecutedEvent) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(ev.Receipts))
	for _, r := range ev.Receipts {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, kafka.Message{
			Key:   r.TxHash.Bytes(),
			Value: data,
			Headers: []kafka.Header{
				{Key: "height", Value: []byte(strconv.FormatUint(ev.Header.Number, 10))},
				{Key: "timestamp", Value: []byte(strconv.FormatUint(ev.Header.Timestamp, 10))},
			},
		})
	}
	return msgs, nil
}

func (p *Publisher) Publish(ctx context.Context, ev *events.ExecutedEvent) error {
	msgs, err := Messages(ev)
	if err != nil {
		return errors.Wrap(err, "marshal receipts failed")
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrapf(err, "publish block %d failed", ev.Header.Number)
	}
	p.logger.WithFields(logrus.Fields{
		"height": ev.Header.Number,
		"count":  len(msgs),
		"topic":  p.writer.Topic,
	}).Debug("Publish receipts")
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
