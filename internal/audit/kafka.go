package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaStore publishes events as JSON records keyed by project id.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

// NewKafkaStore connects a producer for topic.
func NewKafkaStore(brokers []string, topic string, opts ...kgo.Opt) (*KafkaStore, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	opts = append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}, opts...)
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaStore{client: client, topic: topic}, nil
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.ProjectID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// EnsureTopic creates the audit topic when it does not exist yet.
func (s *KafkaStore) EnsureTopic(ctx context.Context, partitions int32) error {
	admin := kadm.NewClient(s.client)
	resp, err := admin.CreateTopic(ctx, partitions, -1, nil, s.topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", resp.Err)
	}
	return nil
}

func (s *KafkaStore) Close() {
	s.client.Close()
}
