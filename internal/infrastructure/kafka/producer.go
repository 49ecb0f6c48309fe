package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Producer пишет события аудита в топик Kafka. Ключ сообщения — ID товара,
// поэтому события одного товара попадают в одну партицию.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.Key),
		Value: req.Payload,
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		p.logger.Infof("Kafka topic %s created", p.cfg.Topic)
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// AuditEncoder кодирует событие аудита в protobuf (google.protobuf.Struct).
// int64-поля (product_id, price) пишутся десятичными строками: число в Struct — double,
// и значения больше 2^53 в нём теряют точность.
type AuditEncoder struct{}

func NewAuditEncoder() *AuditEncoder {
	return &AuditEncoder{}
}

func (AuditEncoder) EncodeAuditEvent(event *domain.AuditEvent) ([]byte, error) {
	const op = "AuditEncoder.EncodeAuditEvent"

	fields := map[string]any{
		"event_id":    event.EventID,
		"action":      string(event.Action),
		"product_id":  strconv.FormatInt(event.ProductID, 10),
		"session_id":  event.SessionID,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if event.Payload != nil {
		product := map[string]any{
			"name":        event.Payload.Name,
			"price":       strconv.FormatInt(event.Payload.Price, 10),
			"description": event.Payload.Description,
			"image_url":   nil,
		}
		if event.Payload.ImageURL != nil {
			product["image_url"] = *event.Payload.ImageURL
		}
		fields["product"] = product
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return data, nil
}
