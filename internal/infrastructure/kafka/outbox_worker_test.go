package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeOutboxRepo struct {
	batches   [][]*usecase.OutboxEvent
	processed []int64
	pending   []int64
}

func (f *fakeOutboxRepo) Create(context.Context, *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	return nil, errors.New("not used")
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*usecase.OutboxEvent, error) {
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxRepo) MarkAsPending(_ context.Context, id int64) error {
	f.pending = append(f.pending, id)
	return nil
}

type fakeProducer struct {
	keys    []string
	failKey string
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	if req.Key == f.failKey {
		return errors.New("dial tcp: connection refused")
	}
	f.keys = append(f.keys, req.Key)
	return nil
}

func outboxEvent(id, productID int64) *usecase.OutboxEvent {
	ev := usecase.NewOutboxEvent("ev", "product.created", productID, []byte("x"), time.Now())
	ev.ID = id
	return ev
}

func TestProcessBatch(t *testing.T) {
	repo := &fakeOutboxRepo{batches: [][]*usecase.OutboxEvent{{outboxEvent(1, 10), outboxEvent(2, 20)}}}
	producer := &fakeProducer{failKey: "20"}
	w := NewOutboxWorker(repo, logger.NewNopLogger(), producer, "")

	hasMore, err := w.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch returned error: %v", err)
	}
	if hasMore {
		t.Error("hasMore = true, expected false after failure")
	}

	if len(producer.keys) != 1 || producer.keys[0] != "10" {
		t.Errorf("sent keys = %v, expected [10]", producer.keys)
	}
	if len(repo.processed) != 1 || repo.processed[0] != 1 {
		t.Errorf("processed = %v, expected [1]", repo.processed)
	}
	if len(repo.pending) != 1 || repo.pending[0] != 2 {
		t.Errorf("pending = %v, expected [2]", repo.pending)
	}
}

func TestDrainStopsOnEmptyBatch(t *testing.T) {
	full := make([]*usecase.OutboxEvent, 0, outboxBatchSize)
	for i := int64(1); i <= outboxBatchSize; i++ {
		full = append(full, outboxEvent(i, i))
	}
	repo := &fakeOutboxRepo{batches: [][]*usecase.OutboxEvent{full, {outboxEvent(99, 99)}}}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, logger.NewNopLogger(), producer, "")

	w.drain(context.Background())

	if len(repo.processed) != outboxBatchSize+1 {
		t.Errorf("processed %d events, expected %d", len(repo.processed), outboxBatchSize+1)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(errors.New("dial tcp 10.0.0.1:9092: i/o timeout")) {
		t.Error("i/o timeout not retryable")
	}
	if isRetryableError(errors.New("message too large")) {
		t.Error("message too large is retryable")
	}
}

func TestAuditEncoderRoundTrip(t *testing.T) {
	img := "https://x/y.png"
	event := domain.NewAuditEvent("ev-1", domain.AuditProductUpdated, 42, "s-1",
		&domain.ProductPayload{Name: "Watch", Price: 150, ImageURL: &img},
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	data, err := NewAuditEncoder().EncodeAuditEvent(event)
	if err != nil {
		t.Fatalf("EncodeAuditEvent returned error: %v", err)
	}

	msg := decodeAuditEvent(t, data)

	got := msg.AsMap()
	if got["action"] != "product.updated" || got["product_id"] != "42" {
		t.Errorf("decoded = %v, expected updated event for 42", got)
	}
	product, ok := got["product"].(map[string]any)
	if !ok || product["price"] != "150" || product["image_url"] != img {
		t.Errorf("product = %v, expected payload fields", got["product"])
	}
}

func TestAuditEncoderDeleteHasNoProduct(t *testing.T) {
	event := domain.NewAuditEvent("ev-2", domain.AuditProductDeleted, 7, "s-1", nil, time.Now())

	data, err := NewAuditEncoder().EncodeAuditEvent(event)
	if err != nil {
		t.Fatalf("EncodeAuditEvent returned error: %v", err)
	}
	msg := decodeAuditEvent(t, data)
	if _, ok := msg.AsMap()["product"]; ok {
		t.Error("delete event carries product payload")
	}
}

func TestAuditEncoderKeepsLargeIDs(t *testing.T) {
	const id = int64(1<<53 + 1)
	event := domain.NewAuditEvent("ev-3", domain.AuditProductCreated, id, "s-1",
		&domain.ProductPayload{Name: "Yacht", Price: id}, time.Now())

	data, err := NewAuditEncoder().EncodeAuditEvent(event)
	if err != nil {
		t.Fatalf("EncodeAuditEvent returned error: %v", err)
	}

	got := decodeAuditEvent(t, data).AsMap()
	if got["product_id"] != "9007199254740993" {
		t.Errorf("product_id = %v, expected exact 9007199254740993", got["product_id"])
	}
	if product, _ := got["product"].(map[string]any); product["price"] != "9007199254740993" {
		t.Errorf("price = %v, expected exact 9007199254740993", product["price"])
	}
}

// decodeAuditEvent разбирает сообщение, записанное AuditEncoder.
func decodeAuditEvent(t *testing.T, data []byte) *structpb.Struct {
	t.Helper()

	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal audit event: %v", err)
	}
	return &msg
}
