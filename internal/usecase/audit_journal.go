package usecase

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/DRSN-tech/shop-console/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// AuditJournal пишет события аудита в outbox-таблицу; доставку в Kafka выполняет OutboxWorker.
type AuditJournal struct {
	outboxRepo OutboxRepository
	encoder    AuditEncoder
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewAuditJournal(outboxRepo OutboxRepository, encoder AuditEncoder, dbPool transaction.Transactional, logger logger.Logger) *AuditJournal {
	return &AuditJournal{
		outboxRepo: outboxRepo,
		encoder:    encoder,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// Record сохраняет событие в outbox в отдельной транзакции.
func (j *AuditJournal) Record(ctx context.Context, event *domain.AuditEvent) (err error) {
	const op = "AuditJournal.Record"

	payload, err := j.encoder.EncodeAuditEvent(event)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, j.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	// Если произошла ошибка, транзакция откатывается
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				j.logger.Warnf("%s: rollback failed: %v", op, rbErr)
			}
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		err = e.Wrap(op, fmt.Errorf("unexpected transaction type %T", tx.Transaction()))
		return err
	}
	ctx = tr.WithTx(ctx, pgxTx)

	outboxEvent := NewOutboxEvent(event.EventID, OutboxEventType(event.Action), event.ProductID, payload, event.OccurredAt)
	if _, err = j.outboxRepo.Create(ctx, outboxEvent); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	j.logger.Debugf("%s: %s for product %d queued", op, event.Action, event.ProductID)
	return nil
}
