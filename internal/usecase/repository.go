package usecase

import (
	"context"

	"github.com/DRSN-tech/shop-console/internal/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	// Touch продлевает TTL сессии без перезаписи её состояния.
	Touch(ctx context.Context, id string) error
	// AcquirePending ставит флаг "запрос в процессе" и возвращает токен владельца;
	// ok == false, если флаг уже стоит.
	AcquirePending(ctx context.Context, id string) (token string, ok bool, err error)
	// ReleasePending снимает флаг, только если он всё ещё принадлежит token.
	ReleasePending(ctx context.Context, id, token string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}
