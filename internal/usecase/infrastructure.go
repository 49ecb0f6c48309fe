package usecase

import (
	"context"

	"github.com/DRSN-tech/shop-console/internal/domain"
)

// ShopAPI — удалённое REST API магазина.
type ShopAPI interface {
	Status(ctx context.Context) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListProducts(ctx context.Context, skip, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, token string, payload *domain.ProductPayload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, payload *domain.ProductPayload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
}

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// ImageProbe проверяет, загружается ли изображение по URL.
type ImageProbe interface {
	Reachable(ctx context.Context, url string) bool
}

// AuditRecorder записывает событие аудита. Ошибка не должна ломать уже выполненную мутацию.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// AuditEncoder сериализует событие аудита в формат сообщения брокера.
type AuditEncoder interface {
	EncodeAuditEvent(event *domain.AuditEvent) ([]byte, error)
}
