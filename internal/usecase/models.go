package usecase

import (
	"time"

	"github.com/DRSN-tech/shop-console/internal/domain"
)

// CONSOLE

// LoginReq — запрос на вход администратора.
type LoginReq struct {
	SessionID string
	Email     string
	Password  string
}

// UpdateFormReq — изменение полей формы; nil означает "поле не трогать".
type UpdateFormReq struct {
	SessionID   string
	Name        *string
	Price       *string
	Description *string
	ImageURL    *string
}

// UpdateFormRes — новое состояние консоли и поля, значения которых были отклонены.
type UpdateFormRes struct {
	View     *ConsoleView
	Rejected map[string]string
}

// UploadImageReq — загрузка изображения товара в медиахранилище.
type UploadImageReq struct {
	SessionID string
	Image     ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // определённый по содержимому Content-Type
	Size     int64
	Name     string // оригинальное имя файла (для логов)
}

// ConsoleView — всё, что нужно странице для отрисовки.
type ConsoleView struct {
	LoggedIn   bool
	LoginEmail string
	Form       domain.Form
	FormMode   domain.FormMode
	Preview    *ImagePreview
	Products   []domain.Product // только для вошедшего администратора
}

// ImagePreview — превью изображения из формы.
type ImagePreview struct {
	URL         string
	Placeholder bool // URL не загрузился, показывается заглушка
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений в MinIO.
type UploadImagesReq struct {
	Prefix string
	Images []ProductImage
}

// UploadImagesRes — ключи объектов и публичные URL в том же порядке, что и запрос.
type UploadImagesRes struct {
	ImagesKeys []string
	URLs       []string
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

// OutboxEvent — событие аудита, ожидающее отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewConsoleView(session *domain.Session, products []domain.Product, preview *ImagePreview) *ConsoleView {
	return &ConsoleView{
		LoggedIn:   session.LoggedIn(),
		LoginEmail: session.LoginEmail,
		Form:       session.Form,
		FormMode:   session.Form.Mode(),
		Preview:    preview,
		Products:   products,
	}
}

func NewUploadImagesReq(prefix string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Prefix: prefix,
		Images: images,
	}
}

func NewUploadImagesRes(keys []string, urls []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: keys,
		URLs:       urls,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID int64, payload []byte, createdAt time.Time) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: createdAt,
	}
}
