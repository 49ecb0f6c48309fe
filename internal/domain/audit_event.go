package domain

import "time"

type AuditAction string

const (
	AuditProductCreated AuditAction = "product.created"
	AuditProductUpdated AuditAction = "product.updated"
	AuditProductDeleted AuditAction = "product.deleted"
)

// AuditEvent фиксирует успешное изменение каталога из консоли.
type AuditEvent struct {
	EventID    string
	Action     AuditAction
	ProductID  int64
	SessionID  string
	Payload    *ProductPayload // nil для удаления
	OccurredAt time.Time
}

func NewAuditEvent(eventID string, action AuditAction, productID int64, sessionID string, payload *ProductPayload, at time.Time) *AuditEvent {
	return &AuditEvent{
		EventID:    eventID,
		Action:     action,
		ProductID:  productID,
		SessionID:  sessionID,
		Payload:    payload,
		OccurredAt: at,
	}
}
