package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CardImagePlaceholder подставляется в карточку, если картинка товара не загрузилась.
	CardImagePlaceholder = "https://via.placeholder.com/600x300?text=Image+not+found"
	NoImageText          = "No image provided"
	NoDescriptionText    = "No description"
)

// Product описывает товар в том виде, в каком его отдаёт удалённое API.
type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal // API отдаёт число, целым оно быть не обязано
	Description   *string
	ImageURL      *string
	StockQuantity int
	CreatedAt     time.Time
}

// ProductPayload — тело POST /products/ и PUT /products/{id}.
type ProductPayload struct {
	Name        string
	Price       int64
	Description string
	ImageURL    *string // nil, если поле формы пустое
}

func NewProductPayload(name string, price int64, description string, imageURL string) *ProductPayload {
	payload := &ProductPayload{
		Name:        name,
		Price:       price,
		Description: description,
	}
	if imageURL != "" {
		payload.ImageURL = &imageURL
	}

	return payload
}

// HasImage сообщает, указан ли у товара URL изображения.
func (p *Product) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// DisplayDescription возвращает описание или текст-заглушку.
func (p *Product) DisplayDescription() string {
	if p.Description == nil || *p.Description == "" {
		return NoDescriptionText
	}

	return *p.Description
}
