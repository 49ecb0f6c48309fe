package shopapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/shopspring/decimal"
)

// productModel — товар в формате ответа удалённого API.
type productModel struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url"`
	CreatedAt     apiTime         `json:"created_at"`
}

// payloadModel — тело POST /products/ и PUT /products/{id}.
type payloadModel struct {
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// apiTime разбирает created_at как с зоной (RFC 3339), так и без неё (считается UTC).
type apiTime time.Time

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(bytes.Trim(data, `"`))
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = apiTime(parsed.UTC())
			return nil
		}
	}

	return fmt.Errorf("unsupported created_at format %q", raw)
}

type tokenModel struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type statusModel struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func toDomainProduct(m *productModel) *domain.Product {
	return &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Price:         m.Price,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		StockQuantity: m.StockQuantity,
		CreatedAt:     time.Time(m.CreatedAt),
	}
}

func toDomainProducts(models []productModel) []domain.Product {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *toDomainProduct(&models[i]))
	}

	return products
}

func fromDomainPayload(p *domain.ProductPayload) *payloadModel {
	return &payloadModel{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
