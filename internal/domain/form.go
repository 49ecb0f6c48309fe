package domain

import (
	"strings"

	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/shopspring/decimal"
)

// FormPreviewPlaceholder показывается в превью формы, если картинка по URL не загрузилась.
const FormPreviewPlaceholder = "https://via.placeholder.com/200x200?text=No+Image"

type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

var maxPrice = decimal.NewFromInt(1<<63 - 1)

// Form — состояние формы создания/редактирования товара.
// EditingID == nil означает режим создания.
type Form struct {
	EditingID   *int64 `json:"editing_id,omitempty"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`

	// ImageReachable — результат последней проверки ImageURL; сбрасывается при смене URL.
	ImageReachable bool `json:"image_reachable"`
}

func (f *Form) Mode() FormMode {
	if f.EditingID != nil {
		return FormModeEdit
	}

	return FormModeCreate
}

// StartEdit переводит форму в режим редактирования и заполняет поля из товара.
func (f *Form) StartEdit(p *Product) {
	id := p.ID
	f.EditingID = &id
	f.Name = p.Name
	f.Price = p.Price.String()
	f.Description = ""
	if p.Description != nil {
		f.Description = *p.Description
	}
	f.ImageURL = ""
	if p.ImageURL != nil {
		f.ImageURL = *p.ImageURL
	}
	f.ImageReachable = false
}

// Cancel возвращает форму в режим создания и очищает поля.
func (f *Form) Cancel() {
	*f = Form{}
}

// SetPrice принимает только пустую строку или строку из цифр, иначе цена не меняется.
func (f *Form) SetPrice(value string) error {
	if value != "" && !IsDigits(value) {
		return e.ErrPriceNotDigits
	}

	f.Price = value
	return nil
}

// SetImageURL сохраняет URL без пробелов по краям и сообщает, изменился ли он.
func (f *Form) SetImageURL(value string) bool {
	value = strings.TrimSpace(value)
	if value == f.ImageURL {
		return false
	}

	f.ImageURL = value
	f.ImageReachable = false
	return true
}

// Payload собирает тело запроса. Цена разбирается как целое число
// (дробная часть отбрасывается), пустая, нечисловая или отрицательная цена отклоняется.
func (f *Form) Payload() (*ProductPayload, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, e.ErrMissingFields
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return nil, e.ErrInvalidPrice
	}

	price = price.Truncate(0)
	if price.IsNegative() || price.GreaterThan(maxPrice) {
		return nil, e.ErrInvalidPrice
	}

	return NewProductPayload(f.Name, price.IntPart(), f.Description, f.ImageURL), nil
}

// IsDigits сообщает, состоит ли непустая строка только из ASCII-цифр.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
