package http

import (
	"strconv"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/internal/usecase"
)

const currencySign = "$"

// ConsoleViewResponse — состояние страницы консоли.
type ConsoleViewResponse struct {
	LoggedIn   bool              `json:"logged_in"`
	LoginEmail string            `json:"login_email"`
	Form       FormResponse      `json:"form"`
	Products   []ProductResponse `json:"products"`
	Rejected   map[string]string `json:"rejected,omitempty"`
}

type FormResponse struct {
	Mode        domain.FormMode  `json:"mode"`
	Title       string           `json:"title"`
	EditingID   *int64           `json:"editing_id,omitempty"`
	Name        string           `json:"name"`
	Price       string           `json:"price"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Preview     *PreviewResponse `json:"preview,omitempty"`
}

type PreviewResponse struct {
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder"`
}

// ProductResponse — карточка товара. Display-поля уже содержат заглушки.
type ProductResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Price              string  `json:"price"`
	PriceLabel         string  `json:"price_label"`
	Description        *string `json:"description"`
	DisplayDescription string  `json:"display_description"`
	ImageURL           *string `json:"image_url"`
	ImageFallback      string  `json:"image_fallback"`
	ImageAltText       string  `json:"image_alt_text,omitempty"`
	StockQuantity      int     `json:"stock_quantity"`
}

func toConsoleViewResponse(v *usecase.ConsoleView) *ConsoleViewResponse {
	resp := &ConsoleViewResponse{
		LoggedIn:   v.LoggedIn,
		LoginEmail: v.LoginEmail,
		Form:       toFormResponse(v),
	}

	if v.Products != nil {
		resp.Products = make([]ProductResponse, 0, len(v.Products))
		for i := range v.Products {
			resp.Products = append(resp.Products, toProductResponse(&v.Products[i]))
		}
	}

	return resp
}

func toFormResponse(v *usecase.ConsoleView) FormResponse {
	f := FormResponse{
		Mode:        v.FormMode,
		Title:       "Add product",
		EditingID:   v.Form.EditingID,
		Name:        v.Form.Name,
		Price:       v.Form.Price,
		Description: v.Form.Description,
		ImageURL:    v.Form.ImageURL,
	}
	if v.Form.EditingID != nil {
		f.Title = "Update product #" + strconv.FormatInt(*v.Form.EditingID, 10)
	}
	if v.Preview != nil {
		f.Preview = &PreviewResponse{URL: v.Preview.URL, Placeholder: v.Preview.Placeholder}
	}

	return f
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Price:              p.Price.String(),
		PriceLabel:         p.Price.String() + " " + currencySign,
		Description:        p.Description,
		DisplayDescription: p.DisplayDescription(),
		ImageURL:           p.ImageURL,
		ImageFallback:      domain.CardImagePlaceholder,
		StockQuantity:      p.StockQuantity,
	}
	if !p.HasImage() {
		resp.ImageURL = nil
		resp.ImageAltText = domain.NoImageText
	}

	return resp
}
