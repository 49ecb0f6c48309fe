package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/jimlawless/whereami"
)

const (
	maxImageSize = 15 << 20
	maxJSONBody  = 1 << 20
)

// Тексты уведомлений, которые видит администратор.
const (
	msgUnauthorized     = "Error: unauthorized"
	msgSubmitFailed     = "Data transmission error"
	msgDeleteFailed     = "Failed to delete: no access or server error"
	msgInvalidPrice     = "Price must be a positive integer"
	msgNotLoggedIn      = "Authorized users only"
	msgPending          = "Request already in progress"
	msgSessionExpired   = "Session expired, reload the page"
	msgProductNotFound  = "Product not found"
	msgUpstreamError    = "Server is unavailable"
	msgMissingFields    = "Fill in the required fields"
	msgInvalidRequest   = "Invalid request"
	msgFileTooLarge     = "Image is larger than 15 MB"
	msgUnsupportedMedia = "Only JPEG, PNG, WebP and GIF images are supported"
)

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку с кодом и текстом уведомления.
// Порядок важен: свёрнутые ошибки проверяются раньше причин.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrSubmitFailed):
		return http.StatusBadGateway, msgSubmitFailed
	case errors.Is(err, e.ErrDeleteFailed):
		return http.StatusBadGateway, msgDeleteFailed
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, e.ErrNotLoggedIn):
		return http.StatusUnauthorized, msgNotLoggedIn
	case errors.Is(err, e.ErrSessionNotFound):
		return http.StatusUnauthorized, msgSessionExpired
	case errors.Is(err, e.ErrRequestPending):
		return http.StatusConflict, msgPending
	case errors.Is(err, e.ErrInvalidPrice), errors.Is(err, e.ErrPriceNotDigits):
		return http.StatusBadRequest, msgInvalidPrice
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, e.ErrProductNotFound), errors.Is(err, e.ErrInvalidUpstreamID):
		return http.StatusNotFound, msgProductNotFound
	case errors.Is(err, e.ErrUpstreamStatus):
		return http.StatusBadGateway, msgUpstreamError
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, msgFileTooLarge
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, msgUnsupportedMedia
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrNoImages),
		errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, msgInvalidRequest
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

// WriteValidationError отдаёт 400 с ошибками по полям.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	resp := NewErrorResponse(http.StatusBadRequest, msgMissingFields)
	resp.Fields = fields
	WriteSuccess(w, http.StatusBadRequest, resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в dst. Неизвестные поля отклоняются.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStatusBadRequest, err))
	}

	return nil
}

func parseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap("product id "+raw, e.ErrInvalidUpstreamID)
	}

	return id, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return e.Wrap(whereami.WhereAmI(), e.ErrFileTooLarge)
		}
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStatusBadRequest, err))
	}

	return nil
}

// parseImage берёт ровно один файл из поля формы.
func parseImage(files []*multipart.FileHeader) (*usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > 1 {
		return nil, e.ErrTooManyImages
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxImageSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

// readFile читает файл целиком и определяет MIME-тип по содержимому, а не по заголовку клиента.
func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, "", e.Wrap(fh.Filename, e.ErrNoImages)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
