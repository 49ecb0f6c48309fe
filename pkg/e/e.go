package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки сессии консоли
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrNotLoggedIn     = fmt.Errorf("not logged in")
	ErrRequestPending  = fmt.Errorf("request already in progress")

	// Ошибки удалённого API
	ErrUnauthorized      = fmt.Errorf("unauthorized")
	ErrSubmitFailed      = fmt.Errorf("data transmission error")
	ErrDeleteFailed      = fmt.Errorf("delete failed")
	ErrUpstreamStatus    = fmt.Errorf("unexpected upstream status")
	ErrProductNotFound   = fmt.Errorf("product not found")
	ErrEmptyAccessToken  = fmt.Errorf("empty access token")
	ErrInvalidUpstreamID = fmt.Errorf("invalid product id")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidPrice         = fmt.Errorf("price must be a non-negative integer")
	ErrPriceNotDigits       = fmt.Errorf("price accepts digits only")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Collapse сводит любую причину к одному виду ошибки: errors.Is срабатывает только на kind,
// текст причины сохраняется для логов.
func Collapse(kind error, cause error) error {
	return fmt.Errorf("%w: %v", kind, cause)
}
