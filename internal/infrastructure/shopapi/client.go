package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
)

// maxErrorBody ограничивает, сколько тела ответа с ошибкой попадёт в лог.
const maxErrorBody = 512

// Client — клиент удалённого REST API магазина. Все запросы идут на один базовый URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg *cfg.ShopAPICfg, logger logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}
}

// Status опрашивает корень API.
func (c *Client) Status(ctx context.Context) (string, error) {
	const op = "Client.Status"

	var res statusModel
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &res); err != nil {
		return "", e.Wrap(op, err)
	}

	return res.Status, nil
}

// Login отправляет username/password в виде формы и возвращает access_token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const op = "Client.Login"

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", strings.NewReader(form.Encode()))
	if err != nil {
		return "", e.Wrap(op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res tokenModel
	if err := c.send(req, &res); err != nil {
		return "", e.Wrap(op, err)
	}

	if res.AccessToken == "" {
		return "", e.Wrap(op, e.ErrEmptyAccessToken)
	}

	return res.AccessToken, nil
}

func (c *Client) ListProducts(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	const op = "Client.ListProducts"

	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var res []productModel
	if err := c.do(ctx, http.MethodGet, "/products/?"+query.Encode(), "", nil, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return toDomainProducts(res), nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "Client.GetProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidUpstreamID)
	}

	var res productModel
	if err := c.do(ctx, http.MethodGet, productPath(id), "", nil, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return toDomainProduct(&res), nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, payload *domain.ProductPayload) (*domain.Product, error) {
	const op = "Client.CreateProduct"

	var res productModel
	if err := c.do(ctx, http.MethodPost, "/products/", token, fromDomainPayload(payload), &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return toDomainProduct(&res), nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, payload *domain.ProductPayload) (*domain.Product, error) {
	const op = "Client.UpdateProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidUpstreamID)
	}

	var res productModel
	if err := c.do(ctx, http.MethodPut, productPath(id), token, fromDomainPayload(payload), &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return toDomainProduct(&res), nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	const op = "Client.DeleteProduct"

	if id <= 0 {
		return e.Wrap(op, e.ErrInvalidUpstreamID)
	}

	if err := c.do(ctx, http.MethodDelete, productPath(id), token, nil, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// do кодирует body в JSON, выполняет запрос и декодирует ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, token, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// send выполняет запрос и сводит не-2xx ответы к ошибкам пакета e.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debugf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(detail))
		return statusError(resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d", e.ErrUnauthorized, code)
	case http.StatusNotFound:
		return fmt.Errorf("%w: status %d", e.ErrProductNotFound, code)
	default:
		return fmt.Errorf("%w: %d", e.ErrUpstreamStatus, code)
	}
}
