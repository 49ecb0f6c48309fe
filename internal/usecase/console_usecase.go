package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/google/uuid"
)

const imagesPrefix = "products"

// ConsoleUseCase реализует состояние консоли администратора поверх удалённого API.
type ConsoleUseCase struct {
	sessions  SessionRepository
	shopAPI   ShopAPI
	images    ImagesInfra
	probe     ImageProbe
	audit     AuditRecorder
	logger    logger.Logger
	listLimit int
	now       func() time.Time
	newID     func() string
}

func NewConsoleUC(
	sessions SessionRepository,
	shopAPI ShopAPI,
	images ImagesInfra,
	probe ImageProbe,
	audit AuditRecorder,
	logger logger.Logger,
	listLimit int,
) *ConsoleUseCase {
	return &ConsoleUseCase{
		sessions:  sessions,
		shopAPI:   shopAPI,
		images:    images,
		probe:     probe,
		audit:     audit,
		logger:    logger,
		listLimit: listLimit,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// OpenSession возвращает ID существующей сессии, продлевая её TTL, или заводит новую.
func (c *ConsoleUseCase) OpenSession(ctx context.Context, sessionID string) (string, error) {
	const op = "ConsoleUseCase.OpenSession"

	if sessionID != "" {
		s, err := c.sessions.Get(ctx, sessionID)
		if err == nil {
			if err := c.sessions.Touch(ctx, s.ID); err != nil {
				c.logger.Warnf("%s: failed to extend session %s: %v", op, s.ID, err)
			}
			return s.ID, nil
		}
		if !errors.Is(err, e.ErrSessionNotFound) {
			return "", e.Wrap(op, err)
		}
	}

	s := domain.NewSession(c.newID(), c.now().UTC())
	if err := c.sessions.Save(ctx, s); err != nil {
		return "", e.Wrap(op, err)
	}

	return s.ID, nil
}

// View отдаёт текущее состояние консоли. Вход восстанавливается по наличию сохранённого токена.
func (c *ConsoleUseCase) View(ctx context.Context, sessionID string) (*ConsoleView, error) {
	const op = "ConsoleUseCase.View"

	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// Login получает bearer-токен. Любой отказ сводится к e.ErrUnauthorized.
func (c *ConsoleUseCase) Login(ctx context.Context, req *LoginReq) (*ConsoleView, error) {
	const op = "ConsoleUseCase.Login"

	s, err := c.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	token, err := c.shopAPI.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.logger.Warnf("%s: login rejected: %v", op, err)

		s.LoginEmail = req.Email
		if saveErr := c.sessions.Save(ctx, s); saveErr != nil {
			c.logger.Warnf("%s: failed to save session: %v", op, saveErr)
		}

		return nil, e.Wrap(op, e.Collapse(e.ErrUnauthorized, err))
	}

	s.Login(token)
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// Logout удаляет токен сессии.
func (c *ConsoleUseCase) Logout(ctx context.Context, sessionID string) (*ConsoleView, error) {
	const op = "ConsoleUseCase.Logout"

	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.Logout()
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// UpdateForm применяет изменения полей формы. Отклонённые значения не прерывают запрос,
// а возвращаются в Rejected.
func (c *ConsoleUseCase) UpdateForm(ctx context.Context, req *UpdateFormReq) (*UpdateFormRes, error) {
	const op = "ConsoleUseCase.UpdateForm"

	s, err := c.loggedInSession(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rejected := make(map[string]string)
	if req.Name != nil {
		s.Form.Name = *req.Name
	}
	if req.Price != nil {
		if err := s.Form.SetPrice(*req.Price); err != nil {
			rejected["price"] = err.Error()
		}
	}
	if req.Description != nil {
		s.Form.Description = *req.Description
	}
	if req.ImageURL != nil && s.Form.SetImageURL(*req.ImageURL) {
		c.checkImage(ctx, &s.Form)
	}

	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &UpdateFormRes{
		View:     c.render(ctx, s),
		Rejected: rejected,
	}, nil
}

// StartEdit переводит форму в режим редактирования товара productID.
func (c *ConsoleUseCase) StartEdit(ctx context.Context, sessionID string, productID int64) (*ConsoleView, error) {
	const op = "ConsoleUseCase.StartEdit"

	s, err := c.loggedInSession(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.shopAPI.GetProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, upstreamError(err))
	}

	s.Form.StartEdit(product)
	c.checkImage(ctx, &s.Form)
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// CancelEdit возвращает форму в режим создания и очищает её.
func (c *ConsoleUseCase) CancelEdit(ctx context.Context, sessionID string) (*ConsoleView, error) {
	const op = "ConsoleUseCase.CancelEdit"

	s, err := c.loggedInSession(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.Form.Cancel()
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// Submit отправляет форму: PUT в режиме редактирования, POST в режиме создания.
// После успеха форма очищается, список перечитывается. Любой сбой запроса сводится к e.ErrSubmitFailed.
func (c *ConsoleUseCase) Submit(ctx context.Context, sessionID string) (*ConsoleView, error) {
	const op = "ConsoleUseCase.Submit"

	s, err := c.loggedInSession(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	payload, err := s.Form.Payload()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	release, err := c.acquirePending(ctx, s.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Флаг держится только на время запроса к API, аудит и перечитывание списка идут без него.
	productID, action, err := c.sendForm(ctx, s, payload)
	release()
	if err != nil {
		c.logger.Warnf("%s: %s failed: %v", op, action, err)
		return nil, e.Wrap(op, e.Collapse(e.ErrSubmitFailed, err))
	}

	c.recordAudit(ctx, action, productID, s.ID, payload)

	s.Form.Cancel()
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

// Delete удаляет товар. Любой сбой сводится к e.ErrDeleteFailed.
func (c *ConsoleUseCase) Delete(ctx context.Context, sessionID string, productID int64) (*ConsoleView, error) {
	const op = "ConsoleUseCase.Delete"

	s, err := c.loggedInSession(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	release, err := c.acquirePending(ctx, s.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = c.shopAPI.DeleteProduct(ctx, s.Token, productID)
	release()
	if err != nil {
		c.logger.Warnf("%s: delete of product %d failed: %v", op, productID, err)
		return nil, e.Wrap(op, e.Collapse(e.ErrDeleteFailed, err))
	}

	c.recordAudit(ctx, domain.AuditProductDeleted, productID, s.ID, nil)

	return c.render(ctx, s), nil
}

// UploadImage сохраняет изображение в медиахранилище и подставляет его URL в форму.
func (c *ConsoleUseCase) UploadImage(ctx context.Context, req *UploadImageReq) (*ConsoleView, error) {
	const op = "ConsoleUseCase.UploadImage"

	s, err := c.loggedInSession(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := c.images.UploadImages(ctx, NewUploadImagesReq(imagesPrefix, []ProductImage{req.Image}))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(res.URLs) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	// Файл только что положен в хранилище, проверять его по сети не нужно.
	s.Form.SetImageURL(res.URLs[0])
	s.Form.ImageReachable = true
	if err := c.sessions.Save(ctx, s); err != nil {
		c.images.CleanupImages(res.ImagesKeys)
		return nil, e.Wrap(op, err)
	}

	return c.render(ctx, s), nil
}

func (c *ConsoleUseCase) loggedInSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.LoggedIn() {
		return nil, e.ErrNotLoggedIn
	}

	return s, nil
}

// acquirePending ставит флаг ожидания ответа; возвращённая функция снимает его.
func (c *ConsoleUseCase) acquirePending(ctx context.Context, sessionID string) (func(), error) {
	token, ok, err := c.sessions.AcquirePending(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, e.ErrRequestPending
	}

	return func() {
		if err := c.sessions.ReleasePending(context.WithoutCancel(ctx), sessionID, token); err != nil {
			c.logger.Warnf("failed to release pending flag for session %s: %v", sessionID, err)
		}
	}, nil
}

// render собирает представление. Товары и превью видны только вошедшему администратору;
// ошибка загрузки списка только логируется.
func (c *ConsoleUseCase) render(ctx context.Context, s *domain.Session) *ConsoleView {
	if !s.LoggedIn() {
		return NewConsoleView(s, nil, nil)
	}

	products, err := c.shopAPI.ListProducts(ctx, 0, c.listLimit)
	if err != nil {
		c.logger.Warnf("Fetch error: %v", err)
		products = []domain.Product{}
	}

	return NewConsoleView(s, products, preview(&s.Form))
}

// preview использует результат checkImage и сам в сеть не ходит.
func preview(form *domain.Form) *ImagePreview {
	if form.ImageURL == "" {
		return nil
	}

	if !form.ImageReachable {
		return &ImagePreview{URL: domain.FormPreviewPlaceholder, Placeholder: true}
	}

	return &ImagePreview{URL: form.ImageURL}
}

// checkImage проверяет картинку формы. Вызывается только при смене URL.
func (c *ConsoleUseCase) checkImage(ctx context.Context, form *domain.Form) {
	form.ImageReachable = form.ImageURL != "" && c.probe.Reachable(ctx, form.ImageURL)
}

// sendForm выполняет запрос формы к API и возвращает ID товара для аудита.
func (c *ConsoleUseCase) sendForm(ctx context.Context, s *domain.Session, payload *domain.ProductPayload) (int64, domain.AuditAction, error) {
	if s.Form.EditingID != nil {
		id := *s.Form.EditingID
		_, err := c.shopAPI.UpdateProduct(ctx, s.Token, id, payload)
		return id, domain.AuditProductUpdated, err
	}

	created, err := c.shopAPI.CreateProduct(ctx, s.Token, payload)
	if err != nil {
		return 0, domain.AuditProductCreated, err
	}

	return created.ID, domain.AuditProductCreated, nil
}

// upstreamError оставляет ошибки API, у которых есть свой вид, а сетевые сбои и таймауты
// сводит к e.ErrUpstreamStatus.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrInvalidUpstreamID),
		errors.Is(err, e.ErrUnauthorized),
		errors.Is(err, e.ErrUpstreamStatus):
		return err
	default:
		return e.Collapse(e.ErrUpstreamStatus, err)
	}
}

func (c *ConsoleUseCase) recordAudit(ctx context.Context, action domain.AuditAction, productID int64, sessionID string, payload *domain.ProductPayload) {
	event := domain.NewAuditEvent(c.newID(), action, productID, sessionID, payload, c.now().UTC())
	if err := c.audit.Record(ctx, event); err != nil {
		c.logger.Warnf("Failed to record audit event %s for product %d: %v", action, productID, err)
	}
}
