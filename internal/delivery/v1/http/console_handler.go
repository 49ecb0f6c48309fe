package http

import (
	"net/http"

	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// LoginRequest — поля формы входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// UpdateFormRequest — изменения полей формы товара; отсутствующие поля не меняются.
type UpdateFormRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Price       *string `json:"price" validate:"omitempty,max=19"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=2048"`
}

type ConsoleHandler struct {
	consoleUsecase usecase.ConsoleUC
	validate       *validator.Validate
	logger         logger.Logger
}

func NewConsoleHandler(consoleUsecase usecase.ConsoleUC, logger logger.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		consoleUsecase: consoleUsecase,
		validate:       newValidator(),
		logger:         logger,
	}
}

// getConsole
//
//	@Summary		Состояние консоли
//	@Description	Флаг входа, форма с превью и список товаров (только после входа)
//	@Tags			console
//	@Produce		json
//	@Success		200	{object}	ConsoleViewResponse
//	@Router			/console [get]
func (h *ConsoleHandler) getConsole(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleUsecase.View(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

// login
//
//	@Summary		Вход администратора
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Email и пароль"
//	@Success		200		{object}	ConsoleViewResponse
//	@Failure		400		{object}	ErrorResponse	"Не заполнены поля"
//	@Failure		401		{object}	ErrorResponse	"Error: unauthorized"
//	@Router			/session/login [post]
func (h *ConsoleHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.bind(w, r, &req) {
		return
	}

	view, err := h.consoleUsecase.Login(r.Context(), &usecase.LoginReq{
		SessionID: sessionFromCtx(r.Context()),
		Email:     req.Email,
		Password:  req.Password,
	})
	h.respond(w, view, err)
}

// logout
//
//	@Summary	Выход администратора
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	ConsoleViewResponse
//	@Router		/session/logout [post]
func (h *ConsoleHandler) logout(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleUsecase.Logout(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

// updateForm
//
//	@Summary		Изменение полей формы товара
//	@Description	Цена принимает только цифры; отклонённые значения возвращаются в rejected
//	@Tags			form
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateFormRequest	true	"Поля формы"
//	@Success		200		{object}	ConsoleViewResponse
//	@Failure		401		{object}	ErrorResponse	"Authorized users only"
//	@Router			/form [put]
func (h *ConsoleHandler) updateForm(w http.ResponseWriter, r *http.Request) {
	var req UpdateFormRequest
	if !h.bind(w, r, &req) {
		return
	}

	res, err := h.consoleUsecase.UpdateForm(r.Context(), &usecase.UpdateFormReq{
		SessionID:   sessionFromCtx(r.Context()),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	resp := toConsoleViewResponse(res.View)
	if len(res.Rejected) > 0 {
		resp.Rejected = res.Rejected
	}
	WriteSuccess(w, http.StatusOK, resp)
}

// startEdit
//
//	@Summary	Редактирование товара
//	@Tags		form
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ConsoleViewResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/form/edit/{id} [post]
func (h *ConsoleHandler) startEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	view, err := h.consoleUsecase.StartEdit(r.Context(), sessionFromCtx(r.Context()), id)
	h.respond(w, view, err)
}

// cancelEdit
//
//	@Summary	Отмена редактирования
//	@Tags		form
//	@Produce	json
//	@Success	200	{object}	ConsoleViewResponse
//	@Router		/form/cancel [post]
func (h *ConsoleHandler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleUsecase.CancelEdit(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

// submitForm
//
//	@Summary		Отправка формы
//	@Description	В режиме редактирования PUT, иначе POST; после успеха список перечитывается
//	@Tags			form
//	@Produce		json
//	@Success		200	{object}	ConsoleViewResponse
//	@Failure		400	{object}	ErrorResponse	"Price must be a positive integer"
//	@Failure		409	{object}	ErrorResponse	"Запрос уже выполняется"
//	@Failure		502	{object}	ErrorResponse	"Data transmission error"
//	@Router			/form/submit [post]
func (h *ConsoleHandler) submitForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleUsecase.Submit(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ConsoleViewResponse
//	@Failure	502	{object}	ErrorResponse	"Failed to delete: no access or server error"
//	@Router		/products/{id} [delete]
func (h *ConsoleHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	view, err := h.consoleUsecase.Delete(r.Context(), sessionFromCtx(r.Context()), id)
	h.respond(w, view, err)
}

// uploadImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Сохраняет изображение в медиахранилище и подставляет его URL в форму
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Изображение (JPEG, PNG, WebP, GIF, до 15 МБ)"
//	@Success		200		{object}	ConsoleViewResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/media/images [post]
func (h *ConsoleHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = maxImageSize + 1<<20
		maxMemory           = 16 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)
	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.fail(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm.File["image"])
	if err != nil {
		h.fail(w, err)
		return
	}

	view, err := h.consoleUsecase.UploadImage(r.Context(), &usecase.UploadImageReq{
		SessionID: sessionFromCtx(r.Context()),
		Image:     *image,
	})
	h.respond(w, view, err)
}

// bind декодирует и валидирует тело запроса. false означает, что ответ уже записан.
func (h *ConsoleHandler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		h.fail(w, err)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		fields := FromValidationError(err)
		h.logger.Debugf("%s %s: validation failed: %v", r.Method, r.URL.Path, fields)
		WriteValidationError(w, fields)
		return false
	}

	return true
}

func (h *ConsoleHandler) respond(w http.ResponseWriter, view *usecase.ConsoleView, err error) {
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toConsoleViewResponse(view))
}

func (h *ConsoleHandler) fail(w http.ResponseWriter, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		h.logger.Errorf(err, "request failed")
	} else {
		h.logger.Warnf("%d: %v", code, err)
	}

	WriteError(w, err)
}
