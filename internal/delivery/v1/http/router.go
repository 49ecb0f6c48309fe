package http

import (
	"net/http"

	_ "github.com/DRSN-tech/shop-console/docs" // регистрация swagger-документа
	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(consoleUC usecase.ConsoleUC, httpCfg *cfg.HTTPConfig, sessionCfg *cfg.SessionCfg) {
	r.router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(httpCfg.SwaggerURL),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(SessionMiddleware(consoleUC, sessionCfg, r.logger))
		registerConsoleRoutes(v1, NewConsoleHandler(consoleUC, r.logger))
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func registerConsoleRoutes(router chi.Router, h *ConsoleHandler) {
	router.Get("/console", h.getConsole)

	router.Route("/session", func(s chi.Router) {
		s.Post("/login", h.login)
		s.Post("/logout", h.logout)
	})

	router.Route("/form", func(f chi.Router) {
		f.Put("/", h.updateForm)
		f.Post("/edit/{id}", h.startEdit)
		f.Post("/cancel", h.cancelEdit)
		f.Post("/submit", h.submitForm)
	})

	router.Delete("/products/{id}", h.deleteProduct)
	router.Post("/media/images", h.uploadImage)
}
