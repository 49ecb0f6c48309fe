package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/logger"
)

type sessionKey struct{}

// SessionMiddleware привязывает запрос к сессии консоли по cookie.
// Неизвестная или истёкшая сессия заменяется новой. Cookie перевыставляется на каждом
// запросе: OpenSession продлевает TTL сессии, и срок cookie сдвигается вместе с ним.
func SessionMiddleware(uc usecase.ConsoleUC, cfg *cfg.SessionCfg, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				current = c.Value
			}

			sessionID, err := uc.OpenSession(r.Context(), current)
			if err != nil {
				logger.Errorf(err, "failed to open console session")
				WriteError(w, err)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID)))
		})
	}
}

// sessionFromCtx возвращает ID сессии, выставленный SessionMiddleware.
func sessionFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
