package controller

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// authMiddleware проверяет сессионный токен и кладёт сессию в контекст
func (c *Controller) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, ErrMissingToken.Error())
			return
		}
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		sess, err := ParseSessionToken(token, c.sessionCfg)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// loggingMiddleware пишет строку лога на каждый запрос
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
