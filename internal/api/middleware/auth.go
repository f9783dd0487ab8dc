package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
)

const (
	HeaderAdminToken = "X-Admin-Token"

	msgUnauthorized = "требуется токен администратора"
)

type adminKey struct{}

// DetectAdmin помечает запрос как административный при верном X-Admin-Token
// Запросы без токена пропускаются как публичные
func DetectAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validToken(token, r.Header.Get(HeaderAdminToken)) {
				r = r.WithContext(context.WithValue(r.Context(), adminKey{}, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только запросы с верным X-Admin-Token
func RequireAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validToken(token, r.Header.Get(HeaderAdminToken)) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, true)))
		})
	}
}

// IsAdmin true, если запрос прошел проверку токена администратора
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey{}).(bool)
	return admin
}

// Пустой настроенный токен отключает администраторский доступ
func validToken(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
