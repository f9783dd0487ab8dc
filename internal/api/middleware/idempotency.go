package middleware

import (
	"bytes"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	maxIdempotentBody = 1 << 20

	msgIdempotencyKeyReused = "Idempotency-Key уже использован с другим телом запроса"
)

type cachedResponse struct {
	bodyHash [sha256.Size]byte
	status   int
	headers  http.Header
	body     []byte
}

// Idempotency повторяет сохраненный ответ для запроса с уже виденным Idempotency-Key
// Сохраняются только успешные (2xx) ответы. Ключ с другим телом запроса отклоняется с 422
func Idempotency(store *cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderIdempotencyKey)
			if key == "" || r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			var payload []byte
			if r.Body != nil {
				read, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentBody))
				if err != nil {
					handlers.RespondBadRequest(w, "не удалось прочитать тело запроса")
					return
				}
				payload = read
				// остаток сверх лимита отдаем обработчику как есть
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(payload), r.Body))
			}
			bodyHash := sha256.Sum256(payload)

			cacheKey := r.Method + " " + r.URL.Path + " " + key
			if stored, found := store.Get(cacheKey); found {
				cached := stored.(cachedResponse)
				if cached.bodyHash != bodyHash {
					handlers.RespondUnprocessable(w, msgIdempotencyKeyReused)
					return
				}
				for k, v := range cached.headers {
					w.Header()[k] = v
				}
				w.Header().Set(HeaderReplayed, "true")
				w.WriteHeader(cached.status)
				_, _ = w.Write(cached.body)
				return
			}

			bw := &bodyWriter{statusWriter: newStatusWriter(w), body: bytes.NewBuffer(nil)}
			next.ServeHTTP(bw, r)

			if bw.status >= 200 && bw.status < 300 {
				store.Set(cacheKey, cachedResponse{
					bodyHash: bodyHash,
					status:   bw.status,
					headers:  bw.Header().Clone(),
					body:     bw.body.Bytes(),
				}, ttl)
			}
		})
	}
}
