package datelock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotOwner возвращается при попытке снять лок, который уже истек или принадлежит другому
var ErrNotOwner = errors.New("datelock: lock is not held by this token")

// Locker эксклюзивный лок по ключу с TTL
type Locker interface {
	// Lock возвращает токен владельца и ok=false, если лок занят
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key string, token string) error
}

// Key формирует ключ лока для даты
func Key(scope string, date time.Time) string {
	return fmt.Sprintf("lock:%s:%s", scope, date.Format("2006-01-02"))
}

// unlockScript удаляет ключ только если значение совпадает с токеном
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock реализация Locker поверх redis SET NX
type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(addr, password string, db int) (*RedisLock, error) {
	const op = "datelock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client}, nil
}

func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	const op = "datelock.RedisLock.Lock"

	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

func (r *RedisLock) Unlock(ctx context.Context, key string, token string) error {
	const op = "datelock.RedisLock.Unlock"

	deleted, err := unlockScript.Run(ctx, r.client, []string{key}, token).Int()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}

// NopLock всегда выдает лок. Используется, когда redis выключен
type NopLock struct{}

func (NopLock) Lock(context.Context, string, time.Duration) (string, bool, error) {
	return "nop", true, nil
}

func (NopLock) Unlock(context.Context, string, string) error {
	return nil
}
