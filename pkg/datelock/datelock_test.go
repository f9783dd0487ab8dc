package datelock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	date := time.Date(2025, time.March, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "lock:booking:2025-03-04", Key("booking", date))
}

func TestNopLock(t *testing.T) {
	var l Locker = NopLock{}

	token, ok, err := l.Lock(context.Background(), "lock:booking:2025-03-04", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	assert.NoError(t, l.Unlock(context.Background(), "lock:booking:2025-03-04", token))
}
