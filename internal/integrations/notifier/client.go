package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// Client клиент webhook сервиса уведомлений (email/SMS рассылает внешний сервис)
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingCreated отправляет событие о новом бронировании
func (c *Client) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	body, err := json.Marshal(newBookingEvent(eventBookingCreated, booking))
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/events/bookings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyBookingCreated отправляет событие без возврата ошибки
// Бронирование уже сохранено, сбой уведомления только логируется
func (c *Client) NotifyBookingCreated(ctx context.Context, booking *domain.Booking) {
	if err := c.BookingCreated(ctx, booking); err != nil {
		c.log.Error("Notifier unavailable, booking id=%d was not announced: %v", booking.ID, err)
		return
	}
	c.log.Info("Booking id=%d announced to notifier", booking.ID)
}

// Nop notifier, который ничего не отправляет (уведомления выключены)
type Nop struct{}

func (Nop) NotifyBookingCreated(context.Context, *domain.Booking) {}
