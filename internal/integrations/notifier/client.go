package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с сервисом уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) publish(ctx context.Context, event BookingEvent) error {
	url := fmt.Sprintf("%s/internal/events/bookings", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// PublishBookingEvent отправляет событие записи с graceful degradation.
// При недоступности сервиса уведомлений возвращает ErrServiceDegraded:
// событие теряется, но вызывающая сторона не должна откатывать операцию
func (c *Client) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	c.log.Info("Publishing booking event booking_id=%d status=%s", event.BookingID, event.Status)

	if err := c.publish(ctx, event); err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Notifier unavailable, applying graceful degradation for booking_id=%d: %v", event.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, event.BookingID, err)
	}

	c.log.Info("Successfully published booking event booking_id=%d", event.BookingID)
	return nil
}

// NoopClient заглушка на случай, когда сервис уведомлений выключен в конфигурации
type NoopClient struct{}

// PublishBookingEvent ничего не отправляет
func (NoopClient) PublishBookingEvent(_ context.Context, _ BookingEvent) error {
	return nil
}
