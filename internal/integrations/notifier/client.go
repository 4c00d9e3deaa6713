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
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом доставки уведомлений
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

// Send отправляет уведомление о событии записи
func (c *Client) Send(ctx context.Context, notification Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
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
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation
// Доставка уведомлений не критична для бронирования: при недоступности
// сервиса возвращается ErrServiceDegraded, операция с записью не ломается
func (c *Client) SendWithGracefulDegradation(ctx context.Context, notification Notification) error {
	c.log.Info("Sending %s notification for appointment id=%s", notification.Event, notification.Appointment.ID)

	if err := c.Send(ctx, notification); err != nil {
		c.log.Error("Notifier unavailable, applying graceful degradation for appointment id=%s: %v",
			notification.Appointment.ID, err)
		return fmt.Errorf("%w: appointment_id=%s, error=%v", ErrServiceDegraded, notification.Appointment.ID, err)
	}

	c.log.Info("Successfully sent %s notification for appointment id=%s", notification.Event, notification.Appointment.ID)
	return nil
}
