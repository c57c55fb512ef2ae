package directoryservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника клиники (врачи, кабинеты, тарифы приёмов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctor получает врача по ID
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/doctors/%d", c.baseURL, doctorID)

	var doctor Doctor
	if err := c.getJSON(ctx, url, &doctor); err != nil {
		return nil, err
	}

	return &doctor, nil
}

// GetRoom получает кабинет по ID
func (c *Client) GetRoom(ctx context.Context, roomID int64) (*Room, error) {
	url := fmt.Sprintf("%s/internal/rooms/%d", c.baseURL, roomID)

	var room Room
	if err := c.getJSON(ctx, url, &room); err != nil {
		return nil, err
	}

	return &room, nil
}

// ResolveResourceName возвращает отображаемое имя ресурса для денормализации.
// Отсутствующий ресурс — всегда ошибка, никогда не пустое имя.
func (c *Client) ResolveResourceName(ctx context.Context, kind domain.ResourceKind, resourceID int64) (string, error) {
	switch kind {
	case domain.KindDoctor:
		doctor, err := c.GetDoctor(ctx, resourceID)
		if err != nil {
			return "", err
		}
		return doctor.FullName, nil
	case domain.KindRoom:
		room, err := c.GetRoom(ctx, resourceID)
		if err != nil {
			return "", err
		}
		return room.Name, nil
	default:
		return "", fmt.Errorf("%w: unknown resource kind %q", ErrInternal, kind)
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid resource ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return ErrResourceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
