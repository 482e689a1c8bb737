package formservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с FormService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FormService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IsEventAvailableOnForm проверяет, доступно ли вхождение события для
// бронирования через указанную форму
func (c *Client) IsEventAvailableOnForm(ctx context.Context, formID int64, picked domain.PickedEvent) (bool, error) {
	query := url.Values{}
	query.Set("event_id", strconv.FormatInt(picked.ID, 10))
	query.Set("event_start", picked.Start.String())
	query.Set("event_end", picked.End.String())
	if picked.GroupID > 0 {
		query.Set("group_id", strconv.FormatInt(picked.GroupID, 10))
	}

	endpoint := fmt.Sprintf("%s/internal/forms/%d/availability?%s", c.baseURL, formID, query.Encode())

	var result AvailabilityResponse
	if err := c.get(ctx, endpoint, ErrFormNotFound, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

// GetForm получает форму бронирования по ID
func (c *Client) GetForm(ctx context.Context, formID int64) (*Form, error) {
	endpoint := fmt.Sprintf("%s/internal/forms/%d", c.baseURL, formID)

	var result Form
	if err := c.get(ctx, endpoint, ErrFormNotFound, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetManagedCalendarIDs получает список ID календарей, которыми управляет пользователь
func (c *Client) GetManagedCalendarIDs(ctx context.Context, userID int64) ([]int64, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%d/calendars", c.baseURL, userID)

	var result ManagedCalendarsResponse
	if err := c.get(ctx, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return result.CalendarIDs, nil
}

func (c *Client) get(ctx context.Context, endpoint string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
