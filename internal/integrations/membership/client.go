package membership

import (
	"context"
	"encoding/json"
	"errors"
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

// Client клиент для работы с MembershipService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента MembershipService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDiscount получает процент скидки участника программы лояльности
func (c *Client) GetDiscount(ctx context.Context, userID int64) (*Discount, error) {
	url := fmt.Sprintf("%s/internal/members/%d/discount", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrMemberNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var discount Discount
	if err := json.NewDecoder(resp.Body).Decode(&discount); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if discount.DiscountPercentage < 0 || discount.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage %.2f out of range", ErrInvalidResponse, discount.DiscountPercentage)
	}

	return &discount, nil
}

// GetDiscountWithGracefulDegradation получает скидку с graceful degradation.
// Пользователь вне программы лояльности и недоступность сервиса дают одинаковый
// результат для вызывающего кода: скидка не применяется. Но недоступность
// логируется как ошибка и возвращается отдельной ошибкой ErrServiceDegraded.
func (c *Client) GetDiscountWithGracefulDegradation(ctx context.Context, userID int64) (*Discount, error) {
	c.log.Info("Fetching membership discount for user_id=%d", userID)

	discount, err := c.GetDiscount(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.log.Info("User id=%d is not a member, no discount", userID)
			return nil, err
		}

		c.log.Error("MembershipService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched discount for user_id=%d: %.1f%%", userID, discount.DiscountPercentage)
	return discount, nil
}

// DisabledClient используется, когда интеграция выключена в конфигурации.
// Ведет себя как сервис, в котором никто не состоит: скидки нет
type DisabledClient struct{}

// GetDiscountWithGracefulDegradation всегда возвращает ErrMemberNotFound
func (DisabledClient) GetDiscountWithGracefulDegradation(_ context.Context, _ int64) (*Discount, error) {
	return nil, ErrMemberNotFound
}
