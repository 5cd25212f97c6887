package trainerservice

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

// Client клиент для работы с TrainerService (профили и ставки тренеров)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TrainerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTrainer получает профиль тренера по ID
func (c *Client) GetTrainer(ctx context.Context, trainerID int64) (*Trainer, error) {
	url := fmt.Sprintf("%s/internal/trainers/%d", c.baseURL, trainerID)

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

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid trainer ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrTrainerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var trainer Trainer
	if err := json.NewDecoder(resp.Body).Decode(&trainer); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &trainer, nil
}

// GetTrainerRate получает текущую ставку тренера
// Вызывается один раз при оформлении корзины: цена фиксируется на момент
// бронирования и далее не пересчитывается
func (c *Client) GetTrainerRate(ctx context.Context, trainerID int64) (int64, error) {
	trainer, err := c.GetTrainer(ctx, trainerID)
	if err != nil {
		return 0, err
	}
	return trainer.HourlyRate, nil
}

// GetTrainerWithGracefulDegradation получает профиль тренера с graceful degradation
// При недоступности TrainerService возвращает ErrServiceDegraded:
// вызывающий код решает, можно ли продолжить без профиля
func (c *Client) GetTrainerWithGracefulDegradation(ctx context.Context, trainerID int64) (*Trainer, error) {
	c.log.Info("Fetching trainer profile for trainer_id=%d", trainerID)

	trainer, err := c.GetTrainer(ctx, trainerID)
	if err != nil {
		// Бизнес-ошибку пробрасываем дальше
		if errors.Is(err, ErrTrainerNotFound) {
			c.log.Info("Trainer id=%d not found", trainerID)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("TrainerService unavailable, applying graceful degradation for trainer_id=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: trainer_id=%d, error=%v", ErrServiceDegraded, trainerID, err)
	}

	c.log.Info("Successfully fetched trainer id=%d, rate=%d", trainerID, trainer.HourlyRate)
	return trainer, nil
}
