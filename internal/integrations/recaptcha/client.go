// Package recaptcha клиент проверки токенов reCAPTCHA
// Для ядра бронирования это оракул: любой неуспех или низкий score -
// жесткий отказ до какой-либо обработки запроса
package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса верификации токенов
type Client struct {
	verifyURL  string
	minScore   float64
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента верификации
func NewClient(verifyURL string, minScore float64, timeout time.Duration, log Logger) *Client {
	return &Client{
		verifyURL: verifyURL,
		minScore:  minScore,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Verify проверяет клиентский токен
// Возвращает nil только при успешной верификации со score не ниже порога,
// иначе ErrRejected. Сетевые ошибки и некорректные ответы тоже трактуются
// как отказ: бронирование без подтверждённой проверки не продолжается
func (c *Client) Verify(ctx context.Context, secret, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Recaptcha: verification request failed: %v", err)
		return fmt.Errorf("%w: request failed: %v", ErrRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("Recaptcha: unexpected status code %d", resp.StatusCode)
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Success {
		c.log.Warn("Recaptcha: verification unsuccessful, error codes: %v", result.ErrorCodes)
		return fmt.Errorf("%w: error codes %v", ErrRejected, result.ErrorCodes)
	}

	if result.Score < c.minScore {
		c.log.Warn("Recaptcha: score %.2f below threshold %.2f", result.Score, c.minScore)
		return fmt.Errorf("%w: score %.2f below threshold", ErrRejected, result.Score)
	}

	return nil
}
