package fonnte

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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

// Client клиент для работы с WhatsApp шлюзом Fonnte (https://api.fonnte.com/send).
// Токен передается в заголовке Authorization, тело - form-encoded target/message.
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Fonnte
func NewClient(apiURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет сообщение в группу/чат target.
// Шлюз отвечает {status: bool, reason?: string}; status=false считается
// отказом в доставке и возвращается как ErrSendRejected.
func (c *Client) Send(ctx context.Context, target, message string) error {
	form := url.Values{}
	form.Set("target", target)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Status {
		reason := result.Reason
		if reason == "" {
			reason = "no reason given"
		}
		return fmt.Errorf("%w: %s", ErrSendRejected, reason)
	}

	return nil
}
