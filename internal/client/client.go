package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient
}

func NewClient(client HTTPClient) *Client {
	return &Client{
		httpClient: client,
	}
}

// PushDiscount - доставка новой скидки агенту 1С магазина.
// Одна ограниченная по времени попытка, без повторов: агент в любом случае
// заберёт скидку очередным опросом.
func (c *Client) PushDiscount(ctx context.Context, agentURL string, discount DiscountNotice) error {
	body, err := json.Marshal(discount)
	if err != nil {
		return err
	}

	url := agentURL + "/api/discounts"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return HandleErrorResponse(resp)
	}

	return nil
}

func HandleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	default:
		return ErrAgentUnavailable
	}
}
