package simal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client notifies the SimAL scheduling system of order status changes.
// Schedule bookkeeping is secondary to the order's own state, so callers
// log and swallow any error from this client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// UpdateStatus posts the new status of a scheduled order.
func (c *Client) UpdateStatus(orderNumber, status string) error {
	requestData := StatusUpdateRequest{Status: status}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	url := fmt.Sprintf("%s/scheduled-order/%s/status", c.BaseURL, orderNumber)
	resp, err := c.HTTPClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to notify scheduler: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scheduler returned status %d", resp.StatusCode)
	}

	return nil
}
