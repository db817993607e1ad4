package stockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the central stock service. Business code never uses it
// directly; the stock service adapter in internal/services converts its
// errors into availability booleans.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type QuantityResponse struct {
	Quantity int `json:"quantity"`
}

type AdjustRequest struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	ID       uint   `json:"id"`
	Delta    int    `json:"delta"`
	Reason   string `json:"reason"`
}

type AdjustResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetQuantity returns the on-hand quantity of one item at one location.
func (c *Client) GetQuantity(location, itemType string, itemID uint) (int, error) {
	url := fmt.Sprintf("%s/stock/%s/item?type=%s&id=%d", c.BaseURL, location, itemType, itemID)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to query stock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("stock service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read stock response: %w", err)
	}

	var response QuantityResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("failed to parse stock response: %w", err)
	}

	return response.Quantity, nil
}

// Adjust applies a signed delta to an item's quantity. Negative deltas
// debit, positive deltas credit.
func (c *Client) Adjust(location, itemType string, itemID uint, delta int, reason string) error {
	requestData := AdjustRequest{
		Location: location,
		Type:     itemType,
		ID:       itemID,
		Delta:    delta,
		Reason:   reason,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal adjust request: %w", err)
	}

	url := fmt.Sprintf("%s/stock/adjust", c.BaseURL)
	resp, err := c.HTTPClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send adjust request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read adjust response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stock service returned status %d", resp.StatusCode)
	}

	var response AdjustResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse adjust response: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("stock adjustment rejected: %s", response.Message)
	}

	return nil
}
