package masterdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client reads product composition data from the master-data service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Component struct {
	ModuleID uint `json:"moduleId"`
	PartID   uint `json:"partId"`
	Qty      int  `json:"qty"`
}

type NameResponse struct {
	Name string `json:"name"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProductModules returns the per-unit module composition of a product.
// An empty list is a valid answer here; callers decide whether that is an
// error.
func (c *Client) GetProductModules(productID uint) ([]Component, error) {
	url := fmt.Sprintf("%s/product/%d/modules", c.BaseURL, productID)
	return c.getComponents(url)
}

// GetModuleParts returns the per-unit part composition of a module.
func (c *Client) GetModuleParts(moduleID uint) ([]Component, error) {
	url := fmt.Sprintf("%s/module/%d/parts", c.BaseURL, moduleID)
	return c.getComponents(url)
}

func (c *Client) getComponents(url string) ([]Component, error) {
	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to query master data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("master-data service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read master-data response: %w", err)
	}

	var components []Component
	if err := json.Unmarshal(body, &components); err != nil {
		return nil, fmt.Errorf("failed to parse master-data response: %w", err)
	}

	return components, nil
}

// GetName looks up the display name of an item. Name lookups are
// cosmetic, so any failure degrades to a synthetic "{type}#{id}" label
// instead of an error.
func (c *Client) GetName(category string, itemID uint) string {
	url := fmt.Sprintf("%s/%s/%d", c.BaseURL, category, itemID)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return fmt.Sprintf("%s#%d", category, itemID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("%s#%d", category, itemID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("%s#%d", category, itemID)
	}

	var response NameResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Name == "" {
		return fmt.Sprintf("%s#%d", category, itemID)
	}

	return response.Name
}
