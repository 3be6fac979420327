package salesquery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sale mirrors the canonical record shape the API returns.
type Sale struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`

	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	ProductCategory string   `json:"productCategory"`
	Tags            []string `json:"tags"`

	Quantity           int     `json:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalAmount        float64 `json:"totalAmount"`
	FinalAmount        float64 `json:"finalAmount"`

	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	OrderStatus   string    `json:"orderStatus"`
	DeliveryType  string    `json:"deliveryType"`
	StoreID       string    `json:"storeId"`
	StoreLocation string    `json:"storeLocation"`
	SalespersonID string    `json:"salespersonId"`
	EmployeeName  string    `json:"employeeName"`
}

type Stats struct {
	TotalUnitsSold int64   `json:"totalUnitsSold"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalDiscount  float64 `json:"totalDiscount"`
}

type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

// SalesResult is the full payload of GET /api/sales.
type SalesResult struct {
	Success    bool       `json:"success"`
	Data       []Sale     `json:"data"`
	Stats      Stats      `json:"stats"`
	Pagination Pagination `json:"pagination"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type FilterOptions struct {
	Regions           []string `json:"regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	PaymentMethods    []string `json:"paymentMethods"`
	Tags              []string `json:"tags"`
	AgeRange          AgeRange `json:"ageRange"`
}

type filterOptionsResult struct {
	Success bool          `json:"success"`
	Filters FilterOptions `json:"filters"`
}

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Client consumes the sales API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the API at baseURL (for example
// "http://localhost:5000/api").
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchSales requests the page described by state.
func (c *Client) FetchSales(ctx context.Context, state State) (*SalesResult, error) {
	var result SalesResult
	if err := c.get(ctx, "/sales?"+state.Values().Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchFilterOptions requests the distinct filter values.
func (c *Client) FetchFilterOptions(ctx context.Context) (*FilterOptions, error) {
	var result filterOptionsResult
	if err := c.get(ctx, "/sales/filters/options", &result); err != nil {
		return nil, err
	}
	return &result.Filters, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("api error: %s", apiErr.Error)
		}
		return fmt.Errorf("http error %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
