package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	skyscannerBaseURL = "https://skyscanner-skyscanner-flight-search-v1.p.rapidapi.com"
	skyscannerHost    = "skyscanner-skyscanner-flight-search-v1.p.rapidapi.com"
	skyscannerTimeout = 10 * time.Second
)

// SkyscannerClient queries the Skyscanner browse-quotes API via RapidAPI.
// It is the flight fallback when Amadeus fails.
type SkyscannerClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSkyscannerClient creates a client with the given RapidAPI key. An
// empty key produces a client whose calls fail with ErrNotConfigured.
func NewSkyscannerClient(apiKey string) *SkyscannerClient {
	return &SkyscannerClient{
		apiKey:  apiKey,
		baseURL: skyscannerBaseURL,
		httpClient: &http.Client{
			Timeout: skyscannerTimeout,
		},
	}
}

// NewSkyscannerClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewSkyscannerClientWithBaseURL(apiKey, baseURL string) *SkyscannerClient {
	c := NewSkyscannerClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type skyscannerQuotesResponse struct {
	Quotes []struct {
		MinPrice float64 `json:"MinPrice"`
	} `json:"Quotes"`
}

// FlightPrice returns the cheapest browse quote for the requested route.
func (c *SkyscannerClient) FlightPrice(ctx context.Context, req FlightRequest) (Pricing, error) {
	if c.apiKey == "" {
		return Pricing{}, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/apiservices/browsequotes/v1.0/US/USD/en-US/%s/%s/%s",
		c.baseURL, req.Origin, req.Destination, req.DepartureDate)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Pricing{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", skyscannerHost)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Pricing{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Pricing{}, fmt.Errorf("skyscanner returned HTTP %d", resp.StatusCode)
	}

	var quotes skyscannerQuotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return Pricing{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(quotes.Quotes) == 0 {
		return Pricing{}, fmt.Errorf("skyscanner returned no quotes")
	}

	return Pricing{
		Price:    int(quotes.Quotes[0].MinPrice),
		Currency: "USD",
		Provider: "Skyscanner",
	}, nil
}
