package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	amadeusBaseURL = "https://api.amadeus.com/v2"
	amadeusTimeout = 10 * time.Second
)

// AmadeusClient queries the Amadeus flight-offers API.
type AmadeusClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAmadeusClient creates a client with the given API key. An empty key
// produces a client whose calls fail with ErrNotConfigured.
func NewAmadeusClient(apiKey string) *AmadeusClient {
	return &AmadeusClient{
		apiKey:  apiKey,
		baseURL: amadeusBaseURL,
		httpClient: &http.Client{
			Timeout: amadeusTimeout,
		},
	}
}

// NewAmadeusClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewAmadeusClientWithBaseURL(apiKey, baseURL string) *AmadeusClient {
	c := NewAmadeusClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type amadeusOffersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// FlightPrice returns the cheapest offer for the requested route.
func (c *AmadeusClient) FlightPrice(ctx context.Context, req FlightRequest) (Pricing, error) {
	if c.apiKey == "" {
		return Pricing{}, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("originLocationCode", req.Origin)
	params.Set("destinationLocationCode", req.Destination)
	params.Set("departureDate", req.DepartureDate)
	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(req.Passengers))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return Pricing{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Pricing{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Pricing{}, fmt.Errorf("amadeus returned HTTP %d", resp.StatusCode)
	}

	var offers amadeusOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return Pricing{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(offers.Data) == 0 {
		return Pricing{}, fmt.Errorf("amadeus returned no offers")
	}

	total, err := strconv.ParseFloat(offers.Data[0].Price.Total, 64)
	if err != nil {
		return Pricing{}, fmt.Errorf("parsing offer total %q: %w", offers.Data[0].Price.Total, err)
	}
	return Pricing{
		Price:    int(math.Round(total)),
		Currency: offers.Data[0].Price.Currency,
		Provider: "Amadeus",
	}, nil
}
