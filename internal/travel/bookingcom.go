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
	bookingBaseURL = "https://booking-com.p.rapidapi.com/v1"
	bookingHost    = "booking-com.p.rapidapi.com"
	bookingTimeout = 10 * time.Second
)

// BookingClient queries the Booking.com hotel search API via RapidAPI.
type BookingClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBookingClient creates a client with the given RapidAPI key. An empty
// key produces a client whose calls fail with ErrNotConfigured.
func NewBookingClient(apiKey string) *BookingClient {
	return &BookingClient{
		apiKey:  apiKey,
		baseURL: bookingBaseURL,
		httpClient: &http.Client{
			Timeout: bookingTimeout,
		},
	}
}

// NewBookingClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewBookingClientWithBaseURL(apiKey, baseURL string) *BookingClient {
	c := NewBookingClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type bookingSearchResponse struct {
	Result []struct {
		MinTotalPrice float64 `json:"min_total_price"`
	} `json:"result"`
}

// HotelPrice returns the most popular hotel's total price for the stay.
func (c *BookingClient) HotelPrice(ctx context.Context, req HotelRequest) (Pricing, error) {
	if c.apiKey == "" {
		return Pricing{}, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("dest_type", "city")
	params.Set("dest_id", req.Location)
	params.Set("checkin_date", req.CheckIn)
	params.Set("checkout_date", req.CheckOut)
	params.Set("adults_number", strconv.Itoa(req.Guests))
	params.Set("order_by", "popularity")
	params.Set("filter_by_currency", "USD")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/hotels/search?"+params.Encode(), nil)
	if err != nil {
		return Pricing{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", bookingHost)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Pricing{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Pricing{}, fmt.Errorf("booking.com returned HTTP %d", resp.StatusCode)
	}

	var search bookingSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return Pricing{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(search.Result) == 0 {
		return Pricing{}, fmt.Errorf("booking.com returned no hotels")
	}

	return Pricing{
		Price:    int(math.Round(search.Result[0].MinTotalPrice)),
		Currency: "USD",
		Provider: "Booking.com",
	}, nil
}
