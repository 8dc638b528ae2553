package aviationstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/travelbook/flightbooking/internal/domain"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the aviationstack flights endpoint.
type Client struct {
	client    httpClient
	serverURL url.URL
	accessKey string
	limit     int
}

func NewClient(client httpClient, serverURL url.URL, accessKey string, limit int) *Client {
	return &Client{
		client:    client,
		serverURL: serverURL,
		accessKey: accessKey,
		limit:     limit,
	}
}

type errorEnvelope struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// SearchFlights returns the provider's response body unchanged. A provider
// error payload is reported as *domain.UpstreamError.
func (c *Client) SearchFlights(ctx context.Context, q domain.FlightQuery) ([]byte, error) {
	searchURL := c.serverURL.JoinPath("flights")
	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("dep_iata", q.DepartureIATA)
	params.Set("arr_iata", q.ArrivalIATA)
	params.Set("limit", strconv.Itoa(c.limit))
	searchURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build flights request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flights request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read flights response: %w", err)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode flights response (status %d): %w", resp.StatusCode, err)
	}
	if envelope.Error != nil {
		return nil, &domain.UpstreamError{Info: envelope.Error.Info}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flights provider returned status %d", resp.StatusCode)
	}
	return body, nil
}
