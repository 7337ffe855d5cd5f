package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"ratesboard/internal/domain"
)

type ExchangeRatesClient struct {
	http *http.Client
	url  string
}

type apiResponse struct {
	Rates *orderedRates `json:"rates"`
}

// orderedRates keeps the rates in response key order.
type orderedRates struct {
	list []domain.Rate
}

func (o *orderedRates) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: rates must be an object, got %v", domain.ErrMalformedPayload, tok)
	}

	list := make([]domain.Rate, 0, 64)
	for dec.More() {
		symbol, err := dec.Token()
		if err != nil {
			return err
		}
		var rate domain.Rate
		if err = dec.Decode(&rate); err != nil {
			return fmt.Errorf("rate %v: %w", symbol, err)
		}
		list = append(list, rate)
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	o.list = list
	return nil
}

// FetchRates performs a single GET and returns the rates in response order.
func (c *ExchangeRatesClient) FetchRates(ctx context.Context) ([]domain.Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute exchange rates request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status code %d: %s", domain.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedPayload, err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("%w: rates object is missing", domain.ErrMalformedPayload)
	}

	return body.Rates.list, nil
}

func NewExchangeRatesClient(httpClient *http.Client, url string) *ExchangeRatesClient {
	return &ExchangeRatesClient{http: httpClient, url: url}
}
