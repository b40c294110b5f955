// Package hunter is a minimal client for the Hunter.io domain search API,
// used to discover contact email addresses for a company domain.
package hunter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://api.hunter.io/v2"

var (
	ErrInvalidKey    = errors.New("hunter: invalid API key")
	ErrQuotaExceeded = errors.New("hunter: quota exceeded")
	ErrUnavailable   = errors.New("hunter: service unavailable")
	ErrTimeout       = errors.New("hunter: request timed out")
)

// Email is a single discovered address from a domain search.
type Email struct {
	Value      string `json:"value"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Position   string `json:"position"`
	Confidence int    `json:"confidence"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithBaseURL is used by tests to point the client at a local server.
func NewWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	c := New(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type domainSearchResponse struct {
	Data struct {
		Domain string  `json:"domain"`
		Emails []Email `json:"emails"`
	} `json:"data"`
}

// DomainSearch returns the email addresses Hunter.io knows for a domain,
// at most limit entries.
func (c *Client) DomainSearch(ctx context.Context, domain string, limit int) ([]Email, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("api_key", c.apiKey)
	q.Set("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domain-search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, ErrUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidKey
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out domainSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return out.Data.Emails, nil
}
