package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pizza-ordering/internal/util"
)

// Client resolves (name, size) pairs to catalog identifiers by calling
// the catalog service. Every call is bounded by the client timeout; a
// failure is surfaced, never substituted with a default or cached value.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog lookup client with a bounded request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type resolveResponse struct {
	PizzaID string `json:"pizza_id"`
}

// Resolve calls the catalog service to translate a (name, size) pair into
// a pizza identifier. A non-success response maps to ErrPizzaNotFound; a
// transport failure or timeout maps to ErrCatalogUnavailable.
func (c *Client) Resolve(ctx context.Context, name, size string) (string, error) {
	ctx, span := util.StartSpan(ctx, "CatalogClient.Resolve")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CatalogResolveLatency.Observe(time.Since(start).Seconds())
	}()

	form := url.Values{}
	form.Set("name", name)
	form.Set("size", size)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/menu/get_pizza_id/", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.CatalogResolveFailed.WithLabelValues("unreachable").Inc()
		return "", &LookupError{Name: name, Size: size, Unavailable: true, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.CatalogResolveFailed.WithLabelValues("not_found").Inc()
		return "", &LookupError{Name: name, Size: size}
	}

	var body resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		util.CatalogResolveFailed.WithLabelValues("bad_response").Inc()
		return "", &LookupError{Name: name, Size: size, Unavailable: true, cause: err}
	}
	if body.PizzaID == "" {
		util.CatalogResolveFailed.WithLabelValues("not_found").Inc()
		return "", &LookupError{Name: name, Size: size}
	}

	return body.PizzaID, nil
}

// LookupError reports a failed resolution of one line. Unavailable
// distinguishes a catalog outage from a plain miss.
type LookupError struct {
	Name        string
	Size        string
	Unavailable bool
	cause       error
}

func (e *LookupError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("catalog unavailable resolving %s %s: %v", e.Size, e.Name, e.cause)
	}
	return fmt.Sprintf("no pizza found for %s %s", e.Size, e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.cause
}
