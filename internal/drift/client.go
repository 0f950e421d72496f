// Package drift is the boundary to the protocol client. It talks to a Drift
// data gateway over HTTP and converts wire records into domain account state.
// Retry policy lives here, not in the derivation engine.
package drift

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/perpview/perpview/internal/domain"
)

// ErrAccountNotFound reports that a subaccount index has no materialized
// account state. Indices can be sparse; callers skip and continue.
var ErrAccountNotFound = errors.New("account not found")

// Client is an HTTP client for the Drift data gateway with retry on 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new gateway client.
func NewClient(baseURL string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// statusError carries a non-200 HTTP status so callers can map specific
// statuses to sentinel errors.
type statusError struct {
	code int
	url  string
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.code, e.url, e.body)
}

// get performs a GET request with exponential-backoff retry on 429.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", u, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, &statusError{code: resp.StatusCode, url: u, body: string(body)}
	}

	return nil, lastErr
}

// getJSON performs a GET request and unmarshals the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", path, err)
	}
	return nil
}

// SubaccountCount returns the number of subaccounts the wallet has ever
// created. Indices below the count may still be absent.
func (c *Client) SubaccountCount(ctx context.Context, wallet string) (int, error) {
	var stats userStatsResponse
	query := url.Values{"authority": {wallet}}
	if err := c.getJSON(ctx, "/v2/userStats", query, &stats); err != nil {
		return 0, fmt.Errorf("fetching subaccount count for %s: %w", wallet, err)
	}
	return stats.NumberOfSubAccountsCreated, nil
}

// AccountSnapshot loads the raw state of one subaccount. Returns
// ErrAccountNotFound when the index has no materialized state.
func (c *Client) AccountSnapshot(ctx context.Context, wallet string, subaccountID int) (domain.AccountSnapshot, error) {
	query := url.Values{
		"authority":    {wallet},
		"subAccountId": {strconv.Itoa(subaccountID)},
	}

	var user userResponse
	if err := c.getJSON(ctx, "/v2/user", query, &user); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return domain.AccountSnapshot{}, ErrAccountNotFound
		}
		return domain.AccountSnapshot{}, fmt.Errorf("fetching subaccount %d of %s: %w", subaccountID, wallet, err)
	}

	return user.toSnapshot(), nil
}

// OraclePrice fetches the current oracle price for one market.
func (c *Client) OraclePrice(ctx context.Context, marketIndex int, class domain.InstrumentClass) (domain.OraclePrice, error) {
	query := url.Values{
		"marketIndex": {strconv.Itoa(marketIndex)},
		"marketType":  {string(class)},
	}

	var price oraclePriceResponse
	if err := c.getJSON(ctx, "/v2/oraclePrice", query, &price); err != nil {
		return domain.OraclePrice{}, fmt.Errorf("fetching oracle price for %s market %d: %w", class, marketIndex, err)
	}
	return domain.OraclePrice{Price: price.Price}, nil
}

// UnrealizedPnl fetches the collaborator-computed unrealized PnL of one perp
// position, as a fixed-point integer string at the quote precision.
func (c *Client) UnrealizedPnl(ctx context.Context, wallet string, subaccountID, marketIndex int) (string, error) {
	query := url.Values{
		"authority":    {wallet},
		"subAccountId": {strconv.Itoa(subaccountID)},
		"marketIndex":  {strconv.Itoa(marketIndex)},
	}

	var pnl unrealizedPnlResponse
	if err := c.getJSON(ctx, "/v2/unrealizedPnl", query, &pnl); err != nil {
		return "", fmt.Errorf("fetching unrealized pnl for subaccount %d market %d: %w", subaccountID, marketIndex, err)
	}
	return pnl.UnrealizedPnl, nil
}
