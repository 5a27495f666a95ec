package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	model "github.com/zhouzirui/flight-insights/backend/internal/model/insights"
)

// Path is the insights endpoint relative to the page origin.
const Path = "/insights"

// ErrFetchFailed is returned for any non-2xx reply. Its text is what the
// widget shows after the "Error: " prefix.
var ErrFetchFailed = errors.New("Failed to fetch the answer")

// Client posts queries to an insights endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient targets endpoint, which may be a full URL of the insights route
// or a server base URL (in which case Path is appended).
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	endpoint = strings.TrimRight(endpoint, "/")
	if !strings.HasSuffix(endpoint, Path) {
		endpoint += Path
	}

	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the resolved insights URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask sends one query and returns the decoded reply.
func (c *Client) Ask(ctx context.Context, query string) (model.AnswerResponse, error) {
	body, err := json.Marshal(model.QueryRequest{Query: query})
	if err != nil {
		return model.AnswerResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.AnswerResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AnswerResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.AnswerResponse{}, ErrFetchFailed
	}

	var answer model.AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return model.AnswerResponse{}, fmt.Errorf("decode insights response: %w", err)
	}
	return answer, nil
}
