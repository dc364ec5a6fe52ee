package reason

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aidrank/aidrank/pkg/priority"
)

// GatewayClient scores through a remote reasoning gateway over HTTP.
type GatewayClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewGatewayClient creates a client for the gateway at baseURL.
// The bearer token is optional; a non-positive timeout defaults to 10s.
func NewGatewayClient(baseURL, token string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements priority.Scorer.
func (c *GatewayClient) Name() string { return "gateway" }

// Score posts the inputs to the gateway's score endpoint and decodes the
// returned score.
func (c *GatewayClient) Score(ctx context.Context, in priority.Inputs) (float64, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("marshal inputs: %w", err)
	}

	url := c.baseURL + "/api/v1/score"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post score request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}

	return result.Score, nil
}

var _ priority.Scorer = (*GatewayClient)(nil)
