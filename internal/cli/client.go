package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/domain/model"
)

// ErrServer is returned for non-2xx API responses.
var ErrServer = errors.New("server error")

// apiClient talks to a footprint server.
type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SubmitBatch posts items, with an Idempotency-Key header when key is set.
func (c *apiClient) SubmitBatch(ctx context.Context, items []model.Item, key string) (service.BatchReceipt, error) {
	var receipt service.BatchReceipt
	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return receipt, fmt.Errorf("marshal batch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/batches", bytes.NewReader(body))
	if err != nil {
		return receipt, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	err = c.do(req, &receipt)
	return receipt, err
}

// GetBatch reads a batch.
func (c *apiClient) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/batches/"+id, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	var b model.Batch
	if err := c.do(req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// WaitBatch polls until the batch completes or ctx ends.
func (c *apiClient) WaitBatch(ctx context.Context, id string, every time.Duration) (*model.Batch, error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		b, err := c.GetBatch(ctx, id)
		if err != nil {
			return nil, err
		}
		if b.Status == model.StatusCompleted {
			return b, nil
		}
		select {
		case <-ctx.Done():
			return b, fmt.Errorf("batch %s still %s: %w", id, b.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *apiClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &e) == nil && e.Message != "" {
			return fmt.Errorf("%w: %d %s: %s", ErrServer, resp.StatusCode, e.Code, e.Message)
		}
		return fmt.Errorf("%w: %d", ErrServer, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
