package nutrition

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.trai.ch/zerr"
)

const requestTimeout = 30 * time.Second

// client is the shared HTTP plumbing for the upstream sources: pacing,
// 429 retries with exponential backoff, and JSON decoding.
type client struct {
	http       *http.Client
	limiter    *Limiter
	maxRetries int
	logger     ports.Logger
}

func newClient(cfg domain.NutritionConfig, logger ports.Logger) *client {
	return &client{
		http:       &http.Client{Timeout: requestTimeout},
		limiter:    NewLimiter(cfg.RequestDelay),
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// getJSON fetches the URL and decodes the response body into target.
// HTTP 429 responses are retried with exponential backoff until the retry
// budget runs out.
func (c *client) getJSON(ctx context.Context, url string, target any) error {
	backoff := time.Second

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		status, body, err := c.get(ctx, url)
		if err != nil {
			return zerr.Wrap(err, domain.ErrNutritionRequestFailed.Error())
		}

		switch {
		case status == http.StatusOK:
			if err := json.Unmarshal(body, target); err != nil {
				return zerr.Wrap(err, domain.ErrNutritionRequestFailed.Error())
			}
			return nil
		case status == http.StatusTooManyRequests:
			if attempt >= c.maxRetries {
				return domain.ErrRateLimited
			}
			c.logger.Warn("nutrition API throttled, backing off")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		case status == http.StatusNotFound:
			return domain.ErrIngredientNotFound
		default:
			return zerr.With(domain.ErrNutritionRequestFailed, "status", status)
		}
	}
}

func (c *client) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
