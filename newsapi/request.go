package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vitalvas/newsapi/formdata"
)

// envelope is the response document shape shared by all endpoints.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Meta   json.RawMessage `json:"meta"`
	Links  json.RawMessage `json:"links"`
	Errors []ErrorDetail   `json:"errors"`
}

// result is a decoded successful response.
type result struct {
	status int
	env    envelope
}

// do sends one signed request and decodes the response envelope. body may
// be nil. A nil result with a nil error means the server answered 2xx with
// an empty body.
func (c *Client) do(ctx context.Context, method, path string, body *formdata.EncodedBody) (*result, error) {
	var reader io.Reader
	if body != nil {
		reader = body.Reader()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType())
	}

	bodySize := 0
	if body != nil {
		bodySize = body.Len()
	}

	logger := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", method).
		Str("path", path).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start), bodySize)
		logger.Warn().Err(err).Msg("request failed")

		return nil, fmt.Errorf("newsapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.observe(method, resp.StatusCode, elapsed, bodySize)

	if err != nil {
		return nil, fmt.Errorf("newsapi: %s %s: read response: %w", method, path, err)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("request_bytes", bodySize).
		Int("response_bytes", len(raw)).
		Dur("elapsed", elapsed).
		Msg("request completed")

	res, err := decodeResponse(method, path, resp.StatusCode, raw)
	if err != nil {
		logger.Warn().Err(err).Int("status", resp.StatusCode).Msg("request rejected")
		return nil, err
	}

	return res, nil
}

// decodeResponse classifies a response. Any status outside [200, 300) is
// a failure, whether or not the body holds an error envelope.
func decodeResponse(method, path string, status int, raw []byte) (*result, error) {
	apiErr := func(details []ErrorDetail) *APIError {
		return &APIError{
			StatusCode: status,
			Method:     method,
			Path:       path,
			Errors:     details,
			Body:       raw,
		}
	}

	var (
		env      envelope
		parseErr error
	)

	if len(bytes.TrimSpace(raw)) > 0 {
		parseErr = json.Unmarshal(raw, &env)
	}

	if status < 200 || status >= 300 {
		if parseErr != nil {
			return nil, apiErr(nil)
		}

		return nil, apiErr(env.Errors)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	if parseErr != nil {
		return nil, fmt.Errorf("newsapi: %s %s: decode response: %w", method, path, parseErr)
	}

	if len(env.Errors) > 0 && env.Errors[0].Code != "" {
		return nil, apiErr(env.Errors)
	}

	return &result{status: status, env: env}, nil
}

// decodeData unmarshals the data member of res into out.
func decodeData(method, path string, res *result, out any) error {
	if res == nil || len(res.env.Data) == 0 || bytes.Equal(res.env.Data, []byte("null")) {
		return fmt.Errorf("%w: %s %s: response has no data", ErrRemote, method, path)
	}

	if err := json.Unmarshal(res.env.Data, out); err != nil {
		return fmt.Errorf("newsapi: %s %s: decode data: %w", method, path, err)
	}

	return nil
}
