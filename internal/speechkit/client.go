package speechkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type recognizeResponse struct {
	Result string `json:"result"`
}

type specification struct {
	LanguageCode      string `json:"languageCode"`
	AudioEncoding     string `json:"audioEncoding"`
	SampleRateHertz   int    `json:"sampleRateHertz"`
	AudioChannelCount int    `json:"audioChannelCount"`
}

type longRunningRequest struct {
	Config struct {
		Specification specification `json:"specification"`
	} `json:"config"`
	Audio struct {
		URI string `json:"uri"`
	} `json:"audio"`
}

type operation struct {
	ID    string          `json:"id"`
	Done  bool            `json:"done"`
	Error json.RawMessage `json:"error,omitempty"`
	// Response is present once Done is set without an error.
	Response struct {
		Chunks []struct {
			Alternatives []struct {
				Text string `json:"text"`
			} `json:"alternatives"`
		} `json:"chunks"`
	} `json:"response"`
}

// text joins the first alternative of every chunk in chunk order.
func (op *operation) text() string {
	parts := make([]string, 0, len(op.Response.Chunks))
	for _, ch := range op.Response.Chunks {
		if len(ch.Alternatives) > 0 {
			parts = append(parts, ch.Alternatives[0].Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (c *implClient) recognizeURL(withFormat bool) string {
	q := url.Values{}
	q.Set("lang", c.cfg.Language)
	if withFormat {
		q.Set("format", "oggopus")
		q.Set("sampleRateHertz", strconv.Itoa(SampleRate))
	}
	return c.cfg.RecognizeURL + "?" + q.Encode()
}

func (c *implClient) Recognize(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.recognizeURL(true), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var out recognizeResponse
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return out.Result, nil
}

func (c *implClient) Submit(ctx context.Context, uri string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	var payload longRunningRequest
	payload.Config.Specification = specification{
		LanguageCode:      c.cfg.Language,
		AudioEncoding:     "OGG_OPUS",
		SampleRateHertz:   SampleRate,
		AudioChannelCount: 1,
	}
	payload.Audio.URI = uri

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LongRunningURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var op operation
	if err := c.do(req, &op); err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}
	if op.ID == "" {
		return "", fmt.Errorf("submit: response carries no operation id")
	}
	return op.ID, nil
}

func (c *implClient) Wait(ctx context.Context, operationID string) (string, error) {
	c.logger.Info(ctx, "Operation started: %s", operationID)

	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}

		op, err := c.poll(ctx, operationID)
		if err != nil {
			return "", err
		}
		if op.Done {
			if len(op.Error) > 0 && string(op.Error) != "null" {
				return "", fmt.Errorf("%w: %s", ErrRecognitionFailed, op.Error)
			}
			return op.text(), nil
		}

		if attempt%6 == 0 {
			c.logger.Info(ctx, "Waiting for operation %s (%s elapsed)", operationID, time.Duration(attempt+1)*c.pollInterval)
		}
		timer.Reset(c.pollInterval)
	}
	return "", ErrPollTimeout
}

func (c *implClient) poll(ctx context.Context, operationID string) (*operation, error) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.OperationURL, "/") + "/" + url.PathEscape(operationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var op operation
	if err := c.do(req, &op); err != nil {
		return nil, fmt.Errorf("poll operation %s: %w", operationID, err)
	}
	return &op, nil
}

func (c *implClient) CheckKey(ctx context.Context) (KeyCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.recognizeURL(false), bytes.NewReader(make([]byte, 100)))
	if err != nil {
		return KeyCheck{}, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return KeyCheck{}, fmt.Errorf("check key: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	check := KeyCheck{Status: resp.StatusCode, Body: string(body)}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest, http.StatusUnsupportedMediaType:
		// the payload is garbage, so a format complaint means the key passed
		check.Valid = true
	}
	return check, nil
}

func (c *implClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)
}

// do sends req and decodes a 2xx JSON body into out.
func (c *implClient) do(req *http.Request, out interface{}) error {
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
