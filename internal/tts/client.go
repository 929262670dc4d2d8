// Package tts implements the client for the remote text-to-speech endpoint.
//
// One synthesis is exactly one POST: the voice and text travel as query
// parameters and the reply carries the audio as base64 inside a JSON object.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/book-expert/tts-cli/internal/core"
	"github.com/book-expert/tts-cli/internal/logging"
)

// DefaultEndpoint is the synthesis endpoint used when none is configured.
const DefaultEndpoint = "https://api16-normal-useast5.us.tiktokv.com/media/api/text/speech/invoke/?speaker_map_type=0"

// Query parameter names understood by the endpoint.
const (
	paramSpeaker = "text_speaker"
	paramText    = "req_text"
)

// HTTPClient represents a client for the speech synthesis endpoint.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	log        core.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger attaches a logger to the client.
func WithLogger(log core.Logger) Option {
	return func(c *HTTPClient) {
		c.log = log
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// NewHTTPClient creates a client for endpoint. The endpoint may already carry
// query parameters; they are preserved. A zero timeout means requests never
// time out on their own.
func NewHTTPClient(endpoint string, timeout time.Duration, opts ...Option) *HTTPClient {
	client := &HTTPClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logging.Nop{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Invoke sends the synthesis request and returns the raw response body.
//
// The status code is not inspected; a non-200 reply is returned like any
// other body and DecodeResponse rejects it if it has the wrong shape.
func (c *HTTPClient) Invoke(ctx context.Context, voice, text string) ([]byte, error) {
	requestURL, err := c.buildURL(voice, text)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", core.ErrNetwork, err)
	}

	c.log.Info("Requesting speech (voice: %s, %d bytes of text)", voice, len(text))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request to %s: %w", core.ErrNetwork, httpReq.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Speech endpoint returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", core.ErrNetwork, err)
	}

	return body, nil
}

// Synthesize invokes the endpoint and decodes the audio payload.
func (c *HTTPClient) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	body, err := c.Invoke(ctx, voice, text)
	if err != nil {
		return nil, err
	}

	audio, err := DecodeResponse(body)
	if err != nil {
		c.log.Error("Failed to decode speech response: %v", err)

		return nil, err
	}

	c.log.Info("Decoded %d bytes of audio", len(audio))

	return audio, nil
}

func (c *HTTPClient) buildURL(voice, text string) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: invalid endpoint %q: %w", core.ErrNetwork, c.endpoint, err)
	}

	query := parsed.Query()
	query.Set(paramSpeaker, voice)
	query.Set(paramText, text)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
