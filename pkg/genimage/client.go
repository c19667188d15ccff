package genimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/adforgehq/adforge/pkg/cache"
	"github.com/adforgehq/adforge/pkg/errors"
	"github.com/adforgehq/adforge/pkg/httputil"
	"github.com/adforgehq/adforge/pkg/observability"
)

// DefaultBaseURL is the fal.ai synchronous inference endpoint.
const DefaultBaseURL = "https://fal.run"

// Backend produces image bytes for a prompt at an exact size.
type Backend interface {
	GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, error)
	HasCredentials() bool
}

// ClientConfig configures the fal.ai backend client.
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string        // defaults to DefaultBaseURL
	Timeout    time.Duration // per HTTP request
	MaxRetries int           // attempts per generation, minimum 1
	Backoff    httputil.BackoffPolicy
	Cache      cache.Cache // nil disables result caching
	CacheTTL   time.Duration
	Logger     *log.Logger
}

// Client calls the fal.ai image generation API. Transient failures are
// retried with a linear backoff; successful results are cached keyed by
// model, prompt, and dimensions.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger *log.Logger
}

// NewClient builds a fal.ai client. A zero MaxRetries becomes 3.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff == nil {
		cfg.Backoff = httputil.Linear(2 * time.Second)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger,
	}
}

// HasCredentials reports whether an API key is configured.
func (c *Client) HasCredentials() bool {
	return c.cfg.APIKey != ""
}

type falRequest struct {
	Prompt              string       `json:"prompt"`
	ImageSize           falImageSize `json:"image_size"`
	NumInferenceSteps   int          `json:"num_inference_steps"`
	GuidanceScale       float64      `json:"guidance_scale"`
	NumImages           int          `json:"num_images"`
	EnableSafetyChecker bool         `json:"enable_safety_checker"`
}

type falImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type falResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// GenerateImage submits the prompt and downloads the first result image.
// Network and server-side failures are retried up to MaxRetries times
// with a linear backoff; the context is honored between attempts.
func (c *Client) GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	key := cache.GenerationKey(c.cfg.Model, prompt, width, height)
	if c.cfg.Cache != nil {
		if data, ok, err := c.cfg.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "generation")
			c.logger.Debug("generation cache hit", "model", c.cfg.Model, "size", fmt.Sprintf("%dx%d", width, height))
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "generation")
	}

	var data []byte
	err := httputil.Retry(ctx, c.cfg.MaxRetries, c.cfg.Backoff, func() error {
		var attemptErr error
		data, attemptErr = c.generateOnce(ctx, prompt, width, height)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	if c.cfg.Cache != nil {
		if err := c.cfg.Cache.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("caching generation result failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "generation", len(data))
		}
	}
	return data, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	body, err := json.Marshal(falRequest{
		Prompt:              prompt,
		ImageSize:           falImageSize{Width: width, Height: height},
		NumInferenceSteps:   28,
		GuidanceScale:       3.5,
		NumImages:           1,
		EnableSafetyChecker: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding generation request")
	}

	url := c.cfg.BaseURL + "/" + c.cfg.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building generation request")
	}
	req.Header.Set("Authorization", "Key "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "calling generation API"))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, httputil.Retryable(errors.New(errors.ErrCodeRateLimited,
			"generation API rate limited (%s)", resp.Status))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httputil.Retryable(errors.New(errors.ErrCodeNetwork,
			"generation API returned %s", resp.Status))
	}

	var out falResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeDecode, err, "decoding generation response"))
	}
	if len(out.Images) == 0 || out.Images[0].URL == "" {
		// The API occasionally returns an empty image list under load, so
		// this counts as a failed attempt like any other.
		return nil, httputil.Retryable(errors.New(errors.ErrCodeInternal,
			"generation response contained no image URL"))
	}

	return c.download(ctx, out.Images[0].URL)
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building download request")
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "downloading generated image"))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.Retryable(errors.New(errors.ErrCodeNetwork,
			"image download returned %s", resp.Status))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "reading downloaded image"))
	}
	return data, nil
}
