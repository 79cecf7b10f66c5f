package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://transmart.qq.com/api/imt"

	clientKey = "browser-chrome-110.0.0-Mac OS-df4bd4c5-a65d-44b2-a40f-42f34f3535f2-1677486696487"
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"
	referer   = "https://transmart.qq.com/zh-CN/index"
)

// ErrTranslationFailed wraps every failed translation request.
var ErrTranslationFailed = errors.New("translation failed")

type requestHeader struct {
	Fn        string `json:"fn"`
	ClientKey string `json:"client_key"`
}

type requestSource struct {
	Lang     *string  `json:"lang"`
	TextList []string `json:"text_list"`
}

type requestTarget struct {
	Lang string `json:"lang"`
}

type imtRequest struct {
	Header        requestHeader `json:"header"`
	Type          string        `json:"type"`
	ModelCategory string        `json:"model_category"`
	Source        requestSource `json:"source"`
	Target        requestTarget `json:"target"`
}

type imtResponse struct {
	AutoTranslation []string `json:"auto_translation"`
	ErrorMsg        string   `json:"error_msg"`
}

func newRequest(text string, from, to Language) imtRequest {
	var src *string
	if from.Code != "" {
		code := from.Code
		src = &code
	}
	return imtRequest{
		Header:        requestHeader{Fn: "auto_translation", ClientKey: clientKey},
		Type:          "plain",
		ModelCategory: "normal",
		Source:        requestSource{Lang: src, TextList: []string{text}},
		Target:        requestTarget{Lang: to.Code},
	}
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the translation endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateInterval spaces requests at least interval apart. Zero disables
// limiting.
func WithRateInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// Client posts single texts to the machine-translation endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewClient returns a Client for DefaultEndpoint with no rate limit.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     http.DefaultClient,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate translates one text. Empty text returns "" without a request.
// Multi-line results are joined with "\n".
func (c *Client) Translate(ctx context.Context, text string, from, to Language) (string, error) {
	if text == "" {
		return "", nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}

	body, err := json.Marshal(newRequest(text, from, to))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("error during translation", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	var result imtResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("error during translation",
			zap.Int("status", resp.StatusCode), zap.Error(err))
		return "", fmt.Errorf("%w with status code %d: decode response: %v", ErrTranslationFailed, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || len(result.AutoTranslation) == 0 {
		msg := result.ErrorMsg
		if msg == "" {
			msg = "Unknown error"
		}
		c.logger.Error("translation rejected",
			zap.Int("status", resp.StatusCode), zap.String("error_msg", msg))
		return "", fmt.Errorf("%w with status code %d: %s", ErrTranslationFailed, resp.StatusCode, msg)
	}

	return strings.Join(result.AutoTranslation, "\n"), nil
}
