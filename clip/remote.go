package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RemoteEncoder talks to an encoder sidecar over JSON/HTTP:
//
//	POST {base}/tokenize {"text": "..."}   -> {"tokens": <opaque>}
//	POST {base}/encode   {"tokens": <...>} -> [{"embedding": {...}, "meta": {...}}]
type RemoteEncoder struct {
	baseURL string
	client  *http.Client
}

// NewRemoteEncoder returns an encoder rooted at baseURL. A nil client uses
// http.DefaultClient.
func NewRemoteEncoder(baseURL string, client *http.Client) *RemoteEncoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteEncoder{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (e *RemoteEncoder) Tokenize(ctx context.Context, text string) (Tokens, error) {
	var resp struct {
		Tokens json.RawMessage `json:"tokens"`
	}
	if err := e.post(ctx, "/tokenize", map[string]string{"text": text}, &resp); err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if len(resp.Tokens) == 0 {
		return nil, fmt.Errorf("tokenize: response has no tokens")
	}
	return resp.Tokens, nil
}

func (e *RemoteEncoder) Encode(ctx context.Context, tokens Tokens) (Conditioning, error) {
	var c Conditioning
	if err := e.post(ctx, "/encode", map[string]any{"tokens": tokens}, &c); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	for i := range c {
		if err := decodePooled(c[i].Meta); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
	}
	return c, nil
}

func (e *RemoteEncoder) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("encoder returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode encoder response: %w", err)
	}
	return nil
}

// decodePooled turns a generic JSON pooled_output back into a Tensor so
// ZeroOut can see its shape.
func decodePooled(meta map[string]any) error {
	raw, ok := meta[PooledOutputKey]
	if !ok || raw == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var t Tensor
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("decode %s: %w", PooledOutputKey, err)
	}
	meta[PooledOutputKey] = t
	return nil
}
