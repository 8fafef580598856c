package ai

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
)

// 画像生成の固定パラメータ
var sdxlInput = map[string]any{
	"width":               1024,
	"height":              1024,
	"num_outputs":         1,
	"scheduler":           "K_EULER",
	"num_inference_steps": 50,
	"guidance_scale":      7.5,
}

// Replicate predictions API
type ReplicateClient struct {
	token        string
	baseURL      string
	version      string
	http         *http.Client
	pollInterval time.Duration
	//作成からポーリング完了までの上限
	timeout time.Duration
}

type ReplicateConfig struct {
	APIToken     string
	BaseURL      string
	ModelVersion string
	Timeout      time.Duration
}

func NewReplicateClient(cfg ReplicateConfig) *ReplicateClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ReplicateClient{
		token:        cfg.APIToken,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		version:      cfg.ModelVersion,
		http:         &http.Client{Timeout: timeout},
		pollInterval: time.Second,
		timeout:      timeout,
	}
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
}

// 生成された画像URLを返す。完了まで待つ
func (c *ReplicateClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("replicate: %w", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input := map[string]any{"prompt": prompt}
	for k, v := range sdxlInput {
		input[k] = v
	}
	body, err := json.Marshal(map[string]any{"version": c.version, "input": input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	p, err := c.do(ctx, http.MethodPost, c.baseURL+"/predictions", body)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		switch p.Status {
		case "succeeded":
			return firstOutput(p.Output)
		case "failed", "canceled":
			return "", fmt.Errorf("replicate prediction %s: %v", p.Status, p.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		p, err = c.do(ctx, http.MethodGet, c.baseURL+"/predictions/"+p.ID, nil)
		if err != nil {
			return "", err
		}
	}
}

func (c *ReplicateClient) do(ctx context.Context, method, url string, body []byte) (prediction, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return prediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		//同期モードで待てるだけ待つ
		req.Header.Set("Prefer", "wait")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return prediction{}, fmt.Errorf("replicate request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return prediction{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return prediction{}, fmt.Errorf("replicate returned status %d: %s", resp.StatusCode, string(raw))
	}

	var p prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		return prediction{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return p, nil
}

// outputは文字列か文字列配列
func firstOutput(raw json.RawMessage) (string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", errors.New("replicate returned no output")
		}
		return list[0], nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}
	return "", errors.New("unexpected replicate output")
}
