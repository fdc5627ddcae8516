package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"healthtrack/config"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co/models"
	maxHFResponse    = 1 << 20
)

// HuggingFaceClient calls the Hugging Face inference API text2text endpoint.
type HuggingFaceClient struct {
	client  *http.Client
	token   string
	baseURL string
	model   string
}

func NewHuggingFaceClient(cfg config.LLMConfig) *HuggingFaceClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultHFBaseURL
	}
	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = "google/flan-t5-large"
	}
	return &HuggingFaceClient{
		// the request context carries the deadline
		client:  &http.Client{},
		token:   cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
	}
}

func (h *HuggingFaceClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	body := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens":   maxTokens,
			"temperature":      temperature,
			"return_full_text": false,
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal hf request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", h.baseURL, h.model), bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create hf request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	// load cold models instead of returning a "loading" error
	req.Header.Set("x-wait-for-model", "true")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hf request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxHFResponse))
	if err != nil {
		return "", fmt.Errorf("read hf response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var hfErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &hfErr) == nil && hfErr.Error != "" {
			return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode, hfErr.Error)
		}
		return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode, preview(respBytes))
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode hf response: %v | body: %s", err, preview(respBytes))
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", ErrEmptyResponse
	}
	return out[0].GeneratedText, nil
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
