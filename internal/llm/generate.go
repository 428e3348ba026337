package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
)

// Generator defines the interface for requesting a reply from the inference service.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	InputText    string `json:"input_text"`
	MaxNewTokens int    `json:"max_new_tokens"`
	NumBeams     int    `json:"num_beams"`
}

// PerformanceMetrics are optional figures reported alongside a reply.
type PerformanceMetrics struct {
	OutputTokens     *int     `json:"output_tokens,omitempty"`
	GenerationTimeMs *float64 `json:"generation_time_ms,omitempty"`
}

// GenerateResponse is the body returned by POST /generate.
type GenerateResponse struct {
	OutputText         string                  `json:"output_text"`
	GenerationParams   *model.GenerationParams `json:"generation_params,omitempty"`
	PerformanceMetrics *PerformanceMetrics     `json:"performance_metrics,omitempty"`
}

type httpGenerator struct {
	client *http.Client
	url    string
}

// NewHTTPGenerator returns a Generator talking to baseURL. The request carries
// no identity header; the inference endpoint is anonymous.
func NewHTTPGenerator(baseURL string, timeout time.Duration) Generator {
	return &httpGenerator{
		client: &http.Client{Timeout: timeout},
		url:    baseURL,
	}
}

func (g *httpGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: generate request failed: %v", app_errors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read generate response: %v", app_errors.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: generate returned status %d: %s", app_errors.ErrUnavailable, resp.StatusCode, string(bodyBytes))
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return nil, fmt.Errorf("%w: could not decode generate response: %v", app_errors.ErrUnavailable, err)
	}
	return &genResp, nil
}
