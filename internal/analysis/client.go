package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Analyzer produces the provider's raw text answer for a payload. The
// service layer owns parsing; implementations own transport only.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, apiKey, base64Content string) (string, error)
	AnalyzeText(ctx context.Context, apiKey, text string) (string, error)
}

const clientTimeout = 30 * time.Second

// GeminiClient calls the generateContent REST endpoint with the caller's
// own API key. No key of our own is ever attached.
type GeminiClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewGeminiClient(baseURL, model string) *GeminiClient {
	return &GeminiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeImage sends the hair prompt plus the image inline.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, apiKey, base64Content string) (string, error) {
	parts := []generatePart{
		{Text: promptFor(KindHair)},
		{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64Content}},
	}
	return g.generate(ctx, apiKey, parts)
}

// AnalyzeText sends the report prompt with the extracted text appended.
func (g *GeminiClient) AnalyzeText(ctx context.Context, apiKey, text string) (string, error) {
	parts := []generatePart{
		{Text: promptFor(KindDocument) + text},
	}
	return g.generate(ctx, apiKey, parts)
}

func (g *GeminiClient) generate(ctx context.Context, apiKey string, parts []generatePart) (string, error) {
	var req generateRequest
	req.Contents = append(req.Contents, struct {
		Parts []generatePart `json:"parts"`
	}{Parts: parts})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL, g.model, url.QueryEscape(apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: provider returned %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: undecodable provider response", ErrServiceUnavailable)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoAnalysisProduced
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrNoAnalysisProduced
	}
	return text, nil
}
