// Package oracle calls the Gemini vision API to adjudicate damage claims on
// refund requests. Model output is parsed against a strict schema; anything
// that does not validate is surfaced as an error so the caller can fail
// closed into escalation.
package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiModel      = "gemini-1.5-flash"
	geminiMaxRetries = 3
	geminiInitDelay  = 1 * time.Second
	requestTimeout   = 60 * time.Second
)

// GeminiClient calls the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	log     *slog.Logger
}

// NewGeminiClient creates a client bound to the default model.
func NewGeminiClient(apiKey string, logger *slog.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		model:   geminiModel,
		client:  &http.Client{Timeout: requestTimeout},
		log:     logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ClassifyDamage sends the claim image plus context to Gemini and parses the
// verdict. Transport errors, non-2xx responses after retries, and schema
// violations all return an error; the caller converts every error into an
// escalated outcome.
func (c *GeminiClient) ClassifyDamage(ctx context.Context, image []byte, claim ClaimContext) (*Verdict, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: buildPrompt(claim)},
					{InlineData: &geminiInlineData{
						MimeType: "image/jpeg",
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt < geminiMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * geminiInitDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return nil, lastErr
		}

		var apiResp geminiResponse
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("empty response content")
		}

		text := apiResp.Candidates[0].Content.Parts[0].Text
		c.log.Debug("gemini raw verdict", "order_id", claim.OrderID, "text", text)
		return ParseVerdict(text)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", geminiMaxRetries, lastErr)
}

func buildPrompt(claim ClaimContext) string {
	return fmt.Sprintf(`You are an AI agent for validating refund requests based on images.
Customer ID: %s
Order ID: %s
Refund Amount Requested: %.2f
Customer Message: %s
Instructions:
- Analyze the image for evidence of damage, defect, or incorrect item.
- If the issue is clear (e.g., visible damage), approve the refund.
- If the image is unclear or missing evidence, escalate the request.
- Return a JSON object with:
  - status: "resolved" or "escalated"
  - message: Explanation of the decision
  - case_id: tracking id (only if escalated)`,
		claim.CustomerID, claim.OrderID, claim.RefundAmount, claim.Message)
}

// ParseVerdict extracts the verdict JSON from model text, handling markdown
// code fences, and rejects anything outside the two allowed statuses.
func ParseVerdict(text string) (*Verdict, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		// Remove opening fence (with optional language tag)
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		// Remove closing fence
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	if cleaned == "" {
		return nil, fmt.Errorf("empty verdict text")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, fmt.Errorf("parse verdict JSON: %w (raw: %s)", err, text)
	}
	if v.Status != VerdictResolved && v.Status != VerdictEscalated {
		return nil, fmt.Errorf("verdict status %q outside schema", v.Status)
	}
	return &v, nil
}
