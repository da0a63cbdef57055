package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"onepercent-backend/internal/web"
)

const (
	rewriteTemperature = 0.7
	rewriteMaxTokens   = 500
)

const systemPrompt = `You are a professional copywriter specializing in fitness and wellness content. Your task is to edit website content based on user instructions while maintaining the brand voice and ensuring the content is clear, engaging, and professional.

Guidelines:
- Keep the content concise and impactful
- Maintain a professional yet approachable tone
- Ensure the content is relevant to fitness and personal training
- Do not add unnecessary words or fluff
- Preserve the core message and intent
- Make sure the edited content flows naturally
- Do NOT wrap the response in quotes or quotation marks
- Return only the plain text content`

// Provider is an OpenAI-compatible chat completions client used for content
// rewrites. It keeps no conversation state and never retries.
type Provider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewProvider creates a Provider. An empty apiKey yields an unconfigured
// provider; Rewrite then fails without making network calls.
func NewProvider(baseURL, apiKey, model string) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether a provider credential is present.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Rewrite asks the model to edit one text field per the instruction and
// returns the revised text with one layer of surrounding quotes stripped.
func (p *Provider) Rewrite(ctx context.Context, currentContent, instruction, fieldLabel string) (string, error) {
	if currentContent == "" || instruction == "" {
		return "", web.NewAppError("INVALID_PAYLOAD", 400, "Current content and instruction are required")
	}
	if !p.Configured() {
		return "", web.NewAppError("AI_NOT_CONFIGURED", 500, "AI provider API key not configured")
	}

	userPrompt := fmt.Sprintf(`Edit the following %s content based on this instruction: "%s"

Current content: "%s"

Please provide only the edited content without any explanations, additional text, or quotation marks. Return only the revised version of the content as plain text.`,
		fieldLabel, instruction, currentContent)

	body := chatRequest{
		Model:       p.model,
		Temperature: rewriteTemperature,
		MaxTokens:   rewriteMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", web.NewAppError("AI_PROVIDER_ERROR", 502, "Failed to marshal AI request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", web.NewAppError("AI_PROVIDER_ERROR", 502, "Failed to create AI request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", web.NewAppError("AI_PROVIDER_ERROR", 502,
			fmt.Sprintf("Failed to connect to AI provider: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", web.NewAppError("AI_PROVIDER_ERROR", 502, "Failed to read AI response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		detail := string(respBody)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			detail = apiErr.Error.Message
		}
		return "", web.NewAppError("AI_PROVIDER_ERROR", resp.StatusCode,
			fmt.Sprintf("AI provider returned %d: %s", resp.StatusCode, detail))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", web.NewAppError("AI_PROVIDER_ERROR", 502, "Failed to parse AI response")
	}

	if len(chatResp.Choices) == 0 {
		return "", web.NewAppError("AI_EMPTY_RESULT", 502, "No content generated")
	}
	generated := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if generated == "" {
		return "", web.NewAppError("AI_EMPTY_RESULT", 502, "No content generated")
	}

	return stripSurroundingQuotes(generated), nil
}

// stripSurroundingQuotes removes exactly one layer of matching surrounding
// quote characters. No multi-layer unwrapping.
func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
