// Package ai talks to an OpenAI-compatible /v1/chat/completions endpoint for
// the gallery's assistant widget. Works with OpenAI, vLLM, LiteLLM,
// OpenRouter and self-hosted models alike.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are the Alternus Gallery assistant. You help visitors discover paintings, explain mediums, framing options, shipping and returns. Keep answers short and warm. If asked about order status, point the visitor to the order tracking page with their order number."

// Turn is one prior exchange in the widget's conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Assistant struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAssistant builds a client for the configured completions endpoint.
// baseURL should include the /v1 prefix, e.g. "https://api.openai.com/v1".
// apiKey can be empty for local models that do not require authentication.
func NewAssistant(baseURL, apiKey, model string) *Assistant {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Assistant{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Reply sends the conversation history plus the new visitor message and
// returns the assistant's answer.
func (a *Assistant) Reply(ctx context.Context, history []Turn, userMessage string) (string, error) {
	if a.model == "" {
		return "", fmt.Errorf("assistant model required")
	}

	messages := make([]oaiMessage, 0, len(history)+2)
	messages = append(messages, oaiMessage{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, oaiMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, oaiMessage{Role: "user", Content: userMessage})

	body, err := json.Marshal(oaiChatRequest{Model: a.model, Messages: messages})
	if err != nil {
		return "", err
	}

	url := a.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp oaiErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return "", fmt.Errorf("assistant api error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("assistant api error: %s", resp.Status)
	}

	var chatResp oaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("assistant decode: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from assistant api")
	}
	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from assistant api")
	}
	return text, nil
}

// OpenAI-compatible request/response types.

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiChatRequest struct {
	Model    string       `json:"model"`
	Messages []oaiMessage `json:"messages"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message oaiMessage `json:"message"`
	} `json:"choices"`
}

type oaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
