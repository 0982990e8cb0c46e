package openai

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/sashabaranov/go-openai"

    "github.com/bryanwahyu/content-analyzer/internal/domain/ai"
    "github.com/bryanwahyu/content-analyzer/internal/infra/ai/prompt"
)

const defaultModel = "gpt-3.5-turbo"

// Client summarizes text with the OpenAI chat completion API.
type Client struct {
    *openai.Client
    Model  string
    hasKey bool
}

// NewClient builds a client. baseURL overrides the API endpoint when non-empty.
func NewClient(apiKey, model, baseURL string) *Client {
    cfg := openai.DefaultConfig(apiKey)
    if baseURL != "" {
        cfg.BaseURL = baseURL
    }
    return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, hasKey: apiKey != ""}
}

// Summarize sends one chat completion request. It never retries; every failure
// is returned as *ai.SummarizationError.
func (c *Client) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
    if !c.hasKey {
        return "", &ai.SummarizationError{Err: ai.ErrMissingAPIKey}
    }

    model := c.Model
    if model == "" {
        model = defaultModel
    }
    req := openai.ChatCompletionRequest{
        Model: model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
            {Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(text)},
        },
    }
    // For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
    if isReasoningModel(model) {
        req.MaxCompletionTokens = maxTokens
    } else {
        req.MaxTokens = maxTokens
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        if isQuotaError(err) {
            err = fmt.Errorf("%w: %w", ai.ErrQuotaExceeded, err)
        }
        return "", &ai.SummarizationError{Err: fmt.Errorf("failed to create chat completion: %w", err)}
    }
    if len(resp.Choices) == 0 {
        return "", &ai.SummarizationError{Err: fmt.Errorf("no choices in response: %w", ai.ErrEmptySummary)}
    }

    summary := strings.TrimSpace(resp.Choices[0].Message.Content)
    if summary == "" {
        return "", &ai.SummarizationError{Err: ai.ErrEmptySummary}
    }
    return summary, nil
}

func isReasoningModel(model string) bool {
    for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
        if strings.HasPrefix(model, p) {
            return true
        }
    }
    return false
}

func isQuotaError(err error) bool {
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        return apiErr.HTTPStatusCode == http.StatusTooManyRequests
    }
    var reqErr *openai.RequestError
    if errors.As(err, &reqErr) {
        return reqErr.HTTPStatusCode == http.StatusTooManyRequests
    }
    return false
}
