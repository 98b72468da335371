package gateway

import (
	"github.com/vnmchuo/llm-mock/internal/completion"
	"github.com/vnmchuo/llm-mock/internal/embedding"
)

// chatRequest is the /v1/chat/completions request body.
type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []completion.Message `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
	Stream      bool                 `json:"stream"`
}

// embeddingsRequest is the /v1/embeddings request body. Input is either a
// single string or a list of strings; anything else is rejected.
type embeddingsRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

// embeddingsResponse is the /v1/embeddings success body.
type embeddingsResponse struct {
	Object string             `json:"object"`
	Data   []embedding.Vector `json:"data"`
	Model  string             `json:"model"`
	Usage  embeddingsUsage    `json:"usage"`
}

type embeddingsUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// modelList is the /v1/models success body.
type modelList struct {
	Object string `json:"object"`
	Data   any    `json:"data"`
}

// healthResponse is the /health body.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// rootResponse is the / body.
type rootResponse struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Endpoints     map[string]string `json:"endpoints"`
	APIKey        string            `json:"api_key"`
	Documentation string            `json:"documentation"`
}
