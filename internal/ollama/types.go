package ollama

import "time"

// Message is one chat turn in /api/chat requests and responses.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// ChatResponse mirrors a non-streaming /api/chat reply.
type ChatResponse struct {
	Model           string    `json:"model"`
	CreatedAt       time.Time `json:"created_at"`
	Message         Message   `json:"message"`
	Done            bool      `json:"done"`
	DoneReason      string    `json:"done_reason,omitempty"`
	TotalDuration   int64     `json:"total_duration,omitempty"` // nanoseconds
	PromptEvalCount int       `json:"prompt_eval_count,omitempty"`
	EvalCount       int       `json:"eval_count,omitempty"`
}

// Elapsed returns the server-reported generation time.
func (r ChatResponse) Elapsed() time.Duration {
	return time.Duration(r.TotalDuration)
}

// VersionResponse mirrors GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}

// apiError is the error body Ollama returns with 4xx/5xx responses.
type apiError struct {
	Error string `json:"error"`
}
