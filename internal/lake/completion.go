package lake

import (
	"context"

	"github.com/lakeworks/ragline/internal/domain"
)

// Completion is the client for the remote language-model completion service.
type Completion struct {
	c *Client
}

// NewCompletion creates a completion client on the shared transport.
func NewCompletion(c *Client) *Completion {
	return &Completion{c: c}
}

type completionRequest struct {
	Messages []domain.Message `json:"messages"`
}

type completionResponse struct {
	Answer string `json:"answer"`
}

// Complete submits the conversation and returns the generated answer text.
// An empty answer is returned as-is; the retrieval pipeline applies its
// documented fallback.
func (m *Completion) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	var resp completionResponse
	if err := m.c.post(ctx, "/completion/chat", completionRequest{Messages: messages}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
