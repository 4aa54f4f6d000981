// Package companion generates short motivational messages for the
// learner. Messages come from an LLM provider when one is configured
// and fall back to canned text when the provider fails, so practice is
// never blocked on a network call.
package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/roundtutor/internal/llm"
)

// MessageType selects the prompt template for a companion message.
type MessageType string

const (
	TypeWelcome         MessageType = "welcome"
	TypeStageTransition MessageType = "stage_transition"
	TypeEncouragement   MessageType = "encouragement"
	TypeStruggleSupport MessageType = "struggle_support"
	TypeCompletion      MessageType = "completion"
	TypeGeneral         MessageType = "general"
)

// historyLimit bounds the conversation history sent with each request
// to keep token usage flat over a long session.
const historyLimit = 5

var warnWriter io.Writer = os.Stderr

// messageSchema constrains the provider to a single message field.
var messageSchema = &llm.Schema{
	Name:        "companion-message",
	Description: "A short motivational message for a student practicing decimal rounding",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "The message to show the student, 2-3 sentences max",
			},
		},
		"required":             []any{"message"},
		"additionalProperties": false,
	},
}

// Companion holds the provider and the rolling conversation history.
type Companion struct {
	provider llm.Provider
	history  []llm.Message
	count    int
}

// New creates a Companion backed by the given provider. A nil provider
// is allowed; every message then comes from the fallback set.
func New(provider llm.Provider) *Companion {
	return &Companion{provider: provider}
}

// MessageCount returns the number of messages generated so far.
func (c *Companion) MessageCount() int {
	return c.count
}

// Generate produces a message of the given type. Provider failures are
// absorbed: the canned fallback for the message type is returned and a
// warning goes to stderr.
func (c *Companion) Generate(ctx context.Context, msgType MessageType, mctx Context) string {
	c.count++

	if c.provider == nil {
		return fallbackMessage(msgType)
	}

	prompt := userPrompt(msgType, mctx)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    append(c.trimmedHistory(), llm.Message{Role: llm.RoleUser, Content: prompt}),
		Schema:      messageSchema,
		MaxTokens:   150,
		Temperature: 0.7,
	}

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, string(msgType)), req)
	if err != nil {
		fmt.Fprintf(warnWriter, "companion message failed, using fallback: %v\n", err)
		return fallbackMessage(msgType)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Message) == "" {
		fmt.Fprintf(warnWriter, "companion message unreadable, using fallback\n")
		return fallbackMessage(msgType)
	}

	message := strings.TrimSpace(out.Message)
	c.history = append(c.history,
		llm.Message{Role: llm.RoleUser, Content: prompt},
		llm.Message{Role: llm.RoleAssistant, Content: message},
	)

	return message
}

// trimmedHistory returns at most the last historyLimit messages.
func (c *Companion) trimmedHistory() []llm.Message {
	if len(c.history) <= historyLimit {
		return c.history
	}
	return c.history[len(c.history)-historyLimit:]
}
