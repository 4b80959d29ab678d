package llmclient

import (
	"context"
	"errors"
)

// Message roles for chat-style generation.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged prompt message.
type Message struct {
	Role    string
	Content string
}

// ErrEmptyResponse is returned when the provider produced no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// Client is the boundary to the text-generation collaborator. The service
// depends on nothing vendor specific beyond chat-style input and text output;
// callers must tolerate the returned text being wrapped in a code fence.
type Client interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
	Close() error
}

// System builds a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User builds a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }
