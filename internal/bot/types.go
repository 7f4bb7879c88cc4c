package bot

import (
	"context"

	"github.com/j0lvera/devocional/internal/ai"
)

// Generator produces the content behind the devotional and plan commands
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) ai.Result
}

// Message is one outgoing chat message
type Message struct {
	Text     string
	Markdown bool
}

// Replier delivers messages back to the chat a command came from
type Replier interface {
	Reply(ctx context.Context, msg Message) error
	Typing(ctx context.Context) error
}

// Command is a parsed chat command such as "/plano 3 meses"
type Command struct {
	Name string
	Args string
}
