package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Request is a single completion call.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer sends one prompt to an OpenAI-compatible completion endpoint.
type Completer interface {
	Complete(ctx context.Context, req Request) (Reply, error)
}

// LangChainCompleter implements Completer on top of langchaingo.
type LangChainCompleter struct {
	client llms.Model
}

// NewLangChainCompleter creates an OpenAI-compatible completer. The model is
// chosen per request.
func NewLangChainCompleter(apiKey, baseURL string) (*LangChainCompleter, error) {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &LangChainCompleter{client: client}, nil
}

// Complete sends the prompt as a single user message.
func (c *LangChainCompleter) Complete(ctx context.Context, req Request) (Reply, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt),
	}

	resp, err := c.client.GenerateContent(
		ctx,
		msgs,
		llms.WithModel(req.Model),
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
	)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to generate content: %w", err)
	}

	return replyFromContent(resp), nil
}

// replyFromContent maps each choice into a record item. The first choice's
// content is the primary text; tool-call arguments become function_call parts.
func replyFromContent(resp *llms.ContentResponse) Reply {
	var reply Reply
	if resp == nil {
		return reply
	}

	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}

		item := Item{
			Kind:  ItemRecord,
			Type:  "message",
			Parts: []Part{{Type: PartTypeOutputText, Text: choice.Content}},
		}
		for _, call := range choice.ToolCalls {
			if call.FunctionCall == nil {
				continue
			}
			item.Parts = append(item.Parts, Part{Type: "function_call", Text: call.FunctionCall.Arguments})
		}
		reply.Output = append(reply.Output, item)
	}

	if len(resp.Choices) > 0 && resp.Choices[0] != nil {
		reply.OutputText = resp.Choices[0].Content
	}

	return reply
}
