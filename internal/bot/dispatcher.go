package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/j0lvera/devocional/internal/ai"
	"github.com/j0lvera/devocional/internal/command"
)

type handlerFunc func(ctx context.Context, args string, r Replier)

// Dispatcher routes parsed commands to their handlers. It holds no state
// besides the read-only topic catalog, so one instance serves every chat.
type Dispatcher struct {
	generator Generator
	topics    []string
	logger    *zerolog.Logger
	handlers  map[string]handlerFunc
}

// NewDispatcher creates a dispatcher over the given topic catalog.
func NewDispatcher(generator Generator, topics []string, logger *zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		generator: generator,
		topics:    append([]string(nil), topics...),
		logger:    logger,
	}

	d.handlers = map[string]handlerFunc{
		"start":      d.handleStart,
		"help":       d.handleStart,
		"temas":      d.handleTopics,
		"topics":     d.handleTopics,
		"devocional": d.handleDevotional,
		"devotional": d.handleDevotional,
		"plano":      d.handlePlan,
		"plan":       d.handlePlan,
	}

	return d
}

// ParseCommand splits "/name@bot args" into a command. Text that is not a
// command returns false.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}

	name, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	name = strings.ToLower(name)
	if name == "" {
		return Command{}, false
	}

	return Command{
		Name: name,
		Args: strings.ToLower(strings.Join(fields[1:], " ")),
	}, true
}

// Handle runs cmd and writes every reply through r.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command, r Replier) {
	h, ok := d.handlers[cmd.Name]
	if !ok {
		d.logger.Debug().Str("command", cmd.Name).Msg("unknown command")
		d.reply(ctx, r, Message{Text: unknownCommand})
		return
	}

	d.logger.Info().Str("command", cmd.Name).Str("args", cmd.Args).Msg("command received")
	h(ctx, cmd.Args, r)
}

func (d *Dispatcher) handleStart(ctx context.Context, _ string, r Replier) {
	d.reply(ctx, r, Message{Text: helpMessage, Markdown: true})
}

func (d *Dispatcher) handleTopics(ctx context.Context, _ string, r Replier) {
	d.reply(ctx, r, Message{Text: topicsMessage(d.topics), Markdown: true})
}

func (d *Dispatcher) handleDevotional(ctx context.Context, args string, r Replier) {
	if args == "" {
		d.reply(ctx, r, Message{Text: devotionalUsage})
		return
	}

	topic, err := command.ResolveTopic(args, d.topics)
	if err != nil {
		d.logger.Debug().Err(err).Str("input", args).Msg("topic not resolved")
		d.reply(ctx, r, Message{Text: invalidTopic})
		return
	}

	d.reply(ctx, r, Message{Text: devotionalProgress})
	d.typing(ctx, r)

	res := d.generator.Generate(ctx, ai.Devotional(topic))
	if !res.Succeeded {
		d.reply(ctx, r, Message{Text: res.Text})
		return
	}

	d.reply(ctx, r, Message{
		Text:     devotionalHeading(topic) + "\n\n" + res.Text,
		Markdown: true,
	})
}

func (d *Dispatcher) handlePlan(ctx context.Context, args string, r Replier) {
	if args == "" {
		d.reply(ctx, r, Message{Text: planUsage})
		return
	}

	days, err := command.ParseDayCount(args)
	switch {
	case errors.Is(err, command.ErrMissingUnit):
		d.reply(ctx, r, Message{Text: planMissingUnit})
		return
	case err != nil:
		d.logger.Debug().Err(err).Str("input", args).Msg("day count not parsed")
		d.reply(ctx, r, Message{Text: planMalformed})
		return
	}

	d.reply(ctx, r, Message{Text: planProgress(days)})
	d.typing(ctx, r)

	res := d.generator.Generate(ctx, ai.ReadingPlan(days))
	if !res.Succeeded {
		d.reply(ctx, r, Message{Text: res.Text})
		return
	}

	d.reply(ctx, r, Message{
		Text:     planHeading(days) + "\n\n" + res.Text,
		Markdown: true,
	})
}

func (d *Dispatcher) reply(ctx context.Context, r Replier, msg Message) {
	if err := r.Reply(ctx, msg); err != nil {
		d.logger.Error().Err(err).Msg("unable to send reply")
	}
}

func (d *Dispatcher) typing(ctx context.Context, r Replier) {
	if err := r.Typing(ctx); err != nil {
		d.logger.Warn().Err(err).Msg("unable to send typing action")
	}
}
