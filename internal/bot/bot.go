package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/j0lvera/devocional/internal/ai"
	"github.com/j0lvera/devocional/internal/config"
)

// maxMessageUnits is Telegram's limit for a single text message, in UTF-16
// code units.
const maxMessageUnits = 4096

type Params struct {
	fx.In

	Config    *config.Config
	Generator Generator
	Logger    zerolog.Logger
}

type Result struct {
	fx.Out

	Bot        *tbot.Bot
	Dispatcher *Dispatcher
}

func New(lc fx.Lifecycle, p Params) (Result, error) {
	log := p.Logger.With().Str("component", "bot").Logger()
	dispatcher := NewDispatcher(p.Generator, p.Config.Catalog.Topics, &log)

	opts := []tbot.Option{
		tbot.WithDefaultHandler(
			func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
				handleMessage(ctx, tg, update, dispatcher, &log)
			},
		),
	}

	tg, err := tbot.New(p.Config.Token, opts...)
	if err != nil {
		return Result{}, err
	}

	// The poller outlives the OnStart context, so it gets its own.
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info().Msg("starting telegram bot...")
				go tg.Start(runCtx)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Msg("stopping telegram bot...")
				cancel()
				return nil
			},
		},
	)

	return Result{
		Bot:        tg,
		Dispatcher: dispatcher,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
			func(g *ai.Generator) Generator { return g },
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}

func handleMessage(
	ctx context.Context,
	tg sender,
	update *models.Update,
	dispatcher *Dispatcher,
	log *zerolog.Logger,
) {
	// Guard against nil message
	if update.Message == nil {
		return
	}

	cmd, ok := ParseCommand(update.Message.Text)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	chatLog := log.With().Int64("chat_id", chatID).Logger()

	dispatcher.Handle(ctx, cmd, &chatReplier{
		tg:     tg,
		chatID: chatID,
		log:    &chatLog,
	})
}

// sender is the part of *tbot.Bot the replier needs.
type sender interface {
	SendMessage(ctx context.Context, params *tbot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *tbot.SendChatActionParams) (bool, error)
}

// chatReplier sends replies to one Telegram chat.
type chatReplier struct {
	tg     sender
	chatID int64
	log    *zerolog.Logger
}

// Reply sends msg, split to fit Telegram's size limit. Model output is not
// guaranteed to be valid Markdown, so a rejected chunk is resent as plain text.
func (c *chatReplier) Reply(ctx context.Context, msg Message) error {
	for _, chunk := range splitMessage(msg.Text, maxMessageUnits) {
		params := &tbot.SendMessageParams{
			ChatID: c.chatID,
			Text:   chunk,
		}
		if msg.Markdown {
			params.ParseMode = models.ParseModeMarkdownV1
		}

		_, err := c.tg.SendMessage(ctx, params)
		if err != nil && msg.Markdown {
			c.log.Warn().Err(err).Msg("markdown rejected, resending as plain text")
			params.ParseMode = ""
			_, err = c.tg.SendMessage(ctx, params)
		}
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

func (c *chatReplier) Typing(ctx context.Context) error {
	_, err := c.tg.SendChatAction(ctx, &tbot.SendChatActionParams{
		ChatID: c.chatID,
		Action: models.ChatActionTyping,
	})
	return err
}

// splitMessage cuts text into chunks of at most limit UTF-16 code units,
// preferring line breaks. A rune wider than limit still gets its own chunk.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if runesWithin(runes, limit) == len(runes) {
		return []string{text}
	}

	var chunks []string
	for {
		fit := runesWithin(runes, limit)
		if fit == len(runes) {
			break
		}
		if fit == 0 {
			fit = 1
		}
		cut := fit
		if i := lastIndexRune(runes[:fit], '\n'); i > 0 {
			cut = i
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// runesWithin reports how many leading runes fit in limit UTF-16 code units.
func runesWithin(runes []rune, limit int) int {
	units := 0
	for i, r := range runes {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > limit {
			return i
		}
		units += n
	}
	return len(runes)
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
