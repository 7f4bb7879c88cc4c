package main

import (
	"github.com/j0lvera/devocional/internal/ai"
	"github.com/j0lvera/devocional/internal/bot"
	"github.com/j0lvera/devocional/internal/config"
	"github.com/j0lvera/devocional/internal/log"
	"github.com/j0lvera/devocional/internal/metrics"
	"go.uber.org/fx"
)

func modules() fx.Option {
	return fx.Options(
		config.Module(),
		log.Module(),
		metrics.Module(),
		ai.Module(),
		bot.Module(),
	)
}

func main() {

	fx.New(
		modules(),
	).Run()
}
