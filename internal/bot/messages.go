package bot

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/j0lvera/devocional/internal/prompt"
)

const (
	helpMessage = "📖 *Bem-vindo ao Devocional Diário!*\n\n" +
		"Comandos disponíveis:\n" +
		"• /temas – ver lista de temas\n" +
		"• /devocional <tema>\n" +
		"• /plano <dias/meses> – Ex: /plano 30 dias, /plano 3 meses\n"

	devotionalUsage    = "Use assim:\n/devocional <tema>"
	invalidTopic       = "❌ Tema inválido!\nUse /temas para ver a lista."
	devotionalProgress = "⏳ Gerando devocional..."

	planUsage       = "Use assim:\n/plano 30 dias\n/plano 3 meses"
	planMissingUnit = "❌ Especifique se é dias ou meses.\nEx: /plano 30 dias"
	planMalformed   = "❌ Formato inválido.\nEx: /plano 30 dias, /plano 3 meses"

	unknownCommand = "Comando desconhecido.\nUse /start para ver os comandos disponíveis."
)

// titleCase capitalizes every word. Casers hold state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

func topicsMessage(topics []string) string {
	lines := make([]string, 0, len(topics))
	for _, t := range topics {
		lines = append(lines, "• "+titleCase(t))
	}
	return "📚 *Temas disponíveis:*\n\n" + strings.Join(lines, "\n")
}

func devotionalHeading(topic string) string {
	return fmt.Sprintf("📖 *Devocional sobre %s*", titleCase(topic))
}

func planProgress(days int) string {
	return fmt.Sprintf("⏳ Montando plano bíblico para %s...", prompt.DayLabel(days))
}

func planHeading(days int) string {
	return fmt.Sprintf("📘 *Plano Bíblico – %s*", prompt.DayLabel(days))
}
