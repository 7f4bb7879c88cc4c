// Package prompt renders the instructions sent to the completion models.
package prompt

import (
	"fmt"
	"strings"
)

// Devotional returns the instruction for a short devotional about topic.
func Devotional(topic string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Escreva um devocional cristão curto e inspirador sobre o tema '%s'.\n\n", topic)
	b.WriteString("- Inclua UM versículo bíblico (com referência correta).\n")
	b.WriteString("- Inclua uma reflexão.\n")
	b.WriteString("- Termine com UMA aplicação prática.\n")
	b.WriteString("- Texto acolhedor com ~130-220 palavras.")

	return b.String()
}

// ReadingPlan returns the instruction for a day-by-day Bible reading plan.
func ReadingPlan(days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Crie um PLANO BÍBLICO completo para %s.\n\n", DayLabel(days))
	b.WriteString("Regras:\n")
	b.WriteString("- Divida os livros e capítulos da Bíblia de maneira equilibrada.\n")
	b.WriteString("- Evite leituras extremamente longas em um único dia.\n")
	b.WriteString("- Varie entre Antigo e Novo Testamento para manter consistência espiritual.\n")
	b.WriteString("- Apresente o plano em formato organizado:\n")
	b.WriteString("  Dia 1: ...\n")
	if days > 1 {
		b.WriteString("  Dia 2: ...\n")
		b.WriteString("  etc.\n")
	}
	b.WriteString("- No final, inclua uma mensagem de motivação espiritual.\n")
	b.WriteString("- Não ultrapasse 450-600 palavras.")

	return b.String()
}

// DayLabel renders a day count with the right grammatical number.
func DayLabel(days int) string {
	if days == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", days)
}
