// Package command interprets the free-text arguments of chat commands.
package command

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrInvalidTopic = errors.New("invalid topic")
)

// minTypoRunes is the shortest input the typo pass will consider.
const minTypoRunes = 3

// ResolveTopic maps user input onto the canonical catalog entry. An exact
// match wins; otherwise the first entry, in catalog order, that contains the
// input is returned. As a last resort an input that is an entry with exactly
// one letter dropped ("espernça") matches that entry.
// The reverse containment is never tried.
func ResolveTopic(input string, catalog []string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", ErrEmptyInput
	}

	for _, topic := range catalog {
		if strings.ToLower(topic) == needle {
			return topic, nil
		}
	}

	for _, topic := range catalog {
		if strings.Contains(strings.ToLower(topic), needle) {
			return topic, nil
		}
	}

	if utf8.RuneCountInString(needle) >= minTypoRunes {
		for _, topic := range catalog {
			if isDroppedLetterOf(needle, strings.ToLower(topic)) {
				return topic, nil
			}
		}
	}

	return "", ErrInvalidTopic
}

// isDroppedLetterOf reports whether removing one rune from topic yields s.
func isDroppedLetterOf(s, topic string) bool {
	want, have := []rune(s), []rune(topic)
	if len(have) != len(want)+1 {
		return false
	}

	i := 0
	for i < len(want) && want[i] == have[i] {
		i++
	}
	return string(want[i:]) == string(have[i+1:])
}
