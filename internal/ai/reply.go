package ai

import (
	"errors"
	"strings"
)

// ErrNoContent is returned when a reply carries no recoverable text.
var ErrNoContent = errors.New("no textual content in reply")

// PartTypeOutputText marks the segment of a record item that holds the
// generated text.
const PartTypeOutputText = "output_text"

// ItemKind tags the variant stored in an Item.
type ItemKind int

const (
	// ItemText is a bare text value.
	ItemText ItemKind = iota
	// ItemRecord is a structured entry made of typed parts.
	ItemRecord
)

// Part is one typed segment of a record item.
type Part struct {
	Type string
	Text string
}

// Item is one element of a reply's output list.
type Item struct {
	Kind  ItemKind
	Type  string // record type, e.g. "message"
	Text  string // set for ItemText
	Parts []Part // set for ItemRecord
}

// String renders the item as plain text.
func (i Item) String() string {
	if i.Kind == ItemText {
		return i.Text
	}

	texts := make([]string, 0, len(i.Parts))
	for _, p := range i.Parts {
		if t := strings.TrimSpace(p.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n")
}

// Reply is a completion reply as returned by a Completer. OutputText is the
// primary text field; Output holds whatever nested structure came with it.
type Reply struct {
	OutputText string
	Output     []Item
}

// Text extracts the generated text. The primary field wins when non-empty,
// then the first output_text part of the first record item, then the string
// form of the first item. The result is trimmed.
func (r Reply) Text() (string, error) {
	if t := strings.TrimSpace(r.OutputText); t != "" {
		return t, nil
	}

	if len(r.Output) == 0 {
		return "", ErrNoContent
	}

	first := r.Output[0]
	if first.Kind == ItemRecord {
		for _, p := range first.Parts {
			if p.Type == PartTypeOutputText {
				if t := strings.TrimSpace(p.Text); t != "" {
					return t, nil
				}
			}
		}
	}

	if t := strings.TrimSpace(first.String()); t != "" {
		return t, nil
	}

	return "", ErrNoContent
}
