// Package presentation turns a verified post into what a viewer shows:
// truncated text, classified spans, sized media and the creator card.
package presentation

import (
	"strings"
	"unicode/utf8"
)

const (
	TruncateLength = 500
	TruncateLines  = 8
	Ellipsis       = "..."
)

type Text struct {
	Full      string `json:"full"`
	Displayed string `json:"displayed"`
	TooLong   bool   `json:"tooLong"`
	Expanded  bool   `json:"expanded"`
}

// IsTooLong reports whether text exceeds the character or the line limit.
func IsTooLong(text string) bool {
	return utf8.RuneCountInString(text) > TruncateLength ||
		strings.Count(text, "\n")+1 > TruncateLines
}

// Collapse keeps the first TruncateLength characters and appends the
// ellipsis. Text that already ends in the ellipsis within the collapsed
// length is returned as is, so collapsing twice changes nothing.
func Collapse(text string) string {
	runes := []rune(text)
	if strings.HasSuffix(text, Ellipsis) && len(runes) <= TruncateLength+utf8.RuneCountInString(Ellipsis) {
		return text
	}
	if len(runes) > TruncateLength {
		text = string(runes[:TruncateLength])
	}
	return text + Ellipsis
}

// RenderText applies the truncation rule. Standalone views always show the
// full text; otherwise expanded is the viewer's show more/show less toggle.
func RenderText(text string, standalone, expanded bool) Text {
	if standalone {
		return Text{Full: text, Displayed: text, Expanded: true}
	}

	tooLong := IsTooLong(text)
	displayed := text
	if tooLong && !expanded {
		displayed = Collapse(text)
	}
	return Text{Full: text, Displayed: displayed, TooLong: tooLong, Expanded: expanded || !tooLong}
}
