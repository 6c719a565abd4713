package extract

import (
	"strings"
	"unicode"
)

const edgePunct = `.,;:!?"'()[]{}*_~` + "`"

// token is one whitespace-delimited word of an utterance.
type token struct {
	word string // raw text with edge punctuation removed, case kept
	norm string // lowercased word
	stop bool   // raw text ended a clause (",", ".", ";", "!", "?")
}

func tokenize(text string) []token {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	toks := make([]token, 0, len(fields))
	for _, f := range fields {
		word := strings.Trim(f, edgePunct)
		if word == "" {
			continue
		}
		toks = append(toks, token{
			word: word,
			norm: strings.ToLower(word),
			stop: strings.ContainsAny(f[len(f)-1:], ",.;!?"),
		})
	}
	return toks
}
