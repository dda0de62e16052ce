package game

import (
	"strings"
	"unicode"
)

// Validate checks that token is an admissible candidate word.
// Rules are applied in order and the first failure wins:
// empty, whitespace-only, then anything that is not a letter.
func Validate(token string) (Word, error) {
	if token == "" {
		return "", &InvalidWordError{Token: token, Reason: ReasonEmpty}
	}
	if strings.TrimSpace(token) == "" {
		return "", &InvalidWordError{Token: token, Reason: ReasonWhitespace}
	}
	if !isLetters(token) {
		return "", &InvalidWordError{Token: token, Reason: ReasonNonLetters}
	}
	return Word(token), nil
}

// ValidateRef is Validate for optional tokens, e.g. a JSON null inside a word list.
func ValidateRef(token *string) (Word, error) {
	if token == nil {
		return "", &InvalidWordError{Reason: ReasonNull}
	}
	return Validate(*token)
}

// isLetters reports whether s consists only of Unicode letters.
func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
