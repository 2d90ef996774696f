// Package tokenizer splits English text into word tokens.
//
// The package provides two API layers:
//
//   - Structured: Tokens returns []Token with byte offsets and a type. The
//     invariant s[t.Start:t.End] == t.Text holds for every token, and
//     concatenating all token texts reconstructs the original string.
//
//   - Convenience: Words returns the word and number texts, with clitics
//     ("don't" -> "do", "n't") and fused contractions ("cannot" -> "can",
//     "not") split the way Penn Treebank tokenization does.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import "fmt"

// TokenType classifies a token.
type TokenType int

const (
	Word        TokenType = iota // Letters, digits, underscores and combining marks; may hold inner hyphens/apostrophes
	Number                       // A word run with no letters, e.g. "2019"
	Punctuation                  // Punctuation marks
	Space                        // Contiguous whitespace
	Symbol                       // Everything else: emoji, math symbols, etc.
)

// String returns the name of the token type.
func (t TokenType) String() string {
	switch t {
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Punctuation:
		return "Punctuation"
	case Space:
		return "Space"
	case Symbol:
		return "Symbol"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a unit of text with its position and classification.
type Token struct {
	Text  string    // The token text
	Start int       // Byte offset in the original string (inclusive)
	End   int       // Byte offset in the original string (exclusive)
	Type  TokenType // Classification of the token
}

// String returns a debug representation, e.g. Word("hello")[0:5].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}

// Tokens splits text into all tokens with metadata.
func Tokens(s string) []Token {
	if s == "" {
		return nil
	}
	return scan(s)
}

// Words returns Word and Number token texts with clitics and contractions
// split off. Case is preserved.
func Words(s string) []string {
	if s == "" {
		return nil
	}
	tokens := scan(s)
	words := make([]string, 0, len(tokens)/2+1)
	for _, t := range tokens {
		if t.Type != Word && t.Type != Number {
			continue
		}
		words = append(words, splitWord(s, t)...)
	}
	return words
}
