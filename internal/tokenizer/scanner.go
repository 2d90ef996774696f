package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// scan splits s into tokens using a rune-by-rune state machine.
// The caller guarantees s is non-empty.
//
// Rule priority (highest first):
//   - Whitespace runs
//   - Word runs (letters, numbers, underscore, marks) with hyphen and
//     apostrophe joining
//   - Punctuation, one rune per token except repeated hyphens
//   - Everything else is a Symbol
func scan(s string) []Token {
	tokens := make([]Token, 0, len(s)/4+1)

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		if unicode.IsSpace(r) {
			start := i
			i += size
			for i < len(s) {
				nr, ns := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsSpace(nr) {
					break
				}
				i += ns
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Space})
			continue
		}

		if isWordRune(r) {
			tok := scanWord(s, i)
			tokens = append(tokens, tok)
			i = tok.End
			continue
		}

		if unicode.IsPunct(r) {
			start := i
			i += size
			if r == '-' {
				for i < len(s) && s[i] == '-' {
					i++
				}
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Punctuation})
			continue
		}

		tokens = append(tokens, Token{Text: s[i : i+size], Start: i, End: i + size, Type: Symbol})
		i += size
	}

	return tokens
}

// scanWord reads a word token starting at pos. Single hyphens between word
// runes and apostrophes between letters are kept inside the token.
func scanWord(s string, pos int) Token {
	i := consumeWordRun(s, pos)

	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		if r == '-' {
			next := i + size
			if next < len(s) {
				nr, _ := utf8.DecodeRuneInString(s[next:])
				if isWordRune(nr) {
					i = consumeWordRun(s, next)
					continue
				}
			}
			break
		}

		if isApostrophe(r) {
			next := i + size
			if next < len(s) {
				nr, _ := utf8.DecodeRuneInString(s[next:])
				pr, _ := utf8.DecodeLastRuneInString(s[pos:i])
				if unicode.IsLetter(nr) && unicode.IsLetter(pr) {
					i = consumeWordRun(s, next)
					continue
				}
			}
			break
		}

		break
	}

	typ := Number
	for _, r := range s[pos:i] {
		if unicode.IsLetter(r) {
			typ = Word
			break
		}
	}

	return Token{Text: s[pos:i], Start: pos, End: i, Type: typ}
}

func consumeWordRun(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !isWordRune(r) {
			break
		}
		pos += size
	}
	return pos
}

// isWordRune reports whether r belongs to a word run: the same class a
// regular-expression \w matches in Unicode mode, plus combining marks so
// decomposed accents stay attached to their base letter.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}
