package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// contraction describes a fused word that Treebank tokenization splits in
// two. at is the byte offset of the split inside the lowercase form.
type contraction struct {
	at         int
	needsSpace bool // only split when followed by whitespace
}

var contractions = map[string]contraction{
	"cannot": {at: 3},
	"d'ye":   {at: 1},
	"gimme":  {at: 3},
	"gonna":  {at: 3},
	"gotta":  {at: 3},
	"lemme":  {at: 3},
	"more'n": {at: 4},
	"wanna":  {at: 3, needsSpace: true},
}

// clitics are checked in order; "n't" must precede the single-letter forms.
var clitics = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// splitWord returns the texts a word token produces after clitic and
// contraction splitting. s is the full input so lookahead rules can see what
// follows the token.
func splitWord(s string, t Token) []string {
	text := t.Text
	lower := strings.ToLower(strings.ReplaceAll(text, "’", "'"))

	if c, ok := contractions[lower]; ok && len(lower) == len(text) {
		if !c.needsSpace || followedBySpace(s, t.End) {
			return []string{text[:c.at], text[c.at:]}
		}
	}

	for _, cl := range clitics {
		if !strings.HasSuffix(lower, cl) || len(lower) == len(cl) {
			continue
		}
		// The curly apostrophe is three bytes, so cut by runes on text.
		cut := len(text) - cliticByteLen(text, len(cl))
		return []string{text[:cut], text[cut:]}
	}

	return []string{text}
}

// cliticByteLen returns how many trailing bytes of text hold the last n runes.
func cliticByteLen(text string, n int) int {
	size := 0
	for i := 0; i < n && size < len(text); i++ {
		_, w := utf8.DecodeLastRuneInString(text[:len(text)-size])
		size += w
	}
	return size
}

// followedBySpace reports whether s has whitespace at pos. The end of the
// input counts as whitespace.
func followedBySpace(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return unicode.IsSpace(r)
}
