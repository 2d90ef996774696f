package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// TFIDF is a fitted term-frequency / inverse-document-frequency model.
//
// idf uses add-one smoothing, idf(t) = ln((1+n)/(1+df(t))) + 1, and every
// document row is scaled to unit L2 norm. Terms are runs of two or more word
// runes, lowercased.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float64
	rows       [][]float64
}

// FitTFIDF learns the vocabulary and idf weights of docs and computes the
// weight matrix. A corpus without any term yields an empty model.
func FitTFIDF(docs [][]string) *TFIDF {
	analyzed := make([][]string, len(docs))
	vocabulary := map[string]int{}
	for i, doc := range docs {
		analyzed[i] = analyze(doc)
		for _, term := range analyzed[i] {
			if _, ok := vocabulary[term]; !ok {
				vocabulary[term] = 0
			}
		}
	}

	// Column order is the sorted vocabulary so the model is deterministic.
	terms := make([]string, 0, len(vocabulary))
	for term := range vocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for i, term := range terms {
		vocabulary[term] = i
	}

	df := make([]int, len(terms))
	tf := make([][]float64, len(docs))
	for i, doc := range analyzed {
		tf[i] = make([]float64, len(terms))
		for _, term := range doc {
			tf[i][vocabulary[term]]++
		}
		for j, c := range tf[i] {
			if c > 0 {
				df[j]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for j := range terms {
		idf[j] = math.Log((1+n)/(1+float64(df[j]))) + 1
	}

	for _, row := range tf {
		var norm float64
		for j := range row {
			row[j] *= idf[j]
			norm += row[j] * row[j]
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for j := range row {
			row[j] /= norm
		}
	}

	return &TFIDF{vocabulary: vocabulary, idf: idf, rows: tf}
}

// Has reports whether term is part of the fitted vocabulary.
func (m *TFIDF) Has(term string) bool {
	_, ok := m.vocabulary[term]
	return ok
}

// Weight returns the tf-idf weight of term in document doc, or 0 when either
// is unknown.
func (m *TFIDF) Weight(doc int, term string) float64 {
	j, ok := m.vocabulary[term]
	if !ok || doc < 0 || doc >= len(m.rows) {
		return 0
	}
	return m.rows[doc][j]
}

// IDF returns the idf of term, or 0 for an unknown term.
func (m *TFIDF) IDF(term string) float64 {
	j, ok := m.vocabulary[term]
	if !ok {
		return 0
	}
	return m.idf[j]
}

// Vocabulary returns the fitted terms in column order.
func (m *TFIDF) Vocabulary() []string {
	out := make([]string, len(m.vocabulary))
	for term, j := range m.vocabulary {
		out[j] = term
	}
	return out
}

// analyze splits tokens into lowercase runs of at least two word runes.
func analyze(tokens []string) []string {
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		for _, run := range strings.FieldsFunc(strings.ToLower(tok), func(r rune) bool { return !isWordRune(r) }) {
			if utf8.RuneCountInString(run) >= 2 {
				terms = append(terms, run)
			}
		}
	}
	return terms
}
