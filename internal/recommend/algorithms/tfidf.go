// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package algorithms

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when Vectorize is called without documents.
var ErrEmptyCorpus = errors.New("empty corpus")

// defaultTokenPattern matches runs of two or more word characters.
var defaultTokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDF is a term-frequency / inverse-document-frequency vectorizer.
//
// Term frequency is the raw token count, IDF is smoothed as
// ln((1+N)/(1+df)) + 1 and every vector is L2-normalised, so Score reduces
// to a dot product for non-empty documents.
//
// A TFIDF value holds no state between Vectorize calls; the vocabulary is
// rebuilt from each corpus.
type TFIDF struct {
	tokenPattern *regexp.Regexp
}

// NewTFIDF creates a TF-IDF vectorizer with the default tokenizer.
func NewTFIDF() *TFIDF {
	return &TFIDF{tokenPattern: defaultTokenPattern}
}

// Name returns the backend identifier.
func (t *TFIDF) Name() string {
	return "tfidf"
}

// Vectorize builds the vocabulary and IDF weights from corpus and returns
// the normalised TF-IDF vector of every document.
func (t *TFIDF) Vectorize(corpus []string) ([]Vector, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		tokens := t.tokenize(text)
		docs[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Sorted vocabulary keeps dimensions stable for a given corpus.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	vectors := make([]Vector, len(docs))
	for i, tokens := range docs {
		vectors[i] = weigh(tokens, vocabulary, idf)
	}
	return vectors, nil
}

// Score returns the cosine similarity of a and b.
func (t *TFIDF) Score(a, b Vector) float64 {
	return Cosine(a, b)
}

func (t *TFIDF) tokenize(text string) []string {
	pattern := t.tokenPattern
	if pattern == nil {
		pattern = defaultTokenPattern
	}
	return pattern.FindAllString(strings.ToLower(text), -1)
}

// weigh computes the L2-normalised TF-IDF vector for one tokenised document.
func weigh(tokens []string, vocabulary map[string]int, idf []float64) Vector {
	vec := make(Vector, len(idf))
	for _, tok := range tokens {
		if idx, ok := vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx, count := range vec {
		if count == 0 {
			continue
		}
		vec[idx] = count * idf[idx]
		norm += vec[idx] * vec[idx]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
