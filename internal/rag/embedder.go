package rag

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Embedder generates text embeddings.
type Embedder interface {
	// Embed generates the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int
}

// EmbedderConfig holds lexical embedder configuration.
type EmbedderConfig struct {
	Dimensions int // hashed vector size, default 512
	CacheSize  int // LRU cache size, default 4096
}

// lexicalEmbedder produces deterministic hashed term-frequency vectors.
// Cosine similarity over these vectors is a lexical similarity measure: no
// model call, no network, identical input always embeds identically.
type lexicalEmbedder struct {
	dims  int
	cache *lru.Cache[string, []float32]
}

// NewLexicalEmbedder creates a term-frequency embedder.
func NewLexicalEmbedder(config EmbedderConfig) (Embedder, error) {
	if config.Dimensions <= 0 {
		config.Dimensions = 512
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 4096
	}

	cache, err := lru.New[string, []float32](config.CacheSize)
	if err != nil {
		return nil, err
	}

	return &lexicalEmbedder{dims: config.Dimensions, cache: cache}, nil
}

func (e *lexicalEmbedder) Dimensions() int {
	return e.dims
}

func (e *lexicalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	vec := make([]float32, e.dims)
	for _, term := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(term))
		vec[h.Sum32()%uint32(e.dims)]++
	}

	// L2 normalize so dot products are cosine similarities.
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}

	e.cache.Add(text, vec)
	return vec, nil
}

// stopwords filters high-frequency terms that carry no lexical signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "i": true, "in": true,
	"is": true, "it": true, "my": true, "of": true, "on": true, "or": true,
	"so": true, "the": true, "to": true, "was": true, "what": true,
	"with": true, "you": true, "your": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopwords[f] {
			terms = append(terms, f)
		}
	}
	return terms
}
