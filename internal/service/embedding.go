package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/recipebox/backend/internal/model"
)

var embeddingStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "of": true,
	"the": true, "with": true, "to": true, "for": true, "in": true,
}

// GenerateEmbedding hashes the words of text into a bag of
// model.EmbeddingDims buckets and scales it to unit length. Texts sharing
// words end up close under L2 distance. Text without words embeds as the
// zero vector.
func GenerateEmbedding(text string) pgvector.Vector {
	v := make([]float32, model.EmbeddingDims)
	for _, w := range embeddingWords(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		v[h.Sum32()%uint32(model.EmbeddingDims)]++
	}

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range v {
			v[i] /= norm
		}
	}
	return pgvector.NewVector(v)
}

// embeddingWords lowercases text and drops numbers, stop words and one
// letter words. A trailing plural "s" is trimmed so "eggs" matches "egg".
func embeddingWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, w := range fields {
		if len(w) < 2 || embeddingStopWords[w] || strings.Trim(w, "0123456789") == "" {
			continue
		}
		if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
			w = w[:len(w)-1]
		}
		words = append(words, w)
	}
	return words
}

// recipeEmbeddingText is the text a recipe is embedded from: its name
// followed by its ingredient names.
func recipeEmbeddingText(name string, ingredients []string) string {
	return strings.TrimSpace(name + " " + strings.Join(ingredients, " "))
}
