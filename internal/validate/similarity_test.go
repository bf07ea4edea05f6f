package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "kumar", b: "kumar", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "", b: "abc", want: 3},
		{name: "single substitution", a: "rajesh", b: "rajash", want: 1},
		{name: "insertion", a: "kumar", b: "kumars", want: 1},
		{name: "deletion", a: "sharma", b: "sharm", want: 1},
		{name: "classic kitten", a: "kitten", b: "sitting", want: 3},
		{name: "multibyte runes", a: "राजेश", b: "राजेष", want: 1},
		{name: "symmetric", a: "sitting", b: "kitten", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "rajesh kumar", b: "rajesh kumar", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "completely different", a: "aaaa", b: "bbbb", want: 0.0},
		{name: "one away of ten", a: "0123456789", b: "012345678x", want: 0.9},
		{name: "empty against value", a: "", b: "abcd", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarity(tt.a, tt.b), 1e-9)
		})
	}
}
