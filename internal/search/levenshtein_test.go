package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "agumon", b: "agumon", want: 0},
		{name: "single insertion", a: "agumon", b: "agumonx", want: 1},
		{name: "single substitution", a: "agumon", b: "egumon", want: 1},
		{name: "classic kitten sitting", a: "kitten", b: "sitting", want: 3},
		{name: "empty left", a: "", b: "abc", want: 3},
		{name: "empty right", a: "abc", b: "", want: 3},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestDistanceProperties(t *testing.T) {
	words := []string{"", "agumon", "greymon", "omegamon", "mon", "agumonx", "gabumon"}

	for _, a := range words {
		assert.Zero(t, Distance(a, a), "identity for %q", a)
		for _, b := range words {
			assert.Equal(t, Distance(a, b), Distance(b, a), "symmetry for %q/%q", a, b)
			for _, c := range words {
				assert.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c),
					"triangle inequality for %q/%q/%q", a, b, c)
			}
		}
	}
}
