package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Robe d'été Fleurie", "robe-d-ete-fleurie"},
		{"  Chemise Blanche  ", "chemise-blanche"},
		{"Sac à main", "sac-a-main"},
		{"T-Shirt 100% Coton", "t-shirt-100-coton"},
		{"Châle & Foulard", "chale-foulard"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "%q", tt.in)
	}
}
