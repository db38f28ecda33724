package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"empty query matches", "", []string{"anything"}, true},
		{"case-insensitive", "PARASITE", []string{"Parasite"}, true},
		{"substring", "busan", []string{"Train to Busan"}, true},
		{"unicode fold", "crème", []string{"CRÈME BRÛLÉE"}, true},
		{"no match", "zombie", []string{"Parasite", "a poor family"}, false},
		{"matches any field", "family", []string{"Parasite", "a poor family schemes"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textMatches(tt.query, tt.fields...))
		})
	}
}

func TestHasGenre(t *testing.T) {
	assert.True(t, hasGenre("thriller,drama", "drama"))
	assert.True(t, hasGenre("Thriller, Drama", "thriller"))
	assert.True(t, hasGenre("thriller,drama", "DRAMA"))
	assert.False(t, hasGenre("thriller,drama", "dram"))
	assert.False(t, hasGenre("", "drama"))
}
