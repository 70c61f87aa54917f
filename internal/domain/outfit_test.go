package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "prefixes and lowercases",
			in:   []string{"Summer", "WORK"},
			want: []string{"#summer", "#work"},
		},
		{
			name: "trims whitespace",
			in:   []string{" beach ", "\tformal"},
			want: []string{"#beach", "#formal"},
		},
		{
			name: "dedupes preserving first occurrence",
			in:   []string{"Summer", "#summer", " summer "},
			want: []string{"#summer"},
		},
		{
			name: "drops empty tags",
			in:   []string{"", "  ", "#", "ok"},
			want: []string{"#ok"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestNormalizeTagsIdempotent(t *testing.T) {
	once := NormalizeTags([]string{"Summer", "Work Wear", "#Beach"})
	twice := NormalizeTags(once)
	assert.Equal(t, once, twice)
}

func TestNewOutfit(t *testing.T) {
	outfit, err := NewOutfit("Office", []string{"c1", "c2"}, []string{"Work"})
	require.NoError(t, err)
	assert.NotEmpty(t, outfit.ID)
	assert.Equal(t, []string{"#work"}, outfit.Tags)
	assert.False(t, outfit.CreatedAt.IsZero())
}

func TestNewOutfitValidation(t *testing.T) {
	_, err := NewOutfit("", []string{"c1"}, nil)
	assert.ErrorIs(t, err, ErrOutfitNameEmpty)

	_, err = NewOutfit("Office", nil, nil)
	assert.ErrorIs(t, err, ErrOutfitNoClothes)

	_, err = NewOutfit("Office", []string{"c1", ""}, nil)
	assert.ErrorIs(t, err, ErrOutfitClothEmpty)
}
