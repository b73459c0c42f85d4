package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name          string
		price         int64
		originalPrice int64
		want          int
	}{
		{"typical markdown", 800000, 950000, 16},
		{"half off", 500, 1000, 50},
		{"no original price", 800000, 0, 0},
		{"price equals original", 1000, 1000, 0},
		{"price above original", 1200, 1000, 0},
		{"rounds up", 667, 1000, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDiscount(tt.price, tt.originalPrice))
		})
	}
}

func TestProduct_SectionList(t *testing.T) {
	p := Product{Sections: "hero, popular,deals"}
	assert.Equal(t, []string{"hero", "popular", "deals"}, p.SectionList())

	empty := Product{}
	assert.Nil(t, empty.SectionList())
}

func TestProduct_InSection(t *testing.T) {
	p := Product{Sections: "hero,popular"}
	assert.True(t, p.InSection(SectionHero))
	assert.True(t, p.InSection(SectionPopular))
	assert.False(t, p.InSection(SectionDeals))
}

func TestProduct_TagList(t *testing.T) {
	p := Product{Tags: "smartphone,apple"}
	assert.Equal(t, []string{"smartphone", "apple"}, p.TagList())
}
