package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/timmy/artfolio/internal/domain"
)

func TestBuildStrategies(t *testing.T) {
	top := func(value string) []domain.PreferenceCount {
		return []domain.PreferenceCount{{Value: value, Count: 2}, {Value: "runner-up", Count: 1}}
	}

	tests := []struct {
		name    string
		profile domain.PreferenceProfile
		want    []domain.Filters
	}{
		{
			name: "all fields present",
			profile: domain.PreferenceProfile{
				Department:    top("Modern Art"),
				ArtworkType:   top("Painting"),
				PlaceOfOrigin: top("France"),
				Medium:        top("Oil on canvas"),
				Artist:        top("Claude Monet"),
			},
			want: []domain.Filters{
				{Department: "Modern Art", ArtworkType: "Painting"},
				{Department: "Modern Art"},
				{ArtworkType: "Painting"},
				{PlaceOfOrigin: "France"},
				{Medium: "Oil on canvas"},
			},
		},
		{
			name:    "department only",
			profile: domain.PreferenceProfile{Department: top("Prints and Drawings")},
			want:    []domain.Filters{{Department: "Prints and Drawings"}},
		},
		{
			name: "type and medium skip the combined strategy",
			profile: domain.PreferenceProfile{
				ArtworkType: top("Sculpture"),
				Medium:      top("Bronze"),
			},
			want: []domain.Filters{
				{ArtworkType: "Sculpture"},
				{Medium: "Bronze"},
			},
		},
		{
			name:    "artist never becomes a filter",
			profile: domain.PreferenceProfile{Artist: top("Georges Seurat")},
			want:    []domain.Filters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildStrategies(tt.profile))
		})
	}
}
