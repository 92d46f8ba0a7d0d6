package service

import "github.com/timmy/artfolio/internal/domain"

// buildStrategies orders filter combinations from most to least specific.
// Artist preferences only feed the summary and never become a filter.
func buildStrategies(profile domain.PreferenceProfile) []domain.Filters {
	strategies := make([]domain.Filters, 0, 5)

	dept, hasDept := topValue(profile.Department)
	artworkType, hasType := topValue(profile.ArtworkType)

	if hasDept && hasType {
		strategies = append(strategies, domain.Filters{Department: dept, ArtworkType: artworkType})
	}
	if hasDept {
		strategies = append(strategies, domain.Filters{Department: dept})
	}
	if hasType {
		strategies = append(strategies, domain.Filters{ArtworkType: artworkType})
	}
	if place, ok := topValue(profile.PlaceOfOrigin); ok {
		strategies = append(strategies, domain.Filters{PlaceOfOrigin: place})
	}
	if medium, ok := topValue(profile.Medium); ok {
		strategies = append(strategies, domain.Filters{Medium: medium})
	}
	return strategies
}

func topValue(ranked []domain.PreferenceCount) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Value, true
}
