package service

import (
	"fmt"

	"github.com/timmy/artfolio/internal/domain"
)

const (
	noHistoryReason = "Save some artworks to get personalized recommendations"
	genericReason   = "Based on your saved artworks"

	fullSetRemark = "Found a full set of recommendations matching your taste"
	plentyRemark  = "Found plenty of artworks you might enjoy"
	fewRemark     = "Found a few artworks you might like"

	// plentyThreshold is the count above which results are called plenty.
	plentyThreshold = 15
)

// reasonFormats pairs each profile field with its reason text, in summary order.
var reasonFormats = []struct {
	field  func(domain.PreferenceProfile) []domain.PreferenceCount
	format string
}{
	{func(p domain.PreferenceProfile) []domain.PreferenceCount { return p.Department }, "You seem to enjoy artworks from the %s department (%d saved)"},
	{func(p domain.PreferenceProfile) []domain.PreferenceCount { return p.ArtworkType }, "You are drawn to the %s artwork type (%d saved)"},
	{func(p domain.PreferenceProfile) []domain.PreferenceCount { return p.PlaceOfOrigin }, "You often save artworks from %s (%d saved)"},
	{func(p domain.PreferenceProfile) []domain.PreferenceCount { return p.Medium }, "You appreciate works in %s (%d saved)"},
	{func(p domain.PreferenceProfile) []domain.PreferenceCount { return p.Artist }, "You have saved works by %s (%d saved)"},
}

// buildSummary explains a recommendation run from the profile and result count.
func buildSummary(profile domain.PreferenceProfile, count int) domain.RecommendationSummary {
	reasons := make([]string, 0, len(reasonFormats)+1)
	for _, rf := range reasonFormats {
		ranked := rf.field(profile)
		if len(ranked) == 0 {
			continue
		}
		reasons = append(reasons, fmt.Sprintf(rf.format, ranked[0].Value, ranked[0].Count))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, genericReason)
	}
	if remark := countRemark(count); remark != "" {
		reasons = append(reasons, remark)
	}

	var filters domain.Filters
	if dept, ok := topValue(profile.Department); ok {
		filters.Department = dept
	} else if artworkType, ok := topValue(profile.ArtworkType); ok {
		filters.ArtworkType = artworkType
	}

	return domain.RecommendationSummary{
		TotalRecommendations: count,
		Reasons:              reasons,
		Filters:              filters,
	}
}

func countRemark(count int) string {
	switch {
	case count == TargetRecommendations:
		return fullSetRemark
	case count > plentyThreshold:
		return plentyRemark
	case count > 0:
		return fewRemark
	default:
		return ""
	}
}
