package domain

import "strings"

// Filters narrows an artwork query. Empty fields are unset; a zero Filters
// value means an unfiltered listing.
type Filters struct {
	Department    string `json:"department,omitempty"`
	ArtworkType   string `json:"artwork_type,omitempty"`
	PlaceOfOrigin string `json:"place_of_origin,omitempty"`
	Medium        string `json:"medium,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// String renders the set fields as key=value pairs for logging.
func (f Filters) String() string {
	if f.IsEmpty() {
		return "unfiltered"
	}
	parts := make([]string, 0, 4)
	if f.Department != "" {
		parts = append(parts, "department="+f.Department)
	}
	if f.ArtworkType != "" {
		parts = append(parts, "artwork_type="+f.ArtworkType)
	}
	if f.PlaceOfOrigin != "" {
		parts = append(parts, "place_of_origin="+f.PlaceOfOrigin)
	}
	if f.Medium != "" {
		parts = append(parts, "medium="+f.Medium)
	}
	return strings.Join(parts, ",")
}

// PreferenceCount is one ranked value of a preference field.
type PreferenceCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PreferenceProfile holds the top ranked values per categorical field,
// derived from the saved artworks on every recommendation request.
type PreferenceProfile struct {
	Department    []PreferenceCount `json:"department"`
	ArtworkType   []PreferenceCount `json:"artwork_type"`
	PlaceOfOrigin []PreferenceCount `json:"place_of_origin"`
	Medium        []PreferenceCount `json:"medium"`
	Artist        []PreferenceCount `json:"artist"`
}

// RecommendationSummary explains a recommendation result.
type RecommendationSummary struct {
	TotalRecommendations int      `json:"total_recommendations"`
	Reasons              []string `json:"reasons"`
	Filters              Filters  `json:"filters"`
}

// RecommendationResult is the output of a recommendation run.
type RecommendationResult struct {
	Recommendations []Artwork             `json:"recommendations"`
	Summary         RecommendationSummary `json:"summary"`
}
