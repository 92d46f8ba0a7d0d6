package artic

import "github.com/timmy/artfolio/internal/domain"

// Keyword fields the search endpoint matches filters against.
const (
	fieldDepartment    = "department_title.keyword"
	fieldArtworkType   = "artwork_type_title.keyword"
	fieldPlaceOfOrigin = "place_of_origin.keyword"
	fieldMedium        = "medium_display.keyword"
)

// buildQuery converts filters into an Elasticsearch bool query.
// Empty filters produce a match_all query.
func buildQuery(filters domain.Filters) map[string]interface{} {
	var must []interface{}
	addTerm := func(field, value string) {
		if value == "" {
			return
		}
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}

	addTerm(fieldDepartment, filters.Department)
	addTerm(fieldArtworkType, filters.ArtworkType)
	addTerm(fieldPlaceOfOrigin, filters.PlaceOfOrigin)
	addTerm(fieldMedium, filters.Medium)

	if len(must) == 0 {
		return map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must": must,
		},
	}
}
