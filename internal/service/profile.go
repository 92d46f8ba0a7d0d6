package service

import (
	"sort"

	"github.com/timmy/artfolio/internal/domain"
)

// maxPreferencesPerField is how many ranked values each profile field keeps.
const maxPreferencesPerField = 3

// preferenceCounter counts values in first-seen order.
type preferenceCounter struct {
	order  []string
	counts map[string]int
}

func newPreferenceCounter() *preferenceCounter {
	return &preferenceCounter{counts: make(map[string]int)}
}

func (c *preferenceCounter) add(value string) {
	if value == "" {
		return
	}
	if _, ok := c.counts[value]; !ok {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

// top returns the highest counts, ties keeping first-seen order.
func (c *preferenceCounter) top(n int) []domain.PreferenceCount {
	ranked := make([]domain.PreferenceCount, 0, len(c.order))
	for _, value := range c.order {
		ranked = append(ranked, domain.PreferenceCount{Value: value, Count: c.counts[value]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// buildPreferenceProfile ranks the categorical fields of the saved artworks.
func buildPreferenceProfile(saved []domain.SavedArtwork) domain.PreferenceProfile {
	department := newPreferenceCounter()
	artworkType := newPreferenceCounter()
	placeOfOrigin := newPreferenceCounter()
	medium := newPreferenceCounter()
	artist := newPreferenceCounter()

	for i := range saved {
		a := &saved[i].Artwork
		department.add(a.Department)
		artworkType.add(a.ArtworkType)
		placeOfOrigin.add(a.PlaceOfOrigin)
		medium.add(a.Medium)
		artist.add(a.Artist)
	}

	return domain.PreferenceProfile{
		Department:    department.top(maxPreferencesPerField),
		ArtworkType:   artworkType.top(maxPreferencesPerField),
		PlaceOfOrigin: placeOfOrigin.top(maxPreferencesPerField),
		Medium:        medium.top(maxPreferencesPerField),
		Artist:        artist.top(maxPreferencesPerField),
	}
}
