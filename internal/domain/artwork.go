package domain

// Artwork represents a museum artwork as returned by the collection API.
// Optional fields are empty strings when the API has no value for them.
type Artwork struct {
	ID                 int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title              string `gorm:"type:text;not null" json:"title"`
	ArtistDisplay      string `gorm:"type:text" json:"artist_display,omitempty"`
	DateDisplay        string `gorm:"type:text" json:"date_display,omitempty"`
	ImageID            string `gorm:"type:text" json:"image_id,omitempty"`
	ImageURL           string `gorm:"type:text" json:"image_url,omitempty"`
	Description        string `gorm:"type:text" json:"description,omitempty"`
	Provenance         string `gorm:"type:text" json:"provenance,omitempty"`
	PublicationHistory string `gorm:"type:text" json:"publication_history,omitempty"`
	ExhibitionHistory  string `gorm:"type:text" json:"exhibition_history,omitempty"`

	// Categorical fields used as preference signals.
	Department    string `gorm:"type:text" json:"department,omitempty"`
	ArtworkType   string `gorm:"type:text" json:"artwork_type,omitempty"`
	PlaceOfOrigin string `gorm:"type:text" json:"place_of_origin,omitempty"`
	Medium        string `gorm:"type:text" json:"medium,omitempty"`
	Artist        string `gorm:"type:text" json:"artist,omitempty"`
}

// HasImage reports whether the artwork carries an image reference.
// Artworks without one are never displayed.
func (a *Artwork) HasImage() bool {
	return a.ImageID != ""
}

// SavedArtwork is an artwork the user added to their collection.
type SavedArtwork struct {
	Artwork `gorm:"embedded"`

	// SavedAt is the epoch millisecond timestamp of the save.
	SavedAt int64 `gorm:"not null;index:idx_saved_artworks_saved_at" json:"saved_at"`

	// Mirror metadata, set only when image mirroring is enabled.
	MirrorURL string `gorm:"type:text" json:"mirror_url,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// TableName returns the database table name for SavedArtwork.
func (SavedArtwork) TableName() string {
	return "saved_artworks"
}

// DislikedArtwork is an artwork the user marked as disliked.
type DislikedArtwork struct {
	Artwork `gorm:"embedded"`

	// DislikedAt is the epoch millisecond timestamp of the dislike.
	DislikedAt int64 `gorm:"not null;index:idx_disliked_artworks_disliked_at" json:"disliked_at"`
}

// TableName returns the database table name for DislikedArtwork.
func (DislikedArtwork) TableName() string {
	return "disliked_artworks"
}
