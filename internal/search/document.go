// Package search provides full-text movie search using Bleve. Text is folded
// before indexing and querying, so "zelaza" finds "Człowiek z żelaza".
package search

import (
	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/normalize"
)

// MovieDocument is the indexed form of a movie.
type MovieDocument struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"` // as entered, returned in hits
	Director       string   `json:"director"`
	Country        string   `json:"country"`
	Description    string   `json:"description,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Cut            string   `json:"cut"`
	Length         int      `json:"length"` // minutes including cut extras
	AgeRestriction string   `json:"age_restriction,omitempty"`
}

// NewMovieDocument builds the document for m.
func NewMovieDocument(m *domain.Movie) *MovieDocument {
	doc := &MovieDocument{
		ID:             m.ID(),
		Title:          m.Title(),
		Director:       m.Director(),
		Country:        m.Country(),
		Description:    m.Description(),
		Cut:            string(m.Cut().Kind()),
		Length:         m.TotalRuntime(),
		AgeRestriction: string(m.AgeRestriction()),
	}
	for _, k := range m.GenreKinds() {
		doc.Genres = append(doc.Genres, string(k))
	}
	return doc
}

// ToMap converts the document to the field names of the index mapping.
// Searchable text is folded; the display title is kept verbatim.
func (d *MovieDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":            d.ID,
		"display_title": d.Title,
		"title":         normalize.Fold(d.Title),
		"director":      normalize.Fold(d.Director),
		"country":       normalize.Fold(d.Country),
		"cut":           d.Cut,
		"length":        d.Length,
	}
	if d.Description != "" {
		m["description"] = normalize.Fold(d.Description)
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if d.AgeRestriction != "" {
		m["age_restriction"] = d.AgeRestriction
	}
	return m
}
