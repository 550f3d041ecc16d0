package model

import "github.com/Furiouss38/podv2/pkg/slugify"

// Taxon is a flat, titled classification with an optional icon.
// Types and disciplines share this shape and live in separate tables.
type Taxon struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// Type is the kind of a video (course, conference, ...). Every video has one.
type Type = Taxon

// Discipline is a field of study a video may be tagged with.
type Discipline = Taxon

// PrepareSave derives the slug from the title. Called on every save.
func (t *Taxon) PrepareSave() {
	t.Slug = slugify.MakeMax(t.Title, SlugMaxLen)
}

func (t Taxon) String() string {
	return t.Title
}
