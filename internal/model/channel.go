package model

import "github.com/Furiouss38/podv2/pkg/slugify"

// SlugMaxLen is the width of the slug columns of channels, themes, types
// and disciplines.
const SlugMaxLen = 100

// Channel groups themes and videos under a public page. Owners manage it,
// users may publish to it.
type Channel struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Headband    *string `json:"headband,omitempty"`
	Color       *string `json:"color,omitempty"`
	Style       *string `json:"style,omitempty"`
	OwnerIDs    []int64 `json:"owners"`
	UserIDs     []int64 `json:"users"`
	Visible     bool    `json:"visible"`
}

// PrepareSave derives the slug from the title. Called on every save.
func (c *Channel) PrepareSave() {
	c.Slug = slugify.MakeMax(c.Title, SlugMaxLen)
}

func (c Channel) String() string {
	return c.Title
}

// ChannelResponse is the API response for a channel lookup by slug.
type ChannelResponse struct {
	Channel
	Themes []Theme `json:"themes"`
}
