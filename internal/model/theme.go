package model

import (
	"fmt"

	"github.com/Furiouss38/podv2/pkg/slugify"
)

// Theme is a node in a channel's theme tree.
type Theme struct {
	ID          int64   `json:"id"`
	ParentID    *int64  `json:"parentId,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Headband    *string `json:"headband,omitempty"`
	ChannelID   int64   `json:"channelId"`

	// ChannelTitle is filled on reads for display.
	ChannelTitle string `json:"channelTitle,omitempty"`
}

// PrepareSave derives the slug from the title. Called on every save.
func (t *Theme) PrepareSave() {
	t.Slug = slugify.MakeMax(t.Title, SlugMaxLen)
}

func (t Theme) String() string {
	return fmt.Sprintf("%s: %s", t.ChannelTitle, t.Title)
}
