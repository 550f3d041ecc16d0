package model

import (
	"fmt"
	"time"

	"github.com/Furiouss38/podv2/pkg/slugify"
)

// VideoSlugMaxLen is the width of videos.slug.
const VideoSlugMaxLen = 255

// DefaultCursus is the course level ("none / all") of videos that do not name one.
const DefaultCursus = "0"

// Video is a published media file with its descriptive metadata.
type Video struct {
	ID               int64      `json:"id"`
	File             string     `json:"video,omitempty"`
	AllowDownloading bool       `json:"allowDownloading"`
	Is360            bool       `json:"is360"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	OwnerID          int64      `json:"ownerId"`
	DateAdded        time.Time  `json:"dateAdded"`
	DateEvt          *time.Time `json:"dateEvt,omitempty"`
	Description      string     `json:"description"`
	Cursus           string     `json:"cursus"`
	MainLang         string     `json:"mainLang"`
	Overview         *string    `json:"overview,omitempty"`
	Duration         int        `json:"duration"`
	InfoVideo        *string    `json:"infoVideo,omitempty"`
	IsDraft          bool       `json:"isDraft"`
	IsRestricted     bool       `json:"isRestricted"`
	GroupIDs         []int64    `json:"restrictAccessToGroups"`
	Password         *string    `json:"-"`
	Tags             string     `json:"tags"`
	Thumbnails       *string    `json:"thumbnails,omitempty"`
	TypeID           int64      `json:"typeId"`
	DisciplineIDs    []int64    `json:"disciplines"`
}

// VideoSlug formats the display slug of a video: the identity zero-padded
// to four digits, a dash, then the slugified title cut to fit the column.
func VideoSlug(id int64, title string) string {
	prefix := fmt.Sprintf("%04d-", id)
	return prefix + slugify.MakeMax(title, VideoSlugMaxLen-len(prefix))
}

// PrepareSave recomputes the derived fields using id as the video's
// identity (the predicted one for rows not inserted yet).
func (v *Video) PrepareSave(id int64) {
	v.Slug = VideoSlug(id, v.Title)
	v.Tags = slugify.RemoveAccents(v.Tags)
}

// DurationInTime renders the duration as HH:MM:SS on a 24h clock.
func (v Video) DurationInTime() string {
	return time.Unix(int64(v.Duration), 0).UTC().Format("15:04:05")
}

func (v Video) String() string {
	return fmt.Sprintf("%04d - %s", v.ID, v.Title)
}

// VideoRequest is the API request body for creating or updating a video.
// Derived and system-computed fields (slug, overview, duration, info) are
// not accepted from clients.
type VideoRequest struct {
	File             *string    `json:"video,omitempty"`
	AllowDownloading bool       `json:"allowDownloading"`
	Is360            bool       `json:"is360"`
	Title            string     `json:"title"`
	OwnerID          int64      `json:"ownerId"`
	DateAdded        *time.Time `json:"dateAdded,omitempty"`
	DateEvt          *time.Time `json:"dateEvt,omitempty"`
	Description      string     `json:"description"`
	Cursus           string     `json:"cursus"`
	MainLang         string     `json:"mainLang"`
	IsDraft          *bool      `json:"isDraft,omitempty"`
	IsRestricted     bool       `json:"isRestricted"`
	GroupIDs         []int64    `json:"restrictAccessToGroups"`
	Password         *string    `json:"password,omitempty"`
	Tags             string     `json:"tags"`
	Thumbnails       *string    `json:"thumbnails,omitempty"`
	TypeID           int64      `json:"typeId"`
	DisciplineIDs    []int64    `json:"disciplines"`
}

// VideoDefaults are the column defaults applied to fields a request omits.
type VideoDefaults struct {
	TypeID   int64
	MainLang string
	Today    time.Time
}

// Apply copies the editable fields of the request onto v, filling
// defaults for omitted ones. System-computed fields of v are untouched,
// and so are the stored file, password and thumbnails when the request
// leaves them out.
func (r VideoRequest) Apply(v *Video, d VideoDefaults) {
	if r.File != nil {
		v.File = *r.File
	}
	if r.Password != nil {
		v.Password = r.Password
	}
	if r.Thumbnails != nil {
		v.Thumbnails = r.Thumbnails
	}
	v.AllowDownloading = r.AllowDownloading
	v.Is360 = r.Is360
	v.Title = r.Title
	v.OwnerID = r.OwnerID
	v.Description = r.Description
	v.IsRestricted = r.IsRestricted
	v.GroupIDs = r.GroupIDs
	v.Tags = r.Tags
	v.DisciplineIDs = r.DisciplineIDs

	v.Cursus = r.Cursus
	if v.Cursus == "" {
		v.Cursus = DefaultCursus
	}
	v.MainLang = r.MainLang
	if v.MainLang == "" {
		v.MainLang = d.MainLang
	}
	v.TypeID = r.TypeID
	if v.TypeID == 0 {
		v.TypeID = d.TypeID
	}

	switch {
	case r.DateAdded != nil:
		v.DateAdded = *r.DateAdded
	case v.DateAdded.IsZero():
		v.DateAdded = d.Today
	}
	switch {
	case r.DateEvt != nil:
		v.DateEvt = r.DateEvt
	case v.ID == 0:
		today := d.Today
		v.DateEvt = &today
	}

	// New videos start as drafts.
	switch {
	case r.IsDraft != nil:
		v.IsDraft = *r.IsDraft
	case v.ID == 0:
		v.IsDraft = true
	}
}

// VideoResponse is the API response for video lookups.
type VideoResponse struct {
	Video
	DurationInTime string   `json:"durationInTime"`
	TagList        []string `json:"tagList"`
	HasPassword    bool     `json:"hasPassword"`
}

// NewVideoResponse builds the API view of v.
func NewVideoResponse(v Video) VideoResponse {
	tags := ParseTags(v.Tags)
	if tags == nil {
		tags = []string{}
	}
	return VideoResponse{
		Video:          v,
		DurationInTime: v.DurationInTime(),
		TagList:        tags,
		HasPassword:    v.Password != nil && *v.Password != "",
	}
}

// VideoFilter narrows video listings. Zero values mean "any".
type VideoFilter struct {
	OwnerID      int64
	TypeID       int64
	DisciplineID int64
	Tag          string
	Limit        int
	Offset       int
}
