package model

import "time"

// ViewCount holds the number of views of a video on one day.
type ViewCount struct {
	ID      int64     `json:"id"`
	VideoID int64     `json:"videoId"`
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
}
