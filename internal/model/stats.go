package model

import "time"

// CatalogStats summarises the catalogue for GET /api/stats.
type CatalogStats struct {
	Channels    int64     `json:"channels"`
	Videos      int64     `json:"videos"`
	Drafts      int64     `json:"drafts"`
	Owners      int64     `json:"owners"`
	TotalViews  int64     `json:"totalViews"`
	LastUpdated time.Time `json:"lastUpdated"`
}
