package models

import "time"

// ApodEntry is a cached astronomy-picture-of-the-day record keyed by date.
type ApodEntry struct {
	Date        string    `gorm:"primaryKey;type:text" json:"date"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Explanation string    `gorm:"type:text" json:"explanation"`
	MediaType   string    `gorm:"type:text" json:"media_type"`
	URL         string    `gorm:"type:text" json:"url"`
	HDURL       *string   `gorm:"type:text" json:"hdurl,omitempty"`
	Copyright   *string   `gorm:"type:text" json:"copyright,omitempty"`
	FetchedAt   time.Time `gorm:"type:timestamptz;not null" json:"fetched_at"`
}

func (ApodEntry) TableName() string {
	return "apod_entries"
}
