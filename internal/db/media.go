package db

import "time"

// MediaFile records an uploaded image and the public URL it is served from.
type MediaFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"size:255;uniqueIndex;not null" json:"url"`
	Alt       string    `json:"alt"`
	Size      int64     `json:"size"`
	MIME      string    `gorm:"column:mime;size:40" json:"mime"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}
