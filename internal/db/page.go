package db

import (
	"encoding/json"
	"errors"
	"time"
)

// Page is a routable content document composed of ordered sections.
type Page struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Slug               string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Title              string    `gorm:"not null" json:"title"`
	SEOTitle           string    `json:"seoTitle"`
	SEODescription     string    `gorm:"type:text" json:"seoDescription"`
	OGImageURL         string    `json:"ogImageUrl"`
	BackgroundImageURL string    `json:"backgroundImageUrl"`
	Published          bool      `gorm:"default:false" json:"published"`
	Sections           []Section `gorm:"constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	SectionCount       int64     `gorm:"-:migration;->" json:"sectionCount,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Section is a typed, positionable content block belonging to a page.
// Content holds the JSON payload whose shape depends on Type.
type Section struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PageID    uint      `gorm:"index;not null" json:"pageId"`
	Type      string    `gorm:"size:40;not null" json:"type"`
	Content   JSONText  `gorm:"type:text" json:"content"`
	Visible   bool      `gorm:"not null" json:"visible"`
	Order     int       `gorm:"column:sort_order;index;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JSONText is a JSON document stored as text. It marshals as the raw document
// rather than as a quoted string.
type JSONText string

// MarshalJSON emits the stored document, or an empty object.
func (j JSONText) MarshalJSON() ([]byte, error) {
	if j == "" {
		return []byte("{}"), nil
	}
	if !json.Valid([]byte(j)) {
		return nil, errors.New("stored JSON text is invalid")
	}
	return []byte(j), nil
}

// UnmarshalJSON keeps the incoming document verbatim. null becomes empty.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = ""
		return nil
	}
	*j = JSONText(data)
	return nil
}
