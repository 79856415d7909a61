package db

import "time"

const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
)

// Post 是新闻栏目（noticias）中的一篇文章，正文为 Markdown。
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Slug          string     `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text" json:"content"`
	CoverImageURL string     `json:"coverImageUrl"`
	Status        string     `gorm:"size:20;index;default:DRAFT" json:"status"`
	PublishedAt   *time.Time `gorm:"index" json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsPublic reports whether the post may be shown on the public site at now.
func (p Post) IsPublic(now time.Time) bool {
	return p.Status == PostStatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}
