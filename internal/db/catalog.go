package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products in the catalog.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `json:"imageUrl"`
	Order        int       `gorm:"column:sort_order;default:0" json:"order"`
	Visible      bool      `gorm:"not null" json:"visible"`
	ProductCount int64     `gorm:"-:migration;->" json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Product is a catalog item sold retail and, when PriceWholesale is set, wholesale.
type Product struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	Name             string              `gorm:"not null" json:"name"`
	Slug             string              `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	ShortDescription string              `json:"shortDescription"`
	Description      string              `gorm:"type:text" json:"description"`
	Images           []string            `gorm:"serializer:json;type:text" json:"images"`
	CategoryID       *uint               `gorm:"index" json:"categoryId"`
	Category         *Category           `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Tags             []string            `gorm:"serializer:json;type:text" json:"tags"`
	PriceRetail      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"priceRetail"`
	PriceWholesale   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"priceWholesale"`
	Stock            int                 `gorm:"default:0" json:"stock"`
	SKU              *string             `gorm:"size:64" json:"sku"`
	Featured         bool                `gorm:"default:false" json:"featured"`
	Active           bool                `gorm:"not null" json:"active"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// FirstImage returns the cover image or an empty string.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
