package db

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderTypeRetail    = "RETAIL"
	OrderTypeWholesale = "WHOLESALE"

	StatusNew = "NEW"

	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusDone       = "DONE"
	OrderStatusCancelled  = "CANCELLED"

	LeadStatusContacted = "CONTACTED"
	LeadStatusApproved  = "APPROVED"
	LeadStatusRejected  = "REJECTED"

	QueryStatusContacted = "CONTACTED"
	QueryStatusResolved  = "RESOLVED"
	QueryStatusArchived  = "ARCHIVED"
)

// Order is a retail or wholesale purchase request submitted from the site.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerName string          `gorm:"not null" json:"customerName"`
	Email        string          `gorm:"not null" json:"email"`
	WhatsApp     string          `json:"whatsapp"`
	Type         string          `gorm:"size:20;not null" json:"type"`
	Items        []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Address      string          `json:"address"`
	Notes        string          `gorm:"type:text" json:"notes"`
	Status       string          `gorm:"size:20;index;default:NEW" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderItem is one line of an order, priced at submission time.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"orderId"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

// WholesaleLead is a company asking for wholesale access.
type WholesaleLead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"not null" json:"companyName"`
	CUIT        string    `gorm:"column:cuit" json:"cuit"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"not null" json:"email"`
	WhatsApp    string    `json:"whatsapp"`
	City        string    `json:"city"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Status      string    `gorm:"size:20;index;default:NEW" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContactQuery is a message left through the public contact form.
type ContactQuery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `json:"whatsapp"`
	Company   string    `json:"company"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;index;default:NEW" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
