package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"gorm.io/gorm"
)

var (
	leadStatuses  = []string{db.StatusNew, db.LeadStatusContacted, db.LeadStatusApproved, db.LeadStatusRejected}
	queryStatuses = []string{db.StatusNew, db.QueryStatusContacted, db.QueryStatusResolved, db.QueryStatusArchived}
)

// LeadService records wholesale access requests.
type LeadService struct {
	db *gorm.DB
}

// NewLeadService returns a LeadService.
func NewLeadService(gdb *gorm.DB) *LeadService {
	return &LeadService{db: gdb}
}

// LeadInput is the wholesale request form.
type LeadInput struct {
	CompanyName string `json:"companyName" form:"companyName" validate:"required"`
	CUIT        string `json:"cuit" form:"cuit"`
	Name        string `json:"name" form:"name" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	WhatsApp    string `json:"whatsapp" form:"whatsapp"`
	City        string `json:"city" form:"city"`
	Notes       string `json:"notes" form:"notes"`
}

// Create validates and stores a lead with status NEW.
func (s *LeadService) Create(ctx context.Context, in LeadInput) (*db.WholesaleLead, error) {
	trimAll(&in.CompanyName, &in.CUIT, &in.Name, &in.Email, &in.WhatsApp, &in.City, &in.Notes)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	lead := db.WholesaleLead{
		CompanyName: in.CompanyName,
		CUIT:        in.CUIT,
		Name:        in.Name,
		Email:       strings.ToLower(in.Email),
		WhatsApp:    in.WhatsApp,
		City:        in.City,
		Notes:       in.Notes,
		Status:      db.StatusNew,
	}
	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return &lead, nil
}

// List returns leads, newest first, optionally filtered by status.
func (s *LeadService) List(ctx context.Context, status string) ([]db.WholesaleLead, error) {
	var leads []db.WholesaleLead
	if err := listByStatus(s.db.WithContext(ctx), status).Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead through its workflow.
func (s *LeadService) UpdateStatus(ctx context.Context, id uint, status string) (*db.WholesaleLead, error) {
	var lead db.WholesaleLead
	if err := updateStatus(s.db.WithContext(ctx), &lead, id, status, leadStatuses, ErrLeadNotFound); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, notFound(err, ErrLeadNotFound)
	}
	return &lead, nil
}

// ContactService records contact form messages.
type ContactService struct {
	db *gorm.DB
}

// NewContactService returns a ContactService.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone"`
	WhatsApp string `json:"whatsapp" form:"whatsapp"`
	Company  string `json:"company" form:"company"`
	Message  string `json:"message" form:"message" validate:"required"`
}

// Create validates and stores a contact query with status NEW. Nothing is
// written when validation fails.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*db.ContactQuery, error) {
	trimAll(&in.Name, &in.Email, &in.Phone, &in.WhatsApp, &in.Company, &in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	query := db.ContactQuery{
		Name:     in.Name,
		Email:    strings.ToLower(in.Email),
		Phone:    in.Phone,
		WhatsApp: in.WhatsApp,
		Company:  in.Company,
		Message:  in.Message,
		Status:   db.StatusNew,
	}
	if err := s.db.WithContext(ctx).Create(&query).Error; err != nil {
		return nil, fmt.Errorf("create contact query: %w", err)
	}
	return &query, nil
}

// List returns contact queries, newest first, optionally filtered by status.
func (s *ContactService) List(ctx context.Context, status string) ([]db.ContactQuery, error) {
	var queries []db.ContactQuery
	if err := listByStatus(s.db.WithContext(ctx), status).Find(&queries).Error; err != nil {
		return nil, fmt.Errorf("list contact queries: %w", err)
	}
	return queries, nil
}

// UpdateStatus moves a contact query through its workflow.
func (s *ContactService) UpdateStatus(ctx context.Context, id uint, status string) (*db.ContactQuery, error) {
	var query db.ContactQuery
	if err := updateStatus(s.db.WithContext(ctx), &query, id, status, queryStatuses, ErrContactQueryNotFound); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&query, id).Error; err != nil {
		return nil, notFound(err, ErrContactQueryNotFound)
	}
	return &query, nil
}

func listByStatus(gdb *gorm.DB, status string) *gorm.DB {
	query := gdb.Order("created_at desc").Order("id desc")
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}
