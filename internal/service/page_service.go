package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/section"
	"gorm.io/gorm"
)

// PageService manages content pages and their sections.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// PageInput 创建或更新页面时的输入。指针字段为 nil 表示保持原值。
type PageInput struct {
	Slug               string         `json:"slug"`
	Title              string         `json:"title" validate:"required"`
	SEOTitle           *string        `json:"seoTitle"`
	SEODescription     *string        `json:"seoDescription"`
	OGImageURL         *string        `json:"ogImageUrl"`
	BackgroundImageURL *string        `json:"backgroundImageUrl"`
	Published          *bool          `json:"published"`
	Sections           []SectionPatch `json:"sections"`
}

// SectionPatch updates order, visibility or content of an existing section
// as part of a page save.
type SectionPatch struct {
	ID      uint         `json:"id"`
	Order   *int         `json:"order"`
	Visible *bool        `json:"visible"`
	Content *db.JSONText `json:"content"`
}

// List returns all pages, newest first, with their section counts.
func (s *PageService) List(ctx context.Context) ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.WithContext(ctx).
		Model(&db.Page{}).
		Select("pages.*, (SELECT COUNT(*) FROM sections WHERE sections.page_id = pages.id) AS section_count").
		Order("pages.created_at desc").
		Order("pages.id desc").
		Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// Get loads a page with every section in render order.
func (s *PageService) Get(ctx context.Context, id uint) (*db.Page, error) {
	var page db.Page
	err := s.db.WithContext(ctx).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order asc").Order("id asc")
		}).
		First(&page, id).Error
	if err != nil {
		return nil, notFound(err, ErrPageNotFound)
	}
	return &page, nil
}

// GetPublishedBySlug loads a published page with its visible sections in
// render order.
func (s *PageService) GetPublishedBySlug(ctx context.Context, pageSlug string) (*db.Page, error) {
	var page db.Page
	err := s.db.WithContext(ctx).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("visible = ?", true).Order("sort_order asc").Order("id asc")
		}).
		Where("slug = ? AND published = ?", strings.TrimSpace(pageSlug), true).
		First(&page).Error
	if err != nil {
		return nil, notFound(err, ErrPageNotFound)
	}
	return &page, nil
}

// ListPublished returns published pages for the sitemap.
func (s *PageService) ListPublished(ctx context.Context) ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("slug asc").
		Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list published pages: %w", err)
	}
	return pages, nil
}

// Create inserts a page. The slug comes from in.Slug or the title and gets a
// numeric suffix when already used.
func (s *PageService) Create(ctx context.Context, in PageInput) (*db.Page, error) {
	trimAll(&in.Title, &in.Slug)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	page := db.Page{Title: in.Title}
	applyPageInput(&page, in)

	gdb := s.db.WithContext(ctx)
	pageSlug, err := newSlug(gdb, &db.Page{}, in.Slug, in.Title)
	if err != nil {
		return nil, err
	}
	page.Slug = pageSlug

	if err := gdb.Create(&page).Error; err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// Update changes page fields and applies section patches in one transaction.
// The slug is immutable once created.
func (s *PageService) Update(ctx context.Context, id uint, in PageInput) (*db.Page, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, invalid("title", "El título es requerido")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, id).Error; err != nil {
			return notFound(err, ErrPageNotFound)
		}

		page.Title = in.Title
		applyPageInput(&page, in)
		if err := tx.Save(&page).Error; err != nil {
			return fmt.Errorf("update page: %w", err)
		}

		for _, patch := range in.Sections {
			if patch.ID == 0 {
				continue
			}
			if err := applySectionPatch(tx, page.ID, patch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a page together with its sections.
func (s *PageService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&db.Section{}).Error; err != nil {
			return fmt.Errorf("delete page sections: %w", err)
		}
		result := tx.Delete(&db.Page{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete page: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPageNotFound
		}
		return nil
	})
}

func applyPageInput(page *db.Page, in PageInput) {
	if in.SEOTitle != nil {
		page.SEOTitle = strings.TrimSpace(*in.SEOTitle)
	}
	if in.SEODescription != nil {
		page.SEODescription = strings.TrimSpace(*in.SEODescription)
	}
	if in.OGImageURL != nil {
		page.OGImageURL = strings.TrimSpace(*in.OGImageURL)
	}
	if in.BackgroundImageURL != nil {
		page.BackgroundImageURL = strings.TrimSpace(*in.BackgroundImageURL)
	}
	if in.Published != nil {
		page.Published = *in.Published
	}
}

func applySectionPatch(tx *gorm.DB, pageID uint, patch SectionPatch) error {
	updates := map[string]any{}
	if patch.Order != nil {
		updates["sort_order"] = *patch.Order
	}
	if patch.Visible != nil {
		updates["visible"] = *patch.Visible
	}
	if patch.Content != nil {
		if !section.ValidateContent(string(*patch.Content)) {
			return invalid("content", "el contenido debe ser un objeto JSON")
		}
		updates["content"] = string(*patch.Content)
	}
	if len(updates) == 0 {
		return nil
	}

	result := tx.Model(&db.Section{}).
		Where("id = ? AND page_id = ?", patch.ID, pageID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update section %d: %w", patch.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
