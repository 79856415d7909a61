package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"gorm.io/gorm"
)

// CategoryService manages catalog categories.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService returns a CategoryService.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// CategoryInput 创建或更新分类的输入。
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Order       int    `json:"order"`
	Visible     *bool  `json:"visible"`
}

// ListVisible returns visible categories with their active product counts.
func (s *CategoryService) ListVisible(ctx context.Context) ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.WithContext(ctx).
		Model(&db.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id AND products.active = ?) AS product_count", true).
		Where("categories.visible = ?", true).
		Order("categories.sort_order asc").
		Order("categories.name asc").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListAll returns every category with its total product count.
func (s *CategoryService) ListAll(ctx context.Context) ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.WithContext(ctx).
		Model(&db.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count").
		Order("categories.sort_order asc").
		Order("categories.name asc").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(ctx context.Context, id uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &category, nil
}

// Create inserts a category, deriving a unique slug when none is given.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*db.Category, error) {
	trimAll(&in.Name, &in.Slug, &in.Description, &in.ImageURL)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	categorySlug, err := newSlug(gdb, &db.Category{}, in.Slug, in.Name)
	if err != nil {
		return nil, err
	}

	category := db.Category{
		Name:        in.Name,
		Slug:        categorySlug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Order:       in.Order,
		Visible:     in.Visible == nil || *in.Visible,
	}
	if err := gdb.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update changes a category. A changed slug must not collide.
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*db.Category, error) {
	trimAll(&in.Name, &in.Slug, &in.Description, &in.ImageURL)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	if in.Slug != "" && !strings.EqualFold(in.Slug, category.Slug) {
		claimed, err := claimSlug(gdb, &db.Category{}, in.Slug, id)
		if err != nil {
			return nil, err
		}
		category.Slug = claimed
	}

	category.Name = in.Name
	category.Description = in.Description
	category.ImageURL = in.ImageURL
	category.Order = in.Order
	if in.Visible != nil {
		category.Visible = *in.Visible
	}
	if err := gdb.Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category that no product references.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category db.Category
		if err := tx.Select("id").First(&category, id).Error; err != nil {
			return notFound(err, ErrCategoryNotFound)
		}

		var count int64
		if err := tx.Model(&db.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count category products: %w", err)
		}
		if count > 0 {
			return &CategoryInUseError{Count: count}
		}

		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
