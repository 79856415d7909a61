package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/section"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultProductLimit = 50
	maxProductLimit     = 200
)

// ProductService manages the catalog.
type ProductService struct {
	db *gorm.DB
}

// NewProductService returns a ProductService.
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{db: gdb}
}

// ProductFilter narrows the public catalog listing.
type ProductFilter struct {
	CategorySlug string
	Featured     bool
	Limit        int
	Offset       int
}

// ProductInput 创建或更新商品的输入。
type ProductInput struct {
	Name             string              `json:"name" validate:"required"`
	Slug             string              `json:"slug"`
	ShortDescription string              `json:"shortDescription"`
	Description      string              `json:"description"`
	Images           []string            `json:"images"`
	CategoryID       *uint               `json:"categoryId"`
	Tags             []string            `json:"tags"`
	PriceRetail      decimal.Decimal     `json:"priceRetail"`
	PriceWholesale   decimal.NullDecimal `json:"priceWholesale"`
	Stock            int                 `json:"stock" validate:"gte=0"`
	SKU              string              `json:"sku"`
	Featured         bool                `json:"featured"`
	Active           *bool               `json:"active"`
}

// ListPublic returns active products, newest first.
func (s *ProductService) ListPublic(ctx context.Context, filter ProductFilter) ([]db.Product, error) {
	query := s.db.WithContext(ctx).
		Select("products.*").
		Preload("Category").
		Where("products.active = ?", true)
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}
	if filter.Featured {
		query = query.Where("products.featured = ?", true)
	}

	var products []db.Product
	if err := query.
		Order("products.created_at desc").
		Order("products.id desc").
		Limit(clampLimit(filter.Limit, defaultProductLimit, maxProductLimit)).
		Offset(max(filter.Offset, 0)).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetPublicBySlug fetches an active product.
func (s *ProductService) GetPublicBySlug(ctx context.Context, slug string) (*db.Product, error) {
	var product db.Product
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND active = ?", strings.TrimSpace(slug), true).
		First(&product).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return &product, nil
}

// ListAll returns every product for the back office.
func (s *ProductService) ListAll(ctx context.Context) ([]db.Product, error) {
	var products []db.Product
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Order("id desc").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListActive returns every active product, for the sitemap.
func (s *ProductService) ListActive(ctx context.Context) ([]db.Product, error) {
	var products []db.Product
	if err := s.db.WithContext(ctx).
		Select("id", "slug", "updated_at").
		Where("active = ?", true).
		Order("id asc").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

// Get fetches any product by id.
func (s *ProductService) Get(ctx context.Context, id uint) (*db.Product, error) {
	var product db.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return &product, nil
}

// ActiveByIDs returns active products keyed by id.
func (s *ProductService) ActiveByIDs(ctx context.Context, ids []uint) (map[uint]db.Product, error) {
	out := make(map[uint]db.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []db.Product
	if err := s.db.WithContext(ctx).Where("id IN ? AND active = ?", ids, true).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// FeaturedBySlugs returns the named active products in the given order, or
// up to limit featured products when slugs is empty. Unknown slugs are
// skipped.
func (s *ProductService) FeaturedBySlugs(ctx context.Context, slugs []string, limit int) ([]db.Product, error) {
	if len(slugs) == 0 {
		return s.ListPublic(ctx, ProductFilter{Featured: true, Limit: limit})
	}

	var found []db.Product
	if err := s.db.WithContext(ctx).
		Where("slug IN ? AND active = ?", slugs, true).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load featured products: %w", err)
	}
	bySlug := make(map[string]db.Product, len(found))
	for _, p := range found {
		bySlug[p.Slug] = p
	}

	ordered := make([]db.Product, 0, len(found))
	for _, slug := range slugs {
		if p, ok := bySlug[slug]; ok {
			ordered = append(ordered, p)
			delete(bySlug, slug)
		}
	}
	return ordered, nil
}

// FeaturedCards adapts FeaturedBySlugs for the importadora teaser section.
func (s *ProductService) FeaturedCards(ctx context.Context, slugs []string, limit int) ([]section.ProductCard, error) {
	products, err := s.FeaturedBySlugs(ctx, slugs, limit)
	if err != nil {
		return nil, err
	}
	cards := make([]section.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, section.ProductCard{
			Name:     p.Name,
			Slug:     p.Slug,
			ImageURL: p.FirstImage(),
			Price:    p.PriceRetail,
		})
	}
	return cards, nil
}

// Create inserts a product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*db.Product, error) {
	if err := s.checkInput(ctx, &in); err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	productSlug, err := newSlug(gdb, &db.Product{}, in.Slug, in.Name)
	if err != nil {
		return nil, err
	}

	product := db.Product{Slug: productSlug, Active: true}
	applyProductInput(&product, in)
	if err := gdb.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.Get(ctx, product.ID)
}

// Update replaces a product's editable fields.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*db.Product, error) {
	if err := s.checkInput(ctx, &in); err != nil {
		return nil, err
	}

	var product db.Product
	gdb := s.db.WithContext(ctx)
	if err := gdb.First(&product, id).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}

	if in.Slug != "" && !strings.EqualFold(in.Slug, product.Slug) {
		claimed, err := claimSlug(gdb, &db.Product{}, in.Slug, id)
		if err != nil {
			return nil, err
		}
		product.Slug = claimed
	}

	applyProductInput(&product, in)
	product.Category = nil
	if err := gdb.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) checkInput(ctx context.Context, in *ProductInput) error {
	trimAll(&in.Name, &in.Slug, &in.ShortDescription, &in.SKU)
	if err := validateStruct(*in); err != nil {
		return err
	}
	if in.PriceRetail.IsNegative() {
		return invalid("priceRetail", "el precio no puede ser negativo")
	}
	if in.PriceWholesale.Valid && in.PriceWholesale.Decimal.IsNegative() {
		return invalid("priceWholesale", "el precio no puede ser negativo")
	}
	if in.CategoryID != nil && *in.CategoryID == 0 {
		in.CategoryID = nil
	}
	if in.CategoryID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&db.Category{}).Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if count == 0 {
			return invalid("categoryId", "la categoría no existe")
		}
	}
	in.Images = compactStrings(in.Images)
	in.Tags = compactStrings(in.Tags)
	return nil
}

func applyProductInput(p *db.Product, in ProductInput) {
	p.Name = in.Name
	p.ShortDescription = in.ShortDescription
	p.Description = in.Description
	p.Images = in.Images
	p.CategoryID = in.CategoryID
	p.Tags = in.Tags
	p.PriceRetail = in.PriceRetail.Round(2)
	p.PriceWholesale = in.PriceWholesale
	if p.PriceWholesale.Valid {
		p.PriceWholesale.Decimal = p.PriceWholesale.Decimal.Round(2)
	}
	p.Stock = in.Stock
	p.SKU = nil
	if in.SKU != "" {
		sku := in.SKU
		p.SKU = &sku
	}
	p.Featured = in.Featured
	if in.Active != nil {
		p.Active = *in.Active
	}
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func clampLimit(limit, fallback, ceiling int) int {
	if limit <= 0 {
		return fallback
	}
	return min(limit, ceiling)
}
