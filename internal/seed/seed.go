// Package seed loads demo content for a fresh installation.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed default.yaml
var defaultSeed []byte

// Data 是种子文件的结构。
type Data struct {
	Site       SiteData       `yaml:"site"`
	Pages      []PageData     `yaml:"pages"`
	Categories []CategoryData `yaml:"categories"`
	Products   []ProductData  `yaml:"products"`
	Posts      []PostData     `yaml:"posts"`
}

type SiteData struct {
	SiteName       string            `yaml:"siteName"`
	LogoURL        string            `yaml:"logoUrl"`
	PrimaryColor   string            `yaml:"primaryColor"`
	WhatsAppNumber string            `yaml:"whatsappNumber"`
	Phone          string            `yaml:"phone"`
	Email          string            `yaml:"email"`
	Address        string            `yaml:"address"`
	SocialLinks    map[string]string `yaml:"socialLinks"`
}

type PageData struct {
	Slug           string        `yaml:"slug"`
	Title          string        `yaml:"title"`
	SEOTitle       string        `yaml:"seoTitle"`
	SEODescription string        `yaml:"seoDescription"`
	Draft          bool          `yaml:"draft"`
	Sections       []SectionData `yaml:"sections"`
}

type SectionData struct {
	Type    string         `yaml:"type"`
	Hidden  bool           `yaml:"hidden"`
	Content map[string]any `yaml:"content"`
}

type CategoryData struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

type ProductData struct {
	Name             string   `yaml:"name"`
	Slug             string   `yaml:"slug"`
	Category         string   `yaml:"category"`
	ShortDescription string   `yaml:"shortDescription"`
	Description      string   `yaml:"description"`
	Images           []string `yaml:"images"`
	Tags             []string `yaml:"tags"`
	PriceRetail      string   `yaml:"priceRetail"`
	PriceWholesale   string   `yaml:"priceWholesale"`
	Stock            int      `yaml:"stock"`
	SKU              string   `yaml:"sku"`
	Featured         bool     `yaml:"featured"`
}

type PostData struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Excerpt string `yaml:"excerpt"`
	Content string `yaml:"content"`
	Status  string `yaml:"status"`
}

// Report counts the records created by Apply.
type Report struct {
	Pages      int
	Sections   int
	Categories int
	Products   int
	Posts      int
}

// Default returns the embedded demo content.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Read parses a seed document from r.
func Read(r io.Reader) (*Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML seed document.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &data, nil
}

// Seeder writes seed data through the content services so the same
// validation and slug rules apply as in the back office.
type Seeder struct {
	db         *gorm.DB
	log        zerolog.Logger
	settings   *service.SiteSettingsService
	pages      *service.PageService
	sections   *service.SectionService
	categories *service.CategoryService
	products   *service.ProductService
	posts      *service.PostService
}

func New(gdb *gorm.DB, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:         gdb,
		log:        log,
		settings:   service.NewSiteSettingsService(gdb),
		pages:      service.NewPageService(gdb),
		sections:   service.NewSectionService(gdb),
		categories: service.NewCategoryService(gdb),
		products:   service.NewProductService(gdb),
		posts:      service.NewPostService(gdb),
	}
}

// Apply creates every record whose slug does not exist yet. Existing
// records are left untouched, so running it twice is harmless. Site
// settings are only written while the store has none.
func (s *Seeder) Apply(ctx context.Context, data *Data) (Report, error) {
	var report Report

	if err := s.applySite(ctx, data.Site); err != nil {
		return report, err
	}

	for _, p := range data.Pages {
		created, sections, err := s.applyPage(ctx, p)
		if err != nil {
			return report, fmt.Errorf("seed page %s: %w", p.Slug, err)
		}
		if created {
			report.Pages++
		}
		report.Sections += sections
	}

	categoryIDs := make(map[string]uint, len(data.Categories))
	for _, cat := range data.Categories {
		id, created, err := s.applyCategory(ctx, cat)
		if err != nil {
			return report, fmt.Errorf("seed category %s: %w", cat.Slug, err)
		}
		categoryIDs[cat.Slug] = id
		if created {
			report.Categories++
		}
	}

	for _, p := range data.Products {
		created, err := s.applyProduct(ctx, p, categoryIDs)
		if err != nil {
			return report, fmt.Errorf("seed product %s: %w", p.Slug, err)
		}
		if created {
			report.Products++
		}
	}

	for _, p := range data.Posts {
		created, err := s.applyPost(ctx, p)
		if err != nil {
			return report, fmt.Errorf("seed post %s: %w", p.Slug, err)
		}
		if created {
			report.Posts++
		}
	}

	s.log.Info().
		Int("pages", report.Pages).
		Int("sections", report.Sections).
		Int("categories", report.Categories).
		Int("products", report.Products).
		Int("posts", report.Posts).
		Msg("seed applied")
	return report, nil
}

func (s *Seeder) applySite(ctx context.Context, site SiteData) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.SystemSetting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count site settings: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.settings.Update(ctx, service.SiteSettingsInput{
		SiteName:       optional(site.SiteName),
		LogoURL:        optional(site.LogoURL),
		PrimaryColor:   optional(site.PrimaryColor),
		WhatsAppNumber: optional(site.WhatsAppNumber),
		Phone:          optional(site.Phone),
		Email:          optional(site.Email),
		Address:        optional(site.Address),
		SocialLinks:    site.SocialLinks,
	})
	return err
}

func (s *Seeder) applyPage(ctx context.Context, p PageData) (bool, int, error) {
	found, err := s.slugExists(ctx, &db.Page{}, p.Slug)
	if err != nil || found {
		return false, 0, err
	}

	published := !p.Draft
	page, err := s.pages.Create(ctx, service.PageInput{
		Slug:           p.Slug,
		Title:          p.Title,
		SEOTitle:       optional(p.SEOTitle),
		SEODescription: optional(p.SEODescription),
		Published:      &published,
	})
	if err != nil {
		return false, 0, err
	}

	for i, sec := range p.Sections {
		content := []byte("{}")
		if len(sec.Content) > 0 {
			if content, err = json.Marshal(sec.Content); err != nil {
				return true, i, fmt.Errorf("encode %s content: %w", sec.Type, err)
			}
		}
		visible := !sec.Hidden
		order := i
		if _, err := s.sections.Create(ctx, service.SectionInput{
			PageID:  page.ID,
			Type:    sec.Type,
			Content: db.JSONText(content),
			Order:   &order,
			Visible: &visible,
		}); err != nil {
			return true, i, err
		}
	}
	return true, len(p.Sections), nil
}

func (s *Seeder) applyCategory(ctx context.Context, c CategoryData) (uint, bool, error) {
	var existing db.Category
	err := s.db.WithContext(ctx).Where("slug = ?", c.Slug).Limit(1).Find(&existing).Error
	if err != nil {
		return 0, false, fmt.Errorf("lookup category: %w", err)
	}
	if existing.ID != 0 {
		return existing.ID, false, nil
	}

	created, err := s.categories.Create(ctx, service.CategoryInput{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Order:       c.Order,
	})
	if err != nil {
		return 0, false, err
	}
	return created.ID, true, nil
}

func (s *Seeder) applyProduct(ctx context.Context, p ProductData, categories map[string]uint) (bool, error) {
	found, err := s.slugExists(ctx, &db.Product{}, p.Slug)
	if err != nil || found {
		return false, err
	}

	retail, err := decimal.NewFromString(p.PriceRetail)
	if err != nil {
		return false, fmt.Errorf("priceRetail: %w", err)
	}
	in := service.ProductInput{
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Images:           p.Images,
		Tags:             p.Tags,
		PriceRetail:      retail,
		Stock:            p.Stock,
		SKU:              p.SKU,
		Featured:         p.Featured,
	}
	if p.PriceWholesale != "" {
		wholesale, err := decimal.NewFromString(p.PriceWholesale)
		if err != nil {
			return false, fmt.Errorf("priceWholesale: %w", err)
		}
		in.PriceWholesale = decimal.NewNullDecimal(wholesale)
	}
	if p.Category != "" {
		id, ok := categories[p.Category]
		if !ok {
			return false, fmt.Errorf("unknown category %q", p.Category)
		}
		in.CategoryID = &id
	}

	_, err = s.products.Create(ctx, in)
	return err == nil, err
}

func (s *Seeder) applyPost(ctx context.Context, p PostData) (bool, error) {
	found, err := s.slugExists(ctx, &db.Post{}, p.Slug)
	if err != nil || found {
		return false, err
	}
	_, err = s.posts.Create(ctx, service.PostInput{
		Title:   p.Title,
		Slug:    p.Slug,
		Excerpt: p.Excerpt,
		Content: p.Content,
		Status:  p.Status,
	})
	return err == nil, err
}

func (s *Seeder) slugExists(ctx context.Context, model any, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup slug %s: %w", slug, err)
	}
	return count > 0, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
