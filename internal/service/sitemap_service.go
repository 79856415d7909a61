package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/comexweb/internal/db"
	"gorm.io/gorm"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one <url> of the sitemap.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   string
}

// SitemapService lists every public URL of the site.
type SitemapService struct {
	db       *gorm.DB
	baseURL  string
	pages    *PageService
	posts    *PostService
	products *ProductService
	now      func() time.Time
}

// NewSitemapService returns a SitemapService rooted at baseURL.
func NewSitemapService(gdb *gorm.DB, baseURL string) *SitemapService {
	return &SitemapService{
		db:       gdb,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pages:    NewPageService(gdb),
		posts:    NewPostService(gdb),
		products: NewProductService(gdb),
		now:      time.Now,
	}
}

// Entries returns the sitemap in a stable order: home, pages, news, posts,
// importadora, retail catalog, products.
func (s *SitemapService) Entries(ctx context.Context) ([]SitemapEntry, error) {
	now := s.now().UTC()

	pages, err := s.pages.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	// 列表接口有分页上限，这里需要全部已发布文章
	var posts []db.Post
	if err := s.db.WithContext(ctx).
		Scopes(s.posts.publicScope).
		Select("slug", "updated_at").
		Order("published_at desc").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("sitemap posts: %w", err)
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	entries := []SitemapEntry{{Loc: s.baseURL, LastMod: now, ChangeFreq: "daily", Priority: "1.0"}}
	for _, p := range pages {
		// home 与 importadora 在下面以固定地址列出
		if p.Slug == "home" || p.Slug == "importadora" {
			continue
		}
		entries = append(entries, SitemapEntry{Loc: s.baseURL + "/" + p.Slug, LastMod: p.UpdatedAt, ChangeFreq: "weekly", Priority: "0.8"})
	}
	entries = append(entries, SitemapEntry{Loc: s.baseURL + "/noticias", LastMod: now, ChangeFreq: "daily", Priority: "0.7"})
	for _, p := range posts {
		entries = append(entries, SitemapEntry{Loc: s.baseURL + "/noticias/" + p.Slug, LastMod: p.UpdatedAt, ChangeFreq: "monthly", Priority: "0.6"})
	}
	entries = append(entries,
		SitemapEntry{Loc: s.baseURL + "/importadora", LastMod: now, ChangeFreq: "weekly", Priority: "0.8"},
		SitemapEntry{Loc: s.baseURL + "/importadora/mayorista", LastMod: now, ChangeFreq: "monthly", Priority: "0.5"},
		SitemapEntry{Loc: s.baseURL + "/importadora/minorista", LastMod: now, ChangeFreq: "daily", Priority: "0.7"},
	)
	for _, p := range products {
		entries = append(entries, SitemapEntry{Loc: s.baseURL + "/importadora/minorista/productos/" + p.Slug, LastMod: p.UpdatedAt, ChangeFreq: "weekly", Priority: "0.6"})
	}
	return entries, nil
}

// XML renders the sitemap document.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		if !e.LastMod.IsZero() {
			u.CreateElement("lastmod").SetText(e.LastMod.UTC().Format("2006-01-02"))
		}
		u.CreateElement("changefreq").SetText(e.ChangeFreq)
		u.CreateElement("priority").SetText(e.Priority)
	}
	doc.Indent(2)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write sitemap: %w", err)
	}
	return out, nil
}
