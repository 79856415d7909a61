package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/comexweb/internal/markup"
	"github.com/comexweb/internal/section"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	homeSlug        = "home"
	newsPageSize    = 10
	catalogPageSize = 60
)

// ShowHome 渲染首页（slug 为 home 的页面）。
func (a *API) ShowHome(c *gin.Context) {
	a.showPage(c, homeSlug, true)
}

// ShowPage renders a published content page by slug.
func (a *API) ShowPage(c *gin.Context) {
	a.showPage(c, c.Param("slug"), false)
}

// showPage renders the page's visible sections. A missing home page still
// renders the empty layout so a fresh install has a front door.
func (a *API) showPage(c *gin.Context, slug string, fallback bool) {
	ctx := c.Request.Context()
	page, err := a.pages.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			if fallback {
				a.renderHTML(c, http.StatusOK, "page.html", gin.H{"slug": slug, "empty": true})
				return
			}
			a.NotFound(c)
			return
		}
		a.serverError(c, err)
		return
	}

	units := a.renderer.Render(ctx, section.FromModels(page.Sections))
	doc := section.Assemble(page.Slug, units)

	title := page.SEOTitle
	if title == "" && page.Slug != homeSlug {
		title = page.Title
	}
	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":       title,
		"description": page.SEODescription,
		"ogImage":     page.OGImageURL,
		"slug":        page.Slug,
		"background":  page.BackgroundImageURL,
		"document":    doc,
		"scene":       doc.Scene,
		"empty":       doc.Empty(),
	})
}

// ShowNews 渲染新闻列表，?page= 从 1 开始。
func (a *API) ShowNews(c *gin.Context) {
	page := max(queryInt(c, "page", 1), 1)
	offset := (page - 1) * newsPageSize

	result, err := a.posts.ListPublished(c.Request.Context(), newsPageSize, offset)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "news_list.html", gin.H{
		"title":   "Noticias",
		"posts":   result.Posts,
		"page":    page,
		"hasNext": int64(offset+len(result.Posts)) < result.Total,
	})
}

// ShowNewsPost renders a single published post.
func (a *API) ShowNewsPost(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.NotFound(c)
			return
		}
		a.serverError(c, err)
		return
	}

	content, err := a.posts.RenderContent(post)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "news_post.html", gin.H{
		"title":       post.Title,
		"description": post.Excerpt,
		"ogImage":     post.CoverImageURL,
		"post":        post,
		"content":     content,
	})
}

// ShowProducts renders the retail catalog, optionally for one category.
func (a *API) ShowProducts(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("categoria"))

	categories, err := a.categories.ListVisible(ctx)
	if err != nil {
		a.serverError(c, err)
		return
	}
	products, err := a.products.ListPublic(ctx, service.ProductFilter{CategorySlug: category, Limit: catalogPageSize})
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "products.html", gin.H{
		"title":      "Tienda minorista",
		"categories": categories,
		"category":   category,
		"products":   products,
	})
}

// ShowProduct renders one active product.
func (a *API) ShowProduct(c *gin.Context) {
	product, err := a.products.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			a.NotFound(c)
			return
		}
		a.serverError(c, err)
		return
	}

	description, err := markup.Markdown(product.Description)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "product.html", gin.H{
		"title":       product.Name,
		"description": product.ShortDescription,
		"ogImage":     product.FirstImage(),
		"product":     product,
		"productHTML": description,
	})
}

// Sitemap serves /sitemap.xml.
func (a *API) Sitemap(c *gin.Context) {
	out, err := a.sitemap.XML(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, internalErrorMessage)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

// Healthz reports whether the store answers.
func (a *API) Healthz(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound answers unknown routes: JSON under /api, the 404 page otherwise.
func (a *API) NotFound(c *gin.Context) {
	if isAPIRequest(c) {
		respondError(c, http.StatusNotFound, "Recurso no encontrado")
		return
	}
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Página no encontrada"})
}

func (a *API) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{})
}
