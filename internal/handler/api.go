package handler

import (
	"github.com/comexweb/internal/section"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Options configures the handler set.
type Options struct {
	UploadDir      string
	UploadURL      string
	MaxUploadBytes int64
	SiteBaseURL    string
	Logger         zerolog.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	log        zerolog.Logger
	pages      *service.PageService
	sections   *service.SectionService
	categories *service.CategoryService
	products   *service.ProductService
	posts      *service.PostService
	orders     *service.OrderService
	leads      *service.LeadService
	contacts   *service.ContactService
	settings   *service.SiteSettingsService
	media      *service.MediaService
	users      *service.UserService
	dashboard  *service.DashboardService
	sitemap    *service.SitemapService
	renderer   *section.Renderer
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) (*API, error) {
	settings := service.NewSiteSettingsService(gdb)
	products := service.NewProductService(gdb)

	renderer, err := section.NewDefault(opts.Logger, settings, products)
	if err != nil {
		return nil, err
	}

	return &API{
		db:         gdb,
		log:        opts.Logger,
		pages:      service.NewPageService(gdb),
		sections:   service.NewSectionService(gdb),
		categories: service.NewCategoryService(gdb),
		products:   products,
		posts:      service.NewPostService(gdb),
		orders:     service.NewOrderService(gdb),
		leads:      service.NewLeadService(gdb),
		contacts:   service.NewContactService(gdb),
		settings:   settings,
		media:      service.NewMediaService(gdb, opts.UploadDir, opts.UploadURL, opts.MaxUploadBytes),
		users:      service.NewUserService(gdb),
		dashboard:  service.NewDashboardService(gdb),
		sitemap:    service.NewSitemapService(gdb, opts.SiteBaseURL),
		renderer:   renderer,
	}, nil
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// siteSettings 每个请求只读取一次站点设置。
func (a *API) siteSettings(c *gin.Context) service.SiteSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(service.SiteSettings); ok {
			return settings
		}
	}

	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		// 设置读取失败时仍然渲染页面，只是使用默认值
		_ = c.Error(err)
	}
	c.Set(siteSettingsContextKey, settings)
	return settings
}

// renderHTML 在向模板渲染时自动附加站点设置。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = a.siteSettings(c)
	}
	c.HTML(status, template, payload)
}
