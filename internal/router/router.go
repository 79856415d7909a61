package router

import (
	"net/http"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/handler"
	"github.com/comexweb/internal/logger"
	"github.com/comexweb/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const sessionName = "comex_session"

// Options 控制路由层的会话与静态资源配置。
type Options struct {
	SessionSecret string
	SecureCookies bool
	UploadDir     string
	UploadURLPath string
	Logger        zerolog.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(opts.Logger))

	// 会话同时承载后台登录状态与访客购物车
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/static", view.Static())
	uploadURL := strings.TrimRight(opts.UploadURLPath, "/")
	if uploadURL == "" {
		uploadURL = "/uploads"
	}
	r.Static(uploadURL, opts.UploadDir)

	r.GET("/healthz", api.Healthz)
	r.GET("/sitemap.xml", api.Sitemap)

	// 公共页面
	r.GET("/", api.ShowHome)
	r.GET("/noticias", api.ShowNews)
	r.GET("/noticias/:slug", api.ShowNewsPost)
	r.GET("/importadora/minorista", api.ShowProducts)
	r.GET("/importadora/minorista/productos/:slug", api.ShowProduct)
	r.GET("/importadora/mayorista", api.ShowWholesale)
	r.GET("/importadora/minorista/carrito", api.ShowCart)
	r.POST("/importadora/minorista/carrito", api.UpdateCartPage)
	r.GET("/importadora/minorista/checkout", api.ShowCheckout)
	r.POST("/importadora/minorista/checkout", api.SubmitCheckout)
	r.GET("/:slug", api.ShowPage)

	// 后台页面
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		auth.GET("", api.ShowDashboard)
	}

	public := r.Group("/api")
	{
		public.GET("/site-settings", api.GetSiteSettings)
		public.GET("/categories", api.ListCategories)
		public.GET("/products", api.ListProducts)
		public.GET("/products/:slug", api.GetProduct)
		public.GET("/posts", api.ListPosts)
		public.GET("/posts/:slug", api.GetPost)
		public.GET("/pages/:slug", api.GetPage)

		public.POST("/contact", api.SubmitContact)
		public.POST("/wholesale-leads", api.SubmitLead)
		public.POST("/orders", api.SubmitOrder)

		public.GET("/cart", api.GetCart)
		public.DELETE("/cart", api.ClearCart)
		public.POST("/cart/items", api.AddCartItem)
		public.PUT("/cart/items/:id", api.UpdateCartItem)
		public.DELETE("/cart/items/:id", api.RemoveCartItem)
		public.POST("/cart/checkout", api.CheckoutCart)

		public.POST("/auth/login", api.Login)
		public.POST("/auth/logout", api.Logout)
	}

	staff := r.Group("/api/admin")
	staff.Use(api.AuthRequired(), api.RequireRole(db.RoleAdmin, db.RoleEditor))
	adminOnly := api.RequireRole(db.RoleAdmin)
	{
		staff.GET("/me", api.Me)
		staff.GET("/dashboard", api.GetDashboard)

		staff.GET("/pages", api.AdminListPages)
		staff.POST("/pages", api.AdminCreatePage)
		staff.GET("/pages/:id", api.AdminGetPage)
		staff.PUT("/pages/:id", api.AdminUpdatePage)
		staff.DELETE("/pages/:id", adminOnly, api.AdminDeletePage)
		staff.GET("/pages/:id/sections", api.AdminListSections)
		staff.PUT("/pages/:id/sections/order", api.AdminReorderSections)

		staff.POST("/sections", api.AdminCreateSection)
		staff.GET("/sections/duplicates", api.AdminSectionDuplicates)
		staff.GET("/section-types", api.AdminSectionTypes)
		staff.PUT("/sections/:id", api.AdminUpdateSection)
		staff.DELETE("/sections/:id", adminOnly, api.AdminDeleteSection)

		staff.GET("/categories", api.AdminListCategories)
		staff.POST("/categories", api.AdminCreateCategory)
		staff.GET("/categories/:id", api.AdminGetCategory)
		staff.PUT("/categories/:id", api.AdminUpdateCategory)
		staff.DELETE("/categories/:id", api.AdminDeleteCategory)

		staff.GET("/products", api.AdminListProducts)
		staff.POST("/products", api.AdminCreateProduct)
		staff.GET("/products/:id", api.AdminGetProduct)
		staff.PUT("/products/:id", api.AdminUpdateProduct)
		staff.DELETE("/products/:id", api.AdminDeleteProduct)

		staff.GET("/posts", api.AdminListPosts)
		staff.POST("/posts", api.AdminCreatePost)
		staff.GET("/posts/:id", api.AdminGetPost)
		staff.PUT("/posts/:id", api.AdminUpdatePost)
		staff.DELETE("/posts/:id", api.AdminDeletePost)

		staff.GET("/orders", api.AdminListOrders)
		staff.PATCH("/orders/:id/status", api.AdminUpdateOrderStatus)
		staff.GET("/leads", api.AdminListLeads)
		staff.PATCH("/leads/:id/status", api.AdminUpdateLeadStatus)
		staff.GET("/contact-queries", api.AdminListContactQueries)
		staff.PATCH("/contact-queries/:id/status", api.AdminUpdateContactQueryStatus)

		staff.GET("/media", api.ListMedia)
		staff.POST("/media", api.UploadMedia)
		staff.DELETE("/media/:id", api.DeleteMedia)

		staff.GET("/site-settings", api.AdminGetSiteSettings)
		staff.PUT("/site-settings", adminOnly, api.AdminUpdateSiteSettings)

		staff.GET("/users", adminOnly, api.AdminListUsers)
		staff.POST("/users", adminOnly, api.AdminCreateUser)
		staff.PUT("/users/:id", adminOnly, api.AdminUpdateUser)
		staff.DELETE("/users/:id", adminOnly, api.AdminDeleteUser)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
