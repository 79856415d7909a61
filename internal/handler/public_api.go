package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/comexweb/internal/section"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

const invalidPayloadMessage = "Solicitud inválida"

// GetSiteSettings returns the public site settings.
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListCategories returns visible categories with active product counts.
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.ListVisible(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListProducts supports ?category=&featured=&limit=&offset=.
func (a *API) ListProducts(c *gin.Context) {
	products, err := a.products.ListPublic(c.Request.Context(), service.ProductFilter{
		CategorySlug: c.Query("category"),
		Featured:     queryBool(c, "featured"),
		Limit:        queryInt(c, "limit", 0),
		Offset:       queryInt(c, "offset", 0),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns an active product by slug.
func (a *API) GetProduct(c *gin.Context) {
	product, err := a.products.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ListPosts returns published posts with ?limit=&offset=.
func (a *API) ListPosts(c *gin.Context) {
	result, err := a.posts.ListPublished(c.Request.Context(), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPost returns a published post and its rendered body.
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	content, err := a.posts.RenderContent(post)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "html": content})
}

type renderedSection struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
	HTML string `json:"html"`
}

// GetPage returns a published page with its visible sections and their
// rendered HTML in display order.
func (a *API) GetPage(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := a.pages.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	doc := section.Assemble(page.Slug, a.renderer.Render(ctx, section.FromModels(page.Sections)))
	units := doc.Units()
	rendered := make([]renderedSection, 0, len(units))
	for _, u := range units {
		rendered = append(rendered, renderedSection{ID: u.SectionID, Type: string(u.Type), HTML: string(u.HTML)})
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "rendered": rendered, "scene": doc.Scene})
}

// SubmitContact stores a contact form message. It accepts JSON and the plain
// form posted by the contact block.
func (a *API) SubmitContact(c *gin.Context) {
	var in service.ContactInput
	if !bindPayload(c, &in, invalidPayloadMessage) {
		return
	}
	query, err := a.contacts.Create(c.Request.Context(), in)
	if err != nil {
		a.respondSubmitError(c, err, backLink(c, "/"))
		return
	}
	a.respondSubmitted(c, "contactQuery", query, formResult{
		title:   "¡Mensaje enviado!",
		message: "Gracias por escribirnos. Te responderemos a la brevedad.",
		back:    backLink(c, "/"),
	})
}

// SubmitLead stores a wholesale access request.
func (a *API) SubmitLead(c *gin.Context) {
	var in service.LeadInput
	if !bindPayload(c, &in, invalidPayloadMessage) {
		return
	}
	lead, err := a.leads.Create(c.Request.Context(), in)
	if err != nil {
		a.respondSubmitError(c, err, wholesalePath)
		return
	}
	a.respondSubmitted(c, "lead", lead, formResult{
		title:   "¡Solicitud Enviada!",
		message: "Tu solicitud de acceso mayorista ha sido recibida. Te contactaremos pronto para activar tu cuenta mayorista.",
		back:    "/importadora",
	})
}

// formResult 是普通表单提交后确认页的内容。
type formResult struct {
	title   string
	message string
	back    string
}

// respondSubmitted answers a stored submission: 201 JSON for API clients, a
// confirmation page for plain form posts.
func (a *API) respondSubmitted(c *gin.Context, key string, record interface{}, done formResult) {
	if isJSONRequest(c) {
		c.JSON(http.StatusCreated, gin.H{"success": true, key: record})
		return
	}
	a.renderHTML(c, http.StatusOK, "form_result.html", gin.H{
		"title":   done.title,
		"message": done.message,
		"back":    done.back,
	})
}

// respondSubmitError 对表单提交渲染错误页，JSON 请求仍走 handleServiceError。
func (a *API) respondSubmitError(c *gin.Context, err error, back string) {
	var validation *service.ValidationError
	switch {
	case isJSONRequest(c):
		handleServiceError(c, err)
	case errors.As(err, &validation):
		a.renderHTML(c, http.StatusBadRequest, "form_result.html", gin.H{
			"title": "Revisá los datos",
			"error": validation.Message,
			"back":  back,
		})
	default:
		a.serverError(c, err)
	}
}

// backLink returns the local path the form was posted from.
func backLink(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	return ref.Path
}

// SubmitOrder stores an order posted with explicit items.
func (a *API) SubmitOrder(c *gin.Context) {
	var in service.OrderInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	order, err := a.orders.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}
