package handler

import (
	"net/http"

	"github.com/comexweb/internal/section"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

type reorderRequest struct {
	IDs []uint `json:"ids"`
}

// GetDashboard returns back office counters.
func (a *API) GetDashboard(c *gin.Context) {
	stats, err := a.dashboard.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminListPages lists every page, drafts included.
func (a *API) AdminListPages(c *gin.Context) {
	pages, err := a.pages.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// AdminGetPage returns a page with all of its sections.
func (a *API) AdminGetPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// AdminCreatePage creates a page; the slug is derived from the title when empty.
func (a *API) AdminCreatePage(c *gin.Context) {
	var in service.PageInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	page, err := a.pages.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// AdminUpdatePage saves page fields together with section order, visibility
// and content changes.
func (a *API) AdminUpdatePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.PageInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	page, err := a.pages.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// AdminDeletePage deletes a page and its sections.
func (a *API) AdminDeletePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.pages.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListSections lists a page's sections in display order.
func (a *API) AdminListSections(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sections, err := a.sections.ListByPage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// AdminCreateSection appends a section to a page unless an order is given.
func (a *API) AdminCreateSection(c *gin.Context) {
	var in service.SectionInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	sec, err := a.sections.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": sec})
}

// AdminUpdateSection 只更新请求中出现的字段。
func (a *API) AdminUpdateSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.SectionUpdate
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	sec, err := a.sections.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": sec})
}

// AdminDeleteSection removes one section.
func (a *API) AdminDeleteSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.sections.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminReorderSections assigns orders 0..n-1 to the page's sections.
func (a *API) AdminReorderSections(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req reorderRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	if err := a.sections.Reorder(c.Request.Context(), id, req.IDs); err != nil {
		handleServiceError(c, err)
		return
	}
	sections, err := a.sections.ListByPage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// AdminSectionTypes lists the section types the renderer knows, in the order
// the back office offers them.
func (a *API) AdminSectionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": section.Types})
}

// AdminSectionDuplicates reports sections sharing type and order; ?pageId=
// narrows to one page.
func (a *API) AdminSectionDuplicates(c *gin.Context) {
	groups, err := a.sections.Duplicates(c.Request.Context(), uint(max(queryInt(c, "pageId", 0), 0)))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicates": groups})
}

// AdminListCategories lists all categories with product counts.
func (a *API) AdminListCategories(c *gin.Context) {
	categories, err := a.categories.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AdminGetCategory returns one category.
func (a *API) AdminGetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := a.categories.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// AdminCreateCategory creates a category.
func (a *API) AdminCreateCategory(c *gin.Context) {
	var in service.CategoryInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	category, err := a.categories.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// AdminUpdateCategory answers 409 when the new slug is taken.
func (a *API) AdminUpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.CategoryInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	category, err := a.categories.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// AdminDeleteCategory answers 409 while products still reference the
// category.
func (a *API) AdminDeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.categories.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListProducts lists active and inactive products.
func (a *API) AdminListProducts(c *gin.Context) {
	products, err := a.products.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AdminGetProduct returns one product regardless of status.
func (a *API) AdminGetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := a.products.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// AdminCreateProduct creates a product.
func (a *API) AdminCreateProduct(c *gin.Context) {
	var in service.ProductInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	product, err := a.products.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// AdminUpdateProduct saves product changes.
func (a *API) AdminUpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.ProductInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	product, err := a.products.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// AdminDeleteProduct deletes a product.
func (a *API) AdminDeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.products.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListPosts lists posts, optionally filtered by ?status=.
func (a *API) AdminListPosts(c *gin.Context) {
	posts, err := a.posts.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// AdminGetPost returns one post regardless of status.
func (a *API) AdminGetPost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// AdminCreatePost creates a post.
func (a *API) AdminCreatePost(c *gin.Context) {
	var in service.PostInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	post, err := a.posts.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// AdminUpdatePost saves post changes.
func (a *API) AdminUpdatePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.PostInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	post, err := a.posts.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// AdminDeletePost deletes a post.
func (a *API) AdminDeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.posts.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListOrders lists orders, newest first; ?status= filters.
func (a *API) AdminListOrders(c *gin.Context) {
	orders, err := a.orders.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// AdminUpdateOrderStatus moves an order to another status.
func (a *API) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	order, err := a.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// AdminListLeads lists wholesale access requests; ?status= filters.
func (a *API) AdminListLeads(c *gin.Context) {
	leads, err := a.leads.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// AdminUpdateLeadStatus moves a lead to another status.
func (a *API) AdminUpdateLeadStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	lead, err := a.leads.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// AdminListContactQueries lists contact messages; ?status= filters.
func (a *API) AdminListContactQueries(c *gin.Context) {
	queries, err := a.contacts.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contactQueries": queries})
}

// AdminUpdateContactQueryStatus moves a contact message to another status.
func (a *API) AdminUpdateContactQueryStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	query, err := a.contacts.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contactQuery": query})
}

// AdminGetSiteSettings 与公开接口返回相同内容。
func (a *API) AdminGetSiteSettings(c *gin.Context) {
	a.GetSiteSettings(c)
}

// AdminUpdateSiteSettings saves the fields present in the request; an empty
// string clears a field.
func (a *API) AdminUpdateSiteSettings(c *gin.Context) {
	var in service.SiteSettingsInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	settings, err := a.settings.Update(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// AdminListUsers lists back office accounts.
func (a *API) AdminListUsers(c *gin.Context) {
	users, err := a.users.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminCreateUser creates an account with a hashed password.
func (a *API) AdminCreateUser(c *gin.Context) {
	var in service.UserInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	user, err := a.users.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// AdminUpdateUser changes name, role or password.
func (a *API) AdminUpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.UserInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}
	user, err := a.users.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminDeleteUser refuses to delete the signed-in account.
func (a *API) AdminDeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if me := currentUser(c); me != nil && me.ID == id {
		respondError(c, http.StatusBadRequest, "No podés eliminar tu propio usuario")
		return
	}
	if err := a.users.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
