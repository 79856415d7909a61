package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/comexweb/internal/cart"
	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/section"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	wholesalePath = "/importadora/mayorista"
	cartPagePath  = "/importadora/minorista/carrito"
	checkoutPath  = "/importadora/minorista/checkout"
)

type cartFormRequest struct {
	Action   string `form:"action"`
	ID       uint   `form:"id"`
	Quantity int    `form:"quantity"`
}

// ShowWholesale renders the wholesale access request form.
func (a *API) ShowWholesale(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "wholesale.html", gin.H{
		"title":       "Acceso Mayorista",
		"description": "Solicitá acceso a precios mayoristas.",
	})
}

// ShowCart 渲染购物车页面。
func (a *API) ShowCart(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "cart.html", gin.H{
		"title": "Carrito de Compras",
		"cart":  loadCart(c, cartStore(c)),
	})
}

// UpdateCartPage applies the cart page's update, remove and clear forms,
// then redirects back to the cart.
func (a *API) UpdateCartPage(c *gin.Context) {
	var req cartFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, cartPagePath)
		return
	}

	var action cart.Action
	switch req.Action {
	case "update":
		action = cart.SetQuantity(req.ID, req.Quantity)
	case "remove":
		action = cart.Remove(req.ID)
	case "clear":
		action = cart.Clear()
	}

	store := cartStore(c)
	if err := store.Save(cart.Apply(loadCart(c, store), action)); err != nil {
		a.serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, cartPagePath)
}

// ShowCheckout renders the checkout form. An empty cart goes back to the
// cart page.
func (a *API) ShowCheckout(c *gin.Context) {
	current := loadCart(c, cartStore(c))
	if current.Empty() {
		c.Redirect(http.StatusSeeOther, cartPagePath)
		return
	}
	a.renderHTML(c, http.StatusOK, "checkout.html", gin.H{
		"title": "Checkout",
		"cart":  current,
		"form":  service.CheckoutInput{},
	})
}

// SubmitCheckout turns the cart into a retail order and shows the
// confirmation with a prefilled WhatsApp message.
func (a *API) SubmitCheckout(c *gin.Context) {
	var in service.CheckoutInput
	if err := c.ShouldBind(&in); err != nil {
		c.Redirect(http.StatusSeeOther, checkoutPath)
		return
	}
	// 零售页面只生成零售订单
	in.Type = db.OrderTypeRetail

	store := cartStore(c)
	current := loadCart(c, store)
	order, err := a.orders.Checkout(c.Request.Context(), current, in)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.Redirect(http.StatusSeeOther, cartPagePath)
		case errors.As(err, &validation):
			a.renderHTML(c, http.StatusBadRequest, "checkout.html", gin.H{
				"title": "Checkout",
				"cart":  current,
				"form":  in,
				"error": validation.Message,
				"field": validation.Field,
			})
		default:
			a.serverError(c, err)
		}
		return
	}

	if err := store.Save(cart.Apply(current, cart.Clear())); err != nil {
		_ = c.Error(err)
	}
	a.renderHTML(c, http.StatusOK, "order_confirmed.html", gin.H{
		"title":    "¡Pedido Confirmado!",
		"order":    order,
		"whatsapp": orderWhatsAppURL(a.siteSettings(c).WhatsAppNumber, order),
	})
}

// orderWhatsAppURL builds a wa.me link whose text lists the order. It is
// empty when the site has no WhatsApp number.
func orderWhatsAppURL(number string, order *db.Order) string {
	if strings.TrimSpace(number) == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "¡Hola! Acabo de realizar el pedido #%d\n\n", order.ID)
	b.WriteString("Productos:\n")
	for _, item := range order.Items {
		line := cart.Item{Price: item.Price, Quantity: item.Quantity}
		fmt.Fprintf(&b, "- %s x%d: $%s\n", item.Name, item.Quantity, line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Nombre: %s\nEmail: %s\n", order.CustomerName, order.Email)
	if order.WhatsApp != "" {
		fmt.Fprintf(&b, "WhatsApp: %s\n", order.WhatsApp)
	}
	if order.Address != "" {
		fmt.Fprintf(&b, "Dirección: %s\n", order.Address)
	}

	// wa.me 不把 + 当作空格
	text := strings.ReplaceAll(url.QueryEscape(b.String()), "+", "%20")
	return section.WhatsAppLink(number) + "?text=" + text
}
