package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postForm 模拟浏览器提交普通表单。
func (c *client) postForm(t *testing.T, path, referer string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testBaseURL+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if referer != "" {
		req.Header.Set("Referer", testBaseURL+referer)
	}
	return c.do(t, req)
}

func TestContactBlockFormPost(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	page, err := service.NewPageService(srv.db).Create(ctx, service.PageInput{Title: "Contacto", Published: ptr(true)})
	require.NoError(t, err)
	_, err = service.NewSectionService(srv.db).Create(ctx, service.SectionInput{
		PageID:  page.ID,
		Type:    "CONTACT_BLOCK",
		Content: `{"title":"Escribinos","showForm":true}`,
	})
	require.NoError(t, err)

	c := srv.client()
	rr := c.get(t, "/contacto")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `action="/api/contact"`)
	assert.Contains(t, rr.Body.String(), "/static/js/forms.js")

	// 与联系表单模板中的字段一致
	rr = c.postForm(t, "/api/contact", "/contacto", url.Values{
		"name":    {"Juan Pérez"},
		"email":   {"juan@mail.com"},
		"phone":   {"11 5555-0000"},
		"company": {"Importadora Sur"},
		"message": {"Quiero cotizar un despacho"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "¡Mensaje enviado!")
	assert.Contains(t, rr.Body.String(), `href="/contacto"`)

	var stored []db.ContactQuery
	require.NoError(t, srv.db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "Importadora Sur", stored[0].Company)
	assert.Equal(t, "Quiero cotizar un despacho", stored[0].Message)

	rr = c.postForm(t, "/api/contact", "/contacto", url.Values{"name": {"Juan"}, "message": {"Hola"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No pudimos enviar el formulario")

	var count int64
	require.NoError(t, srv.db.Model(&db.ContactQuery{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestWholesalePage(t *testing.T) {
	srv := setupTestServer(t)
	c := srv.client()

	rr := c.get(t, "/importadora/mayorista")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Acceso Mayorista")
	assert.Contains(t, rr.Body.String(), `action="/api/wholesale-leads"`)

	rr = c.postForm(t, "/api/wholesale-leads", "/importadora/mayorista", url.Values{
		"companyName": {"Distribuidora Norte"},
		"cuit":        {"20-12345678-9"},
		"name":        {"Laura Gómez"},
		"email":       {"laura@norte.com"},
		"city":        {"Córdoba"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "¡Solicitud Enviada!")

	rr = c.sendJSON(t, http.MethodPost, "/api/wholesale-leads", map[string]string{"companyName": "Otra", "name": "Ana", "email": "no-es-email"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "email", decodeBody(t, rr)["field"])

	var leads []db.WholesaleLead
	require.NoError(t, srv.db.Find(&leads).Error)
	require.Len(t, leads, 1)
	assert.Equal(t, "Distribuidora Norte", leads[0].CompanyName)
	assert.Equal(t, db.StatusNew, leads[0].Status)
}

func TestCartPageAndCheckout(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	products := service.NewProductService(srv.db)
	mate, err := products.Create(ctx, service.ProductInput{Name: "Mate", PriceRetail: decimal.RequireFromString("1500.50")})
	require.NoError(t, err)
	termo, err := products.Create(ctx, service.ProductInput{Name: "Termo", PriceRetail: decimal.RequireFromString("8000")})
	require.NoError(t, err)
	_, err = service.NewSiteSettingsService(srv.db).Update(ctx, service.SiteSettingsInput{WhatsAppNumber: ptr("+54 9 11 5555-0000")})
	require.NoError(t, err)

	c := srv.client()

	rr := c.get(t, "/importadora/minorista/carrito")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Tu carrito está vacío")

	rr = c.get(t, "/importadora/minorista/checkout")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/importadora/minorista/carrito", rr.Header().Get("Location"))

	for _, id := range []uint{mate.ID, termo.ID} {
		rr = c.sendJSON(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": id})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = c.get(t, "/importadora/minorista/carrito")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Mate")
	assert.Contains(t, rr.Body.String(), "$9500.50")

	rr = c.postForm(t, "/importadora/minorista/carrito", "", url.Values{"action": {"update"}, "id": {itoa(mate.ID)}, "quantity": {"3"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/importadora/minorista/carrito", rr.Header().Get("Location"))
	rr = c.postForm(t, "/importadora/minorista/carrito", "", url.Values{"action": {"remove"}, "id": {itoa(termo.ID)}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body := decodeBody(t, c.get(t, "/api/cart"))
	assert.EqualValues(t, 3, body["count"])
	assert.Equal(t, "4501.5", body["total"])

	rr = c.get(t, "/importadora/minorista/checkout")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Resumen del Pedido")
	assert.Contains(t, rr.Body.String(), "$4501.50")

	rr = c.postForm(t, "/importadora/minorista/checkout", "", url.Values{"customerName": {"Ana"}, "email": {"ana"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Ana"`)

	rr = c.postForm(t, "/importadora/minorista/checkout", "", url.Values{
		"customerName": {"Ana"},
		"email":        {"ana@mail.com"},
		"address":      {"Av. Siempreviva 742"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "¡Pedido Confirmado!")
	assert.Contains(t, rr.Body.String(), "https://wa.me/5491155550000?text=")

	var orders []db.Order
	require.NoError(t, srv.db.Preload("Items").Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, db.OrderTypeRetail, orders[0].Type)
	assert.True(t, decimal.RequireFromString("4501.50").Equal(orders[0].Total))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)

	body = decodeBody(t, c.get(t, "/api/cart"))
	assert.EqualValues(t, 0, body["count"])
}

func TestCartPageClear(t *testing.T) {
	srv := setupTestServer(t)
	product, err := service.NewProductService(srv.db).Create(context.Background(), service.ProductInput{Name: "Mate", PriceRetail: decimal.NewFromInt(100)})
	require.NoError(t, err)

	c := srv.client()
	rr := c.sendJSON(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.postForm(t, "/importadora/minorista/carrito", "", url.Values{"action": {"clear"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = c.get(t, "/importadora/minorista/carrito")
	assert.Contains(t, rr.Body.String(), "Tu carrito está vacío")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
