package section

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSite struct {
	info SiteInfo
	err  error
}

func (s stubSite) SiteInfo(context.Context) (SiteInfo, error) { return s.info, s.err }

type stubProducts struct {
	cards    []ProductCard
	err      error
	gotSlugs []string
	gotLimit int
}

func (s *stubProducts) FeaturedCards(_ context.Context, slugs []string, limit int) ([]ProductCard, error) {
	s.gotSlugs = slugs
	s.gotLimit = limit
	return s.cards, s.err
}

func renderOne(t *testing.T, r *Renderer, typ Type, content string) string {
	t.Helper()
	units := r.Render(context.Background(), []Item{{ID: 1, Type: typ, Visible: true, Content: content}})
	if len(units) == 0 {
		return ""
	}
	return string(units[0].HTML)
}

func TestHeroOmitsMissingPieces(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	out := renderOne(t, r, Hero, `{"title":"Comex"}`)
	assert.Contains(t, out, "Comex")
	assert.NotContains(t, out, "hero-subtitle")
	assert.NotContains(t, out, "btn-primary")
	assert.Contains(t, out, "https://wa.me/5491112345678")
}

func TestStatsRendersNumericValues(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	out := renderOne(t, r, Stats, `{"title":"Nuestros números","items":[{"value":500,"label":"Clientes"},{"value":"98%","label":"Satisfacción"}]}`)
	assert.Contains(t, out, "Nuestros números")
	assert.Contains(t, out, "<dd>500</dd>")
	assert.Contains(t, out, "<dd>98%</dd>")
	assert.Contains(t, out, "Clientes")
}

func TestContactBlockReadsSiteInfo(t *testing.T) {
	site := stubSite{info: SiteInfo{Phone: "+54 11 5555-0000", WhatsAppNumber: "+54 9 11 4444-3333", Address: "Av. Siempre Viva 742"}}
	r, err := NewDefault(zerolog.Nop(), site, nil)
	require.NoError(t, err)

	out := renderOne(t, r, ContactBlock, `{"title":"Contacto","showForm":true}`)
	assert.Contains(t, out, "Av. Siempre Viva 742")
	assert.Contains(t, out, "https://wa.me/5491144443333")
	assert.Contains(t, out, `action="/api/contact"`)
}

func TestContactBlockDegradesWhenSettingsFail(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), stubSite{err: errors.New("db down")}, nil)
	require.NoError(t, err)

	out := renderOne(t, r, ContactBlock, `{"title":"Contacto"}`)
	assert.Contains(t, out, "Contacto")
	assert.Contains(t, out, "https://wa.me/5491112345678")
	assert.NotContains(t, out, "<form")
}

func TestImportadoraTeaserFetchesProducts(t *testing.T) {
	products := &stubProducts{cards: []ProductCard{{Name: "Termo", Slug: "termo", Price: decimal.RequireFromString("1999.9")}}}
	r, err := NewDefault(zerolog.Nop(), nil, products)
	require.NoError(t, err)

	out := renderOne(t, r, ImportadoraTeaser, `{"title":"Importadora","featuredProducts":["termo"]}`)
	assert.Contains(t, out, "/importadora/minorista/productos/termo")
	assert.Contains(t, out, "$1999.90")
	assert.Equal(t, []string{"termo"}, products.gotSlugs)
	assert.Equal(t, teaserFallbackLimit, products.gotLimit)
}

func TestImportadoraTeaserDegradesOnFetchError(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, &stubProducts{err: errors.New("timeout")})
	require.NoError(t, err)

	units := r.Render(context.Background(), []Item{
		{ID: 1, Type: ImportadoraTeaser, Visible: true, Content: `{"title":"Importadora"}`},
		{ID: 2, Type: CTABand, Visible: true, Order: 1, Content: `{"title":"Escribinos"}`},
	})
	require.Len(t, units, 2)
	assert.Contains(t, string(units[0].HTML), "Importadora")
	assert.NotContains(t, string(units[0].HTML), "product-card")
}

func TestRichTextSanitizesAndRendersMarkdown(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	out := renderOne(t, r, RichText, `{"html":"<p>Hola</p><script>alert(1)</script>"}`)
	assert.Contains(t, out, "<p>Hola</p>")
	assert.NotContains(t, out, "<script")

	out = renderOne(t, r, RichText, `{"markdown":"## Quiénes somos"}`)
	assert.Contains(t, out, "<h2")

	assert.Empty(t, renderOne(t, r, RichText, `{}`))
}

func TestImageTextDefaultsToRight(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, renderOne(t, r, ImageText, `{"title":"x"}`), "image-right")
	assert.Contains(t, renderOne(t, r, ImageText, `{"imagePosition":"left"}`), "image-left")
}

func TestEveryTypeHasDefaultStrategy(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	for _, typ := range Types {
		assert.True(t, r.Registered(typ), typ)
		if typ == RichText {
			continue
		}
		out := renderOne(t, r, typ, `{"title":"Título"}`)
		assert.True(t, strings.HasPrefix(out, "<section"), "%s rendered %q", typ, out)
	}
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5491112345678", WhatsAppLink("+54 9 (11) 1234-5678"))
}
