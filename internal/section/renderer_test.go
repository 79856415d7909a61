package section

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoRenderer renders every known type as its type name.
func echoRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(zerolog.Nop())
	for _, typ := range Types {
		r.Register(typ, StrategyFunc(func(_ context.Context, c Content) (template.HTML, error) {
			return template.HTML(c.SectionType()), nil
		}))
	}
	return r
}

func unitTypes(units []Unit) []Type {
	out := make([]Type, 0, len(units))
	for _, u := range units {
		out = append(out, u.Type)
	}
	return out
}

func unitIDs(units []Unit) []uint {
	out := make([]uint, 0, len(units))
	for _, u := range units {
		out = append(out, u.SectionID)
	}
	return out
}

func TestRenderSkipsInvisibleSections(t *testing.T) {
	r, err := NewDefault(zerolog.Nop(), nil, nil)
	require.NoError(t, err)

	items := []Item{
		{ID: 1, Type: Hero, Order: 0, Visible: true},
		{ID: 2, Type: FAQ, Order: 1, Visible: false},
		{ID: 3, Type: CTABand, Order: 2, Visible: true},
	}

	units := r.Render(context.Background(), items)
	if diff := cmp.Diff([]Type{Hero, CTABand}, unitTypes(units)); diff != "" {
		t.Fatalf("rendered types mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyInputs(t *testing.T) {
	r := echoRenderer(t)

	assert.Empty(t, r.Render(context.Background(), nil))
	assert.Empty(t, r.Render(context.Background(), []Item{
		{ID: 1, Type: Hero, Visible: false},
		{ID: 2, Type: Stats, Visible: false},
	}))
}

func TestRenderSkipsUnregisteredTypes(t *testing.T) {
	r := echoRenderer(t)

	units := r.Render(context.Background(), []Item{
		{ID: 1, Type: "CAROUSEL", Visible: true},
		{ID: 2, Type: FAQ, Visible: true, Order: 1},
	})
	assert.Equal(t, []uint{2}, unitIDs(units))
}

func TestRenderOrdersStablyByOrder(t *testing.T) {
	r := echoRenderer(t)

	items := []Item{
		{ID: 10, Type: Stats, Order: 5, Visible: true},
		{ID: 11, Type: FAQ, Order: 1, Visible: true},
		{ID: 12, Type: CTABand, Order: 1, Visible: true},
		{ID: 13, Type: RichText, Order: 0, Visible: true, Content: `{"html":"<p>x</p>"}`},
		{ID: 14, Type: ImageText, Order: 1, Visible: true},
	}

	first := r.Render(context.Background(), items)
	second := r.Render(context.Background(), items)

	assert.Equal(t, []uint{13, 11, 12, 14, 10}, unitIDs(first))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("render is not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, uint(10), items[0].ID, "input must not be reordered in place")
}

func TestRenderIsolatesStrategyErrors(t *testing.T) {
	r := echoRenderer(t)
	r.Register(FAQ, StrategyFunc(func(context.Context, Content) (template.HTML, error) {
		return "", errors.New("boom")
	}))

	units := r.Render(context.Background(), []Item{
		{ID: 1, Type: Hero, Visible: true},
		{ID: 2, Type: FAQ, Visible: true, Order: 1},
		{ID: 3, Type: Stats, Visible: true, Order: 2},
	})
	assert.Equal(t, []uint{1, 3}, unitIDs(units))
}

func TestRenderPassesRawContentForCustomTypes(t *testing.T) {
	r := NewRenderer(zerolog.Nop())
	r.Register("MAP", StrategyFunc(func(_ context.Context, c Content) (template.HTML, error) {
		raw, ok := c.(interface{ Raw() string })
		if !ok {
			return "", fmt.Errorf("unexpected content %T", c)
		}
		return template.HTML(raw.Raw()), nil
	}))

	units := r.Render(context.Background(), []Item{{ID: 7, Type: "MAP", Visible: true, Content: `{"lat":1}`}})
	require.Len(t, units, 1)
	assert.Equal(t, template.HTML(`{"lat":1}`), units[0].HTML)
}

func TestDecode(t *testing.T) {
	c, ok := Decode(Hero, `{"title":"Importamos","primaryCta":{"text":"Ver","link":"/importadora"}}`)
	require.True(t, ok)
	hero := c.(HeroContent)
	assert.Equal(t, "Importamos", hero.Title)
	assert.True(t, hero.PrimaryCTA.Present())
	assert.False(t, hero.SecondaryCTA.Present())

	c, ok = Decode(FAQ, `{"items": [`)
	require.True(t, ok)
	assert.Equal(t, FAQContent{}, c)

	c, ok = Decode(Stats, "")
	require.True(t, ok)
	assert.Equal(t, StatsContent{}, c)

	_, ok = Decode("CAROUSEL", `{}`)
	assert.False(t, ok)
}

func TestDecodeCoercesMistypedFields(t *testing.T) {
	c, ok := Decode(Stats, `{"title":"Nuestros números","items":[{"value":500,"label":"Clientes"},{"value":true,"label":"Activo"},"x"]}`)
	require.True(t, ok)
	assert.Equal(t, StatsContent{
		Title: "Nuestros números",
		Items: []StatItem{{Value: "500", Label: "Clientes"}, {Value: "true", Label: "Activo"}},
	}, c)

	// 无法修正的字段单独丢弃
	c, ok = Decode(ContactBlock, `{"title":"Contacto","showForm":"true"}`)
	require.True(t, ok)
	assert.Equal(t, ContactBlockContent{Title: "Contacto", ShowForm: true}, c)

	c, ok = Decode(Hero, `{"title":"Comex","primaryCta":"ver más","imageUrl":["a.png"]}`)
	require.True(t, ok)
	assert.Equal(t, HeroContent{Title: "Comex"}, c)

	c, ok = Decode(FAQ, `[1,2]`)
	require.True(t, ok)
	assert.Equal(t, FAQContent{}, c)
}

func TestTypeValid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, Type("hero").Valid())
	assert.False(t, Type("").Valid())
}

func TestValidateContent(t *testing.T) {
	assert.True(t, ValidateContent(""))
	assert.True(t, ValidateContent(`{"title":"x"}`))
	assert.False(t, ValidateContent(`[1,2]`))
	assert.False(t, ValidateContent(`{"title":`))
}
