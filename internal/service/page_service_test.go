package service

import (
	"context"
	"testing"

	"github.com/comexweb/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCreateDerivesUniqueSlug(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, PageInput{Title: "Sobre Nosotros"})
	require.NoError(t, err)
	assert.Equal(t, "sobre-nosotros", first.Slug)

	second, err := svc.Create(ctx, PageInput{Title: "Sobre Nosotros"})
	require.NoError(t, err)
	assert.Equal(t, "sobre-nosotros-2", second.Slug)

	_, err = svc.Create(ctx, PageInput{Title: "   "})
	requireField(t, err, "title")
}

func TestPageUpdateRequiresTitle(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))
	ctx := context.Background()

	page, err := svc.Create(ctx, PageInput{Title: "Inicio", Slug: "home"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, page.ID, PageInput{Title: ""})
	verr := requireField(t, err, "title")
	assert.Equal(t, "El título es requerido", verr.Message)

	_, err = svc.Update(ctx, 9999, PageInput{Title: "x"})
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageUpdateAppliesSectionPatches(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page, err := pages.Create(ctx, PageInput{Title: "Servicios"})
	require.NoError(t, err)
	hero, err := sections.Create(ctx, SectionInput{PageID: page.ID, Type: "HERO", Content: `{"title":"Hola"}`})
	require.NoError(t, err)
	faq, err := sections.Create(ctx, SectionInput{PageID: page.ID, Type: "FAQ"})
	require.NoError(t, err)

	content := db.JSONText(`{"title":"Preguntas"}`)
	updated, err := pages.Update(ctx, page.ID, PageInput{
		Title:     "Nuestros servicios",
		Published: ptr(true),
		Sections: []SectionPatch{
			{ID: hero.ID, Visible: ptr(false)},
			{ID: faq.ID, Order: ptr(-1), Content: &content},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Nuestros servicios", updated.Title)
	assert.Equal(t, "servicios", updated.Slug)
	assert.True(t, updated.Published)
	require.Len(t, updated.Sections, 2)
	assert.Equal(t, faq.ID, updated.Sections[0].ID)
	assert.JSONEq(t, `{"title":"Preguntas"}`, string(updated.Sections[0].Content))
	assert.False(t, updated.Sections[1].Visible)
}

func TestPageUpdateRollsBackForeignSectionPatch(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page, err := pages.Create(ctx, PageInput{Title: "Uno"})
	require.NoError(t, err)
	other, err := pages.Create(ctx, PageInput{Title: "Dos"})
	require.NoError(t, err)
	foreign, err := sections.Create(ctx, SectionInput{PageID: other.ID, Type: "CTA_BAND"})
	require.NoError(t, err)

	_, err = pages.Update(ctx, page.ID, PageInput{
		Title:    "Cambiado",
		Sections: []SectionPatch{{ID: foreign.ID, Visible: ptr(false)}},
	})
	require.ErrorIs(t, err, ErrSectionNotFound)

	reloaded, err := pages.Get(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Uno", reloaded.Title)

	untouched, err := sections.Get(ctx, foreign.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Visible)
}

func TestPageGetPublishedBySlugFiltersSections(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page, err := pages.Create(ctx, PageInput{Title: "Importadora", Published: ptr(false)})
	require.NoError(t, err)
	_, err = sections.Create(ctx, SectionInput{PageID: page.ID, Type: "RICH_TEXT", Order: ptr(2)})
	require.NoError(t, err)
	_, err = sections.Create(ctx, SectionInput{PageID: page.ID, Type: "FAQ", Order: ptr(1), Visible: ptr(false)})
	require.NoError(t, err)
	_, err = sections.Create(ctx, SectionInput{PageID: page.ID, Type: "HERO", Order: ptr(0)})
	require.NoError(t, err)

	_, err = pages.GetPublishedBySlug(ctx, "importadora")
	require.ErrorIs(t, err, ErrPageNotFound)

	_, err = pages.Update(ctx, page.ID, PageInput{Title: page.Title, Published: ptr(true)})
	require.NoError(t, err)

	published, err := pages.GetPublishedBySlug(ctx, " importadora ")
	require.NoError(t, err)
	require.Len(t, published.Sections, 2)
	assert.Equal(t, "HERO", published.Sections[0].Type)
	assert.Equal(t, "RICH_TEXT", published.Sections[1].Type)
}

func TestPageListCountsAndDeleteCascades(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page, err := pages.Create(ctx, PageInput{Title: "Contacto"})
	require.NoError(t, err)
	for _, typ := range []string{"HERO", "CONTACT_BLOCK"} {
		_, err := sections.Create(ctx, SectionInput{PageID: page.ID, Type: typ})
		require.NoError(t, err)
	}

	list, err := pages.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 2, list[0].SectionCount)

	require.NoError(t, pages.Delete(ctx, page.ID))
	remaining, err := sections.ListByPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, pages.Delete(ctx, page.ID), ErrPageNotFound)
}
