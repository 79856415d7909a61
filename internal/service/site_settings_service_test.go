package service

import (
	"context"
	"testing"

	"github.com/comexweb/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettingsDefaults(t *testing.T) {
	svc := NewSiteSettingsService(setupServiceTestDB(t))

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteName, settings.SiteName)
	assert.Empty(t, settings.WhatsAppNumber)
	assert.NotNil(t, settings.SocialLinks)
}

func TestSiteSettingsUpdateIsPartial(t *testing.T) {
	svc := NewSiteSettingsService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := svc.Update(ctx, SiteSettingsInput{
		SiteName:       ptr("Comex Rosario"),
		WhatsAppNumber: ptr(" +5493415550000 "),
		PrimaryColor:   ptr("#0a3d62"),
		SocialLinks:    map[string]string{"instagram": "https://instagram.com/comex", "x": " "},
	})
	require.NoError(t, err)

	settings, err := svc.Update(ctx, SiteSettingsInput{Email: ptr("ventas@comex.com")})
	require.NoError(t, err)
	assert.Equal(t, "Comex Rosario", settings.SiteName)
	assert.Equal(t, "+5493415550000", settings.WhatsAppNumber)
	assert.Equal(t, "#0a3d62", settings.PrimaryColor)
	assert.Equal(t, "ventas@comex.com", settings.Email)
	assert.Equal(t, map[string]string{"instagram": "https://instagram.com/comex"}, settings.SocialLinks)

	// 清空站点名称后回退默认值
	settings, err = svc.Update(ctx, SiteSettingsInput{SiteName: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteName, settings.SiteName)

	info, err := svc.SiteInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, section.SiteInfo{
		SiteName:       DefaultSiteName,
		WhatsAppNumber: "+5493415550000",
		Email:          "ventas@comex.com",
	}, info)
}

func TestSiteSettingsUpdateValidates(t *testing.T) {
	svc := NewSiteSettingsService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := svc.Update(ctx, SiteSettingsInput{PrimaryColor: ptr("azul")})
	requireField(t, err, "primaryColor")

	_, err = svc.Update(ctx, SiteSettingsInput{Email: ptr("no-es-email")})
	requireField(t, err, "email")

	_, err = svc.Update(ctx, SiteSettingsInput{Email: ptr("")})
	require.NoError(t, err)
}

func TestSiteSettingsUpdateClearsOptionalFields(t *testing.T) {
	svc := NewSiteSettingsService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := svc.Update(ctx, SiteSettingsInput{Email: ptr("ventas@comex.com"), PrimaryColor: ptr(" #006d8c ")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, SiteSettingsInput{Email: ptr(""), PrimaryColor: ptr("  ")})
	require.NoError(t, err)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.PrimaryColor)
}
