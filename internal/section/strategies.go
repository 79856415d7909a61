package section

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/comexweb/internal/markup"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultWhatsAppNumber = "+5491112345678"

// SiteInfo is the subset of site settings sections display.
type SiteInfo struct {
	SiteName       string
	WhatsAppNumber string
	Phone          string
	Email          string
	Address        string
}

// ProductCard is a featured product as shown in the importadora teaser.
type ProductCard struct {
	Name     string
	Slug     string
	ImageURL string
	Price    decimal.Decimal
}

// SiteInfoSource supplies site settings to sections that show contact data.
type SiteInfoSource interface {
	SiteInfo(ctx context.Context) (SiteInfo, error)
}

// ProductSource supplies featured products. With no slugs it returns up to
// limit featured products.
type ProductSource interface {
	FeaturedCards(ctx context.Context, slugs []string, limit int) ([]ProductCard, error)
}

const teaserFallbackLimit = 3

// NewDefault returns a renderer with a strategy for every built-in type.
// Either source may be nil; the affected sections then render without the
// supplementary data.
func NewDefault(log zerolog.Logger, site SiteInfoSource, products ProductSource) (*Renderer, error) {
	tmpl, err := template.New("sections").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse section templates: %w", err)
	}

	r := NewRenderer(log)
	siteData := func(ctx context.Context) SiteInfo {
		info := SiteInfo{}
		if site != nil {
			fetched, err := site.SiteInfo(ctx)
			if err != nil {
				log.Debug().Err(err).Msg("site info unavailable for section")
			} else {
				info = fetched
			}
		}
		if strings.TrimSpace(info.WhatsAppNumber) == "" {
			info.WhatsAppNumber = defaultWhatsAppNumber
		}
		return info
	}

	r.Register(Hero, templateStrategy(tmpl, Hero, func(ctx context.Context, c Content) any {
		return struct {
			HeroContent
			Site SiteInfo
		}{c.(HeroContent), siteData(ctx)}
	}))
	r.Register(ContactBlock, templateStrategy(tmpl, ContactBlock, func(ctx context.Context, c Content) any {
		return struct {
			ContactBlockContent
			Site SiteInfo
		}{c.(ContactBlockContent), siteData(ctx)}
	}))
	r.Register(ImportadoraTeaser, templateStrategy(tmpl, ImportadoraTeaser, func(ctx context.Context, c Content) any {
		content := c.(ImportadoraTeaserContent)
		var cards []ProductCard
		if products != nil {
			fetched, err := products.FeaturedCards(ctx, content.FeaturedProducts, teaserFallbackLimit)
			if err != nil {
				log.Debug().Err(err).Msg("featured products unavailable for teaser")
			} else {
				cards = fetched
			}
		}
		return struct {
			ImportadoraTeaserContent
			Products []ProductCard
		}{content, cards}
	}))
	r.Register(RichText, templateStrategy(tmpl, RichText, func(_ context.Context, c Content) any {
		return struct{ Body template.HTML }{richTextBody(c.(RichTextContent))}
	}))
	r.Register(ImageText, templateStrategy(tmpl, ImageText, func(_ context.Context, c Content) any {
		content := c.(ImageTextContent)
		if content.ImagePosition != "left" {
			content.ImagePosition = "right"
		}
		return content
	}))

	for _, t := range []Type{ServicesGrid, CTABand, FAQ, Testimonials, Stats} {
		r.Register(t, templateStrategy(tmpl, t, nil))
	}
	return r, nil
}

// templateStrategy executes the template named after t. view builds the
// template data; nil passes the content through.
func templateStrategy(tmpl *template.Template, t Type, view func(context.Context, Content) any) Strategy {
	name := string(t)
	return StrategyFunc(func(ctx context.Context, c Content) (template.HTML, error) {
		if c.SectionType() != t {
			return "", fmt.Errorf("content %s passed to %s strategy", c.SectionType(), t)
		}
		var data any = c
		if view != nil {
			data = view(ctx, c)
		}
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return "", fmt.Errorf("execute %s: %w", name, err)
		}
		return template.HTML(strings.TrimSpace(buf.String())), nil
	})
}

func richTextBody(c RichTextContent) template.HTML {
	if strings.TrimSpace(c.HTML) != "" {
		return markup.Sanitize(c.HTML)
	}
	if strings.TrimSpace(c.Markdown) != "" {
		out, err := markup.Markdown(c.Markdown)
		if err == nil {
			return out
		}
	}
	return ""
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"whatsappLink": WhatsAppLink,
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
	}
}

// WhatsAppLink builds a wa.me link from a phone number in any format.
func WhatsAppLink(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String()
}
