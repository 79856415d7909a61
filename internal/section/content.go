package section

import "encoding/json"

// Type identifies how a section's content is shaped and rendered.
type Type string

const (
	Hero              Type = "HERO"
	ServicesGrid      Type = "SERVICES_GRID"
	CTABand           Type = "CTA_BAND"
	FAQ               Type = "FAQ"
	Testimonials      Type = "TESTIMONIALS"
	RichText          Type = "RICH_TEXT"
	Stats             Type = "STATS"
	ImageText         Type = "IMAGE_TEXT"
	ContactBlock      Type = "CONTACT_BLOCK"
	ImportadoraTeaser Type = "IMPORTADORA_TEASER"
)

// Types lists every known section type in back office display order.
var Types = []Type{
	Hero, ServicesGrid, CTABand, FAQ, Testimonials,
	RichText, Stats, ImageText, ContactBlock, ImportadoraTeaser,
}

// Valid reports whether t is a known section type.
func (t Type) Valid() bool {
	_, ok := decoders[t]
	return ok
}

// Content is the typed payload of a section. Each section type has exactly
// one concrete implementation.
type Content interface {
	SectionType() Type
}

// Link is a call-to-action button.
type Link struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// Present reports whether the link has both a label and a target.
func (l *Link) Present() bool {
	return l != nil && l.Text != "" && l.Link != ""
}

type HeroContent struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	PrimaryCTA   *Link  `json:"primaryCta"`
	SecondaryCTA *Link  `json:"secondaryCta"`
	ImageURL     string `json:"imageUrl"`
}

type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type ServicesGridContent struct {
	Title string        `json:"title"`
	Items []ServiceItem `json:"items"`
}

type CTABandContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	CTA   *Link  `json:"cta"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQContent struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type Testimonial struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

type TestimonialsContent struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

// RichTextContent carries either operator HTML or markdown. HTML wins when
// both are set.
type RichTextContent struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
}

type StatItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type StatsContent struct {
	Title string     `json:"title"`
	Items []StatItem `json:"items"`
}

type ImageTextContent struct {
	Title         string `json:"title"`
	Text          string `json:"text"`
	ImageURL      string `json:"imageUrl"`
	ImagePosition string `json:"imagePosition"` // left | right
	CTA           *Link  `json:"cta"`
}

type ContactBlockContent struct {
	Title    string `json:"title"`
	ShowForm bool   `json:"showForm"`
}

// ImportadoraTeaserContent names featured products by slug. An empty list
// falls back to the catalog's featured products.
type ImportadoraTeaserContent struct {
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	FeaturedProducts []string `json:"featuredProducts"`
	CTA              *Link    `json:"cta"`
}

func (HeroContent) SectionType() Type              { return Hero }
func (ServicesGridContent) SectionType() Type      { return ServicesGrid }
func (CTABandContent) SectionType() Type           { return CTABand }
func (FAQContent) SectionType() Type               { return FAQ }
func (TestimonialsContent) SectionType() Type      { return Testimonials }
func (RichTextContent) SectionType() Type          { return RichText }
func (StatsContent) SectionType() Type             { return Stats }
func (ImageTextContent) SectionType() Type         { return ImageText }
func (ContactBlockContent) SectionType() Type      { return ContactBlock }
func (ImportadoraTeaserContent) SectionType() Type { return ImportadoraTeaser }

var decoders = map[Type]func([]byte) Content{
	Hero:              decodeAs[HeroContent],
	ServicesGrid:      decodeAs[ServicesGridContent],
	CTABand:           decodeAs[CTABandContent],
	FAQ:               decodeAs[FAQContent],
	Testimonials:      decodeAs[TestimonialsContent],
	RichText:          decodeAs[RichTextContent],
	Stats:             decodeAs[StatsContent],
	ImageText:         decodeAs[ImageTextContent],
	ContactBlock:      decodeAs[ContactBlockContent],
	ImportadoraTeaser: decodeAs[ImportadoraTeaserContent],
}

// Decode turns a raw JSON payload into the variant for t. Fields of the wrong
// JSON kind are coerced or skipped one by one; malformed or empty payloads
// yield the zero variant. ok is false only for unknown types.
func Decode(t Type, raw string) (c Content, ok bool) {
	decode, ok := decoders[t]
	if !ok {
		return nil, false
	}
	return decode([]byte(raw)), true
}

func decodeAs[T Content](raw []byte) Content {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return decodeLenient[T](raw)
	}
	return v
}

// ValidateContent checks that raw is a JSON object. Type specific fields are
// all optional.
func ValidateContent(raw string) bool {
	if raw == "" {
		return true
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(raw), &obj) == nil
}
