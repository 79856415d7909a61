package section

import (
	"cmp"
	"context"
	"html/template"
	"slices"

	"github.com/comexweb/internal/db"
	"github.com/rs/zerolog"
)

// Item is the renderer's view of a stored section.
type Item struct {
	ID      uint
	Type    Type
	Content string
	Visible bool
	Order   int
}

// FromModels adapts stored sections to renderer items, keeping their order.
func FromModels(sections []db.Section) []Item {
	items := make([]Item, 0, len(sections))
	for _, s := range sections {
		items = append(items, Item{
			ID:      s.ID,
			Type:    Type(s.Type),
			Content: string(s.Content),
			Visible: s.Visible,
			Order:   s.Order,
		})
	}
	return items
}

// Unit is one rendered section.
type Unit struct {
	SectionID uint
	Type      Type
	HTML      template.HTML
}

// Strategy renders one section variant.
type Strategy interface {
	Render(ctx context.Context, content Content) (template.HTML, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, content Content) (template.HTML, error)

func (f StrategyFunc) Render(ctx context.Context, content Content) (template.HTML, error) {
	return f(ctx, content)
}

// Renderer maps sections to the strategy registered for their type.
type Renderer struct {
	strategies map[Type]Strategy
	log        zerolog.Logger
}

// NewRenderer returns a renderer with no strategies registered.
func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{strategies: make(map[Type]Strategy), log: log}
}

// Register binds s to t, replacing any previous strategy.
func (r *Renderer) Register(t Type, s Strategy) {
	r.strategies[t] = s
}

// Registered reports whether a strategy exists for t.
func (r *Renderer) Registered(t Type) bool {
	_, ok := r.strategies[t]
	return ok
}

// Render produces units in ascending Order, ties kept in input order.
// Invisible sections, types without a strategy and empty output produce
// nothing; a strategy error elides only that section.
func (r *Renderer) Render(ctx context.Context, items []Item) []Unit {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Compare(a.Order, b.Order)
	})

	units := make([]Unit, 0, len(sorted))
	for _, item := range sorted {
		if !item.Visible {
			continue
		}
		strategy, ok := r.strategies[item.Type]
		if !ok {
			continue
		}
		content, ok := Decode(item.Type, item.Content)
		if !ok {
			// 自定义类型没有解码器时按原始 JSON 交给策略
			content = rawContent{typ: item.Type, raw: item.Content}
		}

		out, err := strategy.Render(ctx, content)
		if err != nil {
			r.log.Warn().Err(err).
				Uint("section_id", item.ID).
				Str("type", string(item.Type)).
				Msg("section render failed")
			continue
		}
		if out == "" {
			continue
		}
		units = append(units, Unit{SectionID: item.ID, Type: item.Type, HTML: out})
	}
	return units
}

// rawContent carries payloads of types registered outside this package.
type rawContent struct {
	typ Type
	raw string
}

func (c rawContent) SectionType() Type { return c.typ }

// Raw returns the undecoded JSON payload.
func (c rawContent) Raw() string { return c.raw }
