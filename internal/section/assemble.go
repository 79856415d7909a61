package section

// Document is a page body ready for layout. Hero, when set, is rendered
// before Body, wrapped in Scene if Scene is non-empty.
type Document struct {
	Hero  *Unit
	Scene string
	Body  []Unit
}

// scenes maps page slugs to the decorative wrapper drawn around their hero.
var scenes = map[string]string{
	"home":        "hero",
	"servicios":   "services",
	"importadora": "importadora",
}

// SceneFor returns the decorative scene for a page slug, or "".
func SceneFor(slug string) string {
	return scenes[slug]
}

// Assemble promotes the first HERO unit to the front of the page. Additional
// HERO units are dropped; every other unit keeps its relative order.
func Assemble(slug string, units []Unit) Document {
	doc := Document{Body: make([]Unit, 0, len(units))}
	for i := range units {
		if units[i].Type == Hero {
			if doc.Hero == nil {
				hero := units[i]
				doc.Hero = &hero
			}
			continue
		}
		doc.Body = append(doc.Body, units[i])
	}
	if doc.Hero != nil {
		doc.Scene = SceneFor(slug)
	}
	return doc
}

// Units flattens the document back into display order.
func (d Document) Units() []Unit {
	out := make([]Unit, 0, len(d.Body)+1)
	if d.Hero != nil {
		out = append(out, *d.Hero)
	}
	return append(out, d.Body...)
}

// Empty reports whether nothing would be drawn.
func (d Document) Empty() bool {
	return d.Hero == nil && len(d.Body) == 0
}
