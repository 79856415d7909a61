package cart

import "slices"

// Action is a cart transition.
type Action interface {
	apply(Cart) Cart
}

// Apply returns the cart that results from a. A nil action leaves c unchanged.
func Apply(c Cart, a Action) Cart {
	if a == nil {
		return c
	}
	return a.apply(c)
}

type addAction struct{ item Item }

type setQuantityAction struct {
	id       uint
	quantity int
}

type removeAction struct{ id uint }

type clearAction struct{}

type loadAction struct{ items []Item }

// Add increments the product's quantity, inserting it with quantity 1 when
// absent. Any quantity on item is ignored.
func Add(item Item) Action { return addAction{item: item} }

// SetQuantity sets the quantity of id; q <= 0 removes the line.
func SetQuantity(id uint, q int) Action { return setQuantityAction{id: id, quantity: q} }

// Remove drops id from the cart.
func Remove(id uint) Action { return removeAction{id: id} }

// Clear empties the cart.
func Clear() Action { return clearAction{} }

// Load replaces the cart with previously persisted items.
func Load(items []Item) Action { return loadAction{items: slices.Clone(items)} }

func (a addAction) apply(c Cart) Cart {
	items := slices.Clone(c.items)
	if i := c.index(a.item.ID); i >= 0 {
		items[i].Quantity++
		return Cart{items: items}
	}
	added := a.item
	added.Quantity = 1
	return Cart{items: append(items, added)}
}

func (a setQuantityAction) apply(c Cart) Cart {
	if a.quantity <= 0 {
		return removeAction{id: a.id}.apply(c)
	}
	i := c.index(a.id)
	if i < 0 {
		return c
	}
	items := slices.Clone(c.items)
	items[i].Quantity = a.quantity
	return Cart{items: items}
}

func (a removeAction) apply(c Cart) Cart {
	items := slices.DeleteFunc(slices.Clone(c.items), func(it Item) bool { return it.ID == a.id })
	return Cart{items: items}
}

func (clearAction) apply(Cart) Cart { return Cart{} }

func (a loadAction) apply(Cart) Cart { return New(a.items) }
