package handler

import (
	"net/http"

	"github.com/comexweb/internal/cart"
	"github.com/comexweb/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func cartStore(c *gin.Context) cart.Store {
	return cart.NewSessionStore(sessions.Default(c))
}

// loadCart restores the visitor's cart. Unreadable session data starts a
// fresh cart instead of failing the request.
func loadCart(c *gin.Context, store cart.Store) cart.Cart {
	current, err := store.Load()
	if err != nil {
		_ = c.Error(err)
	}
	return current
}

// saveCart persists next and answers with it.
func saveCart(c *gin.Context, store cart.Store, next cart.Cart) {
	if err := store.Save(next); err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	c.JSON(http.StatusOK, next)
}

// GetCart returns the visitor's cart.
func (a *API) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, loadCart(c, cartStore(c)))
}

// AddCartItem adds an active product to the cart at its current retail
// price. Adding an existing product raises its quantity.
func (a *API) AddCartItem(c *gin.Context) {
	var req cartItemRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	if req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId es requerido", "field": "productId"})
		return
	}

	found, err := a.products.ActiveByIDs(c.Request.Context(), []uint{req.ProductID})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	product, ok := found[req.ProductID]
	if !ok {
		handleServiceError(c, service.ErrProductNotFound)
		return
	}

	store := cartStore(c)
	next := cart.Apply(loadCart(c, store), cart.Add(cart.Item{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.PriceRetail,
		Image: product.FirstImage(),
	}))
	if req.Quantity > 1 {
		line, _ := next.Get(product.ID)
		next = cart.Apply(next, cart.SetQuantity(product.ID, line.Quantity+req.Quantity-1))
	}
	saveCart(c, store, next)
}

// UpdateCartItem sets a line's quantity; zero or less removes it.
func (a *API) UpdateCartItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req cartQuantityRequest
	if !bindJSON(c, &req, invalidPayloadMessage) {
		return
	}
	store := cartStore(c)
	saveCart(c, store, cart.Apply(loadCart(c, store), cart.SetQuantity(id, req.Quantity)))
}

// RemoveCartItem drops a line from the cart.
func (a *API) RemoveCartItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	store := cartStore(c)
	saveCart(c, store, cart.Apply(loadCart(c, store), cart.Remove(id)))
}

// ClearCart empties the cart.
func (a *API) ClearCart(c *gin.Context) {
	store := cartStore(c)
	saveCart(c, store, cart.Apply(loadCart(c, store), cart.Clear()))
}

// CheckoutCart turns the cart into an order and empties it.
func (a *API) CheckoutCart(c *gin.Context) {
	var in service.CheckoutInput
	if !bindJSON(c, &in, invalidPayloadMessage) {
		return
	}

	store := cartStore(c)
	order, err := a.orders.Checkout(c.Request.Context(), loadCart(c, store), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := store.Save(cart.Apply(cart.Cart{}, cart.Clear())); err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}
