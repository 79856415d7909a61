package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/comexweb/internal/cart"
	"github.com/comexweb/internal/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	orderStatuses = []string{db.StatusNew, db.OrderStatusInProgress, db.OrderStatusDone, db.OrderStatusCancelled}
	// totalTolerance absorbs client side rounding of the order total.
	totalTolerance = decimal.New(1, -2)
)

// OrderService records retail and wholesale orders.
type OrderService struct {
	db       *gorm.DB
	products *ProductService
}

// NewOrderService returns an OrderService.
func NewOrderService(gdb *gorm.DB) *OrderService {
	return &OrderService{db: gdb, products: NewProductService(gdb)}
}

// OrderItemInput is one submitted order line.
type OrderItemInput struct {
	ProductID uint            `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// OrderInput is a submitted order.
type OrderInput struct {
	CustomerName string           `json:"customerName" validate:"required"`
	Email        string           `json:"email" validate:"required,email"`
	WhatsApp     string           `json:"whatsapp"`
	Type         string           `json:"type" validate:"required,oneof=RETAIL WHOLESALE"`
	Items        []OrderItemInput `json:"items" validate:"min=1,dive"`
	Total        decimal.Decimal  `json:"total"`
	Address      string           `json:"address"`
	Notes        string           `json:"notes"`
}

// CheckoutInput carries the customer details of a cart checkout.
type CheckoutInput struct {
	CustomerName string `json:"customerName" form:"customerName"`
	Email        string `json:"email" form:"email"`
	WhatsApp     string `json:"whatsapp" form:"whatsapp"`
	Type         string `json:"type" form:"type"`
	Address      string `json:"address" form:"address"`
	Notes        string `json:"notes" form:"notes"`
}

// Create validates and stores an order with status NEW. The total is
// recomputed from the items and must agree with the submitted one.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*db.Order, error) {
	trimAll(&in.CustomerName, &in.Email, &in.WhatsApp, &in.Address, &in.Notes)
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	order := db.Order{
		CustomerName: in.CustomerName,
		Email:        strings.ToLower(in.Email),
		WhatsApp:     in.WhatsApp,
		Type:         in.Type,
		Address:      in.Address,
		Notes:        in.Notes,
		Status:       db.StatusNew,
		Items:        make([]db.OrderItem, 0, len(in.Items)),
	}

	total := decimal.Zero
	for i, item := range in.Items {
		if !item.Price.IsPositive() {
			return nil, invalid(fmt.Sprintf("items[%d].price", i), "price debe ser mayor a 0")
		}
		price := item.Price.Round(2)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, db.OrderItem{
			ProductID: item.ProductID,
			Name:      strings.TrimSpace(item.Name),
			Quantity:  item.Quantity,
			Price:     price,
		})
	}
	if total.Sub(in.Total).Abs().GreaterThan(totalTolerance) {
		return nil, invalid("total", fmt.Sprintf("el total no coincide con los productos (esperado %s)", total.StringFixed(2)))
	}
	order.Total = total

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// Checkout turns a cart into an order, pricing each line from the current
// catalog. Wholesale orders use the wholesale price when a product has one.
func (s *OrderService) Checkout(ctx context.Context, c cart.Cart, in CheckoutInput) (*db.Order, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	lines := c.Items()
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	products, err := s.products.ActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	orderType := strings.ToUpper(strings.TrimSpace(in.Type))
	if orderType == "" {
		orderType = db.OrderTypeRetail
	}

	order := OrderInput{
		CustomerName: in.CustomerName,
		Email:        in.Email,
		WhatsApp:     in.WhatsApp,
		Type:         orderType,
		Address:      in.Address,
		Notes:        in.Notes,
	}
	for _, line := range lines {
		product, ok := products[line.ID]
		if !ok {
			return nil, invalid("items", fmt.Sprintf("el producto %q ya no está disponible", line.Name))
		}
		price := product.PriceRetail
		if orderType == db.OrderTypeWholesale && product.PriceWholesale.Valid {
			price = product.PriceWholesale.Decimal
		}
		order.Items = append(order.Items, OrderItemInput{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     price,
		})
		order.Total = order.Total.Add(price.Round(2).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return s.Create(ctx, order)
}

// List returns orders, newest first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, status string) ([]db.Order, error) {
	query := s.db.WithContext(ctx).Preload("Items").Order("created_at desc").Order("id desc")
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []db.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its workflow.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*db.Order, error) {
	var order db.Order
	if err := updateStatus(s.db.WithContext(ctx), &order, id, status, orderStatuses, ErrOrderNotFound); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

// updateStatus sets the status column of the row id of model, checking it
// against allowed.
func updateStatus(gdb *gorm.DB, model any, id uint, status string, allowed []string, missing error) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !slices.Contains(allowed, status) {
		return invalid("status", fmt.Sprintf("status debe ser uno de: %s", strings.Join(allowed, ", ")))
	}
	result := gdb.Model(model).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return missing
	}
	return nil
}
