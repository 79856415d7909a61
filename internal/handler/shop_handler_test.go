package handler

import (
	"net/url"
	"strings"
	"testing"

	"github.com/comexweb/internal/db"
	"github.com/shopspring/decimal"
)

func TestOrderWhatsAppURL(t *testing.T) {
	order := &db.Order{
		ID:           42,
		CustomerName: "Ana",
		Email:        "ana@mail.com",
		Total:        decimal.RequireFromString("3001"),
		Items: []db.OrderItem{
			{Name: "Mate & bombilla", Quantity: 2, Price: decimal.RequireFromString("1500.50")},
		},
	}

	link := orderWhatsAppURL("+54 9 11 5555-0000", order)
	prefix := "https://wa.me/5491155550000?text="
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("expected %q prefix, got %q", prefix, link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must be percent encoded, got %q", link)
	}

	text, err := url.QueryUnescape(strings.TrimPrefix(link, prefix))
	if err != nil {
		t.Fatalf("invalid escape: %v", err)
	}
	for _, want := range []string{"pedido #42", "- Mate & bombilla x2: $3001.00", "Total: $3001.00", "Nombre: Ana"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected message to contain %q, got %q", want, text)
		}
	}
	if strings.Contains(text, "Dirección") {
		t.Fatalf("empty address must be omitted, got %q", text)
	}

	if got := orderWhatsAppURL("  ", order); got != "" {
		t.Fatalf("expected no link without a number, got %q", got)
	}
}
