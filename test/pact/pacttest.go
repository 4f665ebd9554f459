//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "delivery-api"
	ConsumerName = "delivery-console"

	StateOwnerExists   = "store owner owner@example.com exists"
	StateOrdersBase    = "orders baseline"
	StateOrderCreated  = "order with id 301 is CREATED"
	StateOrderAccepted = "order with id 301 is ACCEPTED"
	StateStoreClosed   = "store is closed"
	StateCatalogBase   = "catalog baseline"
)

const (
	OwnerEmail    = "owner@example.com"
	OwnerPassword = "pact-pass"
	OwnerToken    = "pact-token"

	ExistingOrderID   int64 = 301
	DeliveryPersonID  int64 = 7
	ExistingProductID int64 = 11
	ExistingCategory  int64 = 1
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload mirrors one entry of GET /orders.
func ExampleOrderPayload(status string) map[string]any {
	return map[string]any{
		"id":            ExistingOrderID,
		"totalAmount":   25.5,
		"status":        status,
		"createdAt":     "2024-06-12T10:00:00",
		"customerName":  "Ana Souza",
		"customerEmail": "ana@example.com",
		"customerCpf":   "12345678900",
		"customerPhone": "81999990000",
		"street":        "Rua A",
		"number":        "10",
		"neighborhood":  "Centro",
		"city":          "Recife",
		"items": []map[string]any{{
			"productId":   ExistingProductID,
			"productName": "Pizza",
			"quantity":    2,
			"price":       12.75,
			"subtotal":    25.5,
		}},
	}
}

// ExampleProductPayload mirrors one entry of GET /products.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":           ExistingProductID,
		"name":         "Pizza",
		"description":  "Mussarela",
		"price":        10,
		"imageUrl":     "https://example.pact/products/pizza.png",
		"categoryId":   ExistingCategory,
		"categoryName": "Pizzas",
		"stock":        5,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
