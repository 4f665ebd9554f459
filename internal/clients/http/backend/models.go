package backend

import "github.com/shopspring/decimal"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Address is the customer address shape shared by registration and orders.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	CPF      string  `json:"cpf"`
	Address  Address `json:"address"`
}

// Order mirrors an element of GET /orders.
type Order struct {
	ID            int64           `json:"id"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerCPF   string          `json:"customerCpf"`
	CustomerPhone string          `json:"customerPhone"`
	Street        string          `json:"street"`
	Number        string          `json:"number"`
	Neighborhood  string          `json:"neighborhood"`
	City          string          `json:"city"`
	Items         []OrderItem     `json:"items"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StatusUpdate is the body of PUT /orders/{id}/status.
type StatusUpdate struct {
	Status string `json:"status"`
}

// DeliveryPerson mirrors an element of GET /users/delivery-persons.
type DeliveryPerson struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product mirrors an element of GET /products.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Stock        int             `json:"stock"`
}

// Category mirrors an element of GET /categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRequest is the body of POST /categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// ProductForm is the multipart payload of product create and update. Values are
// sent exactly as entered; the backend owns validation.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	Stock       string
	Image       *Upload
}

// Upload is an optional image part.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
