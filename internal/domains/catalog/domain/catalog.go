package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Prompts shown before destructive catalog changes.
const (
	PromptDeleteProduct  = "Excluir produto?"
	PromptDeleteCategory = "Excluir categoria?"
)

// Product is a catalog entry as reported by the backend.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	CategoryID   int64
	CategoryName string
	Stock        int
}

// Category groups products.
type Category struct {
	ID   int64
	Name string
}

// Draft holds product fields exactly as typed by the operator. The backend
// validates them; the console forwards them untouched.
type Draft struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	Stock       string
	Image       *Image
}

// Image is an uploaded product picture.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DraftFrom seeds an edit buffer with a product's current values.
func DraftFrom(p Product) Draft {
	draft := Draft{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Stock:       strconv.Itoa(p.Stock),
	}
	if p.CategoryID != 0 {
		draft.CategoryID = strconv.FormatInt(p.CategoryID, 10)
	}
	return draft
}

// Confirmation asks the operator to approve a destructive action.
type Confirmation func(prompt string) bool

// Confirmed is a Confirmation for an already approved request.
func Confirmed(string) bool { return true }

// CategoryName trims a new category name and reports whether anything is left.
func CategoryName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	return name, name != ""
}

// Catalog is one fetched view of products and categories.
type Catalog struct {
	Products   []Product
	Categories []Category
}

// Product looks a product up by id.
func (c Catalog) Product(id int64) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Category looks a category up by id.
func (c Catalog) Category(id int64) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
