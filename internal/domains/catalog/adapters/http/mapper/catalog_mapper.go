package mapper

import (
	"strconv"

	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	"github.com/Apurer/delivery-console/internal/shared/money"
)

// ProductRow is the template representation of one product table row.
type ProductRow struct {
	ID           int64
	Name         string
	Description  string
	Price        string
	ImageURL     string
	CategoryName string
	Stock        int
	Editing      bool
	Draft        domain.Draft
}

// CategoryOption is one entry of a category selector.
type CategoryOption struct {
	ID       int64
	Value    string
	Name     string
	Selected bool
}

// ToProductRows maps products for rendering. The row matching editingID is put
// in edit mode, seeded from pending when a rejected save is shown again and from
// the current values otherwise.
func ToProductRows(products []domain.Product, editingID int64, pending *domain.Draft) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        money.Format(p.Price),
			ImageURL:     p.ImageURL,
			CategoryName: p.CategoryName,
			Stock:        p.Stock,
		}
		if editingID != 0 && p.ID == editingID {
			row.Editing = true
			row.Draft = domain.DraftFrom(p)
			if pending != nil {
				row.Draft = *pending
				row.Draft.Image = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ToCategoryOptions maps categories for a selector, marking the selected value.
func ToCategoryOptions(categories []domain.Category, selected string) []CategoryOption {
	options := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		value := strconv.FormatInt(c.ID, 10)
		options = append(options, CategoryOption{
			ID:       c.ID,
			Value:    value,
			Name:     c.Name,
			Selected: value == selected,
		})
	}
	return options
}
