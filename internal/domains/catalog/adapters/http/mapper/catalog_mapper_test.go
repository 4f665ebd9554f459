package mapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
)

func TestToProductRows_EditMode(t *testing.T) {
	rows := ToProductRows([]domain.Product{
		{ID: 1, Name: "Pizza", Price: decimal.NewFromInt(10), CategoryID: 2, Stock: 5},
		{ID: 2, Name: "Suco", Price: decimal.RequireFromString("6.5")},
	}, 1, nil)

	require.Len(t, rows, 2)
	require.Equal(t, "R$ 10.00", rows[0].Price)
	require.True(t, rows[0].Editing)
	require.Equal(t, "Pizza", rows[0].Draft.Name)
	require.Equal(t, "2", rows[0].Draft.CategoryID)
	require.Equal(t, "R$ 6.50", rows[1].Price)
	require.False(t, rows[1].Editing)
}

func TestToProductRows_PendingDraftWins(t *testing.T) {
	pending := domain.Draft{Name: "Pizza Grande", Price: "12", CategoryID: "3", Image: &domain.Image{Filename: "p.png"}}
	rows := ToProductRows([]domain.Product{{ID: 1, Name: "Pizza", Price: decimal.NewFromInt(10)}}, 1, &pending)

	require.True(t, rows[0].Editing)
	require.Equal(t, "Pizza Grande", rows[0].Draft.Name)
	require.Equal(t, "12", rows[0].Draft.Price)
	require.Nil(t, rows[0].Draft.Image)
	require.Equal(t, "Pizza", rows[0].Name)
}

func TestToCategoryOptions(t *testing.T) {
	options := ToCategoryOptions([]domain.Category{{ID: 1, Name: "Massas"}, {ID: 2, Name: "Bebidas"}}, "2")
	require.False(t, options[0].Selected)
	require.True(t, options[1].Selected)
	require.Equal(t, "2", options[1].Value)
}
