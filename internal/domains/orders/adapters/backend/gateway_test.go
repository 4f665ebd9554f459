package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
)

func TestParseTimestamp(t *testing.T) {
	local := ParseTimestamp("2024-06-12T10:30:00")
	require.Equal(t, 10, local.Hour())
	require.Equal(t, 30, local.Minute())

	fractional := ParseTimestamp("2024-06-12T10:30:00.123456")
	require.Equal(t, 123456000, fractional.Nanosecond())

	zoned := ParseTimestamp("2024-06-12T10:30:00Z")
	require.Equal(t, time.UTC, zoned.Location())

	require.True(t, ParseTimestamp("yesterday").IsZero())
}

func TestListOrders_MapsToDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"totalAmount":"42.90","status":"out_for_delivery","createdAt":"2024-06-12T10:00:00",
			"customerName":"Ana","customerCpf":"123","street":"Rua A","number":"10","neighborhood":"Centro","city":"Recife",
			"items":[{"productId":1,"productName":"Pizza","quantity":1,"price":"42.90","subtotal":"42.90"}]}]`))
	}))
	t.Cleanup(server.Close)
	client, err := backendclient.NewClient(server.URL, backendclient.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	orders, err := NewGateway(client.ForSession("tok")).ListOrders(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	got := orders[0]
	require.Equal(t, domain.StatusOutForDelivery, got.Status)
	require.Equal(t, "Ana", got.Customer.Name)
	require.Equal(t, "Recife", got.Address.City)
	require.Equal(t, "42.90", got.TotalAmount.StringFixed(2))
	require.Equal(t, "Pizza", got.Items[0].ProductName)
}
