package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/Apurer/delivery-console/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/delivery-console/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/delivery-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/delivery-console/internal/domains/orders/ports"
)

const (
	alertStatusFailed     = "Erro ao atualizar status"
	alertAssignFailed     = "Erro ao atribuir entregador"
	alertNoDeliveryPerson = "Selecione um entregador"
)

// GET /home/orders?status=
// Opening the page without a status fetches the orders again. A filter
// submission always carries status and reuses the board held for the session.
func (con *Console) ordersPage(c *gin.Context) {
	raw, filtering := c.GetQuery("status")
	filter := ordersdomain.ParseFilter(raw)
	orders := con.orders(sessionFrom(c))
	var (
		board *ordersdomain.Board
		err   error
	)
	if filtering {
		board, err = orders.Board(c.Request.Context())
	} else {
		board, err = orders.Load(c.Request.Context())
	}
	con.logDegraded(c.Request.Context(), "orders", err)

	view := ordersView{
		Filter:          filter,
		Filters:         ordersmapper.FilterOptions(filter),
		Orders:          ordersmapper.ToOrderCards(board.View(filter)),
		DeliveryPersons: ordersmapper.ToDeliveryOptions(board.DeliveryPersons()),
		FetchedAt:       ordersmapper.FormatTime(board.FetchedAt()),
	}
	c.HTML(http.StatusOK, pageOrders, con.shell(c, "Pedidos", "orders", view))
}

// POST /home/orders/refresh
func (con *Console) refreshOrders(c *gin.Context) {
	_, err := con.orders(sessionFrom(c)).Load(c.Request.Context())
	con.logDegraded(c.Request.Context(), "orders", err)
	c.Redirect(http.StatusSeeOther, ordersURL(c))
}

// POST /home/orders/:id/accept
func (con *Console) acceptOrder(c *gin.Context) {
	con.orderAction(c, ordersdomain.ActionAccept, func(ctx context.Context, svc ordersports.Service, id int64) error {
		return svc.Accept(ctx, id)
	})
}

// POST /home/orders/:id/cancel
func (con *Console) cancelOrder(c *gin.Context) {
	con.orderAction(c, ordersdomain.ActionCancel, func(ctx context.Context, svc ordersports.Service, id int64) error {
		return svc.Cancel(ctx, id)
	})
}

// POST /home/orders/:id/deliver
func (con *Console) deliverOrder(c *gin.Context) {
	con.orderAction(c, ordersdomain.ActionDeliver, func(ctx context.Context, svc ordersports.Service, id int64) error {
		return svc.Deliver(ctx, id)
	})
}

// POST /home/orders/:id/assign
func (con *Console) assignOrder(c *gin.Context) {
	deliveryPersonID := c.PostForm("deliveryPersonId")
	con.orderAction(c, ordersdomain.ActionAssign, func(ctx context.Context, svc ordersports.Service, id int64) error {
		return svc.Assign(ctx, id, deliveryPersonID)
	}, "deliveryPersonId", deliveryPersonID)
}

func (con *Console) orderAction(c *gin.Context, action ordersdomain.Action, run func(context.Context, ordersports.Service, int64) error, detail ...string) {
	failure := alertStatusFailed
	if action == ordersdomain.ActionAssign {
		failure = alertAssignFailed
	}
	id, err := pathID(c, "id")
	if err != nil {
		con.flash(c, failure)
		c.Redirect(http.StatusSeeOther, ordersURL(c))
		return
	}
	switch err := run(c.Request.Context(), con.orders(sessionFrom(c)), id); {
	case errors.Is(err, ordersapp.ErrNoDeliveryPerson):
		con.flash(c, alertNoDeliveryPerson)
	case err != nil:
		con.flash(c, failure)
	default:
		con.record(c, "order."+string(action), "order", strconv.FormatInt(id, 10), detail...)
	}
	c.Redirect(http.StatusSeeOther, ordersURL(c))
}

// ordersURL keeps the operator's filter across a post. The status query is
// always present so the board loaded by the post is shown as is.
func ordersURL(c *gin.Context) string {
	filter := ordersdomain.ParseFilter(c.PostForm("status"))
	return "/home/orders?status=" + url.QueryEscape(string(filter))
}
