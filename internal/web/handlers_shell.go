package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/platform/audit"
)

// GET /home
func (con *Console) home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/home/orders")
}

// shell assembles the sidebar frame around a page. The store status is fetched
// on every render; a failed fetch shows the last confirmed state.
func (con *Console) shell(c *gin.Context, title, active string, content any) shellPage {
	session := sessionFrom(c)
	store := con.store(session)
	snapshot, err := store.Refresh(c.Request.Context())
	con.logDegraded(c.Request.Context(), "store status", err)
	return shellPage{
		Title:       title,
		Active:      active,
		Email:       session.Email,
		Store:       newStoreWidget(snapshot),
		PollSeconds: con.pollSeconds,
		Alerts:      con.takeFlashes(c),
		Content:     content,
	}
}

// leaveOrders drops the orders board when another page is shown.
func (con *Console) leaveOrders(session *authdomain.Session) {
	con.orders(session).Discard()
}

func (con *Console) record(c *gin.Context, action, resource, resourceID string, detail ...string) {
	session := sessionFrom(c)
	actor := ""
	if session != nil {
		actor = session.Email
	}
	event := audit.NewEvent(actor, action, resource, resourceID)
	for i := 0; i+1 < len(detail); i += 2 {
		event = event.With(detail[i], detail[i+1])
	}
	con.audit.Publish(c.Request.Context(), event)
}
