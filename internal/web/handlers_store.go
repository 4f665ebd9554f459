package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	storedomain "github.com/Apurer/delivery-console/internal/domains/store/domain"
	storeports "github.com/Apurer/delivery-console/internal/domains/store/ports"
)

const (
	alertOpenFailed  = "Erro ao abrir a loja"
	alertCloseFailed = "Erro ao fechar a loja"
)

// GET /home/store/status
func (con *Console) storeStatus(c *gin.Context) {
	snapshot, err := con.store(sessionFrom(c)).Refresh(c.Request.Context())
	con.logDegraded(c.Request.Context(), "store status", err)
	c.JSON(http.StatusOK, newStoreStatus(snapshot))
}

// POST /home/store/open
func (con *Console) openStore(c *gin.Context) {
	con.toggleStore(c, storedomain.CommandOpen, alertOpenFailed, storeports.Service.Open)
}

// POST /home/store/close
func (con *Console) closeStore(c *gin.Context) {
	con.toggleStore(c, storedomain.CommandClose, alertCloseFailed, storeports.Service.Close)
}

func (con *Console) toggleStore(c *gin.Context, cmd storedomain.Command, alert string, run func(storeports.Service, context.Context) error) {
	store := con.store(sessionFrom(c))
	sent := store.Snapshot().Allows(cmd)
	switch err := run(store, c.Request.Context()); {
	case errors.Is(err, storedomain.ErrToggleInFlight):
		// the sidebar buttons are disabled while in flight; nothing to report
	case err != nil:
		con.flash(c, alert)
	case sent:
		con.record(c, "store."+string(cmd), "store", "")
	}
	c.Redirect(http.StatusSeeOther, backTo(c, "/home/orders"))
}

// backTo returns to the referring console page when it is one of ours.
func backTo(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !strings.HasPrefix(u.Path, "/home") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
