// Package web serves the store-owner console: server-rendered pages over gin
// whose every data operation is delegated to per-session domain services.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	authports "github.com/Apurer/delivery-console/internal/domains/auth/ports"
	catalogports "github.com/Apurer/delivery-console/internal/domains/catalog/ports"
	ordersports "github.com/Apurer/delivery-console/internal/domains/orders/ports"
	storeports "github.com/Apurer/delivery-console/internal/domains/store/ports"
	"github.com/Apurer/delivery-console/internal/platform/audit"
	apierrors "github.com/Apurer/delivery-console/internal/shared/errors"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "console_session"

// Per-session service constructors. Each binds the session's bearer token.
type (
	StoreFactory   func(session *authdomain.Session) storeports.Service
	OrdersFactory  func(session *authdomain.Session) ordersports.Service
	CatalogFactory func(session *authdomain.Session) catalogports.Service
)

// Config wires the console routes.
type Config struct {
	ServiceName  string
	Auth         authports.Service
	Store        StoreFactory
	Orders       OrdersFactory
	Catalog      CatalogFactory
	Audit        audit.Publisher
	Logger       *slog.Logger
	CookieName   string
	CookieSecure bool
	PollInterval time.Duration
}

// Console holds the page handlers.
type Console struct {
	auth         authports.Service
	store        StoreFactory
	orders       OrdersFactory
	catalog      CatalogFactory
	audit        audit.Publisher
	logger       *slog.Logger
	cookieName   string
	cookieSecure bool
	pollSeconds  int
}

// NewRouter builds the gin engine serving the console.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.Auth == nil || cfg.Store == nil || cfg.Orders == nil || cfg.Catalog == nil {
		return nil, errors.New("web: auth, store, orders and catalog services are required")
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	console := &Console{
		auth:         cfg.Auth,
		store:        cfg.Store,
		orders:       cfg.Orders,
		catalog:      cfg.Catalog,
		audit:        cfg.Audit,
		logger:       cfg.Logger,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		pollSeconds:  int(cfg.PollInterval / time.Second),
	}
	if console.logger == nil {
		console.logger = slog.Default()
	}
	if console.audit == nil {
		console.audit = audit.NewLogPublisher(console.logger)
	}
	if console.cookieName == "" {
		console.cookieName = DefaultCookieName
	}

	router := gin.New()
	router.HTMLRender = renderer
	router.MaxMultipartMemory = 16 << 20
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(gin.CustomRecovery(console.recovered), requestLogger(console.logger))
	console.routes(router)
	return router, nil
}

func (con *Console) routes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", con.loginPage)
	router.POST("/", con.login)
	router.GET("/register", con.registerPage)
	router.POST("/register", con.signUp)
	router.POST("/logout", con.logout)

	router.GET("/home/store/status", con.requireSession(true), con.storeStatus)

	home := router.Group("/home", con.requireSession(false))
	home.GET("", con.home)
	home.POST("/store/open", con.openStore)
	home.POST("/store/close", con.closeStore)

	home.GET("/orders", con.ordersPage)
	home.POST("/orders/refresh", con.refreshOrders)
	home.POST("/orders/:id/accept", con.acceptOrder)
	home.POST("/orders/:id/cancel", con.cancelOrder)
	home.POST("/orders/:id/deliver", con.deliverOrder)
	home.POST("/orders/:id/assign", con.assignOrder)

	home.GET("/products", con.productsPage)
	home.POST("/products", con.createProduct)
	home.POST("/products/:id", con.updateProduct)
	home.GET("/products/:id/delete", con.confirmDeleteProduct)
	home.POST("/products/:id/delete", con.deleteProduct)
	home.POST("/categories", con.createCategory)
	home.GET("/categories/:id/delete", con.confirmDeleteCategory)
	home.POST("/categories/:id/delete", con.deleteCategory)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/home/store") || wantsJSON(c) {
			apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("no such console endpoint"))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	})
}
