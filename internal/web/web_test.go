package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	authmemory "github.com/Apurer/delivery-console/internal/domains/auth/adapters/memory"
	authapp "github.com/Apurer/delivery-console/internal/domains/auth/application"
	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	catalogapp "github.com/Apurer/delivery-console/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/delivery-console/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/delivery-console/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/delivery-console/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/delivery-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/delivery-console/internal/domains/orders/ports"
	storememory "github.com/Apurer/delivery-console/internal/domains/store/adapters/memory"
	storeapp "github.com/Apurer/delivery-console/internal/domains/store/application"
	storeports "github.com/Apurer/delivery-console/internal/domains/store/ports"
	"github.com/Apurer/delivery-console/internal/platform/audit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthGateway struct {
	registerErr error
}

func (f *fakeAuthGateway) Login(_ context.Context, email, password string) (string, error) {
	if password != "secret" {
		return "", errors.New("401 Unauthorized")
	}
	return "tok-" + email, nil
}

func (f *fakeAuthGateway) Register(_ context.Context, _ authdomain.Registration) error {
	return f.registerErr
}

type fakeStoreGateway struct {
	mu     sync.Mutex
	open   bool
	opens  int
	closes int
}

func (f *fakeStoreGateway) Status(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open, nil
}

func (f *fakeStoreGateway) Open(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	f.open = true
	return nil
}

func (f *fakeStoreGateway) Close(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	f.open = false
	return nil
}

type fakeOrdersGateway struct {
	mu            sync.Mutex
	orders        []ordersdomain.Order
	lists         int
	statusUpdates []string
	assigns       int
}

func (f *fakeOrdersGateway) ListOrders(_ context.Context) ([]ordersdomain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]ordersdomain.Order(nil), f.orders...), nil
}

func (f *fakeOrdersGateway) UpdateStatus(_ context.Context, id int64, status ordersdomain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, string(status))
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
		}
	}
	return nil
}

func (f *fakeOrdersGateway) AssignDelivery(_ context.Context, _, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigns++
	return nil
}

func (f *fakeOrdersGateway) ListDeliveryPersons(_ context.Context) ([]ordersdomain.DeliveryPerson, error) {
	return []ordersdomain.DeliveryPerson{{ID: 3, Name: "Caio"}}, nil
}

type fakeCatalogGateway struct {
	mu         sync.Mutex
	products   []catalogdomain.Product
	categories []catalogdomain.Category
	drafts     []catalogdomain.Draft
	deletes    int
	creates    []string
	updateErr  error
}

func (f *fakeCatalogGateway) ListProducts(_ context.Context) ([]catalogdomain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogdomain.Product(nil), f.products...), nil
}

func (f *fakeCatalogGateway) CreateProduct(_ context.Context, draft catalogdomain.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	price, err := decimal.NewFromString(draft.Price)
	if err != nil {
		return &backendclient.Error{StatusCode: http.StatusBadRequest, Body: "invalid price"}
	}
	f.drafts = append(f.drafts, draft)
	f.products = append(f.products, catalogdomain.Product{ID: int64(len(f.products) + 1), Name: draft.Name, Price: price})
	return nil
}

func (f *fakeCatalogGateway) UpdateProduct(_ context.Context, _ int64, draft catalogdomain.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeCatalogGateway) DeleteProduct(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func (f *fakeCatalogGateway) ListCategories(_ context.Context) ([]catalogdomain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogdomain.Category(nil), f.categories...), nil
}

func (f *fakeCatalogGateway) CreateCategory(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, name)
	return nil
}

func (f *fakeCatalogGateway) DeleteCategory(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event audit.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type harness struct {
	router  *gin.Engine
	authGW  *fakeAuthGateway
	store   *fakeStoreGateway
	orders  *fakeOrdersGateway
	catalog *fakeCatalogGateway
	audit   *recordingPublisher
	cookie  *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		authGW:  &fakeAuthGateway{},
		store:   &fakeStoreGateway{},
		orders:  &fakeOrdersGateway{},
		catalog: &fakeCatalogGateway{},
		audit:   &recordingPublisher{},
	}
	switches := storememory.NewSwitchRegistry()
	boards := ordersmemory.NewBoardCache()
	authService := authapp.NewService(h.authGW, authmemory.NewSessionStore(),
		authapp.WithTeardown(switches.Forget),
		authapp.WithTeardown(boards.Forget),
	)
	router, err := NewRouter(Config{
		Auth: authService,
		Store: func(s *authdomain.Session) storeports.Service {
			return storeapp.NewService(h.store, switches.For(s.ID))
		},
		Orders: func(s *authdomain.Session) ordersports.Service {
			return ordersapp.NewService(h.orders, boards, s.ID)
		},
		Catalog: func(*authdomain.Session) catalogports.Service {
			return catalogapp.NewService(h.catalog)
		},
		Audit:        h.audit,
		PollInterval: 30 * time.Second,
	})
	require.NoError(t, err)
	h.router = router
	return h
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.serve(httptest.NewRequest(http.MethodGet, path, nil))
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.serve(req)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	rec := h.post("/", url.Values{"email": {"owner@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/home", rec.Header().Get("Location"))
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCookieName {
			h.cookie = c
		}
	}
	require.NotNil(t, h.cookie)
}

func at(hour int) time.Time {
	return time.Date(2024, 6, 12, hour, 0, 0, 0, time.UTC)
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogin_FailureShowsGenericAlert(t *testing.T) {
	h := newHarness(t)
	rec := h.post("/", url.Values{"email": {"owner@example.com"}, "password": {"wrong"}})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), alertInvalidLogin)
	require.Empty(t, rec.Result().Cookies())
}

func TestLogin_SuccessOpensSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.get("/home")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/home/orders", rec.Header().Get("Location"))

	rec = h.get("/")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/home", rec.Header().Get("Location"))
}

func TestHome_RequiresSession(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/home/orders")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	rec = h.get("/home/store/status")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestLogout_TearsSessionDown(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = h.get("/home/orders")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRegister_SurfacesBackendPayload(t *testing.T) {
	h := newHarness(t)
	h.authGW.registerErr = &backendclient.Error{StatusCode: http.StatusBadRequest, Body: "CPF inválido"}

	rec := h.post("/register", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"x"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "CPF inválido")
	require.Contains(t, rec.Body.String(), `value="ana@example.com"`)

	h.authGW.registerErr = errors.New("connection refused")
	rec = h.post("/register", url.Values{"name": {"Ana"}})
	require.Contains(t, rec.Body.String(), alertRegistrationFail)
}

func TestRegister_SuccessReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	rec := h.post("/register", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = h.get(rec.Header().Get("Location"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), alertRegistered)
}

func TestOrdersPage_NewestFirstAndFilterWithoutRefetch(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{
		{ID: 1, Status: ordersdomain.StatusCreated, CreatedAt: at(10)},
		{ID: 2, Status: ordersdomain.StatusAccepted, CreatedAt: at(11)},
	}
	h.login(t)

	body := h.get("/home/orders").Body.String()
	require.Less(t, strings.Index(body, "Pedido #2"), strings.Index(body, "Pedido #1"))

	body = h.get("/home/orders?status=CREATED").Body.String()
	require.Contains(t, body, "Pedido #1")
	require.NotContains(t, body, "Pedido #2")

	body = h.get("/home/orders?status=ALL").Body.String()
	require.Contains(t, body, "Pedido #1")
	require.Contains(t, body, "Pedido #2")
	require.Equal(t, 1, h.orders.lists)

	rec := h.post("/home/orders/refresh", url.Values{"status": {"CREATED"}})
	require.Equal(t, "/home/orders?status=CREATED", rec.Header().Get("Location"))
	require.Equal(t, 2, h.orders.lists)
}

func TestOrdersPage_ReopeningFetchesNewOrders(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{{ID: 1, Status: ordersdomain.StatusCreated, CreatedAt: at(10)}}
	h.login(t)
	require.Contains(t, h.get("/home/orders").Body.String(), "Pedido #1")

	h.orders.mu.Lock()
	h.orders.orders = append(h.orders.orders, ordersdomain.Order{ID: 2, Status: ordersdomain.StatusCreated, CreatedAt: at(11)})
	h.orders.mu.Unlock()

	body := h.get("/home/orders?status=ALL").Body.String()
	require.NotContains(t, body, "Pedido #2")
	require.Equal(t, 1, h.orders.lists)

	rec := h.get("/home")
	require.Equal(t, "/home/orders", rec.Header().Get("Location"))
	body = h.get(rec.Header().Get("Location")).Body.String()
	require.Contains(t, body, "Pedido #2")
	require.Equal(t, 2, h.orders.lists)
}

func TestOrders_ActionRedirectKeepsLoadedBoard(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{{ID: 5, Status: ordersdomain.StatusCreated, CreatedAt: at(10)}}
	h.login(t)
	h.get("/home/orders")

	rec := h.post("/home/orders/5/accept", nil)
	require.Equal(t, "/home/orders?status=ALL", rec.Header().Get("Location"))
	require.Contains(t, h.get(rec.Header().Get("Location")).Body.String(), "badge badge-accepted")
	require.Equal(t, 2, h.orders.lists)
}

func TestOrdersPage_ShowsWhenBoardWasFetched(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	page := h.get("/home/orders").Body.String()
	require.Regexp(t, `Atualizado em \d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`, page)
}

func TestOrders_AssignWithoutSelectionSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{{ID: 5, Status: ordersdomain.StatusAccepted, CreatedAt: at(10)}}
	h.login(t)
	h.get("/home/orders")

	rec := h.post("/home/orders/5/assign", url.Values{"deliveryPersonId": {""}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Zero(t, h.orders.assigns)
	require.Empty(t, h.audit.actions())

	body := h.get("/home/orders").Body.String()
	require.Contains(t, body, alertNoDeliveryPerson)
	require.Contains(t, body, "Caio")
}

func TestOrders_AcceptNotOfferedIsRejected(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{{ID: 5, Status: ordersdomain.StatusDelivered, CreatedAt: at(10)}}
	h.login(t)
	h.get("/home/orders")

	h.post("/home/orders/5/accept", nil)
	require.Empty(t, h.orders.statusUpdates)
	require.Contains(t, h.get("/home/orders").Body.String(), alertStatusFailed)
}

func TestOrders_AcceptRefetchesAndAudits(t *testing.T) {
	h := newHarness(t)
	h.orders.orders = []ordersdomain.Order{{ID: 5, Status: ordersdomain.StatusCreated, CreatedAt: at(10)}}
	h.login(t)
	h.get("/home/orders")

	h.post("/home/orders/5/accept", nil)
	require.Equal(t, []string{"ACCEPTED"}, h.orders.statusUpdates)
	require.Equal(t, 2, h.orders.lists)
	require.Equal(t, []string{"order.accept"}, h.audit.actions())
	require.Contains(t, h.get("/home/orders").Body.String(), "badge badge-accepted")
}

func TestOrders_LeavingPageDropsBoard(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.get("/home/orders")
	h.get("/home/products")
	h.get("/home/orders")
	require.Equal(t, 2, h.orders.lists)
}

func TestStore_OpenWhenOpenSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.store.open = true
	h.login(t)

	body := h.get("/home/orders").Body.String()
	require.Contains(t, body, "Loja aberta")

	h.post("/home/store/open", nil)
	require.Zero(t, h.store.opens)
	require.Empty(t, h.audit.actions())

	h.post("/home/store/close", nil)
	require.Equal(t, 1, h.store.closes)
	require.Equal(t, []string{"store.close"}, h.audit.actions())
}

func TestStore_StatusJSON(t *testing.T) {
	h := newHarness(t)
	h.store.open = true
	h.login(t)

	rec := h.get("/home/store/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"open":true,"known":true,"inFlight":false,"status":"open"}`, rec.Body.String())
}

func TestProducts_CreateWithImageThenList(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "X"))
	require.NoError(t, mw.WriteField("price", "10"))
	require.NoError(t, mw.WriteField("categoryId", "1"))
	part, err := mw.CreateFormFile("image", "x.png")
	require.NoError(t, err)
	_, err = io.WriteString(part, "png-bytes")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/home/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := h.serve(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	require.Len(t, h.catalog.drafts, 1)
	require.NotNil(t, h.catalog.drafts[0].Image)
	require.Equal(t, []byte("png-bytes"), h.catalog.drafts[0].Image.Data)

	page := h.get("/home/products").Body.String()
	require.Contains(t, page, "R$ 10.00")
	require.Equal(t, []string{"product.create"}, h.audit.actions())
}

func TestProducts_CreateFailureKeepsTypedValues(t *testing.T) {
	h := newHarness(t)
	h.catalog.categories = []catalogdomain.Category{{ID: 1, Name: "Bebidas"}, {ID: 2, Name: "Lanches"}}
	h.login(t)

	rec := h.post("/home/products", url.Values{"name": {"X-Burger"}, "price": {"dez"}, "stock": {"7"}, "categoryId": {"2"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := rec.Body.String()
	require.Contains(t, page, alertCreateProductFailed)
	require.Contains(t, page, `value="X-Burger"`)
	require.Contains(t, page, `value="dez"`)
	require.Contains(t, page, `<option value="2" selected>`)
	require.NotContains(t, page, `<option value="1" selected>`)

	require.NotContains(t, h.get("/home/products").Body.String(), alertCreateProductFailed)
}

func TestProducts_UpdateFailureKeepsEditedRow(t *testing.T) {
	h := newHarness(t)
	h.catalog.products = []catalogdomain.Product{{ID: 4, Name: "Pizza", Price: decimal.NewFromInt(30)}}
	h.catalog.updateErr = &backendclient.Error{StatusCode: http.StatusBadRequest, Body: "invalid"}
	h.login(t)

	rec := h.post("/home/products/4", url.Values{"name": {"Pizza grande"}, "price": {"35"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := rec.Body.String()
	require.Contains(t, page, alertUpdateProductFailed)
	require.Contains(t, page, `action="/home/products/4"`)
	require.Contains(t, page, `value="Pizza grande"`)
	require.Contains(t, page, `value="35"`)
	require.Empty(t, h.audit.actions())
}

func TestProducts_EditModeSeedsRow(t *testing.T) {
	h := newHarness(t)
	h.catalog.products = []catalogdomain.Product{{ID: 4, Name: "Pizza", Price: decimal.NewFromInt(30)}}
	h.login(t)

	page := h.get("/home/products?edit=4").Body.String()
	require.Contains(t, page, `action="/home/products/4"`)
	require.Contains(t, page, "Salvar")

	rec := h.post("/home/products/4", url.Values{"name": {"Pizza grande"}, "price": {"35"}})
	require.Equal(t, "/home/products", rec.Header().Get("Location"))
	require.Equal(t, "Pizza grande", h.catalog.drafts[0].Name)
}

func TestProducts_DeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.catalog.products = []catalogdomain.Product{{ID: 4, Name: "Pizza", Price: decimal.NewFromInt(30)}}
	h.login(t)

	page := h.get("/home/products/4/delete").Body.String()
	require.Contains(t, page, catalogdomain.PromptDeleteProduct)
	require.Contains(t, page, "Pizza")

	h.post("/home/products/4/delete", nil)
	require.Zero(t, h.catalog.deletes)
	require.Contains(t, h.get("/home/products").Body.String(), "Pizza")

	h.post("/home/products/4/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, 1, h.catalog.deletes)
	require.Equal(t, []string{"product.delete"}, h.audit.actions())
}

func TestCategories_BlankNameIsNoop(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	h.post("/home/categories", url.Values{"name": {"   "}})
	require.Empty(t, h.catalog.creates)

	h.post("/home/categories", url.Values{"name": {"Bebidas"}})
	require.Equal(t, []string{"Bebidas"}, h.catalog.creates)

	page := h.get("/home/categories/9/delete").Body.String()
	require.Contains(t, page, catalogdomain.PromptDeleteCategory)
}

func TestNoRoute_ProblemUnderStore(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/home/store/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestRecovery_AnswersProblemForJSON(t *testing.T) {
	h := newHarness(t)
	h.router.GET("/home/store/explode", func(*gin.Context) { panic("boom") })

	rec := h.get("/home/store/explode")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
