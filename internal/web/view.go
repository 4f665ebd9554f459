package web

import (
	catalogmapper "github.com/Apurer/delivery-console/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	ordersmapper "github.com/Apurer/delivery-console/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/delivery-console/internal/domains/orders/domain"
	storedomain "github.com/Apurer/delivery-console/internal/domains/store/domain"
)

type authPage struct {
	Title    string
	Subtitle string
	Alerts   []string
	Email    string
	Form     registerForm
}

type registerForm struct {
	Name         string `form:"name"`
	Email        string `form:"email"`
	Password     string `form:"password"`
	CPF          string `form:"cpf"`
	Street       string `form:"street"`
	Number       string `form:"number"`
	Neighborhood string `form:"neighborhood"`
	City         string `form:"city"`
}

type shellPage struct {
	Title       string
	Active      string
	Email       string
	Store       storeWidget
	PollSeconds int
	Alerts      []string
	Content     any
}

type storeWidget struct {
	Label    string
	Known    bool
	Open     bool
	InFlight bool
	CanOpen  bool
	CanClose bool
}

func newStoreWidget(s storedomain.Snapshot) storeWidget {
	w := storeWidget{
		Known:    s.Known(),
		Open:     s.Status == storedomain.StatusOpen,
		InFlight: s.InFlight,
		CanOpen:  s.Allows(storedomain.CommandOpen),
		CanClose: s.Allows(storedomain.CommandClose),
	}
	switch s.Status {
	case storedomain.StatusOpen:
		w.Label = "Loja aberta"
	case storedomain.StatusClosed:
		w.Label = "Loja fechada"
	default:
		w.Label = "Status desconhecido"
	}
	return w
}

// storeStatus is the JSON body polled by the sidebar.
type storeStatus struct {
	Open     bool   `json:"open"`
	Known    bool   `json:"known"`
	InFlight bool   `json:"inFlight"`
	Status   string `json:"status"`
}

func newStoreStatus(s storedomain.Snapshot) storeStatus {
	return storeStatus{
		Open:     s.Status == storedomain.StatusOpen,
		Known:    s.Known(),
		InFlight: s.InFlight,
		Status:   s.Status.String(),
	}
}

type ordersView struct {
	Filter          ordersdomain.Filter
	Filters         []ordersmapper.FilterOption
	Orders          []ordersmapper.OrderCard
	DeliveryPersons []ordersmapper.DeliveryOption
	FetchedAt       string
}

type productsView struct {
	Products   []catalogmapper.ProductRow
	Categories []catalogmapper.CategoryOption
	New        catalogdomain.Draft
}

type confirmView struct {
	Prompt  string
	Subject string
	Action  string
	Back    string
}
