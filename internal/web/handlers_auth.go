package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
)

const (
	alertInvalidLogin     = "Email ou senha inválidos"
	alertRegistered       = "Usuário criado com sucesso!"
	alertRegistrationFail = "Erro ao cadastrar usuário"
)

// payloader is satisfied by backend errors that carry the raw response body.
type payloader interface {
	Payload() string
}

func loginView(alerts []string, email string) authPage {
	return authPage{
		Title:    "Plataforma Delivery",
		Subtitle: "Faça login para continuar",
		Alerts:   alerts,
		Email:    email,
	}
}

func registerView(alerts []string, form registerForm) authPage {
	form.Password = ""
	return authPage{
		Title:    "Criar Conta",
		Subtitle: "Preencha os dados para se cadastrar",
		Alerts:   alerts,
		Form:     form,
	}
}

// GET /
func (con *Console) loginPage(c *gin.Context) {
	if id, err := c.Cookie(con.cookieName); err == nil && id != "" {
		if _, err := con.auth.Session(c.Request.Context(), id); err == nil {
			c.Redirect(http.StatusSeeOther, "/home")
			return
		}
	}
	var alerts []string
	if c.Query("registered") != "" {
		alerts = append(alerts, alertRegistered)
	}
	c.HTML(http.StatusOK, pageLogin, loginView(alerts, ""))
}

// POST /
func (con *Console) login(c *gin.Context) {
	email := c.PostForm("email")
	session, err := con.auth.Login(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusUnauthorized, pageLogin, loginView([]string{alertInvalidLogin}, email))
		return
	}
	con.setCookie(c, session)
	c.Redirect(http.StatusSeeOther, "/home")
}

// GET /register
func (con *Console) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, pageRegister, registerView(nil, registerForm{}))
}

// POST /register
func (con *Console) signUp(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, pageRegister, registerView([]string{alertRegistrationFail}, form))
		return
	}
	err := con.auth.Register(c.Request.Context(), authdomain.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		CPF:      form.CPF,
		Address: authdomain.Address{
			Street:       form.Street,
			Number:       form.Number,
			Neighborhood: form.Neighborhood,
			City:         form.City,
		},
	})
	if err != nil {
		alert := alertRegistrationFail
		var p payloader
		if errors.As(err, &p) && strings.TrimSpace(p.Payload()) != "" {
			alert = p.Payload()
		}
		con.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "registration rejected",
			slog.String("email", form.Email), slog.String("error", err.Error()))
		c.HTML(http.StatusUnprocessableEntity, pageRegister, registerView([]string{alert}, form))
		return
	}
	c.Redirect(http.StatusSeeOther, "/?registered=1")
}

// POST /logout
func (con *Console) logout(c *gin.Context) {
	id, _ := c.Cookie(con.cookieName)
	if err := con.auth.Logout(c.Request.Context(), id); err != nil {
		con.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "logout failed", slog.String("error", err.Error()))
	}
	con.clearCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
