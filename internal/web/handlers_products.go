package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/delivery-console/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/delivery-console/internal/domains/catalog/domain"
)

const (
	alertCreateProductFailed  = "Erro ao criar produto"
	alertUpdateProductFailed  = "Erro ao atualizar produto"
	alertDeleteProductFailed  = "Erro ao excluir produto"
	alertCreateCategoryFailed = "Erro ao criar categoria"
	alertDeleteCategoryFailed = "Erro ao excluir categoria"
)

const productsURL = "/home/products"

// GET /home/products?edit=
func (con *Console) productsPage(c *gin.Context) {
	con.renderProducts(c, http.StatusOK, queryID(c, "edit"), nil, catalogdomain.Draft{})
}

// renderProducts shows the catalog. A rejected save passes the submitted values
// back in: pending for the row being edited, created for the new product form.
func (con *Console) renderProducts(c *gin.Context, status int, editingID int64, pending *catalogdomain.Draft, created catalogdomain.Draft) {
	session := sessionFrom(c)
	con.leaveOrders(session)
	catalog, err := con.catalog(session).Catalog(c.Request.Context())
	con.logDegraded(c.Request.Context(), "catalog", err)

	view := productsView{
		Products:   catalogmapper.ToProductRows(catalog.Products, editingID, pending),
		Categories: catalogmapper.ToCategoryOptions(catalog.Categories, created.CategoryID),
		New:        created,
	}
	c.HTML(status, pageProducts, con.shell(c, "Produtos", "products", view))
}

// POST /home/products
func (con *Console) createProduct(c *gin.Context) {
	draft, err := readDraft(c)
	if err == nil {
		err = con.catalog(sessionFrom(c)).CreateProduct(c.Request.Context(), draft)
	}
	if err != nil {
		con.flash(c, alertCreateProductFailed)
		draft.Image = nil
		con.renderProducts(c, http.StatusUnprocessableEntity, 0, nil, draft)
		return
	}
	con.record(c, "product.create", "product", "", "name", draft.Name)
	c.Redirect(http.StatusSeeOther, productsURL)
}

// POST /home/products/:id
func (con *Console) updateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		con.flash(c, alertUpdateProductFailed)
		c.Redirect(http.StatusSeeOther, productsURL)
		return
	}
	draft, err := readDraft(c)
	if err == nil {
		err = con.catalog(sessionFrom(c)).UpdateProduct(c.Request.Context(), id, draft)
	}
	if err != nil {
		con.flash(c, alertUpdateProductFailed)
		con.renderProducts(c, http.StatusUnprocessableEntity, id, &draft, catalogdomain.Draft{})
		return
	}
	con.record(c, "product.update", "product", strconv.FormatInt(id, 10), "name", draft.Name)
	c.Redirect(http.StatusSeeOther, productsURL)
}

// GET /home/products/:id/delete
func (con *Console) confirmDeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Redirect(http.StatusSeeOther, productsURL)
		return
	}
	subject := ""
	catalog, err := con.catalog(sessionFrom(c)).Catalog(c.Request.Context())
	con.logDegraded(c.Request.Context(), "catalog", err)
	if product, ok := catalog.Product(id); ok {
		subject = product.Name
	}
	con.confirm(c, catalogdomain.PromptDeleteProduct, subject, fmt.Sprintf("/home/products/%d/delete", id))
}

// POST /home/products/:id/delete
func (con *Console) deleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	deleted := false
	if err == nil {
		deleted, err = con.catalog(sessionFrom(c)).DeleteProduct(c.Request.Context(), id, confirmedBy(c))
	}
	switch {
	case err != nil:
		con.flash(c, alertDeleteProductFailed)
	case deleted:
		con.record(c, "product.delete", "product", strconv.FormatInt(id, 10))
	}
	c.Redirect(http.StatusSeeOther, productsURL)
}

// POST /home/categories
func (con *Console) createCategory(c *gin.Context) {
	name := c.PostForm("name")
	created, err := con.catalog(sessionFrom(c)).CreateCategory(c.Request.Context(), name)
	switch {
	case err != nil:
		con.flash(c, alertCreateCategoryFailed)
	case created:
		con.record(c, "category.create", "category", "", "name", name)
	}
	c.Redirect(http.StatusSeeOther, productsURL)
}

// GET /home/categories/:id/delete
func (con *Console) confirmDeleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Redirect(http.StatusSeeOther, productsURL)
		return
	}
	subject := ""
	catalog, err := con.catalog(sessionFrom(c)).Catalog(c.Request.Context())
	con.logDegraded(c.Request.Context(), "catalog", err)
	if category, ok := catalog.Category(id); ok {
		subject = category.Name
	}
	con.confirm(c, catalogdomain.PromptDeleteCategory, subject, fmt.Sprintf("/home/categories/%d/delete", id))
}

// POST /home/categories/:id/delete
func (con *Console) deleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	deleted := false
	if err == nil {
		deleted, err = con.catalog(sessionFrom(c)).DeleteCategory(c.Request.Context(), id, confirmedBy(c))
	}
	switch {
	case err != nil:
		con.flash(c, alertDeleteCategoryFailed)
	case deleted:
		con.record(c, "category.delete", "category", strconv.FormatInt(id, 10))
	}
	c.Redirect(http.StatusSeeOther, productsURL)
}

func (con *Console) confirm(c *gin.Context, prompt, subject, action string) {
	view := confirmView{Prompt: prompt, Subject: subject, Action: action, Back: productsURL}
	c.HTML(http.StatusOK, pageConfirm, con.shell(c, "Produtos", "products", view))
}

// confirmedBy answers the deletion prompt from the submitted confirmation button.
func confirmedBy(c *gin.Context) catalogdomain.Confirmation {
	return func(string) bool {
		return c.PostForm("confirm") == "yes"
	}
}

// readDraft collects the product form as typed, plus the optional image part.
func readDraft(c *gin.Context) (catalogdomain.Draft, error) {
	draft := catalogdomain.Draft{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		CategoryID:  c.PostForm("categoryId"),
		Stock:       c.PostForm("stock"),
	}
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return draft, nil
		}
		return draft, fmt.Errorf("read image: %w", err)
	}
	image, err := readImage(header)
	if err != nil {
		return draft, err
	}
	draft.Image = image
	return draft, nil
}

func readImage(header *multipart.FileHeader) (*catalogdomain.Image, error) {
	if header.Size == 0 {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &catalogdomain.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
