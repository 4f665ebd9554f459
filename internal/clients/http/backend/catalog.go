package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ListProducts fetches the catalog.
func (s *SessionClient) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := s.do(ctx, request{method: http.MethodGet, path: "/products"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct submits a new product as multipart form data.
func (s *SessionClient) CreateProduct(ctx context.Context, form ProductForm) error {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return err
	}
	return s.do(ctx, request{method: http.MethodPost, path: "/products", body: body, contentType: contentType}, nil)
}

// UpdateProduct re-submits the full field set of a product.
func (s *SessionClient) UpdateProduct(ctx context.Context, id int64, form ProductForm) error {
	path, err := resourcePath("/products", "id", id, "")
	if err != nil {
		return err
	}
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return err
	}
	return s.do(ctx, request{method: http.MethodPut, path: path, body: body, contentType: contentType}, nil)
}

// DeleteProduct removes a product.
func (s *SessionClient) DeleteProduct(ctx context.Context, id int64) error {
	path, err := resourcePath("/products", "id", id, "")
	if err != nil {
		return err
	}
	return s.do(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// ListCategories fetches the product categories.
func (s *SessionClient) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.do(ctx, request{method: http.MethodGet, path: "/categories"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (s *SessionClient) CreateCategory(ctx context.Context, name string) error {
	req, err := jsonRequest(http.MethodPost, "/categories", CategoryRequest{Name: name})
	if err != nil {
		return err
	}
	return s.do(ctx, req, nil)
}

// DeleteCategory removes a category.
func (s *SessionClient) DeleteCategory(ctx context.Context, id int64) error {
	path, err := resourcePath("/categories", "id", id, "")
	if err != nil {
		return err
	}
	return s.do(ctx, request{method: http.MethodDelete, path: path}, nil)
}

func encodeProductForm(form ProductForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := []struct{ name, value string }{
		{"name", form.Name},
		{"description", form.Description},
		{"price", form.Price},
		{"categoryId", form.CategoryID},
		{"stock", form.Stock},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write product field %s: %w", f.name, err)
		}
	}
	if form.Image != nil && len(form.Image.Data) > 0 {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(form.Image.Filename)))
		contentType := form.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(form.Image.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close product form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
