package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
)

func TestAdminHandler_ExportCSV(t *testing.T) {
	csv := "id,name,price,description,imageUrl,category,stock\n1,\"Wireless Headphones\",12800,\"\",,electronics,15"
	h := NewAdminHandler(&stubCatalog{exportCSV: []byte(csv)})

	c, rec := newContext(http.MethodGet, "/v1/admin/products/export?format=csv", "")
	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv") {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "products.csv") {
		t.Fatalf("missing attachment filename")
	}
	if rec.Body.String() != csv {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAdminHandler_Export_UnknownFormat(t *testing.T) {
	h := NewAdminHandler(&stubCatalog{})

	c, _ := newContext(http.MethodGet, "/v1/admin/products/export?format=xml", "")
	if code := httpCode(h.Export(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAdminHandler_Delete(t *testing.T) {
	catalog := &stubCatalog{products: map[string]domain.Product{"1": headphones}}
	h := NewAdminHandler(catalog)

	c, rec := newContext(http.MethodDelete, "/v1/admin/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/v1/admin/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestAdminHandler_Create_Validation(t *testing.T) {
	h := NewAdminHandler(&stubCatalog{})

	c, _ := newContext(http.MethodPost, "/v1/admin/products", `{"name":"Cable","price":-1,"category":"food"}`)
	err := h.Create(c)
	if code := httpCode(err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	msg := err.(*echo.HTTPError).Message.(string)
	if !strings.Contains(msg, "price must be at least 0") || !strings.Contains(msg, "category must be one of") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAdminHandler_Create_AcceptsImagePaths(t *testing.T) {
	for _, img := range []string{"/images/product-placeholder.jpg", "https://cdn.example/cable.png", ""} {
		catalog := &stubCatalog{}
		h := NewAdminHandler(catalog)

		body := `{"name":"Cable","price":900,"category":"accessories","stock":3,"imageUrl":"` + img + `"}`
		c, rec := newContext(http.MethodPost, "/v1/admin/products", body)
		if err := h.Create(c); err != nil {
			t.Fatalf("imageUrl %q: handler error: %v", img, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("imageUrl %q: expected 201, got %d", img, rec.Code)
		}
		if len(catalog.created) != 1 || catalog.created[0].ImageURL != img {
			t.Fatalf("imageUrl %q: unexpected input %+v", img, catalog.created)
		}
	}
}

func TestAdminHandler_Create_RejectsBadImageURL(t *testing.T) {
	for _, img := range []string{"not a url", "images/x.jpg", "//cdn.example/x.jpg", "ftp://cdn.example/x.jpg"} {
		catalog := &stubCatalog{}
		h := NewAdminHandler(catalog)

		body := `{"name":"Cable","price":900,"category":"accessories","imageUrl":"` + img + `"}`
		c, _ := newContext(http.MethodPost, "/v1/admin/products", body)
		err := h.Create(c)
		if code := httpCode(err); code != http.StatusBadRequest {
			t.Fatalf("imageUrl %q: expected 400, got %d", img, code)
		}
		msg := err.(*echo.HTTPError).Message.(string)
		if !strings.Contains(msg, "imageUrl must be an absolute URL or a path starting with /") {
			t.Fatalf("imageUrl %q: unexpected message %q", img, msg)
		}
		if len(catalog.created) != 0 {
			t.Fatalf("imageUrl %q: catalog should not be called", img)
		}
	}
}
