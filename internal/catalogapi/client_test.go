package catalogapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rocketshoes/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"https://img.test/1.jpg"},{"id":2,"title":"Tênis VR","price":139.9,"image":"https://img.test/2.jpg"}]`))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"https://img.test/1.jpg"}`))
	})
	mux.HandleFunc("/stock/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"amount":3}`))
	})
	mux.HandleFunc("/stock/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":2,"amount":`))
	})
	mux.HandleFunc("/stock/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListProducts(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/", 0, nil)

	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 || products[1].ID != 2 || products[0].Price != 179.9 {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestClient_GetProductAndStock(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, 0, nil)

	p, err := c.GetProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if p.Title != "Tênis de Caminhada" || p.Image != "https://img.test/1.jpg" {
		t.Fatalf("unexpected product %+v", p)
	}

	s, err := c.GetStock(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStock: %v", err)
	}
	if s.ID != 1 || s.Amount != 3 {
		t.Fatalf("unexpected stock %+v", s)
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, 0, nil)

	_, err := c.GetProduct(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = c.GetStock(context.Background(), 2)
	if err == nil {
		t.Fatalf("expected decode error")
	}

	_, err = c.GetStock(context.Background(), 3)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status error, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("500 must not match not found")
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	c := New(url, 0, nil)
	if _, err := c.GetStock(context.Background(), 1); err == nil {
		t.Fatalf("expected transport error")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}
