package listing

import (
	"context"
	"sync"

	"github.com/dustin/go-humanize"

	"rocketshoes/internal/domain"
)

// Product is a catalog entry ready for display, with the amount already in the cart.
type Product struct {
	domain.Product
	PriceFormatted string `json:"priceFormatted"`
	Amount         int    `json:"amount"`
}

type catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type cartStore interface {
	Cart() domain.Cart
	AddProduct(ctx context.Context, productID int) error
}

// Service renders the product listing. The catalog is fetched once, on the
// first successful call; a failed fetch is retried on the next call.
type Service struct {
	catalog catalog
	cart    cartStore

	mu       sync.Mutex
	products []Product
	loaded   bool
}

func New(catalog catalog, cart cartStore) *Service {
	return &Service{catalog: catalog, cart: cart}
}

// Products returns the catalog with each product's current cart amount.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	base, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	amounts := CartItemsAmount(s.cart.Cart())
	out := make([]Product, len(base))
	for i, p := range base {
		p.Amount = amounts[p.ID]
		out[i] = p
	}
	return out, nil
}

// AddProduct delegates to the cart.
func (s *Service) AddProduct(ctx context.Context, productID int) error {
	return s.cart.AddProduct(ctx, productID)
}

func (s *Service) load(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.products, nil
	}

	raw, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, Product{Product: p, PriceFormatted: FormatPrice(p.Price)})
	}
	s.products = products
	s.loaded = true
	return products, nil
}

// CartItemsAmount maps product id to amount in the cart.
func CartItemsAmount(cart domain.Cart) map[int]int {
	amounts := make(map[int]int, len(cart))
	for _, item := range cart {
		amounts[item.ID] = item.Amount
	}
	return amounts
}

// FormatPrice renders a price in Brazilian reais, e.g. "R$ 1.234,56".
func FormatPrice(price float64) string {
	if price < 0 {
		return "-R$ " + humanize.FormatFloat("#.###,##", -price)
	}
	return "R$ " + humanize.FormatFloat("#.###,##", price)
}
