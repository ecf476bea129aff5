package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"rocketshoes/internal/domain"
	"rocketshoes/internal/notify"
)

// Service owns the shopper's cart. Every mutation publishes a new slice, so a
// Cart value handed out earlier is never modified afterwards.
type Service struct {
	catalog  catalog
	store    slotStore
	notifier notify.Notifier
	logger   *log.Logger
	key      string

	mu             sync.Mutex
	cart           domain.Cart
	version        uint64
	writtenVersion uint64

	// serializes slot writes so an older version never lands after a newer one
	persistMu sync.Mutex
}

type catalog interface {
	GetStock(ctx context.Context, id int) (*domain.Stock, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// UpdateProductAmount is the payload of a quantity change.
type UpdateProductAmount struct {
	ProductID int `json:"productId"`
	Amount    int `json:"amount"`
}

func New(catalog catalog, store slotStore, notifier notify.Notifier, key string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		catalog:  catalog,
		store:    store,
		notifier: notifier,
		logger:   logger,
		key:      key,
		cart:     domain.Cart{},
	}
}

// Load hydrates the cart from the storage slot. A missing slot yields an empty
// cart; an unreadable document is logged and replaced by an empty cart on the
// next write. Hydration itself never writes.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load cart %s: %w", s.key, err)
	}

	loaded := domain.Cart{}
	if err == nil && raw != "" {
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			s.logger.Printf("cart: discard unreadable slot key=%s error=%v", s.key, err)
			loaded = domain.Cart{}
		}
	}

	s.mu.Lock()
	s.cart = loaded
	s.writtenVersion = s.version
	s.mu.Unlock()

	s.logger.Printf("cart: loaded key=%s items=%d", s.key, len(loaded))
	return nil
}

// Cart returns a copy of the current cart.
func (s *Service) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddProduct increments the product's amount by one, or appends it with amount
// 1, as long as stock allows.
func (s *Service) AddProduct(ctx context.Context, productID int) error {
	updated := s.Cart()
	idx := updated.Index(productID)

	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		s.notifier.Notify(ctx, domain.NotificationAddFailed, notify.MsgAddFailed)
		return fmt.Errorf("add product %d: stock: %w", productID, err)
	}

	current := 0
	if idx >= 0 {
		current = updated[idx].Amount
	}
	amount := current + 1
	if amount > stock.Amount {
		s.notifier.Notify(ctx, domain.NotificationOutOfStock, notify.MsgOutOfStock)
		return fmt.Errorf("add product %d: want %d have %d: %w", productID, amount, stock.Amount, domain.ErrOutOfStock)
	}

	if idx >= 0 {
		updated[idx].Amount = amount
	} else {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			s.notifier.Notify(ctx, domain.NotificationAddFailed, notify.MsgAddFailed)
			return fmt.Errorf("add product %d: product: %w", productID, err)
		}
		item := domain.CartItem{Product: *product, Amount: 1}
		item.ID = productID
		updated = append(updated, item)
	}

	s.replace(ctx, updated)
	return nil
}

// RemoveProduct drops the product's line from the cart.
func (s *Service) RemoveProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	idx := s.cart.Index(productID)
	if idx < 0 {
		s.mu.Unlock()
		s.notifier.Notify(ctx, domain.NotificationRemoveFailed, notify.MsgRemoveFailed)
		return fmt.Errorf("remove product %d: %w", productID, domain.ErrNotFound)
	}
	updated := make(domain.Cart, 0, len(s.cart)-1)
	updated = append(updated, s.cart[:idx]...)
	updated = append(updated, s.cart[idx+1:]...)
	s.publishLocked(updated)
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// UpdateProductAmount sets the amount of an existing line. Amounts below 1 are
// ignored, and an id that is not in the cart is left alone.
func (s *Service) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) error {
	if in.Amount <= 0 {
		return nil
	}

	stock, err := s.catalog.GetStock(ctx, in.ProductID)
	if err != nil {
		s.notifier.Notify(ctx, domain.NotificationUpdateFailed, notify.MsgUpdateFailed)
		return fmt.Errorf("update product %d: stock: %w", in.ProductID, err)
	}
	if in.Amount > stock.Amount {
		s.notifier.Notify(ctx, domain.NotificationOutOfStock, notify.MsgOutOfStock)
		return fmt.Errorf("update product %d: want %d have %d: %w", in.ProductID, in.Amount, stock.Amount, domain.ErrOutOfStock)
	}

	updated := s.Cart()
	idx := updated.Index(in.ProductID)
	if idx < 0 {
		return nil
	}
	updated[idx].Amount = in.Amount

	s.replace(ctx, updated)
	return nil
}

func (s *Service) replace(ctx context.Context, updated domain.Cart) {
	s.mu.Lock()
	s.publishLocked(updated)
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *Service) publishLocked(updated domain.Cart) {
	s.cart = updated
	s.version++
}

// persist writes the cart when it changed since the last successful write.
// A failed write keeps the in-memory cart; the next mutation retries implicitly.
func (s *Service) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	current, version := s.cart, s.version
	dirty := version != s.writtenVersion
	s.mu.Unlock()
	if !dirty {
		return
	}

	data, err := json.Marshal(current)
	if err != nil {
		s.logger.Printf("cart: encode version=%d error=%v", version, err)
		return
	}
	// the mutation already happened; a disconnecting client must not abort the write
	if err := s.store.Set(context.WithoutCancel(ctx), s.key, string(data)); err != nil {
		s.logger.Printf("cart: persist key=%s version=%d error=%v", s.key, version, err)
		return
	}

	s.mu.Lock()
	s.writtenVersion = version
	s.mu.Unlock()
	s.logger.Printf("cart: persisted key=%s version=%d items=%d", s.key, version, len(current))
}
