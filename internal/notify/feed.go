// Package notify delivers transient shopper-facing messages.
package notify

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"rocketshoes/internal/domain"
)

// Messages shown for each kind of failure.
const (
	MsgOutOfStock   = "Quantidade solicitada fora de estoque"
	MsgAddFailed    = "Erro na adição do produto"
	MsgRemoveFailed = "Erro na remoção do produto"
	MsgUpdateFailed = "Erro na alteração de quantidade do produto"
)

// Notifier publishes a message without blocking the caller.
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, message string)
}

// Feed keeps the most recent notifications until a client drains them.
// When full, the oldest entry is dropped.
type Feed struct {
	mu     sync.Mutex
	items  []domain.Notification
	limit  int
	logger *log.Logger
	now    func() time.Time
}

func NewFeed(limit int, logger *log.Logger) *Feed {
	if limit <= 0 {
		limit = 50
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Feed{limit: limit, logger: logger, now: time.Now}
}

func (f *Feed) Notify(_ context.Context, kind domain.NotificationKind, message string) {
	n := domain.Notification{Kind: kind, Message: message, CreatedAt: f.now().UTC()}

	f.mu.Lock()
	if len(f.items) == f.limit {
		copy(f.items, f.items[1:])
		f.items = f.items[:len(f.items)-1]
	}
	f.items = append(f.items, n)
	f.mu.Unlock()

	f.logger.Printf("notify: kind=%s message=%q", kind, message)
}

// Drain returns pending notifications oldest first and clears the feed.
func (f *Feed) Drain() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		return []domain.Notification{}
	}
	return out
}

// Len reports how many notifications are pending.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
