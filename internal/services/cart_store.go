package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Tarun1516/yaakai/domain"
)

// Cart connectivity failures on the add path interrupt the user; this
// is the message handed to the alert hook.
const cartNetworkAlert = "Network error. Please check your connection and try again."

// IdentityFunc returns the current identity, or nil when signed out.
// Injected by the composition root so the cart store never imports the
// session store.
type IdentityFunc func() *domain.Identity

// CartStoreImpl implements domain.CartStore. Local line items are a
// cache of the remote store's authoritative copy: every mutation goes
// to the remote store first and local state mirrors the result.
type CartStoreImpl struct {
	docs       domain.DocumentStore
	identity   IdentityFunc
	collection string
	ownerField string
	alert      domain.AlertFunc
	logger     *slog.Logger

	mu    sync.RWMutex
	items []domain.CartItem
	// gen advances on every refresh and reset; an in-flight mutation
	// that completes after gen moved discards its local-state write
	// instead of resurrecting stale data.
	gen uint64
}

// NewCartStore creates the cart store. alert may be nil.
func NewCartStore(docs domain.DocumentStore, identity IdentityFunc, collection string, alert domain.AlertFunc, logger *slog.Logger) *CartStoreImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStoreImpl{
		docs:       docs,
		identity:   identity,
		collection: collection,
		ownerField: "userId",
		alert:      alert,
		logger:     logger,
	}
}

// snapshotGen returns the current generation for a mutation to check
// against before writing local state.
func (s *CartStoreImpl) snapshotGen() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Refresh implements domain.CartStore. Without an identity the local
// cart is emptied without any remote call; otherwise local state is
// replaced by the remote listing. Failures keep stale-but-present
// state rather than clearing the cart on a transient error.
func (s *CartStoreImpl) Refresh(ctx context.Context) {
	user := s.identity()
	if user == nil {
		s.mu.Lock()
		s.gen++
		s.items = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	docs, err := s.docs.List(ctx, s.collection, s.ownerField, user.ID)
	if err != nil {
		s.logger.Error("cart refresh failed, keeping local items",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		return
	}

	items := make([]domain.CartItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, itemFromDocument(doc))
	}

	s.mu.Lock()
	if s.gen == gen {
		s.items = items
	}
	s.mu.Unlock()
}

// Add implements domain.CartStore. Re-adding a product folds the
// quantity into the existing line instead of creating a duplicate.
func (s *CartStoreImpl) Add(ctx context.Context, productID, name string, price int64, quantity int) {
	user := s.identity()
	if user == nil {
		return
	}

	if existing, ok := s.findByProduct(productID); ok {
		if err := s.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			s.logger.Error("cart add via quantity update failed",
				slog.String("line_id", existing.ID),
				slog.String("error", err.Error()))
		}
		return
	}

	gen := s.snapshotGen()

	fields := map[string]any{
		s.ownerField: user.ID,
		"productId":  productID,
		"name":       name,
		"price":      price,
		"quantity":   quantity,
	}
	doc, err := s.docs.Create(ctx, s.collection, uuid.NewString(), fields)
	if err != nil {
		s.logger.Error("cart add failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
		if domain.IsNetworkError(err) && s.alert != nil {
			s.alert(cartNetworkAlert)
		}
		return
	}

	item := itemFromDocument(*doc)
	s.mu.Lock()
	if s.gen == gen {
		s.items = append(s.items, item)
	}
	s.mu.Unlock()
}

// Remove implements domain.CartStore. On failure the item stays
// visible; remote and local state may diverge until the next Refresh.
func (s *CartStoreImpl) Remove(ctx context.Context, lineID string) {
	if s.identity() == nil {
		return
	}

	gen := s.snapshotGen()

	if err := s.docs.Delete(ctx, s.collection, lineID); err != nil {
		s.logger.Error("cart remove failed",
			slog.String("line_id", lineID),
			slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	if s.gen == gen {
		kept := s.items[:0]
		for _, item := range s.items {
			if item.ID != lineID {
				kept = append(kept, item)
			}
		}
		s.items = kept
	}
	s.mu.Unlock()
}

// UpdateQuantity implements domain.CartStore. Callers enforce the
// floor of 1; a non-positive quantity is rejected here as a backstop.
// Remote failures are logged and swallowed.
func (s *CartStoreImpl) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrQuantityNotPositive
	}
	if s.identity() == nil {
		return nil
	}

	gen := s.snapshotGen()

	if _, err := s.docs.Update(ctx, s.collection, lineID, map[string]any{"quantity": quantity}); err != nil {
		s.logger.Error("cart quantity update failed",
			slog.String("line_id", lineID),
			slog.Int("quantity", quantity),
			slog.String("error", err.Error()))
		return nil
	}

	s.mu.Lock()
	if s.gen == gen {
		for i := range s.items {
			if s.items[i].ID == lineID {
				s.items[i].Quantity = quantity
				break
			}
		}
	}
	s.mu.Unlock()
	return nil
}

// Clear implements domain.CartStore. All deletes run concurrently and
// local state is emptied only after every one succeeded. One failure
// marks the whole batch failed even if others went through remotely;
// the divergence heals on the next Refresh.
func (s *CartStoreImpl) Clear(ctx context.Context) {
	if s.identity() == nil {
		return
	}

	items := s.Items()
	if len(items) == 0 {
		return
	}

	gen := s.snapshotGen()

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for _, item := range items {
		wg.Add(1)
		go func(lineID string) {
			defer wg.Done()
			if err := s.docs.Delete(ctx, s.collection, lineID); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(item.ID)
	}
	wg.Wait()

	if firstErr != nil {
		s.logger.Error("cart clear failed, keeping local items", slog.String("error", firstErr.Error()))
		return
	}

	s.mu.Lock()
	if s.gen == gen {
		s.items = nil
	}
	s.mu.Unlock()
}

// Items implements domain.CartStore.
func (s *CartStoreImpl) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CartStoreImpl) findByProduct(productID string) (domain.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

// itemFromDocument maps a remote cart document onto a line item. The
// remote store returns numbers as float64 through JSON.
func itemFromDocument(doc domain.Document) domain.CartItem {
	item := domain.CartItem{
		ID:        doc.ID,
		ProductID: doc.StringField("productId"),
		Name:      doc.StringField("name"),
	}
	switch v := doc.Fields["price"].(type) {
	case float64:
		item.Price = int64(v)
	case int64:
		item.Price = v
	case int:
		item.Price = int64(v)
	}
	switch v := doc.Fields["quantity"].(type) {
	case float64:
		item.Quantity = int(v)
	case int:
		item.Quantity = v
	case int64:
		item.Quantity = int(v)
	}
	return item
}

var _ domain.CartStore = (*CartStoreImpl)(nil)
