package cart

import (
	"context"
	"errors"

	"log/slog"

	"candlebot/core/logger"
	"candlebot/internal/catalog"
	"candlebot/internal/session"
)

var (
	// ErrAlreadyEmpty signals that a clear request found nothing to remove.
	ErrAlreadyEmpty = errors.New("cart: already empty")
	// ErrEmptyCatalog is returned when navigation is attempted over an empty catalog.
	ErrEmptyCatalog = errors.New("cart: catalog is empty")
)

// Direction selects browse navigation.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Line is one aggregated cart position.
type Line struct {
	Product  catalog.Product
	Quantity int
	Total    int64
}

// Summary aggregates a cart by product id in first-seen order.
type Summary struct {
	Lines []Line
	Total int64
	// ItemCount is the number of units in the cart, including units whose
	// product id could not be resolved against the catalog.
	ItemCount int
}

// Engine mutates carts and navigates the catalog on top of the session store.
type Engine struct {
	sessions *session.Store
	store    catalog.Store
}

// NewEngine wires the engine to its session storage and product catalog.
func NewEngine(sessions *session.Store, store catalog.Store) *Engine {
	return &Engine{sessions: sessions, store: store}
}

// Add appends one unit of the product to the user's cart.
func (e *Engine) Add(ctx context.Context, userID, productID int64) (catalog.Product, error) {
	product, err := e.store.FindByID(productID)
	if err != nil {
		return catalog.Product{}, err
	}
	e.sessions.AppendToCart(userID, productID)
	logger.Info(ctx, "service.cart", "cart.add",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return product, nil
}

// Clear empties the cart. ErrAlreadyEmpty lets callers distinguish the no-op
// case for user messaging; the cart is unchanged either way.
func (e *Engine) Clear(ctx context.Context, userID int64) error {
	if !e.sessions.ClearCart(userID) {
		return ErrAlreadyEmpty
	}
	logger.Info(ctx, "service.cart", "cart.clear",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
	)
	return nil
}

// Summarize aggregates the user's cart by product id, preserving the order in
// which distinct products were first added. Ids absent from the catalog are
// skipped rather than failing: the cart may outlive a catalog rebuild.
func (e *Engine) Summarize(userID int64) Summary {
	entries := e.sessions.Cart(userID)
	sum := Summary{ItemCount: len(entries)}
	if len(entries) == 0 {
		return sum
	}

	index := make(map[int64]int, len(entries))
	for _, id := range entries {
		if at, seen := index[id]; seen {
			sum.Lines[at].Quantity++
			continue
		}
		product, err := e.store.FindByID(id)
		if err != nil {
			continue
		}
		index[id] = len(sum.Lines)
		sum.Lines = append(sum.Lines, Line{Product: product, Quantity: 1})
	}
	for i := range sum.Lines {
		sum.Lines[i].Total = sum.Lines[i].Product.Price * int64(sum.Lines[i].Quantity)
		sum.Total += sum.Lines[i].Total
	}
	return sum
}

// Advance moves the browse cursor one step in the given direction, wrapping
// modulo the catalog size, and returns the new index.
func (e *Engine) Advance(userID int64, dir Direction) (int, error) {
	n := e.store.Count()
	if n == 0 {
		return 0, ErrEmptyCatalog
	}
	delta := 1
	if dir == Prev {
		delta = -1
	}
	current := e.sessions.BrowseIndex(userID)
	// The % operator may yield a negative result; normalize into [0, n).
	next := ((current+delta)%n + n) % n
	e.sessions.SetBrowseIndex(userID, next)
	return next, nil
}

// Current returns the product under the user's browse cursor. A cursor that
// drifted out of range (catalog shrank between builds) is reset to zero.
func (e *Engine) Current(userID int64) (catalog.Product, int, error) {
	n := e.store.Count()
	if n == 0 {
		return catalog.Product{}, 0, ErrEmptyCatalog
	}
	idx := e.sessions.BrowseIndex(userID)
	if idx < 0 || idx >= n {
		idx = 0
		e.sessions.SetBrowseIndex(userID, idx)
	}
	product, err := e.store.Get(idx)
	if err != nil {
		return catalog.Product{}, 0, err
	}
	return product, idx, nil
}
